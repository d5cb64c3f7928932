// Package runner provides multi-file checking orchestration: discovery of
// Markdown files and a bounded worker pool running the lint engine.
package runner

import "github.com/yaklabco/mdrefcheck/pkg/config"

// Options controls multi-file checking behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// ExcludeGlobs are glob patterns used to skip files or directories,
	// relative to WorkingDir. "**" matches across directories; a pattern
	// without a slash also matches the base name.
	ExcludeGlobs []string

	// IncludeVendored disables skipping of vendored directories.
	IncludeVendored bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// OptionsFromConfig builds Options for paths from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, workDir string, paths []string) Options {
	opts := Options{
		Paths:      paths,
		WorkingDir: workDir,
		Config:     cfg,
	}
	if cfg != nil {
		opts.ExcludeGlobs = cfg.Ignore
		opts.IncludeVendored = cfg.IncludeVendored
		opts.Jobs = cfg.Jobs
	}
	return opts
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
