package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/mdrefcheck/pkg/langdetect"
)

// Discover finds Markdown files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
//
// Paths named explicitly are checked even when hidden or vendored, as
// long as they are Markdown and not excluded by a glob.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	walker := &walker{
		ctx:      ctx,
		workDir:  workDir,
		excludes: excludes,
		opts:     opts,
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if langdetect.IsMarkdown(absPath) && !walker.excluded(absPath, false) {
				add(absPath)
			}
			continue
		}

		discovered, err := walker.walk(absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)

	return files, nil
}

// CompileGlobs validates ignore patterns the way discovery uses them.
func CompileGlobs(patterns []string) error {
	_, err := compileGlobs(patterns)
	return err
}

type matcher struct {
	pattern  string
	glob     glob.Glob
	baseName bool
}

func compileGlobs(patterns []string) ([]matcher, error) {
	matchers := make([]matcher, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		matchers = append(matchers, matcher{
			pattern:  pattern,
			glob:     g,
			baseName: !strings.Contains(pattern, "/"),
		})
	}
	return matchers, nil
}

func (m matcher) match(relPath string) bool {
	if m.glob.Match(relPath) {
		return true
	}
	return m.baseName && m.glob.Match(filepath.Base(relPath))
}

type walker struct {
	ctx      context.Context
	workDir  string
	excludes []matcher
	opts     Options
}

// relPath returns path relative to the working directory with forward
// slashes, or the slash form of path when it lies elsewhere.
func (w *walker) relPath(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func (w *walker) excluded(path string, isDir bool) bool {
	rel := w.relPath(path)
	for _, m := range w.excludes {
		if m.match(rel) || (isDir && m.glob.Match(rel+"/")) {
			return true
		}
	}
	return false
}

// skipDir reports whether discovery should not descend into dir.
func (w *walker) skipDir(dir string) bool {
	if langdetect.IsHidden(dir) {
		return true
	}
	if !w.opts.IncludeVendored && langdetect.IsVendored(w.relPath(dir)+"/") {
		return true
	}
	return w.excluded(dir, true)
}

// acceptFile reports whether a file found while walking is checked.
func (w *walker) acceptFile(path string) bool {
	if langdetect.IsHidden(path) || !langdetect.IsMarkdown(path) {
		return false
	}
	if !w.opts.IncludeVendored && langdetect.IsVendored(w.relPath(path)) {
		return false
	}
	return !w.excluded(path, false)
}

// walk recursively walks a directory and returns matching Markdown files.
func (w *walker) walk(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && w.skipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Intentionally skip inaccessible symlink targets
			}
			if info.IsDir() {
				if !w.opts.FollowSymlinks || w.skipDir(path) {
					return nil
				}
				// Walk the target; WalkDir uses Lstat on its root.
				subFiles, err := w.walk(realPath)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if w.acceptFile(path) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// Filter applies discovery's exclusion rules to individual paths, for
// callers such as watch mode that learn about files one at a time.
type Filter struct {
	w *walker
}

// NewFilter builds a Filter from the discovery settings in opts.
func NewFilter(opts Options) (*Filter, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	excludes, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}
	return &Filter{w: &walker{ctx: context.Background(), workDir: workDir, excludes: excludes, opts: opts}}, nil
}

// File reports whether discovery would check the file at path.
func (f *Filter) File(path string) bool {
	return f.w.acceptFile(path)
}

// SkipDir reports whether discovery would skip the directory at path.
func (f *Filter) SkipDir(path string) bool {
	return f.w.skipDir(path)
}
