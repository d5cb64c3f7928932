package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdrefcheck/internal/configloader"
	"github.com/yaklabco/mdrefcheck/internal/logging"
	"github.com/yaklabco/mdrefcheck/internal/watch"
	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/lint"
	goldmarkparser "github.com/yaklabco/mdrefcheck/pkg/parser/goldmark"
	"github.com/yaklabco/mdrefcheck/pkg/reporter"
	"github.com/yaklabco/mdrefcheck/pkg/runner"
)

type checkFlags struct {
	format            string
	flavor            string
	jobs              int
	ignore            []string
	enable            []string
	disable           []string
	allow             []string
	allowPattern      []string
	allowShortcutLink bool
	strict            bool
	noContext         bool
	compact           bool
	ruleFormat        string
	includeVendored   bool
	watch             bool
}

const checkLongDescription = `Check Markdown files for references to undefined definitions.

By default, checks every Markdown file under the current directory,
skipping hidden and vendored directories. Specify paths to check specific
files or directories.

Examples:
  mdrefcheck check                          # Check current directory
  mdrefcheck check docs/ README.md          # Check selected paths
  mdrefcheck check --allow TODO             # Never report [TODO]
  mdrefcheck check --allow-pattern '^x-'    # Never report ids matching a regex
  mdrefcheck check --allow-shortcut-link    # Ignore undefined [label] shortcuts
  mdrefcheck check --format sarif           # SARIF 2.1.0 for code scanning
  mdrefcheck check --watch                  # Re-check files as they change`

func newCheckCommand(info BuildInfo) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:     "check [paths...]",
		Aliases: []string{"lint"},
		Short:   "Check Markdown files for undefined references",
		Long:    checkLongDescription + "\n\nEnvironment:\n" + configloader.EnvHelp(),
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags, info)
		},
	}

	addCheckFlags(cmd, flags)

	return cmd
}

func addCheckFlags(cmd *cobra.Command, flags *checkFlags) {
	f := cmd.Flags()
	f.StringVar(&flags.format, "format", "text", "output format: text, json, sarif")
	f.StringVar(&flags.flavor, "flavor", "gfm", "Markdown flavor: commonmark, gfm")
	f.IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	f.StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	f.StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	f.StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	f.StringArrayVar(&flags.allow, "allow", nil, "identifier never reported as undefined (repeatable)")
	f.StringArrayVar(&flags.allowPattern, "allow-pattern", nil,
		"case-insensitive regular expression of identifiers never reported (repeatable)")
	f.BoolVar(&flags.allowShortcutLink, "allow-shortcut-link", false, "do not report undefined shortcut references like [label]")
	f.BoolVar(&flags.strict, "strict", false, "exit non-zero when warnings are reported")
	f.BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	f.BoolVar(&flags.compact, "compact", false, "use compact JSON and SARIF output")
	f.StringVar(&flags.ruleFormat, "rule-format", "name", "rule identifier format in output: name, id, or combined")
	f.BoolVar(&flags.includeVendored, "include-vendored", false, "also check vendored directories such as node_modules")
	f.BoolVar(&flags.watch, "watch", false, "re-check Markdown files when they change")
}

// cliConfig builds the configuration layer for flags the user set.
func (flags *checkFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("enable") {
		cfg.EnableRules = flags.enable
	}
	if changed("disable") {
		cfg.DisableRules = flags.disable
	}
	cfg.IncludeVendored = flags.includeVendored
	cfg.Strict = flags.strict

	return cfg
}

// allowEntries converts --allow and --allow-pattern values to allow list
// entries.
func (flags *checkFlags) allowEntries() []any {
	entries := make([]any, 0, len(flags.allow)+len(flags.allowPattern))
	for _, literal := range flags.allow {
		entries = append(entries, literal)
	}
	for _, pattern := range flags.allowPattern {
		entries = append(entries, map[string]any{"source": pattern})
	}
	return entries
}

// session holds everything a check run needs, so watch mode can re-run
// it cheaply.
type session struct {
	cfg      *config.Config
	runner   *runner.Runner
	runOpts  runner.Options
	repOpts  reporter.Options
	registry *lint.Registry
}

func newSession(cmd *cobra.Command, args []string, flags *checkFlags, info BuildInfo) (*session, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadOpts := configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    flags.cliConfig(cmd),
		Allow:        flags.allowEntries(),
	}
	if cmd.Flags().Changed("allow-shortcut-link") {
		loadOpts.AllowShortcutLink = &flags.allowShortcutLink
	}

	loadResult, err := configloader.Load(ctx, loadOpts)
	if err != nil {
		return nil, err
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldConfig, loadResult.LoadedFrom,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
	)

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, &ExitError{Code: ExitConfigError, Err: err}
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	registry := lint.DefaultRegistry

	return &session{
		cfg:      cfg,
		registry: registry,
		runner:   runner.New(lint.NewEngine(goldmarkparser.New(string(cfg.Flavor)), registry)),
		runOpts:  runner.OptionsFromConfig(cfg, workDir, args),
		repOpts: reporter.Options{
			Writer:      cmd.OutOrStdout(),
			Format:      format,
			Color:       colorMode,
			ShowContext: !flags.noContext,
			ShowSummary: true,
			GroupByFile: true,
			Compact:     flags.compact,
			RuleFormat:  cfg.RuleFormat,
			WorkingDir:  workDir,
			Version:     info.Version,
			Registry:    registry,
		},
	}, nil
}

// report writes result and converts it into the command's outcome.
func (s *session) report(ctx context.Context, result *runner.Result) error {
	rep, err := reporter.New(s.repOpts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	logging.FromContext(ctx).Debug("check complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	if code := ExitCodeFromResult(result, s.cfg.Strict); code != ExitSuccess {
		return &ExitError{Code: code, Err: ErrIssuesFound}
	}
	if result.Stats.FilesErrored > 0 {
		return &ExitError{Code: ExitInternalError, Err: fmt.Errorf("%d files could not be checked", result.Stats.FilesErrored)}
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags, info BuildInfo) error {
	s, err := newSession(cmd, args, flags, info)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if flags.watch {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
	}

	logging.FromContext(ctx).Debug("starting check",
		logging.FieldPaths, s.runOpts.Paths,
		logging.FieldWorkingDir, s.runOpts.WorkingDir,
	)

	result, err := s.runner.Run(ctx, s.runOpts)
	if err != nil {
		return err
	}

	outcome := s.report(ctx, result)
	if !flags.watch {
		return outcome
	}

	return s.watch(ctx)
}

// watch re-checks changed files until ctx is cancelled.
func (s *session) watch(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	filter, err := runner.NewFilter(s.runOpts)
	if err != nil {
		return err
	}

	roots := s.runOpts.Paths
	if len(roots) == 0 {
		roots = []string{s.runOpts.WorkingDir}
	}

	w, err := watch.New(watch.Options{
		Roots:   roots,
		Accept:  filter.File,
		SkipDir: filter.SkipDir,
	}, func(ctx context.Context, files []string) error {
		result, err := s.runner.CheckFiles(ctx, files, s.runOpts)
		if err != nil {
			return err
		}
		if err := s.report(ctx, result); ShouldLog(err) {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	logger.Info("watching for changes", logging.FieldPaths, roots)

	return w.Run(ctx)
}
