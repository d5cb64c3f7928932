package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdrefcheck/internal/logging"
	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/lint"
)

// Runner checks many files concurrently with one lint.Engine.
type Runner struct {
	Engine *lint.Engine
}

// New returns a Runner.
func New(engine *lint.Engine) *Runner {
	return &Runner{Engine: engine}
}

// Run validates rule options, discovers the files under opts.Paths and
// checks them. A configuration error aborts the run before discovery
// and yields no result.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := r.Engine.Validate(opts.Config); err != nil {
		return nil, err
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	return r.CheckFiles(ctx, files, opts)
}

// CheckFiles checks files with up to opts.Jobs workers and reports them
// in the order given. Unreadable files become FileOutcome errors; a
// rule configuration error stops every worker and is returned alone.
func (r *Runner) CheckFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	res := &Result{Stats: newStats()}
	res.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return res, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	outcomes := make([]FileOutcome, len(files))
	checked := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			out := r.checkFile(gctx, path, opts.Config)
			if errors.Is(out.Error, lint.ErrInvalidConfig) {
				return out.Error
			}
			if gctx.Err() == nil {
				outcomes[i], checked[i] = out, true
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, ok := range checked {
		if ok {
			res.accumulate(outcomes[i])
		}
	}

	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("run cancelled: %w", err)
	}
	return res, nil
}

func (r *Runner) checkFile(ctx context.Context, path string, cfg *config.Config) FileOutcome {
	start := time.Now()
	out := FileOutcome{Path: path}

	content, err := os.ReadFile(path)
	if err != nil {
		out.Error = fmt.Errorf("read %s: %w", path, err)
		return out
	}

	out.Result, out.Error = r.Engine.LintFile(ctx, path, content, cfg)

	logging.FromContext(ctx).Debug("checked file",
		logging.FieldPath, path,
		logging.FieldDuration, time.Since(start),
		logging.FieldDiagnosticsTotal, len(out.Diagnostics()),
	)
	return out
}
