package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdrefcheck/internal/ui/pretty"
	"github.com/yaklabco/mdrefcheck/pkg/lint"
	"github.com/yaklabco/mdrefcheck/pkg/mdast"
	"github.com/yaklabco/mdrefcheck/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled).WithWidth(pretty.TerminalWidth(opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No Markdown files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		diagnostics := file.Diagnostics()
		if len(diagnostics) == 0 {
			continue
		}

		if r.opts.GroupByFile {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(diagnostics)))
		}

		for i := range diagnostics {
			diag := diagnostics[i]
			diag.FilePath = r.opts.displayPath(diag.FilePath)
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(
				&diag,
				r.opts.ShowContext,
				sourceLine(file.Result.Snapshot, &diag),
				r.opts.RuleFormat,
			))
			total++
		}

		if r.opts.GroupByFile {
			fmt.Fprintln(r.bw)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// sourceLine returns the line a diagnostic starts on, or "".
func sourceLine(snapshot *mdast.FileSnapshot, diag *lint.Diagnostic) string {
	if snapshot == nil {
		return ""
	}
	content := snapshot.LineContent(diag.StartLine)
	if content == nil {
		return ""
	}
	return string(content)
}
