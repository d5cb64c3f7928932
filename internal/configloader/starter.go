package configloader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/fsutil"
)

// ErrConfigExists means a starter config would overwrite a file.
var ErrConfigExists = errors.New("config file already exists")

// WriteStarterConfig writes the commented starter file to path,
// refusing to replace an existing file unless force is set.
func WriteStarterConfig(ctx context.Context, path string, full, force bool) error {
	if fileExists(path) && !force {
		return fmt.Errorf("%s: %w", path, ErrConfigExists)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: full})
	if err != nil {
		return fmt.Errorf("generate config: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, path, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// PromptOverwrite asks on out whether path may be replaced and reads a
// y/yes answer from in. Anything else, including EOF, is a no.
func PromptOverwrite(in io.Reader, out io.Writer, path string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s already exists. Overwrite? [y/N] ", path); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
