package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/otelviz/pkg/errors"
	"github.com/matzehuels/otelviz/pkg/runtime"
)

// runCommand creates the run command, which executes one snippet.
func (c *CLI) runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run [file|-]",
		Short: "Execute a code snippet with the snippet runtime",
		Long: `Run executes a snippet the way the guide's "try it" blocks do and prints
its output. Output of a snippet that raises is shown in red and the command
exits non-zero. The snippet is read from stdin when no file (or "-") is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readSnippet(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return c.runSnippet(cmd.Context(), cmd.OutOrStdout(), c.loader(), code)
		},
	}
}

func readSnippet(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if os.IsNotExist(err) {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "snippet %s", args[0])
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

// runSnippet shows a spinner while the runtime is acquired, then prints the
// result to w.
func (c *CLI) runSnippet(ctx context.Context, w io.Writer, l *runtime.Loader, code string) error {
	logger := loggerFromContext(ctx)

	if !l.Ready() {
		prog := newProgress(logger)
		spinner := newSpinnerWithContext(ctx, "Loading runtime...")
		spinner.Start()
		_, err := l.Load(ctx)
		spinner.Stop()
		if err != nil {
			return err
		}
		prog.debug("Runtime " + l.Name() + " ready")
	}

	res, err := l.Exec(ctx, code)
	if err != nil {
		return err
	}
	logger.Debug("snippet finished", "failed", res.Failed, "duration", res.Duration)

	if res.Failed {
		fmt.Fprintln(w, StyleOutputError.Render(res.Output()))
		return errors.New(errors.ErrCodeExecutionFailed, "snippet raised an error")
	}
	fmt.Fprintln(w, res.Output())
	return nil
}
