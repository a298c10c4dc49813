package cli

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

const shellPrompt = "psg> "

// shellCommand creates the "shell" command.
func (c *CLI) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively",
		Long: `Start an interactive session. Every psg command is available without the
"psg" prefix and the puzzle database is loaded only once. Type "help" for
the commands and "exit" or Ctrl+D to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShell(cmd.Context(), os.Stdin)
		},
	}
}

// runShell executes one command per input line until in is exhausted, the
// user exits or ctx is cancelled. Command errors are printed, not returned.
func (c *CLI) runShell(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(stdout, StyleHighlight.Render(shellPrompt))
		if !scanner.Scan() {
			fmt.Fprintln(stdout)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		args, err := splitArgs(scanner.Text())
		if err != nil {
			printError("%s", errors.UserMessage(err))
			continue
		}
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "exit", "quit":
			return nil
		case "shell":
			printWarning("already in the shell")
			continue
		}

		root := c.RootCommand()
		root.SetArgs(args)
		root.SetOut(stdout)
		root.SetErr(stdout)
		if err := root.ExecuteContext(ctx); err != nil {
			if stderrors.Is(err, context.Canceled) {
				return nil
			}
			printError("%s", errors.UserMessage(err))
		}
	}
}

// splitArgs splits a command line into words. Single and double quotes
// group words and a backslash escapes the next character outside single
// quotes.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped, inWord = true, true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote, inWord = r, true
		case r == ' ' || r == '\t':
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 || escaped {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unterminated quote or escape in %q", line)
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}
