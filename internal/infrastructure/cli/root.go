// Package cli implements the terminal frontend: the cobra command tree, the
// renderer, the clipboard adapter, and the waiting spinner.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/doeshing/clicra-go/internal/app"
	"github.com/doeshing/clicra-go/internal/domain"
)

// Options holds CLI-level configuration injected from main.
type Options struct {
	Version string
}

// usageError marks errors caused by how the tool was invoked rather than by
// what happened while it ran. They exit with code 2.
type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

var errNoTask = usageError{msg: "no task is given."}

// Execute runs the CLI and returns the process exit code: 2 for usage errors,
// the child's exit code when a command was run, 1 for other failures.
func Execute(ctx context.Context, opts Options) int {
	childExit := 0
	root := newRootCmd(opts, &childExit)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var usage usageError
		if errors.As(err, &usage) {
			return 2
		}
		return 1
	}
	return childExit
}

func newRootCmd(opts Options, childExit *int) *cobra.Command {
	var (
		run      bool
		script   bool
		strategy string
		refer    string
		model    string
		maxChars int
		verbose  bool
		noColor  bool
	)

	root := &cobra.Command{
		Use:     "clicra [task...]",
		Short:   "Craft shell commands from natural language",
		Long:    "clicra turns a task description into a shell command or script,\noptionally runs it, and asks the model to diagnose a failing run.",
		Version: opts.Version,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}

			task := strings.TrimSpace(strings.Join(args, " "))
			if task == "" {
				return errNoTask
			}
			if run && script {
				return usageError{msg: "--run and --script cannot be combined"}
			}
			if strategy != "" && (run || script) {
				return usageError{msg: "--prompt cannot be combined with --run or --script"}
			}

			var strat *domain.Strategy
			if strategy != "" {
				s, ok := domain.StrategyByName(strategy)
				if !ok {
					return usageError{msg: fmt.Sprintf("unknown prompt strategy %q (accepted: %s)",
						strategy, strings.Join(domain.StrategyNames(), ", "))}
				}
				strat = &s
			}

			container := app.BuildContainer(cmd.Context(), verbose)
			renderer := NewRenderer(os.Stdout, os.Stderr, stderrIsTerminal())
			container.Craft.Renderer = renderer
			container.Craft.Clipboard = NewClipboard()

			resp, err := container.Craft.Run(domain.CraftRequest{
				Context:       cmd.Context(),
				Task:          task,
				ReferCommand:  refer,
				Run:           run,
				Script:        script,
				Strategy:      strat,
				ModelOverride: model,
				MaxChars:      maxChars,
				Verbose:       verbose,
			})
			if err != nil {
				return err
			}
			if verbose && resp.ExecutionResult != nil {
				renderer.Verbose(fmt.Sprintf("captured %s of stdout, %s of stderr in %dms",
					humanize.IBytes(uint64(len(resp.ExecutionResult.Stdout))),
					humanize.IBytes(uint64(len(resp.ExecutionResult.Stderr))),
					resp.ExecutionResult.DurationMS))
			}
			*childExit = resp.ExitCode
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().BoolVarP(&run, "run", "r", false, "Run the generated command and diagnose a nonzero exit")
	root.Flags().BoolVarP(&script, "script", "s", false, "Ask for a script instead of a one-line command")
	root.Flags().StringVarP(&strategy, "prompt", "p", "", fmt.Sprintf("Prompting strategy (%s)", strings.Join(domain.StrategyNames(), ", ")))
	root.Flags().StringVarP(&refer, "refer", "f", "", "Run this command first and include its output as context")
	root.Flags().StringVarP(&model, "model", "m", "", "Override the configured model")
	root.Flags().IntVarP(&maxChars, "max-chars", "M", 0, "Clip captured output to this many characters (default 2000)")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "Echo prompts and diagnostics to stderr")
	root.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	root.AddCommand(newHistoryCommand())
	root.AddCommand(newDoctorCommand())
	return root
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
