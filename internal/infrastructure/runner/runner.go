// Package runner executes generated command text through a shell, draining
// stdout and stderr concurrently so a child that fills one pipe's OS buffer
// while the parent reads the other can never deadlock the tool.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/clicra-go/internal/domain"
	"github.com/doeshing/clicra-go/internal/ports"
)

// ShellRunner runs command text via `<shell> -c`.
type ShellRunner struct {
	shell  string
	stdout io.Writer
	stderr io.Writer
}

// NewShellRunner builds a runner. Shell defaults to bash; stdout and stderr
// are the live echo sinks.
func NewShellRunner(shell string, stdout, stderr io.Writer) *ShellRunner {
	if shell == "" {
		shell = "bash"
	}
	return &ShellRunner{shell: shell, stdout: stdout, stderr: stderr}
}

// Run implements ports.CommandRunner. Lines prefixed with the shell-prompt
// sentinel "$ " have the prefix stripped, so a prompt-style transcript from
// the model can be executed directly. A startup failure (interpreter missing,
// pipes unavailable) is returned as an error; a command that ran and exited
// nonzero is reported through the result's ExitCode.
func (r *ShellRunner) Run(ctx context.Context, command string, echo bool) (domain.ExecutionResult, error) {
	cmd := exec.CommandContext(ctx, r.shell, "-c", stripPromptPrefix(command))

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return domain.ExecutionResult{}, fmt.Errorf("stdout pipe: %w", err)
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return domain.ExecutionResult{}, fmt.Errorf("stderr pipe: %w", err)
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return domain.ExecutionResult{}, fmt.Errorf("start %s: %w", r.shell, err)
	}

	// Each accumulator is owned by its reader goroutine until the join.
	var outBuf, errBuf strings.Builder
	var wg sync.WaitGroup
	wg.Add(2)
	go drain(&wg, outPipe, &outBuf, echoSink(echo, r.stdout))
	go drain(&wg, errPipe, &errBuf, echoSink(echo, r.stderr))
	wg.Wait()

	result := domain.ExecutionResult{
		Stdout: strings.TrimRight(outBuf.String(), " \t\r\n"),
		Stderr: strings.TrimRight(errBuf.String(), " \t\r\n"),
	}

	err = cmd.Wait()
	result.DurationMS = time.Since(start).Milliseconds()
	if exitErr, ok := err.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		return domain.ExecutionResult{}, fmt.Errorf("wait %s: %w", r.shell, err)
	}
	return result, nil
}

// drain reads the pipe to end-of-stream line by line, appending to its own
// accumulator and forwarding each line to the live sink when echoing. Lines
// are unbounded: a reader that stops short of end-of-stream would leave the
// child blocked on a full pipe and the join waiting forever.
func drain(wg *sync.WaitGroup, pipe io.Reader, buf *strings.Builder, sink io.Writer) {
	defer wg.Done()
	r := bufio.NewReader(pipe)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			buf.WriteString(line)
			buf.WriteByte('\n')
			if sink != nil {
				fmt.Fprintln(sink, line)
			}
		}
		if err != nil {
			return
		}
	}
}

func echoSink(echo bool, w io.Writer) io.Writer {
	if !echo {
		return nil
	}
	return w
}

func stripPromptPrefix(command string) string {
	lines := strings.Split(command, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, "$ ")
	}
	return strings.Join(lines, "\n")
}

var _ ports.CommandRunner = (*ShellRunner)(nil)
