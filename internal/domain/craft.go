package domain

import "context"

// CraftRequest captures one invocation of the generate -> run -> diagnose
// pipeline, originating from the CLI.
type CraftRequest struct {
	Context       context.Context
	Task          string
	ReferCommand  string
	Run           bool
	Script        bool
	Strategy      *Strategy
	ModelOverride string
	MaxChars      int
	Verbose       bool
}

// CraftResponse is the canonical outcome propagated back to the CLI.
type CraftResponse struct {
	Command          string
	ReferenceContext string
	Copied           bool
	Executed         bool
	ExecutionResult  *ExecutionResult
	Diagnosis        string
	ModelUsed        string
	// ExitCode is what the process should exit with: the executed command's
	// exit code when a command ran, zero otherwise.
	ExitCode int
}

// ExecutionResult wraps details from the command runner. Stdout and Stderr
// carry the full captured streams with trailing whitespace trimmed.
type ExecutionResult struct {
	ExitCode   int
	Stdout     string
	Stderr     string
	DurationMS int64
}

// LineSeq is a lazily produced, finite, non-restartable sequence of text
// lines (without trailing newlines). It returns ok=false once exhausted.
type LineSeq func() (line string, ok bool)

// CraftService exposes the use-case boundary for handling one task.
type CraftService interface {
	Run(CraftRequest) (CraftResponse, error)
}
