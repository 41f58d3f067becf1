// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core (internal/services) depends only on these contracts;
// concrete adapters live in the infrastructure layer. This keeps the pipeline
// testable with hand-written stubs and independent of HTTP, SQLite, and the
// terminal.
package ports

import (
	"context"

	"github.com/doeshing/clicra-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.clicra/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ChatClient is a stateless, single-turn chat collaborator. Each call sends
// exactly one user message; no conversation history is retained.
type ChatClient interface {
	// Complete returns the model's full response text.
	Complete(ctx context.Context, model domain.ModelDefinition, prompt string) (string, error)
	// Stream returns the response as a lazy line sequence. The sequence is
	// finite and non-restartable; exhausting it releases the connection.
	Stream(ctx context.Context, model domain.ModelDefinition, prompt string) (domain.LineSeq, error)
}

// CommandRunner executes a command string through a shell, capturing both
// output streams in full. With echo enabled each line is additionally
// forwarded to the live output sinks as it is read.
//
// A returned error means the child process could not be started or waited on;
// a command that ran and exited nonzero is reported through the result's
// ExitCode, not an error.
type CommandRunner interface {
	Run(ctx context.Context, command string, echo bool) (domain.ExecutionResult, error)
}

// Clipboard provides best-effort clipboard integration for copying commands.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// HistoryStore persists invocation metadata. All methods are best-effort from
// the pipeline's point of view: a failing store never fails an invocation.
type HistoryStore interface {
	Save(domain.HistoryRecord) error
	Records(limit int, search string) ([]domain.HistoryRecord, error)
	Clear() error
	Path() string
}

// Renderer presents pipeline output to the user.
type Renderer interface {
	// Print writes one response line to standard output.
	Print(line string)
	// Highlight decorates a fenced-block line for display.
	Highlight(line string) string
	// Banner writes an emphasized status line (RUN / DEBUG / COPIED).
	Banner(text string)
	// Verbose writes dim diagnostic text to standard error.
	Verbose(text string)
	// Thinking toggles the waiting indicator shown before the first
	// response line arrives.
	Thinking(active bool)
}

// Logger provides leveled logging for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
