package domain

import "time"

// HistoryRecord captures one invocation that produced a command.
type HistoryRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Task       string    `json:"task"`
	Command    string    `json:"command"`
	Model      string    `json:"model"`
	Mode       string    `json:"mode"`
	Executed   bool      `json:"executed"`
	ExitCode   int       `json:"exit_code"`
	DurationMS int64     `json:"duration_ms"`
}

// History modes.
const (
	ModeCopy   = "copy"
	ModeRun    = "run"
	ModeScript = "script"
	ModePrompt = "prompt"
)
