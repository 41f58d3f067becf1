package domain

// Config mirrors ~/.clicra/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Models              []ModelDefinition `yaml:"models"`
	Execution           ExecutionSettings `yaml:"execution"`
	History             HistorySettings   `yaml:"history"`
}

// Preferences captures user level defaults.
type Preferences struct {
	DefaultModel   string `yaml:"default_model"`
	MaxOutputChars int    `yaml:"max_output_chars"`
}

// ExecutionSettings controls how generated commands run.
type ExecutionSettings struct {
	Shell string `yaml:"shell"`
}

// HistorySettings configures the invocation history store.
type HistorySettings struct {
	Disabled bool `yaml:"disabled"`
}

// ModelDefinition describes a chat endpoint declared in the config file.
type ModelDefinition struct {
	Name       string `yaml:"name"`
	Endpoint   string `yaml:"endpoint"`
	AuthEnvVar string `yaml:"auth_env_var"`
	ModelID    string `yaml:"model_id"`
	MaxTokens  int    `yaml:"max_tokens"`
}

// DefaultEndpoint is where a bare `-m <model>` override points: a local
// Ollama server speaking the OpenAI chat-completions dialect.
const DefaultEndpoint = "http://localhost:11434/v1/chat/completions"

// DefaultMaxOutputChars bounds captured output embedded into prompts.
const DefaultMaxOutputChars = 2000
