package sitebuilder

import "time"

// Config is the top level runtime configuration for the builder module.
type Config struct {
	Database DatabaseConfig `json:"database" mapstructure:"database"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
	AI       AIConfig       `json:"ai" mapstructure:"ai"`
	Server   ServerConfig   `json:"server" mapstructure:"server"`
	Autosave AutosaveConfig `json:"autosave" mapstructure:"autosave"`
}

// DatabaseConfig selects the persistence backend. An empty DSN keeps the
// module on the in-memory repository, which is also what the tests use.
type DatabaseConfig struct {
	Driver string `json:"driver" mapstructure:"driver"`
	DSN    string `json:"dsn" mapstructure:"dsn"`
}

// LoggingConfig drives the go-logger provider.
type LoggingConfig struct {
	Level     string `json:"level" mapstructure:"level"`
	Format    string `json:"format" mapstructure:"format"`
	AddSource bool   `json:"add_source" mapstructure:"add_source"`
}

// AIConfig configures the completion boundary. Generation stays disabled
// until an API key is supplied.
type AIConfig struct {
	BaseURL string `json:"base_url" mapstructure:"base_url"`
	APIKey  string `json:"api_key" mapstructure:"api_key"`
	Model   string `json:"model" mapstructure:"model"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address string `json:"address" mapstructure:"address"`
}

// AutosaveConfig tunes the editor's debounced persistence.
type AutosaveConfig struct {
	Delay time.Duration `json:"delay" mapstructure:"delay"`
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{
			Driver: "sqlite3",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		AI: AIConfig{
			Model: "gpt-4o-mini",
		},
		Server: ServerConfig{
			Address: ":8080",
		},
		Autosave: AutosaveConfig{
			Delay: 2 * time.Second,
		},
	}
}
