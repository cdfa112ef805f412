package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"

	"github.com/shaharia-lab/designpatterns/internal/notification"
)

// AppConfig holds all application-level configuration loaded from environment variables.
type AppConfig struct {
	// DataDir is the root data directory. Defaults to ~/.designpatterns.
	DataDir string `envconfig:"DESIGNPATTERNS_DATA_DIR"`

	// LogLevel sets the minimum log level (debug, info, warn, error). Defaults to info.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// EventLogFile is where the log listener appends editor events.
	// Defaults to <DataDir>/logs/events.log.
	EventLogFile string `envconfig:"EVENT_LOG_FILE"`

	// EventLogMaxSizeMB is the rotation threshold for the event log.
	EventLogMaxSizeMB int `envconfig:"EVENT_LOG_MAX_SIZE_MB" default:"10"`

	// NotifyEmail is the recipient of the email listener. Email
	// notifications are disabled when empty.
	NotifyEmail string `envconfig:"NOTIFY_EMAIL"`

	SMTPHost       string `envconfig:"SMTP_HOST"`
	SMTPPort       int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername   string `envconfig:"SMTP_USERNAME"`
	SMTPPassword   string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom       string `envconfig:"SMTP_FROM"`
	SMTPEncryption string `envconfig:"SMTP_ENCRYPTION" default:"starttls"`
}

// Load reads AppConfig from environment variables using envconfig.
// DataDir defaults to ~/.designpatterns if not set.
func Load() (*AppConfig, error) {
	var c AppConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		c.DataDir = filepath.Join(home, ".designpatterns")
	}
	return &c, nil
}

// SlogLevel converts the LogLevel string to a slog.Level.
// Unknown values default to slog.LevelInfo.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogDir returns the path to the log directory.
func (c *AppConfig) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// DBPath returns the path to the SQLite notification log database.
func (c *AppConfig) DBPath() string {
	return filepath.Join(c.DataDir, "designpatterns.db")
}

// EventLogPath returns the log listener destination.
func (c *AppConfig) EventLogPath() string {
	if c.EventLogFile != "" {
		return c.EventLogFile
	}
	return filepath.Join(c.LogDir(), "events.log")
}

// SMTPConfig returns the SMTP settings for the email listener.
func (c *AppConfig) SMTPConfig() notification.SMTPConfig {
	return notification.SMTPConfig{
		Host:       c.SMTPHost,
		Port:       c.SMTPPort,
		Username:   c.SMTPUsername,
		Password:   c.SMTPPassword,
		FromAddr:   c.SMTPFrom,
		Encryption: c.SMTPEncryption,
	}
}

// EmailEnabled reports whether both a recipient and an SMTP server are configured.
func (c *AppConfig) EmailEnabled() bool {
	return c.NotifyEmail != "" && c.SMTPConfig().Configured()
}
