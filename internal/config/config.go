package config

import (
	"os"
	"path/filepath"

	"github.com/abhisek/quizzer/internal/store"
)

// Config holds runtime settings. Environment variables provide the base
// values; command-line flags override them.
type Config struct {
	// DBPath is the SQLite file holding attempt history. Empty means the
	// default XDG location.
	DBPath string

	// BankPath is an optional JSON or YAML question bank replacing the
	// bundled one.
	BankPath string

	LogLevel string

	// LogFile receives structured logs. Empty means quizzer.log next to the
	// database; "-" means stderr.
	LogFile string
}

// FromEnv reads QUIZZER_* environment variables.
func FromEnv() Config {
	return Config{
		DBPath:   envOr("QUIZZER_DB", ""),
		BankPath: envOr("QUIZZER_BANK", ""),
		LogLevel: envOr("QUIZZER_LOG_LEVEL", "info"),
		LogFile:  envOr("QUIZZER_LOG_FILE", ""),
	}
}

// Resolve fills in default paths and creates the directories they need.
func (c *Config) Resolve() error {
	if c.DBPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return err
		}
		c.DBPath = p
	} else if err := store.EnsureDir(c.DBPath); err != nil {
		return err
	}

	if c.LogFile == "" {
		c.LogFile = filepath.Join(filepath.Dir(c.DBPath), "quizzer.log")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}

// LogPath returns the path to hand to the logger; empty means stderr.
func (c Config) LogPath() string {
	if c.LogFile == "-" {
		return ""
	}
	return c.LogFile
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
