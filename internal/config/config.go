package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Profile persistence
	ProfileBackend string // "memory" or "sqlite"
	ProfileDir     string // memory backend: directory of profile JSON files
	SQLiteDBPath   string

	// Rate source
	RatesBackend  string // "file" or "sheets"
	RatesFilePath string

	// AMQP (optional; empty URL disables commit events)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		ProfileBackend: getEnv("PROFILE_BACKEND", "sqlite"),
		ProfileDir:     getEnv("PROFILE_DIR", "./data/profiles"),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/budgettracker.db"),

		RatesBackend:  getEnv("RATES_BACKEND", "file"),
		RatesFilePath: getEnv("RATES_FILE_PATH", "./data/exchange_rates.json"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "budgettracker"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "profile_commits"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate profile backend
	switch c.ProfileBackend {
	case "memory", "sqlite":
	default:
		errors = append(errors, fmt.Sprintf("invalid profile backend '%s': must be one of [memory sqlite]", c.ProfileBackend))
	}

	// Validate SQLite configuration if backend is sqlite
	if c.ProfileBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate rates backend
	switch c.RatesBackend {
	case "file":
		if c.RatesFilePath == "" {
			errors = append(errors, "rates file path cannot be empty when using file rates backend")
		}
	case "sheets":
		if os.Getenv("GOOGLE_SPREADSHEET_ID") == "" {
			errors = append(errors, "GOOGLE_SPREADSHEET_ID is required when using sheets rates backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid rates backend '%s': must be one of [file sheets]", c.RatesBackend))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
