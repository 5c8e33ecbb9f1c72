// Package config loads and validates environment configuration.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"kopilka/internal/core"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend string

	// REST backend
	StoreURL     string
	StoreTimeout time.Duration

	// SQLite backend
	SQLiteDBPath string

	// Session
	SessionFile string

	// Currency
	BaseCurrency  string
	CurrencyRates string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		DataBackend: getEnv("DATA_BACKEND", "memory"),

		StoreURL:     getEnv("STORE_URL", ""),
		StoreTimeout: getEnvDuration("STORE_TIMEOUT", 30*time.Second),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/kopilka.db"),

		SessionFile: getEnv("SESSION_FILE", "./data/session.json"),

		BaseCurrency:  getEnv("BASE_CURRENCY", core.BaseCurrency),
		CurrencyRates: getEnv("CURRENCY_RATES", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "kopilka"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_events"),
	}
}

// Rates returns the configured rate table. An empty CURRENCY_RATES
// falls back to the built-in table.
func (c *Config) Rates() (core.RateTable, error) {
	if strings.TrimSpace(c.CurrencyRates) == "" {
		return core.DefaultRates(), nil
	}
	return ParseRates(c.CurrencyRates)
}

// ParseRates parses a "CODE=FACTOR,CODE=FACTOR" list.
func ParseRates(s string) (core.RateTable, error) {
	table := core.RateTable{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		code, factor, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid rate entry %q: want CODE=FACTOR", pair)
		}
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			return nil, fmt.Errorf("invalid rate entry %q: empty currency code", pair)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(factor), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid rate entry %q: %w", pair, err)
		}
		table[code] = f
	}
	return table, nil
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"memory", "rest", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "rest" {
		if c.StoreURL == "" {
			errors = append(errors, "store URL cannot be empty when using rest backend")
		} else if parsedURL, err := url.Parse(c.StoreURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid store URL '%s': %v", c.StoreURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid store URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
	}

	if c.DataBackend == "sqlite" {
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

	if c.SessionFile == "" {
		errors = append(errors, "session file path cannot be empty")
	}

	if c.BaseCurrency == "" {
		errors = append(errors, "base currency cannot be empty")
	}
	if rates, err := c.Rates(); err != nil {
		errors = append(errors, fmt.Sprintf("invalid currency rates: %v", err))
	} else {
		if base, ok := rates[c.BaseCurrency]; ok && base != 1 {
			errors = append(errors, fmt.Sprintf("base currency %s must have rate 1, got %v", c.BaseCurrency, base))
		}
		for code, factor := range rates {
			if factor <= 0 {
				errors = append(errors, fmt.Sprintf("rate for %s must be positive, got %v", code, factor))
			}
		}
	}

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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
