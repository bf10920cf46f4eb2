// Package config loads search configuration from CIDSEARCH_* environment
// variables.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/cidreporter/cidsearch-go/pkg/cidsearch"
	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/parser"
)

// DefaultSubdir is the folder under the documents directory that holds the
// workbooks.
const DefaultSubdir = "cid"

// Config holds all application configuration
type Config struct {
	// Search contains workbook selection and matching settings
	Search SearchConfig

	// Logging contains logger settings
	Logging LoggingConfig
}

// SearchConfig holds workbook selection and matching configuration
type SearchConfig struct {
	// Mode is "fanout" or "single"
	Mode string

	// Directory is scanned for workbooks in fanout mode
	Directory string

	// Workbook is the single workbook searched in single mode
	Workbook string

	// IgnoreCase folds case when comparing values
	IgnoreCase bool

	// Trim trims whitespace from values and query
	Trim bool

	// SkipThroughHeader skips rows up to the detected header instead of row 0 only
	SkipThroughHeader bool

	// MaxWorkers bounds concurrent sheet scans
	MaxWorkers int

	// MaxOpenFiles bounds concurrently decoded workbooks
	MaxOpenFiles int

	// DateLayout is the Go time layout for date cells
	DateLayout string
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	// Level is debug, info, warn or error
	Level string

	// Format is text or json
	Format string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Search: SearchConfig{
			Mode:              getEnvOrDefault("CIDSEARCH_MODE", string(cidsearch.ModeFanOut)),
			Directory:         getEnvOrDefault("CIDSEARCH_DIR", DefaultDirectory()),
			Workbook:          getEnvOrDefault("CIDSEARCH_WORKBOOK", ""),
			IgnoreCase:        getEnvAsBoolOrDefault("CIDSEARCH_IGNORE_CASE", false),
			Trim:              getEnvAsBoolOrDefault("CIDSEARCH_TRIM", false),
			SkipThroughHeader: getEnvAsBoolOrDefault("CIDSEARCH_SKIP_THROUGH_HEADER", false),
			MaxWorkers:        getEnvAsIntOrDefault("CIDSEARCH_MAX_WORKERS", runtime.NumCPU()),
			MaxOpenFiles:      getEnvAsIntOrDefault("CIDSEARCH_MAX_OPEN_FILES", cidsearch.DefaultMaxOpenFiles),
			DateLayout:        getEnvOrDefault("CIDSEARCH_DATE_LAYOUT", parser.DefaultDateLayout),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("CIDSEARCH_LOG_LEVEL", "info"),
			Format: getEnvOrDefault("CIDSEARCH_LOG_FORMAT", "text"),
		},
	}

	return cfg, nil
}

// DefaultDirectory returns <home>/Documents/cid, or ./cid when the home
// directory is unknown.
func DefaultDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultSubdir
	}
	return filepath.Join(home, "Documents", DefaultSubdir)
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault returns the environment variable as bool or a default
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch cidsearch.Mode(c.Search.Mode) {
	case cidsearch.ModeFanOut:
		if c.Search.Directory == "" {
			return errors.New("directory cannot be empty in fanout mode")
		}
	case cidsearch.ModeSingle:
		if c.Search.Workbook == "" {
			return errors.New("workbook cannot be empty in single mode")
		}
	default:
		return errors.New("mode must be 'fanout' or 'single'")
	}

	if c.Search.MaxWorkers < 1 {
		return errors.New("max workers must be at least 1")
	}

	if c.Search.MaxOpenFiles < 1 {
		return errors.New("max open files must be at least 1")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.New("log level must be debug, info, warn or error")
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return errors.New("log format must be 'text' or 'json'")
	}

	return nil
}

// SearchOptions maps the configuration onto searcher options.
func (c *Config) SearchOptions() cidsearch.Options {
	return cidsearch.Options{
		Mode:         cidsearch.Mode(c.Search.Mode),
		Directory:    c.Search.Directory,
		WorkbookPath: c.Search.Workbook,
		Match: parser.MatchOptions{
			IgnoreCase:        c.Search.IgnoreCase,
			TrimSpace:         c.Search.Trim,
			SkipThroughHeader: c.Search.SkipThroughHeader,
			Format:            parser.FormatOptions{DateLayout: c.Search.DateLayout},
		},
		MaxWorkers:   c.Search.MaxWorkers,
		MaxOpenFiles: c.Search.MaxOpenFiles,
	}
}
