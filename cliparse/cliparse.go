package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port              int
	DatabaseType      string
	DatabaseURL       string
	GCPProjectID      string
	GoogleCredentials string
	DebounceMS        int
	TopWords          int
}

// ParseFlags validates flags and picks the storage backend
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("wordstorm", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (sqlite path or postgres URL)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Storage backend (memory, sqlite, postgres or firestore)")

	// Tuning knobs, env-only in production
	fs.IntVar(&cfg.DebounceMS, "debounce-ms", 0, "Wordcloud broadcast debounce window in milliseconds")
	fs.IntVar(&cfg.TopWords, "top-words", 0, "Number of words in each wordcloud broadcast")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	cfg.GCPProjectID = os.Getenv("GCP_PROJECT_ID")
	cfg.GoogleCredentials = os.Getenv("GOOGLE_CREDENTIALS")

	// Backend selection: explicit -t wins, otherwise infer from what is
	// configured. With nothing configured the server runs purely in memory.
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
	}
	if cfg.DatabaseType == "" {
		switch {
		case cfg.GCPProjectID != "":
			cfg.DatabaseType = "firestore"
		case cfg.DatabaseURL != "":
			cfg.DatabaseType = "sqlite"
		default:
			cfg.DatabaseType = "memory"
		}
	}

	switch cfg.DatabaseType {
	case "memory":
	case "sqlite", "postgres":
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("%s backend requires a database URL (use -d or DATABASE_URL env)", cfg.DatabaseType)
		}
	case "firestore":
		if cfg.GCPProjectID == "" {
			return Config{}, errors.New("firestore backend requires GCP_PROJECT_ID env")
		}
	default:
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.DatabaseType)
	}

	if cfg.DebounceMS == 0 {
		if msStr := os.Getenv("DEBOUNCE_MS"); msStr != "" {
			ms, err := strconv.Atoi(msStr)
			if err != nil {
				return Config{}, errors.New("invalid DEBOUNCE_MS env variable")
			}
			cfg.DebounceMS = ms
		}
	}
	if cfg.DebounceMS < 0 {
		return Config{}, errors.New("debounce window must not be negative")
	}

	if cfg.TopWords == 0 {
		if nStr := os.Getenv("TOP_WORDS"); nStr != "" {
			n, err := strconv.Atoi(nStr)
			if err != nil {
				return Config{}, errors.New("invalid TOP_WORDS env variable")
			}
			cfg.TopWords = n
		}
	}
	if cfg.TopWords < 0 {
		return Config{}, errors.New("top words count must not be negative")
	}

	return cfg, nil
}
