package cliparse

import (
	"errors"
	"flag"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL  string
	DatabaseType string
}

// ParseFlags reads connection settings from flags with environment
// fallback. A .env file in the working directory is honored when
// present. Remaining arguments (the subcommand and its parameters) are
// returned untouched.
func ParseFlags(args []string) (Config, []string, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("labtrack", flag.ContinueOnError)
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}

	// Fall back to environment variables
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, nil, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}

	return cfg, fs.Args(), nil
}
