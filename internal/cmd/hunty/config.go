// Package hunty parses hunty CLI flags and dispatches subcommands against
// the hunt controller.
package hunty

import (
	"flag"

	entrypoint "github.com/hunty/huntcore/internal/platform/cmd"
)

// Storage driver names accepted by the -driver flag.
const (
	DriverBBolt  = "bbolt"
	DriverSQLite = "sqlite"
)

// Config holds hunty command configuration.
type Config struct {
	// Driver selects the storage backend: bbolt or sqlite.
	Driver string `env:"HUNTY_STORAGE_DRIVER" envDefault:"bbolt"`
	// Path is the database file path for the selected driver.
	Path string `env:"HUNTY_STORAGE_PATH" envDefault:"hunty.db"`
	// Locale selects the catalog for user-facing error messages.
	Locale string `env:"HUNTY_LOCALE" envDefault:"en-US"`
}

// ParseConfig parses environment and flags into a Config. The returned args
// are the remaining positional arguments: the subcommand and its flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, []string, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, nil, err
	}
	fs.StringVar(&cfg.Driver, "driver", cfg.Driver, "storage driver: bbolt or sqlite")
	fs.StringVar(&cfg.Path, "path", cfg.Path, "database file path")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for user-facing messages")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, nil, err
	}
	return cfg, fs.Args(), nil
}
