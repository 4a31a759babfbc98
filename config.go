package tabbase

import (
	"flag"
	"fmt"
	"os"

	"github.com/dracory/env"

	"github.com/dracory/tabbase/internal/seed"
	"github.com/dracory/tabbase/shared/constants"
	"github.com/dracory/tabbase/shared/driver"
	"github.com/dracory/tabbase/shared/types"
)

const defaultSessionSecret = "dev-insecure-change-me"

// DefaultDSN is the database file the sample data lives in.
const DefaultDSN = seed.DefaultFile

// LoadConfig reads flags/env with sensible defaults.
// Flags take precedence over env.
func LoadConfig() (types.Config, error) {
	return LoadConfigFrom(flag.CommandLine, os.Args[1:])
}

// LoadConfigFrom is LoadConfig over an explicit flag set and argument list.
func LoadConfigFrom(fs *flag.FlagSet, args []string) (types.Config, error) {
	var cfg types.Config

	// Optionally load from .env files (missing files are ignored inside the lib)
	env.Load(".env")

	// Defaults via env package
	cfg.HTTPPort = env.GetIntOrDefault("HTTP_PORT", 8080)
	cfg.BasePath = env.GetStringOrDefault("BASE_URL", "/")
	cfg.ActionParam = env.GetStringOrDefault("ACTION_PARAM", "action")
	cfg.Driver = env.GetStringOrDefault("DB_DRIVER", constants.DriverSQLite)
	cfg.DSN = env.GetStringOrDefault("DB_DSN", DefaultDSN)
	cfg.Seed = env.GetBoolOrDefault("SEED", true)
	cfg.ReportDir = env.GetStringOrDefault("REPORT_DIR", ".")
	cfg.SessionSecret = env.GetStringOrDefault("SESSION_SECRET", defaultSessionSecret)
	cfg.DebugSQL = env.GetBoolOrDefault("DEBUG_SQL", false)

	// Flags
	port := fs.Int("port", cfg.HTTPPort, "HTTP port to listen on")
	base := fs.String("base", cfg.BasePath, "Base path to mount handler under (e.g. /db)")
	drv := fs.String("driver", cfg.Driver, "Database driver: sqlite, postgres, mysql, sqlserver")
	dsn := fs.String("dsn", cfg.DSN, "Data source name; the database file for sqlite")
	seedFlag := fs.Bool("seed", cfg.Seed, "Recreate the sample tables and rows at startup")
	reports := fs.String("reports", cfg.ReportDir, "Directory for reports saved without a path")
	debug := fs.Bool("debug-sql", cfg.DebugSQL, "Log every SQL statement")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.HTTPPort = *port
	cfg.BasePath = *base
	cfg.Driver = driver.Normalize(*drv)
	cfg.DSN = *dsn
	cfg.Seed = *seedFlag
	cfg.ReportDir = *reports
	cfg.DebugSQL = *debug

	if cfg.SessionSecret == "" {
		return cfg, fmt.Errorf("SESSION_SECRET is required")
	}
	if _, err := driver.Dialector(cfg.Driver, cfg.DSN); err != nil {
		return cfg, err
	}
	return cfg, nil
}
