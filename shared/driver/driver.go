package driver

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dracory/tabbase/shared/constants"
)

// ErrUnsupported is returned for driver names outside the four supported dialects.
var ErrUnsupported = errors.New("unsupported driver")

// Normalize maps common driver aliases to canonical names.
func Normalize(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "pg", "postgresql", "pgx", "postgres":
		return constants.DriverPostgres
	case "mariadb", "mysql":
		return constants.DriverMySQL
	case "sqlite3", "sqlite":
		return constants.DriverSQLite
	case "mssql", "sqlserver":
		return constants.DriverSQLServer
	default:
		return strings.ToLower(d)
	}
}

// Dialector returns the gorm dialector for the given driver and DSN.
func Dialector(driverName, dsn string) (gorm.Dialector, error) {
	switch Normalize(driverName) {
	case constants.DriverPostgres:
		return postgres.Open(dsn), nil
	case constants.DriverMySQL:
		return mysql.Open(dsn), nil
	case constants.DriverSQLite:
		return sqlite.Open(dsn), nil
	case constants.DriverSQLServer:
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, driverName)
	}
}

// OpenDBWithDSN opens a database connection using the specified driver and DSN.
// Statement logging stays silent unless debug is set.
func OpenDBWithDSN(driverName, dsn string, debug bool) (*gorm.DB, error) {
	dialector, err := Dialector(driverName, dsn)
	if err != nil {
		return nil, err
	}
	return gorm.Open(dialector, Config(debug))
}

// Config is the gorm configuration shared by every connection.
func Config(debug bool) *gorm.Config {
	mode := logger.Silent
	if debug {
		mode = logger.Info
	}
	return &gorm.Config{
		Logger:                 logger.Default.LogMode(mode),
		SkipDefaultTransaction: true,
	}
}

// QuoteIdent quotes a single identifier for the given SQL dialect.
// Callers validate the identifier against the introspected schema first.
func QuoteIdent(driverName, ident string) string {
	switch Normalize(driverName) {
	case constants.DriverMySQL:
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	case constants.DriverSQLServer:
		return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
	default:
		// postgres, sqlite
		return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
	}
}
