package types

// Config contains the configuration for the server and web handlers
type Config struct {
	// HTTPPort is the port to listen on
	HTTPPort int
	// BasePath is the base URL path for the application
	BasePath string
	// ActionParam is the query parameter used for actions
	ActionParam string
	// Driver is the database driver name (sqlite, postgres, mysql, sqlserver)
	Driver string
	// DSN is the data source name; for sqlite, the database file path
	DSN string
	// Seed recreates the sample tables and rows at startup
	Seed bool
	// ReportDir is where reports go when the user leaves the path empty
	ReportDir string
	// SessionSecret is the secret used to derive CSRF tokens
	SessionSecret string
	// DebugSQL turns on gorm statement logging
	DebugSQL bool
}
