package tabbase

import (
	"log/slog"

	"github.com/dracory/tabbase/shared/constants"
	"github.com/dracory/tabbase/shared/types"
	"github.com/dracory/tabbase/shared/urls"
)

// Option adjusts the configuration passed to New.
type Option func(*types.Config)

// WithBasePath sets the mount path used when generating links, e.g. "/db".
func WithBasePath(p string) Option {
	return func(c *types.Config) { c.BasePath = p }
}

// WithActionParam sets the query parameter that selects behavior.
func WithActionParam(p string) Option {
	return func(c *types.Config) { c.ActionParam = p }
}

// WithSessionSecret sets the secret the CSRF tokens are derived from.
func WithSessionSecret(s string) Option {
	return func(c *types.Config) { c.SessionSecret = s }
}

// WithReportDir sets where reports go when the user leaves the path empty.
func WithReportDir(dir string) Option {
	return func(c *types.Config) { c.ReportDir = dir }
}

// withDefaults applies default values to the configuration.
func withDefaults(c types.Config) types.Config {
	if c.ActionParam == "" {
		c.ActionParam = urls.DefaultActionParam
	}
	if c.BasePath == "" {
		c.BasePath = "/"
	}
	if c.Driver == "" {
		c.Driver = constants.DriverSQLite
	}
	if c.ReportDir == "" {
		c.ReportDir = "."
	}
	if c.SessionSecret == "" {
		c.SessionSecret = defaultSessionSecret
		slog.Warn("SESSION_SECRET not set, using the insecure development default")
	}
	return c
}
