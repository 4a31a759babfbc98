package constants

// Supported database drivers
const (
	DriverMySQL     = "mysql"
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
	DriverSQLServer = "sqlserver"
)

// Action names for the single-endpoint router. Keep in sync with the page forms.
const (
	ActionHome     = "home"
	ActionAssetCSS = "asset_css"
	ActionHealthz  = "healthz"

	// Toolbar
	ActionRefresh = "refresh"
	ActionSort    = "sort"
	ActionSelect  = "select"
	ActionSearch  = "search"
	ActionAdd     = "add"
	ActionEdit    = "edit"
	ActionDelete  = "delete"
	ActionReport  = "report"

	ActionReportDownload = "report_download"

	// Modal form
	ActionModalSubmit = "modal_submit"
	ActionModalCancel = "modal_cancel"

	// JSON API
	ActionApiTablesList = "api_tables_list"
	ActionApiRows       = "api_rows"
)

// Notice levels carried on redirects back to the home page.
const (
	NoticeInfo    = "info"
	NoticeWarning = "warning"
	NoticeError   = "error"
)
