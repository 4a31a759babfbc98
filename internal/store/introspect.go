package store

import "github.com/dracory/tabbase/shared/constants"

// tablesQuery lists user tables in creation (sqlite) or name order.
func tablesQuery(driverName string) string {
	switch driverName {
	case constants.DriverPostgres:
		return `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_type = 'BASE TABLE' ORDER BY table_name`
	case constants.DriverMySQL:
		return `SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE' ORDER BY table_name`
	case constants.DriverSQLServer:
		return `SELECT table_name FROM information_schema.tables WHERE table_type = 'BASE TABLE' AND table_catalog = DB_NAME() ORDER BY table_name`
	default:
		return `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`
	}
}

// columnsQuery takes the table name as its only bound parameter and
// returns column names in declaration order.
func columnsQuery(driverName string) string {
	switch driverName {
	case constants.DriverPostgres:
		return `SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ? ORDER BY ordinal_position`
	case constants.DriverMySQL:
		return `SELECT column_name FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position`
	case constants.DriverSQLServer:
		return `SELECT column_name FROM information_schema.columns WHERE table_catalog = DB_NAME() AND table_name = ? ORDER BY ordinal_position`
	default:
		return `SELECT name FROM pragma_table_info(?) ORDER BY cid`
	}
}
