package util

const (
	DefaultLimit  = 20
	DefaultOffset = 0
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)
