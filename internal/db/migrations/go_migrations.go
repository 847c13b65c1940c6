// Package migrations holds the schema migrations, written in Go because the
// DDL differs per database driver.
package migrations

// dialect selects the DDL variant; db.Migrate sets it before goose.Up.
var dialect string

// SetDialect selects the goose dialect ("sqlite3", "postgres" or "mysql")
// used by the migrations in this package.
func SetDialect(d string) {
	dialect = d
}
