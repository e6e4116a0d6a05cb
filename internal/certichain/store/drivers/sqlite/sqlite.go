// Package sqlite opens the certichain store on modernc.org/sqlite.
package sqlite

import (
	"errors"
	"strings"

	"github.com/aussiebroadwan/certichain/internal/certichain/store/drivers/sqlstore"
	"github.com/jmoiron/sqlx"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const driverName = "sqlite"

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// NewStore opens (or creates) the database at dsn. A plain file path or
// ":memory:" is accepted, foreign keys and a busy timeout are always enabled.
func NewStore(dsn string) (*sqlstore.Store, error) {
	db, err := sqlx.Open(driverName, withPragmas(dsn))
	if err != nil {
		return nil, err
	}

	// One writer at a time, sqlite serialises them anyway.
	db.SetMaxOpenConns(1)

	return sqlstore.New(db, sqlstore.Dialect{
		IsUniqueViolation: isUniqueViolation,
		Migrate:           migrateUp,
	}), nil
}

func withPragmas(dsn string) string {
	pragmas := []string{"_pragma=foreign_keys(1)", "_pragma=busy_timeout(5000)"}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	for _, p := range pragmas {
		if strings.Contains(dsn, p[:strings.Index(p, "(")]) {
			continue
		}
		dsn += sep + p
		sep = "&"
	}
	return dsn
}

func isUniqueViolation(err error) bool {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
