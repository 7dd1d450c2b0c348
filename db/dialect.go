package db

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect covers the differences between the two supported backends. All
// query text in this module is written with ? placeholders and passed
// through Rebind before execution.
type Dialect interface {
	// Driver is the database/sql driver name to open.
	Driver() string
	// Rebind rewrites ? placeholders into the backend's native form.
	Rebind(query string) string
	// ColumnType maps an abstract column kind to a SQL type name.
	ColumnType(k Kind) string
	// ForeignKeySuffix is appended to each FOREIGN KEY clause.
	ForeignKeySuffix() string
	// DropTableSQL renders a drop tolerant of the table being absent.
	DropTableSQL(name string) string
	// DisableForeignKeys and EnableForeignKeys toggle constraint
	// enforcement for the session (outside any transaction).
	DisableForeignKeys() string
	EnableForeignKeys() string
	// DeferForeignKeys and ImmediateForeignKeys toggle enforcement
	// inside an open transaction; deferred violations are checked at
	// commit.
	DeferForeignKeys() string
	ImmediateForeignKeys() string
	// ForeignKeyCheck is a row-returning integrity scan: any result row
	// is a violation. Empty when ImmediateForeignKeys already surfaces
	// outstanding violations as an error.
	ForeignKeyCheck() string
	// GroupConcat renders the string-aggregation expression.
	GroupConcat(expr, sep string) string
}

// DialectFor resolves a DATABASE_TYPE value.
func DialectFor(name string) (Dialect, error) {
	switch name {
	case "sqlite":
		return SQLite{}, nil
	case "postgres":
		return Postgres{}, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q (want sqlite or postgres)", name)
	}
}

// SQLite is the default backend (modernc.org/sqlite, pure Go).
type SQLite struct{}

func (SQLite) Driver() string             { return "sqlite" }
func (SQLite) Rebind(query string) string { return query }

func (SQLite) ColumnType(k Kind) string {
	// Dates are stored as ISO-8601 text; lexicographic order matches
	// chronological order, which the range queries rely on.
	return "TEXT"
}

func (SQLite) ForeignKeySuffix() string { return "" }

func (SQLite) DropTableSQL(name string) string {
	return "DROP TABLE IF EXISTS " + name
}

func (SQLite) DisableForeignKeys() string { return "PRAGMA foreign_keys = OFF" }
func (SQLite) EnableForeignKeys() string  { return "PRAGMA foreign_keys = ON" }

func (SQLite) DeferForeignKeys() string     { return "PRAGMA defer_foreign_keys = ON" }
func (SQLite) ImmediateForeignKeys() string { return "PRAGMA defer_foreign_keys = OFF" }

// SQLite only checks deferred violations at COMMIT; a failed commit
// strands the transaction, so the loader scans explicitly instead.
func (SQLite) ForeignKeyCheck() string { return "PRAGMA foreign_key_check" }

func (SQLite) GroupConcat(expr, sep string) string {
	return fmt.Sprintf("group_concat(%s, '%s')", expr, sep)
}

// Postgres is the alternative backend (lib/pq).
type Postgres struct{}

func (Postgres) Driver() string { return "postgres" }

func (Postgres) Rebind(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (Postgres) ColumnType(k Kind) string {
	if k == Date {
		return "DATE"
	}
	return "TEXT"
}

// Constraints must be deferrable for SET CONSTRAINTS to reach them.
func (Postgres) ForeignKeySuffix() string { return " DEFERRABLE INITIALLY IMMEDIATE" }

func (Postgres) DropTableSQL(name string) string {
	return "DROP TABLE IF EXISTS " + name + " CASCADE"
}

func (Postgres) DisableForeignKeys() string { return "SET session_replication_role = 'replica'" }
func (Postgres) EnableForeignKeys() string  { return "SET session_replication_role = 'origin'" }

func (Postgres) DeferForeignKeys() string     { return "SET CONSTRAINTS ALL DEFERRED" }
func (Postgres) ImmediateForeignKeys() string { return "SET CONSTRAINTS ALL IMMEDIATE" }

// SET CONSTRAINTS ALL IMMEDIATE already errors on outstanding
// violations; no separate scan needed.
func (Postgres) ForeignKeyCheck() string { return "" }

func (Postgres) GroupConcat(expr, sep string) string {
	return fmt.Sprintf("string_agg(%s, '%s')", expr, sep)
}
