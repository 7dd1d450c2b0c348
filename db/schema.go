package db

import (
	"fmt"
	"strings"
)

// Kind is the abstract column type; dialects map it to a concrete SQL type.
type Kind int

const (
	Text Kind = iota
	Date
)

type Column struct {
	Name string
	Kind Kind
}

// ForeignKey declares a reference from Columns to RefColumns of RefTable.
type ForeignKey struct {
	Columns    []string
	RefTable   string
	RefColumns []string
	OnDelete   string // "", or "CASCADE"
}

// Table is one entity definition: columns in declared (and load) order,
// primary key, and foreign keys. File is the stem of the loader's source
// file for this table (<stem>.csv).
type Table struct {
	Name        string
	File        string
	Columns     []Column
	PrimaryKey  []string
	ForeignKeys []ForeignKey
}

// Tables is the single source of truth for the schema. The slice is in
// topological order of the foreign-key graph: creation and bulk load walk
// it forward, drops walk it backward. Users must stay first; every other
// table depends on it directly or transitively.
var Tables = []Table{
	{
		Name: "users",
		File: "users",
		Columns: []Column{
			{Name: "ucinetid", Kind: Text},
			{Name: "first_name", Kind: Text},
			{Name: "middle_name", Kind: Text},
			{Name: "last_name", Kind: Text},
		},
		PrimaryKey: []string{"ucinetid"},
	},
	{
		Name: "admins",
		File: "admins",
		Columns: []Column{
			{Name: "admin_ucinetid", Kind: Text},
		},
		PrimaryKey: []string{"admin_ucinetid"},
		ForeignKeys: []ForeignKey{
			{Columns: []string{"admin_ucinetid"}, RefTable: "users", RefColumns: []string{"ucinetid"}},
		},
	},
	{
		Name: "students",
		File: "students",
		Columns: []Column{
			{Name: "ucinetid", Kind: Text},
		},
		PrimaryKey: []string{"ucinetid"},
		ForeignKeys: []ForeignKey{
			{Columns: []string{"ucinetid"}, RefTable: "users", RefColumns: []string{"ucinetid"}},
		},
	},
	{
		Name: "emails",
		File: "emails",
		Columns: []Column{
			{Name: "ucinetid", Kind: Text},
			{Name: "email_address", Kind: Text},
		},
		PrimaryKey: []string{"ucinetid", "email_address"},
		ForeignKeys: []ForeignKey{
			{Columns: []string{"ucinetid"}, RefTable: "users", RefColumns: []string{"ucinetid"}, OnDelete: "CASCADE"},
		},
	},
	{
		Name: "courses",
		File: "courses",
		Columns: []Column{
			{Name: "course_id", Kind: Text},
			{Name: "title", Kind: Text},
			{Name: "quarter", Kind: Text},
		},
		PrimaryKey: []string{"course_id"},
	},
	{
		Name: "projects",
		File: "projects",
		Columns: []Column{
			{Name: "project_id", Kind: Text},
			{Name: "project_name", Kind: Text},
			{Name: "project_description", Kind: Text},
			{Name: "course_id", Kind: Text},
		},
		PrimaryKey: []string{"project_id"},
		ForeignKeys: []ForeignKey{
			{Columns: []string{"course_id"}, RefTable: "courses", RefColumns: []string{"course_id"}},
		},
	},
	{
		Name: "machines",
		File: "machines",
		Columns: []Column{
			{Name: "machine_id", Kind: Text},
			{Name: "hostname", Kind: Text},
			{Name: "ip_address", Kind: Text},
			{Name: "operational_status", Kind: Text},
			{Name: "location", Kind: Text},
		},
		PrimaryKey: []string{"machine_id"},
	},
	{
		// The original dataset calls its source file use.csv.
		Name: "student_use",
		File: "use",
		Columns: []Column{
			{Name: "project_id", Kind: Text},
			{Name: "ucinetid", Kind: Text},
			{Name: "machine_id", Kind: Text},
			{Name: "start_date", Kind: Date},
			{Name: "end_date", Kind: Date},
		},
		PrimaryKey: []string{"ucinetid", "project_id", "machine_id"},
		ForeignKeys: []ForeignKey{
			{Columns: []string{"ucinetid"}, RefTable: "users", RefColumns: []string{"ucinetid"}},
			{Columns: []string{"project_id"}, RefTable: "projects", RefColumns: []string{"project_id"}},
			{Columns: []string{"machine_id"}, RefTable: "machines", RefColumns: []string{"machine_id"}},
		},
	},
	{
		Name: "manage",
		File: "manage",
		Columns: []Column{
			{Name: "admin_ucinetid", Kind: Text},
			{Name: "machine_id", Kind: Text},
		},
		PrimaryKey: []string{"admin_ucinetid", "machine_id"},
		ForeignKeys: []ForeignKey{
			{Columns: []string{"admin_ucinetid"}, RefTable: "admins", RefColumns: []string{"admin_ucinetid"}},
			{Columns: []string{"machine_id"}, RefTable: "machines", RefColumns: []string{"machine_id"}},
		},
	},
}

// HeadlineTables are the tables whose row counts the bulk loader
// reports after a successful load.
var HeadlineTables = []string{"users", "machines", "courses"}

// TableByName returns the table definition, or false when no table with
// that name is declared.
func TableByName(name string) (Table, bool) {
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// DropOrder is the reverse of Tables: dependents before their targets.
func DropOrder() []Table {
	out := make([]Table, len(Tables))
	for i, t := range Tables {
		out[len(Tables)-1-i] = t
	}
	return out
}

// CreateSQL renders the CREATE TABLE IF NOT EXISTS statement for t.
func (t Table) CreateSQL(d Dialect) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (", t.Name)
	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s %s", c.Name, d.ColumnType(c.Kind))
	}
	fmt.Fprintf(&b, ", PRIMARY KEY (%s)", strings.Join(t.PrimaryKey, ", "))
	for _, fk := range t.ForeignKeys {
		fmt.Fprintf(&b, ", FOREIGN KEY (%s) REFERENCES %s (%s)",
			strings.Join(fk.Columns, ", "), fk.RefTable, strings.Join(fk.RefColumns, ", "))
		if fk.OnDelete != "" {
			fmt.Fprintf(&b, " ON DELETE %s", fk.OnDelete)
		}
		b.WriteString(d.ForeignKeySuffix())
	}
	b.WriteString(")")
	return b.String()
}

// InsertSQL renders the positional insert for t, one placeholder per
// declared column. The loader binds row fields in declared column order.
func (t Table) InsertSQL() string {
	names := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.Name, strings.Join(names, ", "), strings.Join(marks, ", "))
}
