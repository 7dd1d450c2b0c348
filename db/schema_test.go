package db

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestProperty_SchemaTopologicalOrder validates that Tables is a
// topological sort of the foreign-key graph: for any table, every
// foreign-key target is declared strictly earlier, and DropOrder is the
// exact reverse. Creation, drops and the bulk load all lean on this.
func TestProperty_SchemaTopologicalOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	index := make(map[string]int, len(Tables))
	for i, tbl := range Tables {
		index[tbl.Name] = i
	}

	properties.Property("every FK target precedes its referrer", prop.ForAll(
		func(i int) bool {
			tbl := Tables[i]
			for _, fk := range tbl.ForeignKeys {
				target, ok := index[fk.RefTable]
				if !ok || target >= i {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, len(Tables)-1),
	))

	properties.Property("drop order is the reverse of create order", prop.ForAll(
		func(i int) bool {
			drop := DropOrder()
			return drop[i].Name == Tables[len(Tables)-1-i].Name
		},
		gen.IntRange(0, len(Tables)-1),
	))

	properties.TestingRun(t)
}

func TestUsersFirst(t *testing.T) {
	// The loader inserts users before deferring FK checks; everything
	// else references users directly or transitively.
	if Tables[0].Name != "users" {
		t.Fatalf("expected users first, got %s", Tables[0].Name)
	}
	if len(Tables[0].ForeignKeys) != 0 {
		t.Error("users must not reference any table")
	}
}

func TestCreateSQL(t *testing.T) {
	emails, ok := TableByName("emails")
	if !ok {
		t.Fatal("emails table not declared")
	}

	ddl := emails.CreateSQL(SQLite{})
	for _, want := range []string{
		"CREATE TABLE IF NOT EXISTS emails",
		"PRIMARY KEY (ucinetid, email_address)",
		"FOREIGN KEY (ucinetid) REFERENCES users (ucinetid) ON DELETE CASCADE",
	} {
		if !strings.Contains(ddl, want) {
			t.Errorf("DDL missing %q:\n%s", want, ddl)
		}
	}

	pgDDL := emails.CreateSQL(Postgres{})
	if !strings.Contains(pgDDL, "DEFERRABLE INITIALLY IMMEDIATE") {
		t.Errorf("postgres DDL must declare deferrable FKs:\n%s", pgDDL)
	}
}

func TestInsertSQL(t *testing.T) {
	use, ok := TableByName("student_use")
	if !ok {
		t.Fatal("student_use table not declared")
	}
	got := use.InsertSQL()
	want := "INSERT INTO student_use (project_id, ucinetid, machine_id, start_date, end_date) VALUES (?, ?, ?, ?, ?)"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRebind(t *testing.T) {
	q := "INSERT INTO t (a, b) VALUES (?, ?)"
	if got := (SQLite{}).Rebind(q); got != q {
		t.Errorf("sqlite rebind should be identity, got %q", got)
	}
	want := "INSERT INTO t (a, b) VALUES ($1, $2)"
	if got := (Postgres{}).Rebind(q); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDialectFor(t *testing.T) {
	if _, err := DialectFor("sqlite"); err != nil {
		t.Error(err)
	}
	if _, err := DialectFor("postgres"); err != nil {
		t.Error(err)
	}
	if _, err := DialectFor("oracle"); err == nil {
		t.Error("expected error for unsupported type")
	}
}
