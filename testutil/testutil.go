package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/icslabs/labtrack/db"
)

// SetupTestDB creates a fresh in-memory SQLite session with the full
// schema. The database lives exactly as long as the session's pinned
// connection, so the pool is capped at one connection.
func SetupTestDB(t *testing.T) *db.Session {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	ctx := context.Background()
	s, err := db.NewSession(ctx, sqlDB, db.SQLite{})
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return s
}

func exec(t *testing.T, s *db.Session, query string, args ...any) {
	t.Helper()
	if _, err := s.Exec(context.Background(), query, args...); err != nil {
		t.Fatalf("Failed to seed fixture: %v", err)
	}
}

// SeedUser inserts a user row.
func SeedUser(t *testing.T, s *db.Session, id, first, middle, last string) {
	exec(t, s, "INSERT INTO users (ucinetid, first_name, middle_name, last_name) VALUES (?, ?, ?, ?)",
		id, first, middle, last)
}

// SeedStudent inserts a user row and its student row.
func SeedStudent(t *testing.T, s *db.Session, id, first, middle, last string) {
	SeedUser(t, s, id, first, middle, last)
	exec(t, s, "INSERT INTO students (ucinetid) VALUES (?)", id)
}

// SeedAdmin inserts a user row and its admin row.
func SeedAdmin(t *testing.T, s *db.Session, id, first, middle, last string) {
	SeedUser(t, s, id, first, middle, last)
	exec(t, s, "INSERT INTO admins (admin_ucinetid) VALUES (?)", id)
}

// SeedEmail attaches an address to an existing user.
func SeedEmail(t *testing.T, s *db.Session, id, email string) {
	exec(t, s, "INSERT INTO emails (ucinetid, email_address) VALUES (?, ?)", id, email)
}

// SeedCourse inserts a course row.
func SeedCourse(t *testing.T, s *db.Session, id, title, quarter string) {
	exec(t, s, "INSERT INTO courses (course_id, title, quarter) VALUES (?, ?, ?)", id, title, quarter)
}

// SeedProject inserts a project row under a course.
func SeedProject(t *testing.T, s *db.Session, id, name, description, courseID string) {
	exec(t, s, "INSERT INTO projects (project_id, project_name, project_description, course_id) VALUES (?, ?, ?, ?)",
		id, name, description, courseID)
}

// SeedMachine inserts a machine row.
func SeedMachine(t *testing.T, s *db.Session, id, hostname, ip, status, location string) {
	exec(t, s, "INSERT INTO machines (machine_id, hostname, ip_address, operational_status, location) VALUES (?, ?, ?, ?, ?)",
		id, hostname, ip, status, location)
}

// SeedUse inserts a usage record.
func SeedUse(t *testing.T, s *db.Session, projectID, studentID, machineID, start, end string) {
	exec(t, s, "INSERT INTO student_use (project_id, ucinetid, machine_id, start_date, end_date) VALUES (?, ?, ?, ?, ?)",
		projectID, studentID, machineID, start, end)
}

// SeedManage links an admin to a machine.
func SeedManage(t *testing.T, s *db.Session, adminID, machineID string) {
	exec(t, s, "INSERT INTO manage (admin_ucinetid, machine_id) VALUES (?, ?)", adminID, machineID)
}

// CountRows returns the row count of a table.
func CountRows(t *testing.T, s *db.Session, table string) int64 {
	t.Helper()
	var n int64
	if err := s.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}
