/*
Package db holds the entity schema, the session abstraction, and the
schema manager.

# Schema

Tables is the single ordered source of truth: column layout, primary and
foreign keys, and the loader file stem for every entity. The slice is in
topological order of the foreign-key graph, so table creation and the
bulk load walk it forward while drops walk DropOrder().

	users ── admins, students, emails
	courses ── projects
	users, projects, machines ── student_use
	admins, machines ── manage

# Sessions

Session pins one connection and threads the dialect through every
statement. Reset drops and recreates the whole schema:

	s, err := db.Connect(ctx, "sqlite", "file:lab.db")
	if err != nil { ... }
	defer s.Close()
	if err := s.Reset(ctx); err != nil { ... }

Safe to call Reset repeatedly; drops tolerate absent tables and creates
use IF NOT EXISTS.

# Dialects

Two backends: SQLite (modernc.org/sqlite, the default) and PostgreSQL
(lib/pq). Queries are written with ? placeholders and rebound per
dialect; foreign-key suspension maps to PRAGMA foreign_keys on SQLite
and session_replication_role on PostgreSQL.
*/
package db
