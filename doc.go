/*
Labtrack tracks university lab-machine usage: users, students, admins,
courses, projects, machines, and the usage/management relations between
them.

# Running

One subcommand per invocation, with the store selected by flags or
environment:

	DATABASE_URL=file:lab.db labtrack import ./data
	labtrack -d file:lab.db insertStudent jdoe jdoe@uci.edu John Q Doe
	labtrack -d file:lab.db popularCourse 3

# Configuration

  - DATABASE_URL (-d): connection string (SQLite file URL or PostgreSQL DSN)
  - DATABASE_TYPE (-t): sqlite (default) or postgres

# Architecture

  - cliparse: configuration and strict-arity command parsing
  - db: entity schema, session/dialect layer, schema reset
  - importer: transactional bulk load from CSV folders
  - ops: atomic write operations
  - reports: read-only reporting queries
  - models: shared row types

See package documentation for each component.
*/
package main
