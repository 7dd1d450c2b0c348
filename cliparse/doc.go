/*
Package cliparse handles configuration and command-line parsing.

# Configuration

ParseFlags resolves the store connection settings from CLI flags with
environment fallback (and .env support):

  - DATABASE_URL (-d): connection string, required
  - DATABASE_TYPE (-t): sqlite (default) or postgres

# Commands

ParseCommand validates the subcommand surface: import, insertStudent,
addEmail, deleteStudent, insertMachine, insertUse, updateCourse,
listCourse, popularCourse, adminEmails, activeStudent, machineUsage.
Argument counts are strictly checked; a wrong arity or a non-integer
count argument yields a UsageError carrying the usage line, and no
operation runs.
*/
package cliparse
