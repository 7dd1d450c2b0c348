/*
Package reports implements the read-only reporting queries: courses for
a student, most popular courses, admins for a machine, active students
on a machine, and per-machine usage under a course.

All queries are pure functions of current table contents and return
ordered, fully materialized slices; on any error the partial result is
discarded.
*/
package reports
