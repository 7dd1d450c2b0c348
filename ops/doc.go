/*
Package ops implements the write operations: create student, add email,
delete student, create machine, record usage, update course title.

Each operation runs in its own transaction and either fully applies or
fully rolls back; constraint violations come back as errors, never as
partial effects. Presentation (Success/Fail lines) belongs to the
caller.
*/
package ops
