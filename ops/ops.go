package ops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/icslabs/labtrack/db"
)

// ErrNoSuchStudent is returned by DeleteStudent when neither a student
// nor a user row matched the given id.
var ErrNoSuchStudent = errors.New("no such student")

// Ops exposes the write operations. Every operation is one transaction:
// all statements apply or none do.
type Ops struct {
	s *db.Session
}

func New(s *db.Session) *Ops {
	return &Ops{s: s}
}

// withTx runs fn inside a transaction, rolling back on any error.
func (o *Ops) withTx(ctx context.Context, fn func(tx *db.Tx) error) error {
	tx, err := o.s.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// CreateStudent inserts the user, student and email rows for a new
// student. Fails whole if the id or the (id, email) pair already exists.
func (o *Ops) CreateStudent(ctx context.Context, id, email, first, middle, last string) error {
	err := o.withTx(ctx, func(tx *db.Tx) error {
		if _, err := tx.Exec(ctx,
			"INSERT INTO users (ucinetid, first_name, middle_name, last_name) VALUES (?, ?, ?, ?)",
			id, first, middle, last); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		if _, err := tx.Exec(ctx,
			"INSERT INTO students (ucinetid) VALUES (?)", id); err != nil {
			return fmt.Errorf("insert student: %w", err)
		}
		if _, err := tx.Exec(ctx,
			"INSERT INTO emails (ucinetid, email_address) VALUES (?, ?)", id, email); err != nil {
			return fmt.Errorf("insert email: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create student %s: %w", id, err)
	}
	slog.Info("student created", "ucinetid", id)
	return nil
}

// AddEmail attaches another address to an existing user. Fails if the
// user is absent or the pair already exists.
func (o *Ops) AddEmail(ctx context.Context, id, email string) error {
	err := o.withTx(ctx, func(tx *db.Tx) error {
		_, err := tx.Exec(ctx,
			"INSERT INTO emails (ucinetid, email_address) VALUES (?, ?)", id, email)
		return err
	})
	if err != nil {
		return fmt.Errorf("add email for %s: %w", id, err)
	}
	return nil
}

// DeleteStudent removes the student and user rows; the user's emails go
// with the user via the cascade. The student row must go first to
// satisfy the students→users reference.
func (o *Ops) DeleteStudent(ctx context.Context, id string) error {
	err := o.withTx(ctx, func(tx *db.Tx) error {
		res, err := tx.Exec(ctx, "DELETE FROM students WHERE ucinetid = ?", id)
		if err != nil {
			return fmt.Errorf("delete student row: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		res, err = tx.Exec(ctx, "DELETE FROM users WHERE ucinetid = ?", id)
		if err != nil {
			return fmt.Errorf("delete user row: %w", err)
		}
		m, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n+m == 0 {
			return ErrNoSuchStudent
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete student %s: %w", id, err)
	}
	slog.Info("student deleted", "ucinetid", id)
	return nil
}

// CreateMachine inserts one machine row.
func (o *Ops) CreateMachine(ctx context.Context, id, hostname, ip, status, location string) error {
	err := o.withTx(ctx, func(tx *db.Tx) error {
		_, err := tx.Exec(ctx,
			"INSERT INTO machines (machine_id, hostname, ip_address, operational_status, location) VALUES (?, ?, ?, ?, ?)",
			id, hostname, ip, status, location)
		return err
	})
	if err != nil {
		return fmt.Errorf("create machine %s: %w", id, err)
	}
	return nil
}

// RecordUsage inserts one usage record. Fails if any referenced id is
// absent or the (student, project, machine) key is already present.
func (o *Ops) RecordUsage(ctx context.Context, projectID, id, machineID, start, end string) error {
	err := o.withTx(ctx, func(tx *db.Tx) error {
		_, err := tx.Exec(ctx,
			"INSERT INTO student_use (project_id, ucinetid, machine_id, start_date, end_date) VALUES (?, ?, ?, ?, ?)",
			projectID, id, machineID, start, end)
		return err
	})
	if err != nil {
		return fmt.Errorf("record usage for %s on %s: %w", id, machineID, err)
	}
	return nil
}

// UpdateCourseTitle sets the title of a course. Matching zero rows is
// still success; only execution errors fail.
func (o *Ops) UpdateCourseTitle(ctx context.Context, courseID, title string) error {
	err := o.withTx(ctx, func(tx *db.Tx) error {
		_, err := tx.Exec(ctx, "UPDATE courses SET title = ? WHERE course_id = ?", title, courseID)
		return err
	})
	if err != nil {
		return fmt.Errorf("update course %s: %w", courseID, err)
	}
	return nil
}
