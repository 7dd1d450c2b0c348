package reports

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/icslabs/labtrack/db"
	"github.com/icslabs/labtrack/models"
)

// Reports exposes the read-only reporting queries. Each returns a fully
// materialized, ordered slice or an error, never a partial result.
type Reports struct {
	s *db.Session
}

func New(s *db.Session) *Reports {
	return &Reports{s: s}
}

// CoursesForStudent lists the distinct courses the student has usage
// records under, ordered by course id ascending.
func (r *Reports) CoursesForStudent(ctx context.Context, id string) ([]models.Course, error) {
	rows, err := r.s.Query(ctx, `
		SELECT DISTINCT c.course_id, c.title, c.quarter
		FROM courses c
		JOIN projects p ON p.course_id = c.course_id
		JOIN student_use su ON su.project_id = p.project_id
		WHERE su.ucinetid = ?
		ORDER BY c.course_id ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("list courses for %s: %w", id, err)
	}
	return collect(rows, func(rs *sql.Rows) (models.Course, error) {
		var c models.Course
		err := rs.Scan(&c.CourseID, &c.Title, &c.Quarter)
		return c, err
	})
}

// MostPopularCourses ranks courses by total usage-record count, count
// descending with course id descending as tie-break, top n.
func (r *Reports) MostPopularCourses(ctx context.Context, n int) ([]models.CoursePopularity, error) {
	if n < 0 {
		return nil, fmt.Errorf("most popular courses: negative limit %d", n)
	}
	rows, err := r.s.Query(ctx, `
		SELECT c.course_id, c.title, COUNT(*) AS use_count
		FROM courses c
		JOIN projects p ON p.course_id = c.course_id
		JOIN student_use su ON su.project_id = p.project_id
		GROUP BY c.course_id, c.title
		ORDER BY use_count DESC, c.course_id DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("most popular courses: %w", err)
	}
	return collect(rows, func(rs *sql.Rows) (models.CoursePopularity, error) {
		var c models.CoursePopularity
		err := rs.Scan(&c.CourseID, &c.Title, &c.UseCount)
		return c, err
	})
}

// AdminsForMachine lists the admins managing the machine with their
// email addresses joined by ';', ordered by admin id ascending.
func (r *Reports) AdminsForMachine(ctx context.Context, machineID string) ([]models.AdminEmails, error) {
	agg := r.s.Dialect().GroupConcat("e.email_address", ";")
	rows, err := r.s.Query(ctx, `
		SELECT a.admin_ucinetid, u.first_name, u.middle_name, u.last_name, `+agg+`
		FROM admins a
		JOIN manage mg ON mg.admin_ucinetid = a.admin_ucinetid
		JOIN users u ON u.ucinetid = a.admin_ucinetid
		JOIN emails e ON e.ucinetid = a.admin_ucinetid
		WHERE mg.machine_id = ?
		GROUP BY a.admin_ucinetid, u.first_name, u.middle_name, u.last_name
		ORDER BY a.admin_ucinetid ASC`, machineID)
	if err != nil {
		return nil, fmt.Errorf("admins for machine %s: %w", machineID, err)
	}
	return collect(rows, func(rs *sql.Rows) (models.AdminEmails, error) {
		var a models.AdminEmails
		err := rs.Scan(&a.AdminUCINetID, &a.FirstName, &a.MiddleName, &a.LastName, &a.Emails)
		return a, err
	})
}

// ActiveStudents lists students with at least minUses usage records on
// the machine, each record's interval inside [start, end] and the
// machine operationally Active, ordered by id ascending.
func (r *Reports) ActiveStudents(ctx context.Context, machineID, start, end string, minUses int) ([]models.ActiveStudent, error) {
	rows, err := r.s.Query(ctx, `
		SELECT u.ucinetid, u.first_name, u.middle_name, u.last_name
		FROM users u
		JOIN students s ON s.ucinetid = u.ucinetid
		JOIN student_use su ON su.ucinetid = u.ucinetid
		JOIN machines m ON m.machine_id = su.machine_id
		WHERE su.machine_id = ?
		  AND su.start_date >= ?
		  AND su.end_date <= ?
		  AND m.operational_status = ?
		GROUP BY u.ucinetid, u.first_name, u.middle_name, u.last_name
		HAVING COUNT(*) >= ?
		ORDER BY u.ucinetid ASC`, machineID, start, end, models.StatusActive, minUses)
	if err != nil {
		return nil, fmt.Errorf("active students on %s: %w", machineID, err)
	}
	return collect(rows, func(rs *sql.Rows) (models.ActiveStudent, error) {
		var s models.ActiveStudent
		err := rs.Scan(&s.UCINetID, &s.FirstName, &s.MiddleName, &s.LastName)
		return s, err
	})
}

// MachineUsageForCourse annotates every machine with its count of usage
// records under the course's projects. The left join keeps zero-usage
// machines in the result. Ordered by machine id descending.
func (r *Reports) MachineUsageForCourse(ctx context.Context, courseID string) ([]models.MachineUsage, error) {
	rows, err := r.s.Query(ctx, `
		SELECT m.machine_id, m.hostname, m.ip_address, COUNT(su.machine_id) AS use_count
		FROM machines m
		LEFT JOIN student_use su ON su.machine_id = m.machine_id
			AND su.project_id IN (SELECT project_id FROM projects WHERE course_id = ?)
		GROUP BY m.machine_id, m.hostname, m.ip_address
		ORDER BY m.machine_id DESC`, courseID)
	if err != nil {
		return nil, fmt.Errorf("machine usage for course %s: %w", courseID, err)
	}
	return collect(rows, func(rs *sql.Rows) (models.MachineUsage, error) {
		var m models.MachineUsage
		err := rs.Scan(&m.MachineID, &m.Hostname, &m.IPAddress, &m.UseCount)
		return m, err
	})
}

// collect drains rows through scan, closing them on every path. Any
// scan or iteration error discards the partial slice.
func collect[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
