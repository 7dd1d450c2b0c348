package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/icslabs/labtrack/db"
)

// Summary reports the post-load row counts of the headline tables.
type Summary struct {
	Users    int64
	Machines int64
	Courses  int64
}

// LoadAll populates every table from src inside a single transaction.
//
// Users load first with enforcement live (nothing references out of it).
// For the remaining tables, foreign-key checks are deferred so load
// order within the batch cannot produce spurious violations, then made
// immediate again and verified before the single commit. Any error rolls
// the whole load back; no partially loaded schema is ever committed.
func LoadAll(ctx context.Context, s *db.Session, src Source) (Summary, error) {
	runID := uuid.NewString()
	log := slog.With("run_id", runID)
	log.Info("bulk load started")

	tx, err := s.Begin(ctx)
	if err != nil {
		return Summary{}, err
	}
	defer tx.Rollback()

	var total int64
	for i, t := range db.Tables {
		if i == 1 {
			// users are in; defer checks for the dependent tables
			if _, err := tx.Exec(ctx, s.Dialect().DeferForeignKeys()); err != nil {
				return Summary{}, fmt.Errorf("defer foreign key enforcement: %w", err)
			}
		}
		n, err := loadTable(ctx, tx, t, src)
		if err != nil {
			return Summary{}, fmt.Errorf("load %s: %w", t.Name, err)
		}
		log.Info("table loaded", "table", t.Name, "rows", n)
		total += n
	}

	if _, err := tx.Exec(ctx, s.Dialect().ImmediateForeignKeys()); err != nil {
		return Summary{}, fmt.Errorf("restore foreign key enforcement: %w", err)
	}
	if err := checkIntegrity(ctx, s, tx); err != nil {
		return Summary{}, err
	}

	sum, err := headlineCounts(ctx, tx)
	if err != nil {
		return Summary{}, err
	}

	if err := tx.Commit(); err != nil {
		return Summary{}, fmt.Errorf("commit load: %w", err)
	}
	log.Info("bulk load committed", "rows", humanize.Comma(total))
	return sum, nil
}

func loadTable(ctx context.Context, tx *db.Tx, t db.Table, src Source) (int64, error) {
	r, err := src.Open(t.File)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	insert := t.InsertSQL()
	var n int64
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("row %d: %w", n+1, err)
		}
		if len(row) != len(t.Columns) {
			return n, fmt.Errorf("row %d: got %d fields, want %d", n+1, len(row), len(t.Columns))
		}
		args := make([]any, len(row))
		for i, v := range row {
			args[i] = v
		}
		if _, err := tx.Exec(ctx, insert, args...); err != nil {
			return n, fmt.Errorf("row %d: %w", n+1, err)
		}
		n++
	}
}

// checkIntegrity scans for outstanding foreign-key violations before
// commit, so a bad dataset fails through the rollback path instead of a
// failed COMMIT.
func checkIntegrity(ctx context.Context, s *db.Session, tx *db.Tx) error {
	check := s.Dialect().ForeignKeyCheck()
	if check == "" {
		return nil
	}
	rows, err := tx.Query(ctx, check)
	if err != nil {
		return fmt.Errorf("foreign key check: %w", err)
	}
	violated := rows.Next()
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("foreign key check: %w", err)
	}
	if violated {
		return errors.New("foreign key violations in loaded data")
	}
	return nil
}

func headlineCounts(ctx context.Context, tx *db.Tx) (Summary, error) {
	counts := make(map[string]int64, len(db.HeadlineTables))
	for _, name := range db.HeadlineTables {
		var c int64
		if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM "+name).Scan(&c); err != nil {
			return Summary{}, fmt.Errorf("count %s: %w", name, err)
		}
		counts[name] = c
	}
	return Summary{
		Users:    counts["users"],
		Machines: counts["machines"],
		Courses:  counts["courses"],
	}, nil
}
