package db

import (
	"context"
	"fmt"
	"log/slog"
)

// Reset drops and recreates every table. Idempotent and destructive:
// drops run in reverse dependency order and tolerate absent tables,
// creates run forward with IF NOT EXISTS.
//
// Foreign-key enforcement is suspended only for the drop phase, and the
// deferred restore runs on every exit path. Surfacing an error with
// enforcement still off would let every later operation run unchecked,
// so a restore failure is an error even when the reset itself succeeded.
func (s *Session) Reset(ctx context.Context) (err error) {
	if _, err = s.conn.ExecContext(ctx, s.dialect.DisableForeignKeys()); err != nil {
		return fmt.Errorf("suspend foreign key enforcement: %w", err)
	}
	defer func() {
		if _, ferr := s.conn.ExecContext(ctx, s.dialect.EnableForeignKeys()); ferr != nil && err == nil {
			err = fmt.Errorf("restore foreign key enforcement: %w", ferr)
		}
	}()

	for _, t := range DropOrder() {
		if _, err = s.conn.ExecContext(ctx, s.dialect.DropTableSQL(t.Name)); err != nil {
			return fmt.Errorf("drop table %s: %w", t.Name, err)
		}
	}

	if _, err = s.conn.ExecContext(ctx, s.dialect.EnableForeignKeys()); err != nil {
		return fmt.Errorf("restore foreign key enforcement: %w", err)
	}

	for _, t := range Tables {
		if _, err = s.conn.ExecContext(ctx, t.CreateSQL(s.dialect)); err != nil {
			return fmt.Errorf("create table %s: %w", t.Name, err)
		}
	}

	slog.Info("schema reset", "tables", len(Tables))
	return nil
}
