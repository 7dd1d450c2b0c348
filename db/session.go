package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Session is a pinned database connection plus its dialect. Every
// component takes a *Session explicitly; there is no package-level
// connection. Pinning matters for SQLite, where foreign-key enforcement
// is per-connection state: a pooled *sql.DB could hand statements to a
// connection that never saw the pragma.
type Session struct {
	db      *sql.DB
	conn    *sql.Conn
	dialect Dialect
}

// Connect opens the store, verifies connectivity, pins one connection
// and enables foreign-key enforcement on it.
func Connect(ctx context.Context, dbType, url string) (*Session, error) {
	d, err := DialectFor(dbType)
	if err != nil {
		return nil, err
	}
	sqlDB, err := sql.Open(d.Driver(), url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s, err := NewSession(ctx, sqlDB, d)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// NewSession pins a connection from an already-open handle. The session
// takes ownership of sqlDB and closes it with Close.
func NewSession(ctx context.Context, sqlDB *sql.DB, d Dialect) (*Session, error) {
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	if _, err := conn.ExecContext(ctx, d.EnableForeignKeys()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign key enforcement: %w", err)
	}
	return &Session{db: sqlDB, conn: conn, dialect: d}, nil
}

func (s *Session) Dialect() Dialect { return s.dialect }

func (s *Session) Close() error {
	s.conn.Close()
	return s.db.Close()
}

// Exec runs a statement after placeholder rebinding.
func (s *Session) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.conn.ExecContext(ctx, s.dialect.Rebind(query), args...)
}

// Query runs a row-returning query after placeholder rebinding.
func (s *Session) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.conn.QueryContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Session) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.conn.QueryRowContext(ctx, s.dialect.Rebind(query), args...)
}

// Begin starts a transaction on the pinned connection.
func (s *Session) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{tx: tx, dialect: s.dialect}, nil
}

// Tx wraps *sql.Tx with the session's placeholder rebinding.
type Tx struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *Tx) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *Tx) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *Tx) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }
