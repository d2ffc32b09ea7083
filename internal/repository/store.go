package repository

import (
    "context"
    "database/sql"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/service/ports"
)

// dbtx is the subset of *sql.DB and *sql.Tx the repositories need, so
// the same query code runs both inside and outside a transaction.
type dbtx interface {
    ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
    QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
    QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store is the MySQL implementation of ports.Store.  A Store created
// with NewStore runs statements directly on the pool; ExecTx hands the
// callback a Store bound to a transaction instead.
type Store struct {
    db  *sql.DB
    run dbtx
}

// NewStore wraps a database handle.
func NewStore(db *sql.DB) *Store {
    return &Store{db: db, run: db}
}

// DB exposes the underlying handle for collaborators that manage their
// own queries, such as the auth and catalog repositories.
func (s *Store) DB() *sql.DB { return s.db }

// Shows returns the show store bound to the current execution scope.
func (s *Store) Shows() ports.ShowStore { return &ShowRepo{run: s.run} }

// SeatLocks returns the seat lock store bound to the current scope.
func (s *Store) SeatLocks() ports.SeatLockStore { return &SeatLockRepo{run: s.run} }

// Bookings returns the booking store bound to the current scope.
func (s *Store) Bookings() ports.BookingStore { return &BookingRepo{run: s.run} }

// ExecTx runs fn inside a database transaction.  The transaction is
// rolled back when fn returns an error and committed otherwise, so a
// failure between writes leaves no partial state behind.  Calling
// ExecTx on a Store that is already transactional reuses the open
// transaction.
func (s *Store) ExecTx(ctx context.Context, fn func(ports.Store) error) error {
    if _, ok := s.run.(*sql.Tx); ok {
        return fn(s)
    }
    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := fn(&Store{db: s.db, run: tx}); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
