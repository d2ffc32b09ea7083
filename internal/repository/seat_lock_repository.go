package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "time"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/model"
)

// SeatLockRepo provides data access to the seat_locks table and its
// seat_lock_seats child rows.  Rows are soft-deactivated rather than
// deleted so that released and expired locks remain auditable.  All
// expiry comparisons are performed in UTC.
type SeatLockRepo struct {
    run dbtx
}

// NewSeatLockRepo returns a SeatLockRepo bound to the provided database.
func NewSeatLockRepo(db *sql.DB) *SeatLockRepo { return &SeatLockRepo{run: db} }

// Create inserts a lock and its seats.  The generated ID is written
// back onto the lock.  Seat rows are inserted in a single statement.
func (r *SeatLockRepo) Create(ctx context.Context, lock *model.SeatLock) error {
    const q = `INSERT INTO seat_locks (show_id, user_id, hold_token, is_active, created_at, expires_at)
               VALUES (?, ?, ?, ?, ?, ?)`
    res, err := r.run.ExecContext(ctx, q,
        lock.ShowID, lock.UserID, lock.HoldToken, lock.IsActive,
        lock.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
        lock.ExpiresAt.UTC().Format("2006-01-02 15:04:05"),
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    lock.ID = uint64(id)

    if len(lock.Seats) == 0 {
        return nil
    }
    seatQ := `INSERT INTO seat_lock_seats (lock_id, show_id, row_label, seat_number) VALUES `
    args := make([]interface{}, 0, len(lock.Seats)*4)
    for i, s := range lock.Seats {
        if i > 0 {
            seatQ += ","
        }
        seatQ += "(?, ?, ?, ?)"
        args = append(args, lock.ID, lock.ShowID, s.Row, s.SeatNumber)
    }
    _, err = r.run.ExecContext(ctx, seatQ, args...)
    return err
}

// GetByID returns a lock with its seats, or ErrLockNotFound.
func (r *SeatLockRepo) GetByID(ctx context.Context, lockID uint64) (*model.SeatLock, error) {
    const q = `SELECT id, show_id, user_id, hold_token, is_active, created_at, expires_at
               FROM seat_locks WHERE id = ?`
    var l model.SeatLock
    err := r.run.QueryRowContext(ctx, q, lockID).Scan(
        &l.ID, &l.ShowID, &l.UserID, &l.HoldToken, &l.IsActive, &l.CreatedAt, &l.ExpiresAt,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrLockNotFound
        }
        return nil, err
    }
    seats, err := r.seatsForLocks(ctx, []uint64{l.ID})
    if err != nil {
        return nil, err
    }
    l.Seats = seats[l.ID]
    return &l, nil
}

// ActiveByShow returns every lock of the show whose stored active flag
// is still set.  Expired-but-unswept locks are included; callers apply
// the expiry predicate themselves so a lock is never honoured past its
// TTL even before the sweep runs.
func (r *SeatLockRepo) ActiveByShow(ctx context.Context, showID uint64) ([]model.SeatLock, error) {
    const q = `SELECT id, show_id, user_id, hold_token, is_active, created_at, expires_at
               FROM seat_locks
               WHERE show_id = ? AND is_active = 1`
    rows, err := r.run.QueryContext(ctx, q, showID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    locks := make([]model.SeatLock, 0)
    ids := make([]uint64, 0)
    for rows.Next() {
        var l model.SeatLock
        if err := rows.Scan(&l.ID, &l.ShowID, &l.UserID, &l.HoldToken, &l.IsActive, &l.CreatedAt, &l.ExpiresAt); err != nil {
            return nil, err
        }
        locks = append(locks, l)
        ids = append(ids, l.ID)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(locks) == 0 {
        return locks, nil
    }
    seats, err := r.seatsForLocks(ctx, ids)
    if err != nil {
        return nil, err
    }
    for i := range locks {
        locks[i].Seats = seats[locks[i].ID]
    }
    return locks, nil
}

// Deactivate clears the active flag of one lock, freeing its seats.
func (r *SeatLockRepo) Deactivate(ctx context.Context, lockID uint64) error {
    const q = `UPDATE seat_locks SET is_active = 0 WHERE id = ?`
    res, err := r.run.ExecContext(ctx, q, lockID)
    if err != nil {
        return err
    }
    affected, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return ErrLockNotFound
    }
    return nil
}

// DeactivateExpired sweeps every lock whose expiry has passed and
// returns the number of locks deactivated.
func (r *SeatLockRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
    const q = `UPDATE seat_locks SET is_active = 0 WHERE is_active = 1 AND expires_at <= ?`
    res, err := r.run.ExecContext(ctx, q, now.UTC().Format("2006-01-02 15:04:05"))
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// seatsForLocks loads the seats of the given locks in one query, keyed
// by lock ID.
func (r *SeatLockRepo) seatsForLocks(ctx context.Context, lockIDs []uint64) (map[uint64][]model.Seat, error) {
    placeholders := make([]string, 0, len(lockIDs))
    args := make([]interface{}, 0, len(lockIDs))
    for _, id := range lockIDs {
        placeholders = append(placeholders, "?")
        args = append(args, id)
    }
    q := `SELECT lock_id, row_label, seat_number
          FROM seat_lock_seats
          WHERE lock_id IN (` + strings.Join(placeholders, ",") + `)
          ORDER BY lock_id, row_label, seat_number`
    rows, err := r.run.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make(map[uint64][]model.Seat, len(lockIDs))
    for rows.Next() {
        var lockID uint64
        var s model.Seat
        if err := rows.Scan(&lockID, &s.Row, &s.SeatNumber); err != nil {
            return nil, err
        }
        out[lockID] = append(out[lockID], s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
