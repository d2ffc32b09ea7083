package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "time"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/model"
)

// ShowRepo provides data access to shows and their screens.  It backs
// both the catalog endpoints and the booking core's ports.ShowStore.
// All timestamps are stored and compared in UTC.
type ShowRepo struct {
    run dbtx
}

// NewShowRepo returns a ShowRepo bound to the provided database.
func NewShowRepo(db *sql.DB) *ShowRepo { return &ShowRepo{run: db} }

const showColumns = `s.id, s.movie_id, s.venue_id, s.screen_id, sc.name,
       s.show_date, s.show_time, s.price_cents, s.total_seats, s.available_seats,
       s.show_type, s.language, s.subtitles, s.is_active, s.created_at, s.updated_at`

func scanShow(row interface{ Scan(...interface{}) error }) (*model.Show, error) {
    var sh model.Show
    var subtitles sql.NullString
    err := row.Scan(
        &sh.ID, &sh.MovieID, &sh.VenueID, &sh.ScreenID, &sh.ScreenName,
        &sh.Date, &sh.Time, &sh.PriceCents, &sh.TotalSeats, &sh.AvailableSeats,
        &sh.ShowType, &sh.Language, &subtitles, &sh.IsActive, &sh.CreatedAt, &sh.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    if subtitles.Valid {
        sh.Subtitles = subtitles.String
    }
    return &sh, nil
}

// GetByID retrieves a show together with its screen name.  It returns
// ErrShowNotFound when no such show exists.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
    const q = `SELECT ` + showColumns + `
               FROM shows s
               JOIN screens sc ON sc.id = s.screen_id
               WHERE s.id = ?`
    sh, err := scanShow(r.run.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrShowNotFound
        }
        return nil, err
    }
    return sh, nil
}

// ScreenByID returns a screen including its seat layout.  It returns
// ErrScreenNotFound when the screen does not exist.
func (r *ShowRepo) ScreenByID(ctx context.Context, id uint64) (*model.Screen, error) {
    const q = `SELECT id, venue_id, name, capacity, seat_rows, seats_per_row, is_active
               FROM screens WHERE id = ?`
    var sc model.Screen
    err := r.run.QueryRowContext(ctx, q, id).Scan(
        &sc.ID, &sc.VenueID, &sc.Name, &sc.Capacity, &sc.Rows, &sc.SeatsPerRow, &sc.IsActive,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrScreenNotFound
        }
        return nil, err
    }
    return &sc, nil
}

// DecrementAvailableSeats subtracts n from the show's available seat
// counter.  The guard in the WHERE clause refuses any decrement that
// would take the counter below zero; in that case no row is written and
// ErrInventoryUnderflow is returned (or ErrShowNotFound when the show
// itself is missing).
func (r *ShowRepo) DecrementAvailableSeats(ctx context.Context, showID uint64, n uint32) error {
    const q = `UPDATE shows
               SET available_seats = available_seats - ?, updated_at = UTC_TIMESTAMP()
               WHERE id = ? AND available_seats >= ?`
    res, err := r.run.ExecContext(ctx, q, n, showID, n)
    if err != nil {
        return err
    }
    affected, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        var exists bool
        if err := r.run.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM shows WHERE id = ?)`, showID).Scan(&exists); err != nil {
            return err
        }
        if !exists {
            return ErrShowNotFound
        }
        return ErrInventoryUnderflow
    }
    return nil
}

// IncrementAvailableSeats returns n seats to the pool, capped at the
// show's total.  Used when a booking is cancelled.
func (r *ShowRepo) IncrementAvailableSeats(ctx context.Context, showID uint64, n uint32) error {
    const q = `UPDATE shows
               SET available_seats = LEAST(total_seats, available_seats + ?), updated_at = UTC_TIMESTAMP()
               WHERE id = ?`
    res, err := r.run.ExecContext(ctx, q, n, showID)
    if err != nil {
        return err
    }
    affected, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return ErrShowNotFound
    }
    return nil
}

// Create inserts a new show and populates its generated ID.  The
// available counter starts equal to total_seats.
func (r *ShowRepo) Create(ctx context.Context, sh *model.Show) error {
    const q = `INSERT INTO shows
               (movie_id, venue_id, screen_id, show_date, show_time, price_cents,
                total_seats, available_seats, show_type, language, subtitles, is_active)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.run.ExecContext(ctx, q,
        sh.MovieID, sh.VenueID, sh.ScreenID, sh.Date.UTC().Format("2006-01-02"), sh.Time,
        sh.PriceCents, sh.TotalSeats, sh.TotalSeats, sh.ShowType, sh.Language,
        sh.Subtitles, sh.IsActive,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    sh.ID = uint64(id)
    sh.AvailableSeats = sh.TotalSeats
    return nil
}

// List returns active shows matching the optional filters, ordered by
// date and start time.  A zero movieID/venueID or nil date means no
// filter on that column.
func (r *ShowRepo) List(ctx context.Context, movieID, venueID uint64, date *time.Time) ([]model.Show, error) {
    q := `SELECT ` + showColumns + `
          FROM shows s
          JOIN screens sc ON sc.id = s.screen_id
          WHERE s.is_active = 1`
    args := make([]interface{}, 0, 3)
    if movieID != 0 {
        q += ` AND s.movie_id = ?`
        args = append(args, movieID)
    }
    if venueID != 0 {
        q += ` AND s.venue_id = ?`
        args = append(args, venueID)
    }
    if date != nil {
        q += ` AND s.show_date = ?`
        args = append(args, date.UTC().Format("2006-01-02"))
    }
    q += ` ORDER BY s.show_date, s.show_time`

    rows, err := r.run.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    shows := make([]model.Show, 0)
    for rows.Next() {
        sh, err := scanShow(rows)
        if err != nil {
            return nil, err
        }
        shows = append(shows, *sh)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return shows, nil
}

// ActiveMovieIDsForCity returns the IDs of movies with active shows in
// the given city on the given date.  Used by the movie search
// endpoints.
func (r *ShowRepo) ActiveMovieIDsForCity(ctx context.Context, city string, date *time.Time) ([]uint64, error) {
    q := `SELECT DISTINCT s.movie_id
          FROM shows s
          JOIN venues v ON v.id = s.venue_id
          WHERE s.is_active = 1 AND LOWER(v.city) = ?`
    args := []interface{}{strings.ToLower(city)}
    if date != nil {
        q += ` AND s.show_date = ?`
        args = append(args, date.UTC().Format("2006-01-02"))
    }
    rows, err := r.run.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var ids []uint64
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return ids, nil
}
