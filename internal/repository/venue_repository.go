package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/model"
)

// VenueRepo provides access to venues and their screens.
type VenueRepo struct {
    db *sql.DB
}

// NewVenueRepo returns a VenueRepo bound to the provided database.
func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

const venueColumns = `id, name, city, address, venue_type, is_active, created_at, updated_at`

func scanVenue(row interface{ Scan(...interface{}) error }) (*model.Venue, error) {
    var v model.Venue
    err := row.Scan(&v.ID, &v.Name, &v.City, &v.Address, &v.VenueType, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
    if err != nil {
        return nil, err
    }
    return &v, nil
}

// GetByID returns a venue with its screens, or ErrVenueNotFound.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
    q := `SELECT ` + venueColumns + ` FROM venues WHERE id = ?`
    v, err := scanVenue(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrVenueNotFound
        }
        return nil, err
    }
    screens, err := r.screensForVenues(ctx, []uint64{v.ID})
    if err != nil {
        return nil, err
    }
    v.Screens = screens[v.ID]
    return v, nil
}

// ListActive returns all active venues with their screens, ordered by
// name.
func (r *VenueRepo) ListActive(ctx context.Context) ([]model.Venue, error) {
    q := `SELECT ` + venueColumns + ` FROM venues WHERE is_active = 1 ORDER BY name`
    return r.list(ctx, q)
}

// ListByCity returns active venues in the given city, matched
// case-insensitively.
func (r *VenueRepo) ListByCity(ctx context.Context, city string) ([]model.Venue, error) {
    q := `SELECT ` + venueColumns + ` FROM venues
          WHERE is_active = 1 AND LOWER(city) = ? ORDER BY name`
    return r.list(ctx, q, strings.ToLower(city))
}

// Cities returns the distinct cities that have at least one active
// venue, alphabetically.
func (r *VenueRepo) Cities(ctx context.Context) ([]string, error) {
    const q = `SELECT DISTINCT city FROM venues WHERE is_active = 1 ORDER BY city`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    cities := make([]string, 0)
    for rows.Next() {
        var c string
        if err := rows.Scan(&c); err != nil {
            return nil, err
        }
        cities = append(cities, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return cities, nil
}

// Create inserts a venue together with its screens.  Screen capacity
// defaults to rows * seats-per-row when not supplied.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
    const q = `INSERT INTO venues (name, city, address, venue_type, is_active) VALUES (?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, v.Name, v.City, v.Address, v.VenueType, v.IsActive)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    v.ID = uint64(id)

    for i := range v.Screens {
        sc := &v.Screens[i]
        sc.VenueID = v.ID
        if sc.Capacity == 0 {
            sc.Capacity = sc.Rows * sc.SeatsPerRow
        }
        const screenQ = `INSERT INTO screens (venue_id, name, capacity, seat_rows, seats_per_row, is_active)
                         VALUES (?, ?, ?, ?, ?, ?)`
        res, err := r.db.ExecContext(ctx, screenQ, sc.VenueID, sc.Name, sc.Capacity, sc.Rows, sc.SeatsPerRow, sc.IsActive)
        if err != nil {
            return err
        }
        sid, err := res.LastInsertId()
        if err != nil {
            return err
        }
        sc.ID = uint64(sid)
    }
    return nil
}

func (r *VenueRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Venue, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    venues := make([]model.Venue, 0)
    ids := make([]uint64, 0)
    index := make(map[uint64]int)
    for rows.Next() {
        v, err := scanVenue(rows)
        if err != nil {
            return nil, err
        }
        index[v.ID] = len(venues)
        ids = append(ids, v.ID)
        venues = append(venues, *v)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(venues) == 0 {
        return venues, nil
    }
    screens, err := r.screensForVenues(ctx, ids)
    if err != nil {
        return nil, err
    }
    for id, i := range index {
        venues[i].Screens = screens[id]
    }
    return venues, nil
}

// screensForVenues loads the screens of the given venues in one query,
// keyed by venue ID.
func (r *VenueRepo) screensForVenues(ctx context.Context, venueIDs []uint64) (map[uint64][]model.Screen, error) {
    placeholders := make([]string, 0, len(venueIDs))
    args := make([]interface{}, 0, len(venueIDs))
    for _, id := range venueIDs {
        placeholders = append(placeholders, "?")
        args = append(args, id)
    }
    q := `SELECT id, venue_id, name, capacity, seat_rows, seats_per_row, is_active
          FROM screens
          WHERE venue_id IN (` + strings.Join(placeholders, ",") + `)
          ORDER BY venue_id, name`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make(map[uint64][]model.Screen, len(venueIDs))
    for rows.Next() {
        var sc model.Screen
        if err := rows.Scan(&sc.ID, &sc.VenueID, &sc.Name, &sc.Capacity, &sc.Rows, &sc.SeatsPerRow, &sc.IsActive); err != nil {
            return nil, err
        }
        out[sc.VenueID] = append(out[sc.VenueID], sc)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
