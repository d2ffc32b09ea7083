package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/model"
)

// BookingRepo provides data access to bookings and their seats.  A
// booking groups one or more seats purchased for a show in a single
// atomic commit; the seats live in the booking_seats table.
type BookingRepo struct {
    run dbtx
}

// NewBookingRepo returns a BookingRepo bound to the provided database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{run: db} }

const bookingColumns = `id, code, user_id, show_id, movie_id, venue_id, status, payment_status,
       payment_method, total_amount_cents, number_of_seats, show_date, show_time, screen_name,
       cancellation_reason, cancelled_at, cancelled_by, created_at, updated_at`

func scanBooking(row interface{ Scan(...interface{}) error }) (*model.Booking, error) {
    var b model.Booking
    var reason sql.NullString
    var cancelledAt sql.NullTime
    var cancelledBy sql.NullInt64
    err := row.Scan(
        &b.ID, &b.Code, &b.UserID, &b.ShowID, &b.MovieID, &b.VenueID, &b.Status, &b.PaymentStatus,
        &b.PaymentMethod, &b.TotalAmountCents, &b.NumberOfSeats, &b.ShowDate, &b.ShowTime, &b.ScreenName,
        &reason, &cancelledAt, &cancelledBy, &b.CreatedAt, &b.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    if reason.Valid {
        b.CancellationReason = reason.String
    }
    if cancelledAt.Valid {
        t := cancelledAt.Time
        b.CancelledAt = &t
    }
    if cancelledBy.Valid {
        id := uint64(cancelledBy.Int64)
        b.CancelledBy = &id
    }
    return &b, nil
}

// Create inserts a booking and its seats.  The generated ID is written
// back onto the booking.  The caller is responsible for running this
// inside the same transaction as the inventory decrement.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
    const q = `INSERT INTO bookings
               (code, user_id, show_id, movie_id, venue_id, status, payment_status,
                payment_method, total_amount_cents, number_of_seats, show_date, show_time, screen_name)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.run.ExecContext(ctx, q,
        b.Code, b.UserID, b.ShowID, b.MovieID, b.VenueID, b.Status, b.PaymentStatus,
        b.PaymentMethod, b.TotalAmountCents, b.NumberOfSeats,
        b.ShowDate.UTC().Format("2006-01-02"), b.ShowTime, b.ScreenName,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)

    if len(b.Seats) == 0 {
        return nil
    }
    seatQ := `INSERT INTO booking_seats (booking_id, show_id, row_label, seat_number, price_cents) VALUES `
    args := make([]interface{}, 0, len(b.Seats)*5)
    for i, s := range b.Seats {
        if i > 0 {
            seatQ += ","
        }
        seatQ += "(?, ?, ?, ?, ?)"
        args = append(args, b.ID, b.ShowID, s.Row, s.SeatNumber, s.PriceCents)
    }
    _, err = r.run.ExecContext(ctx, seatQ, args...)
    return err
}

// GetByID returns a booking with its seats, or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, bookingID uint64) (*model.Booking, error) {
    q := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    b, err := scanBooking(r.run.QueryRowContext(ctx, q, bookingID))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    seats, err := r.seatsForBookings(ctx, []uint64{b.ID})
    if err != nil {
        return nil, err
    }
    b.Seats = seats[b.ID]
    return b, nil
}

// ListByUser returns the user's bookings, newest first, optionally
// filtered by status.  Seats for all bookings are loaded in one query.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64, status string) ([]model.Booking, error) {
    q := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ?`
    args := []interface{}{userID}
    if status != "" {
        q += ` AND status = ?`
        args = append(args, status)
    }
    q += ` ORDER BY created_at DESC`
    return r.list(ctx, q, args...)
}

// ListAll returns every booking, newest first.  Admin use only.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
    q := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
    return r.list(ctx, q)
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Booking, error) {
    rows, err := r.run.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    bookings := make([]model.Booking, 0)
    index := make(map[uint64]int)
    ids := make([]uint64, 0)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        index[b.ID] = len(bookings)
        ids = append(ids, b.ID)
        bookings = append(bookings, *b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(bookings) == 0 {
        return bookings, nil
    }
    seats, err := r.seatsForBookings(ctx, ids)
    if err != nil {
        return nil, err
    }
    for id, i := range index {
        bookings[i].Seats = seats[id]
    }
    return bookings, nil
}

// SeatsTaken returns the seats of the show covered by bookings in
// pending or confirmed status.  These seats are never offered to other
// users, in locks or in commits.
func (r *BookingRepo) SeatsTaken(ctx context.Context, showID uint64) ([]model.Seat, error) {
    const q = `SELECT bs.row_label, bs.seat_number
               FROM booking_seats bs
               JOIN bookings b ON b.id = bs.booking_id
               WHERE bs.show_id = ? AND b.status IN ('pending', 'confirmed')`
    rows, err := r.run.QueryContext(ctx, q, showID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var seats []model.Seat
    for rows.Next() {
        var s model.Seat
        if err := rows.Scan(&s.Row, &s.SeatNumber); err != nil {
            return nil, err
        }
        seats = append(seats, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return seats, nil
}

// seatsForBookings loads the seats of the given bookings in one query,
// keyed by booking ID and ordered deterministically.
func (r *BookingRepo) seatsForBookings(ctx context.Context, bookingIDs []uint64) (map[uint64][]model.BookedSeat, error) {
    placeholders := make([]string, 0, len(bookingIDs))
    args := make([]interface{}, 0, len(bookingIDs))
    for _, id := range bookingIDs {
        placeholders = append(placeholders, "?")
        args = append(args, id)
    }
    q := `SELECT booking_id, row_label, seat_number, price_cents
          FROM booking_seats
          WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
          ORDER BY booking_id, row_label, seat_number`
    rows, err := r.run.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make(map[uint64][]model.BookedSeat, len(bookingIDs))
    for rows.Next() {
        var bookingID uint64
        var s model.BookedSeat
        if err := rows.Scan(&bookingID, &s.Row, &s.SeatNumber, &s.PriceCents); err != nil {
            return nil, err
        }
        out[bookingID] = append(out[bookingID], s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
