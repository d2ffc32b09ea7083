// Package queue publishes and consumes booking domain events over
// RabbitMQ.
package queue

// BookingConfirmedEvent is published when a booking is successfully
// committed.  It carries enough information for downstream consumers to
// log, mail a ticket, or feed analytics without querying the primary
// database.
type BookingConfirmedEvent struct {
    BookingID        uint64   `json:"booking_id"`
    BookingCode      string   `json:"booking_code"`
    UserID           uint64   `json:"user_id"`
    UserName         string   `json:"user_name"`
    UserEmail        string   `json:"user_email"`
    ShowID           uint64   `json:"show_id"`
    MovieTitle       string   `json:"movie_title"`
    VenueName        string   `json:"venue_name"`
    VenueCity        string   `json:"venue_city"`
    ScreenName       string   `json:"screen_name"`
    ShowDate         string   `json:"show_date"` // YYYY-MM-DD
    ShowTime         string   `json:"show_time"` // HH:MM
    SeatLabels       []string `json:"seats"`
    TotalAmountCents uint32   `json:"total_amount_cents"`
    ConfirmedAt      string   `json:"confirmed_at"` // RFC 3339, UTC
}
