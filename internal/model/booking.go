package model

import (
    "crypto/rand"
    "fmt"
    "strings"
    "time"
)

// Booking status lifecycle.
const (
    BookingStatusPending   = "pending"
    BookingStatusConfirmed = "confirmed"
    BookingStatusCancelled = "cancelled"
    BookingStatusExpired   = "expired"
)

// Payment status values reported by the external payment collaborator.
const (
    PaymentStatusPending   = "pending"
    PaymentStatusCompleted = "completed"
    PaymentStatusFailed    = "failed"
    PaymentStatusRefunded  = "refunded"
)

// Recognised payment methods.
var PaymentMethods = []string{"card", "upi", "netbanking", "wallet"}

// ValidPaymentMethod reports whether m is one of the recognised payment
// methods.
func ValidPaymentMethod(m string) bool {
    for _, pm := range PaymentMethods {
        if pm == m {
            return true
        }
    }
    return false
}

// ActiveBookingStatuses are the statuses under which a booking's seats
// count as taken for availability purposes.
var ActiveBookingStatuses = []string{BookingStatusPending, BookingStatusConfirmed}

// Booking is a durable record of purchased seats for a show.  Seats
// covered by a booking in pending or confirmed status can never also be
// covered by an active lock held by another user, and are never shared
// between two such bookings.
type Booking struct {
    ID                 uint64        `json:"id"`
    Code               string        `json:"bookingCode"`
    UserID             uint64        `json:"userId"`
    ShowID             uint64        `json:"showId"`
    MovieID            uint64        `json:"movieId"`
    VenueID            uint64        `json:"venueId"`
    Seats              []BookedSeat  `json:"seats"`
    TotalAmountCents   uint32        `json:"totalAmount"`
    Status             string        `json:"bookingStatus"`
    PaymentStatus      string        `json:"paymentStatus"`
    PaymentMethod      string        `json:"paymentMethod"`
    NumberOfSeats      uint32        `json:"numberOfSeats"`
    ShowDate           time.Time     `json:"showDate"`
    ShowTime           string        `json:"showTime"`
    ScreenName         string        `json:"screenName"`
    CancellationReason string        `json:"cancellationReason,omitempty"`
    CancelledAt        *time.Time    `json:"cancelledAt,omitempty"`
    CancelledBy        *uint64       `json:"cancelledBy,omitempty"`
    CreatedAt          time.Time     `json:"createdAt"`
    UpdatedAt          time.Time     `json:"updatedAt"`
}

// BookedSeat is one seat line of a booking with the price that was
// charged for it.
type BookedSeat struct {
    Seat
    PriceCents uint32 `json:"price"`
}

// SeatIdentities extracts the plain seat identities of a booking.
func (b *Booking) SeatIdentities() []Seat {
    out := make([]Seat, 0, len(b.Seats))
    for _, s := range b.Seats {
        out = append(out, s.Seat)
    }
    return out
}

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewBookingCode generates a booking code of the form
// "BK<unix-millis><5 random chars>", matching the ticket codes printed
// on confirmations and encoded into QR tickets.
func NewBookingCode(now time.Time) string {
    buf := make([]byte, 5)
    // crypto/rand never fails on supported platforms; fall back to a
    // constant suffix rather than propagating an error nobody can act on.
    if _, err := rand.Read(buf); err != nil {
        return fmt.Sprintf("BK%dXXXXX", now.UnixMilli())
    }
    var sb strings.Builder
    for _, c := range buf {
        sb.WriteByte(codeAlphabet[int(c)%len(codeAlphabet)])
    }
    return fmt.Sprintf("BK%d%s", now.UnixMilli(), sb.String())
}
