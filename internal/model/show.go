package model

import "time"

// Show formats supported for listings.
const (
    ShowType2D   = "2D"
    ShowType3D   = "3D"
    ShowType4DX  = "4DX"
    ShowTypeIMAX = "IMAX"
)

// Show represents a scheduled screening of a movie on a venue screen.
// AvailableSeats is a denormalised inventory counter: it always equals
// TotalSeats minus the seats covered by pending or confirmed bookings.
// Seat locks do not touch the counter; they only block individual seats
// until they expire.  Invariant: 0 <= AvailableSeats <= TotalSeats.
type Show struct {
    ID             uint64    `json:"id"`
    MovieID        uint64    `json:"movieId"`
    VenueID        uint64    `json:"venueId"`
    ScreenID       uint64    `json:"screenId"`
    ScreenName     string    `json:"screenName"`
    Date           time.Time `json:"date"`
    Time           string    `json:"time"` // HH:MM, 24-hour clock
    PriceCents     uint32    `json:"price"`
    TotalSeats     uint32    `json:"totalSeats"`
    AvailableSeats uint32    `json:"availableSeats"`
    ShowType       string    `json:"showType"`
    Language       string    `json:"language"`
    Subtitles      string    `json:"subtitles,omitempty"`
    IsActive       bool      `json:"isActive"`
    CreatedAt      time.Time `json:"createdAt"`
    UpdatedAt      time.Time `json:"updatedAt"`
}

// SeatInfo is one entry of the computed seat map for a show.  It is
// derived at read time from bookings and locks; no availability state
// is cached anywhere else.
type SeatInfo struct {
    Seat        Seat   `json:"seat"`
    SeatID      string `json:"seatId"` // canonical "A-5" label
    IsAvailable bool   `json:"isAvailable"`
    PriceCents  uint32 `json:"price"`
}
