package model

import "time"

// Venue is a theatre complex containing one or more screens.  Venues
// are reference data for the booking core.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – venue name.
//  City      – city used for location search.
//  Address   – street address.
//  VenueType – theater, auditorium, stadium or concert-hall.
//  Screens   – screens available at this venue.
//  IsActive  – whether the venue is currently operating.
type Venue struct {
    ID        uint64    `json:"id"`
    Name      string    `json:"name"`
    City      string    `json:"city"`
    Address   string    `json:"address"`
    VenueType string    `json:"venueType"`
    Screens   []Screen  `json:"screens,omitempty"`
    IsActive  bool      `json:"isActive"`
    CreatedAt time.Time `json:"createdAt"`
    UpdatedAt time.Time `json:"updatedAt"`
}

// Screen is a single auditorium within a venue.  Its seat layout is the
// authoritative geometry from which seat maps are enumerated: rows are
// labelled A, B, C, ... and seats are numbered 1..SeatsPerRow.
//
// Fields:
//  ID          – primary key identifier.
//  VenueID     – owning venue.
//  Name        – screen name, unique within the venue.
//  Capacity    – total seat count (Rows * SeatsPerRow).
//  Rows        – number of seat rows.
//  SeatsPerRow – seats in each row.
//  IsActive    – whether the screen can host shows.
type Screen struct {
    ID          uint64 `json:"id"`
    VenueID     uint64 `json:"venueId"`
    Name        string `json:"name"`
    Capacity    uint32 `json:"capacity"`
    Rows        uint32 `json:"rows"`
    SeatsPerRow uint32 `json:"seatsPerRow"`
    IsActive    bool   `json:"isActive"`
}

// Contains reports whether the seat falls inside this screen's layout.
func (sc Screen) Contains(s Seat) bool {
    if s.SeatNumber < 1 || s.SeatNumber > sc.SeatsPerRow {
        return false
    }
    for i := 0; i < int(sc.Rows); i++ {
        if RowLabel(i) == s.Row {
            return true
        }
    }
    return false
}
