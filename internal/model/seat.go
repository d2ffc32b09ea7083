package model

import (
    "fmt"
    "strings"
)

// Seat identifies a single bookable seat within a show's screen by its
// row label and seat number.  Seats are scoped per show: the same Seat
// value can exist for many shows without conflict.  Equality is
// structural, so Seat is usable directly as a map key when tracking
// contention.
//
// Fields:
//  Row        – alphabetical row label such as "A" or "AB".
//  SeatNumber – 1-based position within the row.
type Seat struct {
    Row        string `json:"row"`        // row label within the screen
    SeatNumber uint32 `json:"seatNumber"` // 1-based seat position in the row
}

// Label renders the seat in the canonical "A-5" form used by seat maps
// and availability responses.
func (s Seat) Label() string {
    return fmt.Sprintf("%s-%d", s.Row, s.SeatNumber)
}

// RowLabel converts a zero-based row index to an alphabetical label
// (0 -> A, 25 -> Z, 26 -> AA).  Seat maps enumerate rows with this
// function so the ordering is deterministic.
func RowLabel(i int) string {
    if i < 0 {
        return ""
    }
    var b strings.Builder
    for {
        b.WriteByte(byte('A' + i%26))
        i = i/26 - 1
        if i < 0 {
            break
        }
    }
    // digits were produced least-significant first
    runes := []rune(b.String())
    for l, r := 0, len(runes)-1; l < r; l, r = l+1, r-1 {
        runes[l], runes[r] = runes[r], runes[l]
    }
    return string(runes)
}

// DedupSeats removes duplicate and obviously invalid seats (empty row or
// zero seat number) while preserving the order of first occurrence.
func DedupSeats(seats []Seat) []Seat {
    out := make([]Seat, 0, len(seats))
    seen := make(map[Seat]struct{}, len(seats))
    for _, s := range seats {
        if s.Row == "" || s.SeatNumber == 0 {
            continue
        }
        if _, ok := seen[s]; ok {
            continue
        }
        seen[s] = struct{}{}
        out = append(out, s)
    }
    return out
}
