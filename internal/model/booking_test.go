package model

import (
    "fmt"
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewBookingCode(t *testing.T) {
    now := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
    code := NewBookingCode(now)

    prefix := fmt.Sprintf("BK%d", now.UnixMilli())
    require.True(t, strings.HasPrefix(code, prefix), "code %q should start with %q", code, prefix)

    suffix := strings.TrimPrefix(code, prefix)
    require.Len(t, suffix, 5)
    for _, c := range suffix {
        assert.Contains(t, codeAlphabet, string(c))
    }
}

func TestNewBookingCode_Uniqueness(t *testing.T) {
    now := time.Now()
    seen := make(map[string]bool)
    for i := 0; i < 100; i++ {
        code := NewBookingCode(now)
        assert.Falsef(t, seen[code], "duplicate code %q", code)
        seen[code] = true
    }
}

func TestValidPaymentMethod(t *testing.T) {
    for _, m := range PaymentMethods {
        assert.Truef(t, ValidPaymentMethod(m), "method %q", m)
    }
    assert.False(t, ValidPaymentMethod("cash"))
    assert.False(t, ValidPaymentMethod(""))
    assert.False(t, ValidPaymentMethod("CARD"))
}

func TestSeatIdentities(t *testing.T) {
    b := Booking{Seats: []BookedSeat{
        {Seat: Seat{Row: "A", SeatNumber: 1}, PriceCents: 100},
        {Seat: Seat{Row: "B", SeatNumber: 2}, PriceCents: 100},
    }}
    assert.Equal(t, []Seat{{Row: "A", SeatNumber: 1}, {Row: "B", SeatNumber: 2}}, b.SeatIdentities())
}

func TestSeatLockExpired(t *testing.T) {
    now := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
    l := SeatLock{ExpiresAt: now}

    assert.False(t, l.Expired(now)) // boundary is inclusive
    assert.False(t, l.Expired(now.Add(-time.Second)))
    assert.True(t, l.Expired(now.Add(time.Second)))
}

func TestSeatLockCovers(t *testing.T) {
    l := SeatLock{Seats: []Seat{{Row: "A", SeatNumber: 1}}}
    assert.True(t, l.Covers(Seat{Row: "A", SeatNumber: 1}))
    assert.False(t, l.Covers(Seat{Row: "A", SeatNumber: 2}))
}
