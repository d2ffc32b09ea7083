package model

import "time"

// LockTTL is how long a seat lock shields its seats from other users.
// After this period the lock is dead regardless of whether the sweep
// has already flipped its active flag.
const LockTTL = 5 * time.Minute

// SeatLock is a temporary exclusive hold on a set of seats for one
// show, taken by a user entering checkout.  At most one active lock
// may cover a given seat of a given show at any instant.  A lock is
// deactivated by commit, by explicit release from its holder, or by
// TTL expiry; availability reads additionally treat now > ExpiresAt as
// inactive even while the stored flag still says otherwise.
//
// Fields:
//  ID        – primary key identifier.
//  ShowID    – show whose seats are held.
//  UserID    – holder; only this user may release or consume the lock.
//  Seats     – distinct seats covered by the hold.
//  HoldToken – opaque token echoed back to the client for correlation.
//  IsActive  – stored activity flag.
//  CreatedAt – when the hold was taken.
//  ExpiresAt – CreatedAt + LockTTL.
type SeatLock struct {
    ID        uint64    `json:"lockId"`
    ShowID    uint64    `json:"showId"`
    UserID    uint64    `json:"userId"`
    Seats     []Seat    `json:"seats"`
    HoldToken string    `json:"holdToken"`
    IsActive  bool      `json:"isActive"`
    CreatedAt time.Time `json:"createdAt"`
    ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the lock's TTL has elapsed at the given
// instant.
func (l *SeatLock) Expired(now time.Time) bool {
    return now.After(l.ExpiresAt)
}

// Covers reports whether the lock covers the given seat.
func (l *SeatLock) Covers(s Seat) bool {
    for _, ls := range l.Seats {
        if ls == s {
            return true
        }
    }
    return false
}
