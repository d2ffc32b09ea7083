package model

import "time"

// Movie is a catalog entry describing a film that can be scheduled for
// shows.  Catalog data is reference data for the booking core: it is
// written only through admin endpoints and read everywhere else.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – movie title.
//  Description – synopsis shown in listings.
//  Genres      – genre tags.
//  DurationMin – runtime in minutes.
//  Language    – audio language.
//  ReleaseDate – theatrical release date (optional).
//  PosterURL   – poster image URL (optional).
//  Rating      – aggregate rating on a 0-10 scale.
//  Certificate – certification board rating (U, UA, A, S).
//  IsActive    – whether the movie is currently listed.
type Movie struct {
    ID          uint64     `json:"id"`
    Title       string     `json:"title"`
    Description string     `json:"description"`
    Genres      []string   `json:"genre"`
    DurationMin uint32     `json:"duration"`
    Language    string     `json:"language"`
    ReleaseDate *time.Time `json:"releaseDate,omitempty"`
    PosterURL   string     `json:"posterUrl,omitempty"`
    Rating      float32    `json:"rating"`
    Certificate string     `json:"certificate"`
    IsActive    bool       `json:"isActive"`
    CreatedAt   time.Time  `json:"createdAt"`
    UpdatedAt   time.Time  `json:"updatedAt"`
}
