package model

import "time"

// Media kind values.
const (
	MediaKindBook  = "book"
	MediaKindMovie = "movie"
	MediaKindTV    = "tv"
)

// Media status values.
const (
	MediaStatusWant       = "want"
	MediaStatusInProgress = "in_progress"
	MediaStatusFinished   = "finished"
)

type MediaItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Creator   string    `json:"creator"`
	Status    string    `json:"status"`
	Rating    *int      `json:"rating,omitempty"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
