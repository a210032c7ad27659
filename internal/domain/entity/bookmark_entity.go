package entity

import "time"

// Bookmark is a saved URL with the metadata derived at ingestion time.
// URL is stored exactly as submitted; it is never scheme-normalized.
type Bookmark struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Favicon   string    `json:"favicon"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}
