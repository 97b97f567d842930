package model

// Artist represents an artist represented by the label.
type Artist struct {
	// ID is unique and positive. New artists get max(existing)+1.
	ID int

	// Name is unique among artists, compared case-insensitively.
	Name string

	// Nationality is free text.
	Nationality string

	// Albums caches (album id, album title) pairs. It is not authoritative:
	// album ownership is decided by Album.Artist.
	Albums []Ref

	// RoyaltyPercentage is in [0, 100].
	RoyaltyPercentage float64

	// TotalEarned is the cumulative earnings, never negative.
	TotalEarned float64
}
