package model

// DateLayout is the release date format used by the albums table.
const DateLayout = "2006-01-02"

// Album represents an album in the albums table.
type Album struct {
	ID    int
	Title string

	// Artist is the owning artist's name. It is a convention, not a foreign
	// key; see catalog.AlbumsForArtist.
	Artist string

	Genre string

	// ReleaseDate is kept as text in DateLayout.
	ReleaseDate string

	UnitsSold int
	Price     float64

	// Tracks caches (track id, track title) pairs.
	Tracks []Ref
}

// Revenue returns units sold times price.
func (a Album) Revenue() float64 {
	return float64(a.UnitsSold) * a.Price
}
