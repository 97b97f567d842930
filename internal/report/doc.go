// Package report computes per-artist sales and royalty figures from the
// catalog and renders them as text tables.
//
// Revenue for an artist is the sum of units sold times price over the albums
// credited to the artist's name. The royalty amount is that revenue times
// the artist's royalty percentage. Royalty columns are shown only to an
// authorized operator; everyone else sees RestrictedMarker in their place.
package report
