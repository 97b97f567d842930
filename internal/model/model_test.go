package model

import (
	"encoding/json"
	"testing"
)

func TestRef_JSON(t *testing.T) {
	data, err := json.Marshal([]Ref{{ID: 1, Title: "Erotica"}, {ID: 2, Title: `Say "Hi"`}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `[[1,"Erotica"],[2,"Say \"Hi\""]]`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var refs []Ref
	if err := json.Unmarshal(data, &refs); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(refs) != 2 || refs[1].Title != `Say "Hi"` {
		t.Errorf("Unmarshal = %+v", refs)
	}
}

func TestRef_UnmarshalRejectsWrongShape(t *testing.T) {
	tests := []string{
		`[1]`,
		`[1,"a","b"]`,
		`["x","a"]`,
		`[1,2]`,
		`{"id":1}`,
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			var r Ref
			if err := json.Unmarshal([]byte(input), &r); err == nil {
				t.Errorf("Unmarshal(%s) should fail, got %+v", input, r)
			}
		})
	}
}

func TestAppendRef(t *testing.T) {
	refs := AppendRef(nil, Ref{ID: 2, Title: "B"})
	refs = AppendRef(refs, Ref{ID: 1, Title: "A"})
	refs = AppendRef(refs, Ref{ID: 2, Title: "B again"})

	if len(refs) != 2 {
		t.Fatalf("len = %d, want 2", len(refs))
	}
	if refs[0].ID != 2 || refs[1].ID != 1 {
		t.Errorf("order not preserved: %+v", refs)
	}
	if refs[0].Title != "B" {
		t.Errorf("duplicate overwrote title: %q", refs[0].Title)
	}
}

func TestAlbum_Revenue(t *testing.T) {
	album := Album{UnitsSold: 3, Price: 2.5}
	if got := album.Revenue(); got != 7.5 {
		t.Errorf("Revenue() = %v, want 7.5", got)
	}
}

func TestTrack_Accessors(t *testing.T) {
	track := Track{
		TrackID:    "42",
		AlbumID:    " 7 ",
		AlbumTitle: "Erotica",
		ArtistID:   "3.0",
		ArtistName: "Madonna",
		Interest:   "N/A",
		Number:     "5",
		Price:      "1.29",
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"ID", track.ID(), 42},
		{"AlbumRef", track.AlbumRef(), Ref{ID: 7, Title: "Erotica"}},
		{"ArtistRef", track.ArtistRef(), Ref{ID: 3, Title: "Madonna"}},
		{"InterestCount", track.InterestCount(), 0},
		{"TrackNumber", track.TrackNumber(), 5},
		{"PriceAmount", track.PriceAmount(), 1.29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestTrack_IsComplete(t *testing.T) {
	full := Track{
		TrackID: "1", AlbumID: "1", AlbumTitle: "A", ArtistID: "1", ArtistName: "X",
		DateRecorded: "2008-01-01", Genres: "Rock", Interest: "10", Number: "1",
		Title: "T", ArtistNationality: "PT", Price: "0.99",
	}
	if !full.IsComplete() {
		t.Error("IsComplete() should be true when all columns are set")
	}

	partial := full
	partial.Genres = "  "
	if partial.IsComplete() {
		t.Error("IsComplete() should be false with a blank column")
	}
}

func TestCatalog_SortedIDs(t *testing.T) {
	c := Catalog{
		Artists: map[int]Artist{3: {}, 1: {}, 2: {}},
		Albums:  map[int]Album{10: {}, 5: {}},
	}

	ids := c.ArtistIDs()
	if len(ids) != 3 || ids[0] != 1 || ids[2] != 3 {
		t.Errorf("ArtistIDs() = %v", ids)
	}
	if albums := c.AlbumIDs(); albums[0] != 5 || albums[1] != 10 {
		t.Errorf("AlbumIDs() = %v", albums)
	}
}
