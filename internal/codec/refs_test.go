package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/handiism/tocadiscos/internal/model"
)

func TestEncodeRefs(t *testing.T) {
	tests := []struct {
		name string
		refs []model.Ref
		want string
	}{
		{"nil", nil, "[]"},
		{"empty", []model.Ref{}, "[]"},
		{"single", []model.Ref{{ID: 1, Title: "Erotica"}}, `[[1,"Erotica"]]`},
		{"quote in title", []model.Ref{{ID: 7, Title: `Say "Hi"`}}, `[[7,"Say \"Hi\""]]`},
		{"two", []model.Ref{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}, `[[1,"A"],[2,"B"]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeRefs(tt.refs))
		})
	}
}

func TestDecodeRefs(t *testing.T) {
	tests := []struct {
		name    string
		cell    string
		want    []model.Ref
		wantErr bool
	}{
		{"empty cell", "", []model.Ref{}, false},
		{"missing marker", "N/A", []model.Ref{}, false},
		{"empty list", "[]", []model.Ref{}, false},
		{"json", `[[1,"Erotica"],[2,"Music"]]`, []model.Ref{{ID: 1, Title: "Erotica"}, {ID: 2, Title: "Music"}}, false},
		{"legacy tuple", "[(1, 'Erotica')]", []model.Ref{{ID: 1, Title: "Erotica"}}, false},
		{"legacy two tuples", "[(1, 'Erotica'), (2, \"Don't Tell Me\")]", []model.Ref{{ID: 1, Title: "Erotica"}, {ID: 2, Title: "Don't Tell Me"}}, false},
		{"legacy escaped quote", `[(3, 'It\'s')]`, []model.Ref{{ID: 3, Title: "It's"}}, false},
		{"legacy list pairs", "[[4, 'Ray of Light'],]", []model.Ref{{ID: 4, Title: "Ray of Light"}}, false},
		{"legacy quoted id", "[('5', 'Music')]", []model.Ref{{ID: 5, Title: "Music"}}, false},
		{"legacy comma in title", "[(6, 'Like a Prayer, Live')]", []model.Ref{{ID: 6, Title: "Like a Prayer, Live"}}, false},
		{"unterminated", "[(1,'X'", []model.Ref{}, true},
		{"not a list", "Erotica", []model.Ref{}, true},
		{"wrong arity", `[[1,"A",3]]`, []model.Ref{}, true},
		{"non-numeric id", "[(x, 'A')]", []model.Ref{}, true},
		{"trailing garbage", "[(1, 'A')] extra", []model.Ref{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRefs(tt.cell)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func refGen() *rapid.Generator[model.Ref] {
	return rapid.Custom(func(t *rapid.T) model.Ref {
		return model.Ref{
			ID:    rapid.IntRange(1, 1_000_000).Draw(t, "id"),
			Title: rapid.String().Draw(t, "title"),
		}
	})
}

func TestRefsRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		refs := rapid.SliceOf(refGen()).Draw(t, "refs")

		got, err := DecodeRefs(EncodeRefs(refs))
		require.NoError(t, err)
		if len(refs) == 0 {
			assert.Empty(t, got)
			return
		}
		assert.Equal(t, refs, got)
	})
}
