package search

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"
	"github.com/rs/zerolog"

	"github.com/handiism/tocadiscos/internal/logging"
	"github.com/handiism/tocadiscos/internal/model"
)

// DefaultLimit caps query results when no limit is given.
const DefaultLimit = 20

var textFields = []string{"title", "artist_name", "album_title", "genres", "nationality"}

// Hit is one query result.
type Hit struct {
	Document
	Score float64
}

// Index is a bleve index of catalog documents.
type Index struct {
	index bleve.Index
	log   *zerolog.Logger
}

// Open opens the index at path, creating it if absent. An empty path gives
// an in-memory index.
func Open(path string, log *zerolog.Logger) (*Index, error) {
	if log == nil {
		log = logging.Default()
	}

	var (
		idx bleve.Index
		err error
	)
	switch {
	case path == "":
		idx, err = bleve.NewMemOnly(newMapping())
	default:
		if _, statErr := os.Stat(path); stderrors.Is(statErr, os.ErrNotExist) {
			idx, err = bleve.New(path, newMapping())
		} else {
			idx, err = bleve.Open(path)
		}
	}
	if err != nil {
		return nil, err
	}
	return &Index{index: idx, log: log}, nil
}

func newMapping() mapping.IndexMapping {
	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("doc_type", bleve.NewKeywordFieldMapping())
	doc.AddFieldMappingsAt("entity_id", bleve.NewNumericFieldMapping())
	for _, f := range textFields {
		doc.AddFieldMappingsAt(f, bleve.NewTextFieldMapping())
	}

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

// Close releases the index.
func (ix *Index) Close() error {
	return ix.index.Close()
}

// Count returns the number of indexed documents.
func (ix *Index) Count() (uint64, error) {
	return ix.index.DocCount()
}

// Rebuild replaces the index content with the documents of c in one batch.
func (ix *Index) Rebuild(ctx context.Context, c model.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	docs := Documents(c)
	keep := make(map[string]struct{}, len(docs))
	batch := ix.index.NewBatch()
	for _, d := range docs {
		keep[d.ID()] = struct{}{}
		if err := batch.Index(d.ID(), d); err != nil {
			return err
		}
	}

	stale, err := ix.allIDs()
	if err != nil {
		return err
	}
	removed := 0
	for _, id := range stale {
		if _, ok := keep[id]; !ok {
			batch.Delete(id)
			removed++
		}
	}

	if err := ix.index.Batch(batch); err != nil {
		return err
	}
	ix.log.Debug().Int("documents", len(docs)).Int("removed", removed).Msg("Search index rebuilt")
	return nil
}

func (ix *Index) allIDs() ([]string, error) {
	count, err := ix.index.DocCount()
	if err != nil || count == 0 {
		return nil, err
	}

	req := bleve.NewSearchRequest(bleve.NewMatchAllQuery())
	req.Size = int(count)
	req.Fields = []string{}
	res, err := ix.index.Search(req)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

// Query searches for text, optionally restricted to one document type.
// Empty text matches every document. Text containing a colon is read as a
// bleve query string, e.g. "genres:rock".
func (ix *Index) Query(ctx context.Context, text string, typ DocType, limit int) ([]Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	text = strings.TrimSpace(text)
	var q bleveQuery.Query
	switch {
	case text == "":
		q = bleve.NewMatchAllQuery()
	case strings.Contains(text, ":"):
		q = bleve.NewQueryStringQuery(text)
	default:
		q = textQuery(text)
	}

	if typ != "" {
		tq := bleve.NewTermQuery(string(typ))
		tq.SetField("doc_type")
		q = bleve.NewConjunctionQuery(q, tq)
	}

	req := bleve.NewSearchRequest(q)
	req.Size = limit
	req.Fields = []string{"*"}
	if text == "" {
		req.SortBy([]string{"doc_type", "entity_id"})
	}

	res, err := ix.index.Search(req)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, Hit{Document: documentFromFields(h.Fields), Score: h.Score})
	}
	return hits, nil
}

// textQuery matches text as whole words in any field or as a prefix of a
// title word.
func textQuery(text string) bleveQuery.Query {
	dq := bleve.NewDisjunctionQuery()
	for _, f := range textFields {
		mq := bleve.NewMatchQuery(text)
		mq.SetField(f)
		dq.AddQuery(mq)
	}
	if !strings.ContainsAny(text, " \t") {
		pq := bleve.NewPrefixQuery(strings.ToLower(text))
		pq.SetField("title")
		dq.AddQuery(pq)
	}
	return dq
}

func documentFromFields(fields map[string]any) Document {
	str := func(f string) string {
		if v, ok := fields[f].(string); ok {
			return v
		}
		return ""
	}
	d := Document{
		Type:        DocType(str("doc_type")),
		Title:       str("title"),
		ArtistName:  str("artist_name"),
		AlbumTitle:  str("album_title"),
		Genres:      str("genres"),
		Nationality: str("nationality"),
	}
	if v, ok := fields["entity_id"].(float64); ok {
		d.EntityID = int(v)
	}
	return d
}
