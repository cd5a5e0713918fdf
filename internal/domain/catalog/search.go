package catalog

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"
)

// searchDocument is the indexed shape of an offer.
type searchDocument struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
}

// SearchIndex provides full-text search over offer names and issuers using an
// in-memory Bleve index. The index is rebuilt whenever the catalog cache
// refreshes.
type SearchIndex struct {
	index   bleve.Index
	indexMu sync.RWMutex
}

// NewSearchIndex creates an empty in-memory index.
func NewSearchIndex() (*SearchIndex, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}
	return &SearchIndex{index: index}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	nameField := bleve.NewTextFieldMapping()
	nameField.Analyzer = simple.Name
	docMapping.AddFieldMappingsAt("name", nameField)

	issuerField := bleve.NewTextFieldMapping()
	issuerField.Analyzer = simple.Name
	docMapping.AddFieldMappingsAt("issuer", issuerField)

	idField := bleve.NewTextFieldMapping()
	idField.Analyzer = keyword.Name
	idField.Index = false
	docMapping.AddFieldMappingsAt("id", idField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Rebuild replaces the index contents with the given offers.
func (si *SearchIndex) Rebuild(offers []Offer) error {
	si.indexMu.Lock()
	defer si.indexMu.Unlock()

	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("rebuild search index: %w", err)
	}

	batch := index.NewBatch()
	for _, offer := range offers {
		doc := searchDocument{ID: offer.ID, Name: offer.Name, Issuer: offer.Issuer}
		if err := batch.Index(offer.ID, doc); err != nil {
			return fmt.Errorf("index offer %s: %w", offer.ID, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return fmt.Errorf("apply index batch: %w", err)
	}

	old := si.index
	si.index = index
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Search returns matching offer IDs ordered by relevance. The query combines
// a match query with a fuzzy variant so near-miss card names still hit.
func (si *SearchIndex) Search(query string, limit int) ([]string, error) {
	si.indexMu.RLock()
	defer si.indexMu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	match := bleve.NewMatchQuery(query)
	fuzzy := bleve.NewMatchQuery(query)
	fuzzy.SetFuzziness(1)
	combined := bleve.NewDisjunctionQuery(match, fuzzy)

	req := bleve.NewSearchRequestOptions(combined, limit, 0, false)
	result, err := si.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search offers: %w", err)
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}
