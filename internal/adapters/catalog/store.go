package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/randomtoy/cropreport-go/internal/domain"
)

//go:embed data/*.json
var catalogFS embed.FS

const catalogFile = "data/catalog.json"

// EmbeddedStore loads the farm-input catalog from an embedded JSON file.
type EmbeddedStore struct {
	once    sync.Once
	catalog domain.Catalog
	err     error
}

func NewEmbeddedStore() *EmbeddedStore {
	return &EmbeddedStore{}
}

func (s *EmbeddedStore) init() {
	raw, err := catalogFS.ReadFile(catalogFile)
	if err != nil {
		s.err = fmt.Errorf("read embedded catalog: %w", err)
		return
	}
	if err := json.Unmarshal(raw, &s.catalog); err != nil {
		s.err = fmt.Errorf("parse embedded catalog: %w", err)
	}
}

func (s *EmbeddedStore) GetCatalog(_ context.Context) (domain.Catalog, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return domain.Catalog{}, s.err
	}
	return s.catalog, nil
}
