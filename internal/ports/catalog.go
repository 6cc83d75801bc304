package ports

import (
	"context"

	"github.com/randomtoy/cropreport-go/internal/domain"
)

// CatalogStore provides sample farm-input choices for selection screens.
type CatalogStore interface {
	GetCatalog(ctx context.Context) (domain.Catalog, error)
}
