package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/cropreport-go/internal/adapters/catalog"
)

func TestEmbeddedStore_GetCatalog(t *testing.T) {
	store := catalog.NewEmbeddedStore()

	c, err := store.GetCatalog(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, c.SoilTypes)
	assert.NotEmpty(t, c.IrrigationMethods)
	assert.NotEmpty(t, c.Fertilizers)
	require.NotEmpty(t, c.Crops)
	for _, crop := range c.Crops {
		assert.NotEmpty(t, crop.Name)
		assert.NotEmpty(t, crop.Variants, crop.Name)
	}

	again, err := store.GetCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, c, again)
}
