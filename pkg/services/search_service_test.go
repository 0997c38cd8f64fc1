package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/docstore"
	"github.com/veridata-labs/catalog-engine/pkg/models"
	"github.com/veridata-labs/catalog-engine/pkg/repositories"
)

func newTestSearch(t *testing.T) (SearchService, CatalogService) {
	t.Helper()
	store := docstore.NewMemStore()
	furnisherRepo := repositories.NewFurnisherRepository()
	dataTypeRepo := repositories.NewDataTypeRepository()
	attributeRepo := repositories.NewAttributeRepository()

	search := NewSearchService(store, furnisherRepo, dataTypeRepo, attributeRepo, zap.NewNop())
	catalog := NewCatalogService(store, furnisherRepo, dataTypeRepo, attributeRepo,
		sequentialIDs(), testIdentity, zap.NewNop())
	return search, catalog
}

func TestSearchShortQueriesMatchNothing(t *testing.T) {
	search, catalog := newTestSearch(t)
	ctx := context.Background()

	_, err := catalog.CreateFurnisher(ctx, models.CreateFurnisherInput{Name: "Acme"})
	require.NoError(t, err)

	// "é" is one character over two bytes; the gate counts runes.
	for _, q := range []string{"", " ", "a", " a ", "é"} {
		result, err := search.Search(ctx, q)
		require.NoError(t, err)
		assert.Empty(t, result.Furnishers, "query %q", q)
		assert.NotNil(t, result.Furnishers)
		assert.NotNil(t, result.DataTypes)
		assert.NotNil(t, result.Attributes)
	}
}

func TestSearchCaseInsensitiveAcrossCollections(t *testing.T) {
	search, catalog := newTestSearch(t)
	ctx := context.Background()

	_, err := catalog.CreateFurnisher(ctx, models.CreateFurnisherInput{
		ID: "F1", Name: "Meridian Payroll", Description: "income data",
	})
	require.NoError(t, err)
	_, err = catalog.CreateDataType(ctx, models.CreateDataTypeInput{
		ID: "DT1", FurnisherID: "F1", Name: "Income",
	})
	require.NoError(t, err)
	_, err = catalog.CreateAttribute(ctx, models.CreateAttributeInput{
		ID: "A1", DataTypeID: "DT1", Name: "gross_income", DisplayName: "Gross Income",
	})
	require.NoError(t, err)

	result, err := search.Search(ctx, "INCOME")
	require.NoError(t, err)

	require.Len(t, result.Furnishers, 1, "description matches count")
	require.Len(t, result.DataTypes, 1)
	require.Len(t, result.Attributes, 1)
	assert.Equal(t, "A1", result.Attributes[0].ID)
	assert.Equal(t, "F1", result.Attributes[0].FurnisherID,
		"attribute hits carry the owning furnisher")
}

func TestSearchNoHits(t *testing.T) {
	search, catalog := newTestSearch(t)
	ctx := context.Background()

	_, err := catalog.CreateFurnisher(ctx, models.CreateFurnisherInput{Name: "Acme"})
	require.NoError(t, err)

	result, err := search.Search(ctx, "zz-nothing")
	require.NoError(t, err)
	assert.Empty(t, result.Furnishers)
	assert.Empty(t, result.DataTypes)
	assert.Empty(t, result.Attributes)
}
