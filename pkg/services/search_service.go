package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/docstore"
	"github.com/veridata-labs/catalog-engine/pkg/logging"
	"github.com/veridata-labs/catalog-engine/pkg/models"
	"github.com/veridata-labs/catalog-engine/pkg/repositories"
)

// SearchResult groups the hits of one query across the three hierarchy
// collections. Slices are always non-nil so empty result sets encode as
// JSON arrays.
type SearchResult struct {
	Furnishers []*models.Furnisher          `json:"furnishers"`
	DataTypes  []*models.DataType           `json:"dataTypes"`
	Attributes []*models.AttributeSearchHit `json:"attributes"`
}

// SearchService matches a free-text query case-insensitively against
// furnishers, data types and attributes. No ranking, no pagination;
// results keep source collection order.
type SearchService interface {
	Search(ctx context.Context, query string) (*SearchResult, error)
}

type searchService struct {
	store         docstore.Store
	furnisherRepo repositories.FurnisherRepository
	dataTypeRepo  repositories.DataTypeRepository
	attributeRepo repositories.AttributeRepository
	logger        *zap.Logger
}

// NewSearchService creates a new SearchService.
func NewSearchService(
	store docstore.Store,
	furnisherRepo repositories.FurnisherRepository,
	dataTypeRepo repositories.DataTypeRepository,
	attributeRepo repositories.AttributeRepository,
	logger *zap.Logger,
) SearchService {
	return &searchService{
		store:         store,
		furnisherRepo: furnisherRepo,
		dataTypeRepo:  dataTypeRepo,
		attributeRepo: attributeRepo,
		logger:        logger,
	}
}

var _ SearchService = (*searchService)(nil)

func (s *searchService) Search(ctx context.Context, query string) (*SearchResult, error) {
	result := &SearchResult{
		Furnishers: []*models.Furnisher{},
		DataTypes:  []*models.DataType{},
		Attributes: []*models.AttributeSearchHit{},
	}

	// Queries shorter than two characters match nothing, by contract.
	// Counted in runes so a single multibyte character does not slip
	// through.
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < 2 {
		return result, nil
	}

	err := s.store.View(func(tx docstore.Tx) error {
		furnishers, err := s.furnisherRepo.All(tx)
		if err != nil {
			return err
		}
		for _, f := range furnishers {
			if containsFold(q, f.Name, f.Description) {
				result.Furnishers = append(result.Furnishers, f)
			}
		}

		dataTypes, err := s.dataTypeRepo.All(tx)
		if err != nil {
			return err
		}
		dataTypeOwner := make(map[string]string, len(dataTypes))
		for _, dt := range dataTypes {
			dataTypeOwner[dt.ID] = dt.FurnisherID
			if containsFold(q, dt.Name, dt.Description) {
				result.DataTypes = append(result.DataTypes, dt)
			}
		}

		attributes, err := s.attributeRepo.All(tx)
		if err != nil {
			return err
		}
		for _, a := range attributes {
			if containsFold(q, a.Name, a.DisplayName, a.Description) {
				// Denormalize the owning furnisher so a flat result list
				// supports direct navigation.
				result.Attributes = append(result.Attributes, &models.AttributeSearchHit{
					Attribute:   *a,
					FurnisherID: dataTypeOwner[a.DataTypeID],
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("search executed",
		zap.String("query", logging.TruncateQuery(q)),
		zap.Int("furnisher_hits", len(result.Furnishers)),
		zap.Int("data_type_hits", len(result.DataTypes)),
		zap.Int("attribute_hits", len(result.Attributes)))
	return result, nil
}

// containsFold reports whether any of the fields contains the already
// lower-cased query as a substring, ignoring case.
func containsFold(loweredQuery string, fields ...string) bool {
	for _, field := range fields {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), loweredQuery) {
			return true
		}
	}
	return false
}
