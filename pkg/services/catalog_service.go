package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/docstore"
	"github.com/veridata-labs/catalog-engine/pkg/models"
	"github.com/veridata-labs/catalog-engine/pkg/repositories"
)

// IDGenerator produces ids for records created without a caller-supplied
// id. It is injected so tests can make id assignment deterministic.
type IDGenerator func() string

// NewUUIDGenerator returns the default IDGenerator backed by random
// UUIDs.
func NewUUIDGenerator() IDGenerator {
	return uuid.NewString
}

// IdentityFunc resolves the current caller identity from the request
// context. It returns the empty string when no identity is present.
type IdentityFunc func(ctx context.Context) string

// CatalogService is the hierarchy engine: CRUD over the
// Furnisher -> DataType -> Attribute collections with referential
// integrity and cascade deletes, plus the read-side compositions.
type CatalogService interface {
	// ListFurnishers returns all furnishers with derived ownership counts.
	ListFurnishers(ctx context.Context) ([]*models.FurnisherWithStats, error)

	// GetFurnisher returns one furnisher with its nested data types and
	// attributes.
	GetFurnisher(ctx context.Context, id string) (*models.FurnisherDetail, error)

	CreateFurnisher(ctx context.Context, input models.CreateFurnisherInput) (*models.Furnisher, error)
	UpdateFurnisher(ctx context.Context, id string, input models.UpdateFurnisherInput) (*models.Furnisher, error)

	// DeleteFurnisher removes the furnisher, every data type it owns and
	// every attribute owned by those data types, as one logical
	// transaction.
	DeleteFurnisher(ctx context.Context, id string) error

	// ListDataTypes returns data types, optionally filtered by furnisher.
	ListDataTypes(ctx context.Context, furnisherID string) ([]*models.DataType, error)
	GetDataType(ctx context.Context, id string) (*models.DataTypeDetail, error)
	CreateDataType(ctx context.Context, input models.CreateDataTypeInput) (*models.DataType, error)
	UpdateDataType(ctx context.Context, id string, input models.UpdateDataTypeInput) (*models.DataType, error)

	// DeleteDataType removes the data type and its attributes; the parent
	// furnisher is untouched.
	DeleteDataType(ctx context.Context, id string) error

	GetAttribute(ctx context.Context, id string) (*models.Attribute, error)
	CreateAttribute(ctx context.Context, input models.CreateAttributeInput) (*models.Attribute, error)

	// BulkCreateAttributes is a best-effort batch insert: items without a
	// name and items whose id collides with an existing attribute are
	// skipped with a per-item reason; everything else is inserted.
	BulkCreateAttributes(ctx context.Context, dataTypeID string, items []models.BulkAttributeItem) (*BulkResult, error)

	UpdateAttribute(ctx context.Context, id string, input models.UpdateAttributeInput) (*models.Attribute, error)
	DeleteAttribute(ctx context.Context, id string) error

	// Export produces the full hierarchy as one nested document with an
	// export timestamp.
	Export(ctx context.Context) (*models.ExportDocument, error)
}

// SkippedItem reports why one entry of a best-effort batch was not
// applied.
type SkippedItem struct {
	Kind   string `json:"kind,omitempty"`
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

// BulkResult is the outcome of BulkCreateAttributes.
type BulkResult struct {
	Created    int                 `json:"created"`
	Attributes []*models.Attribute `json:"attributes"`
	Skipped    []SkippedItem       `json:"skipped,omitempty"`
}

type catalogService struct {
	store         docstore.Store
	furnisherRepo repositories.FurnisherRepository
	dataTypeRepo  repositories.DataTypeRepository
	attributeRepo repositories.AttributeRepository
	newID         IDGenerator
	identity      IdentityFunc
	logger        *zap.Logger
}

// NewCatalogService creates a new CatalogService. identity resolves the
// creator stamped onto new furnishers; newID assigns ids when the
// caller supplies none.
func NewCatalogService(
	store docstore.Store,
	furnisherRepo repositories.FurnisherRepository,
	dataTypeRepo repositories.DataTypeRepository,
	attributeRepo repositories.AttributeRepository,
	newID IDGenerator,
	identity IdentityFunc,
	logger *zap.Logger,
) CatalogService {
	return &catalogService{
		store:         store,
		furnisherRepo: furnisherRepo,
		dataTypeRepo:  dataTypeRepo,
		attributeRepo: attributeRepo,
		newID:         newID,
		identity:      identity,
		logger:        logger,
	}
}

var _ CatalogService = (*catalogService)(nil)
