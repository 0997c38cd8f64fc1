package repositories

import (
	"fmt"

	"github.com/veridata-labs/catalog-engine/pkg/docstore"
	"github.com/veridata-labs/catalog-engine/pkg/models"
)

// AttributeCollection is the persisted collection name; the document
// holds a single array under the "attributes" key.
const AttributeCollection = "attributes"

type attributeDoc struct {
	Attributes []*models.Attribute `json:"attributes"`
}

// AttributeRepository provides typed access to the attributes
// collection within a docstore transaction.
type AttributeRepository interface {
	All(tx docstore.Tx) ([]*models.Attribute, error)
	FindByID(tx docstore.Tx, id string) (*models.Attribute, error)
	ByDataType(tx docstore.Tx, dataTypeID string) ([]*models.Attribute, error)
	Replace(tx docstore.Tx, attributes []*models.Attribute) error
}

type attributeRepository struct{}

// NewAttributeRepository creates a new AttributeRepository.
func NewAttributeRepository() AttributeRepository {
	return &attributeRepository{}
}

var _ AttributeRepository = (*attributeRepository)(nil)

func (r *attributeRepository) All(tx docstore.Tx) ([]*models.Attribute, error) {
	var doc attributeDoc
	if err := tx.Load(AttributeCollection, &doc); err != nil {
		return nil, fmt.Errorf("failed to load attributes: %w", err)
	}
	if doc.Attributes == nil {
		doc.Attributes = []*models.Attribute{}
	}
	return doc.Attributes, nil
}

func (r *attributeRepository) FindByID(tx docstore.Tx, id string) (*models.Attribute, error) {
	attributes, err := r.All(tx)
	if err != nil {
		return nil, err
	}
	for _, a := range attributes {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *attributeRepository) ByDataType(tx docstore.Tx, dataTypeID string) ([]*models.Attribute, error) {
	attributes, err := r.All(tx)
	if err != nil {
		return nil, err
	}
	owned := []*models.Attribute{}
	for _, a := range attributes {
		if a.DataTypeID == dataTypeID {
			owned = append(owned, a)
		}
	}
	return owned, nil
}

func (r *attributeRepository) Replace(tx docstore.Tx, attributes []*models.Attribute) error {
	if attributes == nil {
		attributes = []*models.Attribute{}
	}
	if err := tx.Save(AttributeCollection, attributeDoc{Attributes: attributes}); err != nil {
		return fmt.Errorf("failed to save attributes: %w", err)
	}
	return nil
}
