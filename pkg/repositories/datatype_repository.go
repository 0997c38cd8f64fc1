package repositories

import (
	"fmt"

	"github.com/veridata-labs/catalog-engine/pkg/docstore"
	"github.com/veridata-labs/catalog-engine/pkg/models"
)

// DataTypeCollection is the persisted collection name; the document
// holds a single array under the "dataTypes" key.
const DataTypeCollection = "dataTypes"

type dataTypeDoc struct {
	DataTypes []*models.DataType `json:"dataTypes"`
}

// DataTypeRepository provides typed access to the dataTypes collection
// within a docstore transaction.
type DataTypeRepository interface {
	All(tx docstore.Tx) ([]*models.DataType, error)
	FindByID(tx docstore.Tx, id string) (*models.DataType, error)
	ByFurnisher(tx docstore.Tx, furnisherID string) ([]*models.DataType, error)
	Replace(tx docstore.Tx, dataTypes []*models.DataType) error
}

type dataTypeRepository struct{}

// NewDataTypeRepository creates a new DataTypeRepository.
func NewDataTypeRepository() DataTypeRepository {
	return &dataTypeRepository{}
}

var _ DataTypeRepository = (*dataTypeRepository)(nil)

func (r *dataTypeRepository) All(tx docstore.Tx) ([]*models.DataType, error) {
	var doc dataTypeDoc
	if err := tx.Load(DataTypeCollection, &doc); err != nil {
		return nil, fmt.Errorf("failed to load data types: %w", err)
	}
	if doc.DataTypes == nil {
		doc.DataTypes = []*models.DataType{}
	}
	return doc.DataTypes, nil
}

func (r *dataTypeRepository) FindByID(tx docstore.Tx, id string) (*models.DataType, error) {
	dataTypes, err := r.All(tx)
	if err != nil {
		return nil, err
	}
	for _, dt := range dataTypes {
		if dt.ID == id {
			return dt, nil
		}
	}
	return nil, nil
}

func (r *dataTypeRepository) ByFurnisher(tx docstore.Tx, furnisherID string) ([]*models.DataType, error) {
	dataTypes, err := r.All(tx)
	if err != nil {
		return nil, err
	}
	owned := []*models.DataType{}
	for _, dt := range dataTypes {
		if dt.FurnisherID == furnisherID {
			owned = append(owned, dt)
		}
	}
	return owned, nil
}

func (r *dataTypeRepository) Replace(tx docstore.Tx, dataTypes []*models.DataType) error {
	if dataTypes == nil {
		dataTypes = []*models.DataType{}
	}
	if err := tx.Save(DataTypeCollection, dataTypeDoc{DataTypes: dataTypes}); err != nil {
		return fmt.Errorf("failed to save data types: %w", err)
	}
	return nil
}
