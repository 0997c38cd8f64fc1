package repositories

import (
	"fmt"

	"github.com/veridata-labs/catalog-engine/pkg/docstore"
	"github.com/veridata-labs/catalog-engine/pkg/models"
)

// FurnisherCollection is the persisted collection name; the document
// holds a single array under the "furnishers" key.
const FurnisherCollection = "furnishers"

type furnisherDoc struct {
	Furnishers []*models.Furnisher `json:"furnishers"`
}

// FurnisherRepository provides typed access to the furnishers
// collection within a docstore transaction.
type FurnisherRepository interface {
	All(tx docstore.Tx) ([]*models.Furnisher, error)
	FindByID(tx docstore.Tx, id string) (*models.Furnisher, error)
	Replace(tx docstore.Tx, furnishers []*models.Furnisher) error
}

type furnisherRepository struct{}

// NewFurnisherRepository creates a new FurnisherRepository.
func NewFurnisherRepository() FurnisherRepository {
	return &furnisherRepository{}
}

var _ FurnisherRepository = (*furnisherRepository)(nil)

func (r *furnisherRepository) All(tx docstore.Tx) ([]*models.Furnisher, error) {
	var doc furnisherDoc
	if err := tx.Load(FurnisherCollection, &doc); err != nil {
		return nil, fmt.Errorf("failed to load furnishers: %w", err)
	}
	if doc.Furnishers == nil {
		doc.Furnishers = []*models.Furnisher{}
	}
	return doc.Furnishers, nil
}

func (r *furnisherRepository) FindByID(tx docstore.Tx, id string) (*models.Furnisher, error) {
	furnishers, err := r.All(tx)
	if err != nil {
		return nil, err
	}
	for _, f := range furnishers {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, nil
}

func (r *furnisherRepository) Replace(tx docstore.Tx, furnishers []*models.Furnisher) error {
	if furnishers == nil {
		furnishers = []*models.Furnisher{}
	}
	if err := tx.Save(FurnisherCollection, furnisherDoc{Furnishers: furnishers}); err != nil {
		return fmt.Errorf("failed to save furnishers: %w", err)
	}
	return nil
}
