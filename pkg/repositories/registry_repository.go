package repositories

import (
	"fmt"

	"github.com/veridata-labs/catalog-engine/pkg/docstore"
	"github.com/veridata-labs/catalog-engine/pkg/models"
)

// Collection names for the registry lookup collections.
const (
	ConfigCollection   = "dataTypeConfigs"
	CategoryCollection = "categories"
)

type configDoc struct {
	Configs []*models.DataTypeConfig `json:"dataTypeConfigs"`
}

type categoryDoc struct {
	Categories []*models.Category `json:"categories"`
}

// ConfigRepository provides typed access to the dataTypeConfigs
// collection within a docstore transaction.
type ConfigRepository interface {
	All(tx docstore.Tx) ([]*models.DataTypeConfig, error)
	FindByID(tx docstore.Tx, id string) (*models.DataTypeConfig, error)
	Replace(tx docstore.Tx, configs []*models.DataTypeConfig) error
}

type configRepository struct{}

// NewConfigRepository creates a new ConfigRepository.
func NewConfigRepository() ConfigRepository {
	return &configRepository{}
}

var _ ConfigRepository = (*configRepository)(nil)

func (r *configRepository) All(tx docstore.Tx) ([]*models.DataTypeConfig, error) {
	var doc configDoc
	if err := tx.Load(ConfigCollection, &doc); err != nil {
		return nil, fmt.Errorf("failed to load data type configs: %w", err)
	}
	if doc.Configs == nil {
		doc.Configs = []*models.DataTypeConfig{}
	}
	return doc.Configs, nil
}

func (r *configRepository) FindByID(tx docstore.Tx, id string) (*models.DataTypeConfig, error) {
	configs, err := r.All(tx)
	if err != nil {
		return nil, err
	}
	for _, c := range configs {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *configRepository) Replace(tx docstore.Tx, configs []*models.DataTypeConfig) error {
	if configs == nil {
		configs = []*models.DataTypeConfig{}
	}
	if err := tx.Save(ConfigCollection, configDoc{Configs: configs}); err != nil {
		return fmt.Errorf("failed to save data type configs: %w", err)
	}
	return nil
}

// CategoryRepository provides typed access to the categories collection
// within a docstore transaction.
type CategoryRepository interface {
	All(tx docstore.Tx) ([]*models.Category, error)
	Replace(tx docstore.Tx, categories []*models.Category) error
}

type categoryRepository struct{}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository() CategoryRepository {
	return &categoryRepository{}
}

var _ CategoryRepository = (*categoryRepository)(nil)

func (r *categoryRepository) All(tx docstore.Tx) ([]*models.Category, error) {
	var doc categoryDoc
	if err := tx.Load(CategoryCollection, &doc); err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if doc.Categories == nil {
		doc.Categories = []*models.Category{}
	}
	return doc.Categories, nil
}

func (r *categoryRepository) Replace(tx docstore.Tx, categories []*models.Category) error {
	if categories == nil {
		categories = []*models.Category{}
	}
	if err := tx.Save(CategoryCollection, categoryDoc{Categories: categories}); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}
	return nil
}
