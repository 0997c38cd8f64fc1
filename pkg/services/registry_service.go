package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/apperrors"
	"github.com/veridata-labs/catalog-engine/pkg/docstore"
	"github.com/veridata-labs/catalog-engine/pkg/models"
	"github.com/veridata-labs/catalog-engine/pkg/repositories"
)

// RegistryService manages the catalogue-wide DataTypeConfig and
// Category lookup collections: slug id generation, case-insensitive
// name uniqueness and delete protection for configs still referenced
// by data types.
type RegistryService interface {
	ListConfigs(ctx context.Context) ([]*models.DataTypeConfig, error)
	CreateConfig(ctx context.Context, input models.CreateConfigInput) (*models.DataTypeConfig, error)
	UpdateConfig(ctx context.Context, id string, input models.UpdateConfigInput) (*models.DataTypeConfig, error)

	// DeleteConfig refuses with an in-use error while any data type still
	// references the config id.
	DeleteConfig(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]*models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
}

type registryService struct {
	store        docstore.Store
	configRepo   repositories.ConfigRepository
	categoryRepo repositories.CategoryRepository
	dataTypeRepo repositories.DataTypeRepository
	logger       *zap.Logger
}

// NewRegistryService creates a new RegistryService. The data type
// repository is consulted for delete protection only.
func NewRegistryService(
	store docstore.Store,
	configRepo repositories.ConfigRepository,
	categoryRepo repositories.CategoryRepository,
	dataTypeRepo repositories.DataTypeRepository,
	logger *zap.Logger,
) RegistryService {
	return &registryService{
		store:        store,
		configRepo:   configRepo,
		categoryRepo: categoryRepo,
		dataTypeRepo: dataTypeRepo,
		logger:       logger,
	}
}

var _ RegistryService = (*registryService)(nil)

func (s *registryService) ListConfigs(ctx context.Context) ([]*models.DataTypeConfig, error) {
	var configs []*models.DataTypeConfig
	err := s.store.View(func(tx docstore.Tx) error {
		var err error
		configs, err = s.configRepo.All(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return configs, nil
}

func (s *registryService) CreateConfig(ctx context.Context, input models.CreateConfigInput) (*models.DataTypeConfig, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidation("name")
	}

	var created *models.DataTypeConfig
	err := s.store.Update(func(tx docstore.Tx) error {
		configs, err := s.configRepo.All(tx)
		if err != nil {
			return err
		}
		taken := make(map[string]bool, len(configs))
		for _, c := range configs {
			if strings.EqualFold(c.Name, name) {
				return apperrors.ErrDuplicateName
			}
			taken[c.ID] = true
		}

		now := time.Now().UTC()
		created = &models.DataTypeConfig{
			ID:          uniqueSlug(Slugify(name), taken),
			Name:        name,
			Description: input.Description,
			Category:    input.Category,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return s.configRepo.Replace(tx, append(configs, created))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("data type config created", zap.String("config_id", created.ID))
	return created, nil
}

func (s *registryService) UpdateConfig(ctx context.Context, id string, input models.UpdateConfigInput) (*models.DataTypeConfig, error) {
	var updated *models.DataTypeConfig
	err := s.store.Update(func(tx docstore.Tx) error {
		configs, err := s.configRepo.All(tx)
		if err != nil {
			return err
		}
		var target *models.DataTypeConfig
		for _, c := range configs {
			if c.ID == id {
				target = c
				break
			}
		}
		if target == nil {
			return apperrors.ErrNotFound
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return apperrors.NewValidation("name")
			}
			// Duplicate check excludes the record being updated.
			for _, c := range configs {
				if c.ID != id && strings.EqualFold(c.Name, name) {
					return apperrors.ErrDuplicateName
				}
			}
			target.Name = name
		}
		if input.Description != nil {
			target.Description = *input.Description
		}
		if input.Category != nil {
			target.Category = *input.Category
		}
		target.UpdatedAt = time.Now().UTC()
		updated = target
		return s.configRepo.Replace(tx, configs)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *registryService) DeleteConfig(ctx context.Context, id string) error {
	return s.store.Update(func(tx docstore.Tx) error {
		configs, err := s.configRepo.All(tx)
		if err != nil {
			return err
		}
		kept := configs[:0]
		found := false
		for _, c := range configs {
			if c.ID == id {
				found = true
				continue
			}
			kept = append(kept, c)
		}
		if !found {
			return apperrors.ErrNotFound
		}

		dataTypes, err := s.dataTypeRepo.All(tx)
		if err != nil {
			return err
		}
		inUse := 0
		for _, dt := range dataTypes {
			if dt.ConfigID == id {
				inUse++
			}
		}
		if inUse > 0 {
			return fmt.Errorf("%w: config is referenced by %d data types", apperrors.ErrInUse, inUse)
		}

		return s.configRepo.Replace(tx, kept)
	})
}

func (s *registryService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := s.store.View(func(tx docstore.Tx) error {
		var err error
		categories, err = s.categoryRepo.All(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *registryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidation("name")
	}

	var created *models.Category
	err := s.store.Update(func(tx docstore.Tx) error {
		categories, err := s.categoryRepo.All(tx)
		if err != nil {
			return err
		}
		taken := make(map[string]bool, len(categories))
		maxOrder := 0
		for _, c := range categories {
			if strings.EqualFold(c.Name, name) {
				return apperrors.ErrDuplicateName
			}
			taken[c.ID] = true
			if c.Order > maxOrder {
				maxOrder = c.Order
			}
		}

		now := time.Now().UTC()
		created = &models.Category{
			ID:        uniqueSlug(Slugify(name), taken),
			Name:      name,
			Order:     maxOrder + 1,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return s.categoryRepo.Replace(tx, append(categories, created))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("category created",
		zap.String("category_id", created.ID),
		zap.Int("order", created.Order))
	return created, nil
}
