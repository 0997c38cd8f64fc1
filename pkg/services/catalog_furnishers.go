package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/apperrors"
	"github.com/veridata-labs/catalog-engine/pkg/docstore"
	"github.com/veridata-labs/catalog-engine/pkg/models"
)

func (s *catalogService) CreateFurnisher(ctx context.Context, input models.CreateFurnisherInput) (*models.Furnisher, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidation("name")
	}

	now := time.Now().UTC()
	furnisher := &models.Furnisher{
		ID:           input.ID,
		Name:         input.Name,
		Description:  input.Description,
		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Website:      input.Website,
		Regions:      input.Regions,
		CreatedBy:    s.identity(ctx),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if furnisher.ID == "" {
		furnisher.ID = s.newID()
	}
	if furnisher.Regions == nil {
		furnisher.Regions = []string{}
	}

	err := s.store.Update(func(tx docstore.Tx) error {
		furnishers, err := s.furnisherRepo.All(tx)
		if err != nil {
			return err
		}
		for _, f := range furnishers {
			if f.ID == furnisher.ID {
				return apperrors.ErrDuplicateID
			}
		}
		return s.furnisherRepo.Replace(tx, append(furnishers, furnisher))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("furnisher created",
		zap.String("furnisher_id", furnisher.ID),
		zap.String("created_by", furnisher.CreatedBy))
	return furnisher, nil
}

func (s *catalogService) UpdateFurnisher(ctx context.Context, id string, input models.UpdateFurnisherInput) (*models.Furnisher, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.NewValidation("name")
	}

	var updated *models.Furnisher
	err := s.store.Update(func(tx docstore.Tx) error {
		furnishers, err := s.furnisherRepo.All(tx)
		if err != nil {
			return err
		}
		for _, f := range furnishers {
			if f.ID != id {
				continue
			}
			applyFurnisherUpdate(f, input)
			f.UpdatedAt = time.Now().UTC()
			updated = f
			return s.furnisherRepo.Replace(tx, furnishers)
		}
		return apperrors.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyFurnisherUpdate replaces only the fields explicitly present in
// the request; absent (nil) fields retain their prior value.
func applyFurnisherUpdate(f *models.Furnisher, input models.UpdateFurnisherInput) {
	if input.Name != nil {
		f.Name = *input.Name
	}
	if input.Description != nil {
		f.Description = *input.Description
	}
	if input.ContactName != nil {
		f.ContactName = *input.ContactName
	}
	if input.ContactEmail != nil {
		f.ContactEmail = *input.ContactEmail
	}
	if input.ContactPhone != nil {
		f.ContactPhone = *input.ContactPhone
	}
	if input.Website != nil {
		f.Website = *input.Website
	}
	if input.Regions != nil {
		f.Regions = *input.Regions
	}
}

func (s *catalogService) DeleteFurnisher(ctx context.Context, id string) error {
	var removedDataTypes, removedAttributes int
	err := s.store.Update(func(tx docstore.Tx) error {
		furnishers, err := s.furnisherRepo.All(tx)
		if err != nil {
			return err
		}
		kept := furnishers[:0]
		found := false
		for _, f := range furnishers {
			if f.ID == id {
				found = true
				continue
			}
			kept = append(kept, f)
		}
		if !found {
			return apperrors.ErrNotFound
		}

		dataTypes, err := s.dataTypeRepo.All(tx)
		if err != nil {
			return err
		}
		ownedDataTypes := make(map[string]bool)
		keptDataTypes := dataTypes[:0]
		for _, dt := range dataTypes {
			if dt.FurnisherID == id {
				ownedDataTypes[dt.ID] = true
				continue
			}
			keptDataTypes = append(keptDataTypes, dt)
		}

		attributes, err := s.attributeRepo.All(tx)
		if err != nil {
			return err
		}
		keptAttributes := attributes[:0]
		for _, a := range attributes {
			if ownedDataTypes[a.DataTypeID] {
				continue
			}
			keptAttributes = append(keptAttributes, a)
		}

		removedDataTypes = len(ownedDataTypes)
		removedAttributes = len(attributes) - len(keptAttributes)

		// All three collections are staged in the same transaction so the
		// cascade is never partially visible.
		if err := s.furnisherRepo.Replace(tx, kept); err != nil {
			return err
		}
		if err := s.dataTypeRepo.Replace(tx, keptDataTypes); err != nil {
			return err
		}
		return s.attributeRepo.Replace(tx, keptAttributes)
	})
	if err != nil {
		return err
	}

	s.logger.Info("furnisher deleted",
		zap.String("furnisher_id", id),
		zap.Int("data_types_removed", removedDataTypes),
		zap.Int("attributes_removed", removedAttributes))
	return nil
}
