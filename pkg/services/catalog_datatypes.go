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

func (s *catalogService) CreateDataType(ctx context.Context, input models.CreateDataTypeInput) (*models.DataType, error) {
	if strings.TrimSpace(input.FurnisherID) == "" {
		return nil, apperrors.NewValidation("furnisherId")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidation("name")
	}

	now := time.Now().UTC()
	dataType := &models.DataType{
		ID:          input.ID,
		FurnisherID: input.FurnisherID,
		Name:        input.Name,
		Description: input.Description,
		ConfigID:    input.ConfigID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if dataType.ID == "" {
		dataType.ID = s.newID()
	}

	err := s.store.Update(func(tx docstore.Tx) error {
		furnisher, err := s.furnisherRepo.FindByID(tx, input.FurnisherID)
		if err != nil {
			return err
		}
		if furnisher == nil {
			return apperrors.ErrNotFound
		}

		dataTypes, err := s.dataTypeRepo.All(tx)
		if err != nil {
			return err
		}
		for _, dt := range dataTypes {
			if dt.ID == dataType.ID {
				return apperrors.ErrDuplicateID
			}
		}
		return s.dataTypeRepo.Replace(tx, append(dataTypes, dataType))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("data type created",
		zap.String("data_type_id", dataType.ID),
		zap.String("furnisher_id", dataType.FurnisherID))
	return dataType, nil
}

func (s *catalogService) UpdateDataType(ctx context.Context, id string, input models.UpdateDataTypeInput) (*models.DataType, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.NewValidation("name")
	}

	var updated *models.DataType
	err := s.store.Update(func(tx docstore.Tx) error {
		dataTypes, err := s.dataTypeRepo.All(tx)
		if err != nil {
			return err
		}
		for _, dt := range dataTypes {
			if dt.ID != id {
				continue
			}
			if input.Name != nil {
				dt.Name = *input.Name
			}
			if input.Description != nil {
				dt.Description = *input.Description
			}
			if input.ConfigID != nil {
				dt.ConfigID = *input.ConfigID
			}
			dt.UpdatedAt = time.Now().UTC()
			updated = dt
			return s.dataTypeRepo.Replace(tx, dataTypes)
		}
		return apperrors.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *catalogService) DeleteDataType(ctx context.Context, id string) error {
	var removedAttributes int
	err := s.store.Update(func(tx docstore.Tx) error {
		dataTypes, err := s.dataTypeRepo.All(tx)
		if err != nil {
			return err
		}
		kept := dataTypes[:0]
		found := false
		for _, dt := range dataTypes {
			if dt.ID == id {
				found = true
				continue
			}
			kept = append(kept, dt)
		}
		if !found {
			return apperrors.ErrNotFound
		}

		attributes, err := s.attributeRepo.All(tx)
		if err != nil {
			return err
		}
		keptAttributes := attributes[:0]
		for _, a := range attributes {
			if a.DataTypeID == id {
				continue
			}
			keptAttributes = append(keptAttributes, a)
		}
		removedAttributes = len(attributes) - len(keptAttributes)

		if err := s.dataTypeRepo.Replace(tx, kept); err != nil {
			return err
		}
		return s.attributeRepo.Replace(tx, keptAttributes)
	})
	if err != nil {
		return err
	}

	s.logger.Info("data type deleted",
		zap.String("data_type_id", id),
		zap.Int("attributes_removed", removedAttributes))
	return nil
}
