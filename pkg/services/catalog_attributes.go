package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/apperrors"
	"github.com/veridata-labs/catalog-engine/pkg/docstore"
	"github.com/veridata-labs/catalog-engine/pkg/jsonutil"
	"github.com/veridata-labs/catalog-engine/pkg/models"
)

func (s *catalogService) CreateAttribute(ctx context.Context, input models.CreateAttributeInput) (*models.Attribute, error) {
	if strings.TrimSpace(input.DataTypeID) == "" {
		return nil, apperrors.NewValidation("dataTypeId")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidation("name")
	}

	now := time.Now().UTC()
	attribute := &models.Attribute{
		ID:          input.ID,
		DataTypeID:  input.DataTypeID,
		Name:        input.Name,
		DisplayName: input.DisplayName,
		Description: input.Description,
		ValueType:   input.ValueType,
		SampleValue: input.SampleValue,
		Region:      input.Region,
		SourcePath:  input.SourcePath,
		Metadata:    input.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if attribute.ID == "" {
		attribute.ID = s.newID()
	}

	err := s.store.Update(func(tx docstore.Tx) error {
		dataType, err := s.dataTypeRepo.FindByID(tx, input.DataTypeID)
		if err != nil {
			return err
		}
		if dataType == nil {
			return apperrors.ErrNotFound
		}

		attributes, err := s.attributeRepo.All(tx)
		if err != nil {
			return err
		}
		for _, a := range attributes {
			if a.ID == attribute.ID {
				return apperrors.ErrDuplicateID
			}
		}
		return s.attributeRepo.Replace(tx, append(attributes, attribute))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("attribute created",
		zap.String("attribute_id", attribute.ID),
		zap.String("data_type_id", attribute.DataTypeID))
	return attribute, nil
}

func (s *catalogService) BulkCreateAttributes(ctx context.Context, dataTypeID string, items []models.BulkAttributeItem) (*BulkResult, error) {
	if strings.TrimSpace(dataTypeID) == "" {
		return nil, apperrors.NewValidation("dataTypeId")
	}
	if len(items) == 0 {
		return nil, &apperrors.ValidationError{Field: "items", Message: "items must not be empty"}
	}

	result := &BulkResult{Attributes: []*models.Attribute{}}
	err := s.store.Update(func(tx docstore.Tx) error {
		dataType, err := s.dataTypeRepo.FindByID(tx, dataTypeID)
		if err != nil {
			return err
		}
		if dataType == nil {
			return apperrors.ErrNotFound
		}

		attributes, err := s.attributeRepo.All(tx)
		if err != nil {
			return err
		}
		existing := make(map[string]bool, len(attributes))
		for _, a := range attributes {
			existing[a.ID] = true
		}

		now := time.Now().UTC()
		for _, item := range items {
			if strings.TrimSpace(item.Name) == "" {
				result.Skipped = append(result.Skipped, SkippedItem{
					Kind:   "attribute",
					ID:     item.ID,
					Reason: "missing name",
				})
				continue
			}
			id := item.ID
			if id == "" {
				id = s.newID()
			}
			// Collisions against records created earlier in this same
			// batch count as duplicates too.
			if existing[id] {
				result.Skipped = append(result.Skipped, SkippedItem{
					Kind:   "attribute",
					ID:     id,
					Name:   item.Name,
					Reason: "duplicate id",
				})
				continue
			}
			attribute := &models.Attribute{
				ID:          id,
				DataTypeID:  dataTypeID,
				Name:        item.Name,
				DisplayName: item.DisplayName,
				Description: item.Description,
				ValueType:   item.ValueType,
				SampleValue: jsonutil.FlexibleStringValue(item.SampleValue),
				Region:      item.Region,
				SourcePath:  item.SourcePath,
				Metadata:    item.Metadata,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			existing[id] = true
			attributes = append(attributes, attribute)
			result.Attributes = append(result.Attributes, attribute)
		}
		result.Created = len(result.Attributes)
		return s.attributeRepo.Replace(tx, attributes)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("attributes bulk created",
		zap.String("data_type_id", dataTypeID),
		zap.Int("created", result.Created),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

func (s *catalogService) UpdateAttribute(ctx context.Context, id string, input models.UpdateAttributeInput) (*models.Attribute, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.NewValidation("name")
	}

	var updated *models.Attribute
	err := s.store.Update(func(tx docstore.Tx) error {
		attributes, err := s.attributeRepo.All(tx)
		if err != nil {
			return err
		}
		for _, a := range attributes {
			if a.ID != id {
				continue
			}
			applyAttributeUpdate(a, input)
			a.UpdatedAt = time.Now().UTC()
			updated = a
			return s.attributeRepo.Replace(tx, attributes)
		}
		return apperrors.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyAttributeUpdate replaces only the fields present in the request.
// An explicit empty region clears the region scope.
func applyAttributeUpdate(a *models.Attribute, input models.UpdateAttributeInput) {
	if input.Name != nil {
		a.Name = *input.Name
	}
	if input.DisplayName != nil {
		a.DisplayName = *input.DisplayName
	}
	if input.Description != nil {
		a.Description = *input.Description
	}
	if input.ValueType != nil {
		a.ValueType = *input.ValueType
	}
	if input.SampleValue != nil {
		a.SampleValue = *input.SampleValue
	}
	if input.Region != nil {
		if *input.Region == "" {
			a.Region = nil
		} else {
			a.Region = input.Region
		}
	}
	if input.SourcePath != nil {
		a.SourcePath = *input.SourcePath
	}
	if input.Metadata != nil {
		a.Metadata = *input.Metadata
	}
}

func (s *catalogService) DeleteAttribute(ctx context.Context, id string) error {
	return s.store.Update(func(tx docstore.Tx) error {
		attributes, err := s.attributeRepo.All(tx)
		if err != nil {
			return err
		}
		kept := attributes[:0]
		found := false
		for _, a := range attributes {
			if a.ID == id {
				found = true
				continue
			}
			kept = append(kept, a)
		}
		if !found {
			return apperrors.ErrNotFound
		}
		return s.attributeRepo.Replace(tx, kept)
	})
}
