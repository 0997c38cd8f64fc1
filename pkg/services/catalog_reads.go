package services

import (
	"context"
	"time"

	"github.com/veridata-labs/catalog-engine/pkg/apperrors"
	"github.com/veridata-labs/catalog-engine/pkg/docstore"
	"github.com/veridata-labs/catalog-engine/pkg/models"
)

func (s *catalogService) ListFurnishers(ctx context.Context) ([]*models.FurnisherWithStats, error) {
	var result []*models.FurnisherWithStats
	err := s.store.View(func(tx docstore.Tx) error {
		furnishers, err := s.furnisherRepo.All(tx)
		if err != nil {
			return err
		}
		dataTypes, err := s.dataTypeRepo.All(tx)
		if err != nil {
			return err
		}
		attributes, err := s.attributeRepo.All(tx)
		if err != nil {
			return err
		}

		dataTypeOwner := make(map[string]string, len(dataTypes))
		dataTypeCounts := make(map[string]int)
		for _, dt := range dataTypes {
			dataTypeOwner[dt.ID] = dt.FurnisherID
			dataTypeCounts[dt.FurnisherID]++
		}
		attributeCounts := make(map[string]int)
		for _, a := range attributes {
			if owner, ok := dataTypeOwner[a.DataTypeID]; ok {
				attributeCounts[owner]++
			}
		}

		result = make([]*models.FurnisherWithStats, 0, len(furnishers))
		for _, f := range furnishers {
			result = append(result, &models.FurnisherWithStats{
				Furnisher:      *f,
				DataTypeCount:  dataTypeCounts[f.ID],
				AttributeCount: attributeCounts[f.ID],
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *catalogService) GetFurnisher(ctx context.Context, id string) (*models.FurnisherDetail, error) {
	var detail *models.FurnisherDetail
	err := s.store.View(func(tx docstore.Tx) error {
		furnisher, err := s.furnisherRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if furnisher == nil {
			return apperrors.ErrNotFound
		}

		dataTypes, err := s.dataTypeRepo.ByFurnisher(tx, id)
		if err != nil {
			return err
		}
		attributes, err := s.attributeRepo.All(tx)
		if err != nil {
			return err
		}
		byDataType := make(map[string][]*models.Attribute)
		for _, a := range attributes {
			byDataType[a.DataTypeID] = append(byDataType[a.DataTypeID], a)
		}

		detail = &models.FurnisherDetail{
			Furnisher: *furnisher,
			DataTypes: make([]*models.DataTypeDetail, 0, len(dataTypes)),
		}
		for _, dt := range dataTypes {
			attrs := byDataType[dt.ID]
			if attrs == nil {
				attrs = []*models.Attribute{}
			}
			detail.DataTypes = append(detail.DataTypes, &models.DataTypeDetail{
				DataType:   *dt,
				Attributes: attrs,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *catalogService) ListDataTypes(ctx context.Context, furnisherID string) ([]*models.DataType, error) {
	var result []*models.DataType
	err := s.store.View(func(tx docstore.Tx) error {
		var err error
		if furnisherID == "" {
			result, err = s.dataTypeRepo.All(tx)
		} else {
			result, err = s.dataTypeRepo.ByFurnisher(tx, furnisherID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *catalogService) GetDataType(ctx context.Context, id string) (*models.DataTypeDetail, error) {
	var detail *models.DataTypeDetail
	err := s.store.View(func(tx docstore.Tx) error {
		dataType, err := s.dataTypeRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if dataType == nil {
			return apperrors.ErrNotFound
		}
		attributes, err := s.attributeRepo.ByDataType(tx, id)
		if err != nil {
			return err
		}
		detail = &models.DataTypeDetail{DataType: *dataType, Attributes: attributes}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *catalogService) GetAttribute(ctx context.Context, id string) (*models.Attribute, error) {
	var attribute *models.Attribute
	err := s.store.View(func(tx docstore.Tx) error {
		found, err := s.attributeRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if found == nil {
			return apperrors.ErrNotFound
		}
		attribute = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return attribute, nil
}

func (s *catalogService) Export(ctx context.Context) (*models.ExportDocument, error) {
	doc := &models.ExportDocument{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Furnishers: []*models.FurnisherDetail{},
	}
	err := s.store.View(func(tx docstore.Tx) error {
		furnishers, err := s.furnisherRepo.All(tx)
		if err != nil {
			return err
		}
		dataTypes, err := s.dataTypeRepo.All(tx)
		if err != nil {
			return err
		}
		attributes, err := s.attributeRepo.All(tx)
		if err != nil {
			return err
		}

		attrsByDataType := make(map[string][]*models.Attribute)
		for _, a := range attributes {
			attrsByDataType[a.DataTypeID] = append(attrsByDataType[a.DataTypeID], a)
		}
		dataTypesByFurnisher := make(map[string][]*models.DataTypeDetail)
		for _, dt := range dataTypes {
			attrs := attrsByDataType[dt.ID]
			if attrs == nil {
				attrs = []*models.Attribute{}
			}
			dataTypesByFurnisher[dt.FurnisherID] = append(dataTypesByFurnisher[dt.FurnisherID], &models.DataTypeDetail{
				DataType:   *dt,
				Attributes: attrs,
			})
		}

		for _, f := range furnishers {
			nested := dataTypesByFurnisher[f.ID]
			if nested == nil {
				nested = []*models.DataTypeDetail{}
			}
			doc.Furnishers = append(doc.Furnishers, &models.FurnisherDetail{
				Furnisher: *f,
				DataTypes: nested,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}
