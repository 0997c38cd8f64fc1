package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/veridata-labs/catalog-engine/pkg/apperrors"
	"github.com/veridata-labs/catalog-engine/pkg/docstore"
	"github.com/veridata-labs/catalog-engine/pkg/models"
	"github.com/veridata-labs/catalog-engine/pkg/repositories"
)

// SyncResult reports what a seed initialization or sync run added, and
// which seed entries were skipped because they were already present.
type SyncResult struct {
	FurnishersAdded int           `json:"furnishersAdded"`
	DataTypesAdded  int           `json:"dataTypesAdded"`
	AttributesAdded int           `json:"attributesAdded"`
	Skipped         []SkippedItem `json:"skipped,omitempty"`
}

// SeedService populates the hierarchy collections from the seed
// document on first use and additively merges newly added seed entries
// on demand. Both operations are idempotent: entries whose id already
// exists are skipped wholesale, never field-merged.
type SeedService interface {
	// Initialize materializes the seed on a store that has never held
	// furnishers. On an already-materialized store it is a no-op.
	Initialize(ctx context.Context) (*SyncResult, error)

	// Sync walks the seed document and appends entries with genuinely new
	// ids. The secret must match the configured sync secret.
	Sync(ctx context.Context, secret string) (*SyncResult, error)
}

type seedService struct {
	store         docstore.Store
	furnisherRepo repositories.FurnisherRepository
	dataTypeRepo  repositories.DataTypeRepository
	attributeRepo repositories.AttributeRepository
	seedPath      string
	syncSecret    string
	logger        *zap.Logger
}

// NewSeedService creates a new SeedService reading the seed document
// from seedPath (YAML or JSON).
func NewSeedService(
	store docstore.Store,
	furnisherRepo repositories.FurnisherRepository,
	dataTypeRepo repositories.DataTypeRepository,
	attributeRepo repositories.AttributeRepository,
	seedPath string,
	syncSecret string,
	logger *zap.Logger,
) SeedService {
	return &seedService{
		store:         store,
		furnisherRepo: furnisherRepo,
		dataTypeRepo:  dataTypeRepo,
		attributeRepo: attributeRepo,
		seedPath:      seedPath,
		syncSecret:    syncSecret,
		logger:        logger,
	}
}

var _ SeedService = (*seedService)(nil)

// SeedAttributeID derives the deterministic id of a seeded attribute
// from its owning data type id and its name, so re-applying the seed is
// stable.
func SeedAttributeID(dataTypeID, attributeName string) string {
	return fmt.Sprintf("%s-%s", dataTypeID, Slugify(attributeName))
}

func (s *seedService) loadSeed() (*models.SeedDocument, error) {
	data, err := os.ReadFile(s.seedPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("seed document %s: %w", s.seedPath, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read seed document %s: %w", s.seedPath, err)
	}
	var doc models.SeedDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed seed document %s: %w", s.seedPath, err)
	}
	return &doc, nil
}

func (s *seedService) Initialize(ctx context.Context) (*SyncResult, error) {
	materialized, err := s.store.Materialized(repositories.FurnisherCollection)
	if err != nil {
		return nil, err
	}
	if materialized {
		return &SyncResult{}, nil
	}

	seed, err := s.loadSeed()
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// No seed document: collections initialize empty on first load.
			s.logger.Info("no seed document, starting with empty catalogue",
				zap.String("seed_path", s.seedPath))
			return &SyncResult{}, nil
		}
		return nil, err
	}

	result, err := s.merge(seed)
	if err != nil {
		return nil, err
	}
	s.logger.Info("catalogue initialized from seed",
		zap.Int("furnishers", result.FurnishersAdded),
		zap.Int("data_types", result.DataTypesAdded),
		zap.Int("attributes", result.AttributesAdded))
	return result, nil
}

func (s *seedService) Sync(ctx context.Context, secret string) (*SyncResult, error) {
	// Without a configured secret the endpoint stays closed; an empty
	// secret must never mean "no secret required".
	if s.syncSecret == "" {
		return nil, fmt.Errorf("seed sync disabled, no sync secret configured: %w", apperrors.ErrUnauthorized)
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.syncSecret)) != 1 {
		return nil, fmt.Errorf("invalid sync secret: %w", apperrors.ErrUnauthorized)
	}

	seed, err := s.loadSeed()
	if err != nil {
		return nil, err
	}

	result, err := s.merge(seed)
	if err != nil {
		return nil, err
	}
	s.logger.Info("seed sync completed",
		zap.Int("furnishers_added", result.FurnishersAdded),
		zap.Int("data_types_added", result.DataTypesAdded),
		zap.Int("attributes_added", result.AttributesAdded),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

// merge walks the seed document inside a single store transaction:
// ids already present are skipped entirely, new ids are appended with
// fresh timestamps. Nothing is written unless the whole walk succeeds.
func (s *seedService) merge(seed *models.SeedDocument) (*SyncResult, error) {
	result := &SyncResult{}
	err := s.store.Update(func(tx docstore.Tx) error {
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

		haveFurnisher := make(map[string]bool, len(furnishers))
		for _, f := range furnishers {
			haveFurnisher[f.ID] = true
		}
		haveDataType := make(map[string]bool, len(dataTypes))
		for _, dt := range dataTypes {
			haveDataType[dt.ID] = true
		}
		haveAttribute := make(map[string]bool, len(attributes))
		for _, a := range attributes {
			haveAttribute[a.ID] = true
		}

		now := time.Now().UTC()
		for _, sf := range seed.Furnishers {
			if haveFurnisher[sf.ID] {
				result.Skipped = append(result.Skipped, SkippedItem{
					Kind: "furnisher", ID: sf.ID, Reason: "already present",
				})
			} else {
				regions := sf.Regions
				if regions == nil {
					regions = []string{}
				}
				furnishers = append(furnishers, &models.Furnisher{
					ID:           sf.ID,
					Name:         sf.Name,
					Description:  sf.Description,
					ContactName:  sf.ContactName,
					ContactEmail: sf.ContactEmail,
					ContactPhone: sf.ContactPhone,
					Website:      sf.Website,
					Regions:      regions,
					CreatedBy:    "seed",
					CreatedAt:    now,
					UpdatedAt:    now,
				})
				haveFurnisher[sf.ID] = true
				result.FurnishersAdded++
			}

			for _, sdt := range sf.DataTypes {
				if haveDataType[sdt.ID] {
					result.Skipped = append(result.Skipped, SkippedItem{
						Kind: "dataType", ID: sdt.ID, Reason: "already present",
					})
				} else {
					dataTypes = append(dataTypes, &models.DataType{
						ID:          sdt.ID,
						FurnisherID: sf.ID,
						Name:        sdt.Name,
						Description: sdt.Description,
						ConfigID:    sdt.ConfigID,
						CreatedAt:   now,
						UpdatedAt:   now,
					})
					haveDataType[sdt.ID] = true
					result.DataTypesAdded++
				}

				for _, sa := range sdt.Attributes {
					id := SeedAttributeID(sdt.ID, sa.Name)
					if haveAttribute[id] {
						result.Skipped = append(result.Skipped, SkippedItem{
							Kind: "attribute", ID: id, Reason: "already present",
						})
						continue
					}
					attributes = append(attributes, &models.Attribute{
						ID:          id,
						DataTypeID:  sdt.ID,
						Name:        sa.Name,
						DisplayName: sa.DisplayName,
						Description: sa.Description,
						ValueType:   sa.ValueType,
						SampleValue: sa.SampleValue,
						Region:      sa.Region,
						SourcePath:  sa.SourcePath,
						Metadata:    sa.Metadata,
						CreatedAt:   now,
						UpdatedAt:   now,
					})
					haveAttribute[id] = true
					result.AttributesAdded++
				}
			}
		}

		if err := s.furnisherRepo.Replace(tx, furnishers); err != nil {
			return err
		}
		if err := s.dataTypeRepo.Replace(tx, dataTypes); err != nil {
			return err
		}
		return s.attributeRepo.Replace(tx, attributes)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
