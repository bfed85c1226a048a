package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/farmlog/farm-records/internal/core/domain"
	"github.com/farmlog/farm-records/internal/core/ports"
)

type FarmService struct {
	repo   ports.FarmRepository
	crops  ports.CropRecordRepository
	logger zerolog.Logger
}

func NewFarmService(repo ports.FarmRepository, crops ports.CropRecordRepository, logger zerolog.Logger) *FarmService {
	return &FarmService{repo: repo, crops: crops, logger: logger}
}

// Create stores a new farm owned by ownerID.
func (s *FarmService) Create(ctx context.Context, ownerID int64, input ports.FarmInput) (*domain.Farm, error) {
	now := time.Now().UTC()
	farm := &domain.Farm{
		OwnerID:      ownerID,
		Name:         strings.TrimSpace(input.Name),
		Location:     strings.TrimSpace(input.Location),
		AreaHectares: input.AreaHectares,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, farm); err != nil {
		s.logger.Error().Err(err).Int64("owner_id", ownerID).Msg("failed to create farm")
		return nil, err
	}

	s.logger.Info().Int64("farm_id", farm.ID).Int64("owner_id", ownerID).Msg("farm created")
	return farm, nil
}

func (s *FarmService) Get(ctx context.Context, id int64) (*domain.Farm, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *FarmService) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Farm, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Update replaces the editable fields of a farm. Ownership never changes.
func (s *FarmService) Update(ctx context.Context, id int64, input ports.FarmInput) (*domain.Farm, error) {
	farm, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	farm.Name = strings.TrimSpace(input.Name)
	farm.Location = strings.TrimSpace(input.Location)
	farm.AreaHectares = input.AreaHectares
	farm.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, farm); err != nil {
		return nil, err
	}
	return farm, nil
}

// Delete removes a farm together with its crop records.
func (s *FarmService) Delete(ctx context.Context, id int64) error {
	if err := s.crops.DeleteByFarm(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("farm_id", id).Msg("farm deleted")
	return nil
}

// OwnerOf is the owner lookup for farms.
func (s *FarmService) OwnerOf(ctx context.Context, id int64) (int64, error) {
	farm, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return farm.OwnerID, nil
}
