package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/farmlog/farm-records/internal/core/domain"
	"github.com/farmlog/farm-records/internal/core/ports"
)

type CropRecordService struct {
	repo   ports.CropRecordRepository
	farms  ports.FarmRepository
	logger zerolog.Logger
}

func NewCropRecordService(repo ports.CropRecordRepository, farms ports.FarmRepository, logger zerolog.Logger) *CropRecordService {
	return &CropRecordService{repo: repo, farms: farms, logger: logger}
}

func (s *CropRecordService) Create(ctx context.Context, farmID int64, input ports.CropRecordInput) (*domain.CropRecord, error) {
	if _, err := s.farms.FindByID(ctx, farmID); err != nil {
		return nil, err
	}

	record := &domain.CropRecord{
		FarmID:    farmID,
		Crop:      strings.TrimSpace(input.Crop),
		Variety:   strings.TrimSpace(input.Variety),
		PlantedAt: input.PlantedAt.UTC(),
		HarvestAt: input.HarvestAt,
		Notes:     input.Notes,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.Error().Err(err).Int64("farm_id", farmID).Msg("failed to create crop record")
		return nil, err
	}

	s.logger.Info().Int64("crop_id", record.ID).Int64("farm_id", farmID).Msg("crop record created")
	return record, nil
}

func (s *CropRecordService) Get(ctx context.Context, id int64) (*domain.CropRecord, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CropRecordService) ListByFarm(ctx context.Context, farmID int64) ([]*domain.CropRecord, error) {
	return s.repo.ListByFarm(ctx, farmID)
}

func (s *CropRecordService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// OwnerOf resolves a crop record to the owner of its farm. A record whose
// farm has disappeared is reported as a missing crop record.
func (s *CropRecordService) OwnerOf(ctx context.Context, id int64) (int64, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	farm, err := s.farms.FindByID(ctx, record.FarmID)
	if err != nil {
		return 0, fmt.Errorf("crop record %d: %w", id, domain.ErrCropRecordNotFound)
	}
	return farm.OwnerID, nil
}
