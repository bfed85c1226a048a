package ports

import (
	"context"
	"time"

	"github.com/farmlog/farm-records/internal/core/domain"
)

// FarmInput carries the editable fields of a farm. The owner is never part
// of the input; it always comes from the authenticated principal.
type FarmInput struct {
	Name         string
	Location     string
	AreaHectares float64
}

// FarmService defines use-case operations for farms.
type FarmService interface {
	Create(ctx context.Context, ownerID int64, input FarmInput) (*domain.Farm, error)
	Get(ctx context.Context, id int64) (*domain.Farm, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Farm, error)
	Update(ctx context.Context, id int64, input FarmInput) (*domain.Farm, error)
	Delete(ctx context.Context, id int64) error
	OwnerOf(ctx context.Context, id int64) (int64, error)
}

// CropRecordInput carries the fields of a new crop record.
type CropRecordInput struct {
	Crop      string
	Variety   string
	PlantedAt time.Time
	HarvestAt *time.Time
	Notes     string
}

// CropRecordService defines use-case operations for crop records.
type CropRecordService interface {
	Create(ctx context.Context, farmID int64, input CropRecordInput) (*domain.CropRecord, error)
	Get(ctx context.Context, id int64) (*domain.CropRecord, error)
	ListByFarm(ctx context.Context, farmID int64) ([]*domain.CropRecord, error)
	Delete(ctx context.Context, id int64) error
	OwnerOf(ctx context.Context, id int64) (int64, error)
}

// MemberService defines self-service and admin operations on accounts.
type MemberService interface {
	Get(ctx context.Context, id int64) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	ChangePassword(ctx context.Context, id int64, current, next string) error
	Delete(ctx context.Context, id int64) error
	OwnerOf(ctx context.Context, id int64) (int64, error)
}
