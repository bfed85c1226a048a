package ports

import (
	"context"

	"github.com/farmlog/farm-records/internal/core/domain"
)

// FarmRepository defines persistence operations for farms.
type FarmRepository interface {
	Create(ctx context.Context, farm *domain.Farm) error
	FindByID(ctx context.Context, id int64) (*domain.Farm, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Farm, error)
	Update(ctx context.Context, farm *domain.Farm) error
	Delete(ctx context.Context, id int64) error
}

// CropRecordRepository defines persistence operations for crop records.
type CropRecordRepository interface {
	Create(ctx context.Context, record *domain.CropRecord) error
	FindByID(ctx context.Context, id int64) (*domain.CropRecord, error)
	ListByFarm(ctx context.Context, farmID int64) ([]*domain.CropRecord, error)
	Delete(ctx context.Context, id int64) error
	DeleteByFarm(ctx context.Context, farmID int64) error
}

// AuditRepository persists authorization audit events.
type AuditRepository interface {
	InsertAccessDenied(ctx context.Context, event *domain.AccessDeniedEvent) error
}
