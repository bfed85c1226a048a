package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/farmlog/farm-records/internal/core/domain"
)

type CropRecordRepository struct {
	col *mongo.Collection
	ids sequence
}

func NewCropRecordRepository(db *mongo.Database) *CropRecordRepository {
	return &CropRecordRepository{
		col: db.Collection(collectionCropRecords),
		ids: newSequence(db, collectionCropRecords),
	}
}

func (r *CropRecordRepository) Create(ctx context.Context, c *domain.CropRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return err
	}
	c.ID = id

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert crop record: %w", err)
	}
	return nil
}

func (r *CropRecordRepository) FindByID(ctx context.Context, id int64) (*domain.CropRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.CropRecord
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCropRecordNotFound
		}
		return nil, fmt.Errorf("find crop record: %w", err)
	}
	return &c, nil
}

// ListByFarm returns the crop records of a farm, oldest planting first.
func (r *CropRecordRepository) ListByFarm(ctx context.Context, farmID int64) ([]*domain.CropRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "planted_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"farm_id": farmID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list crop records: %w", err)
	}
	var records []*domain.CropRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode crop records: %w", err)
	}
	return records, nil
}

func (r *CropRecordRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete crop record: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCropRecordNotFound
	}
	return nil
}

func (r *CropRecordRepository) DeleteByFarm(ctx context.Context, farmID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"farm_id": farmID}); err != nil {
		return fmt.Errorf("delete crop records of farm %d: %w", farmID, err)
	}
	return nil
}
