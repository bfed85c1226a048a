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

type FarmRepository struct {
	col *mongo.Collection
	ids sequence
}

func NewFarmRepository(db *mongo.Database) *FarmRepository {
	return &FarmRepository{
		col: db.Collection(collectionFarms),
		ids: newSequence(db, collectionFarms),
	}
}

// Create assigns the next farm id and inserts the document.
func (r *FarmRepository) Create(ctx context.Context, f *domain.Farm) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return err
	}
	f.ID = id

	if _, err := r.col.InsertOne(ctx, f); err != nil {
		return fmt.Errorf("insert farm: %w", err)
	}
	return nil
}

func (r *FarmRepository) FindByID(ctx context.Context, id int64) (*domain.Farm, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var f domain.Farm
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFarmNotFound
		}
		return nil, fmt.Errorf("find farm: %w", err)
	}
	return &f, nil
}

func (r *FarmRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Farm, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"owner_id": ownerID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list farms: %w", err)
	}
	var farms []*domain.Farm
	if err := cur.All(ctx, &farms); err != nil {
		return nil, fmt.Errorf("decode farms: %w", err)
	}
	return farms, nil
}

// Update rewrites the editable fields. owner_id is never part of the update.
func (r *FarmRepository) Update(ctx context.Context, f *domain.Farm) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": f.ID}, bson.M{"$set": bson.M{
		"name":          f.Name,
		"location":      f.Location,
		"area_hectares": f.AreaHectares,
		"updated_at":    f.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update farm: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrFarmNotFound
	}
	return nil
}

func (r *FarmRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete farm: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFarmNotFound
	}
	return nil
}
