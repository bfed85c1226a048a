package domain

import "time"

// CropRecord is a planting entry kept for a farm. Its owner is the owner of
// the farm it belongs to.
type CropRecord struct {
	ID        int64      `json:"id" bson:"_id"`
	FarmID    int64      `json:"farm_id" bson:"farm_id"`
	Crop      string     `json:"crop" bson:"crop"`
	Variety   string     `json:"variety,omitempty" bson:"variety,omitempty"`
	PlantedAt time.Time  `json:"planted_at" bson:"planted_at"`
	HarvestAt *time.Time `json:"harvest_at,omitempty" bson:"harvest_at,omitempty"`
	Notes     string     `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
}
