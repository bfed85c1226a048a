package domain

import "time"

// Farm is a piece of land owned by exactly one member.
type Farm struct {
	ID           int64     `json:"id" bson:"_id"`
	OwnerID      int64     `json:"owner_id" bson:"owner_id"`
	Name         string    `json:"name" bson:"name"`
	Location     string    `json:"location" bson:"location"`
	AreaHectares float64   `json:"area_hectares" bson:"area_hectares"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
