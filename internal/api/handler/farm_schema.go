package handler

import (
	"strconv"
	"time"

	"github.com/farmlog/farm-records/internal/core/domain"
	"github.com/farmlog/farm-records/internal/core/ports"
)

// --- Request / Response types ---

type farmRequest struct {
	Name         string  `json:"name"          validate:"required,max=120"`
	Location     string  `json:"location"      validate:"max=200"`
	AreaHectares float64 `json:"area_hectares" validate:"gte=0"`
}

type farmLinks struct {
	Self  string `json:"self"`
	Crops string `json:"crops"`
}

type farmResponse struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"owner_id"`
	Name         string    `json:"name"`
	Location     string    `json:"location,omitempty"`
	AreaHectares float64   `json:"area_hectares"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Links        farmLinks `json:"_links"`
}

type listFarmsResponse struct {
	Farms []farmResponse `json:"farms"`
	Count int            `json:"count"`
}

type cropRecordRequest struct {
	Crop      string     `json:"crop"       validate:"required,max=80"`
	Variety   string     `json:"variety"    validate:"max=80"`
	PlantedAt time.Time  `json:"planted_at" validate:"required"`
	HarvestAt *time.Time `json:"harvest_at"`
	Notes     string     `json:"notes"      validate:"max=1000"`
}

type cropRecordLinks struct {
	Self string `json:"self"`
	Farm string `json:"farm"`
}

type cropRecordResponse struct {
	ID        int64           `json:"id"`
	FarmID    int64           `json:"farm_id"`
	Crop      string          `json:"crop"`
	Variety   string          `json:"variety,omitempty"`
	PlantedAt time.Time       `json:"planted_at"`
	HarvestAt *time.Time      `json:"harvest_at,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Links     cropRecordLinks `json:"_links"`
}

type listCropRecordsResponse struct {
	CropRecords []cropRecordResponse `json:"crop_records"`
	Count       int                  `json:"count"`
}

// --- Request → Service input ---

func toFarmInput(req farmRequest) ports.FarmInput {
	return ports.FarmInput{
		Name:         req.Name,
		Location:     req.Location,
		AreaHectares: req.AreaHectares,
	}
}

func toCropRecordInput(req cropRecordRequest) ports.CropRecordInput {
	return ports.CropRecordInput{
		Crop:      req.Crop,
		Variety:   req.Variety,
		PlantedAt: req.PlantedAt,
		HarvestAt: req.HarvestAt,
		Notes:     req.Notes,
	}
}

// --- Service result → HTTP response ---

func farmPath(id int64) string {
	return "/v1/farms/" + strconv.FormatInt(id, 10)
}

func toFarmResponse(f *domain.Farm) farmResponse {
	self := farmPath(f.ID)
	return farmResponse{
		ID:           f.ID,
		OwnerID:      f.OwnerID,
		Name:         f.Name,
		Location:     f.Location,
		AreaHectares: f.AreaHectares,
		CreatedAt:    f.CreatedAt.UTC(),
		UpdatedAt:    f.UpdatedAt.UTC(),
		Links:        farmLinks{Self: self, Crops: self + "/crops"},
	}
}

func toCropRecordResponse(r *domain.CropRecord) cropRecordResponse {
	return cropRecordResponse{
		ID:        r.ID,
		FarmID:    r.FarmID,
		Crop:      r.Crop,
		Variety:   r.Variety,
		PlantedAt: r.PlantedAt.UTC(),
		HarvestAt: r.HarvestAt,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt.UTC(),
		Links: cropRecordLinks{
			Self: "/v1/crops/" + strconv.FormatInt(r.ID, 10),
			Farm: farmPath(r.FarmID),
		},
	}
}
