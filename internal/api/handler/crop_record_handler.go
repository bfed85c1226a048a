package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmlog/farm-records/internal/core/ports"
)

// CropRecordHandler handles HTTP requests for crop records.
type CropRecordHandler struct {
	service ports.CropRecordService
}

func NewCropRecordHandler(service ports.CropRecordService) *CropRecordHandler {
	return &CropRecordHandler{service: service}
}

// Create handles POST /v1/farms/:farmId/crops.
//
// @Summary      Add a crop record to a farm
// @Tags         crops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        farmId  path      int                true  "Farm id"
// @Param        body    body      cropRecordRequest  true  "Crop record"
// @Success      201     {object}  cropRecordResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/farms/{farmId}/crops [post]
func (h *CropRecordHandler) Create(c echo.Context) error {
	farmID, err := pathID(c, "farmId")
	if err != nil {
		return err
	}
	var req cropRecordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.HarvestAt != nil && req.HarvestAt.Before(req.PlantedAt) {
		return echo.NewHTTPError(http.StatusBadRequest, "harvest_at must not be before planted_at")
	}

	record, err := h.service.Create(c.Request().Context(), farmID, toCropRecordInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCropRecordResponse(record))
}

// List handles GET /v1/farms/:farmId/crops.
//
// @Summary      List the crop records of a farm
// @Tags         crops
// @Produce      json
// @Security     BearerAuth
// @Param        farmId  path      int  true  "Farm id"
// @Success      200     {object}  listCropRecordsResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/farms/{farmId}/crops [get]
func (h *CropRecordHandler) List(c echo.Context) error {
	farmID, err := pathID(c, "farmId")
	if err != nil {
		return err
	}

	records, err := h.service.ListByFarm(c.Request().Context(), farmID)
	if err != nil {
		return err
	}
	resp := listCropRecordsResponse{CropRecords: make([]cropRecordResponse, 0, len(records))}
	for _, r := range records {
		resp.CropRecords = append(resp.CropRecords, toCropRecordResponse(r))
	}
	resp.Count = len(resp.CropRecords)
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /v1/crops/:cropId.
//
// @Summary      Get a crop record
// @Tags         crops
// @Produce      json
// @Security     BearerAuth
// @Param        cropId  path      int  true  "Crop record id"
// @Success      200     {object}  cropRecordResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/crops/{cropId} [get]
func (h *CropRecordHandler) Get(c echo.Context) error {
	id, err := pathID(c, "cropId")
	if err != nil {
		return err
	}

	record, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCropRecordResponse(record))
}

// Delete handles DELETE /v1/crops/:cropId.
//
// @Summary      Delete a crop record
// @Tags         crops
// @Security     BearerAuth
// @Param        cropId  path  int  true  "Crop record id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/crops/{cropId} [delete]
func (h *CropRecordHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "cropId")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
