package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmlog/farm-records/internal/core/ports"
)

// FarmHandler handles HTTP requests for farms. Ownership of the farm named
// in the path is enforced by the route's guards before any method runs.
type FarmHandler struct {
	service ports.FarmService
}

func NewFarmHandler(service ports.FarmService) *FarmHandler {
	return &FarmHandler{service: service}
}

// Create handles POST /v1/farms. The owner is always the caller.
//
// @Summary      Create a farm
// @Tags         farms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      farmRequest  true  "Farm details"
// @Success      201   {object}  farmResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/farms [post]
func (h *FarmHandler) Create(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req farmRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	farm, err := h.service.Create(c.Request().Context(), p.ID, toFarmInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toFarmResponse(farm))
}

// List handles GET /v1/farms and returns the caller's farms.
//
// @Summary      List own farms
// @Tags         farms
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listFarmsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/farms [get]
func (h *FarmHandler) List(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	farms, err := h.service.ListByOwner(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}
	resp := listFarmsResponse{Farms: make([]farmResponse, 0, len(farms))}
	for _, f := range farms {
		resp.Farms = append(resp.Farms, toFarmResponse(f))
	}
	resp.Count = len(resp.Farms)
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /v1/farms/:farmId.
//
// @Summary      Get a farm
// @Tags         farms
// @Produce      json
// @Security     BearerAuth
// @Param        farmId  path      int  true  "Farm id"
// @Success      200     {object}  farmResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/farms/{farmId} [get]
func (h *FarmHandler) Get(c echo.Context) error {
	id, err := pathID(c, "farmId")
	if err != nil {
		return err
	}

	farm, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFarmResponse(farm))
}

// Update handles PUT /v1/farms/:farmId.
//
// @Summary      Update a farm
// @Tags         farms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        farmId  path      int          true  "Farm id"
// @Param        body    body      farmRequest  true  "Farm details"
// @Success      200     {object}  farmResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/farms/{farmId} [put]
func (h *FarmHandler) Update(c echo.Context) error {
	id, err := pathID(c, "farmId")
	if err != nil {
		return err
	}
	var req farmRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	farm, err := h.service.Update(c.Request().Context(), id, toFarmInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFarmResponse(farm))
}

// Delete handles DELETE /v1/farms/:farmId together with its crop records.
//
// @Summary      Delete a farm
// @Tags         farms
// @Security     BearerAuth
// @Param        farmId  path  int  true  "Farm id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/farms/{farmId} [delete]
func (h *FarmHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "farmId")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
