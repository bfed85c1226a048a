package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmlog/farm-records/internal/core/ports"
)

// MemberHandler serves member self-service and the admin member listing.
type MemberHandler struct {
	service ports.MemberService
}

func NewMemberHandler(service ports.MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

// Get handles GET /v1/members/:memberId.
//
// @Summary      Get a member profile
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        memberId  path      int  true  "Member id"
// @Success      200       {object}  memberResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/members/{memberId} [get]
func (h *MemberHandler) Get(c echo.Context) error {
	id, err := pathID(c, "memberId")
	if err != nil {
		return err
	}

	account, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMemberResponse(account))
}

// ChangePassword handles PUT /v1/members/:memberId/password.
//
// @Summary      Change own password
// @Tags         members
// @Accept       json
// @Security     BearerAuth
// @Param        memberId  path  int                    true  "Member id"
// @Param        body      body  changePasswordRequest  true  "Current and new password"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/members/{memberId}/password [put]
func (h *MemberHandler) ChangePassword(c echo.Context) error {
	id, err := pathID(c, "memberId")
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.ChangePassword(c.Request().Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/members/:memberId (soft delete).
//
// @Summary      Delete own account
// @Tags         members
// @Security     BearerAuth
// @Param        memberId  path  int  true  "Member id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/members/{memberId} [delete]
func (h *MemberHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "memberId")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/admin/members.
//
// @Summary      List all members
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listMembersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/members [get]
func (h *MemberHandler) List(c echo.Context) error {
	accounts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	resp := listMembersResponse{Members: make([]memberResponse, 0, len(accounts))}
	for _, a := range accounts {
		resp.Members = append(resp.Members, toMemberResponse(a))
	}
	resp.Count = len(resp.Members)
	return c.JSON(http.StatusOK, resp)
}
