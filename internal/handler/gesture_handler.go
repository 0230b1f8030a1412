package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-roomgrid/internal/dto"
	appErrors "github.com/noah-isme/campus-roomgrid/pkg/errors"
	"github.com/noah-isme/campus-roomgrid/pkg/response"
)

type gestureService interface {
	PickUpNew(req dto.PickUpNewRequest) (*dto.GestureRef, error)
	PickUpScheduled(req dto.PickUpScheduledRequest) (*dto.GestureRef, error)
	Hover(gestureID string, req dto.HoverRequest) (*dto.HoverView, error)
	Drop(ctx context.Context, gestureID string, req dto.HoverRequest) (*dto.DropResult, error)
	ConfirmSwap(ctx context.Context, gestureID string) (*dto.DropResult, error)
	DropOutside(ctx context.Context, gestureID string) (*dto.DropResult, error)
	Cancel(gestureID string) error
}

// GestureHandler drives the drag-and-drop lifecycle over REST: pick up,
// hover, drop, confirm and cancel. Every gesture is addressed by the id
// issued at pick-up.
type GestureHandler struct {
	service gestureService
}

// NewGestureHandler builds a new handler.
func NewGestureHandler(service gestureService) *GestureHandler {
	return &GestureHandler{service: service}
}

// PickUpNew godoc
// @Summary Start dragging a class from the unassigned pool
// @Tags Gestures
// @Accept json
// @Produce json
// @Param payload body dto.PickUpNewRequest true "Pick-up payload"
// @Success 201 {object} response.Envelope
// @Router /gestures/pickup/new [post]
func (h *GestureHandler) PickUpNew(c *gin.Context) {
	var req dto.PickUpNewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid pick-up payload"))
		return
	}
	ref, err := h.service.PickUpNew(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ref)
}

// PickUpScheduled godoc
// @Summary Start dragging an assignment out of its cell
// @Tags Gestures
// @Accept json
// @Produce json
// @Param payload body dto.PickUpScheduledRequest true "Pick-up payload"
// @Success 201 {object} response.Envelope
// @Router /gestures/pickup/scheduled [post]
func (h *GestureHandler) PickUpScheduled(c *gin.Context) {
	var req dto.PickUpScheduledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid pick-up payload"))
		return
	}
	ref, err := h.service.PickUpScheduled(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ref)
}

// Hover godoc
// @Summary Preview the legality of dropping the dragged item on a cell
// @Tags Gestures
// @Accept json
// @Produce json
// @Param gestureId path string true "Gesture ID"
// @Param payload body dto.HoverRequest true "Hovered cell"
// @Success 200 {object} response.Envelope
// @Router /gestures/{gestureId}/hover [post]
func (h *GestureHandler) Hover(c *gin.Context) {
	var req dto.HoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid hover payload"))
		return
	}
	view, err := h.service.Hover(c.Param("gestureId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Drop godoc
// @Summary Drop the dragged item on a cell
// @Tags Gestures
// @Accept json
// @Produce json
// @Param gestureId path string true "Gesture ID"
// @Param payload body dto.HoverRequest true "Target cell"
// @Success 200 {object} response.Envelope
// @Router /gestures/{gestureId}/drop [post]
func (h *GestureHandler) Drop(c *gin.Context) {
	var req dto.HoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid drop payload"))
		return
	}
	result, err := h.service.Drop(c.Request.Context(), c.Param("gestureId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ConfirmSwap godoc
// @Summary Confirm the swap proposed by the last drop
// @Tags Gestures
// @Produce json
// @Param gestureId path string true "Gesture ID"
// @Success 200 {object} response.Envelope
// @Router /gestures/{gestureId}/confirm-swap [post]
func (h *GestureHandler) ConfirmSwap(c *gin.Context) {
	result, err := h.service.ConfirmSwap(c.Request.Context(), c.Param("gestureId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// DropOutside godoc
// @Summary Drop the dragged item outside the grid
// @Tags Gestures
// @Produce json
// @Param gestureId path string true "Gesture ID"
// @Success 200 {object} response.Envelope
// @Router /gestures/{gestureId}/drop-outside [post]
func (h *GestureHandler) DropOutside(c *gin.Context) {
	result, err := h.service.DropOutside(c.Request.Context(), c.Param("gestureId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Cancel godoc
// @Summary Abandon an open gesture without touching the grid
// @Tags Gestures
// @Produce json
// @Param gestureId path string true "Gesture ID"
// @Success 204 "cancelled"
// @Router /gestures/{gestureId} [delete]
func (h *GestureHandler) Cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Param("gestureId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
