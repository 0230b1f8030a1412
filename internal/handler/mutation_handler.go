package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-roomgrid/internal/dto"
	"github.com/noah-isme/campus-roomgrid/internal/models"
	appErrors "github.com/noah-isme/campus-roomgrid/pkg/errors"
	"github.com/noah-isme/campus-roomgrid/pkg/response"
)

type gridMutationService interface {
	Assign(ctx context.Context, req dto.AssignRequest) (*models.Assignment, error)
	Move(ctx context.Context, req dto.MoveRequest) (*models.Assignment, error)
	Swap(ctx context.Context, req dto.SwapRequest) error
	Unassign(ctx context.Context, req dto.UnassignRequest) error
}

// MutationHandler exposes one-shot grid mutations for clients that do
// not drive the drag-gesture API.
type MutationHandler struct {
	service gridMutationService
}

// NewMutationHandler builds a new handler.
func NewMutationHandler(service gridMutationService) *MutationHandler {
	return &MutationHandler{service: service}
}

// Assign godoc
// @Summary Place an unassigned class into an empty cell
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.AssignRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /grid/assign [post]
func (h *MutationHandler) Assign(c *gin.Context) {
	var req dto.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assign payload"))
		return
	}
	assignment, err := h.service.Assign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// Move godoc
// @Summary Move a scheduled assignment to another empty cell
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.MoveRequest true "Move payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope "target occupied, swap confirmation required"
// @Router /grid/move [post]
func (h *MutationHandler) Move(c *gin.Context) {
	var req dto.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid move payload"))
		return
	}
	assignment, err := h.service.Move(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignment, nil)
}

// Swap godoc
// @Summary Exchange the assignments of two occupied cells
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.SwapRequest true "Swap payload"
// @Success 204 "swapped"
// @Router /grid/swap [post]
func (h *MutationHandler) Swap(c *gin.Context) {
	var req dto.SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid swap payload"))
		return
	}
	if err := h.service.Swap(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Unassign godoc
// @Summary Detach the assignment of a cell back to the pool
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.UnassignRequest true "Unassign payload"
// @Success 204 "unassigned"
// @Router /grid/unassign [post]
func (h *MutationHandler) Unassign(c *gin.Context) {
	var req dto.UnassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid unassign payload"))
		return
	}
	if err := h.service.Unassign(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
