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

type gridViewService interface {
	GridView(selection models.SelectionContext) dto.GridView
	UnassignedClasses(filter models.ClassFilter) []models.UnassignedClass
}

type roomDirectory interface {
	ListRoomsByBuildingFloor(buildingName string) []models.FloorRooms
}

type bootstrapLoader interface {
	Load(ctx context.Context) error
}

// GridHandler exposes the read side of the scheduling grid.
type GridHandler struct {
	grids     gridViewService
	rooms     roomDirectory
	bootstrap bootstrapLoader
}

// NewGridHandler builds a new handler.
func NewGridHandler(grids gridViewService, rooms roomDirectory, bootstrap bootstrapLoader) *GridHandler {
	return &GridHandler{grids: grids, rooms: rooms, bootstrap: bootstrap}
}

// View godoc
// @Summary Render the grid slice for a day, shift and building
// @Tags Grid
// @Produce json
// @Param day query string true "Day of week, e.g. MONDAY"
// @Param shift query string true "Shift window, e.g. 07:00-10:00"
// @Param building query string true "Building name"
// @Success 200 {object} response.Envelope
// @Router /grid [get]
func (h *GridHandler) View(c *gin.Context) {
	selection := models.SelectionContext{
		Day:      c.Query("day"),
		Shift:    c.Query("shift"),
		Building: c.Query("building"),
	}
	if selection.Day == "" || selection.Shift == "" || selection.Building == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "day, shift and building are required"))
		return
	}
	response.JSON(c, http.StatusOK, h.grids.GridView(selection), nil)
}

// Rooms godoc
// @Summary List rooms of a building grouped by floor
// @Tags Grid
// @Produce json
// @Param building query string true "Building name"
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *GridHandler) Rooms(c *gin.Context) {
	building := c.Query("building")
	if building == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "building is required"))
		return
	}
	response.JSON(c, http.StatusOK, h.rooms.ListRoomsByBuildingFloor(building), nil)
}

// UnassignedClasses godoc
// @Summary List classes still waiting for a room on a day
// @Tags Grid
// @Produce json
// @Param day query string true "Day of week"
// @Param shift query string false "Selected shift, listed first when matching"
// @Param degree query string false "Degree facet"
// @Param generation query string false "Generation facet"
// @Param q query string false "Free-text search on class and major names"
// @Success 200 {object} response.Envelope
// @Router /classes/unassigned [get]
func (h *GridHandler) UnassignedClasses(c *gin.Context) {
	filter := models.ClassFilter{
		Day:        c.Query("day"),
		Shift:      c.Query("shift"),
		Degree:     c.Query("degree"),
		Generation: c.Query("generation"),
		SearchText: c.Query("q"),
	}
	if filter.Day == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "day is required"))
		return
	}
	response.JSON(c, http.StatusOK, h.grids.UnassignedClasses(filter), nil)
}

// Reload godoc
// @Summary Reload rooms, classes and schedules from the campus backend
// @Tags Grid
// @Produce json
// @Success 204 "reloaded"
// @Router /grid/reload [post]
func (h *GridHandler) Reload(c *gin.Context) {
	if err := h.bootstrap.Load(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
