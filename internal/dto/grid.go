package dto

import (
	"github.com/noah-isme/campus-roomgrid/internal/models"
	"github.com/noah-isme/campus-roomgrid/internal/rules"
)

// AssignRequest places an unassigned class into an empty cell.
type AssignRequest struct {
	Day     string `json:"day" validate:"required"`
	Shift   string `json:"shift" validate:"required"`
	RoomID  string `json:"roomId" validate:"required"`
	ClassID string `json:"classId" validate:"required"`
}

// Cell identifies a grid cell in request payloads.
type Cell struct {
	Day    string `json:"day" validate:"required"`
	Shift  string `json:"shift" validate:"required"`
	RoomID string `json:"roomId" validate:"required"`
}

// Model converts the payload cell into the domain cell.
func (c Cell) Model() models.Cell {
	return models.Cell{Day: c.Day, Shift: c.Shift, RoomID: c.RoomID}
}

// MoveRequest relocates a scheduled assignment to another cell.
type MoveRequest struct {
	Source Cell `json:"source" validate:"required"`
	Target Cell `json:"target" validate:"required"`
}

// SwapRequest exchanges the assignments of two occupied cells.
type SwapRequest struct {
	CellA Cell `json:"cellA" validate:"required"`
	CellB Cell `json:"cellB" validate:"required"`
}

// UnassignRequest detaches the assignment of one cell.
type UnassignRequest struct {
	Cell Cell `json:"cell" validate:"required"`
}

// PickUpNewRequest starts a drag gesture from the unassigned pool.
type PickUpNewRequest struct {
	Day     string `json:"day" validate:"required"`
	ClassID string `json:"classId" validate:"required"`
}

// PickUpScheduledRequest starts a drag gesture from an occupied cell.
type PickUpScheduledRequest struct {
	Cell Cell `json:"cell" validate:"required"`
}

// GestureRef names an open drag gesture.
type GestureRef struct {
	GestureID string `json:"gestureId"`
}

// HoverRequest previews the legality of dropping on a cell.
type HoverRequest struct {
	Cell Cell `json:"cell" validate:"required"`
}

// Hover visual states surfaced while dragging.
const (
	HoverNeutral      = "neutral"
	HoverWarning      = "warning"
	HoverSwapEligible = "swap_eligible"
	HoverBusy         = "busy"
)

// HoverView is the advisory verdict for the hovered cell. It never
// mutates the grid.
type HoverView struct {
	State    string             `json:"state"`
	Reason   rules.Reason       `json:"reason,omitempty"`
	Occupant *models.Assignment `json:"occupant,omitempty"`
}

// Drop outcomes.
const (
	DropCommitted   = "committed"
	DropRejected    = "rejected"
	DropSwapPending = "swap_pending"
	DropNoop        = "noop"
)

// SwapPrompt summarises both sides of a proposed swap for the
// confirmation step.
type SwapPrompt struct {
	Source     models.Cell       `json:"source"`
	Target     models.Cell       `json:"target"`
	Moving     models.Assignment `json:"moving"`
	Displacing models.Assignment `json:"displacing"`
}

// DropResult resolves a drop gesture. Assignment is set when a mutation
// committed; Swap is set when the drop needs explicit confirmation.
type DropResult struct {
	Status     string             `json:"status"`
	Reason     rules.Reason       `json:"reason,omitempty"`
	Assignment *models.Assignment `json:"assignment,omitempty"`
	Swap       *SwapPrompt        `json:"swap,omitempty"`
}

// RoomCellView is one room of a grid slice with its occupancy.
type RoomCellView struct {
	Room       models.Room        `json:"room"`
	Assignment *models.Assignment `json:"assignment,omitempty"`
	Pending    bool               `json:"pending"`
}

// FloorView groups the room cells of one floor.
type FloorView struct {
	Floor int            `json:"floor"`
	Rooms []RoomCellView `json:"rooms"`
}

// GridView is the (day, shift, building) slice rendered for editing.
type GridView struct {
	Selection models.SelectionContext `json:"selection"`
	Floors    []FloorView             `json:"floors"`
}
