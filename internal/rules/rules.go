package rules

import (
	"github.com/noah-isme/campus-roomgrid/internal/models"
)

// Decision is the outcome class of a placement check.
type Decision string

const (
	DecisionAllowed      Decision = "allowed"
	DecisionRejected     Decision = "rejected"
	DecisionRequiresSwap Decision = "requires_swap"
)

// Reason names why a placement was rejected. The codes line up with the
// service error taxonomy so handlers can surface them directly.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonRoomUnavailable   Reason = "ROOM_UNAVAILABLE"
	ReasonCellOccupied      Reason = "CELL_OCCUPIED"
	ReasonShiftMismatch     Reason = "SHIFT_MISMATCH"
	ReasonMissingScheduleID Reason = "MISSING_SCHEDULE_ID"
	ReasonSameCell          Reason = "SAME_CELL"
	ReasonDayMismatch       Reason = "DAY_MISMATCH"
	// ReasonSourceEmpty is defensive: a move or unassign against a cell
	// that holds nothing.
	ReasonSourceEmpty Reason = "SOURCE_EMPTY"
)

// Verdict is the full result of a rule check. Occupant carries the
// incumbent assignment when the decision is RequiresSwap so callers can
// build the confirmation summary without re-reading the grid.
type Verdict struct {
	Decision Decision          `json:"decision"`
	Reason   Reason            `json:"reason,omitempty"`
	Occupant models.Assignment `json:"occupant,omitempty"`
}

func allowed() Verdict {
	return Verdict{Decision: DecisionAllowed}
}

func rejected(reason Reason) Verdict {
	return Verdict{Decision: DecisionRejected, Reason: reason}
}

// roomReader resolves rooms from the directory.
type roomReader interface {
	GetRoom(roomID string) (models.Room, error)
}

// cellReader resolves current occupancy from the grid store.
type cellReader interface {
	Get(cell models.Cell) (models.Assignment, bool)
}

// Engine holds the pure placement decision functions. It never mutates
// the grid; it only reads rooms and occupancy.
type Engine struct {
	rooms roomReader
	cells cellReader
}

// NewEngine wires the rule engine over directory and grid readers.
func NewEngine(rooms roomReader, cells cellReader) *Engine {
	return &Engine{rooms: rooms, cells: cells}
}

// CanPlaceNew decides whether an unplaced class may enter a cell. A new
// class never swaps: an occupied target is an outright rejection. The
// class shift must match the target slot.
func (e *Engine) CanPlaceNew(class models.UnassignedClass, target models.Cell) Verdict {
	room, err := e.rooms.GetRoom(target.RoomID)
	if err != nil || !room.Available() {
		return rejected(ReasonRoomUnavailable)
	}
	if _, occupied := e.cells.Get(target); occupied {
		return rejected(ReasonCellOccupied)
	}
	if class.RequiredShift != target.Shift {
		return rejected(ReasonShiftMismatch)
	}
	return allowed()
}

// CanMove decides whether a scheduled assignment may leave its source
// cell for the target. A target occupied by another assignment yields
// RequiresSwap rather than a rejection; dropping onto the source cell
// itself is rejected silently. The edit is pinned to one day: the pool
// is bookkept per day, so crossing days would strand the class in the
// target day's pool. Shift compatibility is deliberately not re-checked
// when repositioning an already-scheduled class.
func (e *Engine) CanMove(source, target models.Cell) Verdict {
	if source == target {
		return rejected(ReasonSameCell)
	}
	if source.Day != target.Day {
		return rejected(ReasonDayMismatch)
	}
	moving, ok := e.cells.Get(source)
	if !ok {
		return rejected(ReasonSourceEmpty)
	}
	if moving.ScheduleID == "" {
		return rejected(ReasonMissingScheduleID)
	}
	room, err := e.rooms.GetRoom(target.RoomID)
	if err != nil || !room.Available() {
		return rejected(ReasonRoomUnavailable)
	}
	if occupant, occupied := e.cells.Get(target); occupied {
		return Verdict{Decision: DecisionRequiresSwap, Occupant: occupant}
	}
	return allowed()
}

// CanUnassign decides whether a cell's assignment may be detached. The
// only failure mode is an assignment without a schedule id, which a
// well-formed grid never produces.
func (e *Engine) CanUnassign(source models.Cell) Verdict {
	assignment, ok := e.cells.Get(source)
	if !ok {
		return rejected(ReasonSourceEmpty)
	}
	if assignment.ScheduleID == "" {
		return rejected(ReasonMissingScheduleID)
	}
	return allowed()
}
