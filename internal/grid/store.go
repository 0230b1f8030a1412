package grid

import (
	"github.com/noah-isme/campus-roomgrid/internal/models"
	appErrors "github.com/noah-isme/campus-roomgrid/pkg/errors"
)

// Store owns the in-memory schedule grid: a mapping from (day, shift,
// room) cells to assignments. Empty cells are simply absent. The store is
// not safe for concurrent use; the owning service serialises access.
type Store struct {
	cells map[models.Cell]models.Assignment
}

// Snapshot is a deep copy of the grid used for optimistic-update
// rollback. Assignment is a plain value type, so copying the map copies
// everything.
type Snapshot struct {
	cells map[models.Cell]models.Assignment
}

// NewStore returns an empty grid.
func NewStore() *Store {
	return &Store{cells: make(map[models.Cell]models.Assignment)}
}

// Get returns the assignment occupying a cell, if any.
func (s *Store) Get(cell models.Cell) (models.Assignment, bool) {
	a, ok := s.cells[cell]
	return a, ok
}

// Place puts an assignment into an empty cell. Occupied cells fail with
// CELL_OCCUPIED; callers moving an assignment must clear the source
// first.
func (s *Store) Place(cell models.Cell, assignment models.Assignment) error {
	if _, occupied := s.cells[cell]; occupied {
		return appErrors.Clone(appErrors.ErrCellOccupied, "")
	}
	s.cells[cell] = assignment
	return nil
}

// Clear removes the assignment from a cell if present; clearing an empty
// cell is a no-op.
func (s *Store) Clear(cell models.Cell) {
	delete(s.cells, cell)
}

// FindClass locates the cell holding a class on the given day. Used to
// enforce the one-cell-per-class-per-day invariant.
func (s *Store) FindClass(day, classID string) (models.Cell, bool) {
	for cell, a := range s.cells {
		if cell.Day == day && a.ClassID == classID {
			return cell, true
		}
	}
	return models.Cell{}, false
}

// AssignedClassIDs returns the set of classes placed anywhere on a day.
func (s *Store) AssignedClassIDs(day string) map[string]bool {
	ids := make(map[string]bool)
	for cell, a := range s.cells {
		if cell.Day == day {
			ids[a.ClassID] = true
		}
	}
	return ids
}

// CellsFor returns all occupied cells of one (day, shift) slice.
func (s *Store) CellsFor(day, shift string) map[models.Cell]models.Assignment {
	out := make(map[models.Cell]models.Assignment)
	for cell, a := range s.cells {
		if cell.Day == day && cell.Shift == shift {
			out[cell] = a
		}
	}
	return out
}

// Len reports the number of occupied cells.
func (s *Store) Len() int {
	return len(s.cells)
}

// Snapshot captures the current grid for later rollback.
func (s *Store) Snapshot() Snapshot {
	copied := make(map[models.Cell]models.Assignment, len(s.cells))
	for cell, a := range s.cells {
		copied[cell] = a
	}
	return Snapshot{cells: copied}
}

// Restore replaces the grid with a previously captured snapshot.
func (s *Store) Restore(snap Snapshot) {
	restored := make(map[models.Cell]models.Assignment, len(snap.cells))
	for cell, a := range snap.cells {
		restored[cell] = a
	}
	s.cells = restored
}

// Equal reports whether the grid matches a snapshot cell for cell.
func (s *Store) Equal(snap Snapshot) bool {
	if len(s.cells) != len(snap.cells) {
		return false
	}
	for cell, a := range s.cells {
		if other, ok := snap.cells[cell]; !ok || other != a {
			return false
		}
	}
	return true
}
