package service

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-roomgrid/internal/directory"
	"github.com/noah-isme/campus-roomgrid/internal/dto"
	"github.com/noah-isme/campus-roomgrid/internal/grid"
	"github.com/noah-isme/campus-roomgrid/internal/models"
	"github.com/noah-isme/campus-roomgrid/internal/rules"
	"github.com/noah-isme/campus-roomgrid/internal/upstream"
	appErrors "github.com/noah-isme/campus-roomgrid/pkg/errors"
)

// SyncAdapter is the outbound contract to the campus backend. Every
// committed gesture issues exactly one call; any error means the
// mutation did not happen upstream and the local state rolls back.
type SyncAdapter interface {
	AssignRoomToClass(ctx context.Context, classID, roomID, day, shift string) (*upstream.ScheduleRecord, error)
	MoveScheduleToRoom(ctx context.Context, scheduleID, targetRoomID string) error
	SwapSchedules(ctx context.Context, scheduleID1, scheduleID2 string) error
	UnassignRoomFromClass(ctx context.Context, scheduleID string) error
}

type mutationObserver interface {
	ObserveMutation(kind, outcome string)
}

// Mutation kinds and outcomes reported to metrics.
const (
	MutationAssign   = "assign"
	MutationMove     = "move"
	MutationSwap     = "swap"
	MutationUnassign = "unassign"

	OutcomeCommitted  = "committed"
	OutcomeRolledBack = "rolled_back"
	OutcomeRejected   = "rejected"
)

// GridService owns the schedule grid, the unassigned pool and the
// optimistic mutation protocol around them. Mutations are serialised;
// reads take a shared lock so grid views stay consistent while an
// upstream call is in flight.
type GridService struct {
	dir       *directory.Directory
	store     *grid.Store
	rules     *rules.Engine
	sync      SyncAdapter
	metrics   mutationObserver
	validator *validator.Validate
	logger    *zap.Logger

	// commitMu serialises whole mutations including the upstream call,
	// which is what makes snapshot rollback safe. stateMu guards the
	// grid, pool and pending set for readers.
	commitMu sync.Mutex
	stateMu  sync.RWMutex
	pool     map[string]map[string]models.UnassignedClass
	pending  map[models.Cell]bool
	shifts   map[string]bool
}

// NewGridService wires the scheduling core.
func NewGridService(dir *directory.Directory, store *grid.Store, sync SyncAdapter, metrics mutationObserver, validate *validator.Validate, logger *zap.Logger) *GridService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GridService{
		dir:       dir,
		store:     store,
		rules:     rules.NewEngine(dir, store),
		sync:      sync,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		pool:      make(map[string]map[string]models.UnassignedClass),
		pending:   make(map[models.Cell]bool),
	}
}

// CellAssignment pairs a cell with its loaded assignment for bootstrap.
type CellAssignment struct {
	Cell       models.Cell
	Assignment models.Assignment
}

// ResetState rebuilds the grid and the per-day unassigned pools from a
// fresh upstream load. Classes placed somewhere on a day stay out of
// that day's pool. Shifts are the canonical shift windows; mutation
// targets outside them are rejected (an empty list disables the check).
func (s *GridService) ResetState(days, shifts []string, placements []CellAssignment) error {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	fresh := grid.NewStore()
	for _, p := range placements {
		if err := fresh.Place(p.Cell, p.Assignment); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "upstream schedule data places two classes in one cell")
		}
	}

	pool := make(map[string]map[string]models.UnassignedClass, len(days))
	for _, day := range days {
		assigned := fresh.AssignedClassIDs(day)
		dayPool := make(map[string]models.UnassignedClass)
		for _, class := range s.dir.Classes() {
			if class.MeetsOn(day) && !assigned[class.ClassID] {
				dayPool[class.ClassID] = class
			}
		}
		pool[day] = dayPool
	}

	windows := make(map[string]bool, len(shifts))
	for _, shift := range shifts {
		windows[shift] = true
	}

	s.store.Restore(fresh.Snapshot())
	s.pool = pool
	s.pending = make(map[models.Cell]bool)
	s.shifts = windows
	return nil
}

func (s *GridService) knownShiftLocked(shift string) bool {
	if len(s.shifts) == 0 {
		return true
	}
	return s.shifts[shift]
}

// UnassignedClasses lists the pool for a day with the directory's facet
// filtering and shift-first ordering.
func (s *GridService) UnassignedClasses(filter models.ClassFilter) []models.UnassignedClass {
	s.stateMu.RLock()
	assigned := s.store.AssignedClassIDs(filter.Day)
	s.stateMu.RUnlock()
	return s.dir.ListUnassignedClasses(filter, assigned)
}

// InPool reports whether a class sits in the unassigned pool for a day.
func (s *GridService) InPool(day, classID string) bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	_, ok := s.pool[day][classID]
	return ok
}

// CellView returns a cell's assignment and pending flag.
func (s *GridService) CellView(cell models.Cell) (models.Assignment, bool, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	a, ok := s.store.Get(cell)
	return a, ok, s.pending[cell]
}

// GridView renders the (day, shift, building) slice for editing.
func (s *GridService) GridView(selection models.SelectionContext) dto.GridView {
	floors := s.dir.ListRoomsByBuildingFloor(selection.Building)

	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	view := dto.GridView{Selection: selection, Floors: make([]dto.FloorView, 0, len(floors))}
	for _, floor := range floors {
		fv := dto.FloorView{Floor: floor.Floor, Rooms: make([]dto.RoomCellView, 0, len(floor.Rooms))}
		for _, room := range floor.Rooms {
			cell := models.Cell{Day: selection.Day, Shift: selection.Shift, RoomID: room.ID}
			rcv := dto.RoomCellView{Room: room, Pending: s.pending[cell]}
			if a, ok := s.store.Get(cell); ok {
				assignment := a
				rcv.Assignment = &assignment
			}
			fv.Rooms = append(fv.Rooms, rcv)
		}
		view.Floors = append(view.Floors, fv)
	}
	return view
}

// Preview runs the rule engine for a hover without mutating anything.
func (s *GridService) Preview(check func(e *rules.Engine) rules.Verdict) rules.Verdict {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return check(s.rules)
}

// Assign places an unassigned class into a cell and records it
// upstream. The local mutation is optimistic; a failed upstream call
// restores grid and pool from the pre-mutation snapshot.
func (s *GridService) Assign(ctx context.Context, req dto.AssignRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assign payload")
	}

	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	class, err := s.dir.GetClass(req.ClassID)
	if err != nil {
		return nil, err
	}
	target := models.Cell{Day: req.Day, Shift: req.Shift, RoomID: req.RoomID}

	s.stateMu.Lock()
	if !s.knownShiftLocked(target.Shift) {
		s.stateMu.Unlock()
		s.observe(MutationAssign, OutcomeRejected)
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown shift window")
	}
	if s.pending[target] {
		s.stateMu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrCellPending, "")
	}
	if _, placed := s.store.FindClass(req.Day, req.ClassID); placed {
		s.stateMu.Unlock()
		s.observe(MutationAssign, OutcomeRejected)
		return nil, appErrors.Clone(appErrors.ErrConflict, "class is already placed on this day")
	}
	if verdict := s.rules.CanPlaceNew(class, target); verdict.Decision != rules.DecisionAllowed {
		s.stateMu.Unlock()
		s.observe(MutationAssign, OutcomeRejected)
		return nil, reasonError(verdict.Reason)
	}

	snap := s.snapshotLocked()
	optimistic := models.Assignment{
		ClassID:   class.ClassID,
		ClassName: class.ClassName,
		MajorName: class.MajorName,
	}
	delete(s.pool[req.Day], class.ClassID)
	if err := s.store.Place(target, optimistic); err != nil {
		s.restoreLocked(snap)
		s.stateMu.Unlock()
		return nil, err
	}
	s.pending[target] = true
	s.stateMu.Unlock()

	record, syncErr := s.sync.AssignRoomToClass(ctx, class.ClassID, req.RoomID, req.Day, req.Shift)

	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	delete(s.pending, target)
	if syncErr != nil {
		s.restoreLocked(snap)
		s.observe(MutationAssign, OutcomeRolledBack)
		s.logger.Warn("assign rolled back", zap.String("class_id", class.ClassID), zap.Error(syncErr))
		return nil, syncErr
	}

	committed := optimistic
	committed.ScheduleID = record.ScheduleID
	committed.TemporaryRoomID = record.TemporaryRoomID
	s.store.Clear(target)
	if err := s.store.Place(target, committed); err != nil {
		// cannot happen: we hold commitMu and just cleared the cell
		s.restoreLocked(snap)
		return nil, err
	}
	s.observe(MutationAssign, OutcomeCommitted)
	s.logger.Info("class assigned",
		zap.String("class_id", class.ClassID),
		zap.String("room_id", req.RoomID),
		zap.String("day", req.Day),
		zap.String("shift", req.Shift),
		zap.String("schedule_id", record.ScheduleID),
	)
	return &committed, nil
}

// Move relocates a scheduled assignment to an empty cell. A target
// occupied by another assignment is refused with SWAP_REQUIRED; callers
// confirm through Swap instead.
func (s *GridService) Move(ctx context.Context, req dto.MoveRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid move payload")
	}

	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	source := req.Source.Model()
	target := req.Target.Model()

	s.stateMu.Lock()
	if !s.knownShiftLocked(target.Shift) {
		s.stateMu.Unlock()
		s.observe(MutationMove, OutcomeRejected)
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown shift window")
	}
	if s.pending[source] || s.pending[target] {
		s.stateMu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrCellPending, "")
	}
	verdict := s.rules.CanMove(source, target)
	switch verdict.Decision {
	case rules.DecisionRequiresSwap:
		s.stateMu.Unlock()
		s.observe(MutationMove, OutcomeRejected)
		return nil, appErrors.Clone(appErrors.ErrSwapRequired, "")
	case rules.DecisionRejected:
		s.stateMu.Unlock()
		s.observe(MutationMove, OutcomeRejected)
		return nil, reasonError(verdict.Reason)
	}

	moving, _ := s.store.Get(source)
	snap := s.snapshotLocked()
	s.store.Clear(source)
	if err := s.store.Place(target, moving); err != nil {
		s.restoreLocked(snap)
		s.stateMu.Unlock()
		return nil, err
	}
	s.pending[source] = true
	s.pending[target] = true
	s.stateMu.Unlock()

	syncErr := s.sync.MoveScheduleToRoom(ctx, moving.ScheduleID, target.RoomID)

	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	delete(s.pending, source)
	delete(s.pending, target)
	if syncErr != nil {
		s.restoreLocked(snap)
		s.observe(MutationMove, OutcomeRolledBack)
		s.logger.Warn("move rolled back", zap.String("schedule_id", moving.ScheduleID), zap.Error(syncErr))
		return nil, syncErr
	}
	s.observe(MutationMove, OutcomeCommitted)
	s.logger.Info("assignment moved",
		zap.String("schedule_id", moving.ScheduleID),
		zap.String("from_room", source.RoomID),
		zap.String("to_room", target.RoomID),
	)
	return &moving, nil
}

// Swap exchanges the assignments of two occupied cells. Both schedule
// ids survive attached to their new rooms; the backend commits both
// sides atomically.
func (s *GridService) Swap(ctx context.Context, req dto.SwapRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid swap payload")
	}

	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	cellA := req.CellA.Model()
	cellB := req.CellB.Model()
	if cellA == cellB {
		return appErrors.Clone(appErrors.ErrValidation, "cannot swap a cell with itself")
	}
	// the pool is bookkept per day; crossing days would strand both
	// classes in the wrong day's pool
	if cellA.Day != cellB.Day {
		return appErrors.Clone(appErrors.ErrDayMismatch, "")
	}

	s.stateMu.Lock()
	if s.pending[cellA] || s.pending[cellB] {
		s.stateMu.Unlock()
		return appErrors.Clone(appErrors.ErrCellPending, "")
	}
	first, okA := s.store.Get(cellA)
	second, okB := s.store.Get(cellB)
	if !okA || !okB {
		s.stateMu.Unlock()
		s.observe(MutationSwap, OutcomeRejected)
		return appErrors.Clone(appErrors.ErrNotFound, "both cells must hold assignments to swap")
	}
	if first.ScheduleID == "" || second.ScheduleID == "" {
		s.stateMu.Unlock()
		s.observe(MutationSwap, OutcomeRejected)
		return appErrors.Clone(appErrors.ErrMissingScheduleID, "")
	}

	snap := s.snapshotLocked()
	s.store.Clear(cellA)
	s.store.Clear(cellB)
	if err := s.store.Place(cellA, second); err != nil {
		s.restoreLocked(snap)
		s.stateMu.Unlock()
		return err
	}
	if err := s.store.Place(cellB, first); err != nil {
		s.restoreLocked(snap)
		s.stateMu.Unlock()
		return err
	}
	s.pending[cellA] = true
	s.pending[cellB] = true
	s.stateMu.Unlock()

	syncErr := s.sync.SwapSchedules(ctx, first.ScheduleID, second.ScheduleID)

	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	delete(s.pending, cellA)
	delete(s.pending, cellB)
	if syncErr != nil {
		s.restoreLocked(snap)
		s.observe(MutationSwap, OutcomeRolledBack)
		s.logger.Warn("swap rolled back",
			zap.String("schedule_id_1", first.ScheduleID),
			zap.String("schedule_id_2", second.ScheduleID),
			zap.Error(syncErr),
		)
		return syncErr
	}
	s.observe(MutationSwap, OutcomeCommitted)
	s.logger.Info("assignments swapped",
		zap.String("schedule_id_1", first.ScheduleID),
		zap.String("schedule_id_2", second.ScheduleID),
	)
	return nil
}

// Unassign detaches a cell's assignment and returns the class to the
// pool. On upstream failure the cell and pool revert.
func (s *GridService) Unassign(ctx context.Context, req dto.UnassignRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid unassign payload")
	}

	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	source := req.Cell.Model()

	s.stateMu.Lock()
	if s.pending[source] {
		s.stateMu.Unlock()
		return appErrors.Clone(appErrors.ErrCellPending, "")
	}
	if verdict := s.rules.CanUnassign(source); verdict.Decision != rules.DecisionAllowed {
		s.stateMu.Unlock()
		s.observe(MutationUnassign, OutcomeRejected)
		return reasonError(verdict.Reason)
	}

	detached, _ := s.store.Get(source)
	snap := s.snapshotLocked()
	s.store.Clear(source)
	if class, err := s.dir.GetClass(detached.ClassID); err == nil {
		if s.pool[source.Day] == nil {
			s.pool[source.Day] = make(map[string]models.UnassignedClass)
		}
		s.pool[source.Day][class.ClassID] = class
	} else {
		// the class leaves the grid but cannot rejoin the pool; surface
		// the directory gap instead of losing it silently
		s.logger.Warn("unassigned class missing from directory",
			zap.String("class_id", detached.ClassID),
			zap.String("schedule_id", detached.ScheduleID),
			zap.String("day", source.Day),
		)
	}
	s.pending[source] = true
	s.stateMu.Unlock()

	syncErr := s.sync.UnassignRoomFromClass(ctx, detached.ScheduleID)

	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	delete(s.pending, source)
	if syncErr != nil {
		s.restoreLocked(snap)
		s.observe(MutationUnassign, OutcomeRolledBack)
		s.logger.Warn("unassign rolled back", zap.String("schedule_id", detached.ScheduleID), zap.Error(syncErr))
		return syncErr
	}
	s.observe(MutationUnassign, OutcomeCommitted)
	s.logger.Info("assignment removed",
		zap.String("schedule_id", detached.ScheduleID),
		zap.String("class_id", detached.ClassID),
		zap.String("room_id", source.RoomID),
	)
	return nil
}

// --- snapshot plumbing ---

type stateSnapshot struct {
	grid grid.Snapshot
	pool map[string]map[string]models.UnassignedClass
}

func (s *GridService) snapshotLocked() stateSnapshot {
	pool := make(map[string]map[string]models.UnassignedClass, len(s.pool))
	for day, classes := range s.pool {
		copied := make(map[string]models.UnassignedClass, len(classes))
		for id, class := range classes {
			copied[id] = class
		}
		pool[day] = copied
	}
	return stateSnapshot{grid: s.store.Snapshot(), pool: pool}
}

func (s *GridService) restoreLocked(snap stateSnapshot) {
	s.store.Restore(snap.grid)
	pool := make(map[string]map[string]models.UnassignedClass, len(snap.pool))
	for day, classes := range snap.pool {
		copied := make(map[string]models.UnassignedClass, len(classes))
		for id, class := range classes {
			copied[id] = class
		}
		pool[day] = copied
	}
	s.pool = pool
}

func (s *GridService) observe(kind, outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveMutation(kind, outcome)
	}
}

func reasonError(reason rules.Reason) error {
	switch reason {
	case rules.ReasonRoomUnavailable:
		return appErrors.Clone(appErrors.ErrRoomUnavailable, "")
	case rules.ReasonCellOccupied:
		return appErrors.Clone(appErrors.ErrCellOccupied, "")
	case rules.ReasonShiftMismatch:
		return appErrors.Clone(appErrors.ErrShiftMismatch, "")
	case rules.ReasonMissingScheduleID:
		return appErrors.Clone(appErrors.ErrMissingScheduleID, "")
	case rules.ReasonSameCell:
		return appErrors.Clone(appErrors.ErrValidation, "source and target cells are identical")
	case rules.ReasonDayMismatch:
		return appErrors.Clone(appErrors.ErrDayMismatch, "")
	case rules.ReasonSourceEmpty:
		return appErrors.Clone(appErrors.ErrNotFound, "source cell holds no assignment")
	default:
		return appErrors.Clone(appErrors.ErrInternal, "unmapped rule verdict")
	}
}
