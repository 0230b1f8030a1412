package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-roomgrid/internal/dto"
	"github.com/noah-isme/campus-roomgrid/internal/models"
	"github.com/noah-isme/campus-roomgrid/internal/rules"
	appErrors "github.com/noah-isme/campus-roomgrid/pkg/errors"
)

type dragKind int

const (
	dragNewClass dragKind = iota
	dragScheduled
)

// dragSession is one open drag gesture: Idle has no session, Dragging is
// an open session, and a session with a pendingSwap is parked in the
// confirmation step until the caller confirms or cancels.
type dragSession struct {
	id          string
	kind        dragKind
	day         string
	class       models.UnassignedClass
	assignment  models.Assignment
	source      models.Cell
	startedAt   time.Time
	pendingSwap *dto.SwapPrompt
}

// GestureService drives the drag-and-drop mutation protocol over the
// grid service. It owns no grid state; it translates discrete gesture
// events into rule previews and committed mutations, which keeps the
// protocol drivable by any input mechanism.
type GestureService struct {
	grids     *GridService
	ttl       time.Duration
	validator *validator.Validate
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[string]*dragSession
}

// NewGestureService wires the gesture state machine.
func NewGestureService(grids *GridService, ttl time.Duration, validate *validator.Validate, logger *zap.Logger) *GestureService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GestureService{
		grids:     grids,
		ttl:       ttl,
		validator: validate,
		logger:    logger,
		sessions:  make(map[string]*dragSession),
	}
}

// PickUpNew starts a gesture from the unassigned pool. Nothing is
// removed from the pool until the drop commits.
func (s *GestureService) PickUpNew(req dto.PickUpNewRequest) (*dto.GestureRef, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid pick up payload")
	}
	class, err := s.grids.dir.GetClass(req.ClassID)
	if err != nil {
		return nil, err
	}
	if !s.grids.InPool(req.Day, req.ClassID) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "class is not in the unassigned pool for this day")
	}

	session := &dragSession{
		id:        uuid.NewString(),
		kind:      dragNewClass,
		day:       req.Day,
		class:     class,
		startedAt: time.Now(),
	}
	s.save(session)
	return &dto.GestureRef{GestureID: session.id}, nil
}

// PickUpScheduled starts a gesture from an occupied grid cell.
func (s *GestureService) PickUpScheduled(req dto.PickUpScheduledRequest) (*dto.GestureRef, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid pick up payload")
	}
	source := req.Cell.Model()
	assignment, ok, pending := s.grids.CellView(source)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "cell holds no assignment")
	}
	if pending {
		return nil, appErrors.Clone(appErrors.ErrCellPending, "")
	}

	session := &dragSession{
		id:         uuid.NewString(),
		kind:       dragScheduled,
		day:        source.Day,
		assignment: assignment,
		source:     source,
		startedAt:  time.Now(),
	}
	s.save(session)
	return &dto.GestureRef{GestureID: session.id}, nil
}

// Hover previews the legality of dropping the dragged payload on a
// cell. Purely advisory; the grid never changes.
func (s *GestureService) Hover(gestureID string, req dto.HoverRequest) (*dto.HoverView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid hover payload")
	}
	session, err := s.get(gestureID)
	if err != nil {
		return nil, err
	}
	target := req.Cell.Model()

	if _, _, pending := s.grids.CellView(target); pending {
		return &dto.HoverView{State: dto.HoverBusy}, nil
	}

	var verdict rules.Verdict
	if session.kind == dragNewClass {
		verdict = s.grids.Preview(func(e *rules.Engine) rules.Verdict {
			return e.CanPlaceNew(session.class, target)
		})
	} else {
		verdict = s.grids.Preview(func(e *rules.Engine) rules.Verdict {
			return e.CanMove(session.source, target)
		})
	}

	switch verdict.Decision {
	case rules.DecisionAllowed:
		return &dto.HoverView{State: dto.HoverNeutral}, nil
	case rules.DecisionRequiresSwap:
		occupant := verdict.Occupant
		return &dto.HoverView{State: dto.HoverSwapEligible, Occupant: &occupant}, nil
	default:
		return &dto.HoverView{State: dto.HoverWarning, Reason: verdict.Reason}, nil
	}
}

// Drop resolves the gesture against a target cell: commit, reject, or
// park on the swap confirmation step. Every terminal branch closes the
// session; a swap_pending result keeps it open for ConfirmSwap/Cancel.
func (s *GestureService) Drop(ctx context.Context, gestureID string, req dto.HoverRequest) (*dto.DropResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid drop payload")
	}
	session, err := s.get(gestureID)
	if err != nil {
		return nil, err
	}
	target := req.Cell.Model()

	if session.kind == dragNewClass {
		return s.dropNew(ctx, session, target)
	}
	return s.dropScheduled(ctx, session, target)
}

func (s *GestureService) dropNew(ctx context.Context, session *dragSession, target models.Cell) (*dto.DropResult, error) {
	verdict := s.grids.Preview(func(e *rules.Engine) rules.Verdict {
		return e.CanPlaceNew(session.class, target)
	})
	if verdict.Decision != rules.DecisionAllowed {
		s.close(session.id)
		return &dto.DropResult{Status: dto.DropRejected, Reason: verdict.Reason}, nil
	}

	assignment, err := s.grids.Assign(ctx, dto.AssignRequest{
		Day:     target.Day,
		Shift:   target.Shift,
		RoomID:  target.RoomID,
		ClassID: session.class.ClassID,
	})
	s.close(session.id)
	if err != nil {
		return nil, err
	}
	return &dto.DropResult{Status: dto.DropCommitted, Assignment: assignment}, nil
}

func (s *GestureService) dropScheduled(ctx context.Context, session *dragSession, target models.Cell) (*dto.DropResult, error) {
	verdict := s.grids.Preview(func(e *rules.Engine) rules.Verdict {
		return e.CanMove(session.source, target)
	})

	switch verdict.Decision {
	case rules.DecisionRequiresSwap:
		prompt := &dto.SwapPrompt{
			Source:     session.source,
			Target:     target,
			Moving:     session.assignment,
			Displacing: verdict.Occupant,
		}
		s.mu.Lock()
		session.pendingSwap = prompt
		s.mu.Unlock()
		return &dto.DropResult{Status: dto.DropSwapPending, Swap: prompt}, nil

	case rules.DecisionRejected:
		s.close(session.id)
		if verdict.Reason == rules.ReasonSameCell {
			return &dto.DropResult{Status: dto.DropNoop}, nil
		}
		return &dto.DropResult{Status: dto.DropRejected, Reason: verdict.Reason}, nil
	}

	assignment, err := s.grids.Move(ctx, dto.MoveRequest{
		Source: dto.Cell{Day: session.source.Day, Shift: session.source.Shift, RoomID: session.source.RoomID},
		Target: dto.Cell{Day: target.Day, Shift: target.Shift, RoomID: target.RoomID},
	})
	s.close(session.id)
	if err != nil {
		return nil, err
	}
	return &dto.DropResult{Status: dto.DropCommitted, Assignment: assignment}, nil
}

// ConfirmSwap executes the swap a previous Drop parked for
// confirmation.
func (s *GestureService) ConfirmSwap(ctx context.Context, gestureID string) (*dto.DropResult, error) {
	session, err := s.get(gestureID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	prompt := session.pendingSwap
	s.mu.Unlock()
	if prompt == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "gesture has no swap awaiting confirmation")
	}

	err = s.grids.Swap(ctx, dto.SwapRequest{
		CellA: dto.Cell{Day: prompt.Source.Day, Shift: prompt.Source.Shift, RoomID: prompt.Source.RoomID},
		CellB: dto.Cell{Day: prompt.Target.Day, Shift: prompt.Target.Shift, RoomID: prompt.Target.RoomID},
	})
	s.close(gestureID)
	if err != nil {
		return nil, err
	}
	return &dto.DropResult{Status: dto.DropCommitted}, nil
}

// DropOutside handles a drop that landed on no valid cell. A scheduled
// payload is detached from its cell and returned to the pool; a
// new-class payload simply stays in the pool.
func (s *GestureService) DropOutside(ctx context.Context, gestureID string) (*dto.DropResult, error) {
	session, err := s.get(gestureID)
	if err != nil {
		return nil, err
	}

	if session.kind == dragNewClass {
		s.close(session.id)
		return &dto.DropResult{Status: dto.DropNoop}, nil
	}

	err = s.grids.Unassign(ctx, dto.UnassignRequest{
		Cell: dto.Cell{Day: session.source.Day, Shift: session.source.Shift, RoomID: session.source.RoomID},
	})
	s.close(session.id)
	if err != nil {
		return nil, err
	}
	return &dto.DropResult{Status: dto.DropCommitted}, nil
}

// Cancel discards an open gesture, including one parked on swap
// confirmation. No mutation occurs.
func (s *GestureService) Cancel(gestureID string) error {
	if _, err := s.get(gestureID); err != nil {
		return err
	}
	s.close(gestureID)
	return nil
}

func (s *GestureService) save(session *dragSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.sessions {
		if time.Since(existing.startedAt) > s.ttl {
			delete(s.sessions, id)
		}
	}
	s.sessions[session.id] = session
}

func (s *GestureService) get(id string) (*dragSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "gesture not found or expired")
	}
	if time.Since(session.startedAt) > s.ttl {
		delete(s.sessions, id)
		return nil, appErrors.Clone(appErrors.ErrNotFound, "gesture not found or expired")
	}
	return session, nil
}

func (s *GestureService) close(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
