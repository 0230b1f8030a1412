package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-roomgrid/internal/directory"
	"github.com/noah-isme/campus-roomgrid/internal/models"
	"github.com/noah-isme/campus-roomgrid/internal/upstream"
	appErrors "github.com/noah-isme/campus-roomgrid/pkg/errors"
)

const directoryCacheKey = "roomgrid:directory:v1"

type directoryFetcher interface {
	ListRooms(ctx context.Context) ([]upstream.RoomRecord, error)
	ListClasses(ctx context.Context) ([]upstream.ClassRecord, error)
	ListSchedules(ctx context.Context, day string) ([]upstream.ScheduleRecord, error)
}

type snapshotCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// directorySnapshot is the cached form of one upstream load.
type directorySnapshot struct {
	Rooms    []upstream.RoomRecord  `json:"rooms"`
	Classes  []upstream.ClassRecord `json:"classes"`
	LoadedAt time.Time              `json:"loaded_at"`
}

// BootstrapService loads rooms, classes and committed schedules from
// the campus backend and seeds the directory, grid and pool. The
// directory part can fall back to a cached snapshot when the upstream
// is unreachable; schedules are always fetched live since they are the
// mutable part of the model.
type BootstrapService struct {
	fetcher  directoryFetcher
	cache    snapshotCache
	dir      *directory.Directory
	grids    *GridService
	days     []string
	shifts   []string
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewBootstrapService wires the loader.
func NewBootstrapService(fetcher directoryFetcher, cache snapshotCache, dir *directory.Directory, grids *GridService, days, shifts []string, cacheTTL time.Duration, logger *zap.Logger) *BootstrapService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BootstrapService{
		fetcher:  fetcher,
		cache:    cache,
		dir:      dir,
		grids:    grids,
		days:     days,
		shifts:   shifts,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Load fetches everything and rebuilds the in-memory model.
func (s *BootstrapService) Load(ctx context.Context) error {
	snapshot, fromCache, err := s.loadDirectory(ctx)
	if err != nil {
		return err
	}

	rooms := make([]models.Room, 0, len(snapshot.Rooms))
	for _, r := range snapshot.Rooms {
		rooms = append(rooms, models.Room{
			ID:           r.ID,
			Name:         r.Name,
			BuildingName: r.BuildingName,
			Floor:        r.Floor,
			Status:       models.RoomStatus(r.Status),
		})
	}
	classes := make([]models.UnassignedClass, 0, len(snapshot.Classes))
	for _, c := range snapshot.Classes {
		classes = append(classes, models.UnassignedClass{
			ClassID:       c.ID,
			ClassName:     c.Name,
			MajorName:     c.MajorName,
			DegreeName:    c.DegreeName,
			Generation:    c.Generation,
			RequiredShift: c.RequiredShift,
			Days:          c.Days,
		})
	}
	s.dir.Replace(rooms, classes)

	var placements []CellAssignment
	for _, day := range s.days {
		records, err := s.fetcher.ListSchedules(ctx, day)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrSyncFailed.Code, appErrors.ErrSyncFailed.Status, "failed to load schedules for "+day)
		}
		for _, record := range records {
			placements = append(placements, CellAssignment{
				Cell: models.Cell{Day: record.Day, Shift: record.Shift, RoomID: record.RoomID},
				Assignment: models.Assignment{
					ClassID:         record.ClassID,
					ClassName:       record.ClassName,
					MajorName:       record.MajorName,
					ScheduleID:      record.ScheduleID,
					TemporaryRoomID: record.TemporaryRoomID,
				},
			})
		}
	}

	if err := s.grids.ResetState(s.days, s.shifts, placements); err != nil {
		return err
	}

	s.logger.Info("grid bootstrapped",
		zap.Int("rooms", len(rooms)),
		zap.Int("classes", len(classes)),
		zap.Int("placements", len(placements)),
		zap.Bool("directory_from_cache", fromCache),
	)
	return nil
}

func (s *BootstrapService) loadDirectory(ctx context.Context) (*directorySnapshot, bool, error) {
	rooms, roomsErr := s.fetcher.ListRooms(ctx)
	if roomsErr == nil {
		classes, classesErr := s.fetcher.ListClasses(ctx)
		if classesErr == nil {
			snapshot := &directorySnapshot{Rooms: rooms, Classes: classes, LoadedAt: time.Now().UTC()}
			if s.cache != nil {
				if err := s.cache.Set(ctx, directoryCacheKey, snapshot, s.cacheTTL); err != nil {
					s.logger.Warn("failed to cache directory snapshot", zap.Error(err))
				}
			}
			return snapshot, false, nil
		}
		roomsErr = classesErr
	}

	if s.cache != nil {
		var cached directorySnapshot
		if err := s.cache.Get(ctx, directoryCacheKey, &cached); err == nil {
			s.logger.Warn("upstream directory fetch failed, using cached snapshot",
				zap.Time("loaded_at", cached.LoadedAt),
				zap.Error(roomsErr),
			)
			return &cached, true, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("directory snapshot cache read failed", zap.Error(err))
		}
	}

	return nil, false, appErrors.Wrap(roomsErr, appErrors.ErrSyncFailed.Code, appErrors.ErrSyncFailed.Status, "failed to load directory from upstream")
}
