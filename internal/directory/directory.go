package directory

import (
	"sort"
	"strings"
	"sync"

	"github.com/noah-isme/campus-roomgrid/internal/models"
	appErrors "github.com/noah-isme/campus-roomgrid/pkg/errors"
)

// Directory holds the read-only room and class reference data loaded
// from the campus backend. It is rebuilt wholesale on reload rather than
// mutated in place.
type Directory struct {
	mu      sync.RWMutex
	rooms   map[string]models.Room
	classes map[string]models.UnassignedClass
}

// New returns an empty directory.
func New() *Directory {
	return &Directory{
		rooms:   make(map[string]models.Room),
		classes: make(map[string]models.UnassignedClass),
	}
}

// Replace swaps in a freshly loaded room and class set.
func (d *Directory) Replace(rooms []models.Room, classes []models.UnassignedClass) {
	roomMap := make(map[string]models.Room, len(rooms))
	for _, room := range rooms {
		roomMap[room.ID] = room
	}
	classMap := make(map[string]models.UnassignedClass, len(classes))
	for _, class := range classes {
		classMap[class.ClassID] = class
	}

	d.mu.Lock()
	d.rooms = roomMap
	d.classes = classMap
	d.mu.Unlock()
}

// GetRoom looks up a room by id.
func (d *Directory) GetRoom(roomID string) (models.Room, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	room, ok := d.rooms[roomID]
	if !ok {
		return models.Room{}, appErrors.Clone(appErrors.ErrNotFound, "room not found")
	}
	return room, nil
}

// GetClass looks up a class by id.
func (d *Directory) GetClass(classID string) (models.UnassignedClass, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	class, ok := d.classes[classID]
	if !ok {
		return models.UnassignedClass{}, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	return class, nil
}

// Rooms returns every room, unordered.
func (d *Directory) Rooms() []models.Room {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.Room, 0, len(d.rooms))
	for _, room := range d.rooms {
		out = append(out, room)
	}
	return out
}

// Classes returns every class, unordered.
func (d *Directory) Classes() []models.UnassignedClass {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.UnassignedClass, 0, len(d.classes))
	for _, class := range d.classes {
		out = append(out, class)
	}
	return out
}

// ListRoomsByBuildingFloor groups a building's rooms per floor, floors
// ordered descending and rooms by name within a floor.
func (d *Directory) ListRoomsByBuildingFloor(buildingName string) []models.FloorRooms {
	d.mu.RLock()
	byFloor := make(map[int][]models.Room)
	for _, room := range d.rooms {
		if !strings.EqualFold(room.BuildingName, buildingName) {
			continue
		}
		byFloor[room.Floor] = append(byFloor[room.Floor], room)
	}
	d.mu.RUnlock()

	floors := make([]int, 0, len(byFloor))
	for floor := range byFloor {
		floors = append(floors, floor)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(floors)))

	result := make([]models.FloorRooms, 0, len(floors))
	for _, floor := range floors {
		rooms := byFloor[floor]
		sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })
		result = append(result, models.FloorRooms{Floor: floor, Rooms: rooms})
	}
	return result
}

// ListUnassignedClasses filters the class pool down to classes meeting
// on filter.Day that match the optional facets and are not in the
// assigned set. Classes whose required shift equals the selected shift
// sort first, then canonical shift time order, then class name.
func (d *Directory) ListUnassignedClasses(filter models.ClassFilter, assigned map[string]bool) []models.UnassignedClass {
	d.mu.RLock()
	candidates := make([]models.UnassignedClass, 0, len(d.classes))
	for _, class := range d.classes {
		candidates = append(candidates, class)
	}
	d.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.SearchText))
	result := make([]models.UnassignedClass, 0, len(candidates))
	for _, class := range candidates {
		if filter.Day != "" && !class.MeetsOn(filter.Day) {
			continue
		}
		if assigned[class.ClassID] {
			continue
		}
		if filter.Degree != "" && !strings.EqualFold(class.DegreeName, filter.Degree) {
			continue
		}
		if filter.Generation != "" && class.Generation != filter.Generation {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(class.ClassName), search) &&
			!strings.Contains(strings.ToLower(class.MajorName), search) {
			continue
		}
		result = append(result, class)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if filter.Shift != "" {
			aMatch := a.RequiredShift == filter.Shift
			bMatch := b.RequiredShift == filter.Shift
			if aMatch != bMatch {
				return aMatch
			}
		}
		if a.RequiredShift != b.RequiredShift {
			return models.ShiftBefore(a.RequiredShift, b.RequiredShift)
		}
		return a.ClassName < b.ClassName
	})

	return result
}
