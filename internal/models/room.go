package models

// RoomStatus marks whether a room may receive assignments at all.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusUnavailable RoomStatus = "unavailable"
)

// Room is static reference data loaded from the campus backend.
// A room with RoomStatusUnavailable is ineligible for any assignment
// regardless of occupancy.
type Room struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	BuildingName string     `json:"building_name"`
	Floor        int        `json:"floor"`
	Status       RoomStatus `json:"status"`
}

// Available reports whether the room may hold assignments.
func (r Room) Available() bool {
	return r.Status == RoomStatusAvailable
}

// FloorRooms groups the rooms of one floor for building views.
type FloorRooms struct {
	Floor int    `json:"floor"`
	Rooms []Room `json:"rooms"`
}
