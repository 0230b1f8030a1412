package models

// Cell identifies one slot of the schedule grid: a (day, shift, room)
// triple. At most one assignment may occupy a cell.
type Cell struct {
	Day    string `json:"day"`
	Shift  string `json:"shift"`
	RoomID string `json:"room_id"`
}

// Assignment is the association of one class to one cell. ScheduleID is
// the upstream identifier and must be present before any mutation that
// targets an existing assignment.
type Assignment struct {
	ClassID         string `json:"class_id"`
	ClassName       string `json:"class_name"`
	MajorName       string `json:"major_name"`
	ScheduleID      string `json:"schedule_id"`
	TemporaryRoomID string `json:"temporary_room_id,omitempty"`
}

// SelectionContext is the transient UI state naming the grid slice being
// edited. It is not part of the durable model.
type SelectionContext struct {
	Day      string `json:"day"`
	Shift    string `json:"shift"`
	Building string `json:"building"`
}
