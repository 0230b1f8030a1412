package models

// UnassignedClass is a class waiting for a room on a given day. It lives
// in the unassigned pool until it is placed into a grid cell and returns
// to the pool when unassigned.
type UnassignedClass struct {
	ClassID       string   `json:"class_id"`
	ClassName     string   `json:"class_name"`
	MajorName     string   `json:"major_name"`
	DegreeName    string   `json:"degree_name"`
	Generation    string   `json:"generation"`
	RequiredShift string   `json:"required_shift"`
	Days          []string `json:"days"`
}

// MeetsOn reports whether the class has a session on the given day.
func (c UnassignedClass) MeetsOn(day string) bool {
	for _, d := range c.Days {
		if d == day {
			return true
		}
	}
	return false
}

// ClassFilter describes the facets for listing unassigned classes.
type ClassFilter struct {
	Day        string
	Shift      string
	Degree     string
	Generation string
	SearchText string
}
