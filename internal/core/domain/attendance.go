package domain

import "time"

// Attendance records head counts for a service held at a branch on a date.
type Attendance struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	BranchID      string    `json:"branch_id"`
	AttendeeIDs   []string  `json:"attendee_ids"`
	MaleCount     int       `json:"male_count"`
	FemaleCount   int       `json:"female_count"`
	ChildrenCount int       `json:"children_count"`
	CreatedAt     time.Time `json:"created_at"`
}
