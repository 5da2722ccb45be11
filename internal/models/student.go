package models

import "time"

// Student is an accepted enrollment record. Records are immutable once appended to the roster.
type Student struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Batch          string    `json:"batch"`
	AcademicYear   string    `json:"academic_year"`
	EnrollmentDate time.Time `json:"enrollment_date"`
}

// EnrollmentCandidate is a proposed enrollment that has passed form-level checks
// but not yet the cross-record business rules.
type EnrollmentCandidate struct {
	Name         string
	Email        string
	Phone        string
	Batch        string
	AcademicYear string
}

// Notification is the user-facing outcome of a submission.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// EnrollmentResult is returned for an accepted enrollment.
type EnrollmentResult struct {
	Student      Student      `json:"student"`
	Notification Notification `json:"notification"`
}
