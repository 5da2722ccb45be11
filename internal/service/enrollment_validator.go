package service

import (
	"github.com/noah-isme/campus-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/campus-enrollment-api/pkg/errors"
)

// ValidateEnrollment applies the cross-record rules to a candidate that already passed
// form-level checks. Capacity is checked before duplicates. Email, batch and academic
// year are compared exactly.
func ValidateEnrollment(candidate models.EnrollmentCandidate, existing []models.Student, capacity int) error {
	if len(existing) >= capacity {
		return appErrors.ErrCapacityExceeded
	}
	for _, s := range existing {
		if s.Email == candidate.Email && s.Batch == candidate.Batch && s.AcademicYear == candidate.AcademicYear {
			return appErrors.ErrDuplicateEnrollment
		}
	}
	return nil
}
