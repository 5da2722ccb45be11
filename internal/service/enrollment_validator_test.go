package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/campus-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/campus-enrollment-api/pkg/errors"
)

func rosterOf(n int) []models.Student {
	out := make([]models.Student, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Student{
			ID:           fmt.Sprintf("STD-2025-%d", 1000+i),
			Name:         fmt.Sprintf("Student %d", i),
			Email:        fmt.Sprintf("student%d@campus.edu", i),
			Batch:        "Morning",
			AcademicYear: "2025-2026",
		})
	}
	return out
}

func TestValidateEnrollmentCapacityExceeded(t *testing.T) {
	for _, capacity := range []int{0, 1, 2, 5} {
		existing := rosterOf(capacity)
		candidates := []models.EnrollmentCandidate{
			{Name: "New", Email: "new@campus.edu", Batch: "Evening", AcademicYear: "2026-2027"},
			{Name: "Dup", Email: "student0@campus.edu", Batch: "Morning", AcademicYear: "2025-2026"},
		}
		for _, c := range candidates {
			err := ValidateEnrollment(c, existing, capacity)
			assert.True(t, errors.Is(err, appErrors.ErrCapacityExceeded), "capacity=%d candidate=%s", capacity, c.Name)
		}
	}
}

func TestValidateEnrollmentCapacityCheckedBeforeDuplicate(t *testing.T) {
	existing := rosterOf(3)
	err := ValidateEnrollment(models.EnrollmentCandidate{Email: "student1@campus.edu", Batch: "Morning", AcademicYear: "2025-2026"}, existing, 2)
	assert.True(t, errors.Is(err, appErrors.ErrCapacityExceeded))
}

func TestValidateEnrollmentDuplicate(t *testing.T) {
	existing := rosterOf(3)
	err := ValidateEnrollment(models.EnrollmentCandidate{
		Name:         "Someone Else",
		Email:        "student2@campus.edu",
		Batch:        "Morning",
		AcademicYear: "2025-2026",
	}, existing, 50)
	assert.True(t, errors.Is(err, appErrors.ErrDuplicateEnrollment))
}

func TestValidateEnrollmentAccepts(t *testing.T) {
	existing := rosterOf(3)
	cases := map[string]models.EnrollmentCandidate{
		"new email":     {Email: "fresh@campus.edu", Batch: "Morning", AcademicYear: "2025-2026"},
		"other batch":   {Email: "student1@campus.edu", Batch: "Evening", AcademicYear: "2025-2026"},
		"other year":    {Email: "student1@campus.edu", Batch: "Morning", AcademicYear: "2026-2027"},
		"email case":    {Email: "STUDENT1@campus.edu", Batch: "Morning", AcademicYear: "2025-2026"},
		"batch case":    {Email: "student1@campus.edu", Batch: "morning", AcademicYear: "2025-2026"},
		"unused triple": {Email: "student1@campus.edu", Batch: "Weekend", AcademicYear: "2027-2028"},
	}
	for name, c := range cases {
		assert.NoError(t, ValidateEnrollment(c, existing, 50), name)
	}
	assert.NoError(t, ValidateEnrollment(models.EnrollmentCandidate{Email: "a@x.com"}, nil, 1))
}

func TestValidateEnrollmentScenarioCapacityTwo(t *testing.T) {
	var roster []models.Student
	a := models.Student{ID: "STD-2025-1111", Name: "A", Email: "a@x.com", Batch: "Morning", AcademicYear: "2025-2026"}
	assert.NoError(t, ValidateEnrollment(models.EnrollmentCandidate{Email: a.Email, Batch: a.Batch, AcademicYear: a.AcademicYear}, roster, 2))
	roster = append(roster, a)

	b := models.EnrollmentCandidate{Name: "B", Email: "b@x.com", Batch: "Morning", AcademicYear: "2025-2026"}
	assert.NoError(t, ValidateEnrollment(b, roster, 2))
	roster = append(roster, models.Student{ID: "STD-2025-2222", Name: b.Name, Email: b.Email, Batch: b.Batch, AcademicYear: b.AcademicYear})

	err := ValidateEnrollment(models.EnrollmentCandidate{Email: "c@x.com", Batch: "Weekend", AcademicYear: "2026-2027"}, roster, 2)
	assert.True(t, errors.Is(err, appErrors.ErrCapacityExceeded))
}
