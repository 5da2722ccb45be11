package repository

import (
	"context"
	"sync"

	"github.com/noah-isme/campus-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/campus-enrollment-api/pkg/errors"
)

// StudentRepository holds accepted enrollments in memory for the process lifetime.
// Records are kept in insertion order and are never updated or removed.
type StudentRepository struct {
	mu       sync.RWMutex
	students []models.Student
}

// NewStudentRepository constructs an empty StudentRepository.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{}
}

// Append adds a student to the end of the roster. Callers validate beforehand.
func (r *StudentRepository) Append(_ context.Context, student models.Student) error {
	r.mu.Lock()
	r.students = append(r.students, student)
	r.mu.Unlock()
	return nil
}

// All returns a copy of the roster in insertion order.
func (r *StudentRepository) All(_ context.Context) ([]models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Student, len(r.students))
	copy(out, r.students)
	return out, nil
}

// Count returns the number of accepted enrollments.
func (r *StudentRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.students), nil
}

// FindByID returns the first student carrying id.
func (r *StudentRepository) FindByID(_ context.Context, id string) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.students {
		if r.students[i].ID == id {
			student := r.students[i]
			return &student, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
}
