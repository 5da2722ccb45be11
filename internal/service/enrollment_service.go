package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/campus-enrollment-api/pkg/errors"
)

const (
	defaultRecentLimit = 3
	rosterCachePattern = "grouped:*"
)

type studentStore interface {
	Append(ctx context.Context, student models.Student) error
	All(ctx context.Context) ([]models.Student, error)
	Count(ctx context.Context) (int, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type studentIDGenerator interface {
	Generate(currentYear int) string
}

// EnrollStudentRequest is the enrollment form submission.
type EnrollStudentRequest struct {
	Name         string `json:"name" validate:"required,min=2"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,min=10"`
	Batch        string `json:"batch" validate:"required"`
	AcademicYear string `json:"academic_year" validate:"required"`
}

func (r EnrollStudentRequest) candidate() models.EnrollmentCandidate {
	return models.EnrollmentCandidate{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Batch:        r.Batch,
		AcademicYear: r.AcademicYear,
	}
}

// EnrollmentServiceConfig tunes roster limits and option sets.
type EnrollmentServiceConfig struct {
	MaxCapacity    int
	Batches        []string
	YearOptions    int
	RosterCacheTTL time.Duration
}

// EnrollmentServiceParams groups constructor dependencies.
type EnrollmentServiceParams struct {
	Repo      studentStore
	IDs       studentIDGenerator
	Cache     *CacheService
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
	Config    EnrollmentServiceConfig
	Now       func() time.Time
}

// EnrollmentService is the single writer for the roster. It serialises the
// snapshot, validation and append of each enrollment so capacity and duplicate
// checks always see the roster they are appended to.
type EnrollmentService struct {
	mu        sync.Mutex
	repo      studentStore
	ids       studentIDGenerator
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       EnrollmentServiceConfig
	now       func() time.Time
	instance  string
}

// NewEnrollmentService constructs an EnrollmentService with sane defaults.
func NewEnrollmentService(params EnrollmentServiceParams) *EnrollmentService {
	cfg := params.Config
	if cfg.MaxCapacity <= 0 {
		cfg.MaxCapacity = 50
	}
	if len(cfg.Batches) == 0 {
		cfg.Batches = []string{"Morning", "Afternoon", "Evening", "Weekend"}
	}
	if cfg.YearOptions <= 0 {
		cfg.YearOptions = 3
	}
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ids := params.IDs
	if ids == nil {
		ids = NewIDGenerator(0)
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &EnrollmentService{
		repo:      params.Repo,
		ids:       ids,
		cache:     params.Cache,
		metrics:   params.Metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       now,
		instance:  uuid.NewString(),
	}
}

// Capacity returns the configured maximum number of enrollments.
func (s *EnrollmentService) Capacity() int {
	return s.cfg.MaxCapacity
}

// Enroll checks the submission, applies the capacity and duplicate rules against the
// current roster and, on success, appends the student under a freshly generated id.
func (s *EnrollmentService) Enroll(ctx context.Context, req EnrollStudentRequest) (*models.EnrollmentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordEnrollment(OutcomeInvalid, s.count(ctx), s.cfg.MaxCapacity)
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	now := s.now()
	if err := s.checkOptions(req, now.Year()); err != nil {
		s.metrics.RecordEnrollment(OutcomeInvalid, s.count(ctx), s.cfg.MaxCapacity)
		return nil, err
	}

	student, size, err := s.accept(ctx, req.candidate(), now)
	if err != nil {
		switch {
		case errors.Is(err, appErrors.ErrCapacityExceeded):
			s.metrics.RecordEnrollment(OutcomeCapacity, size, s.cfg.MaxCapacity)
			s.logger.Info("enrollment rejected: capacity reached", zap.Int("roster_size", size), zap.Int("capacity", s.cfg.MaxCapacity))
		case errors.Is(err, appErrors.ErrDuplicateEnrollment):
			s.metrics.RecordEnrollment(OutcomeDuplicate, size, s.cfg.MaxCapacity)
			s.logger.Info("enrollment rejected: duplicate", zap.String("batch", req.Batch), zap.String("academic_year", req.AcademicYear))
		}
		return nil, err
	}

	_ = s.cache.Invalidate(ctx, rosterCachePattern)
	s.metrics.RecordEnrollment(OutcomeAccepted, size, s.cfg.MaxCapacity)
	s.logger.Info("student enrolled",
		zap.String("student_id", student.ID),
		zap.String("batch", student.Batch),
		zap.String("academic_year", student.AcademicYear),
		zap.Int("roster_size", size),
	)

	return &models.EnrollmentResult{
		Student: *student,
		Notification: models.Notification{
			Title:       "Student enrolled successfully",
			Description: fmt.Sprintf("%s has been enrolled with ID: %s", student.Name, student.ID),
		},
	}, nil
}

// accept runs the business rules and the append as one critical section. It returns the roster size afterwards.
func (s *EnrollmentService) accept(ctx context.Context, candidate models.EnrollmentCandidate, now time.Time) (*models.Student, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.All(ctx)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	if err := ValidateEnrollment(candidate, existing, s.cfg.MaxCapacity); err != nil {
		return nil, len(existing), err
	}

	student := models.Student{
		ID:             s.ids.Generate(now.Year()),
		Name:           candidate.Name,
		Email:          candidate.Email,
		Phone:          candidate.Phone,
		Batch:          candidate.Batch,
		AcademicYear:   candidate.AcademicYear,
		EnrollmentDate: now.UTC(),
	}
	if err := s.repo.Append(ctx, student); err != nil {
		return nil, len(existing), appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store enrollment")
	}
	return &student, len(existing) + 1, nil
}

func (s *EnrollmentService) checkOptions(req EnrollStudentRequest, year int) error {
	if !contains(s.cfg.Batches, req.Batch) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("batch must be one of: %s", strings.Join(s.cfg.Batches, ", ")))
	}
	years := AcademicYearOptions(year, s.cfg.YearOptions)
	if !contains(years, req.AcademicYear) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("academic_year must be one of: %s", strings.Join(years, ", ")))
	}
	return nil
}

// Roster returns the grouped roster for an empty query and search results otherwise.
func (s *EnrollmentService) Roster(ctx context.Context, query string) (*models.RosterView, error) {
	students, err := s.repo.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}

	if query != "" {
		results := SearchStudents(students, query)
		return &models.RosterView{Query: query, Total: len(results), Results: results}, nil
	}

	// The roster only grows, so its length identifies a snapshot within this process.
	key := fmt.Sprintf("grouped:%s:%d", s.instance, len(students))
	var groups []models.BatchGroup
	if hit, _ := s.cache.Get(ctx, key, &groups); hit {
		return &models.RosterView{Total: len(students), Groups: groups}, nil
	}
	groups = GroupByBatchAndYear(students)
	_ = s.cache.Set(ctx, key, groups, s.cfg.RosterCacheTTL)
	return &models.RosterView{Total: len(students), Groups: groups}, nil
}

// Get returns a single enrolled student.
func (s *EnrollmentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Stats reports roster usage against capacity.
func (s *EnrollmentService) Stats(ctx context.Context) (*models.EnrollmentStats, error) {
	current, err := s.repo.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count roster")
	}
	return buildStats(current, s.cfg.MaxCapacity), nil
}

func buildStats(current, maximum int) *models.EnrollmentStats {
	pct := math.Min(float64(current*100)/float64(maximum), 100)
	level := models.CapacityLevelOK
	switch {
	case pct > 90:
		level = models.CapacityLevelCritical
	case pct > 70:
		level = models.CapacityLevelWarning
	}
	label := fmt.Sprintf("%d%% of maximum capacity", int(math.Round(pct)))
	if pct >= 100 {
		label = "Maximum capacity reached"
	}
	available := maximum - current
	if available < 0 {
		available = 0
	}
	return &models.EnrollmentStats{
		Current:        current,
		Maximum:        maximum,
		AvailableSlots: available,
		Percentage:     pct,
		Level:          level,
		Label:          label,
	}
}

// Recent returns up to limit of the latest enrollments, newest first.
func (s *EnrollmentService) Recent(ctx context.Context, limit int) ([]models.Student, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	students, err := s.repo.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	if limit > len(students) {
		limit = len(students)
	}
	recent := make([]models.Student, 0, limit)
	for i := len(students) - 1; i >= len(students)-limit; i-- {
		recent = append(recent, students[i])
	}
	return recent, nil
}

// Options lists the batch and academic year values accepted by Enroll.
func (s *EnrollmentService) Options(_ context.Context) models.EnrollmentOptions {
	return models.EnrollmentOptions{
		Batches:       append([]string(nil), s.cfg.Batches...),
		AcademicYears: AcademicYearOptions(s.now().Year(), s.cfg.YearOptions),
	}
}

func (s *EnrollmentService) count(ctx context.Context) int {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0
	}
	return n
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
