package models

// CapacityLevel buckets how full the roster is.
type CapacityLevel string

// Capacity levels used by the enrollment counter.
const (
	CapacityLevelOK       CapacityLevel = "ok"
	CapacityLevelWarning  CapacityLevel = "warning"
	CapacityLevelCritical CapacityLevel = "critical"
)

// EnrollmentStats feeds the "N / maximum" counter and statistics panel.
type EnrollmentStats struct {
	Current        int           `json:"current"`
	Maximum        int           `json:"maximum"`
	AvailableSlots int           `json:"available_slots"`
	Percentage     float64       `json:"percentage"`
	Level          CapacityLevel `json:"level"`
	Label          string        `json:"label"`
}

// EnrollmentOptions lists the selectable batch and academic year values.
type EnrollmentOptions struct {
	Batches       []string `json:"batches"`
	AcademicYears []string `json:"academic_years"`
}
