package service

import (
	"fmt"
	"strings"

	"github.com/noah-isme/campus-enrollment-api/internal/models"
)

// GroupByBatchAndYear groups students by batch, then academic year. Batches and years appear
// in the order they were first seen and students keep their roster order.
func GroupByBatchAndYear(students []models.Student) []models.BatchGroup {
	groups := make([]models.BatchGroup, 0)
	batchIdx := make(map[string]int)
	yearIdx := make(map[string]map[string]int)

	for _, s := range students {
		bi, ok := batchIdx[s.Batch]
		if !ok {
			bi = len(groups)
			batchIdx[s.Batch] = bi
			yearIdx[s.Batch] = make(map[string]int)
			groups = append(groups, models.BatchGroup{Batch: s.Batch})
		}
		yi, ok := yearIdx[s.Batch][s.AcademicYear]
		if !ok {
			yi = len(groups[bi].Years)
			yearIdx[s.Batch][s.AcademicYear] = yi
			groups[bi].Years = append(groups[bi].Years, models.YearGroup{AcademicYear: s.AcademicYear})
		}
		year := &groups[bi].Years[yi]
		year.Students = append(year.Students, s)
		year.Count = len(year.Students)
	}
	return groups
}

// SearchStudents returns the students whose name, id or email contains query, ignoring case.
// An empty query matches every student.
func SearchStudents(students []models.Student, query string) []models.Student {
	q := strings.ToLower(query)
	out := make([]models.Student, 0, len(students))
	for _, s := range students {
		if strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.ID), q) ||
			strings.Contains(strings.ToLower(s.Email), q) {
			out = append(out, s)
		}
	}
	return out
}

// AcademicYearOptions lists n consecutive year ranges starting at currentYear, e.g. "2025-2026".
func AcademicYearOptions(currentYear, n int) []string {
	opts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		opts = append(opts, fmt.Sprintf("%d-%d", currentYear+i, currentYear+i+1))
	}
	return opts
}
