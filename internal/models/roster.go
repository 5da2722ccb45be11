package models

import "encoding/json"

// YearGroup lists the students of one academic year within a batch, in enrollment order.
type YearGroup struct {
	AcademicYear string    `json:"academic_year"`
	Count        int       `json:"count"`
	Students     []Student `json:"students"`
}

// BatchGroup holds the academic years seen for a batch, in first-seen order.
type BatchGroup struct {
	Batch string      `json:"batch"`
	Years []YearGroup `json:"years"`
}

// RosterView is what the roster screen renders: either the grouped view or search results.
type RosterView struct {
	Query   string       `json:"query,omitempty"`
	Total   int          `json:"total"`
	Groups  []BatchGroup `json:"groups,omitempty"`
	Results []Student    `json:"results,omitempty"`
}

// Searching reports whether the view carries search results rather than groups.
func (v RosterView) Searching() bool {
	return v.Query != ""
}

// MarshalJSON always emits the collection for the current mode, empty or not.
func (v RosterView) MarshalJSON() ([]byte, error) {
	if v.Searching() {
		results := v.Results
		if results == nil {
			results = []Student{}
		}
		return json.Marshal(struct {
			Query   string    `json:"query"`
			Total   int       `json:"total"`
			Results []Student `json:"results"`
		}{v.Query, v.Total, results})
	}
	groups := v.Groups
	if groups == nil {
		groups = []BatchGroup{}
	}
	return json.Marshal(struct {
		Total  int          `json:"total"`
		Groups []BatchGroup `json:"groups"`
	}{v.Total, groups})
}
