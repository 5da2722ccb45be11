package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-enrollment-api/internal/models"
	"github.com/noah-isme/campus-enrollment-api/internal/service"
	appErrors "github.com/noah-isme/campus-enrollment-api/pkg/errors"
)

type fakeEnrollmentSrv struct {
	enrollResult *models.EnrollmentResult
	enrollErr    error
	lastRequest  service.EnrollStudentRequest
	roster       *models.RosterView
	lastQuery    string
	student      *models.Student
	getErr       error
	stats        *models.EnrollmentStats
	recent       []models.Student
	lastLimit    int
}

func (f *fakeEnrollmentSrv) Enroll(_ context.Context, req service.EnrollStudentRequest) (*models.EnrollmentResult, error) {
	f.lastRequest = req
	return f.enrollResult, f.enrollErr
}

func (f *fakeEnrollmentSrv) Roster(_ context.Context, query string) (*models.RosterView, error) {
	f.lastQuery = query
	return f.roster, nil
}

func (f *fakeEnrollmentSrv) Get(context.Context, string) (*models.Student, error) {
	return f.student, f.getErr
}

func (f *fakeEnrollmentSrv) Stats(context.Context) (*models.EnrollmentStats, error) {
	return f.stats, nil
}

func (f *fakeEnrollmentSrv) Recent(_ context.Context, limit int) ([]models.Student, error) {
	f.lastLimit = limit
	return f.recent, nil
}

func (f *fakeEnrollmentSrv) Options(context.Context) models.EnrollmentOptions {
	return models.EnrollmentOptions{Batches: []string{"Morning"}, AcademicYears: []string{"2025-2026"}}
}

type errorEnvelope struct {
	Error struct {
		Code        string `json:"code"`
		Message     string `json:"message"`
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"error"`
}

func postJSON(t *testing.T, h gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/enrollments", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h(c)
	return rec
}

func TestEnrollmentHandlerCreateSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeEnrollmentSrv{enrollResult: &models.EnrollmentResult{
		Student:      models.Student{ID: "STD-2025-4321", Name: "Ada"},
		Notification: models.Notification{Title: "Student enrolled successfully", Description: "Ada has been enrolled with ID: STD-2025-4321"},
	}}
	h := NewEnrollmentHandler(srv)

	rec := postJSON(t, h.Create, `{"name":"Ada","email":"ada@x.com","phone":"0812345678","batch":"Morning","academic_year":"2025-2026"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "2025-2026", srv.lastRequest.AcademicYear)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	notification := envelope.Data["notification"].(map[string]interface{})
	assert.Contains(t, notification["description"], "STD-2025-4321")
}

func TestEnrollmentHandlerCreateInvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewEnrollmentHandler(&fakeEnrollmentSrv{})
	rec := postJSON(t, h.Create, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnrollmentHandlerCreateBusinessRuleFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{appErrors.ErrCapacityExceeded, http.StatusUnprocessableEntity, "CAPACITY_EXCEEDED"},
		{appErrors.ErrDuplicateEnrollment, http.StatusConflict, "DUPLICATE_ENROLLMENT"},
	}
	for _, tc := range cases {
		h := NewEnrollmentHandler(&fakeEnrollmentSrv{enrollErr: tc.err})
		rec := postJSON(t, h.Create, `{"name":"Ada","email":"ada@x.com","phone":"0812345678","batch":"Morning","academic_year":"2025-2026"}`)
		assert.Equal(t, tc.status, rec.Code)
		var envelope errorEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, tc.code, envelope.Error.Code)
		assert.NotEmpty(t, envelope.Error.Message)
	}
}

func TestEnrollmentHandlerRosterModes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeEnrollmentSrv{roster: &models.RosterView{Query: "jo", Total: 1, Results: []models.Student{{ID: "STD-2025-1001"}}}}
	h := NewEnrollmentHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/students?q=jo", nil)
	h.Roster(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jo", srv.lastQuery)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "search", envelope.Meta["mode"])
}

func TestEnrollmentHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewEnrollmentHandler(&fakeEnrollmentSrv{getErr: appErrors.Clone(appErrors.ErrNotFound, "student not found")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/students/STD-2025-0000", nil)
	c.Params = gin.Params{{Key: "id", Value: "STD-2025-0000"}}
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEnrollmentHandlerRecentLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeEnrollmentSrv{}
	h := NewEnrollmentHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/enrollments/recent?limit=5", nil)
	h.Recent(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, srv.lastLimit)

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/enrollments/recent?limit=abc", nil)
	h.Recent(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type responseEnvelope struct {
	Data map[string]interface{} `json:"data"`
	Meta map[string]interface{} `json:"meta"`
}
