package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/campus-enrollment-api/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	return c, rec
}

func TestJSONWithMeta(t *testing.T) {
	c, rec := newContext()
	JSON(c, http.StatusOK, map[string]int{"total": 2}, map[string]interface{}{"mode": "grouped"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["data"]["total"])
	assert.Equal(t, "grouped", body["meta"]["mode"])
	assert.NotContains(t, body, "error")
}

func TestCreated(t *testing.T) {
	c, rec := newContext()
	Created(c, map[string]string{"id": "STD-2025-1234"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"STD-2025-1234"}}`, rec.Body.String())
}

func TestErrorUsesTypedStatus(t *testing.T) {
	c, rec := newContext()
	Error(c, appErrors.ErrDuplicateEnrollment)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Error struct {
			Code        string `json:"code"`
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "DUPLICATE_ENROLLMENT", body.Error.Code)
	assert.Equal(t, "Duplicate enrollment detected", body.Error.Title)
	assert.Equal(t, "This student is already enrolled in this batch and academic year.", body.Error.Description)

	c, rec = newContext()
	Error(c, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestAttachment(t *testing.T) {
	c, rec := newContext()
	Attachment(c, "roster-20250901-083000.csv", "text/csv", []byte("a,b\n"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="roster-20250901-083000.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, "4", rec.Header().Get("Content-Length"))
	assert.Equal(t, "a,b\n", rec.Body.String())
}
