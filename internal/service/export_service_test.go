package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/campus-enrollment-api/pkg/errors"
)

func TestExportServiceCSVGroupsRows(t *testing.T) {
	svc := NewExportService(&mockStudentStore{students: mixedRoster()}, nil)
	svc.now = func() time.Time { return fixedNow }

	file, err := svc.Roster(context.Background(), "CSV")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "roster-20250901-083000.csv", file.Filename)

	lines := strings.Split(strings.TrimSpace(string(file.Payload)), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "ID,Name,Email,Phone,Batch,Academic Year,Enrolled On", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "STD-2025-1001,"))
	assert.True(t, strings.HasPrefix(lines[2], "STD-2025-1004,"))
	assert.True(t, strings.HasPrefix(lines[3], "STD-2025-1003,"))
	assert.True(t, strings.HasPrefix(lines[4], "STD-2025-1002,"))
}

func TestExportServicePDF(t *testing.T) {
	svc := NewExportService(&mockStudentStore{students: mixedRoster()}, nil)
	file, err := svc.Roster(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Payload, []byte("%PDF-")))
}

func TestExportServiceDefaultsToCSV(t *testing.T) {
	svc := NewExportService(&mockStudentStore{}, nil)
	file, err := svc.Roster(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	svc := NewExportService(&mockStudentStore{}, nil)
	_, err := svc.Roster(context.Background(), "xlsx")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
