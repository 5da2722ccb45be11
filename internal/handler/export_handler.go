package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-enrollment-api/internal/service"
	"github.com/noah-isme/campus-enrollment-api/pkg/response"
)

type rosterExporter interface {
	Roster(ctx context.Context, format service.ExportFormat) (*service.ExportFile, error)
}

// ExportHandler serves roster downloads.
type ExportHandler struct {
	exports rosterExporter
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports rosterExporter) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Roster godoc
// @Summary Download the roster
// @Tags Students
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /students/export [get]
func (h *ExportHandler) Roster(c *gin.Context) {
	file, err := h.exports.Roster(c.Request.Context(), service.ExportFormat(c.Query("format")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
