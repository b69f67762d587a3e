package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixalara/placement-service/internal/services"
	"github.com/pixalara/placement-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	BaseHandler
	service services.ExportService
}

func NewExportHandler(service services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ExportStudents downloads the student roster as an xlsx workbook.
func (h *ExportHandler) ExportStudents(c *gin.Context) {
	h.LogRequest(c, "exporting students")

	data, filename, err := h.service.ExportStudents(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.writeWorkbook(c, data, filename)
}

// ExportJobSeekers downloads the placement pipeline as an xlsx workbook.
func (h *ExportHandler) ExportJobSeekers(c *gin.Context) {
	h.LogRequest(c, "exporting job seekers")

	data, filename, err := h.service.ExportJobSeekers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.writeWorkbook(c, data, filename)
}

func (h *ExportHandler) writeWorkbook(c *gin.Context, data []byte, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
