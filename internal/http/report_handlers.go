package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emontalvo/fincaops/internal/service"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

func writeAttachment(c *gin.Context, contentType string, result *service.ExportResult) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func queryInt(c *gin.Context, name string) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	value, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return value, true
}

func (h *Handler) exportProduction(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	year, ok := queryInt(c, "anio")
	if !ok {
		return
	}
	result, err := h.reports.ExportProduction(c.Request.Context(), principal, year)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeAttachment(c, contentTypeXLSX, result)
}

func (h *Handler) exportPayroll(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	week, ok := queryInt(c, "semana")
	if !ok {
		return
	}
	year, ok := queryInt(c, "anio")
	if !ok {
		return
	}
	result, err := h.reports.ExportPayroll(c.Request.Context(), principal, week, year)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeAttachment(c, contentTypeXLSX, result)
}

func (h *Handler) exportPayrollReceipt(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := h.reports.ExportPayrollReceipt(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeAttachment(c, contentTypePDF, result)
}
