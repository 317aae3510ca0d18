package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emontalvo/fincaops/internal/http/middleware"
	"github.com/emontalvo/fincaops/internal/model"
	"github.com/emontalvo/fincaops/internal/service"
)

type Handler struct {
	production *service.ProductionService
	payroll    *service.PayrollService
	inventory  *service.InventoryService
	admin      *service.AdminService
	alerts     *service.AlertService
	reports    *service.ReportService
	log        zerolog.Logger
}

func NewHandler(
	production *service.ProductionService,
	payroll *service.PayrollService,
	inventory *service.InventoryService,
	admin *service.AdminService,
	alerts *service.AlertService,
	reports *service.ReportService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		production: production,
		payroll:    payroll,
		inventory:  inventory,
		admin:      admin,
		alerts:     alerts,
		reports:    reports,
		log:        log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/fincas", h.listFarms)
	protected.POST("/fincas", h.createFarm)
	protected.PUT("/fincas/:id", h.updateFarm)
	protected.DELETE("/fincas/:id", h.deleteFarm)

	protected.GET("/usuarios", h.listUsers)
	protected.POST("/usuarios", h.createUser)
	protected.PUT("/usuarios/:id", h.updateUser)
	protected.DELETE("/usuarios/:id", h.deleteUser)

	protected.GET("/enfundes", h.listBagging)
	protected.POST("/enfundes", h.createBagging)
	protected.PUT("/enfundes/:id", h.updateBagging)
	protected.DELETE("/enfundes/:id", h.deleteBagging)

	protected.GET("/cosechas", h.listHarvests)
	protected.POST("/cosechas", h.createHarvest)
	protected.PUT("/cosechas/:id", h.updateHarvest)
	protected.DELETE("/cosechas/:id", h.deleteHarvest)

	protected.GET("/recuperaciones", h.listTapeRecoveries)
	protected.POST("/recuperaciones", h.createTapeRecovery)
	protected.PUT("/recuperaciones/:id", h.updateTapeRecovery)
	protected.DELETE("/recuperaciones/:id", h.deleteTapeRecovery)

	protected.GET("/empleados", h.listEmployees)
	protected.POST("/empleados", h.createEmployee)
	protected.PUT("/empleados/:id", h.updateEmployee)
	protected.DELETE("/empleados/:id", h.deleteEmployee)

	protected.GET("/roles-pago", h.listPayrolls)
	protected.POST("/roles-pago", h.createPayroll)
	protected.PUT("/roles-pago/:id/estado", h.setPayrollStatus)
	protected.GET("/roles-pago/:id/recibo", h.exportPayrollReceipt)

	protected.GET("/prestamos", h.listLoans)
	protected.POST("/prestamos", h.createLoan)
	protected.PUT("/prestamos/:id", h.updateLoan)

	protected.GET("/insumos", h.listSupplies)
	protected.POST("/insumos", h.createSupply)
	protected.PUT("/insumos/:id", h.updateSupply)
	protected.DELETE("/insumos/:id", h.deleteSupply)
	protected.POST("/insumos/:id/orden-compra", h.generatePurchaseOrder)

	protected.GET("/movimientos-inventario", h.listMovements)
	protected.POST("/movimientos-inventario", h.createMovement)

	protected.GET("/alertas", h.listAlerts)
	protected.PUT("/alertas/:id/leida", h.markAlertRead)

	protected.GET("/reportes/produccion", h.exportProduction)
	protected.GET("/reportes/nomina", h.exportPayroll)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func principalOr401(c *gin.Context) (model.Principal, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
	}
	return principal, ok
}

func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("empty date")
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
