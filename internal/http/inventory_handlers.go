package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emontalvo/fincaops/internal/model"
	"github.com/emontalvo/fincaops/internal/service"
)

func (h *Handler) listSupplies(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	supplies, err := h.inventory.ListSupplies(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]supplyResponse, 0, len(supplies))
	for _, s := range supplies {
		out = append(out, toSupplyResponse(s))
	}
	c.JSON(http.StatusOK, out)
}

// supplyBody serializes a degraded-success result: the write landed
// but the alert refresh failed, and the client should know both.
func supplyBody(res *service.SupplyResult) gin.H {
	body := gin.H{"insumo": toSupplyResponse(*res.Supply)}
	if res.AlertErr != nil {
		body["alerta_error"] = res.AlertErr.Error()
	}
	return body
}

type createSupplyRequest struct {
	FarmID       *uuid.UUID `json:"finca_id"`
	Name         string     `json:"nombre" binding:"required"`
	Category     string     `json:"categoria" binding:"required"`
	Supplier     string     `json:"proveedor"`
	Unit         string     `json:"unidad" binding:"required"`
	CurrentStock float64    `json:"stock_actual"`
	MinimumStock float64    `json:"stock_minimo"`
	MaximumStock float64    `json:"stock_maximo" binding:"required"`
	UnitPrice    float64    `json:"precio_unitario"`
	ExpiryDate   *string    `json:"fecha_caducidad"`
}

func (h *Handler) createSupply(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	var req createSupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expiry, err := parseOptionalDate(req.ExpiryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fecha_caducidad"})
		return
	}
	res, err := h.inventory.CreateSupply(c.Request.Context(), principal, service.CreateSupplyInput{
		FarmID:       req.FarmID,
		Name:         req.Name,
		Category:     model.SupplyCategory(req.Category),
		Supplier:     req.Supplier,
		Unit:         model.MeasureUnit(req.Unit),
		CurrentStock: req.CurrentStock,
		MinimumStock: req.MinimumStock,
		MaximumStock: req.MaximumStock,
		UnitPrice:    req.UnitPrice,
		ExpiryDate:   expiry,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplyBody(res))
}

type updateSupplyRequest struct {
	Name         *string  `json:"nombre"`
	Category     *string  `json:"categoria"`
	Supplier     *string  `json:"proveedor"`
	Unit         *string  `json:"unidad"`
	CurrentStock *float64 `json:"stock_actual"`
	MinimumStock *float64 `json:"stock_minimo"`
	MaximumStock *float64 `json:"stock_maximo"`
	UnitPrice    *float64 `json:"precio_unitario"`
	ExpiryDate   *string  `json:"fecha_caducidad"`
}

func (h *Handler) updateSupply(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateSupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expiry, err := parseOptionalDate(req.ExpiryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fecha_caducidad"})
		return
	}
	in := service.UpdateSupplyInput{
		Name:         req.Name,
		Supplier:     req.Supplier,
		CurrentStock: req.CurrentStock,
		MinimumStock: req.MinimumStock,
		MaximumStock: req.MaximumStock,
		UnitPrice:    req.UnitPrice,
		ExpiryDate:   expiry,
	}
	if req.Category != nil {
		cat := model.SupplyCategory(*req.Category)
		in.Category = &cat
	}
	if req.Unit != nil {
		u := model.MeasureUnit(*req.Unit)
		in.Unit = &u
	}
	res, err := h.inventory.UpdateSupply(c.Request.Context(), principal, id, in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplyBody(res))
}

func (h *Handler) deleteSupply(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.inventory.DeleteSupply(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) generatePurchaseOrder(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	res, err := h.inventory.GeneratePurchaseOrder(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplyBody(res))
}

func (h *Handler) listMovements(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	movements, err := h.inventory.ListMovements(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]movementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	c.JSON(http.StatusOK, out)
}

type createMovementRequest struct {
	SupplyID uuid.UUID `json:"insumo_id" binding:"required"`
	Type     string    `json:"tipo" binding:"required"`
	Quantity float64   `json:"cantidad" binding:"required"`
	Date     string    `json:"fecha" binding:"required"`
	Reason   string    `json:"motivo"`
}

func (h *Handler) createMovement(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	var req createMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fecha"})
		return
	}
	res, err := h.inventory.CreateMovement(c.Request.Context(), principal, service.CreateMovementInput{
		SupplyID: req.SupplyID,
		Type:     model.MovementType(req.Type),
		Quantity: req.Quantity,
		Date:     date,
		Reason:   req.Reason,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	body := gin.H{
		"movimiento": toMovementResponse(*res.Movement),
		"insumo":     toSupplyResponse(*res.Supply),
	}
	if res.AlertErr != nil {
		body["alerta_error"] = res.AlertErr.Error()
	}
	c.JSON(http.StatusCreated, body)
}
