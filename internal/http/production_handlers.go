package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emontalvo/fincaops/internal/model"
	"github.com/emontalvo/fincaops/internal/service"
)

func (h *Handler) listBagging(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	records, err := h.production.ListBagging(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]baggingResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toBaggingResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

type createBaggingRequest struct {
	FarmID       uuid.UUID `json:"finca_id" binding:"required"`
	Week         int       `json:"semana" binding:"required"`
	Year         int       `json:"anio" binding:"required"`
	TapeColor    string    `json:"color_cinta" binding:"required"`
	BagCount     int       `json:"fundas" binding:"required"`
	FallenPlants int       `json:"plantas_caidas"`
	Date         string    `json:"fecha" binding:"required"`
	Notes        string    `json:"observaciones"`
}

func (h *Handler) createBagging(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	var req createBaggingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fecha"})
		return
	}
	record, err := h.production.CreateBagging(c.Request.Context(), principal, service.CreateBaggingInput{
		FarmID:       req.FarmID,
		Week:         req.Week,
		Year:         req.Year,
		TapeColor:    model.TapeColor(req.TapeColor),
		BagCount:     req.BagCount,
		FallenPlants: req.FallenPlants,
		Date:         date,
		Notes:        req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBaggingResponse(*record))
}

type updateBaggingRequest struct {
	Week         *int    `json:"semana"`
	Year         *int    `json:"anio"`
	TapeColor    *string `json:"color_cinta"`
	BagCount     *int    `json:"fundas"`
	FallenPlants *int    `json:"plantas_caidas"`
	Date         *string `json:"fecha"`
	Notes        *string `json:"observaciones"`
}

func (h *Handler) updateBagging(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateBaggingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fecha"})
		return
	}
	in := service.UpdateBaggingInput{
		Week:         req.Week,
		Year:         req.Year,
		BagCount:     req.BagCount,
		FallenPlants: req.FallenPlants,
		Date:         date,
		Notes:        req.Notes,
	}
	if req.TapeColor != nil {
		tc := model.TapeColor(*req.TapeColor)
		in.TapeColor = &tc
	}
	record, err := h.production.UpdateBagging(c.Request.Context(), principal, id, in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBaggingResponse(*record))
}

func (h *Handler) deleteBagging(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.production.DeleteBagging(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listHarvests(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	records, err := h.production.ListHarvests(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]harvestResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toHarvestResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

type createHarvestRequest struct {
	FarmID          uuid.UUID `json:"finca_id" binding:"required"`
	Week            int       `json:"semana" binding:"required"`
	Year            int       `json:"anio" binding:"required"`
	BunchesCut      int       `json:"racimos_cortados" binding:"required"`
	BunchesRejected int       `json:"racimos_rechazados"`
	BoxesProduced   int       `json:"cajas_producidas"`
	AverageWeight   float64   `json:"peso_promedio"`
	Caliber         float64   `json:"calibre"`
	Hands           int       `json:"manos"`
	Date            string    `json:"fecha" binding:"required"`
}

func (h *Handler) createHarvest(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	var req createHarvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fecha"})
		return
	}
	record, err := h.production.CreateHarvest(c.Request.Context(), principal, service.CreateHarvestInput{
		FarmID:          req.FarmID,
		Week:            req.Week,
		Year:            req.Year,
		BunchesCut:      req.BunchesCut,
		BunchesRejected: req.BunchesRejected,
		BoxesProduced:   req.BoxesProduced,
		AverageWeight:   req.AverageWeight,
		Caliber:         req.Caliber,
		Hands:           req.Hands,
		Date:            date,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toHarvestResponse(*record))
}

type updateHarvestRequest struct {
	Week            *int     `json:"semana"`
	Year            *int     `json:"anio"`
	BunchesCut      *int     `json:"racimos_cortados"`
	BunchesRejected *int     `json:"racimos_rechazados"`
	BoxesProduced   *int     `json:"cajas_producidas"`
	AverageWeight   *float64 `json:"peso_promedio"`
	Caliber         *float64 `json:"calibre"`
	Hands           *int     `json:"manos"`
	Date            *string  `json:"fecha"`
}

func (h *Handler) updateHarvest(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateHarvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fecha"})
		return
	}
	record, err := h.production.UpdateHarvest(c.Request.Context(), principal, id, service.UpdateHarvestInput{
		Week:            req.Week,
		Year:            req.Year,
		BunchesCut:      req.BunchesCut,
		BunchesRejected: req.BunchesRejected,
		BoxesProduced:   req.BoxesProduced,
		AverageWeight:   req.AverageWeight,
		Caliber:         req.Caliber,
		Hands:           req.Hands,
		Date:            date,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHarvestResponse(*record))
}

func (h *Handler) deleteHarvest(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.production.DeleteHarvest(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listTapeRecoveries(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	records, err := h.production.ListTapeRecoveries(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]tapeRecoveryResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toTapeRecoveryResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

type createTapeRecoveryRequest struct {
	FarmID           uuid.UUID `json:"finca_id" binding:"required"`
	Week             int       `json:"semana" binding:"required"`
	Year             int       `json:"anio" binding:"required"`
	InitialBags      int       `json:"fundas_iniciales" binding:"required"`
	FirstCalHarvest  int       `json:"primera_cal_cosecha"`
	FirstCalBalance  int       `json:"primera_cal_saldo"`
	SecondCalHarvest int       `json:"segunda_cal_cosecha"`
	SecondCalBalance int       `json:"segunda_cal_saldo"`
	ThirdCalHarvest  int       `json:"tercera_cal_cosecha"`
	ThirdCalBalance  int       `json:"tercera_cal_saldo"`
	FinalSweep       int       `json:"barrida_final"`
	Date             string    `json:"fecha" binding:"required"`
}

func (h *Handler) createTapeRecovery(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	var req createTapeRecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fecha"})
		return
	}
	record, err := h.production.CreateTapeRecovery(c.Request.Context(), principal, service.CreateTapeRecoveryInput{
		FarmID:           req.FarmID,
		Week:             req.Week,
		Year:             req.Year,
		InitialBags:      req.InitialBags,
		FirstCalHarvest:  req.FirstCalHarvest,
		FirstCalBalance:  req.FirstCalBalance,
		SecondCalHarvest: req.SecondCalHarvest,
		SecondCalBalance: req.SecondCalBalance,
		ThirdCalHarvest:  req.ThirdCalHarvest,
		ThirdCalBalance:  req.ThirdCalBalance,
		FinalSweep:       req.FinalSweep,
		Date:             date,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTapeRecoveryResponse(*record))
}

type updateTapeRecoveryRequest struct {
	Week             *int    `json:"semana"`
	Year             *int    `json:"anio"`
	InitialBags      *int    `json:"fundas_iniciales"`
	FirstCalHarvest  *int    `json:"primera_cal_cosecha"`
	FirstCalBalance  *int    `json:"primera_cal_saldo"`
	SecondCalHarvest *int    `json:"segunda_cal_cosecha"`
	SecondCalBalance *int    `json:"segunda_cal_saldo"`
	ThirdCalHarvest  *int    `json:"tercera_cal_cosecha"`
	ThirdCalBalance  *int    `json:"tercera_cal_saldo"`
	FinalSweep       *int    `json:"barrida_final"`
	Date             *string `json:"fecha"`
}

func (h *Handler) updateTapeRecovery(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateTapeRecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fecha"})
		return
	}
	record, err := h.production.UpdateTapeRecovery(c.Request.Context(), principal, id, service.UpdateTapeRecoveryInput{
		Week:             req.Week,
		Year:             req.Year,
		InitialBags:      req.InitialBags,
		FirstCalHarvest:  req.FirstCalHarvest,
		FirstCalBalance:  req.FirstCalBalance,
		SecondCalHarvest: req.SecondCalHarvest,
		SecondCalBalance: req.SecondCalBalance,
		ThirdCalHarvest:  req.ThirdCalHarvest,
		ThirdCalBalance:  req.ThirdCalBalance,
		FinalSweep:       req.FinalSweep,
		Date:             date,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTapeRecoveryResponse(*record))
}

func (h *Handler) deleteTapeRecovery(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.production.DeleteTapeRecovery(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
