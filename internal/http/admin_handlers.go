package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emontalvo/fincaops/internal/model"
	"github.com/emontalvo/fincaops/internal/service"
)

func (h *Handler) listFarms(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	farms, err := h.admin.ListFarms(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]farmResponse, 0, len(farms))
	for _, f := range farms {
		out = append(out, toFarmResponse(f))
	}
	c.JSON(http.StatusOK, out)
}

type createFarmRequest struct {
	Name        string  `json:"nombre" binding:"required"`
	Location    string  `json:"ubicacion"`
	Hectares    float64 `json:"hectareas" binding:"required"`
	TotalPlants int     `json:"plantas_totales"`
	Variety     string  `json:"variedad"`
	Responsible string  `json:"responsable"`
	Phone       string  `json:"telefono"`
	Geometry    string  `json:"geometria"`
}

func (h *Handler) createFarm(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	var req createFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	farm, err := h.admin.CreateFarm(c.Request.Context(), principal, service.CreateFarmInput{
		Name:        model.FarmName(req.Name),
		Location:    req.Location,
		Hectares:    req.Hectares,
		TotalPlants: req.TotalPlants,
		Variety:     model.BananaVariety(req.Variety),
		Responsible: req.Responsible,
		Phone:       req.Phone,
		Geometry:    req.Geometry,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFarmResponse(*farm))
}

type updateFarmRequest struct {
	Location    *string  `json:"ubicacion"`
	Hectares    *float64 `json:"hectareas"`
	TotalPlants *int     `json:"plantas_totales"`
	Variety     *string  `json:"variedad"`
	Responsible *string  `json:"responsable"`
	Phone       *string  `json:"telefono"`
	Geometry    *string  `json:"geometria"`
	Active      *bool    `json:"activa"`
}

func (h *Handler) updateFarm(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := service.UpdateFarmInput{
		Location:    req.Location,
		Hectares:    req.Hectares,
		TotalPlants: req.TotalPlants,
		Responsible: req.Responsible,
		Phone:       req.Phone,
		Geometry:    req.Geometry,
		Active:      req.Active,
	}
	if req.Variety != nil {
		v := model.BananaVariety(*req.Variety)
		in.Variety = &v
	}
	farm, err := h.admin.UpdateFarm(c.Request.Context(), principal, id, in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFarmResponse(*farm))
}

func (h *Handler) deleteFarm(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.admin.DeleteFarm(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listUsers(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	users, err := h.admin.ListUsers(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	c.JSON(http.StatusOK, out)
}

type createUserRequest struct {
	Email          string     `json:"email" binding:"required"`
	Name           string     `json:"nombre" binding:"required"`
	Role           string     `json:"rol" binding:"required"`
	AssignedFarmID *uuid.UUID `json:"finca_asignada_id"`
	Phone          string     `json:"telefono"`
}

func (h *Handler) createUser(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.admin.CreateUser(c.Request.Context(), principal, service.CreateUserInput{
		Email:          req.Email,
		Name:           req.Name,
		Role:           model.Role(req.Role),
		AssignedFarmID: req.AssignedFarmID,
		Phone:          req.Phone,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(*user))
}

type updateUserRequest struct {
	Email          *string    `json:"email"`
	Name           *string    `json:"nombre"`
	Role           *string    `json:"rol"`
	AssignedFarmID *uuid.UUID `json:"finca_asignada_id"`
	Phone          *string    `json:"telefono"`
	Active         *bool      `json:"activo"`
}

func (h *Handler) updateUser(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := service.UpdateUserInput{
		Email:          req.Email,
		Name:           req.Name,
		AssignedFarmID: req.AssignedFarmID,
		Phone:          req.Phone,
		Active:         req.Active,
	}
	if req.Role != nil {
		r := model.Role(*req.Role)
		in.Role = &r
	}
	user, err := h.admin.UpdateUser(c.Request.Context(), principal, id, in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.admin.DeleteUser(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
