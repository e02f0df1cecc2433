package api

import (
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/service/fleet"
	"github.com/gin-gonic/gin"
)

type PlaneHandler struct {
	service fleet.FleetUseCase
	authz   *Authorizer
}

type createPlaneRequest struct {
	Model     string `json:"model" binding:"required"`
	Capacity  int    `json:"capacity" binding:"required"`
	AirlineID int64  `json:"airline_id" binding:"required"`
}

type setCapacityRequest struct {
	Capacity int `json:"capacity" binding:"required"`
}

func NewPlaneHandler(service fleet.FleetUseCase, authz *Authorizer) *PlaneHandler {
	return &PlaneHandler{service: service, authz: authz}
}

func (h *PlaneHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.authz.Require(auth.RoleAirline), h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id/capacity", h.authz.Require(auth.RoleAirline), h.setCapacity)
}

func (h *PlaneHandler) list(c *gin.Context) {
	planes, err := h.service.ListPlanes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, planes)
}

func (h *PlaneHandler) create(c *gin.Context) {
	var req createPlaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plane, err := h.service.AddPlane(c.Request.Context(), fleet.AddPlaneInput{
		Model:     req.Model,
		Capacity:  req.Capacity,
		AirlineID: req.AirlineID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plane)
}

func (h *PlaneHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	plane, err := h.service.GetPlane(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, plane)
}

func (h *PlaneHandler) setCapacity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req setCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plane, err := h.service.SetPlaneCapacity(c.Request.Context(), id, req.Capacity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, plane)
}
