package api

import (
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/service/fleet"
	"github.com/gin-gonic/gin"
)

type AirlineHandler struct {
	service fleet.FleetUseCase
	authz   *Authorizer
}

type createAirlineRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func NewAirlineHandler(service fleet.FleetUseCase, authz *Authorizer) *AirlineHandler {
	return &AirlineHandler{service: service, authz: authz}
}

func (h *AirlineHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.authz.Require(auth.RoleAdmin), h.create)
	router.GET("/:id", h.get)
}

func (h *AirlineHandler) list(c *gin.Context) {
	airlines, err := h.service.ListAirlines(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airlines)
}

func (h *AirlineHandler) create(c *gin.Context) {
	var req createAirlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	airline, err := h.service.AddAirline(c.Request.Context(), fleet.AddAirlineInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airline)
}

func (h *AirlineHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	airline, err := h.service.GetAirline(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airline)
}
