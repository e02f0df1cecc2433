package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
	authz   *Authorizer
}

type createFlightRequest struct {
	FlightNumber   string `json:"flight_number" binding:"required"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	BasePriceCents int64  `json:"base_price_cents" binding:"gte=0"`
	PlaneID        int64  `json:"plane_id" binding:"required"`
	DepartureDate  string `json:"departure_date" binding:"required"`
}

func NewFlightHandler(service flights.FlightUseCase, authz *Authorizer) *FlightHandler {
	return &FlightHandler{service: service, authz: authz}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.authz.Require(auth.RoleAirline), h.create)
	router.GET("/:id", h.get)
	router.GET("/:id/details", h.details)
	router.DELETE("/:id", h.authz.Require(auth.RoleAirline), h.remove)
}

func (h *FlightHandler) list(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	flights, err := h.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	departure, err := time.Parse(time.DateOnly, req.DepartureDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be in YYYY-MM-DD format."})
		return
	}

	flight, err := h.service.AddFlight(c.Request.Context(), flights.AddFlightInput{
		FlightNumber:   req.FlightNumber,
		Origin:         req.Origin,
		Destination:    req.Destination,
		BasePriceCents: req.BasePriceCents,
		PlaneID:        req.PlaneID,
		DepartureDate:  departure,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) details(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	details, err := h.service.Details(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *FlightHandler) remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	flight, err := h.service.RemoveFlight(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}
