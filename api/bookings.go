package api

import (
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
	authz   *Authorizer
}

type createBookingRequest struct {
	CustomerID int64 `json:"customer_id" binding:"required"`
	FlightID   int64 `json:"flight_id" binding:"required"`
}

type editBookingRequest struct {
	FlightID int64 `json:"flight_id" binding:"required"`
}

func NewBookingHandler(service booking.BookingUseCase, authz *Authorizer) *BookingHandler {
	return &BookingHandler{service: service, authz: authz}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.authz.Require(auth.RoleCustomer), h.create)
	router.POST("/cancel", h.authz.Require(auth.RoleCustomer), h.cancel)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.authz.Require(auth.RoleCustomer), h.edit)
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.AddBooking(c.Request.Context(), booking.AddBookingInput{
		CustomerID: req.CustomerID,
		FlightID:   req.FlightID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.CancelBooking(c.Request.Context(), booking.CancelBookingInput{
		CustomerID: req.CustomerID,
		FlightID:   req.FlightID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req editBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.EditBooking(c.Request.Context(), booking.EditBookingInput{
		BookingID: id,
		FlightID:  req.FlightID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
