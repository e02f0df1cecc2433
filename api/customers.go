package api

import (
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/customers"
	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	service customers.CustomerUseCase
	authz   *Authorizer
}

type createCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Age   int    `json:"age" binding:"gte=0"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

func NewCustomerHandler(service customers.CustomerUseCase, authz *Authorizer) *CustomerHandler {
	return &CustomerHandler{service: service, authz: authz}
}

func (h *CustomerHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.authz.Require(auth.RoleCustomer), h.create)
	router.GET("/:id", h.get)
	router.GET("/:id/details", h.details)
	router.DELETE("/:id", h.authz.Require(auth.RoleCustomer), h.remove)
}

// list answers ?phone= with at most one customer.
func (h *CustomerHandler) list(c *gin.Context) {
	ctx := c.Request.Context()
	if phone := c.Query("phone"); phone != "" {
		customer, err := h.service.FindByPhone(ctx, phone)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, []domain.Customer{*customer})
		return
	}

	list, err := h.service.List(ctx, c.Query("active") == "true")
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CustomerHandler) create(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.service.AddCustomer(c.Request.Context(), customers.AddCustomerInput{
		Name:  req.Name,
		Age:   req.Age,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	customer, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) details(c *gin.Context) {
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

func (h *CustomerHandler) remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	customer, err := h.service.RemoveCustomer(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}
