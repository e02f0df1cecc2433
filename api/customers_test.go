package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/registry"
	"github.com/Domenick1991/flightbooking/internal/service/customers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCustomerUseCase struct {
	mock.Mock
}

func (m *MockCustomerUseCase) AddCustomer(ctx context.Context, input customers.AddCustomerInput) (*domain.Customer, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerUseCase) RemoveCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerUseCase) List(ctx context.Context, activeOnly bool) ([]domain.Customer, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerUseCase) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerUseCase) FindByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerUseCase) Details(ctx context.Context, id int64) (*registry.CustomerDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.CustomerDetails), args.Error(1)
}

func TestCustomerHandler_create(t *testing.T) {
	mockService := &MockCustomerUseCase{}
	handler := NewCustomerHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/customers", createCustomerRequest{
		Name:  "Jane",
		Age:   30,
		Phone: "0771234567",
		Email: "jane@example.com",
	})

	input := customers.AddCustomerInput{Name: "Jane", Age: 30, Phone: "0771234567", Email: "jane@example.com"}
	mockService.On("AddCustomer", c.Request.Context(), input).
		Return(&domain.Customer{ID: 1, Name: "Jane", Age: 30, Phone: "0771234567", Email: "jane@example.com"}, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response domain.Customer
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), response.ID)

	mockService.AssertExpectations(t)
}

func TestCustomerHandler_create_Duplicate(t *testing.T) {
	mockService := &MockCustomerUseCase{}
	handler := NewCustomerHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/customers", createCustomerRequest{
		Name:  "Jane",
		Phone: "0771234567",
		Email: "jane@example.com",
	})

	dup := domain.Reject(domain.ReasonDuplicateCustomer, "customer already exists")
	mockService.On("AddCustomer", c.Request.Context(), mock.Anything).Return(nil, dup)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"customer already exists","reason":"DUPLICATE_CUSTOMER"}`, w.Body.String())
}

func TestCustomerHandler_create_InvalidEmail(t *testing.T) {
	mockService := &MockCustomerUseCase{}
	handler := NewCustomerHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/customers", createCustomerRequest{Name: "Jane", Phone: "077", Email: "nope"})

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "AddCustomer", mock.Anything, mock.Anything)
}

func TestCustomerHandler_list_ByPhone(t *testing.T) {
	mockService := &MockCustomerUseCase{}
	handler := NewCustomerHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/customers?phone=0771234567", nil)

	mockService.On("FindByPhone", c.Request.Context(), "0771234567").Return(&domain.Customer{ID: 3, Phone: "0771234567"}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.Customer
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)
	assert.Equal(t, int64(3), response[0].ID)

	mockService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestCustomerHandler_list_Active(t *testing.T) {
	mockService := &MockCustomerUseCase{}
	handler := NewCustomerHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/customers?active=true", nil)

	mockService.On("List", c.Request.Context(), true).Return([]domain.Customer{{ID: 1}, {ID: 2}}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestCustomerHandler_details(t *testing.T) {
	mockService := &MockCustomerUseCase{}
	handler := NewCustomerHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/customers/1/details", nil)

	details := &registry.CustomerDetails{Customer: domain.Customer{ID: 1, Name: "Jane"}}
	mockService.On("Details", c.Request.Context(), int64(1)).Return(details, nil)

	handler.details(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestCustomerHandler_remove(t *testing.T) {
	mockService := &MockCustomerUseCase{}
	handler := NewCustomerHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("DELETE", "/customers/1", nil)

	mockService.On("RemoveCustomer", c.Request.Context(), int64(1)).Return(&domain.Customer{ID: 1, Removed: true}, nil)

	handler.remove(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"removed":true`)
}
