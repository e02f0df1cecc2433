package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) AddFlight(ctx context.Context, input flights.AddFlightInput) (*flights.FlightView, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flights.FlightView), args.Error(1)
}

func (m *MockFlightUseCase) RemoveFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) List(ctx context.Context, activeOnly bool) ([]flights.FlightView, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]flights.FlightView), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*flights.FlightView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flights.FlightView), args.Error(1)
}

func (m *MockFlightUseCase) Details(ctx context.Context, id int64) (*flights.FlightDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flights.FlightDetails), args.Error(1)
}

func TestFlightHandler_list(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights?active=true", nil)

	views := []flights.FlightView{
		{Flight: domain.Flight{ID: 1, FlightNumber: "SL100"}, CurrentPriceCents: 11000, Capacity: 10, RemainingCapacity: 9},
	}
	mockService.On("List", c.Request.Context(), true).Return(views, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)
	assert.Equal(t, "SL100", response[0]["flight_number"])
	assert.Equal(t, float64(11000), response[0]["current_price_cents"])

	mockService.AssertExpectations(t)
}

func TestFlightHandler_create(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/flights", createFlightRequest{
		FlightNumber:   "SL100",
		Origin:         "London",
		Destination:    "Paris",
		BasePriceCents: 10000,
		PlaneID:        1,
		DepartureDate:  "2026-04-01",
	})

	input := flights.AddFlightInput{
		FlightNumber:   "SL100",
		Origin:         "London",
		Destination:    "Paris",
		BasePriceCents: 10000,
		PlaneID:        1,
		DepartureDate:  time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
	}
	view := &flights.FlightView{Flight: domain.Flight{ID: 1, FlightNumber: "SL100"}}
	mockService.On("AddFlight", c.Request.Context(), input).Return(view, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_create_BadDate(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/flights", createFlightRequest{FlightNumber: "SL100", PlaneID: 1, DepartureDate: "01/04/2026"})

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Date must be in YYYY-MM-DD format."}`, w.Body.String())
}

func TestFlightHandler_get(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	c.Request = httptest.NewRequest("GET", "/flights/4", nil)

	mockService.On("GetByID", c.Request.Context(), int64(4)).Return(&flights.FlightView{Flight: domain.Flight{ID: 4}}, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_remove_NotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	c.Request = httptest.NewRequest("DELETE", "/flights/4", nil)

	mockService.On("RemoveFlight", c.Request.Context(), int64(4)).Return(nil, domain.NotFound("flight", 4))

	handler.remove(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
