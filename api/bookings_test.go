package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) AddBooking(ctx context.Context, input booking.AddBookingInput) (*booking.BookingResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.BookingResult), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, input booking.CancelBookingInput) (*booking.CancelResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.CancelResult), args.Error(1)
}

func (m *MockBookingUseCase) EditBooking(ctx context.Context, input booking.EditBookingInput) (*booking.BookingResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.BookingResult), args.Error(1)
}

func (m *MockBookingUseCase) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/bookings", createBookingRequest{CustomerID: 1, FlightID: 2})

	result := &booking.BookingResult{
		Booking: domain.Booking{ID: 5, CustomerID: 1, FlightID: 2, PriceCents: 17000},
		Message: "Booking success #1 - Jane Flight No#2, price Rs. 170.00",
	}
	mockService.On("AddBooking", c.Request.Context(), booking.AddBookingInput{CustomerID: 1, FlightID: 2}).Return(result, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response booking.BookingResult
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), response.Booking.ID)
	assert.Equal(t, result.Message, response.Message)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_Rejected(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/bookings", createBookingRequest{CustomerID: 1, FlightID: 2})

	full := domain.Reject(domain.ReasonFlightFull, "flight #2 is already full and cannot be booked")
	mockService.On("AddBooking", c.Request.Context(), booking.AddBookingInput{CustomerID: 1, FlightID: 2}).Return(nil, full)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"flight #2 is already full and cannot be booked","reason":"FLIGHT_FULL"}`, w.Body.String())
}

func TestBookingHandler_create_BadBody(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/bookings", map[string]int{"flight_id": 2})

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "AddBooking", mock.Anything, mock.Anything)
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/bookings/cancel", createBookingRequest{CustomerID: 1, FlightID: 2})

	result := &booking.CancelResult{Booking: domain.Booking{ID: 5}, FeeCents: 7000, Message: "cancelled"}
	mockService.On("CancelBooking", c.Request.Context(), booking.CancelBookingInput{CustomerID: 1, FlightID: 2}).Return(result, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response booking.CancelResult
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(7000), response.FeeCents)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_edit(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Request = jsonRequest("PUT", "/bookings/5", editBookingRequest{FlightID: 9})

	result := &booking.BookingResult{Booking: domain.Booking{ID: 5, FlightID: 9}, Message: "updated"}
	mockService.On("EditBooking", c.Request.Context(), booking.EditBookingInput{BookingID: 5, FlightID: 9}).Return(result, nil)

	handler.edit(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_get_NotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	c.Request = httptest.NewRequest("GET", "/bookings/42", nil)

	mockService.On("GetByID", c.Request.Context(), int64(42)).Return(nil, domain.NotFound("booking", 42))

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"there is no booking with id 42"}`, w.Body.String())
}

func TestBookingHandler_get_InvalidID(t *testing.T) {
	handler := NewBookingHandler(&MockBookingUseCase{}, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest("GET", "/bookings/abc", nil)

	handler.get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
