package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedRouter(authz *Authorizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/flights", authz.Require(auth.RoleAirline), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthorizer_Require(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour, nil)
	router := newGuardedRouter(NewAuthorizer(tokens))

	airlineToken, _, err := tokens.Issue("airline:1", auth.RoleAirline)
	require.NoError(t, err)
	adminToken, _, err := tokens.Issue("admin", auth.RoleAdmin)
	require.NoError(t, err)
	customerToken, _, err := tokens.Issue("customer", auth.RoleCustomer)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc", status: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + customerToken, status: http.StatusForbidden},
		{name: "matching role", header: "Bearer " + airlineToken, status: http.StatusNoContent},
		{name: "admin", header: "Bearer " + adminToken, status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/flights", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAuthorizer_NilPassesThrough(t *testing.T) {
	router := newGuardedRouter(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/flights", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAuthHandler_login(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour, nil)
	handler := NewAuthHandler(auth.NewVerifier("admin", "s3cret", nil), tokens)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.Register(r.Group(""))

	t.Run("customer", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/login", loginRequest{Role: "Customer"}))

		require.Equal(t, http.StatusOK, w.Code)
		var response loginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "customer", response.Role)

		claims, err := tokens.Parse(response.Token)
		require.NoError(t, err)
		assert.Equal(t, auth.RoleCustomer, claims.Role)
	})

	t.Run("admin bad password", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/login", loginRequest{Role: "admin", Username: "admin", Password: "nope"}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Invalid admin credentials.","reason":"INVALID_LOGIN"}`, w.Body.String())
	})

	t.Run("unknown role", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/login", loginRequest{Role: "pilot"}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.NotFound("flight", 1), http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", domain.NotFound("plane", 2)), http.StatusNotFound},
		{domain.Reject(domain.ReasonInvalidInput, "bad"), http.StatusBadRequest},
		{domain.Reject(domain.ReasonInvalidLogin, "bad"), http.StatusUnauthorized},
		{domain.Reject(domain.ReasonFlightExpired, "gone"), http.StatusConflict},
		{auth.ErrInvalidToken, http.StatusUnauthorized},
		{fmt.Errorf("%w: role customer", auth.ErrForbidden), http.StatusForbidden},
		{errors.New("disk on fire"), http.StatusInternalServerError},
		{context.Canceled, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, statusFor(tt.err), tt.err.Error())
	}
}
