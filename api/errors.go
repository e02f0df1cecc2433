package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	}
	if rej, ok := domain.AsRejection(err); ok {
		switch rej.Reason {
		case domain.ReasonInvalidInput:
			return http.StatusBadRequest
		case domain.ReasonInvalidLogin:
			return http.StatusUnauthorized
		default:
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	body := gin.H{"error": err.Error()}
	if rej, ok := domain.AsRejection(err); ok {
		body["reason"] = rej.Reason
	}
	c.JSON(status, body)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
