package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	verifier *auth.Verifier
	tokens   *auth.TokenManager
}

type loginRequest struct {
	Role     string `json:"role" binding:"required"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	ExpiresAt string `json:"expires_at"`
}

func NewAuthHandler(verifier *auth.Verifier, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{verifier: verifier, tokens: tokens}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/login", h.login)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role, err := auth.ParseRole(req.Role)
	if err != nil {
		writeError(c, err)
		return
	}

	subject, err := h.verifier.Verify(c.Request.Context(), auth.Credentials{Role: role, Username: req.Username, Password: req.Password})
	if err != nil {
		writeError(c, err)
		return
	}
	token, expiresAt, err := h.tokens.Issue(subject, role)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:     token,
		Role:      string(role),
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}
