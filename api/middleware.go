package api

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// Authorizer guards mutating routes with bearer tokens.
type Authorizer struct {
	tokens *auth.TokenManager
}

func NewAuthorizer(tokens *auth.TokenManager) *Authorizer {
	return &Authorizer{tokens: tokens}
}

// Require lets the request through when its token carries the role, or admin.
// A nil Authorizer lets everything through.
func (a *Authorizer) Require(role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if a == nil {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := a.tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if err := auth.CheckPermission(claims.Role, role); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}
