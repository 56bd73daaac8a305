package middleware

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/educamedic-api/internal/models"
	"github.com/noah-isme/educamedic-api/internal/service"
	appErrors "github.com/noah-isme/educamedic-api/pkg/errors"
	"github.com/noah-isme/educamedic-api/pkg/response"
)

// Context keys set by Authenticate.
const (
	ContextClaimsKey          = "tokenClaims"
	ContextGlobalProfileIDKey = "globalProfileId"
	ContextNameIDKey          = "nameid"
	ContextUniqueNameKey      = "unique_name"
)

var bearerScheme = regexp.MustCompile(`(?i)^\s*bearer(\s+|$)`)

// Authenticate requires a verified bearer token when verifier is enabled and
// lets every request through otherwise.
func Authenticate(verifier *service.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !verifier.Enabled() {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if strings.TrimSpace(header) == "" {
			response.Abort(c, appErrors.Clone(appErrors.ErrUnauthorized, "Please provide a valid token"))
			return
		}

		claims, err := verifier.Verify(bearerToken(header))
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Set(ContextGlobalProfileIDKey, claims.GlobalProfileID)
		c.Set(ContextNameIDKey, claims.NameID)
		c.Set(ContextUniqueNameKey, claims.UniqueName)
		c.Next()
	}
}

// bearerToken strips the optional case-insensitive bearer scheme from header.
func bearerToken(header string) string {
	return strings.TrimSpace(bearerScheme.ReplaceAllString(header, ""))
}

// Claims returns the token claims stored by Authenticate, if any.
func Claims(c *gin.Context) *models.TokenClaims {
	value, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*models.TokenClaims)
	return claims
}
