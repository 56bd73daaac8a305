package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/educamedic-api/internal/models"
	appErrors "github.com/noah-isme/educamedic-api/pkg/errors"
)

// TokenVerifier checks HMAC-signed bearer tokens against a shared secret.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier constructs a TokenVerifier. An empty secret disables verification.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Enabled reports whether requests must carry a valid token.
func (v *TokenVerifier) Enabled() bool {
	return v != nil && len(v.secret) > 0
}

// Verify parses tokenString and returns its claims. Failures are reported as
// forbidden with the parser's message.
func (v *TokenVerifier) Verify(tokenString string) (*models.TokenClaims, error) {
	if !v.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "token verification is not configured")
	}

	claims := &models.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, err.Error())
	}
	if !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid token")
	}
	return claims, nil
}
