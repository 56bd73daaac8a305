package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/educamedic-api/internal/models"
	"github.com/noah-isme/educamedic-api/internal/service"
)

func newAuthRouter(secret string) (*gin.Engine, *models.TokenClaims) {
	gin.SetMode(gin.TestMode)
	seen := &models.TokenClaims{}
	router := gin.New()
	router.Use(Authenticate(service.NewTokenVerifier(secret)))
	router.GET("/courses", func(c *gin.Context) {
		if claims := Claims(c); claims != nil {
			*seen = *claims
		}
		c.Status(http.StatusOK)
	})
	return router, seen
}

func signedToken(t *testing.T, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.TokenClaims{
		GlobalProfileID: "gp-1",
		NameID:          "7",
		UniqueName:      "jdoe",
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func serve(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Message
}

func TestAuthenticateOpenModeAllowsEverything(t *testing.T) {
	router, _ := newAuthRouter("")

	assert.Equal(t, http.StatusOK, serve(router, "").Code)
	assert.Equal(t, http.StatusOK, serve(router, "Bearer garbage").Code)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	router, _ := newAuthRouter("s3cret")

	for _, header := range []string{"", "   "} {
		rec := serve(router, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Please provide a valid token", errorMessage(t, rec))
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	router, _ := newAuthRouter("s3cret")

	rec := serve(router, "Bearer "+signedToken(t, "wrong"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "signature is invalid")

	rec = serve(router, "Bearer")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticateValidToken(t *testing.T) {
	router, seen := newAuthRouter("s3cret")
	token := signedToken(t, "s3cret")

	for _, header := range []string{"Bearer " + token, "bearer " + token, "BEARER   " + token, token} {
		rec := serve(router, header)
		assert.Equal(t, http.StatusOK, rec.Code, header)
	}
	assert.Equal(t, "gp-1", seen.GlobalProfileID)
	assert.Equal(t, "7", seen.NameID)
	assert.Equal(t, "jdoe", seen.UniqueName)
}

func TestBearerTokenOnlyStripsScheme(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "  bEaReR\tabc.def.ghi ", want: "abc.def.ghi"},
		{header: "Bearer", want: ""},
		{header: "Bearer abc.bearer.ghi", want: "abc.bearer.ghi"},
		{header: "abcbearer.def.ghi", want: "abcbearer.def.ghi"},
		{header: "bearerabc.def.ghi", want: "bearerabc.def.ghi"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bearerToken(tt.header), tt.header)
	}
}

func TestAuthenticateStoresClaimValues(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses", nil)
	c.Request.Header.Set("Authorization", "Bearer "+signedToken(t, "s3cret"))

	Authenticate(service.NewTokenVerifier("s3cret"))(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, "gp-1", c.GetString(ContextGlobalProfileIDKey))
	assert.Equal(t, "7", c.GetString(ContextNameIDKey))
	assert.Equal(t, "jdoe", c.GetString(ContextUniqueNameKey))
}
