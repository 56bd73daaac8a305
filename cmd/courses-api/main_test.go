package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/educamedic-api/internal/handler"
	"github.com/noah-isme/educamedic-api/internal/models"
	"github.com/noah-isme/educamedic-api/internal/repository"
	"github.com/noah-isme/educamedic-api/internal/service"
	"github.com/noah-isme/educamedic-api/pkg/config"
)

const coursePayload = `{
	"name": "Cardiology Basics",
	"description": "Heart physiology for beginners",
	"startDate": "2024-03-01T00:00:00Z",
	"endDate": "2024-03-05T00:00:00Z",
	"startHour": "09:00",
	"endHour": "12:00",
	"duration": "15h",
	"status": "Active",
	"categoryUuids": ["cat-1"],
	"urlMeeting": "https://meet.example.com/cardio",
	"publicationDate": "2024-02-01T00:00:00Z",
	"facebookData": {"pageId": "1", "pageName": "Educamedic", "eventUrl": "https://facebook.com/events/1"}
}`

func testConfig() *config.Config {
	return &config.Config{
		Env:       config.EnvDevelopment,
		APIPrefix: "/api",
		Database:  config.DatabaseConfig{Driver: config.DriverMemory, Timeout: time.Second},
		Swagger:   config.SwaggerConfig{Title: "Educamedic API", Version: "1.0", Path: "docs"},
	}
}

func newTestRouter(t *testing.T, secret string) *gin.Engine {
	t.Helper()
	return newTestRouterWithConfig(t, testConfig(), secret)
}

func newTestRouterWithConfig(t *testing.T, cfg *config.Config, secret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logr := zap.NewNop()
	metrics := service.NewMetricsService()

	store := repository.NewMemoryCourseStore()
	store.Seed(repository.References{
		Categories: []models.Category{{UUID: "cat-1", Name: "Cardiology"}},
	})
	svc := service.NewCourseService(repository.NewObservedCourseStore(store, metrics), validator.New(), logr)

	r, err := newRouter(cfg, logr, metrics, handler.NewCourseHandler(svc), service.NewTokenVerifier(secret))
	require.NoError(t, err)
	return r
}

func serve(r http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouterHealth(t *testing.T) {
	r := newTestRouter(t, "")

	rec := serve(r, http.MethodGet, "/api/health", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","details":{"health":{"status":"up"}}}`, rec.Body.String())
}

func TestRouterCourseLifecycle(t *testing.T) {
	r := newTestRouter(t, "")

	created := serve(r, http.MethodPost, "/api/courses", coursePayload, "")
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var createdBody struct {
		Data struct {
			UUID       string `json:"uuid"`
			Categories []struct {
				Name string `json:"name"`
			} `json:"categories"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createdBody))
	require.NotEmpty(t, createdBody.Data.UUID)
	require.Len(t, createdBody.Data.Categories, 1)
	assert.Equal(t, "Cardiology", createdBody.Data.Categories[0].Name)

	duplicate := serve(r, http.MethodPost, "/api/courses", coursePayload, "")
	assert.Equal(t, http.StatusConflict, duplicate.Code)

	list := serve(r, http.MethodGet, "/api/courses?categoryId=cat-1&page=1&limit=10", "", "")
	require.Equal(t, http.StatusOK, list.Code)
	var listBody struct {
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			TotalRecords int `json:"totalRecords"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &listBody))
	assert.Len(t, listBody.Data, 1)
	assert.Equal(t, 1, listBody.Pagination.TotalRecords)

	get := serve(r, http.MethodGet, "/api/courses/"+createdBody.Data.UUID, "", "")
	assert.Equal(t, http.StatusOK, get.Code)

	missing := serve(r, http.MethodGet, "/api/courses/unknown", "", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestRouterRequiresTokenWhenSecretConfigured(t *testing.T) {
	r := newTestRouter(t, "s3cret")

	rec := serve(r, http.MethodGet, "/api/courses", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(r, http.MethodGet, "/api/courses", "", "garbage")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.TokenClaims{
		GlobalProfileID: "profile-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	rec = serve(r, http.MethodGet, "/api/courses", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	health := serve(r, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestRouterServesDocsOutsideProduction(t *testing.T) {
	r := newTestRouter(t, "")

	rec := serve(r, http.MethodGet, "/api/docs/doc.json", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/courses/{id}")
}

func TestRouterDocsPathMatchingAPIPrefix(t *testing.T) {
	cfg := testConfig()
	cfg.Swagger.Path = "api"

	r := newTestRouterWithConfig(t, cfg, "")

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/api/doc.json", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/courses", "", "").Code)
}

func TestRouterDocsDefaultPath(t *testing.T) {
	cfg := testConfig()
	cfg.APIPrefix = ""
	cfg.Swagger.Path = ""

	r := newTestRouterWithConfig(t, cfg, "")

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/docs/doc.json", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", "", "").Code)
}

func TestRouterRejectsDocsPathCollidingWithRoutes(t *testing.T) {
	for _, path := range []string{"courses", "/health/", "metrics/ui"} {
		cfg := testConfig()
		cfg.Swagger.Path = path

		_, err := newRouter(cfg, zap.NewNop(), nil, handler.NewCourseHandler(nil), service.NewTokenVerifier(""))

		assert.Error(t, err, path)
	}
}

func TestRouterPartialPatch(t *testing.T) {
	r := newTestRouter(t, "")

	created := serve(r, http.MethodPost, "/api/courses", coursePayload, "")
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	var createdBody struct {
		Data struct {
			UUID string `json:"uuid"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createdBody))

	patched := serve(r, http.MethodPatch, "/api/courses/"+createdBody.Data.UUID, `{"name":"Renamed"}`, "")
	require.Equal(t, http.StatusOK, patched.Code, patched.Body.String())

	var body struct {
		Data struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Status      string `json:"status"`
			Categories  []struct {
				UUID string `json:"uuid"`
			} `json:"categories"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(patched.Body.Bytes(), &body))
	assert.Equal(t, "Renamed", body.Data.Name)
	assert.Equal(t, "Heart physiology for beginners", body.Data.Description)
	assert.Equal(t, "Active", body.Data.Status)
	require.Len(t, body.Data.Categories, 1)

	invalid := serve(r, http.MethodPatch, "/api/courses/"+createdBody.Data.UUID, `{"status":"Archived"}`, "")
	assert.Equal(t, http.StatusBadRequest, invalid.Code)

	missing := serve(r, http.MethodPatch, "/api/courses/unknown", `{"name":"Other"}`, "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestOpenCourseStoreRejectsUnknownDriver(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "cassandra"}}

	_, _, err := openCourseStore(context.Background(), cfg, zap.NewNop())

	assert.Error(t, err)
}
