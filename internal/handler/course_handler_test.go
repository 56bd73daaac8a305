package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/educamedic-api/internal/dto"
	"github.com/noah-isme/educamedic-api/internal/query"
	appErrors "github.com/noah-isme/educamedic-api/pkg/errors"
	"github.com/noah-isme/educamedic-api/pkg/pagination"
)

type courseServiceMock struct {
	listResp   *dto.CoursePage
	listErr    error
	getResp    *dto.CourseView
	getErr     error
	createResp *dto.CourseView
	createErr  error
	updateResp *dto.CourseView
	updateErr  error

	lastFilter query.CourseFilter
	lastOpts   query.PageOptions
	lastID     string
	lastReq    dto.CourseRequest
	lastPatch  dto.CoursePatchRequest
	listCalled bool
}

func (m *courseServiceMock) List(ctx context.Context, filter query.CourseFilter, opts query.PageOptions) (*dto.CoursePage, error) {
	m.listCalled = true
	m.lastFilter = filter
	m.lastOpts = opts
	return m.listResp, m.listErr
}

func (m *courseServiceMock) GetByUUID(ctx context.Context, id string) (*dto.CourseView, error) {
	m.lastID = id
	return m.getResp, m.getErr
}

func (m *courseServiceMock) Create(ctx context.Context, req dto.CourseRequest) (*dto.CourseView, error) {
	m.lastReq = req
	return m.createResp, m.createErr
}

func (m *courseServiceMock) Update(ctx context.Context, id string, patch dto.CoursePatchRequest) (*dto.CourseView, error) {
	m.lastID = id
	m.lastPatch = patch
	return m.updateResp, m.updateErr
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, target, nil)
	}
	c.Request = req
	return c, w
}

func TestCourseHandlerList(t *testing.T) {
	mockSvc := &courseServiceMock{listResp: &dto.CoursePage{
		Data:       []dto.CourseView{{UUID: "c-1", Name: "Anatomy"}},
		Pagination: pagination.New(11, 2, 5),
	}}
	handler := NewCourseHandler(mockSvc)

	c, w := newTestContext(http.MethodGet, "/courses?page=2&limit=5&status=Active&categoryId=cat-1&search=heart&sort=-createdDate", "")
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, query.CourseFilter{Search: "heart", Status: "Active", CategoryID: "cat-1"}, mockSvc.lastFilter)
	assert.Equal(t, 2, mockSvc.lastOpts.Page)
	assert.Equal(t, 5, mockSvc.lastOpts.Limit)

	var body struct {
		Data       []dto.CourseView `json:"data"`
		Pagination pagination.Meta  `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "c-1", body.Data[0].UUID)
	assert.Equal(t, 11, body.Pagination.TotalRecords)
	assert.Equal(t, 3, body.Pagination.TotalPages)
	require.NotNil(t, body.Pagination.PreviousPage)
	assert.Equal(t, 1, *body.Pagination.PreviousPage)
}

func TestCourseHandlerListEmptyDataIsArray(t *testing.T) {
	handler := NewCourseHandler(&courseServiceMock{listResp: &dto.CoursePage{
		Data:       []dto.CourseView{},
		Pagination: pagination.Unpaged(0),
	}})

	c, w := newTestContext(http.MethodGet, "/courses", "")
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []any{}, body["data"])
}

func TestCourseHandlerListRejectsInvalidPaging(t *testing.T) {
	for _, target := range []string{
		"/courses?page=0&limit=10",
		"/courses?page=1&limit=0",
		"/courses?page=1&limit=101",
		"/courses?page=abc",
		"/courses?limit=-5",
	} {
		mockSvc := &courseServiceMock{}
		c, w := newTestContext(http.MethodGet, target, "")
		NewCourseHandler(mockSvc).List(c)

		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.False(t, mockSvc.listCalled, target)
	}
}

func TestCourseHandlerListServiceError(t *testing.T) {
	handler := NewCourseHandler(&courseServiceMock{listErr: appErrors.Clone(appErrors.ErrInternal, "failed to list courses")})

	c, w := newTestContext(http.MethodGet, "/courses", "")
	handler.List(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCourseHandlerGet(t *testing.T) {
	mockSvc := &courseServiceMock{getResp: &dto.CourseView{UUID: "c-1"}}
	c, w := newTestContext(http.MethodGet, "/courses/c-1", "")
	c.Params = gin.Params{{Key: "id", Value: "c-1"}}

	NewCourseHandler(mockSvc).Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c-1", mockSvc.lastID)
}

func TestCourseHandlerGetNotFound(t *testing.T) {
	mockSvc := &courseServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "course not found")}
	c, w := newTestContext(http.MethodGet, "/courses/missing", "")
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	NewCourseHandler(mockSvc).Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCourseHandlerCreate(t *testing.T) {
	mockSvc := &courseServiceMock{createResp: &dto.CourseView{UUID: "new"}}
	c, w := newTestContext(http.MethodPost, "/courses", `{"name":"Anatomy","status":"Active","facebookData":{"pageId":"1"}}`)

	NewCourseHandler(mockSvc).Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Anatomy", mockSvc.lastReq.Name)
	assert.Equal(t, "1", mockSvc.lastReq.FacebookData.PageID)
}

func TestCourseHandlerCreateInvalidBody(t *testing.T) {
	c, w := newTestContext(http.MethodPost, "/courses", `{"name":`)

	NewCourseHandler(&courseServiceMock{}).Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCourseHandlerCreateConflict(t *testing.T) {
	mockSvc := &courseServiceMock{createErr: appErrors.Clone(appErrors.ErrConflict, "course with this name already exists")}
	c, w := newTestContext(http.MethodPost, "/courses", `{"name":"Anatomy"}`)

	NewCourseHandler(mockSvc).Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCourseHandlerUpdate(t *testing.T) {
	mockSvc := &courseServiceMock{updateResp: &dto.CourseView{UUID: "c-1", Name: "Renamed"}}
	c, w := newTestContext(http.MethodPatch, "/courses/c-1", `{"name":"Renamed"}`)
	c.Params = gin.Params{{Key: "id", Value: "c-1"}}

	NewCourseHandler(mockSvc).Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c-1", mockSvc.lastID)
	require.NotNil(t, mockSvc.lastPatch.Name)
	assert.Equal(t, "Renamed", *mockSvc.lastPatch.Name)
	assert.Nil(t, mockSvc.lastPatch.Status)
	assert.Nil(t, mockSvc.lastPatch.FacebookData)
}

func TestCourseHandlerUpdateConflict(t *testing.T) {
	mockSvc := &courseServiceMock{updateErr: appErrors.Clone(appErrors.ErrConflict, "course with this name already exists")}
	c, w := newTestContext(http.MethodPatch, "/courses/c-1", `{"name":"Anatomy"}`)
	c.Params = gin.Params{{Key: "id", Value: "c-1"}}

	NewCourseHandler(mockSvc).Update(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMetricsHandlerHealth(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/health", "")

	NewMetricsHandler(nil).Health(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","details":{"health":{"status":"up"}}}`, w.Body.String())
}

func TestMetricsHandlerPrometheusUnavailable(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/metrics", "")

	NewMetricsHandler(nil).Prometheus(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
