package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityair/cityair/internal/api/middleware"
	"github.com/cityair/cityair/internal/api/models"
	"github.com/cityair/cityair/internal/api/response"
)

// requestWithContext runs a request through the RequestID middleware so the
// context carries a request ID, as it would in the real handler chain.
func requestWithContext(t *testing.T, method, path string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, path, http.NoBody)
	rec := httptest.NewRecorder()

	var processedReq *http.Request
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		processedReq = r
	}))
	handler.ServeHTTP(rec, req)

	return processedReq, httptest.NewRecorder()
}

func TestJSON_IncludesRequestID(t *testing.T) {
	req, rec := requestWithContext(t, http.MethodGet, "/test")

	response.JSON(rec, req, http.StatusOK, map[string]string{"message": "hello"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestJSON_NilBody(t *testing.T) {
	req, rec := requestWithContext(t, http.MethodGet, "/test")

	response.JSON(rec, req, http.StatusOK, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestBadRequest_WritesProblem(t *testing.T) {
	req, rec := requestWithContext(t, http.MethodPost, "/v1/subscriptions")

	response.BadRequest(rec, req, "validation failed", []models.FieldError{
		{Field: "email", Message: "must be a valid email address"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var p models.Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, models.ProblemTypeValidation, p.Type)
	assert.Equal(t, "/v1/subscriptions", p.Instance)
	require.Len(t, p.Errors, 1)
}

func TestNotFound_WritesProblem(t *testing.T) {
	req, rec := requestWithContext(t, http.MethodGet, "/v1/air-quality")

	response.NotFound(rec, req, "no air quality data found for city Atlantis")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var p models.Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, models.ProblemTypeNotFound, p.Type)
	assert.Contains(t, p.Detail, "Atlantis")
}

func TestServiceUnavailable_WritesProblem(t *testing.T) {
	req, rec := requestWithContext(t, http.MethodGet, "/v1/air-quality")

	response.ServiceUnavailable(rec, req, "geocoding service is unavailable")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var p models.Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, models.ProblemTypeUnavailable, p.Type)
}

func TestCreated_SetsLocationHeader(t *testing.T) {
	req, rec := requestWithContext(t, http.MethodPost, "/v1/subscriptions")

	response.Created(rec, req, "/v1/subscriptions", map[string]string{"email": "a@b.com"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/v1/subscriptions", rec.Header().Get("Location"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestNoContent(t *testing.T) {
	req, rec := requestWithContext(t, http.MethodDelete, "/v1/subscriptions")

	response.NoContent(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
