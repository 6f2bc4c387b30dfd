package managers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiig/deliverables-backend/internal/storage/memory"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	gin.EnableJsonDecoderDisallowUnknownFields()

	r := gin.New()
	NewHandler(NewService(memory.NewStore())).Register(r.Group("/api/project-managers"))
	return r
}

func post(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/api/project-managers", &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestCreateManagerEndpoint(t *testing.T) {
	r := newTestRouter()

	rr := post(t, r, gin.H{
		"firstName": "Ana",
		"lastName":  "Lee",
		"email":     "ana@x.com",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	// same email again conflicts
	rr = post(t, r, gin.H{
		"firstName": "Bea",
		"lastName":  "Yu",
		"email":     "ana@x.com",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	var resp struct {
		OK    bool `json:"ok"`
		Error struct {
			Kind string `json:"kind"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, "conflict", resp.Error.Kind)
}

func TestCreateManagerEndpointValidation(t *testing.T) {
	r := newTestRouter()

	rr := post(t, r, gin.H{"firstName": "Ana", "lastName": "Lee", "email": "nope"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = post(t, r, gin.H{"firstName": "Ana", "lastName": "Lee", "email": "a@x.com", "nickname": "A"})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "unknown fields are rejected")
}

func TestListManagersEndpoint(t *testing.T) {
	r := newTestRouter()

	for _, m := range []gin.H{
		{"firstName": "Zoe", "lastName": "Young", "email": "zy@x.com"},
		{"firstName": "Al", "lastName": "Adams", "email": "aa@x.com"},
	} {
		require.Equal(t, http.StatusCreated, post(t, r, m).Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/project-managers", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		ProjectManagers []struct {
			LastName string `json:"lastName"`
		} `json:"projectManagers"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.ProjectManagers, 2)
	assert.Equal(t, "Adams", resp.ProjectManagers[0].LastName)
}
