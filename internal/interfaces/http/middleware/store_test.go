package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/orderbridge/internal/domain/integration"
	"github.com/erp/orderbridge/internal/infrastructure/logger"
	"github.com/erp/orderbridge/internal/interfaces/http/dto"
)

func newStoreRouter() *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), StoreCredentials(DefaultStoreConfig()))
	handler := func(c *gin.Context) {
		creds, ok := GetStoreCredentials(c)
		c.JSON(http.StatusOK, gin.H{
			"ok":       ok,
			"store_id": creds.StoreID,
			"ctx":      logger.GetStoreID(c.Request.Context()),
		})
	}
	router.GET("/orders", handler)
	router.GET("/healthz", handler)
	return router
}

func TestStoreCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		path       string
		storeID    string
		token      string
		wantStatus int
	}{
		{"both headers", "/orders", "acme", "shpat_x", http.StatusOK},
		{"missing token", "/orders", "acme", "", http.StatusUnauthorized},
		{"missing store", "/orders", "", "shpat_x", http.StatusUnauthorized},
		{"blank store", "/orders", "   ", "shpat_x", http.StatusUnauthorized},
		{"skipped path", "/healthz", "", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.storeID != "" {
				req.Header.Set(StoreIDHeader, tt.storeID)
			}
			if tt.token != "" {
				req.Header.Set(TokenHeader, tt.token)
			}
			w := httptest.NewRecorder()
			newStoreRouter().ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestStoreCredentials_StoresCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set(StoreIDHeader, "acme")
	req.Header.Set(TokenHeader, "shpat_x")
	w := httptest.NewRecorder()
	newStoreRouter().ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "acme", body["store_id"])
	assert.Equal(t, "acme", body["ctx"])
}

func TestStoreCredentials_RejectionEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	newStoreRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)
	assert.Equal(t, w.Header().Get(RequestIDHeader), resp.Error.RequestID)
}

func TestGetStoreCredentials_Absent(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	creds, ok := GetStoreCredentials(c)
	assert.False(t, ok)
	assert.Equal(t, integration.StoreCredentials{}, creds)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	t.Run("generates a uuid", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		_, err := uuid.Parse(w.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "upstream-7")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "upstream-7", w.Body.String())
	})
}
