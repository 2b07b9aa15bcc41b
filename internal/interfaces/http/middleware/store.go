package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/orderbridge/internal/domain/integration"
	"github.com/erp/orderbridge/internal/infrastructure/logger"
	"github.com/erp/orderbridge/internal/interfaces/http/dto"
)

// Store header and gin context keys
const (
	StoreIDHeader = "store-id"
	TokenHeader   = "token"

	StoreCredentialsKey = "store_credentials"
)

// StoreMiddlewareConfig holds configuration for the store credentials middleware
type StoreMiddlewareConfig struct {
	// SkipPaths don't require store headers (e.g., health check)
	SkipPaths []string
	Logger    *zap.Logger
}

// DefaultStoreConfig returns default store middleware configuration
func DefaultStoreConfig() StoreMiddlewareConfig {
	return StoreMiddlewareConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}
}

// StoreCredentials reads the storefront headers every bridge call carries and
// rejects the request with 401 when either is missing
func StoreCredentials(cfg StoreMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		creds := integration.StoreCredentials{
			StoreID:     strings.TrimSpace(c.GetHeader(StoreIDHeader)),
			AccessToken: strings.TrimSpace(c.GetHeader(TokenHeader)),
		}
		if err := creds.Validate(); err != nil {
			log.Debug("store headers missing", zap.String("path", path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrCodeUnauthorized,
				"store-id and token headers are required",
				c.GetString(RequestIDKey),
			))
			return
		}

		c.Set(StoreCredentialsKey, creds)
		ctx, reqLogger := logger.WithStoreID(c.Request.Context(), logger.FromContext(c.Request.Context()), creds.StoreID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(logger.GinLoggerKey, reqLogger)
		c.Next()
	}
}

// GetStoreCredentials returns the credentials stored by StoreCredentials
func GetStoreCredentials(c *gin.Context) (integration.StoreCredentials, bool) {
	v, ok := c.Get(StoreCredentialsKey)
	if !ok {
		return integration.StoreCredentials{}, false
	}
	creds, ok := v.(integration.StoreCredentials)
	return creds, ok
}
