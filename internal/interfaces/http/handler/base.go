package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/orderbridge/internal/domain/integration"
	"github.com/erp/orderbridge/internal/infrastructure/logger"
	"github.com/erp/orderbridge/internal/interfaces/http/dto"
	"github.com/erp/orderbridge/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// getStoreCredentials returns the credentials set by the store middleware
func getStoreCredentials(c *gin.Context) integration.StoreCredentials {
	creds, _ := middleware.GetStoreCredentials(c)
	return creds
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Error sends an error response, deriving the status code from the error code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message, getRequestID(c)))
}

// BadRequest sends a 400 response for a body that is not JSON
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeInvalidJSON, message)
}

// ValidationError sends a 400 response listing every schema issue
func (h *BaseHandler) ValidationError(c *gin.Context, issues []integration.ValidationIssue) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(getRequestID(c), issues))
}

// HandleError converts service errors to HTTP responses. Channel failures carry
// the storefront's answer; unknown errors are logged and reported generically.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	code := dto.ErrorCodeFor(err)
	requestID := getRequestID(c)

	if _, ok := integration.AsChannelError(err); ok {
		c.JSON(dto.GetHTTPStatus(code), dto.NewChannelErrorResponse(
			code, err.Error(), requestID, integration.NewChannelErrorResponse(err),
		))
		return
	}

	if code == dto.ErrCodeInternal {
		logger.GetGinLogger(c).Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(code, "An unexpected error occurred", requestID))
		return
	}

	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, err.Error(), requestID))
}
