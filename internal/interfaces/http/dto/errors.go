package dto

import (
	"errors"
	"net/http"

	appintegration "github.com/erp/orderbridge/internal/application/integration"
	"github.com/erp/orderbridge/internal/domain/integration"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Request error codes
const (
	// ErrCodeValidation is used when a document fails its schema
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidJSON is used when the body is not JSON
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
	// ErrCodeInvalidConfig is used when the merchant config cannot be merged
	ErrCodeInvalidConfig = "ERR_INVALID_CONFIG"
	// ErrCodeInvalidOrder is used when the order cannot be placed as given
	ErrCodeInvalidOrder = "ERR_INVALID_ORDER"
	// ErrCodeInvalidDateRange is used when end_date precedes start_date
	ErrCodeInvalidDateRange = "ERR_INVALID_DATE_RANGE"
	// ErrCodeTooManyIDs is used when a status lookup names too many orders
	ErrCodeTooManyIDs = "ERR_TOO_MANY_IDS"
)

// Store error codes
const (
	// ErrCodeUnauthorized is used when the store-id or token header is missing
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeNotFound     = "ERR_NOT_FOUND"
	// ErrCodeDuplicateOrder is used when the marketplace order is already being placed
	ErrCodeDuplicateOrder = "ERR_DUPLICATE_ORDER"
)

// Channel error codes
const (
	// ErrCodeChannelRejected is used when the storefront answered with a non-2xx status
	ErrCodeChannelRejected = "ERR_CHANNEL_REJECTED"
	// ErrCodeChannelUnavailable is used when the storefront could not be reached
	ErrCodeChannelUnavailable = "ERR_CHANNEL_UNAVAILABLE"
	// ErrCodeChannelInvalidResponse is used when the storefront's answer could not be decoded
	ErrCodeChannelInvalidResponse = "ERR_CHANNEL_INVALID_RESPONSE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeInvalidJSON:      http.StatusBadRequest,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeInvalidConfig:    http.StatusBadRequest,
	ErrCodeInvalidOrder:     http.StatusBadRequest,
	ErrCodeInvalidDateRange: http.StatusBadRequest,
	ErrCodeTooManyIDs:       http.StatusBadRequest,

	ErrCodeUnauthorized:   http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	ErrCodeNotFound:       http.StatusNotFound,
	ErrCodeDuplicateOrder: http.StatusConflict,

	// channel failures are the upstream's, not the caller's
	ErrCodeChannelRejected:        http.StatusBadGateway,
	ErrCodeChannelUnavailable:     http.StatusBadGateway,
	ErrCodeChannelInvalidResponse: http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// errorCodes is checked in order; the first sentinel found in the chain wins
var errorCodes = []struct {
	target error
	code   string
}{
	{integration.ErrPlatformRequestFailed, ErrCodeChannelRejected},
	{integration.ErrPlatformUnavailable, ErrCodeChannelUnavailable},
	{integration.ErrPlatformInvalidResponse, ErrCodeChannelInvalidResponse},
	{integration.ErrPlatformNotConfigured, ErrCodeUnauthorized},
	{integration.ErrOrderSyncDuplicateOrder, ErrCodeDuplicateOrder},
	{integration.ErrInvalidMerchantConfig, ErrCodeInvalidConfig},
	{integration.ErrOrderSyncInvalidOrder, ErrCodeInvalidOrder},
	{integration.ErrOrderHasNoLines, ErrCodeInvalidOrder},
	{integration.ErrInvalidDateRange, ErrCodeInvalidDateRange},
	{integration.ErrTooManyOrderIDs, ErrCodeTooManyIDs},
	{integration.ErrSyncRecordNotFound, ErrCodeNotFound},
	{appintegration.ErrSyncHistoryDisabled, ErrCodeNotFound},
}

// ErrorCodeFor returns the error code for a service error
func ErrorCodeFor(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.target) {
			return ec.code
		}
	}
	return ErrCodeInternal
}
