package dto

import "github.com/erp/orderbridge/internal/domain/integration"

// Response represents a standard API response
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string                        `json:"code"`
	Message   string                        `json:"message"`
	RequestID string                        `json:"request_id,omitempty"`
	Issues    []integration.ValidationIssue `json:"issues,omitempty"`
	// ChannelResponse is the storefront's answer when a channel call failed
	ChannelResponse *integration.ChannelResponse `json:"channel_response,omitempty"`
}

// Meta represents pagination metadata
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewSuccessResponseWithMeta creates a success response with pagination meta
func NewSuccessResponseWithMeta(data any, total int64, page, pageSize int) Response {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	return Response{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	}
}

// NewValidationErrorResponse creates a validation error response listing every issue found
func NewValidationErrorResponse(requestID string, issues []integration.ValidationIssue) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      ErrCodeValidation,
			Message:   "Request validation failed",
			RequestID: requestID,
			Issues:    issues,
		},
	}
}

// NewChannelErrorResponse creates an error response carrying the storefront's answer
func NewChannelErrorResponse(code, message, requestID string, channelResponse *integration.ChannelResponse) Response {
	resp := NewErrorResponse(code, message, requestID)
	resp.Error.ChannelResponse = channelResponse
	return resp
}
