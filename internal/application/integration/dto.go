package integration

import (
	"time"

	"github.com/google/uuid"

	"github.com/erp/orderbridge/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// PlaceOrderResponse is returned when the storefront accepted the order
// @name BridgePlaceOrderResponse
type PlaceOrderResponse struct {
	ChannelOrderID   string                       `json:"channel_order_id" example:"5123456789012"`
	ChannelOrderName string                       `json:"channel_order_name,omitempty" example:"#1042"`
	PhoneRetried     bool                         `json:"phone_retried"`
	ChannelResponse  *integration.ChannelResponse `json:"channel_response,omitempty"`
}

// OrderStatusesResponse lists reconciled orders and the ids the channel did not return
// @name BridgeOrderStatusesResponse
type OrderStatusesResponse struct {
	Statuses  []integration.OrderStatus `json:"statuses"`
	FailedIDs []string                  `json:"failed_ids"`
}

// OrdersResponse lists normalized storefront orders
// @name BridgeOrdersResponse
type OrdersResponse struct {
	Orders           []integration.NormalizedOrder `json:"orders"`
	Count            int                           `json:"count"`
	PageLimitReached bool                          `json:"page_limit_reached"`
}

// SyncRecordResponse is one place_order attempt
// @name BridgeSyncRecordResponse
type SyncRecordResponse struct {
	ID                     uuid.UUID                `json:"id"`
	StoreID                string                   `json:"store_id"`
	PlatformCode           integration.PlatformCode `json:"platform_code"`
	MarketplaceName        string                   `json:"marketplace_name"`
	MarketplaceOrderNumber string                   `json:"mp_order_number"`
	ChannelOrderID         string                   `json:"channel_order_id,omitempty"`
	ChannelOrderName       string                   `json:"channel_order_name,omitempty"`
	Status                 integration.SyncStatus   `json:"status"`
	ResponseCode           int                      `json:"response_code,omitempty"`
	ErrorMessage           string                   `json:"error_message,omitempty"`
	ArchiveKey             string                   `json:"archive_key,omitempty"`
	PhoneRetried           bool                     `json:"phone_retried"`
	SyncedAt               time.Time                `json:"synced_at"`
}

// SyncRecordListResponse is one page of sync records
type SyncRecordListResponse struct {
	Records  []SyncRecordResponse `json:"records"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

// ---------------------------------------------------------------------------
// Converters
// ---------------------------------------------------------------------------

// ToPlaceOrderResponse converts a PlaceOrderResult
func ToPlaceOrderResponse(result *integration.PlaceOrderResult) PlaceOrderResponse {
	return PlaceOrderResponse{
		ChannelOrderID:   result.ChannelOrderID,
		ChannelOrderName: result.ChannelOrderName,
		PhoneRetried:     result.PhoneRetried,
		ChannelResponse:  integration.NewChannelResponse(result.Response),
	}
}

// ToOrderStatusesResponse converts an OrderStatusResult; empty lists encode as []
func ToOrderStatusesResponse(result *integration.OrderStatusResult) OrderStatusesResponse {
	resp := OrderStatusesResponse{
		Statuses:  result.Statuses,
		FailedIDs: result.FailedIDs,
	}
	if resp.Statuses == nil {
		resp.Statuses = []integration.OrderStatus{}
	}
	if resp.FailedIDs == nil {
		resp.FailedIDs = []string{}
	}
	return resp
}

// ToOrdersResponse converts an OrderListResult
func ToOrdersResponse(result *integration.OrderListResult) OrdersResponse {
	orders := result.Orders
	if orders == nil {
		orders = []integration.NormalizedOrder{}
	}
	return OrdersResponse{
		Orders:           orders,
		Count:            len(orders),
		PageLimitReached: result.PageLimitReached,
	}
}

// ToSyncRecordResponse converts a sync record
func ToSyncRecordResponse(r *integration.OrderSyncRecord) SyncRecordResponse {
	return SyncRecordResponse{
		ID:                     r.ID,
		StoreID:                r.StoreID,
		PlatformCode:           r.PlatformCode,
		MarketplaceName:        r.MarketplaceName,
		MarketplaceOrderNumber: r.MarketplaceOrderNumber,
		ChannelOrderID:         r.ChannelOrderID,
		ChannelOrderName:       r.ChannelOrderName,
		Status:                 r.Status,
		ResponseCode:           r.ResponseCode,
		ErrorMessage:           r.ErrorMessage,
		ArchiveKey:             r.ArchiveKey,
		PhoneRetried:           r.PhoneRetried,
		SyncedAt:               r.SyncedAt,
	}
}

// ToSyncRecordResponses converts a slice of sync records
func ToSyncRecordResponses(records []integration.OrderSyncRecord) []SyncRecordResponse {
	out := make([]SyncRecordResponse, len(records))
	for i := range records {
		out[i] = ToSyncRecordResponse(&records[i])
	}
	return out
}
