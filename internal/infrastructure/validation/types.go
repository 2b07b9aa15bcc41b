package validation

import (
	"encoding/json"

	"github.com/erp/orderbridge/internal/domain/integration"
)

// PlaceOrderRequest is the body of POST /place_order
type PlaceOrderRequest struct {
	Order  *integration.NormalizedOrder `json:"order" validate:"required"`
	Config json.RawMessage              `json:"config,omitempty"` // merged over merchant defaults
}

// OrderStatusesQuery is the query of GET /order_statuses
type OrderStatusesQuery struct {
	ChannelOrderIDs string `json:"channel_order_ids" form:"channel_order_ids" validate:"required,id_list"`
}

// OrderRefundsQuery is the query of GET /order_refunds
type OrderRefundsQuery struct {
	StartDate string `json:"start_date" form:"start_date" validate:"required,flexdate"`
	EndDate   string `json:"end_date" form:"end_date" validate:"required,flexdate"`
}

// OrdersQuery is the query of GET /orders
type OrdersQuery struct {
	StartDate string `json:"start_date" form:"start_date" validate:"required,flexdate"`
}

// SyncRecordsQuery is the query of GET /sync_records
type SyncRecordsQuery struct {
	Status    string `json:"status" form:"status" validate:"omitempty,oneof=PENDING SUCCESS FAILED"`
	StartDate string `json:"start_date" form:"start_date" validate:"omitempty,flexdate"`
	EndDate   string `json:"end_date" form:"end_date" validate:"omitempty,flexdate"`
	Page      string `json:"page" form:"page" validate:"omitempty,number"`
	PageSize  string `json:"page_size" form:"page_size" validate:"omitempty,number"`
}
