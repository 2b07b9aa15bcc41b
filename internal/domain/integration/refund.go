package integration

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RefundEvent is one refunded line of a channel refund
type RefundEvent struct {
	RefundID        string          `json:"refund_id"`
	RefundLineKey   string          `json:"refund_line_key"`
	ChannelOrderID  string          `json:"channel_order_id"`
	OrderName       string          `json:"order_name"`
	LineItemID      string          `json:"line_item_id"`
	SKU             string          `json:"sku"`
	Quantity        int             `json:"quantity"`
	QuantityOrdered int             `json:"quantity_ordered"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Amount          decimal.Decimal `json:"amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	RestockType     string          `json:"restock_type"`
	Note            string          `json:"note"`
	RefundedAt      *time.Time      `json:"refunded_at,omitempty"`
	// CompatibilityRow is true for rows synthesized from a refund that carried
	// transactions but no refund line items
	CompatibilityRow bool `json:"compatibility_row"`
}

// RefundLineKey builds the key of a row backed by a channel refund line
func RefundLineKey(refundID, refundLineID string) string {
	return fmt.Sprintf("%s-%s", refundID, refundLineID)
}

// CompatibilityRefundLineKey builds the key of a row synthesized for an order line
func CompatibilityRefundLineKey(refundID, lineItemID string) string {
	return fmt.Sprintf("%s-L%s", refundID, lineItemID)
}

// RefundBatch is the result of a refund extraction over a date range
type RefundBatch struct {
	// OrderCount is the number of refunded or partially refunded orders in range
	OrderCount int `json:"order_count"`
	// Refunds contains one event per refunded line
	Refunds []RefundEvent `json:"refunds"`
	// PageLimitReached is true when pagination stopped at the page ceiling
	PageLimitReached bool `json:"page_limit_reached"`
}

// NewRefundBatch returns an empty batch
func NewRefundBatch() *RefundBatch {
	return &RefundBatch{Refunds: []RefundEvent{}}
}
