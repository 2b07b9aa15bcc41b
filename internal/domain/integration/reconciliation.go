package integration

import (
	"time"
)

// ---------------------------------------------------------------------------
// Fulfillment reconciliation
// ---------------------------------------------------------------------------

// ShipmentEvent is one shipment of a line item
type ShipmentEvent struct {
	Quantity             int        `json:"quantity"`
	ShippedAt            *time.Time `json:"shipped_at,omitempty"`
	TrackingNumber       string     `json:"tracking_number"`
	Carrier              string     `json:"carrier"`
	TrackingURL          string     `json:"tracking_url"`
	ReturnTrackingNumber string     `json:"return_tracking_number"`
}

// FulfillmentRecord is the shipment history of one line item
type FulfillmentRecord struct {
	Shipments    []ShipmentEvent `json:"shipments"`
	TotalShipped int             `json:"total_shipped"`
}

// AddShipment appends a shipment and updates the running total
func (r *FulfillmentRecord) AddShipment(event ShipmentEvent) {
	r.Shipments = append(r.Shipments, event)
	r.TotalShipped += event.Quantity
}

// FulfillmentMap maps channel line item IDs to their fulfillment record
type FulfillmentMap map[string]*FulfillmentRecord

// Shipped returns the shipped quantity of a line item, 0 when it has no record
func (m FulfillmentMap) Shipped(lineItemID string) int {
	if rec, ok := m[lineItemID]; ok && rec != nil {
		return rec.TotalShipped
	}
	return 0
}

// Record returns the record for a line item, creating it if absent
func (m FulfillmentMap) Record(lineItemID string) *FulfillmentRecord {
	rec, ok := m[lineItemID]
	if !ok || rec == nil {
		rec = &FulfillmentRecord{Shipments: []ShipmentEvent{}}
		m[lineItemID] = rec
	}
	return rec
}

// ---------------------------------------------------------------------------
// Cancellation reconciliation
// ---------------------------------------------------------------------------

// CancellationReason is the marketplace-side cancellation reason
type CancellationReason string

const (
	CancellationReasonCustomerRequest CancellationReason = "customer_request"
	CancellationReasonFraud           CancellationReason = "fraud"
	CancellationReasonOutOfStock      CancellationReason = "out_of_stock"
	CancellationReasonPaymentDeclined CancellationReason = "payment_declined"
	CancellationReasonOther           CancellationReason = "other"
)

// CancellationRecord is the cancelled quantity of one line item.
// Records exist only for positive quantities.
type CancellationRecord struct {
	QuantityCancelled int                `json:"quantity_cancelled"`
	Reason            CancellationReason `json:"cancellation_reason"`
}

// CancellationMap maps channel line item IDs to their cancellation record
type CancellationMap map[string]*CancellationRecord

// Cancelled returns the cancelled quantity of a line item, 0 when it has no record
func (m CancellationMap) Cancelled(lineItemID string) int {
	if rec, ok := m[lineItemID]; ok && rec != nil {
		return rec.QuantityCancelled
	}
	return 0
}

// ---------------------------------------------------------------------------
// Order status
// ---------------------------------------------------------------------------

// OrderLineStatus is the reconciled state of one channel line item
type OrderLineStatus struct {
	LineItemID         string             `json:"line_item_id"`
	SKU                string             `json:"sku"`
	Quantity           int                `json:"quantity"`
	QuantityShipped    int                `json:"quantity_shipped"`
	Shipments          []ShipmentEvent    `json:"shipments"`
	QuantityCancelled  int                `json:"quantity_cancelled"`
	CancellationReason CancellationReason `json:"cancellation_reason,omitempty"`
}

// OrderStatus is the reconciled state of one channel order
type OrderStatus struct {
	ChannelOrderID string            `json:"channel_order_id"`
	OrderName      string            `json:"order_name"`
	Cancelled      bool              `json:"cancelled"`
	Lines          []OrderLineStatus `json:"lines"`
}

// FailedOrderIDs returns the requested IDs missing from statuses, in request order
func FailedOrderIDs(requested []string, statuses []OrderStatus) []string {
	found := make(map[string]struct{}, len(statuses))
	for _, s := range statuses {
		found[s.ChannelOrderID] = struct{}{}
	}

	failed := make([]string, 0)
	seen := make(map[string]struct{}, len(requested))
	for _, id := range requested {
		if _, ok := found[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		failed = append(failed, id)
	}
	return failed
}

