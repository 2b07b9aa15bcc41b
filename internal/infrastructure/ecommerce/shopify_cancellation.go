package ecommerce

import (
	"strconv"

	"github.com/erp/orderbridge/internal/domain/integration"
)

// cancelReasons maps Shopify cancel reasons to marketplace cancellation reasons
var cancelReasons = map[string]integration.CancellationReason{
	"customer":  integration.CancellationReasonCustomerRequest,
	"fraud":     integration.CancellationReasonFraud,
	"inventory": integration.CancellationReasonOutOfStock,
	"declined":  integration.CancellationReasonPaymentDeclined,
	"other":     integration.CancellationReasonOther,
}

// MapCancelReason maps a Shopify cancel reason, defaulting to other
func MapCancelReason(reason string) integration.CancellationReason {
	if mapped, ok := cancelReasons[reason]; ok {
		return mapped
	}
	return integration.CancellationReasonOther
}

// ReconcileCancellations computes the cancelled quantity of each line item.
//
// A cancelled order cancels whatever was not shipped. Otherwise refunds are
// read in two passes: cancel-type refund lines first, then no_restock lines,
// which only count when they fit under the ordered quantity and their refund
// carries no refund_discrepancy adjustment.
func ReconcileCancellations(order *ShopifyOrder, fulfillments integration.FulfillmentMap) integration.CancellationMap {
	if order.CancelledAt != nil {
		return reconcileCancelledOrder(order, fulfillments)
	}
	if len(order.Refunds) > 0 {
		return reconcileRefundCancellations(order, fulfillments)
	}
	return integration.CancellationMap{}
}

func reconcileCancelledOrder(order *ShopifyOrder, fulfillments integration.FulfillmentMap) integration.CancellationMap {
	result := integration.CancellationMap{}
	reason := MapCancelReason(order.CancelReason)
	for _, item := range order.LineItems {
		id := item.IDString()
		cancelled := item.Quantity - fulfillments.Shipped(id)
		if cancelled > 0 {
			result[id] = &integration.CancellationRecord{QuantityCancelled: cancelled, Reason: reason}
		}
	}
	return result
}

func reconcileRefundCancellations(order *ShopifyOrder, fulfillments integration.FulfillmentMap) integration.CancellationMap {
	ordered := make(map[string]int, len(order.LineItems))
	for _, item := range order.LineItems {
		ordered[item.IDString()] += item.Quantity
	}

	cancelled := make(map[string]int)

	for _, refund := range order.Refunds {
		for _, rli := range refund.RefundLineItems {
			if rli.RestockType == RestockTypeCancel {
				cancelled[strconv.FormatInt(rli.LineItemID, 10)] += rli.Quantity
			}
		}
	}

	for _, refund := range order.Refunds {
		if refund.HasRefundDiscrepancy() {
			continue
		}
		for _, rli := range refund.RefundLineItems {
			if rli.RestockType != RestockTypeNoRestock {
				continue
			}
			id := strconv.FormatInt(rli.LineItemID, 10)
			if fulfillments.Shipped(id)+cancelled[id]+rli.Quantity <= ordered[id] {
				cancelled[id] += rli.Quantity
			}
		}
	}

	result := integration.CancellationMap{}
	for id, qty := range cancelled {
		if qty > 0 {
			result[id] = &integration.CancellationRecord{
				QuantityCancelled: qty,
				Reason:            integration.CancellationReasonOther,
			}
		}
	}
	return result
}

// OrderContainsCancellations reports whether an order is cancelled or has any
// cancelled line quantity. Refund extraction skips such orders.
func OrderContainsCancellations(order *ShopifyOrder) bool {
	if order.CancelledAt != nil {
		return true
	}
	return len(ReconcileCancellations(order, ReconcileFulfillments(order))) > 0
}

// BuildOrderStatus assembles the reconciled status of an order
func BuildOrderStatus(order *ShopifyOrder) integration.OrderStatus {
	fulfillments := ReconcileFulfillments(order)
	cancellations := ReconcileCancellations(order, fulfillments)

	status := integration.OrderStatus{
		ChannelOrderID: order.IDString(),
		OrderName:      order.Name,
		Cancelled:      order.CancelledAt != nil,
		Lines:          make([]integration.OrderLineStatus, 0, len(order.LineItems)),
	}
	for _, item := range order.LineItems {
		id := item.IDString()
		line := integration.OrderLineStatus{
			LineItemID: id,
			SKU:        item.SKU,
			Quantity:   item.Quantity,
			Shipments:  []integration.ShipmentEvent{},
		}
		if rec, ok := fulfillments[id]; ok {
			line.QuantityShipped = rec.TotalShipped
			line.Shipments = rec.Shipments
		}
		if rec, ok := cancellations[id]; ok {
			line.QuantityCancelled = rec.QuantityCancelled
			line.CancellationReason = rec.Reason
		}
		status.Lines = append(status.Lines, line)
	}
	return status
}
