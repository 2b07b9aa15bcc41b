package ecommerce

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/erp/orderbridge/internal/domain/integration"
	"github.com/erp/orderbridge/internal/domain/shared/valueobject"
)

// Financial statuses whose orders carry refunds
const (
	FinancialStatusPartiallyRefunded = "partially_refunded"
	FinancialStatusRefunded          = "refunded"
)

// refundFinancialStatuses are walked in this order
var refundFinancialStatuses = []string{FinancialStatusPartiallyRefunded, FinancialStatusRefunded}

const transactionKindRefund = "refund"

// ExtractRefundEvents materializes the refund rows of one order.
//
// Orders with cancellations yield nothing; their refunds are reported as
// cancellations. Refund lines restocked as cancel are skipped. A refund with
// transactions but no refund lines produces one compatibility row per order
// line, splitting the refunded amount evenly.
func ExtractRefundEvents(order *ShopifyOrder) []integration.RefundEvent {
	events := make([]integration.RefundEvent, 0)
	if OrderContainsCancellations(order) {
		return events
	}

	items := make(map[int64]ShopifyLineItem, len(order.LineItems))
	for _, item := range order.LineItems {
		items[item.ID] = item
	}

	for _, refund := range order.Refunds {
		refundID := refund.IDString()

		if len(refund.RefundLineItems) == 0 {
			if len(refund.Transactions) > 0 {
				events = append(events, compatibilityRows(order, &refund)...)
			}
			continue
		}

		for _, rli := range refund.RefundLineItems {
			if rli.RestockType == RestockTypeCancel {
				continue
			}
			item := items[rli.LineItemID]
			events = append(events, integration.RefundEvent{
				RefundID:        refundID,
				RefundLineKey:   integration.RefundLineKey(refundID, strconv.FormatInt(rli.ID, 10)),
				ChannelOrderID:  order.IDString(),
				OrderName:       order.Name,
				LineItemID:      strconv.FormatInt(rli.LineItemID, 10),
				SKU:             item.SKU,
				Quantity:        rli.Quantity,
				QuantityOrdered: item.Quantity,
				UnitPrice:       item.Price,
				Amount:          rli.Subtotal,
				TaxAmount:       rli.TotalTax,
				RestockType:     rli.RestockType,
				Note:            refund.Note,
				RefundedAt:      refund.CreatedAt,
			})
		}
	}
	return events
}

// compatibilityRows spreads a line-less refund over every order line
func compatibilityRows(order *ShopifyOrder, refund *ShopifyRefund) []integration.RefundEvent {
	refundID := refund.IDString()
	amounts := valueobject.DivideAmongLines(refundedAmount(refund), len(order.LineItems))

	rows := make([]integration.RefundEvent, 0, len(order.LineItems))
	for i, item := range order.LineItems {
		lineItemID := item.IDString()
		rows = append(rows, integration.RefundEvent{
			RefundID:         refundID,
			RefundLineKey:    integration.CompatibilityRefundLineKey(refundID, lineItemID),
			ChannelOrderID:   order.IDString(),
			OrderName:        order.Name,
			LineItemID:       lineItemID,
			SKU:              item.SKU,
			Quantity:         item.Quantity,
			QuantityOrdered:  item.Quantity,
			UnitPrice:        item.Price,
			Amount:           amounts[i],
			TaxAmount:        decimal.Zero,
			Note:             refund.Note,
			RefundedAt:       refund.CreatedAt,
			CompatibilityRow: true,
		})
	}
	return rows
}

// refundedAmount sums the refund transactions of a refund
func refundedAmount(refund *ShopifyRefund) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range refund.Transactions {
		if tx.Kind != "" && tx.Kind != transactionKindRefund {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total
}
