package ecommerce

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/erp/orderbridge/internal/domain/integration"
)

// Note attributes that carry return tracking numbers.
// Only the first attribute with either name is read.
const (
	// NoteAttrReturnTrackingInfo holds a JSON list of tracking/return tracking pairs
	NoteAttrReturnTrackingInfo = "return_tracking_info"
	// NoteAttrReturnTrackingNumbers holds a comma separated list aligned with the
	// order in which tracking numbers first appear across fulfillments
	NoteAttrReturnTrackingNumbers = "return_tracking_numbers"
)

// countedFulfillmentStatuses are the fulfillment statuses that count as shipped
var countedFulfillmentStatuses = map[string]bool{
	"success": true,
	"pending": true,
	"open":    true,
}

type returnTrackingPair struct {
	TrackingNumber       string `json:"tracking_number"`
	ReturnTrackingNumber string `json:"return_tracking_number"`
}

// ReconcileFulfillments builds the per-line shipment history of an order
func ReconcileFulfillments(order *ShopifyOrder) integration.FulfillmentMap {
	fulfillments := countedFulfillments(order)
	returns := returnTrackingMap(order.NoteAttributes, fulfillments)

	result := integration.FulfillmentMap{}
	for _, f := range fulfillments {
		trackingNumber := f.PrimaryTrackingNumber()
		for _, line := range f.LineItems {
			result.Record(strconv.FormatInt(line.ID, 10)).AddShipment(integration.ShipmentEvent{
				Quantity:             line.Quantity,
				ShippedAt:            f.CreatedAt,
				TrackingNumber:       trackingNumber,
				Carrier:              f.TrackingCompany,
				TrackingURL:          f.TrackingURL,
				ReturnTrackingNumber: returns[trackingNumber],
			})
		}
	}
	return result
}

func countedFulfillments(order *ShopifyOrder) []ShopifyFulfillment {
	counted := make([]ShopifyFulfillment, 0, len(order.Fulfillments))
	for _, f := range order.Fulfillments {
		if countedFulfillmentStatuses[f.Status] {
			counted = append(counted, f)
		}
	}
	return counted
}

// returnTrackingMap maps outbound tracking numbers to return tracking numbers.
// Existing entries are never overwritten, even when empty.
func returnTrackingMap(attributes []ShopifyNoteAttribute, fulfillments []ShopifyFulfillment) map[string]string {
	returns := make(map[string]string)

	for _, attr := range attributes {
		switch attr.Name {
		case NoteAttrReturnTrackingInfo:
			var pairs []returnTrackingPair
			if err := json.Unmarshal([]byte(attr.Value), &pairs); err != nil {
				return returns
			}
			for _, p := range pairs {
				if _, exists := returns[p.TrackingNumber]; !exists {
					returns[p.TrackingNumber] = p.ReturnTrackingNumber
				}
			}
			return returns

		case NoteAttrReturnTrackingNumbers:
			// Positional: a change in upstream fulfillment order would misattribute these.
			values := strings.Split(attr.Value, ",")
			for i, tn := range firstSeenTrackingNumbers(fulfillments) {
				if i >= len(values) {
					break
				}
				if _, exists := returns[tn]; !exists {
					returns[tn] = strings.TrimSpace(values[i])
				}
			}
			return returns
		}
	}
	return returns
}

func firstSeenTrackingNumbers(fulfillments []ShopifyFulfillment) []string {
	var seen orderedSet
	for _, f := range fulfillments {
		if tn := f.PrimaryTrackingNumber(); tn != "" {
			seen.add(tn)
		}
	}
	return seen.items
}
