package ecommerce

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/erp/orderbridge/internal/domain/integration"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), append([]any{"expected %s, got %s", expected, actual.String()}, msgAndArgs...)...)
}

func strPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// newTestOrder returns a two-line order totalling 29.00
func newTestOrder() *integration.NormalizedOrder {
	return &integration.NormalizedOrder{
		MarketplaceName:        "Walmart",
		MarketplaceOrderNumber: "W-1",
		CustomerEmail:          "buyer@example.com",
		CustomerPhone:          strPtr("+1 (212) 555-0100"),
		Currency:               "USD",
		ShippingInfo: integration.ShippingInfo{
			ShippingFullName:    "Jane Doe",
			ShippingAddress1:    "1 Main St",
			ShippingAddress2:    "Apt 1",
			ShippingCity:        "Austin",
			ShippingState:       "Texas",
			ShippingPostalCode:  "78701",
			ShippingCountryCode: "USA",
			ShippingPhone:       "212-555-0100",
		},
		OrderLines: []integration.NormalizedOrderLine{
			{
				SKU:            "SKU-A",
				ProductName:    "Widget",
				Quantity:       2,
				UnitPrice:      dec("10.00"),
				SalesTax:       dec("1.60"),
				ShippingPrice:  dec("5.00"),
				ShippingTax:    dec("0.40"),
				Discount:       dec("-1.00"),
				DiscountName:   "SAVE1",
				ShippingMethod: "Standard",
			},
			{
				SKU:            "SKU-B",
				ProductName:    "Gadget",
				Quantity:       1,
				UnitPrice:      dec("5.00"),
				Discount:       dec("-2.00"),
				DiscountName:   "SAVE2",
				ShippingMethod: "Standard",
			},
		},
	}
}

func newBilling() integration.BillingInfo {
	return integration.BillingInfo{
		BillingFullName:    "John Doe",
		BillingAddress1:    "9 Side St",
		BillingAddress2:    "Suite 4",
		BillingAddress3:    "Floor 2",
		BillingCity:        "Dallas",
		BillingState:       "TX",
		BillingPostalCode:  "75001",
		BillingCountryCode: "US",
		BillingPhone:       "214-555-0199",
	}
}

func lineItem(id int64, sku string, qty int, price string) ShopifyLineItem {
	return ShopifyLineItem{ID: id, SKU: sku, Title: sku, Quantity: qty, Price: dec(price)}
}
