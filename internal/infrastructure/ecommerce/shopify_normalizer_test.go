package ecommerce

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/orderbridge/internal/domain/integration"
)

// newShopifyOrder returns a three-line order whose total_price is 35.80
func newShopifyOrder() *ShopifyOrder {
	l1 := lineItem(1, "A", 2, "10.00")
	l1.TaxLines = []ShopifyTaxLine{{Title: "State", Price: dec("1.60")}}
	l1.DiscountAllocations = []ShopifyDiscountAllocation{{Amount: dec("2.00"), DiscountApplicationIndex: 0}}

	l2 := lineItem(2, "B", 1, "5.00")
	l2.TaxLines = []ShopifyTaxLine{{Title: "State", Price: dec("0.40")}}

	l3 := lineItem(3, "C", 1, "1.00")

	return &ShopifyOrder{
		ID:                  4500,
		Name:                "#1001",
		OrderNumber:         1001,
		Email:               "buyer@example.com",
		Currency:            "USD",
		Note:                "Gift",
		CheckoutID:          555,
		PaymentGatewayNames: []string{"shopify_payments", "manual"},
		TotalPrice:          dec("35.80"),
		TotalShippingPriceSet: &ShopifyPriceSet{
			ShopMoney: ShopifyMoney{Amount: dec("10.00"), CurrencyCode: "USD"},
		},
		ShippingAddress: &ShopifyAddress{
			FirstName:    "Jane",
			LastName:     "Doe",
			Address1:     "1 Main St",
			City:         "Austin",
			ProvinceCode: "TX",
			Zip:          "78701",
			CountryCode:  "US",
		},
		Customer:  &ShopifyCustomer{Phone: "+12125550100", Tags: "vip"},
		LineItems: []ShopifyLineItem{l1, l2, l3},
		ShippingLines: []ShopifyShippingLine{{
			Code:                "Standard",
			Title:               "Standard Shipping",
			Price:               dec("10.00"),
			TaxLines:            []ShopifyTaxLine{{Price: dec("0.80")}},
			DiscountAllocations: []ShopifyDiscountAllocation{{Amount: dec("1.00"), DiscountApplicationIndex: 1}},
		}},
		DiscountApplications: []ShopifyDiscountApplication{
			{Type: "discount_code", TargetType: DiscountTargetLineItem, Code: "SPRING"},
			{Type: "automatic", TargetType: DiscountTargetShippingLine, Title: "Cheaper shipping"},
		},
		NoteAttributes: []ShopifyNoteAttribute{{Name: "gift_wrap", Value: "yes"}},
		PaymentDetails: &ShopifyPaymentDetails{CreditCardNumber: "•••• 4242"},
	}
}

func TestNormalizeOrder_Header(t *testing.T) {
	normalized := NormalizeOrder(newShopifyOrder())

	assert.Equal(t, "Shopify", normalized.MarketplaceName)
	assert.Equal(t, "4500", normalized.MarketplaceOrderNumber)
	assert.Equal(t, "#1001", normalized.AlternateOrderNumber)
	assert.Equal(t, "buyer@example.com", normalized.CustomerEmail)
	require.NotNil(t, normalized.CustomerPhone)
	assert.Equal(t, "+12125550100", *normalized.CustomerPhone)
	assert.Equal(t, "vip", normalized.CustomerTags)
	assert.Equal(t, "USD", normalized.Currency)

	assert.Equal(t, "Jane Doe", normalized.ShippingFullName)
	assert.Equal(t, "TX", normalized.ShippingState)
	assert.Equal(t, "US", normalized.ShippingCountryCode)
	assert.False(t, normalized.BillingInfo.IsComplete())

	assert.Equal(t, "Note: Gift\n"+
		"Payment Gateway: shopify_payments, manual\n"+
		"Checkout ID: 555\n"+
		"Order Number: 1001\n"+
		"gift_wrap: yes\n"+
		"Card: •••• 4242", normalized.DeliveryNotes)
}

func TestNormalizeOrder_SourceNameAndPhone(t *testing.T) {
	order := newShopifyOrder()
	order.SourceName = "web"
	order.Customer = nil

	normalized := NormalizeOrder(order)
	assert.Equal(t, "web", normalized.MarketplaceName)
	assert.Nil(t, normalized.CustomerPhone)
	assert.Empty(t, normalized.CustomerTags)
}

func TestNormalizeOrder_Lines(t *testing.T) {
	normalized := NormalizeOrder(newShopifyOrder())
	require.Len(t, normalized.OrderLines, 3)

	tests := []struct {
		id, sku                    string
		tax, ship, shipTax         string
		discount, shipDiscount     string
		discountName, shipDiscName string
	}{
		{"1", "A", "1.60", "3.34", "0.26", "-2.00", "-0.34", "SPRING", "Cheaper shipping"},
		{"2", "B", "0.40", "3.33", "0.27", "0", "-0.33", "", "Cheaper shipping"},
		{"3", "C", "0", "3.33", "0.27", "0", "-0.33", "", "Cheaper shipping"},
	}

	for i, tt := range tests {
		t.Run(tt.sku, func(t *testing.T) {
			line := normalized.OrderLines[i]
			assert.Equal(t, tt.id, line.OrderLineID)
			assert.Equal(t, tt.sku, line.SKU)
			assert.Equal(t, "Standard", line.ShippingMethod)
			assertDecimal(t, tt.tax, line.SalesTax)
			assertDecimal(t, tt.ship, line.ShippingPrice)
			assertDecimal(t, tt.shipTax, line.ShippingTax)
			assertDecimal(t, tt.discount, line.Discount)
			assertDecimal(t, tt.shipDiscount, line.ShippingDiscount)
			assert.Equal(t, tt.discountName, line.DiscountName)
			assert.Equal(t, tt.shipDiscName, line.ShippingDiscountName)
		})
	}
}

func TestNormalizeOrder_ShippingFallbacks(t *testing.T) {
	order := newShopifyOrder()
	order.TotalShippingPriceSet = nil
	order.ShippingLines = []ShopifyShippingLine{
		{Title: "Express", Price: dec("4.00")},
		{Code: "Other", Price: dec("2.00")},
	}

	normalized := NormalizeOrder(order)
	assert.Equal(t, "Express", normalized.OrderLines[0].ShippingMethod)
	assertDecimal(t, "2.00", normalized.OrderLines[0].ShippingPrice)
	assertDecimal(t, "0", normalized.OrderLines[0].ShippingDiscount)
	assert.Empty(t, normalized.OrderLines[0].ShippingDiscountName)
}

func TestNormalizeOrder_IgnoresLineTargetedShippingAllocations(t *testing.T) {
	order := newShopifyOrder()
	order.ShippingLines[0].DiscountAllocations[0].DiscountApplicationIndex = 0

	normalized := NormalizeOrder(order)
	for _, line := range normalized.OrderLines {
		assert.True(t, line.ShippingDiscount.IsZero())
	}
}

func TestNormalizeOrder_RoundTrip(t *testing.T) {
	order := newShopifyOrder()
	normalized := NormalizeOrder(order)
	assert.True(t, normalized.Total().Equal(order.TotalPrice))

	cfg := integration.DefaultMerchantConfig()
	cfg.Transactions = true
	payload, err := BuildPlaceOrderPayload(normalized, cfg)
	require.NoError(t, err)

	require.Len(t, payload.Transactions, 1)
	assertDecimal(t, "35.80", payload.Transactions[0].Amount)
	assert.Equal(t, "2.80", payload.TotalTax)
}

func TestNormalizeOrder_FromJSON(t *testing.T) {
	raw := `{
		"id": 820982911946154500,
		"name": "#1002",
		"email": "",
		"phone": "555-0100",
		"currency": "EUR",
		"total_price": "12.50",
		"customer": {"email": "fallback@example.com"},
		"line_items": [{"id": 466157049, "sku": "X", "quantity": 1, "price": "12.50", "tax_lines": []}],
		"shipping_lines": []
	}`

	var order ShopifyOrder
	require.NoError(t, json.Unmarshal([]byte(raw), &order))

	normalized := NormalizeOrder(&order)
	assert.Equal(t, "820982911946154500", normalized.MarketplaceOrderNumber)
	assert.Equal(t, "fallback@example.com", normalized.CustomerEmail)
	require.NotNil(t, normalized.CustomerPhone)
	assert.Equal(t, "555-0100", *normalized.CustomerPhone)
	assert.Equal(t, "466157049", normalized.OrderLines[0].OrderLineID)
	assert.True(t, normalized.Total().Equal(order.TotalPrice))
}
