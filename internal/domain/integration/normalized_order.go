package integration

import (
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// NormalizedOrder
// ---------------------------------------------------------------------------

// ShippingInfo is the ship-to block of a normalized order
type ShippingInfo struct {
	ShippingFullName    string `json:"shipping_full_name" validate:"required"`
	ShippingAddress1    string `json:"shipping_address1" validate:"required"`
	ShippingAddress2    string `json:"shipping_address2"`
	ShippingAddress3    string `json:"shipping_address3"`
	ShippingCity        string `json:"shipping_city" validate:"required"`
	ShippingState       string `json:"shipping_state"`
	ShippingPostalCode  string `json:"shipping_postal_code" validate:"required"`
	ShippingCountryCode string `json:"shipping_country_code" validate:"required"`
	ShippingPhone       string `json:"shipping_phone"`
}

// BillingInfo is the bill-to block of a normalized order
type BillingInfo struct {
	BillingFullName    string `json:"billing_full_name"`
	BillingAddress1    string `json:"billing_address1"`
	BillingAddress2    string `json:"billing_address2"`
	BillingAddress3    string `json:"billing_address3"`
	BillingCity        string `json:"billing_city"`
	BillingState       string `json:"billing_state"`
	BillingPostalCode  string `json:"billing_postal_code"`
	BillingCountryCode string `json:"billing_country_code"`
	BillingPhone       string `json:"billing_phone"`
}

// IsComplete returns true when every field a channel needs for a billing address is present
func (b BillingInfo) IsComplete() bool {
	return b.BillingFullName != "" &&
		b.BillingAddress1 != "" &&
		b.BillingCity != "" &&
		b.BillingState != "" &&
		b.BillingPostalCode != "" &&
		b.BillingCountryCode != ""
}

// NormalizedOrder is the marketplace-side canonical order
type NormalizedOrder struct {
	// MarketplaceName is the marketplace the order was placed on
	MarketplaceName string `json:"marketplace_name" validate:"required"`
	// MarketplaceOrderNumber is the marketplace's order number
	MarketplaceOrderNumber string `json:"mp_order_number" validate:"required"`
	// AlternateOrderNumber is a secondary marketplace identifier
	AlternateOrderNumber string `json:"mp_alternate_order_number,omitempty"`
	// CustomerOrderNumber is the buyer's own reference (e.g. a PO number)
	CustomerOrderNumber string `json:"customer_order_number,omitempty"`

	CustomerEmail string `json:"customer_email,omitempty" validate:"omitempty,email"`
	// CustomerPhone is nil when the marketplace sent no phone at all
	CustomerPhone  *string `json:"customer_phone"`
	MarketingOptIn bool    `json:"marketing_opt_in"`

	IsAmazonPrime        bool `json:"is_amazon_prime"`
	MarketplaceFulfilled bool `json:"marketplace_fulfilled"`

	DeliveryNotes string `json:"delivery_notes,omitempty"`
	// PromotionAmount is a marketplace-funded discount that is reported, not charged
	PromotionAmount decimal.Decimal `json:"marketplace_promotion_amount"`
	PromotionName   string          `json:"marketplace_promotion_name,omitempty"`

	OrderTags    string `json:"order_tags,omitempty"`
	CustomerTags string `json:"customer_tags,omitempty"`

	Currency string `json:"currency,omitempty"`

	ShippingInfo
	BillingInfo

	OrderLines []NormalizedOrderLine `json:"order_lines" validate:"required,min=1,dive"`
}

// NormalizedOrderLine is one line of a normalized order.
// Discount and ShippingDiscount are negative when they reduce the order total;
// consumers treat their absolute value as the discount amount.
type NormalizedOrderLine struct {
	OrderLineID          string          `json:"order_line_id,omitempty"`
	SKU                  string          `json:"sku" validate:"required"`
	ProductName          string          `json:"product_name,omitempty"`
	Quantity             int             `json:"quantity" validate:"gte=0"`
	UnitPrice            decimal.Decimal `json:"unit_price"`
	SalesTax             decimal.Decimal `json:"sales_tax"`
	ShippingPrice        decimal.Decimal `json:"shipping_price"`
	ShippingTax          decimal.Decimal `json:"shipping_tax"`
	Discount             decimal.Decimal `json:"discount"`
	DiscountName         string          `json:"discount_name,omitempty"`
	ShippingDiscount     decimal.Decimal `json:"shipping_discount"`
	ShippingDiscountName string          `json:"shipping_discount_name,omitempty"`
	ShippingMethod       string          `json:"shipping_method,omitempty"`
}

// ExtendedPrice returns quantity * unit price
func (l NormalizedOrderLine) ExtendedPrice() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Total returns what the line contributes to the order total:
// extended price + sales tax + shipping + shipping tax - discounts
func (l NormalizedOrderLine) Total() decimal.Decimal {
	return l.ExtendedPrice().
		Add(l.SalesTax).
		Add(l.ShippingPrice).
		Add(l.ShippingTax).
		Sub(l.Discount.Abs()).
		Sub(l.ShippingDiscount.Abs())
}

// Total returns the sum of all line totals
func (o *NormalizedOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.OrderLines {
		total = total.Add(line.Total())
	}
	return total
}

// Validate checks the invariants the payload builder relies on
func (o *NormalizedOrder) Validate() error {
	if o.MarketplaceOrderNumber == "" {
		return ErrOrderSyncInvalidOrder
	}
	if len(o.OrderLines) == 0 {
		return ErrOrderHasNoLines
	}
	for _, line := range o.OrderLines {
		if line.Quantity < 0 {
			return ErrOrderSyncInvalidOrder
		}
	}
	return nil
}
