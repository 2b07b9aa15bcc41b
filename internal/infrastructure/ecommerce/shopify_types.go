package ecommerce

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Inbound Shopify order document
// ---------------------------------------------------------------------------

// ShopifyOrdersResponse is the response for GET orders.json
type ShopifyOrdersResponse struct {
	Orders []ShopifyOrder `json:"orders"`
}

// ShopifyOrderResponse is the response for POST orders.json
type ShopifyOrderResponse struct {
	Order *ShopifyOrder `json:"order"`
}

// ShopifyCountResponse is the response for GET orders/count.json
type ShopifyCountResponse struct {
	Count *int `json:"count"`
}

// ShopifyOrder is a Shopify order as returned by the Admin REST API
type ShopifyOrder struct {
	ID                    int64                        `json:"id"`
	Name                  string                       `json:"name"`
	OrderNumber           int64                        `json:"order_number"`
	Email                 string                       `json:"email"`
	Phone                 string                       `json:"phone"`
	Note                  string                       `json:"note"`
	Currency              string                       `json:"currency"`
	SourceName            string                       `json:"source_name"`
	Tags                  string                       `json:"tags"`
	BuyerAcceptsMarketing bool                         `json:"buyer_accepts_marketing"`
	CreatedAt             *time.Time                   `json:"created_at"`
	UpdatedAt             *time.Time                   `json:"updated_at"`
	CancelledAt           *time.Time                   `json:"cancelled_at"`
	CancelReason          string                       `json:"cancel_reason"`
	FinancialStatus       string                       `json:"financial_status"`
	FulfillmentStatus     string                       `json:"fulfillment_status"`
	CheckoutID            int64                        `json:"checkout_id"`
	PaymentGatewayNames   []string                     `json:"payment_gateway_names"`
	TotalPrice            decimal.Decimal              `json:"total_price"`
	SubtotalPrice         decimal.Decimal              `json:"subtotal_price"`
	TotalTax              decimal.Decimal              `json:"total_tax"`
	TotalShippingPriceSet *ShopifyPriceSet             `json:"total_shipping_price_set"`
	ShippingAddress       *ShopifyAddress              `json:"shipping_address"`
	BillingAddress        *ShopifyAddress              `json:"billing_address"`
	Customer              *ShopifyCustomer             `json:"customer"`
	LineItems             []ShopifyLineItem            `json:"line_items"`
	ShippingLines         []ShopifyShippingLine        `json:"shipping_lines"`
	DiscountApplications  []ShopifyDiscountApplication `json:"discount_applications"`
	Fulfillments          []ShopifyFulfillment         `json:"fulfillments"`
	Refunds               []ShopifyRefund              `json:"refunds"`
	NoteAttributes        []ShopifyNoteAttribute       `json:"note_attributes"`
	PaymentDetails        *ShopifyPaymentDetails       `json:"payment_details"`
}

// IDString returns the order ID as a string
func (o *ShopifyOrder) IDString() string {
	return strconv.FormatInt(o.ID, 10)
}

// ShopifyPriceSet carries an amount in shop and presentment currencies
type ShopifyPriceSet struct {
	ShopMoney ShopifyMoney `json:"shop_money"`
}

// ShopifyMoney is an amount with its currency
type ShopifyMoney struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency_code"`
}

// ShopifyAddress is a shipping or billing address
type ShopifyAddress struct {
	Name         string `json:"name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Company      string `json:"company"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	City         string `json:"city"`
	Province     string `json:"province"`
	ProvinceCode string `json:"province_code"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
	CountryCode  string `json:"country_code"`
	Phone        string `json:"phone"`
}

// ShopifyCustomer is the customer attached to an order
type ShopifyCustomer struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Tags  string `json:"tags"`
}

// ShopifyLineItem is one line of an order
type ShopifyLineItem struct {
	ID                  int64                       `json:"id"`
	VariantID           int64                       `json:"variant_id"`
	SKU                 string                      `json:"sku"`
	Title               string                      `json:"title"`
	Quantity            int                         `json:"quantity"`
	Price               decimal.Decimal             `json:"price"`
	TaxLines            []ShopifyTaxLine            `json:"tax_lines"`
	DiscountAllocations []ShopifyDiscountAllocation `json:"discount_allocations"`
}

// IDString returns the line item ID as a string
func (l *ShopifyLineItem) IDString() string {
	return strconv.FormatInt(l.ID, 10)
}

// ShopifyShippingLine is one shipping charge of an order
type ShopifyShippingLine struct {
	Code                string                      `json:"code"`
	Title               string                      `json:"title"`
	Price               decimal.Decimal             `json:"price"`
	TaxLines            []ShopifyTaxLine            `json:"tax_lines"`
	DiscountAllocations []ShopifyDiscountAllocation `json:"discount_allocations"`
}

// ShopifyTaxLine is a tax charged on a line
type ShopifyTaxLine struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Rate  decimal.Decimal `json:"rate"`
}

// ShopifyDiscountAllocation is the share of a discount application applied to a line
type ShopifyDiscountAllocation struct {
	Amount                   decimal.Decimal `json:"amount"`
	DiscountApplicationIndex int             `json:"discount_application_index"`
}

// Discount application target types
const (
	DiscountTargetLineItem     = "line_item"
	DiscountTargetShippingLine = "shipping_line"
)

// ShopifyDiscountApplication describes one discount event on an order
type ShopifyDiscountApplication struct {
	Type        string          `json:"type"`
	TargetType  string          `json:"target_type"`
	Code        string          `json:"code"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	ValueType   string          `json:"value_type"`
}

// Label returns the display label of the application: code, then title, then description
func (d ShopifyDiscountApplication) Label() string {
	switch {
	case d.Code != "":
		return d.Code
	case d.Title != "":
		return d.Title
	default:
		return d.Description
	}
}

// ShopifyFulfillment is one fulfillment of an order
type ShopifyFulfillment struct {
	ID              int64                    `json:"id"`
	Status          string                   `json:"status"`
	CreatedAt       *time.Time               `json:"created_at"`
	TrackingCompany string                   `json:"tracking_company"`
	TrackingNumber  string                   `json:"tracking_number"`
	TrackingNumbers []string                 `json:"tracking_numbers"`
	TrackingURL     string                   `json:"tracking_url"`
	LineItems       []ShopifyFulfillmentLine `json:"line_items"`
}

// PrimaryTrackingNumber returns the tracking number, falling back to the first of the list
func (f ShopifyFulfillment) PrimaryTrackingNumber() string {
	if f.TrackingNumber != "" {
		return f.TrackingNumber
	}
	for _, tn := range f.TrackingNumbers {
		if tn != "" {
			return tn
		}
	}
	return ""
}

// ShopifyFulfillmentLine is a line item shipped in a fulfillment
type ShopifyFulfillmentLine struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

// Refund restock types
const (
	RestockTypeCancel    = "cancel"
	RestockTypeNoRestock = "no_restock"
	RestockTypeRestock   = "restock"
	RestockTypeReturn    = "return"
)

// OrderAdjustmentRefundDiscrepancy marks a refund whose amount did not match its lines
const OrderAdjustmentRefundDiscrepancy = "refund_discrepancy"

// ShopifyRefund is one refund of an order
type ShopifyRefund struct {
	ID               int64                    `json:"id"`
	CreatedAt        *time.Time               `json:"created_at"`
	Note             string                   `json:"note"`
	Transactions     []ShopifyTransaction     `json:"transactions"`
	RefundLineItems  []ShopifyRefundLineItem  `json:"refund_line_items"`
	OrderAdjustments []ShopifyOrderAdjustment `json:"order_adjustments"`
}

// IDString returns the refund ID as a string
func (r *ShopifyRefund) IDString() string {
	return strconv.FormatInt(r.ID, 10)
}

// HasRefundDiscrepancy returns true if any adjustment is a refund discrepancy
func (r *ShopifyRefund) HasRefundDiscrepancy() bool {
	for _, adj := range r.OrderAdjustments {
		if adj.Kind == OrderAdjustmentRefundDiscrepancy {
			return true
		}
	}
	return false
}

// ShopifyRefundLineItem is one refunded line
type ShopifyRefundLineItem struct {
	ID          int64           `json:"id"`
	LineItemID  int64           `json:"line_item_id"`
	Quantity    int             `json:"quantity"`
	RestockType string          `json:"restock_type"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TotalTax    decimal.Decimal `json:"total_tax"`
}

// ShopifyOrderAdjustment is a refund-level amount not tied to a line
type ShopifyOrderAdjustment struct {
	ID     int64           `json:"id"`
	Kind   string          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

// ShopifyTransaction is a payment transaction
type ShopifyTransaction struct {
	ID     int64           `json:"id"`
	Kind   string          `json:"kind"`
	Status string          `json:"status"`
	Amount decimal.Decimal `json:"amount"`
}

// ShopifyNoteAttribute is a name/value pair attached to an order
type ShopifyNoteAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ShopifyPaymentDetails carries masked card data
type ShopifyPaymentDetails struct {
	CreditCardNumber  string `json:"credit_card_number"`
	CreditCardCompany string `json:"credit_card_company"`
}

// ---------------------------------------------------------------------------
// Outbound order-creation payload
// ---------------------------------------------------------------------------

// ShopifyCreateOrderRequest wraps the payload for POST orders.json
type ShopifyCreateOrderRequest struct {
	Order *OrderPayload `json:"order"`
}

// OrderPayload is the order-creation document sent to Shopify
type OrderPayload struct {
	Currency               string                 `json:"currency"`
	Email                  string                 `json:"email"`
	BuyerAcceptsMarketing  bool                   `json:"buyer_accepts_marketing"`
	Phone                  *string                `json:"phone"`
	Note                   string                 `json:"note"`
	NoteAttributes         []ShopifyNoteAttribute `json:"note_attributes,omitempty"`
	ShippingAddress        AddressPayload         `json:"shipping_address"`
	BillingAddress         *AddressPayload        `json:"billing_address,omitempty"`
	SourceName             string                 `json:"source_name"`
	SendReceipt            bool                   `json:"send_receipt"`
	SendFulfillmentReceipt bool                   `json:"send_fulfillment_receipt"`
	SuppressNotifications  bool                   `json:"suppress_notifications"`
	Tags                   string                 `json:"tags,omitempty"`
	Customer               *CustomerPayload       `json:"customer,omitempty"`
	LineItems              []LineItemPayload      `json:"line_items"`
	ShippingLines          []ShippingLinePayload  `json:"shipping_lines"`
	DiscountCodes          []DiscountCodePayload  `json:"discount_codes,omitempty"`
	TotalTax               string                 `json:"total_tax"`
	Transactions           []TransactionPayload   `json:"transactions,omitempty"`
	InventoryBehaviour     string                 `json:"inventory_behaviour"`
}

// AddressPayload is an address in an order-creation payload
type AddressPayload struct {
	Name         string `json:"name"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2,omitempty"`
	City         string `json:"city"`
	Phone        string `json:"phone"`
	Zip          string `json:"zip"`
	ProvinceCode string `json:"province_code"`
	CountryCode  string `json:"country_code"`
}

// CustomerPayload carries customer-level fields
type CustomerPayload struct {
	Tags string `json:"tags"`
}

// LineItemPayload is a line in an order-creation payload
type LineItemPayload struct {
	Price             decimal.Decimal  `json:"price"`
	RequiresShipping  bool             `json:"requires_shipping"`
	Quantity          int              `json:"quantity"`
	VariantID         string           `json:"variant_id"`
	Taxable           bool             `json:"taxable"`
	Title             string           `json:"title,omitempty"`
	FulfillmentStatus string           `json:"fulfillment_status,omitempty"`
	TaxLines          []TaxLinePayload `json:"tax_lines,omitempty"`
}

// ShippingLinePayload is a shipping charge in an order-creation payload
type ShippingLinePayload struct {
	Code     string           `json:"code"`
	Price    decimal.Decimal  `json:"price"`
	Title    string           `json:"title"`
	TaxLines []TaxLinePayload `json:"tax_lines,omitempty"`
}

// TaxLinePayload is a tax line in an order-creation payload
type TaxLinePayload struct {
	Price decimal.Decimal `json:"price"`
	Title string          `json:"title"`
	Rate  decimal.Decimal `json:"rate"`
}

// DiscountCodePayload is the aggregated discount of an order-creation payload
type DiscountCodePayload struct {
	Amount decimal.Decimal `json:"amount"`
	Code   string          `json:"code"`
}

// TransactionPayload is the sale transaction of an order-creation payload
type TransactionPayload struct {
	Amount   decimal.Decimal `json:"amount"`
	Kind     string          `json:"kind"`
	Status   string          `json:"status"`
	Currency string          `json:"currency"`
	Gateway  string          `json:"gateway"`
}

// ParseDecimal parses a decimal string, returning zero for empty or invalid input
func ParseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
