package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SourceNameFormat selects how the channel order's source name is built
type SourceNameFormat string

const (
	// SourceNameMarketplaceName uses the marketplace name only
	SourceNameMarketplaceName SourceNameFormat = "Marketplace Name"
	// SourceNameMarketplaceOrderNumber uses the marketplace order number only
	SourceNameMarketplaceOrderNumber SourceNameFormat = "Marketplace Order Number"
	// SourceNameMarketplaceNameAndOrderNumber uses "<name> <number>"
	SourceNameMarketplaceNameAndOrderNumber SourceNameFormat = "Marketplace Name + Marketplace Order Number"
)

// IsValid returns true if the format is one of the known formats
func (f SourceNameFormat) IsValid() bool {
	switch f {
	case SourceNameMarketplaceName, SourceNameMarketplaceOrderNumber, SourceNameMarketplaceNameAndOrderNumber:
		return true
	default:
		return false
	}
}

// Format builds the source name for an order
func (f SourceNameFormat) Format(marketplaceName, orderNumber string) string {
	switch f {
	case SourceNameMarketplaceName:
		return marketplaceName
	case SourceNameMarketplaceOrderNumber:
		return orderNumber
	default:
		return marketplaceName + " " + orderNumber
	}
}

// MerchantConfig holds the merchant's place-order options.
// Every option has a fixed default; see DefaultMerchantConfig.
type MerchantConfig struct {
	// AddDeliveryNotesToNotes appends delivery notes to the order note (default false)
	AddDeliveryNotesToNotes bool `json:"add_delivery_notes_to_notes"`
	// AddEmptyInfo emits note attributes even when their value is empty (default false)
	AddEmptyInfo bool `json:"add_empty_info"`
	// AggregateShippingLines collapses per-line shipping into a single shipping line (default false)
	AggregateShippingLines bool `json:"aggregate_shipping_lines"`
	// AddCustomerOrderNumberToNotes appends the customer order number to the note (default false)
	AddCustomerOrderNumberToNotes bool `json:"add_customer_order_number_to_notes"`
	// DeductShippingDiscountFromShippingPrice nets shipping discounts out of shipping lines
	// instead of reporting them as a discount code (default false)
	DeductShippingDiscountFromShippingPrice bool `json:"deduct_shipping_discount_from_shipping_price"`
	// DefaultCurrency applies to zero-total orders that arrive without a currency (default USD)
	DefaultCurrency string `json:"default_currency"`
	// DummyCustomerEmail is the address used to synthesize missing customer emails
	DummyCustomerEmail string `json:"dummy_customer_email"`
	// IncludeMarketplacePromoNote appends marketplace-sponsored discounts to the note (default false)
	IncludeMarketplacePromoNote bool `json:"include_marketplace_promo_note"`
	// ShippingMethodMap translates marketplace shipping methods to channel shipping codes
	ShippingMethodMap map[string]string `json:"shipping_method_map"`
	// SourceNameFormat selects the source name format
	SourceNameFormat SourceNameFormat `json:"source_name_format"`
	// TransactionGateway names the gateway on the emitted sale transaction
	TransactionGateway string `json:"transaction_gateway"`
	// Transactions emits a sale transaction for the order total (default false)
	Transactions bool `json:"transactions"`
	// UseMPProductName sends the marketplace product name as the line title (default true)
	UseMPProductName bool `json:"use_mp_product_name"`
	// UseNoteAttributes replaces the free-text note with structured note attributes (default false)
	UseNoteAttributes bool `json:"use_note_attributes"`
}

const (
	// DefaultDummyCustomerEmail is the default synthetic email domain part
	DefaultDummyCustomerEmail = "dummy_customer_override@example.com"
	// DefaultMerchantCurrency is the default currency for zero-total orders
	DefaultMerchantCurrency = "USD"
)

// DefaultMerchantConfig returns the documented defaults
func DefaultMerchantConfig() MerchantConfig {
	return MerchantConfig{
		AddDeliveryNotesToNotes:                 false,
		AddEmptyInfo:                            false,
		AggregateShippingLines:                  false,
		AddCustomerOrderNumberToNotes:           false,
		DeductShippingDiscountFromShippingPrice: false,
		DefaultCurrency:                         DefaultMerchantCurrency,
		DummyCustomerEmail:                      DefaultDummyCustomerEmail,
		IncludeMarketplacePromoNote:             false,
		ShippingMethodMap:                       map[string]string{},
		SourceNameFormat:                        SourceNameMarketplaceNameAndOrderNumber,
		TransactionGateway:                      "",
		Transactions:                            false,
		UseMPProductName:                        true,
		UseNoteAttributes:                       false,
	}
}

// ParseMerchantConfig merges a caller-supplied JSON object over the defaults.
// Keys absent from raw keep their default; unknown keys are rejected.
func ParseMerchantConfig(raw json.RawMessage) (MerchantConfig, error) {
	cfg := DefaultMerchantConfig()

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return cfg, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return MerchantConfig{}, fmt.Errorf("%w: %v", ErrInvalidMerchantConfig, err)
	}
	if cfg.ShippingMethodMap == nil {
		cfg.ShippingMethodMap = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return MerchantConfig{}, err
	}
	return cfg, nil
}

// Validate validates the merchant configuration
func (c MerchantConfig) Validate() error {
	if !c.SourceNameFormat.IsValid() {
		return fmt.Errorf("%w: unknown source_name_format %q", ErrInvalidMerchantConfig, c.SourceNameFormat)
	}
	if c.DummyCustomerEmail == "" {
		return fmt.Errorf("%w: dummy_customer_email cannot be empty", ErrInvalidMerchantConfig)
	}
	return nil
}

// MapShippingMethod translates a marketplace shipping method, falling back to the method itself
func (c MerchantConfig) MapShippingMethod(method string) string {
	if mapped, ok := c.ShippingMethodMap[method]; ok {
		return mapped
	}
	return method
}
