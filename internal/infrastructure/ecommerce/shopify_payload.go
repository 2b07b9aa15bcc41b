package ecommerce

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erp/orderbridge/internal/domain/integration"
	"github.com/erp/orderbridge/internal/domain/shared/valueobject"
)

const (
	// MarketplaceFulfilledPlaceholder replaces names and addresses of orders the marketplace ships itself
	MarketplaceFulfilledPlaceholder = "MARKETPLACE FULFILLED - DO NOT FULFILL"
	// marketplaceFulfilledEmailPrefix prefixes the dummy email of marketplace-fulfilled orders
	marketplaceFulfilledEmailPrefix = "MARKETPLACE_FULFILLED"

	defaultDiscountName         = "discount"
	defaultShippingDiscountName = "shipping_discount"
	salesTaxTitle               = "Sales Tax"

	inventoryBehaviourBypass    = "bypass"
	inventoryBehaviourDecrement = "decrement_obeying_policy"

	transactionKindSale      = "sale"
	transactionStatusSuccess = "success"
	lineFulfillmentFulfilled = "fulfilled"
)

// Note attribute names
const (
	NoteAttrMarketplace          = "Marketplace"
	NoteAttrOrderNumber          = "Order Number"
	NoteAttrAmazonPrime          = "Amazon Prime"
	NoteAttrCustomerOrderNumber  = "Customer Order Number"
	NoteAttrDeliveryNotes        = "Delivery Notes"
	NoteAttrMarketplaceDiscount  = "Marketplace Sponsored Discount"
	NoteAttrMarketplaceFulfilled = "Marketplace Fulfilled"
)

var nonLetterPattern = regexp.MustCompile(`[^A-Za-z]`)

// BuildPlaceOrderPayload translates a normalized order into a Shopify order-creation payload.
// It performs no I/O; the same order and config always produce the same payload.
func BuildPlaceOrderPayload(order *integration.NormalizedOrder, cfg integration.MerchantConfig) (*OrderPayload, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &payloadBuilder{order: order, cfg: cfg}
	return b.build(), nil
}

// payloadBuilder carries the running totals of a single build
type payloadBuilder struct {
	order *integration.NormalizedOrder
	cfg   integration.MerchantConfig

	totalAmount            decimal.Decimal
	totalTax               decimal.Decimal
	totalShippingCost      decimal.Decimal
	totalShippingTax       decimal.Decimal
	totalDiscounts         decimal.Decimal
	totalShippingDiscounts decimal.Decimal
	discountNames          orderedSet
	shippingDiscountNames  orderedSet
}

func (b *payloadBuilder) build() *OrderPayload {
	order := b.order
	fulfilled := order.MarketplaceFulfilled

	payload := &OrderPayload{
		Currency:              order.Currency,
		Email:                 b.customerEmail(),
		BuyerAcceptsMarketing: order.MarketingOptIn,
		Phone:                 valueobject.NormalizePhone(order.CustomerPhone),
		SourceName:            b.cfg.SourceNameFormat.Format(order.MarketplaceName, order.MarketplaceOrderNumber),
		ShippingAddress:       b.shippingAddress(),
		BillingAddress:        b.billingAddress(),
		// keep Shopify from sending its own customer notifications
		SendReceipt:            false,
		SendFulfillmentReceipt: false,
		SuppressNotifications:  true,
		LineItems:              make([]LineItemPayload, 0, len(order.OrderLines)),
		ShippingLines:          make([]ShippingLinePayload, 0, len(order.OrderLines)),
	}

	note, attributes := b.notes()
	payload.Note = note
	if b.cfg.UseNoteAttributes {
		payload.Note = ""
		payload.NoteAttributes = attributes
	}

	if fulfilled {
		empty := ""
		payload.Phone = &empty
	}

	if order.OrderTags != "" {
		payload.Tags = order.OrderTags
	}
	if order.CustomerTags != "" {
		payload.Customer = &CustomerPayload{Tags: order.CustomerTags}
	}

	for _, line := range order.OrderLines {
		payload.LineItems = append(payload.LineItems, b.lineItem(line))
		payload.ShippingLines = append(payload.ShippingLines, b.shippingLine(line))
	}

	if !b.cfg.DeductShippingDiscountFromShippingPrice {
		b.totalDiscounts = b.totalDiscounts.Add(b.totalShippingDiscounts)
		b.discountNames.addAll(b.shippingDiscountNames)
	}

	if b.totalDiscounts.GreaterThanOrEqual(decimal.New(1, -2)) {
		payload.DiscountCodes = []DiscountCodePayload{{
			Amount: valueobject.RoundCents(b.totalDiscounts),
			Code:   strings.Join(b.discountNames.items, ", "),
		}}
	}

	if b.cfg.AggregateShippingLines {
		b.aggregateShippingLines(payload)
	}

	payload.TotalTax = valueobject.RoundCents(b.totalTax).StringFixed(2)

	totalIsZero := b.totalAmount.IsZero()
	if b.cfg.Transactions && !totalIsZero {
		payload.Transactions = []TransactionPayload{{
			Amount:   valueobject.RoundCents(b.totalAmount),
			Kind:     transactionKindSale,
			Status:   transactionStatusSuccess,
			Currency: order.Currency,
			Gateway:  b.cfg.TransactionGateway,
		}}
	}

	// Marketplaces may omit the currency on free orders. A non-zero order
	// without a currency is left alone so the bad data surfaces.
	if totalIsZero && payload.Currency == "" {
		payload.Currency = b.cfg.DefaultCurrency
	}

	payload.InventoryBehaviour = inventoryBehaviourDecrement
	if fulfilled {
		payload.InventoryBehaviour = inventoryBehaviourBypass
	}

	return payload
}

// customerEmail returns the order email, synthesizing one when absent
func (b *payloadBuilder) customerEmail() string {
	if b.order.MarketplaceFulfilled {
		return marketplaceFulfilledEmailPrefix + "_" + b.cfg.DummyCustomerEmail
	}
	if b.order.CustomerEmail != "" {
		return b.order.CustomerEmail
	}
	name := nonLetterPattern.ReplaceAllString(b.order.ShippingFullName, "")
	return name + "_" + b.cfg.DummyCustomerEmail
}

// notes builds the free-text note and the equivalent ordered note attributes
func (b *payloadBuilder) notes() (string, []ShopifyNoteAttribute) {
	order, cfg := b.order, b.cfg

	var note strings.Builder
	note.WriteString("Marketplace: " + order.MarketplaceName)
	note.WriteString("\nOrder Number: " + order.MarketplaceOrderNumber)

	attributes := []ShopifyNoteAttribute{
		{Name: NoteAttrMarketplace, Value: order.MarketplaceName},
		{Name: NoteAttrOrderNumber, Value: order.MarketplaceOrderNumber},
	}
	addAttribute := func(name, value string, present bool) {
		if present || cfg.AddEmptyInfo {
			attributes = append(attributes, ShopifyNoteAttribute{Name: name, Value: value})
		}
	}

	if order.IsAmazonPrime {
		note.WriteString("\nAmazon Prime: True")
		attributes = append(attributes, ShopifyNoteAttribute{Name: NoteAttrAmazonPrime, Value: "True"})
	}

	if cfg.AddCustomerOrderNumberToNotes || cfg.UseNoteAttributes {
		note.WriteString("\nCustomer Order Number: " + order.CustomerOrderNumber)
		addAttribute(NoteAttrCustomerOrderNumber, order.CustomerOrderNumber, order.CustomerOrderNumber != "")
	}

	if cfg.AddDeliveryNotesToNotes || cfg.UseNoteAttributes {
		note.WriteString("\nDelivery Notes: " + order.DeliveryNotes)
		addAttribute(NoteAttrDeliveryNotes, order.DeliveryNotes, order.DeliveryNotes != "")
	}

	if cfg.IncludeMarketplacePromoNote || cfg.UseNoteAttributes {
		promo := order.PromotionName + " $" + order.PromotionAmount.StringFixed(2)
		note.WriteString("\nMarketplace Sponsored Discount: " + promo)
		addAttribute(NoteAttrMarketplaceDiscount, promo, !order.PromotionAmount.IsZero())
	}

	if order.MarketplaceFulfilled {
		note.WriteString("\n" + MarketplaceFulfilledPlaceholder)
		attributes = append(attributes, ShopifyNoteAttribute{Name: NoteAttrMarketplaceFulfilled, Value: MarketplaceFulfilledPlaceholder})
	}

	return note.String(), attributes
}

func (b *payloadBuilder) shippingAddress() AddressPayload {
	o := b.order
	addr := AddressPayload{
		Name:         o.ShippingFullName,
		Address1:     o.ShippingAddress1,
		Address2:     joinAddressLines(o.ShippingAddress2, o.ShippingAddress3),
		City:         o.ShippingCity,
		Phone:        o.ShippingPhone,
		Zip:          o.ShippingPostalCode,
		ProvinceCode: valueobject.NormalizeStateCode(o.ShippingState),
		CountryCode:  valueobject.NormalizeCountryCode(o.ShippingCountryCode),
	}
	if o.MarketplaceFulfilled {
		suppressAddress(&addr)
	}
	return addr
}

// billingAddress returns nil unless every required billing field is present
func (b *payloadBuilder) billingAddress() *AddressPayload {
	o := b.order
	if !o.BillingInfo.IsComplete() {
		return nil
	}
	addr := &AddressPayload{
		Name:         o.BillingFullName,
		Address1:     o.BillingAddress1,
		Address2:     joinAddressLines(o.BillingAddress2, o.BillingAddress3),
		City:         o.BillingCity,
		Phone:        o.BillingPhone,
		Zip:          o.BillingPostalCode,
		ProvinceCode: valueobject.NormalizeStateCode(o.BillingState),
		CountryCode:  valueobject.NormalizeCountryCode(o.BillingCountryCode),
	}
	if o.MarketplaceFulfilled {
		suppressAddress(addr)
	}
	return addr
}

func suppressAddress(addr *AddressPayload) {
	addr.Name = MarketplaceFulfilledPlaceholder
	addr.Address1 = MarketplaceFulfilledPlaceholder
	addr.Address2 = ""
	addr.City = ""
	addr.Phone = ""
}

func joinAddressLines(line2, line3 string) string {
	switch {
	case line2 != "" && line3 != "":
		return line2 + ", " + line3
	case line2 != "":
		return line2
	default:
		return line3
	}
}

func (b *payloadBuilder) lineItem(line integration.NormalizedOrderLine) LineItemPayload {
	extended := line.ExtendedPrice()
	taxable := line.SalesTax.IsPositive()

	b.totalAmount = b.totalAmount.Add(extended).Add(line.SalesTax)

	item := LineItemPayload{
		Price:            line.UnitPrice,
		RequiresShipping: true,
		Quantity:         line.Quantity,
		VariantID:        line.SKU,
		Taxable:          taxable,
	}
	if b.order.MarketplaceFulfilled {
		item.RequiresShipping = false
		item.FulfillmentStatus = lineFulfillmentFulfilled
	}
	if b.cfg.UseMPProductName {
		item.Title = line.ProductName
	}

	if taxable {
		item.TaxLines = []TaxLinePayload{{
			Price: line.SalesTax,
			Title: salesTaxTitle,
			Rate:  valueobject.RoundRate(valueobject.SafeDiv(line.SalesTax, extended)),
		}}
		b.totalTax = b.totalTax.Add(line.SalesTax)
	}
	return item
}

func (b *payloadBuilder) shippingLine(line integration.NormalizedOrderLine) ShippingLinePayload {
	method := b.cfg.MapShippingMethod(line.ShippingMethod)
	shippingPrice := line.ShippingPrice

	b.totalAmount = b.totalAmount.Add(shippingPrice).Add(line.ShippingTax)

	if !line.Discount.IsZero() {
		discount := line.Discount.Abs()
		b.totalAmount = b.totalAmount.Sub(discount)
		b.totalDiscounts = b.totalDiscounts.Add(discount)
		b.discountNames.add(nameOr(line.DiscountName, defaultDiscountName))
	}

	if !line.ShippingDiscount.IsZero() {
		discount := line.ShippingDiscount.Abs()
		b.totalAmount = b.totalAmount.Sub(discount)
		b.totalShippingDiscounts = b.totalShippingDiscounts.Add(discount)
		b.shippingDiscountNames.add(nameOr(line.ShippingDiscountName, defaultShippingDiscountName))
		if b.cfg.DeductShippingDiscountFromShippingPrice {
			shippingPrice = shippingPrice.Sub(discount)
		}
	}

	b.totalShippingCost = b.totalShippingCost.Add(shippingPrice)

	shipping := ShippingLinePayload{
		Code:  method,
		Price: shippingPrice,
		Title: method,
	}
	if line.ShippingTax.IsPositive() {
		shipping.TaxLines = []TaxLinePayload{{
			Price: line.ShippingTax,
			Title: salesTaxTitle,
			Rate:  valueobject.RoundRate(valueobject.SafeDiv(line.ShippingTax, shippingPrice)),
		}}
		b.totalShippingTax = b.totalShippingTax.Add(line.ShippingTax)
		b.totalTax = b.totalTax.Add(line.ShippingTax)
	}
	return shipping
}

// aggregateShippingLines collapses the per-line shipping lines into one.
//
// The blended sales tax rate wins over the shipping-specific rate when the two
// are within 0.01 of each other; line item rates close to the blended rate are
// snapped to it.
func (b *payloadBuilder) aggregateShippingLines(payload *OrderPayload) {
	first := payload.ShippingLines[0]
	total := ShippingLinePayload{
		Code:  first.Code,
		Price: b.totalShippingCost,
		Title: first.Title,
	}

	if b.totalTax.IsPositive() {
		excludingShippingAndTax := b.totalAmount.Sub(b.totalShippingCost).Sub(b.totalTax)
		taxExcludingShippingTax := b.totalTax.Sub(b.totalShippingTax)
		salesTaxRate := valueobject.RoundRate(valueobject.SafeDiv(taxExcludingShippingTax, excludingShippingAndTax))

		if !b.totalShippingTax.IsZero() {
			shippingTaxRate := valueobject.RoundRate(valueobject.SafeDiv(b.totalShippingTax, total.Price))
			rate := shippingTaxRate
			if valueobject.RatesClose(shippingTaxRate, salesTaxRate) {
				rate = salesTaxRate
			}
			total.TaxLines = []TaxLinePayload{{
				Price: b.totalShippingTax,
				Title: salesTaxTitle,
				Rate:  rate,
			}}
		}

		for i := range payload.LineItems {
			taxLines := payload.LineItems[i].TaxLines
			if len(taxLines) > 0 && valueobject.RatesClose(taxLines[0].Rate, salesTaxRate) {
				taxLines[0].Rate = salesTaxRate
			}
		}
	}

	payload.ShippingLines = []ShippingLinePayload{total}
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// orderedSet keeps distinct strings in first-insertion order
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func (s *orderedSet) add(item string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[item]; ok {
		return
	}
	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
}

func (s *orderedSet) addAll(other orderedSet) {
	for _, item := range other.items {
		s.add(item)
	}
}
