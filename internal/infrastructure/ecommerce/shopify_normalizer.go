package ecommerce

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erp/orderbridge/internal/domain/integration"
	"github.com/erp/orderbridge/internal/domain/shared/valueobject"
)

// shopifyMarketplaceName is used when an order carries no source name
const shopifyMarketplaceName = "Shopify"

// NormalizeOrder translates a Shopify order into the marketplace-side order model.
//
// Shopify reports shipping, shipping tax and shipping discounts per order, not
// per line, so those amounts are spread evenly over the line items with
// DivideAmongLines keyed by line index.
func NormalizeOrder(order *ShopifyOrder) *integration.NormalizedOrder {
	n := len(order.LineItems)

	shipping := valueobject.DivideAmongLines(orderShippingPrice(order), n)
	shippingTax := valueobject.DivideAmongLines(orderShippingTax(order), n)
	shippingDiscount := valueobject.DivideAmongLines(orderShippingDiscount(order), n)
	shippingDiscountName := shippingDiscountLabel(order)
	shippingMethod := orderShippingMethod(order)

	normalized := &integration.NormalizedOrder{
		MarketplaceName:        nameOr(order.SourceName, shopifyMarketplaceName),
		MarketplaceOrderNumber: order.IDString(),
		AlternateOrderNumber:   order.Name,
		CustomerEmail:          order.Email,
		CustomerPhone:          orderPhone(order),
		MarketingOptIn:         order.BuyerAcceptsMarketing,
		DeliveryNotes:          deliveryNotes(order),
		OrderTags:              order.Tags,
		Currency:               order.Currency,
		ShippingInfo:           shippingInfo(order.ShippingAddress),
		BillingInfo:            billingInfo(order.BillingAddress),
		OrderLines:             make([]integration.NormalizedOrderLine, 0, n),
	}
	if order.Customer != nil {
		normalized.CustomerTags = order.Customer.Tags
		if normalized.CustomerEmail == "" {
			normalized.CustomerEmail = order.Customer.Email
		}
	}

	for i, item := range order.LineItems {
		discount, discountName := lineDiscount(order, item)
		line := integration.NormalizedOrderLine{
			OrderLineID:      item.IDString(),
			SKU:              item.SKU,
			ProductName:      item.Title,
			Quantity:         item.Quantity,
			UnitPrice:        item.Price,
			SalesTax:         sumTaxLines(item.TaxLines),
			ShippingPrice:    shipping[i],
			ShippingTax:      shippingTax[i],
			Discount:         discount.Neg(),
			DiscountName:     discountName,
			ShippingDiscount: shippingDiscount[i].Neg(),
			ShippingMethod:   shippingMethod,
		}
		if !shippingDiscount[i].IsZero() {
			line.ShippingDiscountName = shippingDiscountName
		}
		normalized.OrderLines = append(normalized.OrderLines, line)
	}

	return normalized
}

// orderShippingPrice returns the order-level shipping total before discounts
func orderShippingPrice(order *ShopifyOrder) decimal.Decimal {
	if order.TotalShippingPriceSet != nil {
		return order.TotalShippingPriceSet.ShopMoney.Amount
	}
	total := decimal.Zero
	for _, sl := range order.ShippingLines {
		total = total.Add(sl.Price)
	}
	return total
}

func orderShippingTax(order *ShopifyOrder) decimal.Decimal {
	total := decimal.Zero
	for _, sl := range order.ShippingLines {
		total = total.Add(sumTaxLines(sl.TaxLines))
	}
	return total
}

// orderShippingDiscount sums shipping line allocations of shipping-targeted applications
func orderShippingDiscount(order *ShopifyOrder) decimal.Decimal {
	total := decimal.Zero
	for _, sl := range order.ShippingLines {
		for _, alloc := range sl.DiscountAllocations {
			app, ok := discountApplication(order, alloc.DiscountApplicationIndex)
			if !ok || app.TargetType != DiscountTargetShippingLine {
				continue
			}
			total = total.Add(alloc.Amount)
		}
	}
	return total
}

func shippingDiscountLabel(order *ShopifyOrder) string {
	var labels orderedSet
	for _, app := range order.DiscountApplications {
		if app.TargetType == DiscountTargetShippingLine {
			if label := app.Label(); label != "" {
				labels.add(label)
			}
		}
	}
	return strings.Join(labels.items, ", ")
}

func orderShippingMethod(order *ShopifyOrder) string {
	if len(order.ShippingLines) == 0 {
		return ""
	}
	return nameOr(order.ShippingLines[0].Code, order.ShippingLines[0].Title)
}

// lineDiscount sums the line's discount allocations and labels them by their applications
func lineDiscount(order *ShopifyOrder, item ShopifyLineItem) (decimal.Decimal, string) {
	total := decimal.Zero
	var labels orderedSet
	for _, alloc := range item.DiscountAllocations {
		total = total.Add(alloc.Amount)
		if app, ok := discountApplication(order, alloc.DiscountApplicationIndex); ok {
			if label := app.Label(); label != "" {
				labels.add(label)
			}
		}
	}
	return total, strings.Join(labels.items, ", ")
}

func discountApplication(order *ShopifyOrder, index int) (ShopifyDiscountApplication, bool) {
	if index < 0 || index >= len(order.DiscountApplications) {
		return ShopifyDiscountApplication{}, false
	}
	return order.DiscountApplications[index], true
}

func sumTaxLines(lines []ShopifyTaxLine) decimal.Decimal {
	total := decimal.Zero
	for _, tl := range lines {
		total = total.Add(tl.Price)
	}
	return total
}

// orderPhone returns nil when neither the order nor the customer carries a phone
func orderPhone(order *ShopifyOrder) *string {
	phone := order.Phone
	if phone == "" && order.Customer != nil {
		phone = order.Customer.Phone
	}
	if phone == "" {
		return nil
	}
	return &phone
}

// deliveryNotes flattens the order's free-form context into one text block
func deliveryNotes(order *ShopifyOrder) string {
	var parts []string
	if order.Note != "" {
		parts = append(parts, "Note: "+order.Note)
	}
	if len(order.PaymentGatewayNames) > 0 {
		parts = append(parts, "Payment Gateway: "+strings.Join(order.PaymentGatewayNames, ", "))
	}
	if order.CheckoutID != 0 {
		parts = append(parts, "Checkout ID: "+strconv.FormatInt(order.CheckoutID, 10))
	}
	if order.OrderNumber != 0 {
		parts = append(parts, "Order Number: "+strconv.FormatInt(order.OrderNumber, 10))
	}
	for _, attr := range order.NoteAttributes {
		parts = append(parts, attr.Name+": "+attr.Value)
	}
	if order.PaymentDetails != nil && order.PaymentDetails.CreditCardNumber != "" {
		parts = append(parts, "Card: "+order.PaymentDetails.CreditCardNumber)
	}
	return strings.Join(parts, "\n")
}

func shippingInfo(addr *ShopifyAddress) integration.ShippingInfo {
	if addr == nil {
		return integration.ShippingInfo{}
	}
	return integration.ShippingInfo{
		ShippingFullName:    addressName(addr),
		ShippingAddress1:    addr.Address1,
		ShippingAddress2:    addr.Address2,
		ShippingCity:        addr.City,
		ShippingState:       nameOr(addr.ProvinceCode, addr.Province),
		ShippingPostalCode:  addr.Zip,
		ShippingCountryCode: nameOr(addr.CountryCode, addr.Country),
		ShippingPhone:       addr.Phone,
	}
}

func billingInfo(addr *ShopifyAddress) integration.BillingInfo {
	if addr == nil {
		return integration.BillingInfo{}
	}
	return integration.BillingInfo{
		BillingFullName:    addressName(addr),
		BillingAddress1:    addr.Address1,
		BillingAddress2:    addr.Address2,
		BillingCity:        addr.City,
		BillingState:       nameOr(addr.ProvinceCode, addr.Province),
		BillingPostalCode:  addr.Zip,
		BillingCountryCode: nameOr(addr.CountryCode, addr.Country),
		BillingPhone:       addr.Phone,
	}
}

func addressName(addr *ShopifyAddress) string {
	if addr.Name != "" {
		return addr.Name
	}
	return strings.TrimSpace(addr.FirstName + " " + addr.LastName)
}
