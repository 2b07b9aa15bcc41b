package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/erp/orderbridge/internal/domain/integration"
	"github.com/erp/orderbridge/internal/infrastructure/telemetry"
)

// phoneInvalidMarker is the rejection text that triggers the single phone-less retry
const phoneInvalidMarker = "Phone is invalid"

// Operation names used in logs and metrics
const (
	OperationPlaceOrder    = "place_order"
	OperationOrderStatuses = "order_statuses"
	OperationRefunds       = "order_refunds"
	OperationOrders        = "orders"
)

// PageRecorder observes paginated walks
type PageRecorder interface {
	// ObservePage counts one fetched page of an operation
	ObservePage(operation string)
	// ObservePageLimit counts a walk that stopped at its page ceiling
	ObservePageLimit(operation string)
	// ObservePhoneRetry counts a place-order retried without the phone
	ObservePhoneRetry()
}

type nopPageRecorder struct{}

func (nopPageRecorder) ObservePage(string)      {}
func (nopPageRecorder) ObservePageLimit(string) {}
func (nopPageRecorder) ObservePhoneRetry()      {}

// ---------------------------------------------------------------------------
// Factory
// ---------------------------------------------------------------------------

// ShopifyChannelFactory builds adapters bound to a storefront
type ShopifyChannelFactory struct {
	config    *ShopifyConfig
	transport integration.Transport
	logger    *zap.Logger
	pages     PageRecorder
}

// FactoryOption configures a ShopifyChannelFactory
type FactoryOption func(*ShopifyChannelFactory)

// WithLogger sets the logger handed to every adapter
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *ShopifyChannelFactory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithPageRecorder sets the page recorder handed to every adapter
func WithPageRecorder(pages PageRecorder) FactoryOption {
	return func(f *ShopifyChannelFactory) {
		if pages != nil {
			f.pages = pages
		}
	}
}

// NewShopifyChannelFactory creates a factory for Shopify adapters
func NewShopifyChannelFactory(config *ShopifyConfig, transport integration.Transport, opts ...FactoryOption) (*ShopifyChannelFactory, error) {
	if config == nil {
		config = NewShopifyConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, integration.ErrPlatformNotConfigured
	}

	f := &ShopifyChannelFactory{
		config:    config,
		transport: transport,
		logger:    zap.NewNop(),
		pages:     nopPageRecorder{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// ForStore returns an adapter that talks to the given storefront
func (f *ShopifyChannelFactory) ForStore(creds integration.StoreCredentials) (integration.OrderChannel, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return &ShopifyAdapter{
		config:    f.config,
		transport: f.transport,
		creds:     creds,
		logger:    f.logger.With(zap.String("store_id", creds.StoreID)),
		pages:     f.pages,
	}, nil
}

// ---------------------------------------------------------------------------
// Adapter
// ---------------------------------------------------------------------------

// ShopifyAdapter implements integration.OrderChannel for one Shopify store
type ShopifyAdapter struct {
	config    *ShopifyConfig
	transport integration.Transport
	creds     integration.StoreCredentials
	logger    *zap.Logger
	pages     PageRecorder
}

// PlatformCode returns the platform code this adapter handles
func (a *ShopifyAdapter) PlatformCode() integration.PlatformCode {
	return integration.PlatformCodeShopify
}

// PlaceOrder builds the order-creation payload and posts it.
// A rejection mentioning an invalid phone is retried once without the phone.
func (a *ShopifyAdapter) PlaceOrder(ctx context.Context, order *integration.NormalizedOrder, config integration.MerchantConfig) (*integration.PlaceOrderResult, error) {
	payload, err := BuildPlaceOrderPayload(order, config)
	if err != nil {
		return nil, err
	}

	resp, err := a.createOrder(ctx, payload)
	retried := false
	if err != nil && isPhoneInvalid(err) {
		a.logger.Warn("shopify rejected phone, retrying without it",
			zap.String("mp_order_number", order.MarketplaceOrderNumber))
		a.pages.ObservePhoneRetry()

		stripPhones(payload)
		resp, err = a.createOrder(ctx, payload)
		retried = true
	}
	if err != nil {
		return nil, err
	}

	var created ShopifyOrderResponse
	if err := json.Unmarshal(resp.Body, &created); err != nil {
		return nil, integration.NewMalformedError(a.ordersURL(), resp, err)
	}
	if created.Order == nil {
		return nil, integration.NewMalformedError(a.ordersURL(), resp, fmt.Errorf("response has no order"))
	}

	a.logger.Info("shopify order created",
		zap.String("mp_order_number", order.MarketplaceOrderNumber),
		zap.Int64("channel_order_id", created.Order.ID),
		zap.Bool("phone_retried", retried))

	return &integration.PlaceOrderResult{
		ChannelOrderID:   created.Order.IDString(),
		ChannelOrderName: created.Order.Name,
		PhoneRetried:     retried,
		Response:         resp,
	}, nil
}

// stripPhones blanks every phone Shopify validates on order creation
func stripPhones(payload *OrderPayload) {
	stripped := ""
	payload.Phone = &stripped
	payload.ShippingAddress.Phone = ""
	if payload.BillingAddress != nil {
		payload.BillingAddress.Phone = ""
	}
}

func (a *ShopifyAdapter) createOrder(ctx context.Context, payload *OrderPayload) (*integration.TransportResponse, error) {
	return a.send(ctx, http.MethodPost, a.ordersURL(), nil, &ShopifyCreateOrderRequest{Order: payload})
}

func isPhoneInvalid(err error) bool {
	ce, ok := integration.AsChannelError(err)
	if !ok || ce.Kind != integration.ChannelErrorRejected {
		return false
	}
	return strings.Contains(string(ce.Body), phoneInvalidMarker)
}

// GetOrderStatuses reconciles fulfillment and cancellation state for the given orders
func (a *ShopifyAdapter) GetOrderStatuses(ctx context.Context, channelOrderIDs []string) (*integration.OrderStatusResult, error) {
	if len(channelOrderIDs) > a.config.MaxStatusIDs {
		return nil, fmt.Errorf("%w: %d ids, at most %d", integration.ErrTooManyOrderIDs, len(channelOrderIDs), a.config.MaxStatusIDs)
	}
	if len(channelOrderIDs) == 0 {
		return &integration.OrderStatusResult{Statuses: []integration.OrderStatus{}, FailedIDs: []string{}}, nil
	}

	query := url.Values{}
	query.Set("ids", strings.Join(channelOrderIDs, ","))
	query.Set("status", "any")
	query.Set("limit", strconv.Itoa(a.config.MaxStatusIDs))

	orders, resp, err := a.fetchOrders(ctx, query)
	if err != nil {
		return nil, err
	}
	a.pages.ObservePage(OperationOrderStatuses)

	statuses := make([]integration.OrderStatus, 0, len(orders))
	for i := range orders {
		statuses = append(statuses, BuildOrderStatus(&orders[i]))
	}

	return &integration.OrderStatusResult{
		Statuses:  statuses,
		FailedIDs: integration.FailedOrderIDs(channelOrderIDs, statuses),
		Response:  resp,
	}, nil
}

// GetRefunds extracts refund events for orders updated within the range.
// A zero order count short-circuits without walking any pages.
func (a *ShopifyAdapter) GetRefunds(ctx context.Context, start, end time.Time) (*integration.RefundBatch, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s before start %s", integration.ErrInvalidDateRange, end, start)
	}
	start, end = start.UTC(), end.UTC()

	batch := integration.NewRefundBatch()
	for _, status := range refundFinancialStatuses {
		count, err := a.countOrders(ctx, refundQuery(status, start, end))
		if err != nil {
			return nil, err
		}
		batch.OrderCount += count
	}
	if batch.OrderCount == 0 {
		return batch, nil
	}

	for _, status := range refundFinancialStatuses {
		query := refundQuery(status, start, end)
		query.Set("limit", strconv.Itoa(a.config.PageSize))

		limited, err := a.walkPages(ctx, OperationRefunds, query, a.config.RefundPageCeiling, func(orders []ShopifyOrder) {
			for i := range orders {
				batch.Refunds = append(batch.Refunds, ExtractRefundEvents(&orders[i])...)
			}
		})
		if err != nil {
			return nil, err
		}
		if limited {
			batch.PageLimitReached = true
		}
	}

	a.logger.Debug("shopify refunds extracted",
		zap.Int("order_count", batch.OrderCount),
		zap.Int("refunds", len(batch.Refunds)),
		zap.Bool("page_limit_reached", batch.PageLimitReached))
	return batch, nil
}

func refundQuery(financialStatus string, start, end time.Time) url.Values {
	query := url.Values{}
	query.Set("financial_status", financialStatus)
	query.Set("status", "any")
	query.Set("updated_at_min", start.Format(time.RFC3339))
	query.Set("updated_at_max", end.Format(time.RFC3339))
	return query
}

// walkPages follows Link header cursors until the last page or the ceiling.
// It returns true when the ceiling stopped the walk.
func (a *ShopifyAdapter) walkPages(ctx context.Context, operation string, query url.Values, ceiling int, visit func([]ShopifyOrder)) (bool, error) {
	for page := 1; ; page++ {
		orders, resp, err := a.fetchPage(ctx, operation, page, query)
		if err != nil {
			return false, err
		}
		visit(orders)

		next, ok := NextPageQuery(resp.Headers.Get("Link"))
		if !ok {
			return false, nil
		}
		if page >= ceiling {
			a.logger.Warn("shopify page ceiling reached",
				zap.String("operation", operation),
				zap.Int("pages", page))
			a.pages.ObservePageLimit(operation)
			return true, nil
		}
		query = next
	}
}

// ListOrders lists orders created since the given time, chaining since_id
func (a *ShopifyAdapter) ListOrders(ctx context.Context, since time.Time) (*integration.OrderListResult, error) {
	result := &integration.OrderListResult{Orders: []integration.NormalizedOrder{}}

	var sinceID int64
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("status", "any")
		query.Set("created_at_min", since.UTC().Format(time.RFC3339))
		query.Set("since_id", strconv.FormatInt(sinceID, 10))
		query.Set("limit", strconv.Itoa(a.config.PageSize))

		orders, _, err := a.fetchPage(ctx, OperationOrders, page, query)
		if err != nil {
			return nil, err
		}

		for i := range orders {
			result.Orders = append(result.Orders, *NormalizeOrder(&orders[i]))
			if orders[i].ID > sinceID {
				sinceID = orders[i].ID
			}
		}

		if len(orders) < a.config.PageSize {
			return result, nil
		}
		if page >= a.config.OrderPageCeiling {
			a.logger.Warn("shopify page ceiling reached",
				zap.String("operation", OperationOrders),
				zap.Int("pages", page))
			a.pages.ObservePageLimit(OperationOrders)
			result.PageLimitReached = true
			return result, nil
		}
	}
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

func (a *ShopifyAdapter) ordersURL() string {
	return a.config.AdminURL(a.creds.StoreID, "orders.json")
}

// fetchPage fetches one page of orders in its own span and counts it
func (a *ShopifyAdapter) fetchPage(ctx context.Context, operation string, page int, query url.Values) ([]ShopifyOrder, *integration.TransportResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "shopify."+operation+".page",
		telemetry.WithAttributes(
			telemetry.AttrStoreID.String(a.creds.StoreID),
			telemetry.AttrOperation.String(operation),
			telemetry.AttrPage.Int(page),
		),
	)
	defer span.End()

	orders, resp, err := a.fetchOrders(ctx, query)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, nil, err
	}
	span.SetAttributes(telemetry.AttrPageOrders.Int(len(orders)))
	a.pages.ObservePage(operation)
	return orders, resp, nil
}

func (a *ShopifyAdapter) fetchOrders(ctx context.Context, query url.Values) ([]ShopifyOrder, *integration.TransportResponse, error) {
	resp, err := a.send(ctx, http.MethodGet, a.ordersURL(), query, nil)
	if err != nil {
		return nil, nil, err
	}

	var list ShopifyOrdersResponse
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return nil, nil, integration.NewMalformedError(a.ordersURL(), resp, err)
	}
	return list.Orders, resp, nil
}

func (a *ShopifyAdapter) countOrders(ctx context.Context, query url.Values) (int, error) {
	countURL := a.config.AdminURL(a.creds.StoreID, "orders/count.json")
	resp, err := a.send(ctx, http.MethodGet, countURL, query, nil)
	if err != nil {
		return 0, err
	}

	var count ShopifyCountResponse
	if err := json.Unmarshal(resp.Body, &count); err != nil {
		return 0, integration.NewMalformedError(countURL, resp, err)
	}
	if count.Count == nil {
		return 0, integration.NewMalformedError(countURL, resp, fmt.Errorf("response has no count"))
	}
	return *count.Count, nil
}

func (a *ShopifyAdapter) send(ctx context.Context, method, rawURL string, query url.Values, body any) (*integration.TransportResponse, error) {
	req := &integration.TransportRequest{
		Method: method,
		URL:    rawURL,
		Headers: map[string]string{
			"X-Shopify-Access-Token": a.creds.AccessToken,
			"Accept":                 "application/json",
		},
		Query: query,
		Body:  body,
	}

	resp, err := a.transport.Send(ctx, req)
	if err != nil {
		a.logger.Debug("shopify request failed",
			zap.String("method", method),
			zap.String("url", rawURL),
			zap.Error(err))
		return nil, err
	}
	return resp, nil
}

var (
	_ integration.OrderChannel        = (*ShopifyAdapter)(nil)
	_ integration.OrderChannelFactory = (*ShopifyChannelFactory)(nil)
)
