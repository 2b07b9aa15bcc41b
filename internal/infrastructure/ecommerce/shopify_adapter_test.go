package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/orderbridge/internal/domain/integration"
	"github.com/erp/orderbridge/internal/infrastructure/transport"
)

const (
	testStoreID = "acme"
	testToken   = "shpat_test"
	ordersPath  = "/stores/acme/admin/api/2023-01/orders.json"
	countPath   = "/stores/acme/admin/api/2023-01/orders/count.json"
)

type countingRecorder struct {
	pages      map[string]int
	limits     map[string]int
	phoneRetry int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{pages: map[string]int{}, limits: map[string]int{}}
}

func (r *countingRecorder) ObservePage(op string)      { r.pages[op]++ }
func (r *countingRecorder) ObservePageLimit(op string) { r.limits[op]++ }
func (r *countingRecorder) ObservePhoneRetry()         { r.phoneRetry++ }

func setupShopifyTest(t *testing.T, handler http.HandlerFunc, tweak func(*ShopifyConfig)) (*ShopifyAdapter, *countingRecorder) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testToken, r.Header.Get("X-Shopify-Access-Token"))
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	cfg := NewShopifyConfig()
	cfg.BaseURLTemplate = server.URL + "/stores/%s"
	if tweak != nil {
		tweak(cfg)
	}

	recorder := newCountingRecorder()
	factory, err := NewShopifyChannelFactory(cfg, transport.NewHTTPTransport(transport.Config{TimeoutSeconds: 5}), WithPageRecorder(recorder))
	require.NoError(t, err)

	channel, err := factory.ForStore(integration.StoreCredentials{StoreID: testStoreID, AccessToken: testToken})
	require.NoError(t, err)
	return channel.(*ShopifyAdapter), recorder
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// ---------------------------------------------------------------------------
// Factory
// ---------------------------------------------------------------------------

func TestNewShopifyChannelFactory(t *testing.T) {
	_, err := NewShopifyChannelFactory(nil, nil)
	assert.ErrorIs(t, err, integration.ErrPlatformNotConfigured)

	_, err = NewShopifyChannelFactory(&ShopifyConfig{BaseURLTemplate: "https://no-verb"}, transport.NewHTTPTransport(transport.Config{}))
	assert.ErrorIs(t, err, ErrShopifyConfigInvalidTemplate)

	factory, err := NewShopifyChannelFactory(nil, transport.NewHTTPTransport(transport.Config{}))
	require.NoError(t, err)

	_, err = factory.ForStore(integration.StoreCredentials{StoreID: "acme"})
	assert.ErrorIs(t, err, integration.ErrPlatformNotConfigured)

	channel, err := factory.ForStore(integration.StoreCredentials{StoreID: "acme", AccessToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, integration.PlatformCodeShopify, channel.PlatformCode())
}

func TestShopifyConfig_AdminURL(t *testing.T) {
	cfg := NewShopifyConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://acme.myshopify.com/admin/api/2023-01/orders.json", cfg.AdminURL("acme", "orders.json"))

	cfg.PageSize = 251
	assert.ErrorIs(t, cfg.Validate(), ErrShopifyConfigInvalidPageSize)
}

// ---------------------------------------------------------------------------
// PlaceOrder
// ---------------------------------------------------------------------------

func decodePlacedOrder(t *testing.T, r *http.Request) map[string]any {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]map[string]any
	assert.NoError(t, json.Unmarshal(raw, &body))
	return body["order"]
}

func TestShopifyAdapter_PlaceOrder(t *testing.T) {
	adapter, _ := setupShopifyTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, ordersPath, r.URL.Path)

		order := decodePlacedOrder(t, r)
		assert.Equal(t, "Walmart W-1", order["source_name"])
		assert.Equal(t, "212-555-0100", order["phone"])

		writeJSON(w, http.StatusCreated, `{"order":{"id":4500,"name":"#1001"}}`)
	}, nil)

	result, err := adapter.PlaceOrder(context.Background(), newTestOrder(), integration.DefaultMerchantConfig())
	require.NoError(t, err)
	assert.Equal(t, "4500", result.ChannelOrderID)
	assert.Equal(t, "#1001", result.ChannelOrderName)
	assert.False(t, result.PhoneRetried)
	assert.Equal(t, http.StatusCreated, result.Response.StatusCode)
}

func TestShopifyAdapter_PlaceOrder_PhoneRetry(t *testing.T) {
	var calls atomic.Int32
	adapter, recorder := setupShopifyTest(t, func(w http.ResponseWriter, r *http.Request) {
		order := decodePlacedOrder(t, r)
		if calls.Add(1) == 1 {
			assert.Equal(t, "212-555-0100", order["phone"])
			writeJSON(w, http.StatusUnprocessableEntity, `{"errors":{"phone":["Phone is invalid"]}}`)
			return
		}
		assert.Equal(t, "", order["phone"])
		writeJSON(w, http.StatusCreated, `{"order":{"id":4501,"name":"#1002"}}`)
	}, nil)

	result, err := adapter.PlaceOrder(context.Background(), newTestOrder(), integration.DefaultMerchantConfig())
	require.NoError(t, err)
	assert.True(t, result.PhoneRetried)
	assert.Equal(t, "4501", result.ChannelOrderID)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 1, recorder.phoneRetry)
}

func TestShopifyAdapter_PlaceOrder_PhoneRetryStripsAddressPhones(t *testing.T) {
	var calls atomic.Int32
	adapter, _ := setupShopifyTest(t, func(w http.ResponseWriter, r *http.Request) {
		order := decodePlacedOrder(t, r)
		shipping, _ := order["shipping_address"].(map[string]any)
		billing, _ := order["billing_address"].(map[string]any)
		require.NotNil(t, shipping)
		require.NotNil(t, billing)

		if calls.Add(1) == 1 {
			assert.Equal(t, "212-555-0100", shipping["phone"])
			assert.Equal(t, "214-555-0199", billing["phone"])
			writeJSON(w, http.StatusUnprocessableEntity, `{"errors":{"shipping_address":["Phone is invalid"]}}`)
			return
		}
		assert.Equal(t, "", order["phone"])
		assert.Equal(t, "", shipping["phone"])
		assert.Equal(t, "", billing["phone"])
		writeJSON(w, http.StatusCreated, `{"order":{"id":4502,"name":"#1003"}}`)
	}, nil)

	order := newTestOrder()
	order.BillingInfo = newBilling()

	result, err := adapter.PlaceOrder(context.Background(), order, integration.DefaultMerchantConfig())
	require.NoError(t, err)
	assert.True(t, result.PhoneRetried)
	assert.Equal(t, int32(2), calls.Load())
}

func TestStripPhones(t *testing.T) {
	phone := "212-555-0100"
	payload := &OrderPayload{
		Phone:           &phone,
		ShippingAddress: AddressPayload{Phone: "212-555-0100"},
	}

	stripPhones(payload)
	require.NotNil(t, payload.Phone)
	assert.Equal(t, "", *payload.Phone)
	assert.Equal(t, "", payload.ShippingAddress.Phone)
	assert.Nil(t, payload.BillingAddress)
	assert.Equal(t, "212-555-0100", phone)
}

func TestShopifyAdapter_PlaceOrder_PhoneRetryOnlyOnce(t *testing.T) {
	var calls atomic.Int32
	adapter, _ := setupShopifyTest(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusUnprocessableEntity, `{"errors":{"phone":["Phone is invalid"]}}`)
	}, nil)

	_, err := adapter.PlaceOrder(context.Background(), newTestOrder(), integration.DefaultMerchantConfig())
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())

	ce, ok := integration.AsChannelError(err)
	require.True(t, ok)
	assert.Equal(t, integration.ChannelErrorRejected, ce.Kind)
	assert.Equal(t, http.StatusUnprocessableEntity, ce.StatusCode)
}

func TestShopifyAdapter_PlaceOrder_OtherRejectionNotRetried(t *testing.T) {
	var calls atomic.Int32
	adapter, _ := setupShopifyTest(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusUnprocessableEntity, `{"errors":{"email":["is invalid"]}}`)
	}, nil)

	_, err := adapter.PlaceOrder(context.Background(), newTestOrder(), integration.DefaultMerchantConfig())
	assert.ErrorIs(t, err, integration.ErrPlatformRequestFailed)
	assert.Equal(t, int32(1), calls.Load())
}

func TestShopifyAdapter_PlaceOrder_Malformed(t *testing.T) {
	adapter, _ := setupShopifyTest(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `not json`)
	}, nil)

	_, err := adapter.PlaceOrder(context.Background(), newTestOrder(), integration.DefaultMerchantConfig())
	assert.ErrorIs(t, err, integration.ErrPlatformInvalidResponse)

	ce, ok := integration.AsChannelError(err)
	require.True(t, ok)
	assert.Equal(t, integration.ChannelErrorMalformed, ce.Kind)
	assert.Equal(t, "not json", string(ce.Body))
}

func TestShopifyAdapter_PlaceOrder_InvalidOrder(t *testing.T) {
	adapter, _ := setupShopifyTest(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}, nil)

	order := newTestOrder()
	order.OrderLines = nil
	_, err := adapter.PlaceOrder(context.Background(), order, integration.DefaultMerchantConfig())
	assert.ErrorIs(t, err, integration.ErrOrderHasNoLines)
}

// ---------------------------------------------------------------------------
// GetOrderStatuses
// ---------------------------------------------------------------------------

func TestShopifyAdapter_GetOrderStatuses(t *testing.T) {
	adapter, recorder := setupShopifyTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, ordersPath, r.URL.Path)
		assert.Equal(t, "1,2", r.URL.Query().Get("ids"))
		assert.Equal(t, "any", r.URL.Query().Get("status"))
		assert.Equal(t, "250", r.URL.Query().Get("limit"))

		writeJSON(w, http.StatusOK, `{"orders":[{
			"id": 1, "name": "#1", "cancelled_at": "2024-03-01T12:00:00Z", "cancel_reason": "customer",
			"line_items": [{"id": 11, "sku": "A", "quantity": 3, "price": "1.00"}],
			"fulfillments": [{"status": "success", "tracking_number": "T1", "line_items": [{"id": 11, "quantity": 1}]}]
		}]}`)
	}, nil)

	result, err := adapter.GetOrderStatuses(context.Background(), []string{"1", "2"})
	require.NoError(t, err)

	require.Len(t, result.Statuses, 1)
	status := result.Statuses[0]
	assert.Equal(t, "1", status.ChannelOrderID)
	assert.True(t, status.Cancelled)
	require.Len(t, status.Lines, 1)
	assert.Equal(t, 1, status.Lines[0].QuantityShipped)
	assert.Equal(t, 2, status.Lines[0].QuantityCancelled)
	assert.Equal(t, integration.CancellationReasonCustomerRequest, status.Lines[0].CancellationReason)

	assert.Equal(t, []string{"2"}, result.FailedIDs)
	assert.Equal(t, 1, recorder.pages[OperationOrderStatuses])
}

func TestShopifyAdapter_GetOrderStatuses_Bounds(t *testing.T) {
	adapter, _ := setupShopifyTest(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}, nil)

	result, err := adapter.GetOrderStatuses(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Statuses)
	assert.Empty(t, result.FailedIDs)

	ids := make([]string, MaxStatusIDs+1)
	for i := range ids {
		ids[i] = "1"
	}
	_, err = adapter.GetOrderStatuses(context.Background(), ids)
	assert.ErrorIs(t, err, integration.ErrTooManyOrderIDs)
}

func TestShopifyAdapter_GetOrderStatuses_Malformed(t *testing.T) {
	adapter, _ := setupShopifyTest(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"orders":`)
	}, nil)

	_, err := adapter.GetOrderStatuses(context.Background(), []string{"1"})
	assert.ErrorIs(t, err, integration.ErrPlatformInvalidResponse)
}

// ---------------------------------------------------------------------------
// GetRefunds
// ---------------------------------------------------------------------------

var (
	refundStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	refundEnd   = time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
)

const refundedOrderJSON = `{
	"id": %d, "name": "#R",
	"line_items": [{"id": 11, "sku": "A", "quantity": 1, "price": "5.00"}],
	"refunds": [{"id": 70, "refund_line_items": [{"id": %d, "line_item_id": 11, "quantity": 1, "restock_type": "return", "subtotal": "5.00", "total_tax": "0.40"}]}]
}`

func refundedOrderBody(orderID, refundLineID int) string {
	return `{"orders":[` + fmt.Sprintf(refundedOrderJSON, orderID, refundLineID) + `]}`
}

func TestShopifyAdapter_GetRefunds(t *testing.T) {
	var pageHits atomic.Int32
	var serverURL string

	adapter, recorder := setupShopifyTest(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case countPath:
			assert.Equal(t, "any", q.Get("status"))
			assert.Equal(t, "2024-03-01T00:00:00Z", q.Get("updated_at_min"))
			assert.Equal(t, "2024-03-02T00:00:00Z", q.Get("updated_at_max"))
			if q.Get("financial_status") == FinancialStatusPartiallyRefunded {
				writeJSON(w, http.StatusOK, `{"count":2}`)
				return
			}
			writeJSON(w, http.StatusOK, `{"count":0}`)

		case ordersPath:
			pageHits.Add(1)
			switch {
			case q.Get("page_info") == "p2":
				assert.Empty(t, q.Get("financial_status"))
				writeJSON(w, http.StatusOK, refundedOrderBody(2, 72))
			case q.Get("financial_status") == FinancialStatusPartiallyRefunded:
				assert.Equal(t, "250", q.Get("limit"))
				w.Header().Set("Link", `<`+serverURL+ordersPath+`?limit=250&page_info=p2>; rel="next"`)
				writeJSON(w, http.StatusOK, refundedOrderBody(1, 71))
			default:
				writeJSON(w, http.StatusOK, `{"orders":[]}`)
			}

		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}, nil)
	serverURL = strings.TrimSuffix(adapter.config.StoreBaseURL(""), "/stores/")

	batch, err := adapter.GetRefunds(context.Background(), refundStart, refundEnd)
	require.NoError(t, err)

	assert.Equal(t, 2, batch.OrderCount)
	assert.False(t, batch.PageLimitReached)
	require.Len(t, batch.Refunds, 2)
	assert.Equal(t, "70-71", batch.Refunds[0].RefundLineKey)
	assert.Equal(t, "1", batch.Refunds[0].ChannelOrderID)
	assert.Equal(t, "70-72", batch.Refunds[1].RefundLineKey)
	assert.Equal(t, int32(3), pageHits.Load())
	assert.Equal(t, 3, recorder.pages[OperationRefunds])
}

func TestShopifyAdapter_GetRefunds_ZeroCount(t *testing.T) {
	var pageHits, countHits atomic.Int32
	adapter, _ := setupShopifyTest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == countPath {
			countHits.Add(1)
			writeJSON(w, http.StatusOK, `{"count":0}`)
			return
		}
		pageHits.Add(1)
		writeJSON(w, http.StatusOK, `{"orders":[]}`)
	}, nil)

	batch, err := adapter.GetRefunds(context.Background(), refundStart, refundEnd)
	require.NoError(t, err)
	assert.Equal(t, 0, batch.OrderCount)
	assert.NotNil(t, batch.Refunds)
	assert.Empty(t, batch.Refunds)
	assert.Equal(t, int32(2), countHits.Load())
	assert.Equal(t, int32(0), pageHits.Load())
}

func TestShopifyAdapter_GetRefunds_PageCeiling(t *testing.T) {
	var pageHits atomic.Int32
	var serverURL string

	adapter, recorder := setupShopifyTest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == countPath {
			writeJSON(w, http.StatusOK, `{"count":1}`)
			return
		}
		pageHits.Add(1)
		w.Header().Set("Link", `<`+serverURL+ordersPath+`?limit=250&page_info=more>; rel="next"`)
		writeJSON(w, http.StatusOK, `{"orders":[]}`)
	}, func(cfg *ShopifyConfig) {
		cfg.RefundPageCeiling = 2
	})
	serverURL = strings.TrimSuffix(adapter.config.StoreBaseURL(""), "/stores/")

	batch, err := adapter.GetRefunds(context.Background(), refundStart, refundEnd)
	require.NoError(t, err)
	assert.True(t, batch.PageLimitReached)
	assert.Equal(t, int32(4), pageHits.Load())
	assert.Equal(t, 2, recorder.limits[OperationRefunds])
}

func TestShopifyAdapter_GetRefunds_Errors(t *testing.T) {
	adapter, _ := setupShopifyTest(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{}`)
	}, nil)

	_, err := adapter.GetRefunds(context.Background(), refundEnd, refundStart)
	assert.ErrorIs(t, err, integration.ErrInvalidDateRange)

	_, err = adapter.GetRefunds(context.Background(), refundStart, refundEnd)
	assert.ErrorIs(t, err, integration.ErrPlatformInvalidResponse)
}

// ---------------------------------------------------------------------------
// ListOrders
// ---------------------------------------------------------------------------

func TestShopifyAdapter_ListOrders(t *testing.T) {
	since := time.Date(2024, 3, 1, 8, 30, 0, 0, time.FixedZone("EST", -5*3600))
	var sinceIDs []string

	adapter, recorder := setupShopifyTest(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "any", q.Get("status"))
		assert.Equal(t, "2024-03-01T13:30:00Z", q.Get("created_at_min"))
		assert.Equal(t, "2", q.Get("limit"))
		sinceIDs = append(sinceIDs, q.Get("since_id"))

		switch q.Get("since_id") {
		case "0":
			writeJSON(w, http.StatusOK, `{"orders":[
				{"id": 10, "line_items": [{"id": 1, "sku": "A", "quantity": 1, "price": "1.00"}]},
				{"id": 11, "line_items": [{"id": 2, "sku": "B", "quantity": 1, "price": "2.00"}]}
			]}`)
		case "11":
			writeJSON(w, http.StatusOK, `{"orders":[{"id": 12, "line_items": []}]}`)
		default:
			writeJSON(w, http.StatusOK, `{"orders":[]}`)
		}
	}, func(cfg *ShopifyConfig) {
		cfg.PageSize = 2
	})

	result, err := adapter.ListOrders(context.Background(), since)
	require.NoError(t, err)
	assert.False(t, result.PageLimitReached)
	assert.Equal(t, []string{"0", "11"}, sinceIDs)

	require.Len(t, result.Orders, 3)
	assert.Equal(t, "10", result.Orders[0].MarketplaceOrderNumber)
	assert.Equal(t, "12", result.Orders[2].MarketplaceOrderNumber)
	assert.Equal(t, "B", result.Orders[1].OrderLines[0].SKU)
	assert.Equal(t, 2, recorder.pages[OperationOrders])
}

func TestShopifyAdapter_ListOrders_PageCeiling(t *testing.T) {
	var calls atomic.Int32
	adapter, recorder := setupShopifyTest(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusOK, `{"orders":[{"id": 10}, {"id": 11}]}`)
	}, func(cfg *ShopifyConfig) {
		cfg.PageSize = 2
		cfg.OrderPageCeiling = 1
	})

	result, err := adapter.ListOrders(context.Background(), refundStart)
	require.NoError(t, err)
	assert.True(t, result.PageLimitReached)
	assert.Len(t, result.Orders, 2)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, recorder.limits[OperationOrders])
}

func TestShopifyAdapter_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	cfg := NewShopifyConfig()
	cfg.BaseURLTemplate = server.URL + "/stores/%s"
	server.Close()

	factory, err := NewShopifyChannelFactory(cfg, transport.NewHTTPTransport(transport.Config{TimeoutSeconds: 1}))
	require.NoError(t, err)
	channel, err := factory.ForStore(integration.StoreCredentials{StoreID: testStoreID, AccessToken: testToken})
	require.NoError(t, err)

	_, err = channel.ListOrders(context.Background(), refundStart)
	assert.ErrorIs(t, err, integration.ErrPlatformUnavailable)
}
