package integration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/orderbridge/internal/domain/integration"
	"github.com/erp/orderbridge/internal/domain/shared"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type MockChannelFactory struct {
	mock.Mock
}

func (m *MockChannelFactory) ForStore(creds integration.StoreCredentials) (integration.OrderChannel, error) {
	args := m.Called(creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(integration.OrderChannel), args.Error(1)
}

type MockOrderChannel struct {
	mock.Mock
}

func (m *MockOrderChannel) PlatformCode() integration.PlatformCode {
	return integration.PlatformCodeShopify
}

func (m *MockOrderChannel) PlaceOrder(ctx context.Context, order *integration.NormalizedOrder, config integration.MerchantConfig) (*integration.PlaceOrderResult, error) {
	args := m.Called(ctx, order, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.PlaceOrderResult), args.Error(1)
}

func (m *MockOrderChannel) GetOrderStatuses(ctx context.Context, ids []string) (*integration.OrderStatusResult, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.OrderStatusResult), args.Error(1)
}

func (m *MockOrderChannel) GetRefunds(ctx context.Context, start, end time.Time) (*integration.RefundBatch, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.RefundBatch), args.Error(1)
}

func (m *MockOrderChannel) ListOrders(ctx context.Context, since time.Time) (*integration.OrderListResult, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.OrderListResult), args.Error(1)
}

type MockSyncRepository struct {
	mock.Mock
	saved []integration.OrderSyncRecord
}

func (m *MockSyncRepository) Save(ctx context.Context, record *integration.OrderSyncRecord) error {
	m.saved = append(m.saved, *record)
	return m.Called(ctx, record).Error(0)
}

func (m *MockSyncRepository) FindByMarketplaceOrder(ctx context.Context, storeID, orderNumber string) (*integration.OrderSyncRecord, error) {
	args := m.Called(ctx, storeID, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.OrderSyncRecord), args.Error(1)
}

func (m *MockSyncRepository) FindAll(ctx context.Context, storeID string, filter integration.OrderSyncRecordFilter) ([]integration.OrderSyncRecord, error) {
	args := m.Called(ctx, storeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.OrderSyncRecord), args.Error(1)
}

func (m *MockSyncRepository) Count(ctx context.Context, storeID string, filter integration.OrderSyncRecordFilter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Archive(ctx context.Context, record *integration.OrderSyncRecord, response *integration.ChannelResponse) (string, error) {
	args := m.Called(ctx, record, response)
	return args.String(0), args.Error(1)
}

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockIdempotencyStore) Close() error {
	return nil
}

type countingOutcomes map[string]int

func (c countingOutcomes) ObservePlaceOrder(outcome string) { c[outcome]++ }

var (
	_ integration.OrderChannelFactory       = (*MockChannelFactory)(nil)
	_ integration.OrderChannel              = (*MockOrderChannel)(nil)
	_ integration.OrderSyncRecordRepository = (*MockSyncRepository)(nil)
	_ integration.ChannelResponseArchive    = (*MockArchive)(nil)
	_ shared.IdempotencyStore               = (*MockIdempotencyStore)(nil)
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

var testCreds = integration.StoreCredentials{StoreID: "acme", AccessToken: "shpat_test"}

func newTestOrder() *integration.NormalizedOrder {
	return &integration.NormalizedOrder{
		MarketplaceName:        "Walmart",
		MarketplaceOrderNumber: "W-1",
	}
}

type serviceFixture struct {
	factory  *MockChannelFactory
	orders   *MockOrderChannel
	repo     *MockSyncRepository
	archive  *MockArchive
	store    *MockIdempotencyStore
	outcomes countingOutcomes
	service  *OrderBridgeService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		factory:  new(MockChannelFactory),
		orders:   new(MockOrderChannel),
		repo:     new(MockSyncRepository),
		archive:  new(MockArchive),
		store:    new(MockIdempotencyStore),
		outcomes: countingOutcomes{},
	}
	f.factory.On("ForStore", testCreds).Return(f.orders, nil).Maybe()
	f.service = NewOrderBridgeService(f.factory,
		WithSyncRepository(f.repo),
		WithArchive(f.archive),
		WithIdempotency(f.store, shared.IdempotencyConfig{Enabled: true, TTL: time.Hour}),
		WithOutcomeRecorder(f.outcomes),
		WithLogger(zap.NewNop()),
	)
	return f
}

// ---------------------------------------------------------------------------
// PlaceOrder
// ---------------------------------------------------------------------------

func TestOrderBridgeService_PlaceOrder_Success(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	order := newTestOrder()

	f.store.On("MarkProcessed", ctx, "acme:W-1", time.Hour).Return(true, nil)
	f.repo.On("Save", ctx, mock.Anything).Return(nil)
	f.orders.On("PlaceOrder", ctx, order, mock.MatchedBy(func(cfg integration.MerchantConfig) bool {
		return cfg.Transactions && cfg.UseMPProductName && cfg.DummyCustomerEmail == integration.DefaultDummyCustomerEmail
	})).Return(&integration.PlaceOrderResult{
		ChannelOrderID:   "450789469",
		ChannelOrderName: "#1001",
		Response:         &integration.TransportResponse{StatusCode: http.StatusCreated},
	}, nil)

	result, err := f.service.PlaceOrder(ctx, testCreds, order, json.RawMessage(`{"transactions": true}`))
	require.NoError(t, err)
	assert.Equal(t, "450789469", result.ChannelOrderID)

	require.Len(t, f.repo.saved, 2)
	assert.Equal(t, integration.SyncStatusPending, f.repo.saved[0].Status)
	assert.Equal(t, integration.SyncStatusSuccess, f.repo.saved[1].Status)
	assert.Equal(t, "450789469", f.repo.saved[1].ChannelOrderID)
	assert.Equal(t, f.repo.saved[0].ID, f.repo.saved[1].ID)
	assert.Equal(t, 1, f.outcomes[OutcomeSuccess])

	f.archive.AssertNotCalled(t, "Archive", mock.Anything, mock.Anything, mock.Anything)
	f.store.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestOrderBridgeService_PlaceOrder_ChannelRejected(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	order := newTestOrder()
	rejected := integration.NewRejectedError("https://acme.myshopify.com/admin/api/2023-01/orders.json",
		http.StatusUnprocessableEntity, http.Header{}, []byte(`{"errors":{"line_items":["is empty"]}}`))

	f.store.On("MarkProcessed", ctx, "acme:W-1", time.Hour).Return(true, nil)
	f.store.On("Release", ctx, "acme:W-1").Return(nil)
	f.repo.On("Save", ctx, mock.Anything).Return(nil)
	f.orders.On("PlaceOrder", ctx, order, mock.Anything).Return(nil, rejected)
	f.archive.On("Archive", ctx, mock.Anything, mock.MatchedBy(func(resp *integration.ChannelResponse) bool {
		return resp.ResponseCode == http.StatusUnprocessableEntity && resp.ResponseBody != ""
	})).Return("channel-responses/acme/W-1.json", nil)

	_, err := f.service.PlaceOrder(ctx, testCreds, order, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, integration.ErrPlatformRequestFailed)

	require.Len(t, f.repo.saved, 2)
	failed := f.repo.saved[1]
	assert.Equal(t, integration.SyncStatusFailed, failed.Status)
	assert.Equal(t, http.StatusUnprocessableEntity, failed.ResponseCode)
	assert.Equal(t, "channel-responses/acme/W-1.json", failed.ArchiveKey)
	assert.Equal(t, 1, f.outcomes[OutcomeFailed])
	f.store.AssertCalled(t, "Release", ctx, "acme:W-1")
}

func TestOrderBridgeService_PlaceOrder_Duplicate(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.store.On("MarkProcessed", ctx, "acme:W-1", time.Hour).Return(false, nil)

	_, err := f.service.PlaceOrder(ctx, testCreds, newTestOrder(), nil)
	assert.ErrorIs(t, err, integration.ErrOrderSyncDuplicateOrder)
	assert.Equal(t, 1, f.outcomes[OutcomeDuplicate])
	f.orders.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderBridgeService_PlaceOrder_IdempotencyStoreDown(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	order := newTestOrder()

	f.store.On("MarkProcessed", ctx, "acme:W-1", time.Hour).Return(false, errors.New("redis: connection refused"))
	f.repo.On("Save", ctx, mock.Anything).Return(nil)
	f.orders.On("PlaceOrder", ctx, order, mock.Anything).Return(&integration.PlaceOrderResult{ChannelOrderID: "1"}, nil)

	result, err := f.service.PlaceOrder(ctx, testCreds, order, nil)
	require.NoError(t, err)
	assert.Equal(t, "1", result.ChannelOrderID)
}

func TestOrderBridgeService_PlaceOrder_RecordFailuresDoNotFailTheOrder(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	order := newTestOrder()

	f.store.On("MarkProcessed", ctx, "acme:W-1", time.Hour).Return(true, nil)
	f.repo.On("Save", ctx, mock.Anything).Return(errors.New("database is locked"))
	f.orders.On("PlaceOrder", ctx, order, mock.Anything).Return(&integration.PlaceOrderResult{ChannelOrderID: "2"}, nil)

	result, err := f.service.PlaceOrder(ctx, testCreds, order, nil)
	require.NoError(t, err)
	assert.Equal(t, "2", result.ChannelOrderID)
}

func TestOrderBridgeService_PlaceOrder_UnreachableArchiveFailure(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	order := newTestOrder()
	unreachable := integration.NewUnreachableError("https://acme.myshopify.com", errors.New("dial tcp: i/o timeout"))

	f.store.On("MarkProcessed", ctx, "acme:W-1", time.Hour).Return(true, nil)
	f.store.On("Release", ctx, "acme:W-1").Return(errors.New("redis gone"))
	f.repo.On("Save", ctx, mock.Anything).Return(nil)
	f.orders.On("PlaceOrder", ctx, order, mock.Anything).Return(nil, unreachable)
	f.archive.On("Archive", ctx, mock.Anything, mock.Anything).Return("", errors.New("s3 down"))

	_, err := f.service.PlaceOrder(ctx, testCreds, order, nil)
	assert.ErrorIs(t, err, integration.ErrPlatformUnavailable)
	require.Len(t, f.repo.saved, 2)
	assert.Empty(t, f.repo.saved[1].ArchiveKey)
	assert.Equal(t, 0, f.repo.saved[1].ResponseCode)
}

func TestOrderBridgeService_PlaceOrder_RejectedBeforeChannel(t *testing.T) {
	t.Run("invalid merchant config", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.service.PlaceOrder(context.Background(), testCreds, newTestOrder(), json.RawMessage(`{"no_such_toggle": true}`))
		assert.ErrorIs(t, err, integration.ErrInvalidMerchantConfig)
		f.store.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("nil order", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.service.PlaceOrder(context.Background(), testCreds, nil, nil)
		assert.ErrorIs(t, err, integration.ErrOrderSyncInvalidOrder)
	})

	t.Run("store not configured", func(t *testing.T) {
		factory := new(MockChannelFactory)
		factory.On("ForStore", mock.Anything).Return(nil, integration.ErrPlatformNotConfigured)
		service := NewOrderBridgeService(factory)

		_, err := service.PlaceOrder(context.Background(), integration.StoreCredentials{}, newTestOrder(), nil)
		assert.ErrorIs(t, err, integration.ErrPlatformNotConfigured)
	})
}

func TestOrderBridgeService_PlaceOrder_WithoutOptionalCollaborators(t *testing.T) {
	factory := new(MockChannelFactory)
	orders := new(MockOrderChannel)
	factory.On("ForStore", testCreds).Return(orders, nil)
	orders.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything).Return(&integration.PlaceOrderResult{ChannelOrderID: "3"}, nil)

	service := NewOrderBridgeService(factory,
		WithIdempotency(new(MockIdempotencyStore), shared.IdempotencyConfig{Enabled: false}),
	)

	for i := 0; i < 2; i++ {
		result, err := service.PlaceOrder(context.Background(), testCreds, newTestOrder(), nil)
		require.NoError(t, err)
		assert.Equal(t, "3", result.ChannelOrderID)
	}
	orders.AssertNumberOfCalls(t, "PlaceOrder", 2)
}

// ---------------------------------------------------------------------------
// Reconciliation and extraction
// ---------------------------------------------------------------------------

func TestOrderBridgeService_GetOrderStatuses(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	ids := []string{"1", "2"}

	f.orders.On("GetOrderStatuses", ctx, ids).Return(&integration.OrderStatusResult{
		Statuses:  []integration.OrderStatus{{ChannelOrderID: "1"}},
		FailedIDs: []string{"2"},
	}, nil)

	result, err := f.service.GetOrderStatuses(ctx, testCreds, ids)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, result.FailedIDs)

	resp := ToOrderStatusesResponse(result)
	assert.Len(t, resp.Statuses, 1)
}

func TestOrderBridgeService_GetRefunds(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	f.orders.On("GetRefunds", ctx, start, end).Return(&integration.RefundBatch{OrderCount: 2, PageLimitReached: true}, nil)

	batch, err := f.service.GetRefunds(ctx, testCreds, start, end)
	require.NoError(t, err)
	assert.Equal(t, 2, batch.OrderCount)
	assert.True(t, batch.PageLimitReached)

	_, err = f.service.GetRefunds(ctx, testCreds, end, start)
	assert.ErrorIs(t, err, integration.ErrInvalidDateRange)
	f.orders.AssertNumberOfCalls(t, "GetRefunds", 1)
}

func TestOrderBridgeService_ListOrders(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	channelErr := integration.NewMalformedError("https://acme.myshopify.com", nil, errors.New("unexpected EOF"))

	f.orders.On("ListOrders", ctx, since).Return(&integration.OrderListResult{
		Orders: []integration.NormalizedOrder{*newTestOrder()},
	}, nil).Once()
	f.orders.On("ListOrders", ctx, since).Return(nil, channelErr).Once()

	result, err := f.service.ListOrders(ctx, testCreds, since)
	require.NoError(t, err)
	assert.Equal(t, 1, ToOrdersResponse(result).Count)

	_, err = f.service.ListOrders(ctx, testCreds, since)
	assert.ErrorIs(t, err, integration.ErrPlatformInvalidResponse)
}

// ---------------------------------------------------------------------------
// Sync history
// ---------------------------------------------------------------------------

func TestOrderBridgeService_ListSyncRecords(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	expectedFilter := integration.OrderSyncRecordFilter{Page: 1, PageSize: 20}
	records := []integration.OrderSyncRecord{*integration.NewOrderSyncRecord("acme", integration.PlatformCodeShopify, newTestOrder())}

	f.repo.On("FindAll", ctx, "acme", expectedFilter).Return(records, nil)
	f.repo.On("Count", ctx, "acme", expectedFilter).Return(int64(1), nil)

	got, total, err := f.service.ListSyncRecords(ctx, "acme", integration.OrderSyncRecordFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "W-1", ToSyncRecordResponses(got)[0].MarketplaceOrderNumber)

	_, _, err = NewOrderBridgeService(f.factory).ListSyncRecords(ctx, "acme", expectedFilter)
	assert.ErrorIs(t, err, ErrSyncHistoryDisabled)
}

func TestOrderBridgeService_GetSyncRecord(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.repo.On("FindByMarketplaceOrder", ctx, "acme", "W-404").Return(nil, integration.ErrSyncRecordNotFound)

	_, err := f.service.GetSyncRecord(ctx, "acme", "W-404")
	assert.ErrorIs(t, err, integration.ErrSyncRecordNotFound)
}

func TestOrderBridgeService_ContextLogger(t *testing.T) {
	var resolved int
	f := newServiceFixture(t)
	f.service = NewOrderBridgeService(f.factory, WithContextLogger(func(context.Context) *zap.Logger {
		resolved++
		return nil
	}))
	f.orders.On("GetOrderStatuses", mock.Anything, []string{"9"}).Return(&integration.OrderStatusResult{FailedIDs: []string{"9"}}, nil)

	_, err := f.service.GetOrderStatuses(context.Background(), testCreds, []string{"9"})
	require.NoError(t, err)
	assert.Equal(t, 1, resolved)
}
