package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/erp/orderbridge/internal/domain/integration"
	"github.com/erp/orderbridge/internal/domain/shared"
)

// place_order outcomes reported to the OutcomeRecorder
const (
	OutcomeSuccess   = "success"
	OutcomeFailed    = "failed"
	OutcomeDuplicate = "duplicate"
)

// OutcomeRecorder counts place_order outcomes
type OutcomeRecorder interface {
	ObservePlaceOrder(outcome string)
}

type nopOutcomeRecorder struct{}

func (nopOutcomeRecorder) ObservePlaceOrder(string) {}

// OrderBridgeService runs the bridge operations against a storefront channel.
// Sync records, archiving and idempotency are optional collaborators.
type OrderBridgeService struct {
	channels       integration.OrderChannelFactory
	syncRepo       integration.OrderSyncRecordRepository
	archive        integration.ChannelResponseArchive
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	outcomes       OutcomeRecorder
	logger         *zap.Logger
	contextLogger  func(context.Context) *zap.Logger
}

// ServiceOption configures an OrderBridgeService
type ServiceOption func(*OrderBridgeService)

// WithSyncRepository persists one record per place_order attempt
func WithSyncRepository(repo integration.OrderSyncRecordRepository) ServiceOption {
	return func(s *OrderBridgeService) {
		s.syncRepo = repo
	}
}

// WithArchive stores the channel response of failed attempts
func WithArchive(archive integration.ChannelResponseArchive) ServiceOption {
	return func(s *OrderBridgeService) {
		s.archive = archive
	}
}

// WithIdempotency rejects a second place_order for the same marketplace order
// while the first claim is held
func WithIdempotency(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) ServiceOption {
	return func(s *OrderBridgeService) {
		if !cfg.Enabled {
			return
		}
		s.idempotency = store
		s.idempotencyTTL = cfg.TTL
	}
}

// WithOutcomeRecorder sets the place_order outcome recorder
func WithOutcomeRecorder(recorder OutcomeRecorder) ServiceOption {
	return func(s *OrderBridgeService) {
		if recorder != nil {
			s.outcomes = recorder
		}
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *OrderBridgeService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithContextLogger resolves a request-scoped logger from the context.
// A nil result falls back to the service logger.
func WithContextLogger(fn func(context.Context) *zap.Logger) ServiceOption {
	return func(s *OrderBridgeService) {
		s.contextLogger = fn
	}
}

// NewOrderBridgeService creates a new OrderBridgeService
func NewOrderBridgeService(channels integration.OrderChannelFactory, opts ...ServiceOption) *OrderBridgeService {
	s := &OrderBridgeService{
		channels:       channels,
		idempotencyTTL: shared.DefaultIdempotencyConfig().TTL,
		outcomes:       nopOutcomeRecorder{},
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.idempotencyTTL <= 0 {
		s.idempotencyTTL = shared.DefaultIdempotencyConfig().TTL
	}
	return s
}

// ---------------------------------------------------------------------------
// place_order
// ---------------------------------------------------------------------------

// PlaceOrder merges the caller's merchant config over the defaults and creates
// the order on the storefront
func (s *OrderBridgeService) PlaceOrder(
	ctx context.Context,
	creds integration.StoreCredentials,
	order *integration.NormalizedOrder,
	rawConfig json.RawMessage,
) (*integration.PlaceOrderResult, error) {
	log := s.loggerFor(ctx)

	if order == nil {
		return nil, fmt.Errorf("%w: order is required", integration.ErrOrderSyncInvalidOrder)
	}
	merchantConfig, err := integration.ParseMerchantConfig(rawConfig)
	if err != nil {
		return nil, err
	}
	channel, err := s.channels.ForStore(creds)
	if err != nil {
		return nil, err
	}

	key := placeOrderKey(creds.StoreID, order.MarketplaceOrderNumber)
	if !s.claim(ctx, key) {
		s.outcomes.ObservePlaceOrder(OutcomeDuplicate)
		log.Info("duplicate place_order rejected", zap.String("mp_order_number", order.MarketplaceOrderNumber))
		return nil, fmt.Errorf("%w: %s", integration.ErrOrderSyncDuplicateOrder, order.MarketplaceOrderNumber)
	}

	record := integration.NewOrderSyncRecord(creds.StoreID, channel.PlatformCode(), order)
	s.saveRecord(ctx, record)

	result, err := channel.PlaceOrder(ctx, order, merchantConfig)
	if err != nil {
		record.MarkFailed(err)
		record.ArchiveKey = s.archiveFailure(ctx, record, err)
		s.saveRecord(ctx, record)
		s.release(ctx, key)
		s.outcomes.ObservePlaceOrder(OutcomeFailed)
		log.Warn("place_order failed",
			zap.String("mp_order_number", order.MarketplaceOrderNumber),
			zap.Int("response_code", record.ResponseCode),
			zap.Error(err),
		)
		return nil, err
	}

	record.MarkSuccess(result)
	s.saveRecord(ctx, record)
	s.outcomes.ObservePlaceOrder(OutcomeSuccess)
	log.Info("order placed",
		zap.String("mp_order_number", order.MarketplaceOrderNumber),
		zap.String("channel_order_id", result.ChannelOrderID),
		zap.Bool("phone_retried", result.PhoneRetried),
	)
	return result, nil
}

func placeOrderKey(storeID, marketplaceOrderNumber string) string {
	return storeID + ":" + marketplaceOrderNumber
}

// claim fails open when the store errors
func (s *OrderBridgeService) claim(ctx context.Context, key string) bool {
	if s.idempotency == nil {
		return true
	}
	claimed, err := s.idempotency.MarkProcessed(ctx, key, s.idempotencyTTL)
	if err != nil {
		s.loggerFor(ctx).Warn("idempotency store unavailable, continuing without claim",
			zap.String("key", key), zap.Error(err))
		return true
	}
	return claimed
}

func (s *OrderBridgeService) release(ctx context.Context, key string) {
	if s.idempotency == nil {
		return
	}
	if err := s.idempotency.Release(ctx, key); err != nil {
		s.loggerFor(ctx).Warn("failed to release idempotency claim", zap.String("key", key), zap.Error(err))
	}
}

func (s *OrderBridgeService) saveRecord(ctx context.Context, record *integration.OrderSyncRecord) {
	if s.syncRepo == nil {
		return
	}
	if err := s.syncRepo.Save(ctx, record); err != nil {
		s.loggerFor(ctx).Error("failed to save sync record",
			zap.String("record_id", record.ID.String()), zap.Error(err))
	}
}

// archiveFailure stores the channel's answer; errors that never reached the
// channel have nothing to archive
func (s *OrderBridgeService) archiveFailure(ctx context.Context, record *integration.OrderSyncRecord, err error) string {
	if s.archive == nil {
		return ""
	}
	if _, ok := integration.AsChannelError(err); !ok {
		return ""
	}
	key, archiveErr := s.archive.Archive(ctx, record, integration.NewChannelErrorResponse(err))
	if archiveErr != nil {
		s.loggerFor(ctx).Error("failed to archive channel response",
			zap.String("record_id", record.ID.String()), zap.Error(archiveErr))
		return ""
	}
	return key
}

// ---------------------------------------------------------------------------
// Reconciliation and extraction
// ---------------------------------------------------------------------------

// GetOrderStatuses reconciles fulfillment and cancellation state for channel orders
func (s *OrderBridgeService) GetOrderStatuses(ctx context.Context, creds integration.StoreCredentials, channelOrderIDs []string) (*integration.OrderStatusResult, error) {
	channel, err := s.channels.ForStore(creds)
	if err != nil {
		return nil, err
	}
	result, err := channel.GetOrderStatuses(ctx, channelOrderIDs)
	if err != nil {
		return nil, err
	}
	if len(result.FailedIDs) > 0 {
		s.loggerFor(ctx).Info("channel did not return some orders", zap.Strings("failed_ids", result.FailedIDs))
	}
	return result, nil
}

// GetRefunds extracts refund events for orders updated within [start, end]
func (s *OrderBridgeService) GetRefunds(ctx context.Context, creds integration.StoreCredentials, start, end time.Time) (*integration.RefundBatch, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s is before start %s", integration.ErrInvalidDateRange,
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	channel, err := s.channels.ForStore(creds)
	if err != nil {
		return nil, err
	}
	batch, err := channel.GetRefunds(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if batch.PageLimitReached {
		s.loggerFor(ctx).Warn("refund extraction stopped at page ceiling", zap.Int("order_count", batch.OrderCount))
	}
	return batch, nil
}

// ListOrders lists storefront orders created since the given time
func (s *OrderBridgeService) ListOrders(ctx context.Context, creds integration.StoreCredentials, since time.Time) (*integration.OrderListResult, error) {
	channel, err := s.channels.ForStore(creds)
	if err != nil {
		return nil, err
	}
	result, err := channel.ListOrders(ctx, since)
	if err != nil {
		return nil, err
	}
	if result.PageLimitReached {
		s.loggerFor(ctx).Warn("order listing stopped at page ceiling", zap.Int("orders", len(result.Orders)))
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Sync history
// ---------------------------------------------------------------------------

// ErrSyncHistoryDisabled is returned when no sync record repository is configured
var ErrSyncHistoryDisabled = errors.New("integration: sync history is not enabled")

// ListSyncRecords lists place_order attempts for a store, newest first
func (s *OrderBridgeService) ListSyncRecords(ctx context.Context, storeID string, filter integration.OrderSyncRecordFilter) ([]integration.OrderSyncRecord, int64, error) {
	if s.syncRepo == nil {
		return nil, 0, ErrSyncHistoryDisabled
	}
	filter = filter.Normalized()

	records, err := s.syncRepo.FindAll(ctx, storeID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.syncRepo.Count(ctx, storeID, filter)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// GetSyncRecord returns the latest attempt for a marketplace order
func (s *OrderBridgeService) GetSyncRecord(ctx context.Context, storeID, marketplaceOrderNumber string) (*integration.OrderSyncRecord, error) {
	if s.syncRepo == nil {
		return nil, ErrSyncHistoryDisabled
	}
	return s.syncRepo.FindByMarketplaceOrder(ctx, storeID, marketplaceOrderNumber)
}

func (s *OrderBridgeService) loggerFor(ctx context.Context) *zap.Logger {
	if s.contextLogger != nil {
		if l := s.contextLogger(ctx); l != nil {
			return l
		}
	}
	return s.logger
}
