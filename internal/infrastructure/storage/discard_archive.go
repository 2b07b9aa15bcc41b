package storage

import (
	"context"

	"go.uber.org/zap"

	"github.com/erp/orderbridge/internal/domain/integration"
)

// DiscardArchive is used when storage is disabled. Responses are logged and dropped.
type DiscardArchive struct {
	logger *zap.Logger
}

// NewDiscardArchive creates a DiscardArchive
func NewDiscardArchive(logger *zap.Logger) *DiscardArchive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscardArchive{logger: logger}
}

// Archive returns an empty key
func (d *DiscardArchive) Archive(_ context.Context, record *integration.OrderSyncRecord, response *integration.ChannelResponse) (string, error) {
	if record != nil && response != nil {
		d.logger.Debug("channel response not archived, storage disabled",
			zap.String("store_id", record.StoreID),
			zap.String("mp_order_number", record.MarketplaceOrderNumber),
			zap.Int("response_code", response.ResponseCode),
		)
	}
	return "", nil
}

var _ integration.ChannelResponseArchive = (*DiscardArchive)(nil)
