package integration

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Order Sync Types
// ---------------------------------------------------------------------------

// ErrSyncRecordNotFound is returned when no sync record matches
var ErrSyncRecordNotFound = errors.New("integration: sync record not found")

// SyncStatus represents the outcome of a place-order attempt
type SyncStatus string

const (
	// SyncStatusPending indicates the order is being placed
	SyncStatusPending SyncStatus = "PENDING"
	// SyncStatusSuccess indicates the channel accepted the order
	SyncStatusSuccess SyncStatus = "SUCCESS"
	// SyncStatusFailed indicates the channel rejected the order or was unreachable
	SyncStatusFailed SyncStatus = "FAILED"
)

// IsValid returns true if the status is valid
func (s SyncStatus) IsValid() bool {
	switch s {
	case SyncStatusPending, SyncStatusSuccess, SyncStatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of SyncStatus
func (s SyncStatus) String() string {
	return string(s)
}

// OrderSyncRecord records one attempt to place a marketplace order on a channel
type OrderSyncRecord struct {
	// ID is the unique identifier of the sync record
	ID uuid.UUID
	// StoreID is the storefront the order was placed on
	StoreID string
	// PlatformCode identifies the channel
	PlatformCode PlatformCode
	// MarketplaceName is the marketplace the order came from
	MarketplaceName string
	// MarketplaceOrderNumber is the marketplace's order number
	MarketplaceOrderNumber string
	// ChannelOrderID is the order ID assigned by the channel (empty on failure)
	ChannelOrderID string
	// ChannelOrderName is the display name assigned by the channel
	ChannelOrderName string
	// Status is the sync status
	Status SyncStatus
	// ResponseCode is the channel HTTP status, 0 when unreachable
	ResponseCode int
	// ErrorMessage contains any error during sync
	ErrorMessage string
	// ArchiveKey locates the archived channel response, if one was stored
	ArchiveKey string
	// PhoneRetried is true when the order was accepted after stripping the phone
	PhoneRetried bool
	// SyncedAt is when the sync was attempted
	SyncedAt time.Time
	// CreatedAt is when this record was created
	CreatedAt time.Time
	// UpdatedAt is when this record was last updated
	UpdatedAt time.Time
}

// NewOrderSyncRecord creates a pending record for an order about to be placed
func NewOrderSyncRecord(storeID string, platform PlatformCode, order *NormalizedOrder) *OrderSyncRecord {
	now := time.Now()
	return &OrderSyncRecord{
		ID:                     uuid.New(),
		StoreID:                storeID,
		PlatformCode:           platform,
		MarketplaceName:        order.MarketplaceName,
		MarketplaceOrderNumber: order.MarketplaceOrderNumber,
		Status:                 SyncStatusPending,
		SyncedAt:               now,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

// MarkSuccess records a successful placement
func (r *OrderSyncRecord) MarkSuccess(result *PlaceOrderResult) {
	r.Status = SyncStatusSuccess
	r.ChannelOrderID = result.ChannelOrderID
	r.ChannelOrderName = result.ChannelOrderName
	r.PhoneRetried = result.PhoneRetried
	r.ErrorMessage = ""
	if result.Response != nil {
		r.ResponseCode = result.Response.StatusCode
	}
	r.UpdatedAt = time.Now()
}

// MarkFailed records a failed placement
func (r *OrderSyncRecord) MarkFailed(err error) {
	r.Status = SyncStatusFailed
	r.ErrorMessage = err.Error()
	if ce, ok := AsChannelError(err); ok {
		r.ResponseCode = ce.StatusCode
	}
	r.UpdatedAt = time.Now()
}

// OrderSyncRecordFilter defines filter criteria for sync records
type OrderSyncRecordFilter struct {
	// Status filters by sync status (optional)
	Status *SyncStatus
	// StartTime filters records from this time
	StartTime *time.Time
	// EndTime filters records until this time
	EndTime *time.Time
	// Page number (1-indexed)
	Page int
	// Page size
	PageSize int
}

// Sync record page sizes
const (
	DefaultSyncPageSize = 20
	MaxSyncPageSize     = 100
)

// Normalized returns the filter with paging defaults applied and the page size capped
func (f OrderSyncRecordFilter) Normalized() OrderSyncRecordFilter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultSyncPageSize
	}
	if f.PageSize > MaxSyncPageSize {
		f.PageSize = MaxSyncPageSize
	}
	return f
}

// ---------------------------------------------------------------------------
// OrderSyncRecordRepository Interface
// ---------------------------------------------------------------------------

// OrderSyncRecordRepository defines the interface for persisting order sync records
type OrderSyncRecordRepository interface {
	// Save creates or updates a sync record
	Save(ctx context.Context, record *OrderSyncRecord) error

	// FindByMarketplaceOrder finds the latest record for a marketplace order on a store
	FindByMarketplaceOrder(ctx context.Context, storeID, marketplaceOrderNumber string) (*OrderSyncRecord, error)

	// FindAll finds all records for a store matching the filter
	FindAll(ctx context.Context, storeID string, filter OrderSyncRecordFilter) ([]OrderSyncRecord, error)

	// Count counts records for a store matching the filter
	Count(ctx context.Context, storeID string, filter OrderSyncRecordFilter) (int64, error)
}

// ChannelResponseArchive stores raw channel responses for later diagnosis
type ChannelResponseArchive interface {
	// Archive stores the response and returns its key
	Archive(ctx context.Context, record *OrderSyncRecord, response *ChannelResponse) (string, error)
}
