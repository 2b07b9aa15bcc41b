package integration

import (
	"context"
	"errors"
	"time"
)

// ---------------------------------------------------------------------------
// Integration Errors
// ---------------------------------------------------------------------------

var (
	// Channel errors
	ErrPlatformNotConfigured   = errors.New("integration: platform not configured")
	ErrPlatformUnavailable     = errors.New("integration: platform temporarily unavailable")
	ErrPlatformRequestFailed   = errors.New("integration: platform request failed")
	ErrPlatformInvalidResponse = errors.New("integration: invalid platform response")

	// Order errors
	ErrOrderSyncInvalidOrder   = errors.New("integration: invalid order for sync")
	ErrOrderSyncDuplicateOrder = errors.New("integration: order already placed")
	ErrOrderHasNoLines         = errors.New("integration: order has no order lines")

	// Config errors
	ErrInvalidMerchantConfig = errors.New("integration: invalid merchant config")

	// Query errors
	ErrInvalidDateRange = errors.New("integration: invalid date range")
	ErrTooManyOrderIDs  = errors.New("integration: too many channel order ids")
)

// ---------------------------------------------------------------------------
// PlatformCode represents the type of commerce channel
// ---------------------------------------------------------------------------

// PlatformCode represents the type of commerce channel
type PlatformCode string

const (
	// PlatformCodeShopify represents a Shopify storefront
	PlatformCodeShopify PlatformCode = "SHOPIFY"
)

// IsValid returns true if the platform code is valid
func (c PlatformCode) IsValid() bool {
	return c == PlatformCodeShopify
}

// String returns the string representation of PlatformCode
func (c PlatformCode) String() string {
	return string(c)
}

// ---------------------------------------------------------------------------
// Request/Response DTOs
// ---------------------------------------------------------------------------

// StoreCredentials identifies the storefront and carries the access token
// supplied by the upstream request layer
type StoreCredentials struct {
	StoreID     string
	AccessToken string
}

// Validate validates the credentials
func (c StoreCredentials) Validate() error {
	if c.StoreID == "" || c.AccessToken == "" {
		return ErrPlatformNotConfigured
	}
	return nil
}

// PlaceOrderResult is the outcome of creating an order on the channel
type PlaceOrderResult struct {
	// ChannelOrderID is the order ID assigned by the channel
	ChannelOrderID string
	// ChannelOrderName is the display name assigned by the channel (e.g. #1001)
	ChannelOrderName string
	// PhoneRetried is true when the order was accepted only after the phone was stripped
	PhoneRetried bool
	// Response is the raw channel response
	Response *TransportResponse
}

// OrderStatusResult is the outcome of a status lookup by channel order IDs
type OrderStatusResult struct {
	// Statuses contains one entry per order the channel returned
	Statuses []OrderStatus
	// FailedIDs lists requested IDs the channel did not return
	FailedIDs []string
	// Response is the raw channel response
	Response *TransportResponse
}

// OrderListResult is the outcome of listing orders created since a point in time
type OrderListResult struct {
	// Orders contains the normalized orders in channel order
	Orders []NormalizedOrder
	// PageLimitReached is true when the listing stopped at the page ceiling
	PageLimitReached bool
}

// ---------------------------------------------------------------------------
// OrderChannel Port Interface
// ---------------------------------------------------------------------------

// OrderChannel defines the port interface for an external commerce channel.
// Concrete implementations live in the infrastructure layer.
type OrderChannel interface {
	// PlatformCode returns the platform code this adapter handles
	PlatformCode() PlatformCode

	// PlaceOrder builds the channel payload for the order and creates it
	PlaceOrder(ctx context.Context, order *NormalizedOrder, config MerchantConfig) (*PlaceOrderResult, error)

	// GetOrderStatuses reconciles fulfillment and cancellation state for the given orders
	GetOrderStatuses(ctx context.Context, channelOrderIDs []string) (*OrderStatusResult, error)

	// GetRefunds extracts refund events for orders updated within the range
	GetRefunds(ctx context.Context, start, end time.Time) (*RefundBatch, error)

	// ListOrders lists orders created since the given time, normalized
	ListOrders(ctx context.Context, since time.Time) (*OrderListResult, error)
}

// OrderChannelFactory builds channel adapters bound to a storefront
type OrderChannelFactory interface {
	// ForStore returns an adapter that talks to the given storefront
	ForStore(creds StoreCredentials) (OrderChannel, error)
}
