package ecommerce

import (
	"errors"
	"fmt"
	"strings"
)

// ShopifyConfig holds configuration for the Shopify Admin REST API integration
type ShopifyConfig struct {
	// APIVersion is the Admin API version path segment
	APIVersion string
	// BaseURLTemplate builds the store base URL from the store ID (one %s verb)
	BaseURLTemplate string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
	// PageSize is the number of orders requested per page
	PageSize int
	// RefundPageCeiling bounds the refund page walk per financial status
	RefundPageCeiling int
	// OrderPageCeiling bounds the since_id order listing
	OrderPageCeiling int
	// MaxStatusIDs bounds the number of orders per status lookup
	MaxStatusIDs int
}

const (
	// ShopifyAPIVersion is the Admin API version used by default
	ShopifyAPIVersion = "2023-01"
	// ShopifyBaseURLTemplate is the production store URL template
	ShopifyBaseURLTemplate = "https://%s.myshopify.com"

	defaultTimeoutSeconds = 30
	defaultPageSize       = 250
	refundPageCeiling     = 50
	orderPageCeiling      = 50
	// MaxStatusIDs is the largest number of orders Shopify returns for an ids filter
	MaxStatusIDs = 250
)

// Errors for Shopify configuration
var (
	ErrShopifyConfigInvalidTemplate = errors.New("shopify: base url template must contain one %s")
	ErrShopifyConfigInvalidPageSize = errors.New("shopify: page size must be between 1 and 250")
)

// NewShopifyConfig creates a new Shopify configuration with defaults
func NewShopifyConfig() *ShopifyConfig {
	return &ShopifyConfig{
		APIVersion:        ShopifyAPIVersion,
		BaseURLTemplate:   ShopifyBaseURLTemplate,
		TimeoutSeconds:    defaultTimeoutSeconds,
		PageSize:          defaultPageSize,
		RefundPageCeiling: refundPageCeiling,
		OrderPageCeiling:  orderPageCeiling,
		MaxStatusIDs:      MaxStatusIDs,
	}
}

// Validate validates the Shopify configuration and fills in defaults
func (c *ShopifyConfig) Validate() error {
	if c.APIVersion == "" {
		c.APIVersion = ShopifyAPIVersion
	}
	if c.BaseURLTemplate == "" {
		c.BaseURLTemplate = ShopifyBaseURLTemplate
	}
	if strings.Count(c.BaseURLTemplate, "%s") != 1 {
		return ErrShopifyConfigInvalidTemplate
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.PageSize == 0 {
		c.PageSize = defaultPageSize
	}
	if c.PageSize < 0 || c.PageSize > defaultPageSize {
		return ErrShopifyConfigInvalidPageSize
	}
	if c.RefundPageCeiling <= 0 {
		c.RefundPageCeiling = refundPageCeiling
	}
	if c.OrderPageCeiling <= 0 {
		c.OrderPageCeiling = orderPageCeiling
	}
	if c.MaxStatusIDs <= 0 || c.MaxStatusIDs > MaxStatusIDs {
		c.MaxStatusIDs = MaxStatusIDs
	}
	return nil
}

// StoreBaseURL returns the base URL of a store
func (c *ShopifyConfig) StoreBaseURL(storeID string) string {
	return fmt.Sprintf(c.BaseURLTemplate, storeID)
}

// AdminURL returns the Admin API URL of a resource path such as "orders.json"
func (c *ShopifyConfig) AdminURL(storeID, resource string) string {
	return fmt.Sprintf("%s/admin/api/%s/%s", c.StoreBaseURL(storeID), c.APIVersion, resource)
}
