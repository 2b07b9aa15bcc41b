package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/erp/orderbridge/internal/domain/integration"
)

// OrderSyncRecordModel is the persistence model for integration.OrderSyncRecord
type OrderSyncRecordModel struct {
	ID                     uuid.UUID                `gorm:"type:varchar(36);primaryKey"`
	StoreID                string                   `gorm:"type:varchar(100);not null;index:idx_order_sync_store_order,priority:1"`
	PlatformCode           integration.PlatformCode `gorm:"type:varchar(20);not null"`
	MarketplaceName        string                   `gorm:"type:varchar(100)"`
	MarketplaceOrderNumber string                   `gorm:"type:varchar(100);not null;index:idx_order_sync_store_order,priority:2"`
	ChannelOrderID         string                   `gorm:"type:varchar(50)"`
	ChannelOrderName       string                   `gorm:"type:varchar(50)"`
	Status                 integration.SyncStatus   `gorm:"type:varchar(20);not null;index"`
	ResponseCode           int
	ErrorMessage           string    `gorm:"type:text"`
	ArchiveKey             string    `gorm:"type:varchar(255)"`
	PhoneRetried           bool      `gorm:"not null"`
	SyncedAt               time.Time `gorm:"not null;index"`
	CreatedAt              time.Time `gorm:"not null"`
	UpdatedAt              time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderSyncRecordModel) TableName() string {
	return "order_sync_records"
}

// ToDomain converts the model to a domain record
func (m *OrderSyncRecordModel) ToDomain() *integration.OrderSyncRecord {
	return &integration.OrderSyncRecord{
		ID:                     m.ID,
		StoreID:                m.StoreID,
		PlatformCode:           m.PlatformCode,
		MarketplaceName:        m.MarketplaceName,
		MarketplaceOrderNumber: m.MarketplaceOrderNumber,
		ChannelOrderID:         m.ChannelOrderID,
		ChannelOrderName:       m.ChannelOrderName,
		Status:                 m.Status,
		ResponseCode:           m.ResponseCode,
		ErrorMessage:           m.ErrorMessage,
		ArchiveKey:             m.ArchiveKey,
		PhoneRetried:           m.PhoneRetried,
		SyncedAt:               m.SyncedAt,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

// OrderSyncRecordModelFromDomain converts a domain record to a model
func OrderSyncRecordModelFromDomain(r *integration.OrderSyncRecord) *OrderSyncRecordModel {
	return &OrderSyncRecordModel{
		ID:                     r.ID,
		StoreID:                r.StoreID,
		PlatformCode:           r.PlatformCode,
		MarketplaceName:        r.MarketplaceName,
		MarketplaceOrderNumber: r.MarketplaceOrderNumber,
		ChannelOrderID:         r.ChannelOrderID,
		ChannelOrderName:       r.ChannelOrderName,
		Status:                 r.Status,
		ResponseCode:           r.ResponseCode,
		ErrorMessage:           r.ErrorMessage,
		ArchiveKey:             r.ArchiveKey,
		PhoneRetried:           r.PhoneRetried,
		SyncedAt:               r.SyncedAt,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}
}
