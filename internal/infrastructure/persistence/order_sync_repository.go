package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/erp/orderbridge/internal/domain/integration"
	"github.com/erp/orderbridge/internal/infrastructure/persistence/models"
)

// GormOrderSyncRecordRepository implements OrderSyncRecordRepository using GORM
type GormOrderSyncRecordRepository struct {
	db *gorm.DB
}

// NewGormOrderSyncRecordRepository creates a new GormOrderSyncRecordRepository
func NewGormOrderSyncRecordRepository(db *gorm.DB) *GormOrderSyncRecordRepository {
	return &GormOrderSyncRecordRepository{db: db}
}

// Save inserts the record or overwrites the row with the same ID
func (r *GormOrderSyncRecordRepository) Save(ctx context.Context, record *integration.OrderSyncRecord) error {
	model := models.OrderSyncRecordModelFromDomain(record)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to save sync record: %w", err)
	}
	return nil
}

// FindByMarketplaceOrder returns the most recent attempt for a marketplace order
func (r *GormOrderSyncRecordRepository) FindByMarketplaceOrder(ctx context.Context, storeID, marketplaceOrderNumber string) (*integration.OrderSyncRecord, error) {
	var model models.OrderSyncRecordModel
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND marketplace_order_number = ?", storeID, marketplaceOrderNumber).
		Order("synced_at DESC").
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrSyncRecordNotFound
		}
		return nil, fmt.Errorf("failed to find sync record: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns one page of records, newest first
func (r *GormOrderSyncRecordRepository) FindAll(ctx context.Context, storeID string, filter integration.OrderSyncRecordFilter) ([]integration.OrderSyncRecord, error) {
	filter = filter.Normalized()
	page, pageSize := filter.Page, filter.PageSize

	var rows []models.OrderSyncRecordModel
	err := r.filtered(ctx, storeID, filter).
		Order("synced_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sync records: %w", err)
	}

	records := make([]integration.OrderSyncRecord, len(rows))
	for i := range rows {
		records[i] = *rows[i].ToDomain()
	}
	return records, nil
}

// Count counts records matching the filter; paging fields are ignored
func (r *GormOrderSyncRecordRepository) Count(ctx context.Context, storeID string, filter integration.OrderSyncRecordFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, storeID, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count sync records: %w", err)
	}
	return count, nil
}

func (r *GormOrderSyncRecordRepository) filtered(ctx context.Context, storeID string, filter integration.OrderSyncRecordFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.OrderSyncRecordModel{}).
		Where("store_id = ?", storeID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.StartTime != nil {
		query = query.Where("synced_at >= ?", *filter.StartTime)
	}
	if filter.EndTime != nil {
		query = query.Where("synced_at <= ?", *filter.EndTime)
	}
	return query
}

var _ integration.OrderSyncRecordRepository = (*GormOrderSyncRecordRepository)(nil)
