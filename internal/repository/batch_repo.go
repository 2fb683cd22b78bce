package repository

import (
	"context"
	"errors"
	"fmt"

	"ScoreIngest/internal/interfaces"
	"ScoreIngest/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BatchRepository 导入批次审计记录
type BatchRepository interface {
	// Save 保存批次，BatchUUID 为空时自动生成
	Save(ctx context.Context, batch *model.ImportBatch) error
	// ListRecent 按创建时间倒序
	ListRecent(ctx context.Context, variant model.Variant, limit int) ([]*model.ImportBatch, error)
	GetByUUID(ctx context.Context, batchUUID string) (*model.ImportBatch, error)
}

type batchRepository struct {
	db *gorm.DB
}

// NewBatchRepository 创建 BatchRepository 实例
func NewBatchRepository(db *gorm.DB) BatchRepository {
	return &batchRepository{db: db}
}

func (r *batchRepository) Save(ctx context.Context, batch *model.ImportBatch) error {
	if batch.BatchUUID == "" {
		batch.BatchUUID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(batch).Error; err != nil {
		return fmt.Errorf("保存导入批次失败: %w, batch: %s", err, batch.BatchUUID)
	}
	return nil
}

func (r *batchRepository) ListRecent(ctx context.Context, variant model.Variant, limit int) ([]*model.ImportBatch, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var batches []*model.ImportBatch
	q := r.db.WithContext(ctx).Order("id DESC").Limit(limit)
	if variant != "" {
		q = q.Where("variant = ?", variant)
	}
	if err := q.Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("查询导入批次失败: %w", err)
	}
	return batches, nil
}

func (r *batchRepository) GetByUUID(ctx context.Context, batchUUID string) (*model.ImportBatch, error) {
	var batch model.ImportBatch
	if err := r.db.WithContext(ctx).Where("batch_uuid = ?", batchUUID).First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("batch %s: %w", batchUUID, interfaces.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("查询导入批次失败: %w", err)
	}
	return &batch, nil
}
