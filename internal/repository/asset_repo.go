package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yuqie6/lifequest/internal/eventbus"
	"github.com/yuqie6/lifequest/internal/schema"
	"gorm.io/gorm"
)

// AssetRepository 资产仓储
type AssetRepository struct {
	db  *gorm.DB
	hub *eventbus.Hub
}

// NewAssetRepository 创建仓储
func NewAssetRepository(db *gorm.DB, hub *eventbus.Hub) *AssetRepository {
	return &AssetRepository{db: db, hub: hub}
}

// ListByUser 按创建时间倒序获取用户全部资产
func (r *AssetRepository) ListByUser(ctx context.Context, userID string) ([]schema.Asset, error) {
	var assets []schema.Asset
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("查询资产失败: %w", err)
	}
	return assets, nil
}

// Insert 写入新资产，返回带生成字段的行
func (r *AssetRepository) Insert(ctx context.Context, asset *schema.Asset) (*schema.Asset, error) {
	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}
	if asset.Currency == "" {
		asset.Currency = schema.DefaultCurrency
	}
	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		return nil, fmt.Errorf("写入资产失败: %w", err)
	}
	r.publish("insert", asset.ID)
	return asset, nil
}

// Update 按 ID 应用部分字段更新，返回更新后的行
func (r *AssetRepository) Update(ctx context.Context, id string, upd schema.AssetUpdate) (*schema.Asset, error) {
	changes := upd.Changes()
	if len(changes) > 0 {
		res := r.db.WithContext(ctx).Model(&schema.Asset{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, fmt.Errorf("更新资产失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	var asset schema.Asset
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&asset).Error; err != nil {
		return nil, fmt.Errorf("读取更新后的资产失败: %w", err)
	}
	r.publish("update", id)
	return &asset, nil
}

// Delete 按 ID 删除资产
func (r *AssetRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&schema.Asset{}).Error; err != nil {
		return fmt.Errorf("删除资产失败: %w", err)
	}
	r.publish("delete", id)
	return nil
}

func (r *AssetRepository) publish(typ, id string) {
	r.hub.Publish(eventbus.Event{
		Type:  typ,
		Table: eventbus.TableAssets,
		Data:  map[string]any{"id": id},
	})
}
