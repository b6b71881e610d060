package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yuqie6/lifequest/internal/eventbus"
	"github.com/yuqie6/lifequest/internal/schema"
	"gorm.io/gorm"
)

// TraitRepository 特质仓储
type TraitRepository struct {
	db  *gorm.DB
	hub *eventbus.Hub
}

// NewTraitRepository 创建仓储
func NewTraitRepository(db *gorm.DB, hub *eventbus.Hub) *TraitRepository {
	return &TraitRepository{db: db, hub: hub}
}

// ListByUser 按创建时间倒序获取用户全部特质
func (r *TraitRepository) ListByUser(ctx context.Context, userID string) ([]schema.Trait, error) {
	var traits []schema.Trait
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&traits).Error
	if err != nil {
		return nil, fmt.Errorf("查询特质失败: %w", err)
	}
	return traits, nil
}

// Insert 写入新特质，返回带生成字段的行
func (r *TraitRepository) Insert(ctx context.Context, trait *schema.Trait) (*schema.Trait, error) {
	if trait.ID == "" {
		trait.ID = uuid.NewString()
	}
	if trait.Level == 0 {
		trait.Level = 1
	}
	if err := r.db.WithContext(ctx).Create(trait).Error; err != nil {
		return nil, fmt.Errorf("写入特质失败: %w", err)
	}
	r.publish("insert", trait.ID)
	return trait, nil
}

// Update 按 ID 应用部分字段更新，返回更新后的行
func (r *TraitRepository) Update(ctx context.Context, id string, upd schema.TraitUpdate) (*schema.Trait, error) {
	changes := upd.Changes()
	if len(changes) > 0 {
		res := r.db.WithContext(ctx).Model(&schema.Trait{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, fmt.Errorf("更新特质失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	var trait schema.Trait
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&trait).Error; err != nil {
		return nil, fmt.Errorf("读取更新后的特质失败: %w", err)
	}
	r.publish("update", id)
	return &trait, nil
}

// Delete 按 ID 删除特质
func (r *TraitRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&schema.Trait{}).Error; err != nil {
		return fmt.Errorf("删除特质失败: %w", err)
	}
	r.publish("delete", id)
	return nil
}

func (r *TraitRepository) publish(typ, id string) {
	r.hub.Publish(eventbus.Event{
		Type:  typ,
		Table: eventbus.TableTraits,
		Data:  map[string]any{"id": id},
	})
}
