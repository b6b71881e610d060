package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yuqie6/lifequest/internal/eventbus"
	"github.com/yuqie6/lifequest/internal/schema"
	"gorm.io/gorm"
)

// HobbyRepository 爱好仓储
type HobbyRepository struct {
	db  *gorm.DB
	hub *eventbus.Hub
}

// NewHobbyRepository 创建仓储
func NewHobbyRepository(db *gorm.DB, hub *eventbus.Hub) *HobbyRepository {
	return &HobbyRepository{db: db, hub: hub}
}

// ListByUser 按创建时间倒序获取用户全部爱好
func (r *HobbyRepository) ListByUser(ctx context.Context, userID string) ([]schema.Hobby, error) {
	var hobbies []schema.Hobby
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&hobbies).Error
	if err != nil {
		return nil, fmt.Errorf("查询爱好失败: %w", err)
	}
	return hobbies, nil
}

// Insert 写入新爱好，返回带生成字段的行
func (r *HobbyRepository) Insert(ctx context.Context, hobby *schema.Hobby) (*schema.Hobby, error) {
	if hobby.ID == "" {
		hobby.ID = uuid.NewString()
	}
	if hobby.Enthusiasm == 0 {
		hobby.Enthusiasm = 5
	}
	if err := r.db.WithContext(ctx).Create(hobby).Error; err != nil {
		return nil, fmt.Errorf("写入爱好失败: %w", err)
	}
	r.publish("insert", hobby.ID)
	return hobby, nil
}

// Update 按 ID 应用部分字段更新，返回更新后的行
func (r *HobbyRepository) Update(ctx context.Context, id string, upd schema.HobbyUpdate) (*schema.Hobby, error) {
	changes := upd.Changes()
	if len(changes) > 0 {
		res := r.db.WithContext(ctx).Model(&schema.Hobby{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, fmt.Errorf("更新爱好失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	var hobby schema.Hobby
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&hobby).Error; err != nil {
		return nil, fmt.Errorf("读取更新后的爱好失败: %w", err)
	}
	r.publish("update", id)
	return &hobby, nil
}

// Delete 按 ID 删除爱好
func (r *HobbyRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&schema.Hobby{}).Error; err != nil {
		return fmt.Errorf("删除爱好失败: %w", err)
	}
	r.publish("delete", id)
	return nil
}

func (r *HobbyRepository) publish(typ, id string) {
	r.hub.Publish(eventbus.Event{
		Type:  typ,
		Table: eventbus.TableHobbies,
		Data:  map[string]any{"id": id},
	})
}
