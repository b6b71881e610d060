package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yuqie6/lifequest/internal/eventbus"
	"github.com/yuqie6/lifequest/internal/schema"
	"gorm.io/gorm"
)

// SkillRepository 技能仓储
type SkillRepository struct {
	db  *gorm.DB
	hub *eventbus.Hub
}

// NewSkillRepository 创建仓储，hub 可为 nil（不发布变更事件）
func NewSkillRepository(db *gorm.DB, hub *eventbus.Hub) *SkillRepository {
	return &SkillRepository{db: db, hub: hub}
}

// ListByUser 按创建时间倒序获取用户全部技能
func (r *SkillRepository) ListByUser(ctx context.Context, userID string) ([]schema.Skill, error) {
	var skills []schema.Skill
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&skills).Error
	if err != nil {
		return nil, fmt.Errorf("查询技能失败: %w", err)
	}
	return skills, nil
}

// GetByID 根据 ID 获取技能，不存在时返回 nil
func (r *SkillRepository) GetByID(ctx context.Context, id string) (*schema.Skill, error) {
	var skill schema.Skill
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&skill).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("查询技能失败: %w", err)
	}
	return &skill, nil
}

// Insert 写入新技能，返回带生成字段的行
func (r *SkillRepository) Insert(ctx context.Context, skill *schema.Skill) (*schema.Skill, error) {
	if skill.ID == "" {
		skill.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		return nil, fmt.Errorf("写入技能失败: %w", err)
	}
	r.publish("insert", skill.ID)
	return skill, nil
}

// Update 按 ID 应用部分字段更新，返回更新后的行
func (r *SkillRepository) Update(ctx context.Context, id string, upd schema.SkillUpdate) (*schema.Skill, error) {
	changes := upd.Changes()
	if len(changes) > 0 {
		res := r.db.WithContext(ctx).Model(&schema.Skill{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, fmt.Errorf("更新技能失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	var skill schema.Skill
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&skill).Error; err != nil {
		return nil, fmt.Errorf("读取更新后的技能失败: %w", err)
	}
	r.publish("update", id)
	return &skill, nil
}

// Delete 按 ID 删除技能
func (r *SkillRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&schema.Skill{}).Error; err != nil {
		return fmt.Errorf("删除技能失败: %w", err)
	}
	r.publish("delete", id)
	return nil
}

func (r *SkillRepository) publish(typ, id string) {
	r.hub.Publish(eventbus.Event{
		Type:  typ,
		Table: eventbus.TableSkills,
		Data:  map[string]any{"id": id},
	})
}
