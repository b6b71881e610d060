package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yuqie6/lifequest/internal/schema"
	"gorm.io/gorm"
)

// ProfileRepository 档案仓储
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建仓储
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByUser 获取用户档案，不存在时返回 nil
func (r *ProfileRepository) GetByUser(ctx context.Context, userID string) (*schema.Profile, error) {
	var profile schema.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("查询档案失败: %w", err)
	}
	return &profile, nil
}

// Create 创建档案（注册时隐式调用）
func (r *ProfileRepository) Create(ctx context.Context, profile *schema.Profile) (*schema.Profile, error) {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if profile.Level == 0 {
		profile.Level = 1
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, fmt.Errorf("创建档案失败: %w", err)
	}
	return profile, nil
}

// UpdateByUser 按用户应用部分字段更新，返回更新后的行
func (r *ProfileRepository) UpdateByUser(ctx context.Context, userID string, upd schema.ProfileUpdate) (*schema.Profile, error) {
	changes := upd.Changes()
	if len(changes) > 0 {
		res := r.db.WithContext(ctx).Model(&schema.Profile{}).Where("user_id = ?", userID).Updates(changes)
		if res.Error != nil {
			return nil, fmt.Errorf("更新档案失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	var profile schema.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, fmt.Errorf("读取更新后的档案失败: %w", err)
	}
	return &profile, nil
}
