package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yuqie6/lifequest/internal/schema"
	"gorm.io/gorm"
)

// UserRepository 账号仓储
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建仓储
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail 根据邮箱获取账号，不存在时返回 nil
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*schema.UserAccount, error) {
	var user schema.UserAccount
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("查询账号失败: %w", err)
	}
	return &user, nil
}

// GetByID 根据 ID 获取账号，不存在时返回 nil
func (r *UserRepository) GetByID(ctx context.Context, id string) (*schema.UserAccount, error) {
	var user schema.UserAccount
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("查询账号失败: %w", err)
	}
	return &user, nil
}

// Create 创建账号
func (r *UserRepository) Create(ctx context.Context, user *schema.UserAccount) (*schema.UserAccount, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("创建账号失败: %w", err)
	}
	return user, nil
}
