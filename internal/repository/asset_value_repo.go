package repository

import (
	"context"
	"fmt"

	"github.com/yuqie6/lifequest/internal/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssetValueRepository 资产总值历史点位仓储
type AssetValueRepository struct {
	db *gorm.DB
}

// NewAssetValueRepository 创建仓储
func NewAssetValueRepository(db *gorm.DB) *AssetValueRepository {
	return &AssetValueRepository{db: db}
}

// Record 记录某天的资产总值，同一天重复记录时覆盖
func (r *AssetValueRepository) Record(ctx context.Context, userID, date string, totalValue float64) error {
	point := schema.AssetValuePoint{
		UserID:     userID,
		Date:       date,
		TotalValue: totalValue,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_value"}),
	}).Create(&point).Error
	if err != nil {
		return fmt.Errorf("记录资产点位失败: %w", err)
	}
	return nil
}

// LatestOnOrBefore 获取不晚于指定日期的最近一个点位，不存在时返回 nil
func (r *AssetValueRepository) LatestOnOrBefore(ctx context.Context, userID, date string) (*schema.AssetValuePoint, error) {
	var point schema.AssetValuePoint
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date <= ?", userID, date).
		Order("date DESC").
		First(&point).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("查询资产点位失败: %w", err)
	}
	return &point, nil
}
