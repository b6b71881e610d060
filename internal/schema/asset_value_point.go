package schema

import "time"

// AssetValuePoint 资产总值的每日快照，月度变化按历史点位计算
// 每用户每天至多一条
type AssetValuePoint struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"size:36;index:idx_asset_value_user_date,unique" json:"user_id"`
	Date       string    `gorm:"size:10;index:idx_asset_value_user_date,unique" json:"date"` // YYYY-MM-DD
	TotalValue float64   `gorm:"default:0" json:"total_value"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (AssetValuePoint) TableName() string {
	return "asset_value_points"
}
