package schema

import "time"

// AssetType 资产类型
type AssetType string

const (
	AssetTypeCash        AssetType = "cash"
	AssetTypeInvestment  AssetType = "investment"
	AssetTypeProperty    AssetType = "property"
	AssetTypeVehicle     AssetType = "vehicle"
	AssetTypeCollectible AssetType = "collectible"
	AssetTypeOther       AssetType = "other"
)

// Valid 判断类型是否合法
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeCash, AssetTypeInvestment, AssetTypeProperty,
		AssetTypeVehicle, AssetTypeCollectible, AssetTypeOther:
		return true
	}
	return false
}

// DefaultCurrency 默认币种
const DefaultCurrency = "CNY"

// Asset 资产条目
type Asset struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:36;index" json:"user_id"`
	Name        string    `gorm:"size:100" json:"name"`
	Type        AssetType `gorm:"size:50;index" json:"type"`
	Amount      float64   `gorm:"default:0" json:"amount"`
	Currency    string    `gorm:"size:10;default:CNY" json:"currency"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Asset) TableName() string {
	return "assets"
}

// AssetUpdate 资产部分字段更新
type AssetUpdate struct {
	Name        *string
	Type        *AssetType
	Amount      *float64
	Currency    *string
	Description *string
}

// Changes 转换为 gorm Updates 可用的字段映射
func (u AssetUpdate) Changes() map[string]any {
	m := make(map[string]any)
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Type != nil {
		m["type"] = *u.Type
	}
	if u.Amount != nil {
		m["amount"] = *u.Amount
	}
	if u.Currency != nil {
		m["currency"] = *u.Currency
	}
	if u.Description != nil {
		m["description"] = *u.Description
	}
	return m
}
