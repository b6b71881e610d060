package schema

import "time"

// TraitType 特质类型
type TraitType string

const (
	TraitTypeStrength    TraitType = "strength"
	TraitTypeWeakness    TraitType = "weakness"
	TraitTypePersonality TraitType = "personality"
)

// Valid 判断类型是否合法
func (t TraitType) Valid() bool {
	switch t {
	case TraitTypeStrength, TraitTypeWeakness, TraitTypePersonality:
		return true
	}
	return false
}

// Trait 特质条目
type Trait struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:36;index" json:"user_id"`
	Name        string    `gorm:"size:100" json:"name"`
	Type        TraitType `gorm:"size:50;index" json:"type"`
	Level       int       `gorm:"default:1" json:"level"` // 程度 1-10
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Trait) TableName() string {
	return "traits"
}

// TraitUpdate 特质部分字段更新
type TraitUpdate struct {
	Name        *string
	Type        *TraitType
	Level       *int
	Description *string
}

// Changes 转换为 gorm Updates 可用的字段映射
func (u TraitUpdate) Changes() map[string]any {
	m := make(map[string]any)
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Type != nil {
		m["type"] = *u.Type
	}
	if u.Level != nil {
		m["level"] = *u.Level
	}
	if u.Description != nil {
		m["description"] = *u.Description
	}
	return m
}
