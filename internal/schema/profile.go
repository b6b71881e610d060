package schema

import "time"

// Profile 用户档案，注册时隐式创建，每个用户一条
// level 仅用于展示，进度的权威信号是 experience
type Profile struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"size:36;uniqueIndex" json:"user_id"`
	Name       string    `gorm:"size:100" json:"name"`
	Age        int       `gorm:"default:0" json:"age"`
	Height     float64   `gorm:"default:0" json:"height"`
	Weight     float64   `gorm:"default:0" json:"weight"`
	Bio        string    `gorm:"type:text" json:"bio"`
	Level      int       `gorm:"default:1" json:"level"`
	Experience int       `gorm:"default:0" json:"experience"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Profile) TableName() string {
	return "profiles"
}

// ProfileUpdate 档案部分字段更新
type ProfileUpdate struct {
	Name       *string
	Age        *int
	Height     *float64
	Weight     *float64
	Bio        *string
	Level      *int
	Experience *int
}

// Changes 转换为 gorm Updates 可用的字段映射
func (u ProfileUpdate) Changes() map[string]any {
	m := make(map[string]any)
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Age != nil {
		m["age"] = *u.Age
	}
	if u.Height != nil {
		m["height"] = *u.Height
	}
	if u.Weight != nil {
		m["weight"] = *u.Weight
	}
	if u.Bio != nil {
		m["bio"] = *u.Bio
	}
	if u.Level != nil {
		m["level"] = *u.Level
	}
	if u.Experience != nil {
		m["experience"] = *u.Experience
	}
	return m
}
