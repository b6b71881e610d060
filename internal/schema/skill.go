package schema

import "time"

// SkillCategory 技能分类
type SkillCategory string

const (
	SkillCategoryProgramming SkillCategory = "programming"
	SkillCategoryDesign      SkillCategory = "design"
	SkillCategoryLanguage    SkillCategory = "language"
	SkillCategorySport       SkillCategory = "sport"
	SkillCategoryMusic       SkillCategory = "music"
	SkillCategoryBusiness    SkillCategory = "business"
	SkillCategoryCreative    SkillCategory = "creative"
	SkillCategoryOther       SkillCategory = "other"
)

// Valid 判断分类是否合法
func (c SkillCategory) Valid() bool {
	switch c {
	case SkillCategoryProgramming, SkillCategoryDesign, SkillCategoryLanguage,
		SkillCategorySport, SkillCategoryMusic, SkillCategoryBusiness,
		SkillCategoryCreative, SkillCategoryOther:
		return true
	}
	return false
}

// Skill 技能条目
// 数据量级：百级
type Skill struct {
	ID          string        `gorm:"primaryKey;size:36" json:"id"`
	UserID      string        `gorm:"size:36;index" json:"user_id"`
	Name        string        `gorm:"size:100" json:"name"`
	Category    SkillCategory `gorm:"size:50;index" json:"category"`
	Level       int           `gorm:"default:1" json:"level"`      // 显示等级，addExperience 时由经验值推导
	Experience  int           `gorm:"default:0" json:"experience"` // 累计经验值，升级进度的唯一依据
	Description string        `gorm:"type:text" json:"description"`
	Icon        string        `gorm:"size:100" json:"icon"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Skill) TableName() string {
	return "skills"
}

// SkillUpdate 技能部分字段更新（nil 字段不修改）
type SkillUpdate struct {
	Name        *string
	Category    *SkillCategory
	Level       *int
	Experience  *int
	Description *string
	Icon        *string
}

// Changes 转换为 gorm Updates 可用的字段映射
func (u SkillUpdate) Changes() map[string]any {
	m := make(map[string]any)
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Category != nil {
		m["category"] = *u.Category
	}
	if u.Level != nil {
		m["level"] = *u.Level
	}
	if u.Experience != nil {
		m["experience"] = *u.Experience
	}
	if u.Description != nil {
		m["description"] = *u.Description
	}
	if u.Icon != nil {
		m["icon"] = *u.Icon
	}
	return m
}
