package schema

import "time"

// HobbyCategory 爱好分类
type HobbyCategory string

const (
	HobbyCategorySport      HobbyCategory = "sport"
	HobbyCategoryReading    HobbyCategory = "reading"
	HobbyCategoryMusic      HobbyCategory = "music"
	HobbyCategoryGaming     HobbyCategory = "gaming"
	HobbyCategoryTravel     HobbyCategory = "travel"
	HobbyCategoryCooking    HobbyCategory = "cooking"
	HobbyCategoryArt        HobbyCategory = "art"
	HobbyCategoryTechnology HobbyCategory = "technology"
	HobbyCategoryOther      HobbyCategory = "other"
)

// Valid 判断分类是否合法
func (c HobbyCategory) Valid() bool {
	switch c {
	case HobbyCategorySport, HobbyCategoryReading, HobbyCategoryMusic,
		HobbyCategoryGaming, HobbyCategoryTravel, HobbyCategoryCooking,
		HobbyCategoryArt, HobbyCategoryTechnology, HobbyCategoryOther:
		return true
	}
	return false
}

// MaxHobbyGoals 单个爱好最多记录的目标数
const MaxHobbyGoals = 5

// Hobby 爱好条目
type Hobby struct {
	ID          string        `gorm:"primaryKey;size:36" json:"id"`
	UserID      string        `gorm:"size:36;index" json:"user_id"`
	Name        string        `gorm:"size:100" json:"name"`
	Category    HobbyCategory `gorm:"size:50;index" json:"category"`
	Enthusiasm  int           `gorm:"default:5" json:"enthusiasm"` // 热情度 1-10
	TimeSpent   float64       `gorm:"default:0" json:"time_spent"` // 每周投入小时数
	Description string        `gorm:"type:text" json:"description"`
	Goals       JSONArray     `gorm:"type:text" json:"goals"` // 目标列表，最多 5 条
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Hobby) TableName() string {
	return "hobbies"
}

// HobbyUpdate 爱好部分字段更新
type HobbyUpdate struct {
	Name        *string
	Category    *HobbyCategory
	Enthusiasm  *int
	TimeSpent   *float64
	Description *string
	Goals       *JSONArray
}

// Changes 转换为 gorm Updates 可用的字段映射
func (u HobbyUpdate) Changes() map[string]any {
	m := make(map[string]any)
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Category != nil {
		m["category"] = *u.Category
	}
	if u.Enthusiasm != nil {
		m["enthusiasm"] = *u.Enthusiasm
	}
	if u.TimeSpent != nil {
		m["time_spent"] = *u.TimeSpent
	}
	if u.Description != nil {
		m["description"] = *u.Description
	}
	if u.Goals != nil {
		m["goals"] = *u.Goals
	}
	return m
}
