package stats

import (
	"fmt"
	"sort"

	"github.com/yuqie6/lifequest/internal/schema"
)

// DashboardStats 首页汇总，跨四类实体 + 档案进度
type DashboardStats struct {
	TotalSkills       int            `json:"total_skills"`
	AverageSkillLevel float64        `json:"average_skill_level"`
	TotalAssets       float64        `json:"total_assets"`
	TotalHobbies      int            `json:"total_hobbies"`
	TotalTraits       int            `json:"total_traits"`
	StrengthsCount    int            `json:"strengths_count"`
	WeaknessesCount   int            `json:"weaknesses_count"`
	WeeklyProgress    int            `json:"weekly_progress"`
	RecentActivities  []ActivityItem `json:"recent_activities"`
}

// ActivityItem 最近动态条目
type ActivityItem struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"` // skill / asset / hobby / trait
	Title       string `json:"title"`
	Description string `json:"description"`
	Timestamp   int64  `json:"timestamp"` // Unix 毫秒
	Icon        string `json:"icon"`
}

// ComputeDashboardStats 计算首页汇总。profileExperience 为当前档案经验值
func ComputeDashboardStats(
	skills []schema.Skill,
	assets []schema.Asset,
	hobbies []schema.Hobby,
	traits []schema.Trait,
	profileExperience int,
) DashboardStats {
	skillStats := ComputeSkillStats(skills)
	traitStats := ComputeTraitStats(traits)

	d := DashboardStats{
		TotalSkills:       skillStats.TotalSkills,
		AverageSkillLevel: skillStats.AverageSkillLevel,
		TotalHobbies:      len(hobbies),
		TotalTraits:       traitStats.TotalTraits,
		StrengthsCount:    traitStats.StrengthsCount,
		WeaknessesCount:   traitStats.WeaknessesCount,
		WeeklyProgress:    WeeklyProgress(profileExperience),
	}
	for _, a := range assets {
		d.TotalAssets += a.Amount
	}
	d.RecentActivities = recentActivities(skills, assets, hobbies)
	return d
}

// recentActivities 取各集合最新条目拼出最近动态，按更新时间倒序，最多 5 条
func recentActivities(skills []schema.Skill, assets []schema.Asset, hobbies []schema.Hobby) []ActivityItem {
	items := make([]ActivityItem, 0, 5)

	for i, s := range skills {
		if i >= 2 {
			break
		}
		items = append(items, ActivityItem{
			ID:          s.ID,
			Kind:        "skill",
			Title:       fmt.Sprintf("%s 技能更新", s.Name),
			Description: fmt.Sprintf("当前等级 %d", s.Level),
			Timestamp:   s.UpdatedAt.UnixMilli(),
			Icon:        "⚡",
		})
	}
	for i, a := range assets {
		if i >= 2 {
			break
		}
		items = append(items, ActivityItem{
			ID:          a.ID,
			Kind:        "asset",
			Title:       fmt.Sprintf("%s 资产记录", a.Name),
			Description: fmt.Sprintf("金额 ¥%.2f", a.Amount),
			Timestamp:   a.UpdatedAt.UnixMilli(),
			Icon:        "💰",
		})
	}
	for i, h := range hobbies {
		if i >= 1 {
			break
		}
		items = append(items, ActivityItem{
			ID:          h.ID,
			Kind:        "hobby",
			Title:       fmt.Sprintf("%s 爱好更新", h.Name),
			Description: fmt.Sprintf("热情度 %d/10", h.Enthusiasm),
			Timestamp:   h.UpdatedAt.UnixMilli(),
			Icon:        "🎯",
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})
	if len(items) > 5 {
		items = items[:5]
	}
	return items
}
