// Package stats 提供各实体集合的汇总统计。
// 所有计算函数均为纯函数：同一快照多次计算结果一致，空集合返回零值统计，不会出错。
package stats

import (
	"math"

	"github.com/yuqie6/lifequest/internal/leveling"
	"github.com/yuqie6/lifequest/internal/schema"
)

// AssetStats 资产汇总
type AssetStats struct {
	TotalValue    float64                      `json:"total_value"`
	ByType        map[schema.AssetType]float64 `json:"by_type"` // 仅包含实际出现的类型
	MonthlyChange float64                      `json:"monthly_change"`
	Currency      string                       `json:"currency"`
}

// HobbyStats 爱好汇总
type HobbyStats struct {
	TotalHobbies      int                          `json:"total_hobbies"`
	AverageEnthusiasm float64                      `json:"average_enthusiasm"`
	TotalTimeSpent    float64                      `json:"total_time_spent"`
	ByCategory        map[schema.HobbyCategory]int `json:"by_category"`
}

// TraitStats 特质汇总
type TraitStats struct {
	TotalTraits      int     `json:"total_traits"`
	StrengthsCount   int     `json:"strengths_count"`
	WeaknessesCount  int     `json:"weaknesses_count"`
	PersonalityCount int     `json:"personality_count"`
	AverageLevel     float64 `json:"average_level"`
}

// SkillStats 技能汇总
type SkillStats struct {
	TotalSkills       int                          `json:"total_skills"`
	AverageSkillLevel float64                      `json:"average_skill_level"`
	TotalExperience   int                          `json:"total_experience"`
	ByCategory        map[schema.SkillCategory]int `json:"by_category"`
}

// Round1 四舍五入保留一位小数
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 四舍五入保留两位小数
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeAssetStats 计算资产汇总。MonthlyChange 需要历史点位，由资产仓库状态单独填充
func ComputeAssetStats(assets []schema.Asset) AssetStats {
	s := AssetStats{
		ByType:   make(map[schema.AssetType]float64),
		Currency: schema.DefaultCurrency,
	}
	for _, a := range assets {
		s.TotalValue += a.Amount
		s.ByType[a.Type] += a.Amount
	}
	return s
}

// ComputeHobbyStats 计算爱好汇总
func ComputeHobbyStats(hobbies []schema.Hobby) HobbyStats {
	s := HobbyStats{
		TotalHobbies: len(hobbies),
		ByCategory:   make(map[schema.HobbyCategory]int),
	}
	var enthusiasmSum int
	for _, h := range hobbies {
		enthusiasm := h.Enthusiasm
		if enthusiasm == 0 {
			enthusiasm = 5
		}
		enthusiasmSum += enthusiasm
		s.TotalTimeSpent += h.TimeSpent
		s.ByCategory[h.Category]++
	}
	if s.TotalHobbies > 0 {
		s.AverageEnthusiasm = Round1(float64(enthusiasmSum) / float64(s.TotalHobbies))
	}
	return s
}

// ComputeTraitStats 计算特质汇总
func ComputeTraitStats(traits []schema.Trait) TraitStats {
	s := TraitStats{TotalTraits: len(traits)}
	var levelSum int
	for _, t := range traits {
		switch t.Type {
		case schema.TraitTypeStrength:
			s.StrengthsCount++
		case schema.TraitTypeWeakness:
			s.WeaknessesCount++
		case schema.TraitTypePersonality:
			s.PersonalityCount++
		}
		levelSum += t.Level
	}
	if s.TotalTraits > 0 {
		s.AverageLevel = Round1(float64(levelSum) / float64(s.TotalTraits))
	}
	return s
}

// ComputeSkillStats 计算技能汇总
func ComputeSkillStats(skills []schema.Skill) SkillStats {
	s := SkillStats{
		TotalSkills: len(skills),
		ByCategory:  make(map[schema.SkillCategory]int),
	}
	var levelSum int
	for _, sk := range skills {
		level := sk.Level
		if level == 0 {
			level = 1
		}
		levelSum += level
		s.TotalExperience += sk.Experience
		s.ByCategory[sk.Category]++
	}
	if s.TotalSkills > 0 {
		s.AverageSkillLevel = Round1(float64(levelSum) / float64(s.TotalSkills))
	}
	return s
}

// WeeklyProgress 本周进度：档案经验在当前等级内的进度，限制在 [0,100]
func WeeklyProgress(profileExperience int) int {
	p := leveling.ProgressWithinLevel(profileExperience)
	if p > 100 {
		return 100
	}
	return p
}
