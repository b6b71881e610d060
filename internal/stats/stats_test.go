package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yuqie6/lifequest/internal/schema"
)

func TestComputeAssetStats(t *testing.T) {
	assets := []schema.Asset{
		{Type: schema.AssetTypeCash, Amount: 1000},
		{Type: schema.AssetTypeInvestment, Amount: 2500},
		{Type: schema.AssetTypeInvestment, Amount: 1500},
	}

	s := ComputeAssetStats(assets)

	assert.Equal(t, 5000.0, s.TotalValue)
	assert.Equal(t, 1000.0, s.ByType[schema.AssetTypeCash])
	assert.Equal(t, 4000.0, s.ByType[schema.AssetTypeInvestment])
	assert.Equal(t, schema.DefaultCurrency, s.Currency)
	// 未出现的类型不占键
	_, ok := s.ByType[schema.AssetTypeProperty]
	assert.False(t, ok)
	// 月度变化由仓库状态结合历史点位填充
	assert.Zero(t, s.MonthlyChange)
}

func TestComputeAssetStatsEmpty(t *testing.T) {
	s := ComputeAssetStats(nil)
	assert.Zero(t, s.TotalValue)
	assert.Empty(t, s.ByType)
	assert.Equal(t, schema.DefaultCurrency, s.Currency)
}

func TestComputeHobbyStats(t *testing.T) {
	hobbies := []schema.Hobby{
		{Category: schema.HobbyCategoryReading, Enthusiasm: 4, TimeSpent: 2},
		{Category: schema.HobbyCategoryReading, Enthusiasm: 6, TimeSpent: 3.5},
		{Category: schema.HobbyCategorySport, Enthusiasm: 10, TimeSpent: 1},
	}

	s := ComputeHobbyStats(hobbies)

	assert.Equal(t, 3, s.TotalHobbies)
	assert.Equal(t, 6.7, s.AverageEnthusiasm) // (4+6+10)/3 = 6.666... -> 6.7
	assert.Equal(t, 6.5, s.TotalTimeSpent)
	assert.Equal(t, 2, s.ByCategory[schema.HobbyCategoryReading])
	assert.Equal(t, 1, s.ByCategory[schema.HobbyCategorySport])
}

func TestComputeHobbyStatsZeroEnthusiasmDefaults(t *testing.T) {
	// 未填热情度的历史行按默认值 5 参与均值
	s := ComputeHobbyStats([]schema.Hobby{
		{Category: schema.HobbyCategoryMusic},
		{Category: schema.HobbyCategoryMusic, Enthusiasm: 7},
	})
	assert.Equal(t, 6.0, s.AverageEnthusiasm)
}

func TestComputeTraitStats(t *testing.T) {
	traits := []schema.Trait{
		{Type: schema.TraitTypeStrength, Level: 8},
		{Type: schema.TraitTypeStrength, Level: 6},
		{Type: schema.TraitTypeWeakness, Level: 3},
		{Type: schema.TraitTypePersonality, Level: 5},
	}

	s := ComputeTraitStats(traits)

	assert.Equal(t, 4, s.TotalTraits)
	assert.Equal(t, 2, s.StrengthsCount)
	assert.Equal(t, 1, s.WeaknessesCount)
	assert.Equal(t, 1, s.PersonalityCount)
	assert.Equal(t, 5.5, s.AverageLevel)
}

func TestComputeSkillStats(t *testing.T) {
	skills := []schema.Skill{
		{Category: schema.SkillCategoryProgramming, Level: 3, Experience: 250},
		{Category: schema.SkillCategoryProgramming, Level: 1, Experience: 40},
		{Category: schema.SkillCategoryMusic, Level: 2, Experience: 110},
	}

	s := ComputeSkillStats(skills)

	assert.Equal(t, 3, s.TotalSkills)
	assert.Equal(t, 2.0, s.AverageSkillLevel)
	assert.Equal(t, 400, s.TotalExperience)
	assert.Equal(t, 2, s.ByCategory[schema.SkillCategoryProgramming])
	assert.Equal(t, 1, s.ByCategory[schema.SkillCategoryMusic])
}

func TestComputeSkillStatsZeroLevelCountsAsOne(t *testing.T) {
	s := ComputeSkillStats([]schema.Skill{
		{Category: schema.SkillCategoryOther},
		{Category: schema.SkillCategoryOther, Level: 3},
	})
	assert.Equal(t, 2.0, s.AverageSkillLevel)
}

func TestComputeStatsEmptyCollections(t *testing.T) {
	assert.Zero(t, ComputeHobbyStats(nil).AverageEnthusiasm)
	assert.Zero(t, ComputeTraitStats(nil).AverageLevel)
	assert.Zero(t, ComputeSkillStats(nil).AverageSkillLevel)
}

func TestComputeStatsIdempotent(t *testing.T) {
	skills := []schema.Skill{
		{Category: schema.SkillCategoryDesign, Level: 2, Experience: 130},
	}
	assert.Equal(t, ComputeSkillStats(skills), ComputeSkillStats(skills))
}

func TestRoundHelpers(t *testing.T) {
	assert.Equal(t, 6.7, Round1(6.666))
	assert.Equal(t, 6.6, Round1(6.64))
	assert.Equal(t, 3.33, Round2(10.0/3.0))
}

func TestWeeklyProgress(t *testing.T) {
	assert.Equal(t, 0, WeeklyProgress(0))
	assert.Equal(t, 50, WeeklyProgress(250))
	assert.Equal(t, 99, WeeklyProgress(199))
}
