// Package leveling 实现技能与档案共用的等级/经验模型。
// 全部为纯整数运算，无副作用。
package leveling

// ExpPerLevel 每级所需经验值
const ExpPerLevel = 100

// LevelForExperience 由累计经验值推导等级：floor(exp/100)+1，恒 >= 1
func LevelForExperience(exp int) int {
	if exp < 0 {
		exp = 0
	}
	return exp/ExpPerLevel + 1
}

// ProgressWithinLevel 当前等级内的进度，区间 [0, 100)
func ProgressWithinLevel(exp int) int {
	if exp < 0 {
		exp = 0
	}
	return exp % ExpPerLevel
}

// ExperienceToNextLevel 距下一级所需经验，区间 (0, 100]
// 进度为 0 时返回 100：刚升级应显示满条而非 0
func ExperienceToNextLevel(exp int) int {
	p := ProgressWithinLevel(exp)
	if p == 0 {
		return ExpPerLevel
	}
	return ExpPerLevel - p
}

// AddExperience 叠加经验增量。允许负增量，不在此处做下限裁剪
func AddExperience(current, delta int) int {
	return current + delta
}
