package leveling

import "testing"

func TestLevelForExperience(t *testing.T) {
	cases := []struct {
		exp  int
		want int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{101, 2},
		{250, 3},
		{1000, 11},
		{-20, 1}, // 负经验按 0 处理
	}

	for _, tc := range cases {
		got := LevelForExperience(tc.exp)
		if got != tc.want {
			t.Errorf("LevelForExperience(%d) = %d, want %d", tc.exp, got, tc.want)
		}
	}
}

func TestProgressWithinLevel(t *testing.T) {
	cases := []struct {
		exp  int
		want int
	}{
		{0, 0},
		{50, 50},
		{99, 99},
		{100, 0},
		{250, 50},
		{-5, 0},
	}

	for _, tc := range cases {
		got := ProgressWithinLevel(tc.exp)
		if got != tc.want {
			t.Errorf("ProgressWithinLevel(%d) = %d, want %d", tc.exp, got, tc.want)
		}
		if got < 0 || got >= ExpPerLevel {
			t.Errorf("ProgressWithinLevel(%d) = %d, out of [0,100)", tc.exp, got)
		}
	}
}

func TestExperienceToNextLevel(t *testing.T) {
	cases := []struct {
		exp  int
		want int
	}{
		{0, 100}, // 刚升级显示满条
		{1, 99},
		{99, 1},
		{100, 100},
		{250, 50},
	}

	for _, tc := range cases {
		got := ExperienceToNextLevel(tc.exp)
		if got != tc.want {
			t.Errorf("ExperienceToNextLevel(%d) = %d, want %d", tc.exp, got, tc.want)
		}
	}
}

func TestAddExperienceAllowsNegativeDelta(t *testing.T) {
	if got := AddExperience(50, -80); got != -30 {
		t.Fatalf("AddExperience(50, -80) = %d, want -30", got)
	}
	if LevelForExperience(AddExperience(50, -80)) != 1 {
		t.Fatal("负总经验应推导为 1 级")
	}
}

func TestLevelProgressConsistency(t *testing.T) {
	// 任意经验值下：level、progress 与 exp 可互相还原
	for exp := 0; exp <= 500; exp += 7 {
		level := LevelForExperience(exp)
		progress := ProgressWithinLevel(exp)
		if (level-1)*ExpPerLevel+progress != exp {
			t.Fatalf("exp=%d: level=%d progress=%d 不一致", exp, level, progress)
		}
	}
}
