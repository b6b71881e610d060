package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuqie6/lifequest/internal/notify"
	"github.com/yuqie6/lifequest/internal/schema"
)

func newDashboardForTest(skills *fakeSkillRepo, assets *fakeAssetRepo, exp int) (*DashboardService, *notify.Recorder) {
	rec := &notify.Recorder{}
	svc := NewDashboardService(
		skills, assets, &fakeHobbyRepo{}, &fakeTraitRepo{},
		fakeProfileSource{fakeSession: fakeSession{userID: "u1"}, experience: exp},
		rec,
	)
	return svc, rec
}

func TestDashboardFetchAggregatesAll(t *testing.T) {
	skills := &fakeSkillRepo{}
	assets := &fakeAssetRepo{}
	ctx := context.Background()

	_, err := skills.Insert(ctx, &schema.Skill{UserID: "u1", Name: "Go", Category: schema.SkillCategoryProgramming, Level: 3})
	require.NoError(t, err)
	_, err = assets.Insert(ctx, &schema.Asset{UserID: "u1", Name: "现金", Type: schema.AssetTypeCash, Amount: 1200})
	require.NoError(t, err)

	svc, rec := newDashboardForTest(skills, assets, 130)
	svc.Fetch(ctx)

	st := svc.Stats()
	assert.Equal(t, 1, st.TotalSkills)
	assert.Equal(t, 1200.0, st.TotalAssets)
	assert.Equal(t, 30, st.WeeklyProgress)
	assert.Len(t, st.RecentActivities, 2)
	assert.Empty(t, rec.Failures)
}

func TestDashboardFetchFailureKeepsStats(t *testing.T) {
	skills := &fakeSkillRepo{}
	assets := &fakeAssetRepo{}
	ctx := context.Background()

	_, err := skills.Insert(ctx, &schema.Skill{UserID: "u1", Name: "Go", Category: schema.SkillCategoryProgramming})
	require.NoError(t, err)

	svc, rec := newDashboardForTest(skills, assets, 0)
	svc.Fetch(ctx)
	require.Equal(t, 1, svc.Stats().TotalSkills)

	assets.failList = true
	svc.Fetch(ctx)

	assert.Equal(t, 1, svc.Stats().TotalSkills) // 旧统计保留
	assert.Equal(t, []string{"获取首页数据失败"}, rec.Failures)
}

func TestDashboardFetchUnauthenticated(t *testing.T) {
	rec := &notify.Recorder{}
	svc := NewDashboardService(
		&fakeSkillRepo{}, &fakeAssetRepo{}, &fakeHobbyRepo{}, &fakeTraitRepo{},
		fakeProfileSource{}, rec,
	)

	svc.Fetch(context.Background())

	assert.Zero(t, svc.Stats().TotalSkills)
	assert.Empty(t, rec.Failures)
}
