package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuqie6/lifequest/internal/notify"
	"github.com/yuqie6/lifequest/internal/schema"
)

func TestAssetStoreCreateAndStats(t *testing.T) {
	rec := &notify.Recorder{}
	s := NewAssetStore(&fakeAssetRepo{}, nil, fakeSession{userID: "u1"}, rec, nil)
	ctx := context.Background()

	require.True(t, s.Create(ctx, CreateAssetInput{Name: "现金", Type: schema.AssetTypeCash, Amount: 1000}))
	require.True(t, s.Create(ctx, CreateAssetInput{Name: "基金", Type: schema.AssetTypeInvestment, Amount: 4000}))

	st := s.Stats()
	assert.Equal(t, 5000.0, st.TotalValue)
	assert.Equal(t, 1000.0, st.ByType[schema.AssetTypeCash])
	assert.Equal(t, schema.DefaultCurrency, st.Currency)
	assert.Equal(t, "基金", s.Snapshot()[0].Name)
}

func TestAssetStoreCreateValidation(t *testing.T) {
	rec := &notify.Recorder{}
	s := NewAssetStore(&fakeAssetRepo{}, nil, fakeSession{userID: "u1"}, rec, nil)
	ctx := context.Background()

	assert.False(t, s.Create(ctx, CreateAssetInput{Name: "负数", Type: schema.AssetTypeCash, Amount: -1}))
	assert.False(t, s.Create(ctx, CreateAssetInput{Name: "坏类型", Type: "house", Amount: 10}))
	assert.Equal(t, []string{"资产信息不完整", "资产信息不完整"}, rec.Failures)
}

func TestAssetStoreDeleteDropsTypeKey(t *testing.T) {
	s := NewAssetStore(&fakeAssetRepo{}, nil, fakeSession{userID: "u1"}, &notify.Recorder{}, nil)
	ctx := context.Background()

	require.True(t, s.Create(ctx, CreateAssetInput{Name: "现金", Type: schema.AssetTypeCash, Amount: 1000}))
	require.True(t, s.Create(ctx, CreateAssetInput{Name: "车", Type: schema.AssetTypeVehicle, Amount: 80000}))
	id := s.Snapshot()[0].ID // 车

	require.True(t, s.Delete(ctx, id))

	st := s.Stats()
	assert.Equal(t, 1000.0, st.TotalValue)
	_, ok := st.ByType[schema.AssetTypeVehicle]
	assert.False(t, ok)
}

func TestAssetStoreMonthlyChangeFromHistory(t *testing.T) {
	history := newFakeHistory()
	s := NewAssetStore(&fakeAssetRepo{}, history, fakeSession{userID: "u1"}, &notify.Recorder{}, nil)
	ctx := context.Background()

	// 30 天前总值 4000，现总值 5000 -> +25%
	past := time.Now().AddDate(0, 0, -35).Format("2006-01-02")
	require.NoError(t, history.Record(ctx, "u1", past, 4000))

	require.True(t, s.Create(ctx, CreateAssetInput{Name: "现金", Type: schema.AssetTypeCash, Amount: 5000}))

	assert.Equal(t, 25.0, s.Stats().MonthlyChange)
}

func TestAssetStoreMonthlyChangeZeroWithoutHistory(t *testing.T) {
	s := NewAssetStore(&fakeAssetRepo{}, newFakeHistory(), fakeSession{userID: "u1"}, &notify.Recorder{}, nil)
	ctx := context.Background()

	require.True(t, s.Create(ctx, CreateAssetInput{Name: "现金", Type: schema.AssetTypeCash, Amount: 5000}))

	// 只有今天的点位，没有 30 天前的对照 -> 0
	assert.Zero(t, s.Stats().MonthlyChange)
}

func TestAssetStoreFetchFailureKeepsSnapshot(t *testing.T) {
	repo := &fakeAssetRepo{}
	rec := &notify.Recorder{}
	s := NewAssetStore(repo, nil, fakeSession{userID: "u1"}, rec, nil)
	ctx := context.Background()

	require.True(t, s.Create(ctx, CreateAssetInput{Name: "现金", Type: schema.AssetTypeCash, Amount: 100}))

	repo.failList = true
	s.Fetch(ctx)

	assert.Len(t, s.Snapshot(), 1)
	assert.Equal(t, []string{"获取资产数据失败"}, rec.Failures)
}
