package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/yuqie6/lifequest/internal/eventbus"
	"github.com/yuqie6/lifequest/internal/notify"
	"github.com/yuqie6/lifequest/internal/schema"
	"github.com/yuqie6/lifequest/internal/stats"
)

// monthlyChangeWindowDays 月度变化对比窗口
const monthlyChangeWindowDays = 30

// AssetStore 资产集合的内存快照与统计。
// 统计本身是纯计算；月度变化来自每日总值点位的历史对比，
// 没有足够历史时为 0，绝不使用随机占位值
type AssetStore struct {
	mu       sync.RWMutex
	repo     AssetRepository
	history  AssetValueHistory
	session  SessionSource
	notifier notify.Notifier
	events   Subscriber

	assets  []schema.Asset
	stats   stats.AssetStats
	loading bool
}

// NewAssetStore 创建仓库状态，history 与 events 均可为 nil
func NewAssetStore(repo AssetRepository, history AssetValueHistory, session SessionSource, notifier notify.Notifier, events Subscriber) *AssetStore {
	return &AssetStore{
		repo:     repo,
		history:  history,
		session:  session,
		notifier: notifier,
		events:   events,
		stats:    stats.ComputeAssetStats(nil),
	}
}

// CreateAssetInput 新建资产的字段
type CreateAssetInput struct {
	Name        string           `json:"name"`
	Type        schema.AssetType `json:"type"`
	Amount      float64          `json:"amount"`
	Currency    string           `json:"currency"`
	Description string           `json:"description"`
}

// Fetch 整表拉取当前用户的资产
func (s *AssetStore) Fetch(ctx context.Context) {
	userID, ok := s.session.CurrentUserID()
	if !ok {
		return
	}

	s.setLoading(true)
	defer s.setLoading(false)

	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		slog.Error("获取资产失败", "error", err)
		s.notifier.Failure("获取资产数据失败")
		return
	}

	s.mu.Lock()
	s.assets = rows
	s.mu.Unlock()
	s.recompute(ctx, userID)
}

// Create 新建资产
func (s *AssetStore) Create(ctx context.Context, in CreateAssetInput) bool {
	userID, ok := s.session.CurrentUserID()
	if !ok {
		s.notifier.Failure("用户未登录")
		return false
	}
	if in.Name == "" || !in.Type.Valid() || in.Amount < 0 {
		s.notifier.Failure("资产信息不完整")
		return false
	}

	created, err := s.repo.Insert(ctx, &schema.Asset{
		UserID:      userID,
		Name:        in.Name,
		Type:        in.Type,
		Amount:      in.Amount,
		Currency:    in.Currency,
		Description: in.Description,
	})
	if err != nil {
		slog.Error("添加资产失败", "error", err)
		s.notifier.Failure("添加资产失败")
		return false
	}

	s.mu.Lock()
	s.assets = append([]schema.Asset{*created}, s.assets...)
	s.mu.Unlock()
	s.recompute(ctx, userID)

	s.notifier.Success("资产添加成功")
	return true
}

// Update 按 ID 更新资产
func (s *AssetStore) Update(ctx context.Context, id string, upd schema.AssetUpdate) bool {
	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		slog.Error("更新资产失败", "id", id, "error", err)
		s.notifier.Failure("更新资产失败")
		return false
	}

	s.mu.Lock()
	for i := range s.assets {
		if s.assets[i].ID == id {
			s.assets[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	s.recompute(ctx, updated.UserID)

	s.notifier.Success("资产更新成功")
	return true
}

// Delete 按 ID 删除资产
func (s *AssetStore) Delete(ctx context.Context, id string) bool {
	if err := s.repo.Delete(ctx, id); err != nil {
		slog.Error("删除资产失败", "id", id, "error", err)
		s.notifier.Failure("删除资产失败")
		return false
	}

	s.mu.Lock()
	kept := s.assets[:0]
	for _, a := range s.assets {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.assets = kept
	s.mu.Unlock()

	userID, _ := s.session.CurrentUserID()
	s.recompute(ctx, userID)

	s.notifier.Success("资产删除成功")
	return true
}

// Run 监听变更事件并整表重拉
func (s *AssetStore) Run(ctx context.Context) {
	if s.events == nil {
		return
	}
	for evt := range s.events.Subscribe(ctx, 16) {
		if evt.Table == eventbus.TableAssets {
			s.Fetch(ctx)
		}
	}
}

// Snapshot 返回快照副本
func (s *AssetStore) Snapshot() []schema.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]schema.Asset(nil), s.assets...)
}

// Stats 返回当前统计
func (s *AssetStore) Stats() stats.AssetStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.stats
	st.ByType = make(map[schema.AssetType]float64, len(s.stats.ByType))
	for k, v := range s.stats.ByType {
		st.ByType[k] = v
	}
	return st
}

// Loading 是否处于整表拉取中
func (s *AssetStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// recompute 重算统计并维护总值历史。历史读写失败不影响本次操作结果
func (s *AssetStore) recompute(ctx context.Context, userID string) {
	s.mu.Lock()
	st := stats.ComputeAssetStats(s.assets)
	s.mu.Unlock()

	if s.history != nil && userID != "" {
		now := time.Now()
		today := now.Format("2006-01-02")
		if err := s.history.Record(ctx, userID, today, st.TotalValue); err != nil {
			slog.Warn("记录资产点位失败", "error", err)
		}

		cutoff := now.AddDate(0, 0, -monthlyChangeWindowDays).Format("2006-01-02")
		point, err := s.history.LatestOnOrBefore(ctx, userID, cutoff)
		if err != nil {
			slog.Warn("查询资产点位失败", "error", err)
		} else if point != nil && point.TotalValue > 0 {
			st.MonthlyChange = stats.Round2((st.TotalValue - point.TotalValue) / point.TotalValue * 100)
		}
	}

	s.mu.Lock()
	s.stats = st
	s.mu.Unlock()
}

func (s *AssetStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
