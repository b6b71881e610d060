package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/yuqie6/lifequest/internal/eventbus"
	"github.com/yuqie6/lifequest/internal/notify"
	"github.com/yuqie6/lifequest/internal/schema"
	"github.com/yuqie6/lifequest/internal/stats"
)

// HobbyStore 爱好集合的内存快照与统计
type HobbyStore struct {
	mu       sync.RWMutex
	repo     HobbyRepository
	session  SessionSource
	notifier notify.Notifier
	events   Subscriber

	hobbies []schema.Hobby
	stats   stats.HobbyStats
	loading bool
}

// NewHobbyStore 创建仓库状态
func NewHobbyStore(repo HobbyRepository, session SessionSource, notifier notify.Notifier, events Subscriber) *HobbyStore {
	return &HobbyStore{
		repo:     repo,
		session:  session,
		notifier: notifier,
		events:   events,
		stats:    stats.ComputeHobbyStats(nil),
	}
}

// CreateHobbyInput 新建爱好的字段
type CreateHobbyInput struct {
	Name        string               `json:"name"`
	Category    schema.HobbyCategory `json:"category"`
	Enthusiasm  int                  `json:"enthusiasm"`
	TimeSpent   float64              `json:"time_spent"`
	Description string               `json:"description"`
	Goals       []string             `json:"goals"`
}

// Fetch 整表拉取当前用户的爱好
func (s *HobbyStore) Fetch(ctx context.Context) {
	userID, ok := s.session.CurrentUserID()
	if !ok {
		return
	}

	s.setLoading(true)
	defer s.setLoading(false)

	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		slog.Error("获取爱好失败", "error", err)
		s.notifier.Failure("获取爱好数据失败")
		return
	}

	s.mu.Lock()
	s.hobbies = rows
	s.stats = stats.ComputeHobbyStats(s.hobbies)
	s.mu.Unlock()
}

// Create 新建爱好
func (s *HobbyStore) Create(ctx context.Context, in CreateHobbyInput) bool {
	userID, ok := s.session.CurrentUserID()
	if !ok {
		s.notifier.Failure("用户未登录")
		return false
	}
	if in.Name == "" || !in.Category.Valid() {
		s.notifier.Failure("爱好信息不完整")
		return false
	}
	if in.Enthusiasm <= 0 {
		in.Enthusiasm = 5
	}
	if in.Enthusiasm > 10 {
		in.Enthusiasm = 10
	}
	if in.TimeSpent < 0 {
		in.TimeSpent = 0
	}
	if len(in.Goals) > schema.MaxHobbyGoals {
		in.Goals = in.Goals[:schema.MaxHobbyGoals]
	}

	created, err := s.repo.Insert(ctx, &schema.Hobby{
		UserID:      userID,
		Name:        in.Name,
		Category:    in.Category,
		Enthusiasm:  in.Enthusiasm,
		TimeSpent:   in.TimeSpent,
		Description: in.Description,
		Goals:       schema.JSONArray(in.Goals),
	})
	if err != nil {
		slog.Error("添加爱好失败", "error", err)
		s.notifier.Failure("添加爱好失败")
		return false
	}

	s.mu.Lock()
	s.hobbies = append([]schema.Hobby{*created}, s.hobbies...)
	s.stats = stats.ComputeHobbyStats(s.hobbies)
	s.mu.Unlock()

	s.notifier.Success("爱好添加成功")
	return true
}

// Update 按 ID 更新爱好
func (s *HobbyStore) Update(ctx context.Context, id string, upd schema.HobbyUpdate) bool {
	if upd.Goals != nil && len(*upd.Goals) > schema.MaxHobbyGoals {
		trimmed := (*upd.Goals)[:schema.MaxHobbyGoals]
		upd.Goals = &trimmed
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		slog.Error("更新爱好失败", "id", id, "error", err)
		s.notifier.Failure("更新爱好失败")
		return false
	}

	s.mu.Lock()
	for i := range s.hobbies {
		if s.hobbies[i].ID == id {
			s.hobbies[i] = *updated
			break
		}
	}
	s.stats = stats.ComputeHobbyStats(s.hobbies)
	s.mu.Unlock()

	s.notifier.Success("爱好更新成功")
	return true
}

// Delete 按 ID 删除爱好
func (s *HobbyStore) Delete(ctx context.Context, id string) bool {
	if err := s.repo.Delete(ctx, id); err != nil {
		slog.Error("删除爱好失败", "id", id, "error", err)
		s.notifier.Failure("删除爱好失败")
		return false
	}

	s.mu.Lock()
	kept := s.hobbies[:0]
	for _, h := range s.hobbies {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	s.hobbies = kept
	s.stats = stats.ComputeHobbyStats(s.hobbies)
	s.mu.Unlock()

	s.notifier.Success("爱好删除成功")
	return true
}

// Run 监听变更事件并整表重拉
func (s *HobbyStore) Run(ctx context.Context) {
	if s.events == nil {
		return
	}
	for evt := range s.events.Subscribe(ctx, 16) {
		if evt.Table == eventbus.TableHobbies {
			s.Fetch(ctx)
		}
	}
}

// Snapshot 返回快照副本
func (s *HobbyStore) Snapshot() []schema.Hobby {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]schema.Hobby(nil), s.hobbies...)
}

// Stats 返回当前统计
func (s *HobbyStore) Stats() stats.HobbyStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.stats
	st.ByCategory = make(map[schema.HobbyCategory]int, len(s.stats.ByCategory))
	for k, v := range s.stats.ByCategory {
		st.ByCategory[k] = v
	}
	return st
}

// Loading 是否处于整表拉取中
func (s *HobbyStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *HobbyStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
