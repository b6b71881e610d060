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

// TraitStore 特质集合的内存快照与统计
type TraitStore struct {
	mu       sync.RWMutex
	repo     TraitRepository
	session  SessionSource
	notifier notify.Notifier
	events   Subscriber

	traits  []schema.Trait
	stats   stats.TraitStats
	loading bool
}

// NewTraitStore 创建仓库状态
func NewTraitStore(repo TraitRepository, session SessionSource, notifier notify.Notifier, events Subscriber) *TraitStore {
	return &TraitStore{
		repo:     repo,
		session:  session,
		notifier: notifier,
		events:   events,
	}
}

// CreateTraitInput 新建特质的字段
type CreateTraitInput struct {
	Name        string           `json:"name"`
	Type        schema.TraitType `json:"type"`
	Level       int              `json:"level"`
	Description string           `json:"description"`
}

// Fetch 整表拉取当前用户的特质
func (s *TraitStore) Fetch(ctx context.Context) {
	userID, ok := s.session.CurrentUserID()
	if !ok {
		return
	}

	s.setLoading(true)
	defer s.setLoading(false)

	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		slog.Error("获取特质失败", "error", err)
		s.notifier.Failure("获取特质数据失败")
		return
	}

	s.mu.Lock()
	s.traits = rows
	s.stats = stats.ComputeTraitStats(s.traits)
	s.mu.Unlock()
}

// Create 新建特质
func (s *TraitStore) Create(ctx context.Context, in CreateTraitInput) bool {
	userID, ok := s.session.CurrentUserID()
	if !ok {
		s.notifier.Failure("用户未登录")
		return false
	}
	if in.Name == "" || !in.Type.Valid() {
		s.notifier.Failure("特质信息不完整")
		return false
	}
	if in.Level <= 0 {
		in.Level = 1
	}
	if in.Level > 10 {
		in.Level = 10
	}

	created, err := s.repo.Insert(ctx, &schema.Trait{
		UserID:      userID,
		Name:        in.Name,
		Type:        in.Type,
		Level:       in.Level,
		Description: in.Description,
	})
	if err != nil {
		slog.Error("添加特质失败", "error", err)
		s.notifier.Failure("添加特质失败")
		return false
	}

	s.mu.Lock()
	s.traits = append([]schema.Trait{*created}, s.traits...)
	s.stats = stats.ComputeTraitStats(s.traits)
	s.mu.Unlock()

	s.notifier.Success("特质添加成功")
	return true
}

// Update 按 ID 更新特质
func (s *TraitStore) Update(ctx context.Context, id string, upd schema.TraitUpdate) bool {
	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		slog.Error("更新特质失败", "id", id, "error", err)
		s.notifier.Failure("更新特质失败")
		return false
	}

	s.mu.Lock()
	for i := range s.traits {
		if s.traits[i].ID == id {
			s.traits[i] = *updated
			break
		}
	}
	s.stats = stats.ComputeTraitStats(s.traits)
	s.mu.Unlock()

	s.notifier.Success("特质更新成功")
	return true
}

// Delete 按 ID 删除特质
func (s *TraitStore) Delete(ctx context.Context, id string) bool {
	if err := s.repo.Delete(ctx, id); err != nil {
		slog.Error("删除特质失败", "id", id, "error", err)
		s.notifier.Failure("删除特质失败")
		return false
	}

	s.mu.Lock()
	kept := s.traits[:0]
	for _, t := range s.traits {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.traits = kept
	s.stats = stats.ComputeTraitStats(s.traits)
	s.mu.Unlock()

	s.notifier.Success("特质删除成功")
	return true
}

// Run 监听变更事件并整表重拉
func (s *TraitStore) Run(ctx context.Context) {
	if s.events == nil {
		return
	}
	for evt := range s.events.Subscribe(ctx, 16) {
		if evt.Table == eventbus.TableTraits {
			s.Fetch(ctx)
		}
	}
}

// Snapshot 返回快照副本
func (s *TraitStore) Snapshot() []schema.Trait {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]schema.Trait(nil), s.traits...)
}

// Stats 返回当前统计
func (s *TraitStore) Stats() stats.TraitStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Loading 是否处于整表拉取中
func (s *TraitStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *TraitStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
