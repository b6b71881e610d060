package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/yuqie6/lifequest/internal/eventbus"
	"github.com/yuqie6/lifequest/internal/leveling"
	"github.com/yuqie6/lifequest/internal/notify"
	"github.com/yuqie6/lifequest/internal/schema"
	"github.com/yuqie6/lifequest/internal/stats"
)

// SkillStore 技能集合的内存快照与统计
// 快照按创建时间倒序，任何变更后整体重算统计
type SkillStore struct {
	mu       sync.RWMutex
	repo     SkillRepository
	session  SessionSource
	notifier notify.Notifier
	events   Subscriber

	skills  []schema.Skill
	stats   stats.SkillStats
	loading bool
}

// NewSkillStore 创建仓库状态，events 可为 nil（不监听变更）
func NewSkillStore(repo SkillRepository, session SessionSource, notifier notify.Notifier, events Subscriber) *SkillStore {
	return &SkillStore{
		repo:     repo,
		session:  session,
		notifier: notifier,
		events:   events,
		stats:    stats.ComputeSkillStats(nil),
	}
}

// CreateSkillInput 新建技能的字段
type CreateSkillInput struct {
	Name        string               `json:"name"`
	Category    schema.SkillCategory `json:"category"`
	Level       int                  `json:"level"`
	Experience  int                  `json:"experience"`
	Description string               `json:"description"`
	Icon        string               `json:"icon"`
}

// Fetch 整表拉取当前用户的技能。未登录时静默返回；
// 失败时保留旧快照并发一条失败通知，不向调用方抛错
func (s *SkillStore) Fetch(ctx context.Context) {
	userID, ok := s.session.CurrentUserID()
	if !ok {
		return
	}

	s.setLoading(true)
	defer s.setLoading(false)

	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		slog.Error("获取技能失败", "error", err)
		s.notifier.Failure("获取技能数据失败")
		return
	}

	s.mu.Lock()
	s.skills = rows
	s.stats = stats.ComputeSkillStats(s.skills)
	s.mu.Unlock()
}

// Create 新建技能，成功后把服务端返回的行插到快照最前
func (s *SkillStore) Create(ctx context.Context, in CreateSkillInput) bool {
	userID, ok := s.session.CurrentUserID()
	if !ok {
		s.notifier.Failure("用户未登录")
		return false
	}
	if in.Name == "" || !in.Category.Valid() {
		s.notifier.Failure("技能信息不完整")
		return false
	}
	if in.Level <= 0 {
		in.Level = 1
	}
	if in.Experience < 0 {
		in.Experience = 0
	}

	created, err := s.repo.Insert(ctx, &schema.Skill{
		UserID:      userID,
		Name:        in.Name,
		Category:    in.Category,
		Level:       in.Level,
		Experience:  in.Experience,
		Description: in.Description,
		Icon:        in.Icon,
	})
	if err != nil {
		slog.Error("添加技能失败", "error", err)
		s.notifier.Failure("添加技能失败")
		return false
	}

	s.mu.Lock()
	s.skills = append([]schema.Skill{*created}, s.skills...)
	s.stats = stats.ComputeSkillStats(s.skills)
	s.mu.Unlock()

	s.notifier.Success("技能添加成功")
	return true
}

// Update 按 ID 更新技能，快照内同 ID 的行原地替换为服务端返回的行
func (s *SkillStore) Update(ctx context.Context, id string, upd schema.SkillUpdate) bool {
	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		slog.Error("更新技能失败", "id", id, "error", err)
		s.notifier.Failure("更新技能失败")
		return false
	}

	s.mu.Lock()
	for i := range s.skills {
		if s.skills[i].ID == id {
			s.skills[i] = *updated
			break
		}
	}
	s.stats = stats.ComputeSkillStats(s.skills)
	s.mu.Unlock()

	s.notifier.Success("技能更新成功")
	return true
}

// Delete 按 ID 删除技能并从快照中剔除
func (s *SkillStore) Delete(ctx context.Context, id string) bool {
	if err := s.repo.Delete(ctx, id); err != nil {
		slog.Error("删除技能失败", "id", id, "error", err)
		s.notifier.Failure("删除技能失败")
		return false
	}

	s.mu.Lock()
	kept := s.skills[:0]
	for _, sk := range s.skills {
		if sk.ID != id {
			kept = append(kept, sk)
		}
	}
	s.skills = kept
	s.stats = stats.ComputeSkillStats(s.skills)
	s.mu.Unlock()

	s.notifier.Success("技能删除成功")
	return true
}

// AddExperience 叠加经验并按公式推导等级，二者总是一致写入
func (s *SkillStore) AddExperience(ctx context.Context, id string, delta int) bool {
	s.mu.RLock()
	var current *schema.Skill
	for i := range s.skills {
		if s.skills[i].ID == id {
			current = &s.skills[i]
			break
		}
	}
	if current == nil {
		s.mu.RUnlock()
		return false
	}
	newExp := leveling.AddExperience(current.Experience, delta)
	s.mu.RUnlock()

	newLevel := leveling.LevelForExperience(newExp)
	return s.Update(ctx, id, schema.SkillUpdate{
		Experience: &newExp,
		Level:      &newLevel,
	})
}

// Run 监听变更事件，本表任何变更（含本进程写入的回声）都触发整表重拉
func (s *SkillStore) Run(ctx context.Context) {
	if s.events == nil {
		return
	}
	for evt := range s.events.Subscribe(ctx, 16) {
		if evt.Table == eventbus.TableSkills {
			s.Fetch(ctx)
		}
	}
}

// Snapshot 返回快照副本
func (s *SkillStore) Snapshot() []schema.Skill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]schema.Skill(nil), s.skills...)
}

// Stats 返回当前统计
func (s *SkillStore) Stats() stats.SkillStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.stats
	st.ByCategory = make(map[schema.SkillCategory]int, len(s.stats.ByCategory))
	for k, v := range s.stats.ByCategory {
		st.ByCategory[k] = v
	}
	return st
}

// Loading 是否处于整表拉取中
func (s *SkillStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *SkillStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
