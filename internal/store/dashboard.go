package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/yuqie6/lifequest/internal/notify"
	"github.com/yuqie6/lifequest/internal/stats"
)

// DashboardService 首页聚合。只读依赖注入：四类仓储 + 档案访问入口，
// 与各实体仓库状态相互独立，不做跨表事务，口径不一致由各自重拉收敛
type DashboardService struct {
	mu       sync.RWMutex
	skills   SkillRepository
	assets   AssetRepository
	hobbies  HobbyRepository
	traits   TraitRepository
	profile  ProfileSource
	notifier notify.Notifier

	stats   stats.DashboardStats
	loading bool
}

// NewDashboardService 创建首页聚合服务
func NewDashboardService(
	skills SkillRepository,
	assets AssetRepository,
	hobbies HobbyRepository,
	traits TraitRepository,
	profile ProfileSource,
	notifier notify.Notifier,
) *DashboardService {
	return &DashboardService{
		skills:   skills,
		assets:   assets,
		hobbies:  hobbies,
		traits:   traits,
		profile:  profile,
		notifier: notifier,
	}
}

// Fetch 拉取四类集合并计算首页统计。未登录时静默返回
func (s *DashboardService) Fetch(ctx context.Context) {
	userID, ok := s.profile.CurrentUserID()
	if !ok {
		return
	}

	s.setLoading(true)
	defer s.setLoading(false)

	skills, err := s.skills.ListByUser(ctx, userID)
	if err != nil {
		slog.Error("获取首页数据失败", "error", err)
		s.notifier.Failure("获取首页数据失败")
		return
	}
	assets, err := s.assets.ListByUser(ctx, userID)
	if err != nil {
		slog.Error("获取首页数据失败", "error", err)
		s.notifier.Failure("获取首页数据失败")
		return
	}
	hobbies, err := s.hobbies.ListByUser(ctx, userID)
	if err != nil {
		slog.Error("获取首页数据失败", "error", err)
		s.notifier.Failure("获取首页数据失败")
		return
	}
	traits, err := s.traits.ListByUser(ctx, userID)
	if err != nil {
		slog.Error("获取首页数据失败", "error", err)
		s.notifier.Failure("获取首页数据失败")
		return
	}

	computed := stats.ComputeDashboardStats(skills, assets, hobbies, traits, s.profile.ProfileExperience())

	s.mu.Lock()
	s.stats = computed
	s.mu.Unlock()
}

// Stats 返回当前首页统计
func (s *DashboardService) Stats() stats.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.stats
	st.RecentActivities = append([]stats.ActivityItem(nil), s.stats.RecentActivities...)
	return st
}

// Loading 是否处于拉取中
func (s *DashboardService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *DashboardService) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
