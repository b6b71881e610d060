// Package bootstrap 组装核心依赖。
package bootstrap

import (
	"context"
	"time"

	"github.com/yuqie6/lifequest/internal/auth"
	"github.com/yuqie6/lifequest/internal/eventbus"
	"github.com/yuqie6/lifequest/internal/notify"
	"github.com/yuqie6/lifequest/internal/pkg/config"
	"github.com/yuqie6/lifequest/internal/repository"
	"github.com/yuqie6/lifequest/internal/store"
)

// Core 持有全部核心依赖
type Core struct {
	Cfg      *config.Config
	DB       *repository.Database
	Hub      *eventbus.Hub
	Notifier notify.Notifier
	Auth     *auth.Manager

	Repos struct {
		User       *repository.UserRepository
		Profile    *repository.ProfileRepository
		Skill      *repository.SkillRepository
		Asset      *repository.AssetRepository
		Hobby      *repository.HobbyRepository
		Trait      *repository.TraitRepository
		AssetValue *repository.AssetValueRepository
	}

	Stores struct {
		Skills    *store.SkillStore
		Assets    *store.AssetStore
		Hobbies   *store.HobbyStore
		Traits    *store.TraitStore
		Dashboard *store.DashboardService
	}
}

// NewCore 构建核心依赖（不启动监听）
func NewCore(cfgPath string) (*Core, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	config.SetupLogger(cfg.App.LogLevel)

	db, err := repository.NewDatabase(cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}

	c := &Core{
		Cfg:      cfg,
		DB:       db,
		Hub:      eventbus.NewHub(),
		Notifier: notify.SlogNotifier{},
	}

	// Repos
	c.Repos.User = repository.NewUserRepository(db.DB)
	c.Repos.Profile = repository.NewProfileRepository(db.DB)
	c.Repos.Skill = repository.NewSkillRepository(db.DB, c.Hub)
	c.Repos.Asset = repository.NewAssetRepository(db.DB, c.Hub)
	c.Repos.Hobby = repository.NewHobbyRepository(db.DB, c.Hub)
	c.Repos.Trait = repository.NewTraitRepository(db.DB, c.Hub)
	c.Repos.AssetValue = repository.NewAssetValueRepository(db.DB)

	// 会话
	ttl := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	c.Auth = auth.NewManager(c.Repos.User, c.Repos.Profile, cfg.Auth.TokenSecret, ttl)

	// 各实体仓库状态
	c.Stores.Skills = store.NewSkillStore(c.Repos.Skill, c.Auth, c.Notifier, c.Hub)
	c.Stores.Assets = store.NewAssetStore(c.Repos.Asset, c.Repos.AssetValue, c.Auth, c.Notifier, c.Hub)
	c.Stores.Hobbies = store.NewHobbyStore(c.Repos.Hobby, c.Auth, c.Notifier, c.Hub)
	c.Stores.Traits = store.NewTraitStore(c.Repos.Trait, c.Auth, c.Notifier, c.Hub)
	c.Stores.Dashboard = store.NewDashboardService(
		c.Repos.Skill, c.Repos.Asset, c.Repos.Hobby, c.Repos.Trait, c.Auth, c.Notifier,
	)

	return c, nil
}

// StartStores 启动各仓库状态的变更监听
func (c *Core) StartStores(ctx context.Context) {
	go c.Stores.Skills.Run(ctx)
	go c.Stores.Assets.Run(ctx)
	go c.Stores.Hobbies.Run(ctx)
	go c.Stores.Traits.Run(ctx)
}

// Close 释放资源
func (c *Core) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
