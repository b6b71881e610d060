package store

import (
	"context"

	"github.com/yuqie6/lifequest/internal/eventbus"
	"github.com/yuqie6/lifequest/internal/schema"
)

// 仓储/外部依赖的最小接口集合（ISP）

// SessionSource 只读的所有者上下文
type SessionSource interface {
	CurrentUserID() (string, bool)
}

// ProfileSource 首页聚合需要的档案访问入口
type ProfileSource interface {
	SessionSource
	ProfileExperience() int
}

// Subscriber 变更事件订阅入口，通道实现可替换
type Subscriber interface {
	Subscribe(ctx context.Context, buffer int) <-chan eventbus.Event
}

type SkillRepository interface {
	ListByUser(ctx context.Context, userID string) ([]schema.Skill, error)
	Insert(ctx context.Context, skill *schema.Skill) (*schema.Skill, error)
	Update(ctx context.Context, id string, upd schema.SkillUpdate) (*schema.Skill, error)
	Delete(ctx context.Context, id string) error
}

type AssetRepository interface {
	ListByUser(ctx context.Context, userID string) ([]schema.Asset, error)
	Insert(ctx context.Context, asset *schema.Asset) (*schema.Asset, error)
	Update(ctx context.Context, id string, upd schema.AssetUpdate) (*schema.Asset, error)
	Delete(ctx context.Context, id string) error
}

type HobbyRepository interface {
	ListByUser(ctx context.Context, userID string) ([]schema.Hobby, error)
	Insert(ctx context.Context, hobby *schema.Hobby) (*schema.Hobby, error)
	Update(ctx context.Context, id string, upd schema.HobbyUpdate) (*schema.Hobby, error)
	Delete(ctx context.Context, id string) error
}

type TraitRepository interface {
	ListByUser(ctx context.Context, userID string) ([]schema.Trait, error)
	Insert(ctx context.Context, trait *schema.Trait) (*schema.Trait, error)
	Update(ctx context.Context, id string, upd schema.TraitUpdate) (*schema.Trait, error)
	Delete(ctx context.Context, id string) error
}

// AssetValueHistory 资产总值历史，月度变化的数据来源
type AssetValueHistory interface {
	Record(ctx context.Context, userID, date string, totalValue float64) error
	LatestOnOrBefore(ctx context.Context, userID, date string) (*schema.AssetValuePoint, error)
}
