package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/yuqie6/lifequest/internal/schema"
)

// 测试用内存仓储：行为对齐真实仓储（插入排最前、部分更新、按 ID 删除），
// 可注入失败来验证快照保持不变

type fakeSession struct {
	userID string
}

func (f fakeSession) CurrentUserID() (string, bool) {
	return f.userID, f.userID != ""
}

func (f fakeSession) ProfileExperience() int { return 0 }

type fakeProfileSource struct {
	fakeSession
	experience int
}

func (f fakeProfileSource) ProfileExperience() int { return f.experience }

type fakeSkillRepo struct {
	mu     sync.Mutex
	rows   []schema.Skill
	nextID int

	failList   bool
	failInsert bool
	failUpdate bool
	failDelete bool
}

var errFake = fmt.Errorf("storage unavailable")

func (f *fakeSkillRepo) ListByUser(_ context.Context, userID string) ([]schema.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, errFake
	}
	out := make([]schema.Skill, 0, len(f.rows))
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSkillRepo) Insert(_ context.Context, skill *schema.Skill) (*schema.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsert {
		return nil, errFake
	}
	f.nextID++
	row := *skill
	row.ID = fmt.Sprintf("skill-%d", f.nextID)
	f.rows = append([]schema.Skill{row}, f.rows...)
	return &row, nil
}

func (f *fakeSkillRepo) Update(_ context.Context, id string, upd schema.SkillUpdate) (*schema.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate {
		return nil, errFake
	}
	for i := range f.rows {
		if f.rows[i].ID != id {
			continue
		}
		r := &f.rows[i]
		if upd.Name != nil {
			r.Name = *upd.Name
		}
		if upd.Category != nil {
			r.Category = *upd.Category
		}
		if upd.Level != nil {
			r.Level = *upd.Level
		}
		if upd.Experience != nil {
			r.Experience = *upd.Experience
		}
		if upd.Description != nil {
			r.Description = *upd.Description
		}
		if upd.Icon != nil {
			r.Icon = *upd.Icon
		}
		row := *r
		return &row, nil
	}
	return nil, fmt.Errorf("skill %s not found", id)
}

func (f *fakeSkillRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errFake
	}
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

type fakeAssetRepo struct {
	mu     sync.Mutex
	rows   []schema.Asset
	nextID int

	failList   bool
	failInsert bool
}

func (f *fakeAssetRepo) ListByUser(_ context.Context, userID string) ([]schema.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, errFake
	}
	out := make([]schema.Asset, 0, len(f.rows))
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAssetRepo) Insert(_ context.Context, asset *schema.Asset) (*schema.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsert {
		return nil, errFake
	}
	f.nextID++
	row := *asset
	row.ID = fmt.Sprintf("asset-%d", f.nextID)
	if row.Currency == "" {
		row.Currency = schema.DefaultCurrency
	}
	f.rows = append([]schema.Asset{row}, f.rows...)
	return &row, nil
}

func (f *fakeAssetRepo) Update(_ context.Context, id string, upd schema.AssetUpdate) (*schema.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID != id {
			continue
		}
		r := &f.rows[i]
		if upd.Name != nil {
			r.Name = *upd.Name
		}
		if upd.Type != nil {
			r.Type = *upd.Type
		}
		if upd.Amount != nil {
			r.Amount = *upd.Amount
		}
		if upd.Currency != nil {
			r.Currency = *upd.Currency
		}
		if upd.Description != nil {
			r.Description = *upd.Description
		}
		row := *r
		return &row, nil
	}
	return nil, fmt.Errorf("asset %s not found", id)
}

func (f *fakeAssetRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

type fakeHobbyRepo struct {
	mu     sync.Mutex
	rows   []schema.Hobby
	nextID int
}

func (f *fakeHobbyRepo) ListByUser(_ context.Context, userID string) ([]schema.Hobby, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]schema.Hobby, 0, len(f.rows))
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeHobbyRepo) Insert(_ context.Context, hobby *schema.Hobby) (*schema.Hobby, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	row := *hobby
	row.ID = fmt.Sprintf("hobby-%d", f.nextID)
	f.rows = append([]schema.Hobby{row}, f.rows...)
	return &row, nil
}

func (f *fakeHobbyRepo) Update(_ context.Context, id string, upd schema.HobbyUpdate) (*schema.Hobby, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID != id {
			continue
		}
		r := &f.rows[i]
		if upd.Name != nil {
			r.Name = *upd.Name
		}
		if upd.Category != nil {
			r.Category = *upd.Category
		}
		if upd.Enthusiasm != nil {
			r.Enthusiasm = *upd.Enthusiasm
		}
		if upd.TimeSpent != nil {
			r.TimeSpent = *upd.TimeSpent
		}
		if upd.Description != nil {
			r.Description = *upd.Description
		}
		if upd.Goals != nil {
			r.Goals = *upd.Goals
		}
		row := *r
		return &row, nil
	}
	return nil, fmt.Errorf("hobby %s not found", id)
}

func (f *fakeHobbyRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

type fakeTraitRepo struct {
	mu     sync.Mutex
	rows   []schema.Trait
	nextID int
}

func (f *fakeTraitRepo) ListByUser(_ context.Context, userID string) ([]schema.Trait, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]schema.Trait, 0, len(f.rows))
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTraitRepo) Insert(_ context.Context, trait *schema.Trait) (*schema.Trait, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	row := *trait
	row.ID = fmt.Sprintf("trait-%d", f.nextID)
	f.rows = append([]schema.Trait{row}, f.rows...)
	return &row, nil
}

func (f *fakeTraitRepo) Update(_ context.Context, id string, upd schema.TraitUpdate) (*schema.Trait, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID != id {
			continue
		}
		r := &f.rows[i]
		if upd.Name != nil {
			r.Name = *upd.Name
		}
		if upd.Type != nil {
			r.Type = *upd.Type
		}
		if upd.Level != nil {
			r.Level = *upd.Level
		}
		if upd.Description != nil {
			r.Description = *upd.Description
		}
		row := *r
		return &row, nil
	}
	return nil, fmt.Errorf("trait %s not found", id)
}

func (f *fakeTraitRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

type fakeHistory struct {
	mu     sync.Mutex
	points map[string]float64 // date -> total
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{points: make(map[string]float64)}
}

func (f *fakeHistory) Record(_ context.Context, _ string, date string, totalValue float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.points[date] = totalValue
	return nil
}

func (f *fakeHistory) LatestOnOrBefore(_ context.Context, _ string, date string) (*schema.AssetValuePoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	best := ""
	for d := range f.points {
		if d <= date && d > best {
			best = d
		}
	}
	if best == "" {
		return nil, nil
	}
	return &schema.AssetValuePoint{Date: best, TotalValue: f.points[best]}, nil
}
