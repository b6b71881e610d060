package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yuqie6/lifequest/internal/schema"
	"github.com/yuqie6/lifequest/internal/testutil"
)

func TestSkillRepositoryInsertAndListOrder(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewSkillRepository(db, nil)
	ctx := context.Background()

	now := time.Now()
	old := &schema.Skill{UserID: "u1", Name: "Go", Category: schema.SkillCategoryProgramming, CreatedAt: now.Add(-time.Hour)}
	fresh := &schema.Skill{UserID: "u1", Name: "Rust", Category: schema.SkillCategoryProgramming, CreatedAt: now}
	other := &schema.Skill{UserID: "u2", Name: "钢琴", Category: schema.SkillCategoryMusic}

	for _, s := range []*schema.Skill{old, fresh, other} {
		if _, err := repo.Insert(ctx, s); err != nil {
			t.Fatalf("Insert error: %v", err)
		}
	}

	got, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len=%d, want 2 (只含本用户)", len(got))
	}
	if got[0].Name != "Rust" || got[1].Name != "Go" {
		t.Fatalf("order=[%s %s], want 创建时间倒序", got[0].Name, got[1].Name)
	}
	if got[0].ID == "" {
		t.Fatal("Insert 应生成 ID")
	}
}

func TestSkillRepositoryPartialUpdate(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewSkillRepository(db, nil)
	ctx := context.Background()

	created, err := repo.Insert(ctx, &schema.Skill{UserID: "u1", Name: "Go", Category: schema.SkillCategoryProgramming, Level: 1, Experience: 40})
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}

	exp := 120
	level := 2
	updated, err := repo.Update(ctx, created.ID, schema.SkillUpdate{Experience: &exp, Level: &level})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Experience != 120 || updated.Level != 2 {
		t.Fatalf("got exp=%d level=%d, want 120/2", updated.Experience, updated.Level)
	}
	if updated.Name != "Go" || updated.Category != schema.SkillCategoryProgramming {
		t.Fatalf("未指定字段被改动: %+v", updated)
	}
}

func TestSkillRepositoryUpdateMissing(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewSkillRepository(db, nil)

	name := "x"
	_, err := repo.Update(context.Background(), "nonexistent", schema.SkillUpdate{Name: &name})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err=%v, want ErrRecordNotFound", err)
	}
}

func TestSkillRepositoryDelete(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewSkillRepository(db, nil)
	ctx := context.Background()

	created, err := repo.Insert(ctx, &schema.Skill{UserID: "u1", Name: "Go", Category: schema.SkillCategoryProgramming})
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got != nil {
		t.Fatalf("got=%+v, want nil", got)
	}
}
