// Package auth 维护当前登录会话与用户档案。
// 各实体仓库状态只读取所有者上下文，不感知登录流程。
package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/yuqie6/lifequest/internal/leveling"
	"github.com/yuqie6/lifequest/internal/schema"
)

// UserRepository 账号仓储的最小接口
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*schema.UserAccount, error)
	GetByID(ctx context.Context, id string) (*schema.UserAccount, error)
	Create(ctx context.Context, user *schema.UserAccount) (*schema.UserAccount, error)
}

// ProfileRepository 档案仓储的最小接口
type ProfileRepository interface {
	GetByUser(ctx context.Context, userID string) (*schema.Profile, error)
	Create(ctx context.Context, profile *schema.Profile) (*schema.Profile, error)
	UpdateByUser(ctx context.Context, userID string, upd schema.ProfileUpdate) (*schema.Profile, error)
}

// Session 当前登录会话
type Session struct {
	UserID string
	Email  string
	Token  string
}

// Manager 会话管理器
type Manager struct {
	mu       sync.RWMutex
	users    UserRepository
	profiles ProfileRepository
	secret   []byte
	ttl      time.Duration

	current *Session
	profile *schema.Profile
}

// NewManager 创建会话管理器
func NewManager(users UserRepository, profiles ProfileRepository, secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		users:    users,
		profiles: profiles,
		secret:   []byte(secret),
		ttl:      ttl,
	}
}

// SignUp 注册账号并隐式创建档案，成功后建立会话
func (m *Manager) SignUp(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return fmt.Errorf("邮箱和密码不能为空")
	}

	existing, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("邮箱已注册")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("密码哈希失败: %w", err)
	}

	user, err := m.users.Create(ctx, &schema.UserAccount{Email: email, PasswordHash: string(hash)})
	if err != nil {
		return err
	}

	profile, err := m.profiles.Create(ctx, &schema.Profile{UserID: user.ID, Level: 1})
	if err != nil {
		return err
	}

	return m.establish(user, profile)
}

// SignIn 校验密码并建立会话
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("账号不存在")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return fmt.Errorf("密码错误")
	}

	profile, err := m.profiles.GetByUser(ctx, user.ID)
	if err != nil {
		return err
	}

	return m.establish(user, profile)
}

// Resume 用已签发的令牌恢复会话（进程重启后）
func (m *Manager) Resume(ctx context.Context, token string) error {
	userID, err := m.ParseToken(token)
	if err != nil {
		return err
	}

	user, err := m.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("账号不存在")
	}

	profile, err := m.profiles.GetByUser(ctx, user.ID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &Session{UserID: user.ID, Email: user.Email, Token: token}
	m.profile = profile
	return nil
}

// SignOut 清除会话
func (m *Manager) SignOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	m.profile = nil
}

// CurrentUserID 返回当前所有者，无会话时 ok 为 false
func (m *Manager) CurrentUserID() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return "", false
	}
	return m.current.UserID, true
}

// CurrentSession 返回当前会话的副本，无会话时 ok 为 false
func (m *Manager) CurrentSession() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

// Token 返回当前会话令牌
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Token
}

// Profile 返回当前档案的副本
func (m *Manager) Profile() *schema.Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.profile == nil {
		return nil
	}
	p := *m.profile
	return &p
}

// ProfileExperience 返回当前档案经验值，无档案时为 0
func (m *Manager) ProfileExperience() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.profile == nil {
		return 0
	}
	return m.profile.Experience
}

// UpdateProfile 更新档案字段
func (m *Manager) UpdateProfile(ctx context.Context, upd schema.ProfileUpdate) error {
	userID, ok := m.CurrentUserID()
	if !ok {
		return fmt.Errorf("用户未登录")
	}

	profile, err := m.profiles.UpdateByUser(ctx, userID, upd)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.profile = profile
	m.mu.Unlock()
	return nil
}

// GrantExperience 为档案增加经验并按公式推导等级
func (m *Manager) GrantExperience(ctx context.Context, delta int) error {
	userID, ok := m.CurrentUserID()
	if !ok {
		return fmt.Errorf("用户未登录")
	}

	newExp := leveling.AddExperience(m.ProfileExperience(), delta)
	newLevel := leveling.LevelForExperience(newExp)

	profile, err := m.profiles.UpdateByUser(ctx, userID, schema.ProfileUpdate{
		Experience: &newExp,
		Level:      &newLevel,
	})
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.profile = profile
	m.mu.Unlock()
	return nil
}

// ParseToken 校验令牌并返回用户 ID
func (m *Manager) ParseToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非预期的签名算法: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("令牌无效: %w", err)
	}
	if !tkn.Valid {
		return "", fmt.Errorf("令牌无效")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("令牌缺少主体")
	}
	return sub, nil
}

func (m *Manager) establish(user *schema.UserAccount, profile *schema.Profile) error {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("签发令牌失败: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &Session{UserID: user.ID, Email: user.Email, Token: token}
	m.profile = profile
	return nil
}
