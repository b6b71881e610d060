// Package notify 定义面向用户的操作结果通知（toast）。
// 核心逻辑只发不收，失败的操作恰好产生一条失败通知。
package notify

import (
	"log/slog"
	"sync"
)

// Notifier 通知收集方
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// SlogNotifier 以结构化日志承接通知
type SlogNotifier struct{}

func (SlogNotifier) Success(msg string) {
	slog.Info("通知", "kind", "success", "msg", msg)
}

func (SlogNotifier) Failure(msg string) {
	slog.Warn("通知", "kind", "failure", "msg", msg)
}

// Recorder 测试用通知记录器
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Failures  []string
}

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, msg)
}

func (r *Recorder) Failure(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, msg)
}
