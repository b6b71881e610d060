// Package eventbus 提供进程内的变更事件分发。
// 持久层每次写入成功后按表名发布事件，各仓库状态订阅并整表重拉，
// 通道实现可替换（轮询/推送均可），订阅方只依赖 Subscribe 语义。
package eventbus

import (
	"context"
	"sync"
	"time"
)

// 实体表名常量，发布与订阅两侧共用
const (
	TableSkills  = "skills"
	TableAssets  = "assets"
	TableHobbies = "hobbies"
	TableTraits  = "traits"
)

// Event 一次数据变更
type Event struct {
	Type      string         `json:"type"`  // insert / update / delete
	Table     string         `json:"table"` // 变更的实体表
	Timestamp int64          `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// Hub 事件中心
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

// NewHub 创建事件中心
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Publish 广播事件
func (h *Hub) Publish(evt Event) {
	if h == nil {
		return
	}
	if evt.Timestamp == 0 {
		evt.Timestamp = time.Now().UnixMilli()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs {
		select {
		case ch <- evt:
		default:
			// 慢消费者直接丢弃，避免阻塞写入链路
		}
	}
}

// Subscribe 订阅事件，ctx 结束时自动退订
func (h *Hub) Subscribe(ctx context.Context, buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}()

	return ch
}
