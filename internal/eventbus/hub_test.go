package eventbus

import (
	"context"
	"testing"
	"time"
)

func TestHubPublishReachesSubscribers(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := h.Subscribe(ctx, 4)
	h.Publish(Event{Type: "insert", Table: TableSkills})

	select {
	case evt := <-sub:
		if evt.Table != TableSkills || evt.Type != "insert" {
			t.Fatalf("evt=%+v", evt)
		}
		if evt.Timestamp == 0 {
			t.Fatal("Publish 应补全时间戳")
		}
	case <-time.After(time.Second):
		t.Fatal("未收到事件")
	}
}

func TestHubSlowConsumerDropped(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := h.Subscribe(ctx, 1)
	h.Publish(Event{Type: "insert", Table: TableAssets})
	h.Publish(Event{Type: "update", Table: TableAssets}) // 缓冲已满，丢弃

	<-sub
	select {
	case evt := <-sub:
		t.Fatalf("缓冲满时应丢弃而非阻塞，收到 %+v", evt)
	default:
	}
}

func TestHubUnsubscribeOnContextDone(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	sub := h.Subscribe(ctx, 4)
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-sub:
			if !ok {
				return // 通道已关闭
			}
		case <-deadline:
			t.Fatal("取消后通道未关闭")
		}
	}
}

func TestHubNilSafe(t *testing.T) {
	var h *Hub
	h.Publish(Event{Type: "insert", Table: TableTraits}) // 不应 panic
}
