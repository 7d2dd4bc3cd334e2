package notification

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/nao1215/planner/pkg/event"
)

var (
	// ErrChannelClosed はチャネルが閉じられたことを示す。
	ErrChannelClosed = errors.New("購読チャネルは閉じられています")
	// errQueueFull は未送信イベントが上限に達したことを示す。
	errQueueFull = errors.New("未送信イベントが上限に達しました")
)

// Hub は会員ごとのライブ購読チャネルを管理するレジストリ。
// 1人の会員が複数の端末から同時に購読できる。
type Hub struct {
	// mu はchannelsを保護する。
	mu sync.RWMutex
	// channels は会員IDから購読チャネル集合への対応。
	channels map[string]map[*Channel]struct{}
	// timeout はチャネルの有効期限。0以下なら無期限。
	timeout time.Duration
	// queueSize はチャネルごとの未送信イベントの上限。
	queueSize int
}

// NewHub は新しいHubを生成する。
func NewHub(timeout time.Duration, queueSize int) *Hub {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Hub{
		channels:  make(map[string]map[*Channel]struct{}),
		timeout:   timeout,
		queueSize: queueSize,
	}
}

// Register は会員の購読チャネルを登録する。
// チャネルは再送モードで作られ、activateされるまでライブ配信を保留する。
func (h *Hub) Register(memberID string) *Channel {
	c := &Channel{
		hub:       h,
		memberID:  memberID,
		limit:     h.queueSize,
		replaying: true,
		seen:      make(map[string]struct{}),
		notify:    make(chan struct{}, 1),
		done:      make(chan struct{}),
	}

	h.mu.Lock()
	set, ok := h.channels[memberID]
	if !ok {
		set = make(map[*Channel]struct{})
		h.channels[memberID] = set
	}
	set[c] = struct{}{}
	h.mu.Unlock()

	if h.timeout > 0 {
		c.mu.Lock()
		c.timer = time.AfterFunc(h.timeout, c.Close)
		c.mu.Unlock()
	}
	return c
}

// Publish は会員のすべてのチャネルにイベントを配信し、配信できたチャネル数を返す。
// 上限を超えたチャネルはそのチャネルだけを閉じ、他のチャネルへの配信は続ける。
func (h *Hub) Publish(memberID string, ev event.Event) int {
	targets := h.snapshot(memberID)

	delivered := 0
	for _, c := range targets {
		switch err := c.push(ev); {
		case err == nil:
			delivered++
		case errors.Is(err, errQueueFull):
			log.Printf("[Hub] 未送信イベントが上限を超えたためチャネルを閉じます: member=%s", memberID)
			c.Close()
		}
	}
	return delivered
}

// CloseAll は会員のすべてのチャネルを閉じ、閉じたチャネル数を返す。
func (h *Hub) CloseAll(memberID string) int {
	targets := h.snapshot(memberID)
	for _, c := range targets {
		c.Close()
	}
	return len(targets)
}

// Shutdown はすべての会員のチャネルを閉じる。
func (h *Hub) Shutdown() {
	h.mu.RLock()
	var targets []*Channel
	for _, set := range h.channels {
		for c := range set {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.Close()
	}
}

// Count は会員の購読チャネル数を返す。
func (h *Hub) Count(memberID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[memberID])
}

// snapshot は会員のチャネル一覧の複製を返す。
func (h *Hub) snapshot(memberID string) []*Channel {
	h.mu.RLock()
	defer h.mu.RUnlock()

	set := h.channels[memberID]
	targets := make([]*Channel, 0, len(set))
	for c := range set {
		targets = append(targets, c)
	}
	return targets
}

// remove はチャネルを登録から外す。最後のチャネルなら会員のエントリも削除する。
func (h *Hub) remove(c *Channel) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.channels[c.memberID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.channels, c.memberID)
	}
}

// Channel は1つのライブ購読接続。
type Channel struct {
	// hub は登録先のHub。
	hub *Hub
	// memberID は購読している会員のID。
	memberID string
	// limit は未送信イベントの上限。
	limit int

	// mu は以下のフィールドを保護する。
	mu sync.Mutex
	// queue は送信待ちのイベント。
	queue []event.Event
	// replaying は再送中でライブ配信を保留しているかどうか。
	replaying bool
	// pending は再送中に届いたライブ配信。
	pending []event.Event
	// seen は再送したイベントのID。
	seen map[string]struct{}

	// notify はqueueへの追加を知らせる。
	notify chan struct{}
	// done はチャネルが閉じられると閉じる。
	done chan struct{}
	// closeOnce はCloseを1回だけ実行する。
	closeOnce sync.Once
	// timer は有効期限のタイマー。muで保護する。
	timer *time.Timer
}

// MemberID は購読している会員のIDを返す。
func (c *Channel) MemberID() string { return c.memberID }

// Done はチャネルが閉じられると閉じるチャネルを返す。
func (c *Channel) Done() <-chan struct{} { return c.done }

// Close はチャネルを閉じてHubから外す。複数回呼んでもよい。
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		timer := c.timer
		c.mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		c.hub.remove(c)
		close(c.done)
	})
}

// Next は次のイベントを返す。イベントが無ければ届くまで待つ。
// 送信待ちが無い状態でチャネルが閉じられるとErrChannelClosedを、ctxが終了するとctx.Err()を返す。
func (c *Channel) Next(ctx context.Context) (event.Event, error) {
	for {
		c.mu.Lock()
		if len(c.queue) > 0 {
			ev := c.queue[0]
			c.queue[0] = event.Event{}
			c.queue = c.queue[1:]
			c.mu.Unlock()
			return ev, nil
		}
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return event.Event{}, ctx.Err()
		case <-c.done:
			c.mu.Lock()
			empty := len(c.queue) == 0
			c.mu.Unlock()
			if empty {
				return event.Event{}, ErrChannelClosed
			}
		case <-c.notify:
		}
	}
}

// enqueue は再送するイベントを追加する。ライブ配信の上限は適用しない。
func (c *Channel) enqueue(ev event.Event) {
	c.mu.Lock()
	c.queue = append(c.queue, ev)
	if c.replaying && ev.ID != "" {
		c.seen[ev.ID] = struct{}{}
	}
	c.mu.Unlock()
	c.signal()
}

// push はライブ配信のイベントを追加する。
// 閉じたチャネルにはErrChannelClosedを、上限を超える場合はerrQueueFullを返す。
func (c *Channel) push(ev event.Event) error {
	select {
	case <-c.done:
		return ErrChannelClosed
	default:
	}

	c.mu.Lock()
	if c.replaying {
		if len(c.pending) >= c.limit {
			c.mu.Unlock()
			return errQueueFull
		}
		c.pending = append(c.pending, ev)
		c.mu.Unlock()
		return nil
	}
	if len(c.queue) >= c.limit {
		c.mu.Unlock()
		return errQueueFull
	}
	c.queue = append(c.queue, ev)
	c.mu.Unlock()
	c.signal()
	return nil
}

// activate は再送を終えてライブ配信を開始する。
// 再送中に届いたイベントのうち、再送済みでないものを再送分の後ろに追加する。
func (c *Channel) activate() {
	c.mu.Lock()
	for _, ev := range c.pending {
		if _, dup := c.seen[ev.ID]; dup {
			continue
		}
		c.queue = append(c.queue, ev)
	}
	c.pending = nil
	c.seen = nil
	c.replaying = false
	c.mu.Unlock()
	c.signal()
}

// signal は待機中のNextを起こす。
func (c *Channel) signal() {
	select {
	case c.notify <- struct{}{}:
	default:
	}
}
