package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nao1215/planner/pkg/event"
)

// testEvent はテスト用のイベントを生成する。
func testEvent(id string) event.Event {
	return event.Event{ID: id, Type: event.TypeNotification, Data: []byte(`{"message":"` + id + `"}`)}
}

// nextWithin は制限時間内に次のイベントを受け取る。
func nextWithin(t *testing.T, c *Channel) (event.Event, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(t.Context(), 2*time.Second)
	defer cancel()
	return c.Next(ctx)
}

// TestHub はHubの登録と配信を検証する。
func TestHub(t *testing.T) {
	t.Parallel()

	t.Run("同じ会員の全チャネルに配信されること", func(t *testing.T) {
		t.Parallel()

		h := NewHub(0, 8)
		c1 := h.Register("m-1")
		c2 := h.Register("m-1")
		other := h.Register("m-2")
		for _, c := range []*Channel{c1, c2, other} {
			c.activate()
		}

		if n := h.Publish("m-1", testEvent("e1")); n != 2 {
			t.Errorf("配信数 = %d, want 2", n)
		}
		for _, c := range []*Channel{c1, c2} {
			ev, err := nextWithin(t, c)
			if err != nil || ev.ID != "e1" {
				t.Errorf("Next() = %v, %v, want e1", ev.ID, err)
			}
		}

		ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
		defer cancel()
		if _, err := other.Next(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("別会員のチャネルに配信されている: %v", err)
		}
	})

	t.Run("最後のチャネルを閉じると会員の登録が消えること", func(t *testing.T) {
		t.Parallel()

		h := NewHub(0, 8)
		c1 := h.Register("m-1")
		c2 := h.Register("m-1")

		c1.Close()
		if n := h.Count("m-1"); n != 1 {
			t.Errorf("チャネル数 = %d, want 1", n)
		}
		c2.Close()
		c2.Close()

		h.mu.RLock()
		_, ok := h.channels["m-1"]
		h.mu.RUnlock()
		if ok {
			t.Error("会員のエントリが残っている")
		}
		if n := h.Publish("m-1", testEvent("e1")); n != 0 {
			t.Errorf("閉じたチャネルへの配信数 = %d, want 0", n)
		}
	})

	t.Run("閉じたチャネルのNextはErrChannelClosedを返すこと", func(t *testing.T) {
		t.Parallel()

		h := NewHub(0, 8)
		c := h.Register("m-1")
		c.activate()
		c.Close()

		if _, err := nextWithin(t, c); !errors.Is(err, ErrChannelClosed) {
			t.Errorf("err = %v, want ErrChannelClosed", err)
		}
	})

	t.Run("有効期限が切れるとチャネルが閉じること", func(t *testing.T) {
		t.Parallel()

		h := NewHub(20*time.Millisecond, 8)
		c := h.Register("m-1")

		select {
		case <-c.Done():
		case <-time.After(2 * time.Second):
			t.Fatal("有効期限後もチャネルが閉じない")
		}
		if n := h.Count("m-1"); n != 0 {
			t.Errorf("チャネル数 = %d, want 0", n)
		}
	})

	t.Run("登録直後に有効期限が切れても競合せずに閉じること", func(t *testing.T) {
		t.Parallel()

		h := NewHub(time.Nanosecond, 4)
		for range 200 {
			c := h.Register("m-1")
			select {
			case <-c.Done():
			case <-time.After(2 * time.Second):
				t.Fatal("有効期限後もチャネルが閉じない")
			}
		}
		if n := h.Count("m-1"); n != 0 {
			t.Errorf("チャネル数 = %d, want 0", n)
		}
	})

	t.Run("有効期限と一括解除が同時に起きても競合しないこと", func(t *testing.T) {
		t.Parallel()

		h := NewHub(time.Millisecond, 4)
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				<-h.Register("m-1").Done()
			}()
			go func() {
				defer wg.Done()
				h.CloseAll("m-1")
				h.Shutdown()
			}()
		}
		wg.Wait()

		if n := h.Count("m-1"); n != 0 {
			t.Errorf("チャネル数 = %d, want 0", n)
		}
	})

	t.Run("上限を超えたチャネルだけが閉じられること", func(t *testing.T) {
		t.Parallel()

		h := NewHub(0, 2)
		slow := h.Register("m-1")
		fast := h.Register("m-1")
		slow.activate()
		fast.activate()

		for _, id := range []string{"e1", "e2"} {
			h.Publish("m-1", testEvent(id))
			if _, err := nextWithin(t, fast); err != nil {
				t.Fatalf("Next()でエラーが発生: %v", err)
			}
		}
		if n := h.Publish("m-1", testEvent("e3")); n != 1 {
			t.Errorf("配信数 = %d, want 1", n)
		}

		select {
		case <-slow.Done():
		default:
			t.Error("上限を超えたチャネルが閉じられていない")
		}
		if ev, err := nextWithin(t, fast); err != nil || ev.ID != "e3" {
			t.Errorf("Next() = %v, %v, want e3", ev.ID, err)
		}
	})

	t.Run("再送中のライブ配信は再送分の後ろに重複なく届くこと", func(t *testing.T) {
		t.Parallel()

		h := NewHub(0, 8)
		c := h.Register("m-1")
		c.enqueue(testEvent("e1"))
		h.Publish("m-1", testEvent("e2"))
		c.enqueue(testEvent("e2"))
		h.Publish("m-1", testEvent("e3"))
		c.activate()

		for _, want := range []string{"e1", "e2", "e3"} {
			ev, err := nextWithin(t, c)
			if err != nil || ev.ID != want {
				t.Fatalf("Next() = %v, %v, want %s", ev.ID, err, want)
			}
		}
	})

	t.Run("Shutdownで全チャネルが閉じること", func(t *testing.T) {
		t.Parallel()

		h := NewHub(0, 8)
		chans := []*Channel{h.Register("m-1"), h.Register("m-2"), h.Register("m-2")}
		h.Shutdown()

		for _, c := range chans {
			select {
			case <-c.Done():
			default:
				t.Error("チャネルが閉じられていない")
			}
		}
	})

	t.Run("並行した登録・解除・配信で競合しないこと", func(t *testing.T) {
		t.Parallel()

		h := NewHub(0, 1024)
		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				c := h.Register("m-1")
				c.activate()
				if i%2 == 0 {
					c.Close()
				}
			}()
			go func() {
				defer wg.Done()
				h.Publish("m-1", testEvent("e"))
			}()
		}
		wg.Wait()

		if n := h.Count("m-1"); n != 10 {
			t.Errorf("チャネル数 = %d, want 10", n)
		}
		if n := h.CloseAll("m-1"); n != 10 {
			t.Errorf("閉じたチャネル数 = %d, want 10", n)
		}
	})
}
