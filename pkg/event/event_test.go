package event

import (
	"testing"
	"time"
)

// TestNewID はNewID関数を検証する。
func TestNewID(t *testing.T) {
	t.Parallel()

	t.Run("連続して採番したIDが生成順に並ぶこと", func(t *testing.T) {
		t.Parallel()

		prev := ""
		for i := range 1000 {
			id, err := NewID()
			if err != nil {
				t.Fatalf("NewID()でエラーが発生: %v", err)
			}
			if id <= prev {
				t.Fatalf("%d件目のID %q が直前のID %q より後になっていない", i, id, prev)
			}
			prev = id
		}
	})
}

// TestNew はNew関数とDecodeData関数を検証する。
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("データがJSONとして格納され復元できること", func(t *testing.T) {
		t.Parallel()

		created := time.Date(2024, 9, 2, 9, 0, 0, 0, time.FixedZone("KST", 9*60*60))
		ev, err := New("ev-1", TypeNotification, created, NotificationData{Message: "点検のお知らせ"})
		if err != nil {
			t.Fatalf("New()でエラーが発生: %v", err)
		}
		if ev.ID != "ev-1" || ev.Type != TypeNotification {
			t.Errorf("ID/Type = %q/%q, want ev-1/notification", ev.ID, ev.Type)
		}
		if ev.CreatedAt.Location() != time.UTC || !ev.CreatedAt.Equal(created) {
			t.Errorf("CreatedAt = %v, want %v in UTC", ev.CreatedAt, created)
		}

		data, err := DecodeData[NotificationData](ev)
		if err != nil {
			t.Fatalf("DecodeData()でエラーが発生: %v", err)
		}
		if data.Message != "点検のお知らせ" {
			t.Errorf("Message = %q, want %q", data.Message, "点検のお知らせ")
		}
	})

	t.Run("シリアライズできないデータはエラーを返すこと", func(t *testing.T) {
		t.Parallel()

		if _, err := New("ev-2", TypeNotification, time.Now(), make(chan int)); err == nil {
			t.Error("chan型のデータでエラーが返るべき")
		}
	})

	t.Run("不正なJSONのデコードはエラーを返すこと", func(t *testing.T) {
		t.Parallel()

		ev := Event{ID: "ev-3", Data: []byte("{invalid")}
		if _, err := DecodeData[NotificationData](ev); err == nil {
			t.Error("不正なJSONでエラーが返るべき")
		}
	})
}
