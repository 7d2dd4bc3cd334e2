package todo

import (
	"encoding/json"
	"testing"
	"time"
)

// TestWeekdaySet はWeekdaySetの変換を検証する。
func TestWeekdaySet(t *testing.T) {
	t.Parallel()

	t.Run("曜日名は月曜始まりで並ぶこと", func(t *testing.T) {
		t.Parallel()

		s := NewWeekdaySet(time.Sunday, time.Friday, time.Monday)
		if got := s.String(); got != "MONDAY,FRIDAY,SUNDAY" {
			t.Errorf("String() = %q, want %q", got, "MONDAY,FRIDAY,SUNDAY")
		}
	})

	t.Run("カンマ区切りの文字列から復元できること", func(t *testing.T) {
		t.Parallel()

		s, err := ParseWeekdaySet("MONDAY, wednesday")
		if err != nil {
			t.Fatalf("ParseWeekdaySet()でエラーが発生: %v", err)
		}
		if !s.Has(time.Monday) || !s.Has(time.Wednesday) || s.Has(time.Friday) {
			t.Errorf("ParseWeekdaySet() = %v, want MONDAY,WEDNESDAY", s)
		}
	})

	t.Run("空文字列は空集合になること", func(t *testing.T) {
		t.Parallel()

		s, err := ParseWeekdaySet("")
		if err != nil {
			t.Fatalf("ParseWeekdaySet()でエラーが発生: %v", err)
		}
		if !s.IsEmpty() {
			t.Errorf("ParseWeekdaySet(\"\") = %v, want empty", s)
		}
	})

	t.Run("不正な曜日名はエラーになること", func(t *testing.T) {
		t.Parallel()

		var s WeekdaySet
		if err := json.Unmarshal([]byte(`["MONDAY","FUNDAY"]`), &s); err == nil {
			t.Error("不正な曜日名でエラーが返るべき")
		}
	})

	t.Run("JSONでは曜日名の配列になること", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(NewWeekdaySet(time.Wednesday, time.Monday))
		if err != nil {
			t.Fatalf("json.Marshal()でエラーが発生: %v", err)
		}
		if string(b) != `["MONDAY","WEDNESDAY"]` {
			t.Errorf("json = %s, want %s", b, `["MONDAY","WEDNESDAY"]`)
		}
	})
}

// TestDate はDateの変換を検証する。
func TestDate(t *testing.T) {
	t.Parallel()

	t.Run("JSONの日付文字列を読み込めること", func(t *testing.T) {
		t.Parallel()

		var req struct {
			Date Date `json:"date"`
		}
		if err := json.Unmarshal([]byte(`{"date":"2024-09-02"}`), &req); err != nil {
			t.Fatalf("json.Unmarshal()でエラーが発生: %v", err)
		}
		if !req.Date.Equal(NewDate(2024, time.September, 2)) {
			t.Errorf("Date = %s, want 2024-09-02", req.Date)
		}
	})

	t.Run("不正な形式はエラーになること", func(t *testing.T) {
		t.Parallel()

		var d Date
		if err := json.Unmarshal([]byte(`"2024/09/02"`), &d); err == nil {
			t.Error("不正な日付形式でエラーが返るべき")
		}
	})

	t.Run("未設定の日付はnullで出力されること", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(Date{})
		if err != nil {
			t.Fatalf("json.Marshal()でエラーが発生: %v", err)
		}
		if string(b) != "null" {
			t.Errorf("json = %s, want null", b)
		}
	})

	t.Run("タイムゾーンを考慮して日付を求めること", func(t *testing.T) {
		t.Parallel()

		tokyo := time.FixedZone("JST", 9*60*60)
		// UTCでは9月1日だが日本時間では9月2日
		instant := time.Date(2024, time.September, 1, 20, 0, 0, 0, time.UTC)
		if got := DateOf(instant, tokyo); got.String() != "2024-09-02" {
			t.Errorf("DateOf() = %s, want 2024-09-02", got)
		}
	})
}
