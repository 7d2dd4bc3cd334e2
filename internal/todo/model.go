package todo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Category はタスクの分類。
type Category string

const (
	// CategoryStudy は学習タスク。
	CategoryStudy Category = "STUDY"
	// CategoryLife は生活タスク。
	CategoryLife Category = "LIFE"
)

// Valid はカテゴリが既知の値かどうかを返す。
func (c Category) Valid() bool {
	return c == CategoryStudy || c == CategoryLife
}

// Date は時刻を持たない暦日。UTCの0時で保持する。
type Date struct {
	t time.Time
}

// NewDate は年月日からDateを生成する。
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf は指定したタイムゾーンでの時刻の日付部分を返す。
func DateOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return NewDate(y, m, d)
}

// ParseDate は "2006-01-02" 形式の文字列をDateに変換する。
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("日付の形式が不正です: %q", s)
	}
	return Date{t: t}, nil
}

// String は "2006-01-02" 形式の文字列を返す。
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(time.DateOnly)
}

// Time はUTC 0時のtime.Timeを返す。
func (d Date) Time() time.Time { return d.t }

// Weekday は曜日を返す。
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// AddDays は指定日数後の日付を返す。
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Before はdがoより前の日付かどうかを返す。
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// After はdがoより後の日付かどうかを返す。
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// Equal は同じ日付かどうかを返す。
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// IsZero は日付が未設定かどうかを返す。
func (d Date) IsZero() bool { return d.t.IsZero() }

// MarshalJSON は "2006-01-02" 形式の文字列として出力する。未設定はnull。
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON は "2006-01-02" 形式の文字列またはnullを受け付ける。
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("日付は文字列で指定してください: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// WeekdaySet は曜日の集合。time.Weekdayの値をビット位置とする。
type WeekdaySet uint8

// weekdayOrder は月曜始まりの曜日順。
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// NewWeekdaySet は曜日を列挙してWeekdaySetを生成する。
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

// Has は曜日が集合に含まれるかどうかを返す。
func (s WeekdaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// IsEmpty は集合が空かどうかを返す。
func (s WeekdaySet) IsEmpty() bool { return s == 0 }

// Days は含まれる曜日を月曜始まりで返す。
func (s WeekdaySet) Days() []time.Weekday {
	days := make([]time.Weekday, 0, len(weekdayOrder))
	for _, d := range weekdayOrder {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Names は曜日名（"MONDAY" など）を月曜始まりで返す。
func (s WeekdaySet) Names() []string {
	names := make([]string, 0, len(weekdayOrder))
	for _, d := range s.Days() {
		names = append(names, strings.ToUpper(d.String()))
	}
	return names
}

// String はカンマ区切りの曜日名を返す。DBの保存形式。
func (s WeekdaySet) String() string {
	return strings.Join(s.Names(), ",")
}

// parseWeekday は "MONDAY" 形式の曜日名を変換する。大文字小文字は区別しない。
func parseWeekday(name string) (time.Weekday, error) {
	for _, d := range weekdayOrder {
		if strings.EqualFold(d.String(), strings.TrimSpace(name)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("曜日名が不正です: %q", name)
}

// ParseWeekdaySet はカンマ区切りの曜日名をWeekdaySetに変換する。空文字列は空集合。
func ParseWeekdaySet(csv string) (WeekdaySet, error) {
	var s WeekdaySet
	for name := range strings.SplitSeq(csv, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		d, err := parseWeekday(name)
		if err != nil {
			return 0, err
		}
		s |= NewWeekdaySet(d)
	}
	return s, nil
}

// MarshalJSON は曜日名の配列として出力する。
func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

// UnmarshalJSON は曜日名の配列を受け付ける。
func (s *WeekdaySet) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return fmt.Errorf("曜日は配列で指定してください: %w", err)
	}
	var set WeekdaySet
	for _, name := range names {
		d, err := parseWeekday(name)
		if err != nil {
			return err
		}
		set |= NewWeekdaySet(d)
	}
	*s = set
	return nil
}

// RecurrenceRule は繰り返しタスクのテンプレート。
// 開始日は作成時に固定され、編集で変更されない。
type RecurrenceRule struct {
	// ID はルールの一意識別子。
	ID string
	// MemberID は所有する会員のID。
	MemberID string
	// Title はタスクのタイトル。
	Title string
	// Description はタスクの説明。
	Description string
	// Category はタスクの分類。
	Category Category
	// Color は表示色のタグ。
	Color string
	// StartDate は期間の開始日（この日を含む）。
	StartDate Date
	// EndDate は期間の終了日（この日を含む）。
	EndDate Date
	// Weekdays はルールが発火する曜日の集合。
	Weekdays WeekdaySet
}

// Occurrence は日付を持つ1件のタスク実体。
type Occurrence struct {
	// ID はオカレンスの一意識別子。
	ID string
	// MemberID は所有する会員のID。
	MemberID string
	// RuleID は参照する繰り返しルールのID。空なら単発タスク。
	RuleID string
	// Title はタスクのタイトル。
	Title string
	// Description はタスクの説明。
	Description string
	// Category はタスクの分類。
	Category Category
	// Color は表示色のタグ。
	Color string
	// Date はタスクの日付。
	Date Date
	// Completed は完了状態。
	Completed bool
}

// IsRoutine は繰り返しルールに属するかどうかを返す。
func (o Occurrence) IsRoutine() bool { return o.RuleID != "" }

// CreateRequest はタスク作成リクエスト。
// 単発タスクは date（省略時は startDate）を、繰り返しタスクは startDate・endDate・repeatDays を使う。
type CreateRequest struct {
	// Title はタスクのタイトル。
	Title string `json:"title" binding:"required"`
	// Category はタスクの分類。
	Category Category `json:"category" binding:"required,oneof=STUDY LIFE"`
	// IsRoutine は繰り返しタスクとして作成するかどうか。
	IsRoutine bool `json:"isRoutine"`
	// Color は表示色のタグ。
	Color string `json:"indexColor" binding:"required"`
	// Description はタスクの説明。
	Description string `json:"description"`
	// Date は単発タスクの日付。
	Date Date `json:"date"`
	// StartDate は繰り返しの開始日。
	StartDate Date `json:"startDate"`
	// EndDate は繰り返しの終了日。
	EndDate Date `json:"endDate"`
	// Weekdays は繰り返す曜日。
	Weekdays WeekdaySet `json:"repeatDays"`
}

// UpdateRequest はタスク編集リクエスト。オカレンスの日付は編集できない。
type UpdateRequest struct {
	// Title はタスクのタイトル。
	Title string `json:"title" binding:"required"`
	// Category はタスクの分類。
	Category Category `json:"category" binding:"required,oneof=STUDY LIFE"`
	// IsRoutine は編集後に繰り返しタスクとするかどうか。
	IsRoutine bool `json:"isRoutine"`
	// Color は表示色のタグ。
	Color string `json:"indexColor" binding:"required"`
	// Description はタスクの説明。
	Description string `json:"description"`
	// EndDate は繰り返しの終了日。繰り返しタスクとする場合のみ使う。
	EndDate Date `json:"endDate"`
	// Weekdays は繰り返す曜日。繰り返しタスクとする場合のみ使う。
	Weekdays WeekdaySet `json:"repeatDays"`
}

// CompletionCheck は完了状態の切り替え要求。
// Completed には呼び出し側が認識している現在の完了状態を指定する。
type CompletionCheck struct {
	// TaskID は対象オカレンスのID。
	TaskID string `json:"todoId" binding:"required"`
	// Completed は期待する現在の完了状態。
	Completed bool `json:"isCompleted"`
}

// TaskSummary は一覧表示用のタスク情報。
type TaskSummary struct {
	// TaskID はオカレンスのID。
	TaskID string `json:"todoId"`
	// Title はタスクのタイトル。
	Title string `json:"title"`
	// Completed は完了状態。
	Completed bool `json:"isCompleted"`
}

// TaskDetail はタスク詳細。
// 繰り返しタスクではルールの現在の内容と期間を、単発タスクでは1日だけの期間を持つ。
type TaskDetail struct {
	// TaskID はオカレンスのID。
	TaskID string `json:"todoId"`
	// Title はタスクのタイトル。
	Title string `json:"title"`
	// Category はタスクの分類。
	Category Category `json:"category"`
	// IsRoutine は繰り返しタスクかどうか。
	IsRoutine bool `json:"isRoutine"`
	// Color は表示色のタグ。
	Color string `json:"indexColor"`
	// Description はタスクの説明。
	Description string `json:"description"`
	// Date はオカレンスの日付。
	Date Date `json:"date"`
	// StartDate は期間の開始日。
	StartDate Date `json:"startDate"`
	// EndDate は期間の終了日。
	EndDate Date `json:"endDate"`
	// Weekdays は繰り返す曜日。単発タスクでは空。
	Weekdays WeekdaySet `json:"repeatDays"`
	// Completed は完了状態。
	Completed bool `json:"isCompleted"`
}

// toSummary はオカレンスを一覧表示用に変換する。
func toSummary(o Occurrence) TaskSummary {
	return TaskSummary{TaskID: o.ID, Title: o.Title, Completed: o.Completed}
}
