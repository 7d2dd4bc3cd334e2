package todo

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound はタスクが存在しないか、会員のものではないことを示す。
	ErrNotFound = errors.New("タスクが見つかりません")
	// ErrStaleCompletionState は完了状態が呼び出し側の認識と一致しないことを示す。
	ErrStaleCompletionState = errors.New("完了状態が最新ではありません")
	// ErrInvalidRange は期間の指定が不正であることを示す。
	ErrInvalidRange = errors.New("期間の指定が不正です")
	// ErrInvalidTask はタイトル・分類・色などの入力が不正であることを示す。
	ErrInvalidTask = errors.New("タスクの内容が不正です")
)

// RangeError は不正な期間指定と、その原因となったフィールドを表す。
type RangeError struct {
	// Field は問題のあるフィールド名（"endDate" など）。
	Field string
	// Start は期間の開始日。
	Start Date
	// End は期間の終了日。
	End Date
	// Reason は補足説明。
	Reason string
}

func (e *RangeError) Error() string {
	msg := fmt.Sprintf("%s: %s (%s 〜 %s)", ErrInvalidRange.Error(), e.Field, e.Start, e.End)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap はErrInvalidRangeを返す。
func (e *RangeError) Unwrap() error { return ErrInvalidRange }
