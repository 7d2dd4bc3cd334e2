package event

import (
	"encoding/json"
	"time"
)

// Type はイベントの種類を表す。SSEのevent:フィールドとして送信される。
type Type string

const (
	// TypeConnected は購読の確立直後に送信される接続確認イベント。
	TypeConnected Type = "connected"
	// TypeNotification は管理者による全体通知イベント。
	TypeNotification Type = "notification"
)

// Event は購読チャネルに配信される1件のイベント。
type Event struct {
	// ID はイベントの一意識別子（UUIDv7）。SSEのid:フィールドとして送信される。
	ID string `json:"id"`
	// Type はイベントの種類。
	Type Type `json:"type"`
	// Data はイベント固有のデータ（JSON形式）。
	Data json.RawMessage `json:"data"`
	// CreatedAt はイベントの生成日時。
	CreatedAt time.Time `json:"created_at"`
}

// ConnectedData はConnectedイベントのデータ。
type ConnectedData struct {
	// MemberID は購読した会員のID。
	MemberID string `json:"member_id"`
	// Message は接続確認メッセージ。
	Message string `json:"message"`
}

// NotificationData はNotificationイベントのデータ。
type NotificationData struct {
	// Message は通知メッセージ本文。
	Message string `json:"message"`
}
