package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID は生成順に並ぶ新しいイベントIDを採番する。
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("イベントIDの採番に失敗: %w", err)
	}
	return id.String(), nil
}

// New は指定IDのイベントを生成する。
// dataにはイベント固有のデータ構造体を渡す。JSON形式にシリアライズされる。
func New(id string, eventType Type, createdAt time.Time, data any) (Event, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("イベントデータのシリアライズに失敗: %w", err)
	}

	return Event{
		ID:        id,
		Type:      eventType,
		Data:      jsonData,
		CreatedAt: createdAt.UTC(),
	}, nil
}

// DecodeData はイベントのDataフィールドを指定された型にデシリアライズする。
func DecodeData[T any](e Event) (*T, error) {
	var data T
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return nil, fmt.Errorf("イベントデータのデシリアライズに失敗: %w", err)
	}
	return &data, nil
}
