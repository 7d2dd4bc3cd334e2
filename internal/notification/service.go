package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	notificationdb "github.com/nao1215/planner/internal/notification/db"
	"github.com/nao1215/planner/pkg/event"
	"github.com/nao1215/planner/pkg/middleware"
)

var (
	// ErrForbidden は管理者以外が通知を送信しようとしたことを示す。
	ErrForbidden = errors.New("通知を送信する権限がありません")
	// ErrMemberNotFound は会員が登録されていないことを示す。
	ErrMemberNotFound = errors.New("会員が見つかりません")
	// ErrInvalidMessage は通知メッセージが空であることを示す。
	ErrInvalidMessage = errors.New("通知メッセージを指定してください")
)

// timestampLayout は日時の保存形式。文字列比較で時刻順になるよう桁数を固定する。
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// markReadTimeout は非同期の既読処理1回あたりの制限時間。
const markReadTimeout = 10 * time.Second

// Delivery は会員に配信された通知。
type Delivery struct {
	// ID は配信記録のID。
	ID string `json:"id"`
	// EventID は通知のイベントID。
	EventID string `json:"eventId"`
	// Message は通知メッセージ。
	Message string `json:"message"`
	// IsRead は既読状態。
	IsRead bool `json:"isRead"`
	// CreatedAt は通知の作成日時。
	CreatedAt time.Time `json:"createdAt"`
}

// Service は通知の配信・再送・既読管理を行う。
type Service struct {
	// db はSQLiteデータベース接続。
	db *sql.DB
	// queries はsqlcが生成したクエリ実行オブジェクト。
	queries *notificationdb.Queries
	// hub はライブ購読チャネルのレジストリ。
	hub *Hub
	// now は現在時刻を返す。テストで差し替える。
	now func() time.Time

	// readMu はreadsを保護する。
	readMu sync.Mutex
	// reads は会員ごとの最新の既読処理。処理が終わると閉じる。
	reads map[string]chan struct{}
	// wg は実行中の既読処理を待つ。
	wg sync.WaitGroup
}

// NewService は新しいServiceを生成する。
func NewService(db *sql.DB, hub *Hub) *Service {
	return &Service{
		db:      db,
		queries: notificationdb.New(db),
		hub:     hub,
		now:     time.Now,
		reads:   make(map[string]chan struct{}),
	}
}

// RegisterMember は会員を登録または更新する。
func (s *Service) RegisterMember(ctx context.Context, memberID, email, role string) error {
	ts := s.timestamp()
	if err := s.queries.UpsertMember(ctx, notificationdb.UpsertMemberParams{
		ID:        memberID,
		Email:     email,
		Role:      role,
		CreatedAt: ts,
		UpdatedAt: ts,
	}); err != nil {
		return fmt.Errorf("会員の登録に失敗: %w", err)
	}
	return nil
}

// Subscribe は会員のチャネルを登録し、接続イベントを積んで返す。
// lastEventIDが指定された場合は、その会員に配信された通知のうちそれより後のものを再送してからライブ配信を始める。
// 管理者や配信後に登録された会員には配信記録が無いため、再送される通知は無い。
func (s *Service) Subscribe(ctx context.Context, memberID, lastEventID string) (*Channel, error) {
	c := s.hub.Register(memberID)

	connected, err := event.New("", event.TypeConnected, s.now(), event.ConnectedData{
		MemberID: memberID,
		Message:  fmt.Sprintf("EventStream Created. [memberId=%s]", memberID),
	})
	if err != nil {
		c.Close()
		return nil, err
	}
	c.enqueue(connected)

	if lastEventID != "" {
		rows, err := s.queries.ListNotificationsAfter(ctx, notificationdb.ListNotificationsAfterParams{
			MemberID: memberID,
			ID:       lastEventID,
		})
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("未受信の通知の取得に失敗: %w", err)
		}
		for _, row := range rows {
			ev, err := notificationEvent(row)
			if err != nil {
				c.Close()
				return nil, err
			}
			c.enqueue(ev)
		}
		if len(rows) > 0 {
			log.Printf("[Notification] %d件の通知を再送します: member=%s after=%s", len(rows), memberID, lastEventID)
		}
	}

	c.activate()
	return c, nil
}

// Broadcast は管理者からの通知を管理者以外の全会員に配信する。
// 通知と会員ごとの未読記録を保存してから、ライブ購読中のチャネルへ送信する。
func (s *Service) Broadcast(ctx context.Context, senderID, message string) (event.Event, error) {
	if strings.TrimSpace(message) == "" {
		return event.Event{}, ErrInvalidMessage
	}

	sender, err := s.queries.GetMember(ctx, senderID)
	if errors.Is(err, sql.ErrNoRows) {
		return event.Event{}, fmt.Errorf("%w: %s", ErrMemberNotFound, senderID)
	}
	if err != nil {
		return event.Event{}, fmt.Errorf("送信者の取得に失敗: %w", err)
	}
	if sender.Role != middleware.RoleAdmin {
		return event.Event{}, ErrForbidden
	}

	id, err := event.NewID()
	if err != nil {
		return event.Event{}, err
	}
	ev, err := event.New(id, event.TypeNotification, s.now(), event.NotificationData{Message: message})
	if err != nil {
		return event.Event{}, err
	}

	recipients, err := s.persist(ctx, senderID, ev, message)
	if err != nil {
		return event.Event{}, err
	}

	live := 0
	for _, memberID := range recipients {
		live += s.hub.Publish(memberID, ev)
	}
	log.Printf("[Notification] 通知を配信しました: id=%s recipients=%d live=%d", ev.ID, len(recipients), live)
	return ev, nil
}

// persist は通知と受信者ごとの未読記録を1つのトランザクションで保存し、受信者IDを返す。
func (s *Service) persist(ctx context.Context, senderID string, ev event.Event, message string) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	q := s.queries.WithTx(tx)
	createdAt := ev.CreatedAt.Format(timestampLayout)
	if err := q.CreateNotification(ctx, notificationdb.CreateNotificationParams{
		ID:        ev.ID,
		SenderID:  senderID,
		Message:   message,
		CreatedAt: createdAt,
	}); err != nil {
		return nil, fmt.Errorf("通知の保存に失敗: %w", err)
	}

	recipients, err := q.ListRecipientIDs(ctx, middleware.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("配信先の取得に失敗: %w", err)
	}
	for _, memberID := range recipients {
		if err := q.CreateDelivery(ctx, notificationdb.CreateDeliveryParams{
			ID:             uuid.NewString(),
			MemberID:       memberID,
			NotificationID: ev.ID,
			CreatedAt:      createdAt,
		}); err != nil {
			return nil, fmt.Errorf("配信記録の保存に失敗: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("トランザクションのコミットに失敗: %w", err)
	}
	return recipients, nil
}

// UnsubscribeAll は会員のすべてのチャネルを閉じ、閉じたチャネル数を返す。
func (s *Service) UnsubscribeAll(memberID string) int {
	n := s.hub.CloseAll(memberID)
	if n > 0 {
		log.Printf("[Notification] 購読を解除しました: member=%s channels=%d", memberID, n)
	}
	return n
}

// List は会員に配信された通知を新しい順に返す。
// 未読の通知は呼び出し後に非同期で既読になる。戻り値は既読化する前の状態。
func (s *Service) List(ctx context.Context, memberID string) ([]Delivery, error) {
	rows, err := s.queries.ListDeliveries(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("通知一覧の取得に失敗: %w", err)
	}

	deliveries := make([]Delivery, 0, len(rows))
	hasUnread := false
	for _, row := range rows {
		createdAt, err := time.Parse(timestampLayout, row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("通知 %s の作成日時が不正: %w", row.NotificationID, err)
		}
		deliveries = append(deliveries, Delivery{
			ID:        row.ID,
			EventID:   row.NotificationID,
			Message:   row.Message,
			IsRead:    row.IsRead != 0,
			CreatedAt: createdAt,
		})
		if row.IsRead == 0 {
			hasUnread = true
		}
	}

	if hasUnread {
		s.markReadAsync(memberID, rows[0].NotificationID)
	}
	return deliveries, nil
}

// UnreadCount は会員の未読通知数を返す。実行中の既読処理があれば完了を待つ。
func (s *Service) UnreadCount(ctx context.Context, memberID string) (int64, error) {
	s.readMu.Lock()
	inflight := s.reads[memberID]
	s.readMu.Unlock()

	if inflight != nil {
		select {
		case <-inflight:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	n, err := s.queries.CountUnread(ctx, memberID)
	if err != nil {
		return 0, fmt.Errorf("未読件数の取得に失敗: %w", err)
	}
	return n, nil
}

// Prune はbeforeより前に作成された通知と配信記録を削除し、削除した通知数を返す。
func (s *Service) Prune(ctx context.Context, before time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	q := s.queries.WithTx(tx)
	cutoff := before.UTC().Format(timestampLayout)
	if _, err := q.DeleteDeliveriesBefore(ctx, cutoff); err != nil {
		return 0, fmt.Errorf("配信記録の削除に失敗: %w", err)
	}
	n, err := q.DeleteNotificationsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("通知の削除に失敗: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("トランザクションのコミットに失敗: %w", err)
	}
	return n, nil
}

// Close はすべてのチャネルを閉じ、実行中の既読処理の完了を待つ。
func (s *Service) Close() {
	s.hub.Shutdown()
	s.wg.Wait()
}

// markReadAsync は会員の通知をupToまで既読にする処理を非同期で実行する。
// 同じ会員の処理は登録順に1つずつ実行される。
func (s *Service) markReadAsync(memberID, upTo string) {
	done := make(chan struct{})

	s.readMu.Lock()
	prev := s.reads[memberID]
	s.reads[memberID] = done
	s.readMu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.readMu.Lock()
			if s.reads[memberID] == done {
				delete(s.reads, memberID)
			}
			s.readMu.Unlock()
			close(done)
		}()

		if prev != nil {
			<-prev
		}

		ctx, cancel := context.WithTimeout(context.Background(), markReadTimeout)
		defer cancel()

		if _, err := s.queries.MarkDeliveriesRead(ctx, notificationdb.MarkDeliveriesReadParams{
			MemberID:       memberID,
			NotificationID: upTo,
		}); err != nil {
			log.Printf("[Notification] 既読処理に失敗: member=%s: %v", memberID, err)
		}
	}()
}

// timestamp は現在時刻を保存形式の文字列で返す。
func (s *Service) timestamp() string {
	return s.now().UTC().Format(timestampLayout)
}

// notificationEvent は保存された通知をイベントに変換する。
func notificationEvent(row notificationdb.Notification) (event.Event, error) {
	createdAt, err := time.Parse(timestampLayout, row.CreatedAt)
	if err != nil {
		return event.Event{}, fmt.Errorf("通知 %s の作成日時が不正: %w", row.ID, err)
	}
	return event.New(row.ID, event.TypeNotification, createdAt, event.NotificationData{Message: row.Message})
}
