package todo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	tododb "github.com/nao1215/planner/internal/todo/db"
)

// Engine は会員ごとの単発タスクと繰り返しタスクを操作する。
// 公開メソッドはそれぞれ1つのトランザクションで実行される。
type Engine struct {
	// store は永続化層。
	store Store
	// now は現在時刻を返す。テストで差し替える。
	now func() time.Time
	// loc は「今日」を判定するタイムゾーン。
	loc *time.Location
	// newID は新しい識別子を返す。
	newID func() string
}

// NewEngine は新しいEngineを生成する。locがnilの場合はtime.Localを使う。
func NewEngine(store Store, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{
		store: store,
		now:   time.Now,
		loc:   loc,
		newID: uuid.NewString,
	}
}

// Today は設定されたタイムゾーンでの今日の日付を返す。
func (e *Engine) Today() Date {
	return DateOf(e.now(), e.loc)
}

// timestampLayout は作成日時・更新日時の保存形式。文字列比較で時刻順になるよう桁数を固定する。
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// timestamp は作成日時・更新日時として保存する文字列を返す。
func (e *Engine) timestamp() string {
	return e.now().UTC().Format(timestampLayout)
}

// CreateTask はタスクを作成し、作成したオカレンスを日付順で返す。
// 繰り返しタスクの場合はルールを作成し、期間内の該当曜日すべてにオカレンスを生成する。
func (e *Engine) CreateTask(ctx context.Context, memberID string, req CreateRequest) ([]Occurrence, error) {
	if err := validateFields(req.Title, req.Category, req.Color); err != nil {
		return nil, err
	}

	if !req.IsRoutine {
		date := req.Date
		if date.IsZero() {
			date = req.StartDate
		}
		if date.IsZero() {
			date = e.Today()
		}
		occ := Occurrence{
			ID:          e.newID(),
			MemberID:    memberID,
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Color:       req.Color,
			Date:        date,
		}
		err := e.store.InTx(ctx, func(q tododb.Querier) error {
			return e.insertOccurrence(ctx, q, occ)
		})
		if err != nil {
			return nil, err
		}
		return []Occurrence{occ}, nil
	}

	if req.StartDate.IsZero() {
		return nil, &RangeError{Field: "startDate", Start: req.StartDate, End: req.EndDate, Reason: "開始日を指定してください"}
	}
	if req.EndDate.IsZero() {
		return nil, &RangeError{Field: "endDate", Start: req.StartDate, End: req.EndDate, Reason: "終了日を指定してください"}
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, &RangeError{Field: "endDate", Start: req.StartDate, End: req.EndDate, Reason: "終了日は開始日以降にしてください"}
	}

	dates, err := Expand(req.Weekdays, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	rule := RecurrenceRule{
		ID:          e.newID(),
		MemberID:    memberID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Color:       req.Color,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Weekdays:    req.Weekdays,
	}

	var created []Occurrence
	err = e.store.InTx(ctx, func(q tododb.Querier) error {
		if err := e.insertRule(ctx, q, rule); err != nil {
			return err
		}
		occs, err := e.materialize(ctx, q, rule, dates)
		if err != nil {
			return err
		}
		created = occs
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Todo] 繰り返しタスクを作成しました: member=%s rule=%s occurrences=%d", memberID, rule.ID, len(created))
	return created, nil
}

// ListTasks は指定日・分類・繰り返し有無に一致するタスクを返す。
func (e *Engine) ListTasks(ctx context.Context, memberID string, isRoutine bool, category Category, date Date) ([]TaskSummary, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: 分類は STUDY または LIFE を指定してください", ErrInvalidTask)
	}

	var summaries []TaskSummary
	err := e.store.InTx(ctx, func(q tododb.Querier) error {
		rows, err := q.ListOccurrences(ctx, tododb.ListOccurrencesParams{
			MemberID:  memberID,
			Category:  string(category),
			TodoDate:  date.String(),
			IsRoutine: isRoutine,
		})
		if err != nil {
			return fmt.Errorf("タスク一覧の取得に失敗: %w", err)
		}
		summaries, err = toSummaries(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// ListTasksByDate は指定日のタスクを分類や繰り返し有無に関係なく返す。
func (e *Engine) ListTasksByDate(ctx context.Context, memberID string, date Date) ([]TaskSummary, error) {
	var summaries []TaskSummary
	err := e.store.InTx(ctx, func(q tododb.Querier) error {
		rows, err := q.ListOccurrencesByDate(ctx, tododb.ListOccurrencesByDateParams{
			MemberID: memberID,
			TodoDate: date.String(),
		})
		if err != nil {
			return fmt.Errorf("日付別タスク一覧の取得に失敗: %w", err)
		}
		summaries, err = toSummaries(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// SearchTasks はタイトルまたは説明にキーワードを含むオカレンスを日付順で返す。
func (e *Engine) SearchTasks(ctx context.Context, memberID, keyword string) ([]Occurrence, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: 検索キーワードを指定してください", ErrInvalidTask)
	}

	var occs []Occurrence
	err := e.store.InTx(ctx, func(q tododb.Querier) error {
		rows, err := q.SearchOccurrences(ctx, tododb.SearchOccurrencesParams{
			MemberID: memberID,
			Keyword:  keyword,
		})
		if err != nil {
			return fmt.Errorf("タスクの検索に失敗: %w", err)
		}
		occs = make([]Occurrence, 0, len(rows))
		for _, row := range rows {
			occ, err := occurrenceFromRow(row)
			if err != nil {
				return err
			}
			occs = append(occs, occ)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return occs, nil
}

// GetTaskDetail はタスク詳細を返す。
func (e *Engine) GetTaskDetail(ctx context.Context, memberID, taskID string) (TaskDetail, error) {
	var detail TaskDetail
	err := e.store.InTx(ctx, func(q tododb.Querier) error {
		occ, err := getOccurrence(ctx, q, memberID, taskID)
		if err != nil {
			return err
		}
		detail, err = loadDetail(ctx, q, occ)
		return err
	})
	if err != nil {
		return TaskDetail{}, err
	}
	return detail, nil
}

// CompleteTasks は各オカレンスの完了状態を反転する。
// 保存されている状態が期待値と異なるものが1件でもあれば、バッチ全体を取り消してErrStaleCompletionStateを返す。
func (e *Engine) CompleteTasks(ctx context.Context, memberID string, checks []CompletionCheck) error {
	updatedAt := e.timestamp()
	return e.store.InTx(ctx, func(q tododb.Querier) error {
		for _, check := range checks {
			if _, err := getOccurrence(ctx, q, memberID, check.TaskID); err != nil {
				return err
			}

			n, err := q.ToggleOccurrenceCompleted(ctx, tododb.ToggleOccurrenceCompletedParams{
				UpdatedAt: updatedAt,
				ID:        check.TaskID,
				MemberID:  memberID,
				Completed: boolToInt(check.Completed),
			})
			if err != nil {
				return fmt.Errorf("完了状態の更新に失敗: %w", err)
			}
			if n == 0 {
				return fmt.Errorf("%w: %s", ErrStaleCompletionState, check.TaskID)
			}
		}
		return nil
	})
}

// EditTask はタスクを編集し、編集後の詳細を返す。
// オカレンスの日付は変更せず、繰り返しの再生成はその日付より後だけを対象とする。
func (e *Engine) EditTask(ctx context.Context, memberID, taskID string, req UpdateRequest) (TaskDetail, error) {
	if err := validateFields(req.Title, req.Category, req.Color); err != nil {
		return TaskDetail{}, err
	}

	var detail TaskDetail
	err := e.store.InTx(ctx, func(q tododb.Querier) error {
		anchor, err := getOccurrence(ctx, q, memberID, taskID)
		if err != nil {
			return err
		}

		switch {
		case !anchor.IsRoutine() && !req.IsRoutine:
			err = e.updateAnchor(ctx, q, anchor, req)
		case !anchor.IsRoutine() && req.IsRoutine:
			err = e.startSeries(ctx, q, anchor, req)
		case anchor.IsRoutine() && req.IsRoutine:
			err = e.reviseSeries(ctx, q, anchor, req)
		default:
			err = e.detachFromSeries(ctx, q, anchor, req)
		}
		if err != nil {
			return err
		}

		updated, err := getOccurrence(ctx, q, memberID, taskID)
		if err != nil {
			return err
		}
		detail, err = loadDetail(ctx, q, updated)
		return err
	})
	if err != nil {
		return TaskDetail{}, err
	}
	return detail, nil
}

// DeleteTask はタスクを削除する。
// deleteAll がtrueかつ繰り返しタスクの場合は、ルールと全オカレンスを削除する。
func (e *Engine) DeleteTask(ctx context.Context, memberID, taskID string, deleteAll bool) error {
	return e.store.InTx(ctx, func(q tododb.Querier) error {
		occ, err := getOccurrence(ctx, q, memberID, taskID)
		if err != nil {
			return err
		}

		if !occ.IsRoutine() || !deleteAll {
			if err := q.DeleteOccurrence(ctx, tododb.DeleteOccurrenceParams{ID: occ.ID, MemberID: memberID}); err != nil {
				return fmt.Errorf("タスクの削除に失敗: %w", err)
			}
			return nil
		}

		if err := q.DeleteOccurrencesByRule(ctx, tododb.DeleteOccurrencesByRuleParams{
			RuleID:   nullString(occ.RuleID),
			MemberID: memberID,
		}); err != nil {
			return fmt.Errorf("繰り返しタスクの削除に失敗: %w", err)
		}
		if err := q.DeleteRule(ctx, tododb.DeleteRuleParams{ID: occ.RuleID, MemberID: memberID}); err != nil {
			return fmt.Errorf("繰り返しルールの削除に失敗: %w", err)
		}
		log.Printf("[Todo] 繰り返しタスクを全件削除しました: member=%s rule=%s", memberID, occ.RuleID)
		return nil
	})
}

// updateAnchor はアンカーのタイトル・分類・色・説明を更新する。
func (e *Engine) updateAnchor(ctx context.Context, q tododb.Querier, anchor Occurrence, req UpdateRequest) error {
	if err := q.UpdateOccurrence(ctx, tododb.UpdateOccurrenceParams{
		Title:       req.Title,
		Description: req.Description,
		Category:    string(req.Category),
		Color:       req.Color,
		UpdatedAt:   e.timestamp(),
		ID:          anchor.ID,
		MemberID:    anchor.MemberID,
	}); err != nil {
		return fmt.Errorf("タスクの更新に失敗: %w", err)
	}
	return nil
}

// startSeries は単発タスクを、その日付を開始日とする繰り返しタスクに変換する。
func (e *Engine) startSeries(ctx context.Context, q tododb.Querier, anchor Occurrence, req UpdateRequest) error {
	if err := validateSeriesEnd(anchor.Date, req.EndDate); err != nil {
		return err
	}
	dates, err := Expand(req.Weekdays, anchor.Date.AddDays(1), req.EndDate)
	if err != nil {
		return err
	}

	rule := RecurrenceRule{
		ID:          e.newID(),
		MemberID:    anchor.MemberID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Color:       req.Color,
		StartDate:   anchor.Date,
		EndDate:     req.EndDate,
		Weekdays:    req.Weekdays,
	}
	if err := e.insertRule(ctx, q, rule); err != nil {
		return err
	}
	if err := e.updateAnchor(ctx, q, anchor, req); err != nil {
		return err
	}
	if err := e.setRule(ctx, q, anchor, rule.ID); err != nil {
		return err
	}
	_, err = e.materialize(ctx, q, rule, dates)
	return err
}

// reviseSeries は繰り返しルールを更新し、アンカーより後のオカレンスを作り直す。
// ルールの開始日とアンカー以前のオカレンスは変更しない。
func (e *Engine) reviseSeries(ctx context.Context, q tododb.Querier, anchor Occurrence, req UpdateRequest) error {
	if err := validateSeriesEnd(anchor.Date, req.EndDate); err != nil {
		return err
	}
	rule, err := getRule(ctx, q, anchor.MemberID, anchor.RuleID)
	if err != nil {
		return err
	}
	dates, err := Expand(req.Weekdays, anchor.Date.AddDays(1), req.EndDate)
	if err != nil {
		return err
	}

	if err := q.UpdateRule(ctx, tododb.UpdateRuleParams{
		Title:       req.Title,
		Description: req.Description,
		Category:    string(req.Category),
		Color:       req.Color,
		EndDate:     req.EndDate.String(),
		Weekdays:    req.Weekdays.String(),
		UpdatedAt:   e.timestamp(),
		ID:          rule.ID,
		MemberID:    rule.MemberID,
	}); err != nil {
		return fmt.Errorf("繰り返しルールの更新に失敗: %w", err)
	}
	if err := e.updateAnchor(ctx, q, anchor, req); err != nil {
		return err
	}
	if err := e.pruneAfter(ctx, q, anchor); err != nil {
		return err
	}

	rule.Title = req.Title
	rule.Description = req.Description
	rule.Category = req.Category
	rule.Color = req.Color
	rule.EndDate = req.EndDate
	rule.Weekdays = req.Weekdays
	_, err = e.materialize(ctx, q, rule, dates)
	return err
}

// detachFromSeries は繰り返しタスクのアンカーを単発タスクに変換する。
// アンカーより後のオカレンスは削除し、ルールはアンカーより前のオカレンスのために残す。
// 残るオカレンスが無い場合はルールも削除する。
func (e *Engine) detachFromSeries(ctx context.Context, q tododb.Querier, anchor Occurrence, req UpdateRequest) error {
	rule, err := getRule(ctx, q, anchor.MemberID, anchor.RuleID)
	if err != nil {
		return err
	}
	if err := e.updateAnchor(ctx, q, anchor, req); err != nil {
		return err
	}
	if err := e.pruneAfter(ctx, q, anchor); err != nil {
		return err
	}
	if err := e.setRule(ctx, q, anchor, ""); err != nil {
		return err
	}

	siblings, err := q.ListOccurrencesByRule(ctx, tododb.ListOccurrencesByRuleParams{
		RuleID:   nullString(rule.ID),
		MemberID: rule.MemberID,
	})
	if err != nil {
		return fmt.Errorf("繰り返しタスクの取得に失敗: %w", err)
	}
	if len(siblings) == 0 {
		if err := q.DeleteRule(ctx, tododb.DeleteRuleParams{ID: rule.ID, MemberID: rule.MemberID}); err != nil {
			return fmt.Errorf("繰り返しルールの削除に失敗: %w", err)
		}
		return nil
	}

	end := anchor.Date.AddDays(-1)
	if rule.EndDate.Before(end) {
		return nil
	}
	if err := q.UpdateRuleEndDate(ctx, tododb.UpdateRuleEndDateParams{
		EndDate:   end.String(),
		UpdatedAt: e.timestamp(),
		ID:        rule.ID,
		MemberID:  rule.MemberID,
	}); err != nil {
		return fmt.Errorf("繰り返しルールの終了日更新に失敗: %w", err)
	}
	return nil
}

// pruneAfter はアンカーと同じルールに属し、アンカーより後の日付のオカレンスを削除する。
func (e *Engine) pruneAfter(ctx context.Context, q tododb.Querier, anchor Occurrence) error {
	if err := q.DeleteOccurrencesByRuleAfter(ctx, tododb.DeleteOccurrencesByRuleAfterParams{
		RuleID:   nullString(anchor.RuleID),
		MemberID: anchor.MemberID,
		TodoDate: anchor.Date.String(),
	}); err != nil {
		return fmt.Errorf("以降のオカレンスの削除に失敗: %w", err)
	}
	return nil
}

// setRule はオカレンスが参照するルールを変更する。ruleIDが空なら参照を外す。
func (e *Engine) setRule(ctx context.Context, q tododb.Querier, occ Occurrence, ruleID string) error {
	if err := q.SetOccurrenceRule(ctx, tododb.SetOccurrenceRuleParams{
		RuleID:    nullString(ruleID),
		UpdatedAt: e.timestamp(),
		ID:        occ.ID,
		MemberID:  occ.MemberID,
	}); err != nil {
		return fmt.Errorf("繰り返しルールの参照更新に失敗: %w", err)
	}
	return nil
}

// insertRule はルールを保存する。
func (e *Engine) insertRule(ctx context.Context, q tododb.Querier, rule RecurrenceRule) error {
	ts := e.timestamp()
	if err := q.CreateRule(ctx, tododb.CreateRuleParams{
		ID:          rule.ID,
		MemberID:    rule.MemberID,
		Title:       rule.Title,
		Description: rule.Description,
		Category:    string(rule.Category),
		Color:       rule.Color,
		StartDate:   rule.StartDate.String(),
		EndDate:     rule.EndDate.String(),
		Weekdays:    rule.Weekdays.String(),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}); err != nil {
		return fmt.Errorf("繰り返しルールの作成に失敗: %w", err)
	}
	return nil
}

// insertOccurrence はオカレンスを未完了で保存する。
func (e *Engine) insertOccurrence(ctx context.Context, q tododb.Querier, occ Occurrence) error {
	ts := e.timestamp()
	if err := q.CreateOccurrence(ctx, tododb.CreateOccurrenceParams{
		ID:          occ.ID,
		MemberID:    occ.MemberID,
		RuleID:      nullString(occ.RuleID),
		Title:       occ.Title,
		Description: occ.Description,
		Category:    string(occ.Category),
		Color:       occ.Color,
		TodoDate:    occ.Date.String(),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}); err != nil {
		return fmt.Errorf("オカレンスの作成に失敗: %w", err)
	}
	return nil
}

// materialize はルールの内容で各日付のオカレンスを生成する。
func (e *Engine) materialize(ctx context.Context, q tododb.Querier, rule RecurrenceRule, dates []Date) ([]Occurrence, error) {
	occs := make([]Occurrence, 0, len(dates))
	for _, d := range dates {
		occ := Occurrence{
			ID:          e.newID(),
			MemberID:    rule.MemberID,
			RuleID:      rule.ID,
			Title:       rule.Title,
			Description: rule.Description,
			Category:    rule.Category,
			Color:       rule.Color,
			Date:        d,
		}
		if err := e.insertOccurrence(ctx, q, occ); err != nil {
			return nil, err
		}
		occs = append(occs, occ)
	}
	return occs, nil
}

// validateFields はタイトル・分類・色を検証する。
func validateFields(title string, category Category, color string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: タイトルを指定してください", ErrInvalidTask)
	}
	if !category.Valid() {
		return fmt.Errorf("%w: 分類は STUDY または LIFE を指定してください", ErrInvalidTask)
	}
	if strings.TrimSpace(color) == "" {
		return fmt.Errorf("%w: 色を指定してください", ErrInvalidTask)
	}
	return nil
}

// validateSeriesEnd は繰り返しの終了日がアンカーの日付以降であることを検証する。
func validateSeriesEnd(anchor, end Date) error {
	if end.IsZero() {
		return &RangeError{Field: "endDate", Start: anchor, End: end, Reason: "終了日を指定してください"}
	}
	if end.Before(anchor) {
		return &RangeError{Field: "endDate", Start: anchor, End: end, Reason: "終了日はタスクの日付以降にしてください"}
	}
	return nil
}

// getOccurrence はオカレンスを取得する。存在しない場合はErrNotFoundを返す。
func getOccurrence(ctx context.Context, q tododb.Querier, memberID, id string) (Occurrence, error) {
	row, err := q.GetOccurrence(ctx, tododb.GetOccurrenceParams{ID: id, MemberID: memberID})
	if errors.Is(err, sql.ErrNoRows) {
		return Occurrence{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Occurrence{}, fmt.Errorf("タスクの取得に失敗: %w", err)
	}
	return occurrenceFromRow(row)
}

// getRule はルールを取得する。存在しない場合はErrNotFoundを返す。
func getRule(ctx context.Context, q tododb.Querier, memberID, id string) (RecurrenceRule, error) {
	row, err := q.GetRule(ctx, tododb.GetRuleParams{ID: id, MemberID: memberID})
	if errors.Is(err, sql.ErrNoRows) {
		return RecurrenceRule{}, fmt.Errorf("%w: 繰り返しルール %s", ErrNotFound, id)
	}
	if err != nil {
		return RecurrenceRule{}, fmt.Errorf("繰り返しルールの取得に失敗: %w", err)
	}
	return ruleFromRow(row)
}

// loadDetail はオカレンスの詳細を組み立てる。
// 繰り返しタスクではタイトル・分類・色・説明と期間をルールから取る。
func loadDetail(ctx context.Context, q tododb.Querier, occ Occurrence) (TaskDetail, error) {
	detail := TaskDetail{
		TaskID:      occ.ID,
		Title:       occ.Title,
		Category:    occ.Category,
		Color:       occ.Color,
		Description: occ.Description,
		Date:        occ.Date,
		StartDate:   occ.Date,
		EndDate:     occ.Date,
		Completed:   occ.Completed,
	}
	if !occ.IsRoutine() {
		return detail, nil
	}

	rule, err := getRule(ctx, q, occ.MemberID, occ.RuleID)
	if err != nil {
		return TaskDetail{}, err
	}
	detail.IsRoutine = true
	detail.Title = rule.Title
	detail.Category = rule.Category
	detail.Color = rule.Color
	detail.Description = rule.Description
	detail.StartDate = rule.StartDate
	detail.EndDate = rule.EndDate
	detail.Weekdays = rule.Weekdays
	return detail, nil
}

// occurrenceFromRow はDB行をOccurrenceに変換する。
func occurrenceFromRow(row tododb.Occurrence) (Occurrence, error) {
	date, err := ParseDate(row.TodoDate)
	if err != nil {
		return Occurrence{}, fmt.Errorf("オカレンス %s の日付が不正: %w", row.ID, err)
	}
	return Occurrence{
		ID:          row.ID,
		MemberID:    row.MemberID,
		RuleID:      row.RuleID.String,
		Title:       row.Title,
		Description: row.Description,
		Category:    Category(row.Category),
		Color:       row.Color,
		Date:        date,
		Completed:   row.Completed != 0,
	}, nil
}

// ruleFromRow はDB行をRecurrenceRuleに変換する。
func ruleFromRow(row tododb.RecurrenceRule) (RecurrenceRule, error) {
	start, err := ParseDate(row.StartDate)
	if err != nil {
		return RecurrenceRule{}, fmt.Errorf("繰り返しルール %s の開始日が不正: %w", row.ID, err)
	}
	end, err := ParseDate(row.EndDate)
	if err != nil {
		return RecurrenceRule{}, fmt.Errorf("繰り返しルール %s の終了日が不正: %w", row.ID, err)
	}
	days, err := ParseWeekdaySet(row.Weekdays)
	if err != nil {
		return RecurrenceRule{}, fmt.Errorf("繰り返しルール %s の曜日が不正: %w", row.ID, err)
	}
	return RecurrenceRule{
		ID:          row.ID,
		MemberID:    row.MemberID,
		Title:       row.Title,
		Description: row.Description,
		Category:    Category(row.Category),
		Color:       row.Color,
		StartDate:   start,
		EndDate:     end,
		Weekdays:    days,
	}, nil
}

// toSummaries はDB行を一覧表示用に変換する。
func toSummaries(rows []tododb.Occurrence) ([]TaskSummary, error) {
	summaries := make([]TaskSummary, 0, len(rows))
	for _, row := range rows {
		occ, err := occurrenceFromRow(row)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, toSummary(occ))
	}
	return summaries, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
