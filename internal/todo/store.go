package todo

import (
	"context"
	"database/sql"
	"fmt"

	tododb "github.com/nao1215/planner/internal/todo/db"
)

// Store はタスクの永続化層。
// InTx に渡した関数内の書き込みは、関数がnilを返した場合のみまとめて確定する。
type Store interface {
	InTx(ctx context.Context, fn func(q tododb.Querier) error) error
}

// SQLStore はdatabase/sqlによるStoreの実装。
type SQLStore struct {
	// db はSQLiteデータベース接続。
	db *sql.DB
	// queries はsqlcが生成したクエリ実行オブジェクト。
	queries *tododb.Queries
}

// NewSQLStore はdatabase/sqlの接続からSQLStoreを生成する。
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, queries: tododb.New(db)}
}

// InTx はトランザクションを開始してfnを実行する。
func (s *SQLStore) InTx(ctx context.Context, fn func(q tododb.Querier) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミットに失敗: %w", err)
	}
	return nil
}
