package todo

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/nao1215/planner/pkg/migration"
)

// migrations はスキーマのマイグレーションファイル。db/todo/schema.sql と同期すること。
//
//go:embed migrations/*.sql
var migrations embed.FS

// initSchema はSQLiteデータベースにマイグレーションを適用する。
func initSchema(ctx context.Context, db *sql.DB) error {
	if err := migration.Run(ctx, db, migrations, "migrations"); err != nil {
		return fmt.Errorf("スキーマの適用に失敗: %w", err)
	}
	return nil
}
