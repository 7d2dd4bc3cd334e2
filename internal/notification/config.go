package notification

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/nao1215/planner/pkg/middleware"
)

// Config は通知サービスの設定。環境変数から読み込む。
type Config struct {
	// DatabasePath はSQLiteデータベースファイルのパス。
	DatabasePath string `env:"DATABASE_PATH" env-default:"/data/notification.db"`
	// JWTSecret はJWTの署名検証に使うシークレット。
	JWTSecret string `env:"JWT_SECRET" env-default:"dev-secret-key"`
	// AllowedOrigins はCORSを許可するオリジン（カンマ区切り）。
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`
	// SSETimeout は購読チャネルの有効期限。
	SSETimeout time.Duration `env:"SSE_TIMEOUT" env-default:"1h"`
	// SSEQueueSize はチャネルごとの未送信イベントの上限。
	SSEQueueSize int `env:"SSE_QUEUE_SIZE" env-default:"256"`
	// Retention は通知の保持期間。
	Retention time.Duration `env:"NOTIFICATION_RETENTION" env-default:"2160h"`
	// PruneSchedule は古い通知を削除するcron式。
	PruneSchedule string `env:"NOTIFICATION_PRUNE_SCHEDULE" env-default:"@daily"`
	// ShutdownTimeout はグレースフルシャットダウンの待ち時間。
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LoadConfig は環境変数から設定を読み込む。
func LoadConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("環境変数の読み込みに失敗: %w", err)
	}
	return cfg, nil
}

// Origins はCORSを許可するオリジンの一覧を返す。
func (c Config) Origins() []string {
	return middleware.ParseOrigins(c.AllowedOrigins)
}
