package todo

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/nao1215/planner/pkg/middleware"
)

// Config はTodoサービスの設定。環境変数から読み込む。
type Config struct {
	// DatabasePath はSQLiteデータベースファイルのパス。
	DatabasePath string `env:"DATABASE_PATH" env-default:"/data/todo.db"`
	// JWTSecret はJWTの署名検証に使うシークレット。
	JWTSecret string `env:"JWT_SECRET" env-default:"dev-secret-key"`
	// AllowedOrigins はCORSを許可するオリジン（カンマ区切り）。
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`
	// TimeZone は「今日」を判定するタイムゾーン名。
	TimeZone string `env:"TZ_LOCATION" env-default:"Local"`
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

// Location はTimeZoneをtime.Locationに変換する。
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("タイムゾーン %q の読み込みに失敗: %w", c.TimeZone, err)
	}
	return loc, nil
}

// Origins はCORSを許可するオリジンの一覧を返す。
func (c Config) Origins() []string {
	return middleware.ParseOrigins(c.AllowedOrigins)
}
