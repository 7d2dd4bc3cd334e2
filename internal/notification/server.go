package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/nao1215/planner/pkg/httpserver"
	"github.com/nao1215/planner/pkg/middleware"
	_ "modernc.org/sqlite"
)

// Server は通知サービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// svc は通知の配信を行うサービス。
	svc *Service
	// pruner は古い通知を定期削除する。
	pruner *Pruner
	// db はSQLiteデータベース接続。
	db *sql.DB
	// cfg はサービスの設定。
	cfg Config
}

// NewServer は新しい通知サーバーを生成する。
// SQLiteデータベースの初期化とマイグレーションを行う。
func NewServer(ctx context.Context, port string, cfg Config) (*Server, error) {
	sqlDB, err := sql.Open("sqlite", cfg.DatabasePath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	if err := initSchema(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	svc := NewService(sqlDB, NewHub(cfg.SSETimeout, cfg.SSEQueueSize))
	pruner, err := NewPruner(svc, cfg.PruneSchedule, cfg.Retention)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	s := newServer(port, cfg, sqlDB, svc)
	s.pruner = pruner
	return s, nil
}

// newServer は依存を受け取ってサーバーを組み立てる。
func newServer(port string, cfg Config, sqlDB *sql.DB, svc *Service) *Server {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	if origins := cfg.Origins(); len(origins) > 0 {
		router.Use(middleware.CORS(origins))
	}

	s := &Server{
		router: router,
		port:   port,
		svc:    svc,
		db:     sqlDB,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

// Run はHTTPサーバーと定期削除を起動し、ctxがキャンセルされるとグレースフルシャットダウンする。
// シャットダウン時は購読チャネルを先に閉じてSSEのハンドラを終了させる。
func (s *Server) Run(ctx context.Context) error {
	s.pruner.Start()
	defer func() {
		s.pruner.Stop()
		s.svc.Close()
		_ = s.db.Close()
	}()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", s.port),
		Handler: s.router,
	}
	srv.RegisterOnShutdown(s.svc.hub.Shutdown)
	return httpserver.Serve(ctx, srv, s.cfg.ShutdownTimeout)
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api/v1")
	api.Use(middleware.JWTAuth(s.cfg.JWTSecret))
	api.Use(s.registerMember())
	{
		notifications := api.Group("/notifications")
		{
			// SSE購読
			notifications.GET("/subscribe", s.handleSubscribe())
			// 通知送信（管理者のみ）
			notifications.POST("", s.handleBroadcast())
			// 通知一覧取得
			notifications.GET("", s.handleList())
			// 未読件数取得
			notifications.GET("/unread-count", s.handleUnreadCount())
			// 購読解除（サインアウト時）
			notifications.POST("/unsubscribe", s.handleUnsubscribe())
		}
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "notification"})
	})
}

// registerMember はJWTのクレームから会員を登録するミドルウェア。
func (s *Server) registerMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.svc.RegisterMember(c.Request.Context(), middleware.GetUserID(c), middleware.GetEmail(c), middleware.GetRole(c)); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "会員情報の登録に失敗しました"})
			log.Printf("会員登録エラー: %v", err)
			return
		}
		c.Next()
	}
}

// handleSubscribe はSSEで通知を配信するハンドラ。
// Last-Event-IDヘッダーがあれば、そのイベントより後の通知を先に再送する。
func (s *Server) handleSubscribe() gin.HandlerFunc {
	return func(c *gin.Context) {
		memberID := middleware.GetUserID(c)
		ctx := c.Request.Context()

		ch, err := s.svc.Subscribe(ctx, memberID, c.GetHeader("Last-Event-ID"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "購読の開始に失敗しました"})
			log.Printf("購読開始エラー: %v", err)
			return
		}
		defer ch.Close()

		c.Header("Content-Type", sse.ContentType)
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)
		c.Writer.Flush()

		for {
			ev, err := ch.Next(ctx)
			if err != nil {
				return
			}
			c.Render(-1, sse.Event{
				Id:    ev.ID,
				Event: string(ev.Type),
				Data:  string(ev.Data),
			})
			c.Writer.Flush()
		}
	}
}

// broadcastRequest は通知送信リクエストのJSON構造。
type broadcastRequest struct {
	// Message は通知メッセージ。
	Message string `json:"message" binding:"required"`
}

// handleBroadcast は管理者からの通知を配信するハンドラ。
func (s *Server) handleBroadcast() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req broadcastRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		ev, err := s.svc.Broadcast(c.Request.Context(), middleware.GetUserID(c), req.Message)
		switch {
		case err == nil:
			c.JSON(http.StatusCreated, gin.H{"id": ev.ID, "message": "通知を送信しました"})
		case errors.Is(err, ErrInvalidMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "通知の送信に失敗しました"})
			log.Printf("通知送信エラー: %v", err)
		}
	}
}

// handleList は認証済み会員の通知一覧を返すハンドラ。
func (s *Server) handleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		deliveries, err := s.svc.List(c.Request.Context(), middleware.GetUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "通知一覧の取得に失敗しました"})
			log.Printf("通知一覧取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, deliveries)
	}
}

// handleUnreadCount は認証済み会員の未読通知数を返すハンドラ。
func (s *Server) handleUnreadCount() gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := s.svc.UnreadCount(c.Request.Context(), middleware.GetUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "未読件数の取得に失敗しました"})
			log.Printf("未読件数取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"count": n})
	}
}

// handleUnsubscribe は認証済み会員のすべての購読を解除するハンドラ。
func (s *Server) handleUnsubscribe() gin.HandlerFunc {
	return func(c *gin.Context) {
		n := s.svc.UnsubscribeAll(middleware.GetUserID(c))
		c.JSON(http.StatusOK, gin.H{"closed": n, "message": "購読を解除しました"})
	}
}
