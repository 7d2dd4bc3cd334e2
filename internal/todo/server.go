package todo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/planner/pkg/httpserver"
	"github.com/nao1215/planner/pkg/middleware"
	_ "modernc.org/sqlite"
)

// Server はTodoサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// engine はタスク操作のエンジン。
	engine *Engine
	// db はSQLiteデータベース接続。
	db *sql.DB
	// cfg はサービスの設定。
	cfg Config
}

// NewServer は新しいTodoサーバーを生成する。
// SQLiteデータベースの初期化とマイグレーションを行う。
func NewServer(ctx context.Context, port string, cfg Config) (*Server, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("sqlite", cfg.DatabasePath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	if err := initSchema(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	return newServer(port, cfg, sqlDB, NewEngine(NewSQLStore(sqlDB), loc)), nil
}

// newServer は依存を受け取ってサーバーを組み立てる。
func newServer(port string, cfg Config, sqlDB *sql.DB, engine *Engine) *Server {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	if origins := cfg.Origins(); len(origins) > 0 {
		router.Use(middleware.CORS(origins))
	}

	s := &Server{
		router: router,
		port:   port,
		engine: engine,
		db:     sqlDB,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

// Run はHTTPサーバーを起動し、ctxがキャンセルされるとグレースフルシャットダウンする。
func (s *Server) Run(ctx context.Context) error {
	defer s.db.Close()
	return httpserver.Serve(ctx, &http.Server{
		Addr:    fmt.Sprintf(":%s", s.port),
		Handler: s.router,
	}, s.cfg.ShutdownTimeout)
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api/v1")
	api.Use(middleware.JWTAuth(s.cfg.JWTSecret))
	{
		todos := api.Group("/members/:member_id/todos")
		todos.Use(middleware.RequireSelf("member_id"))
		{
			// タスク作成
			todos.POST("", s.handleCreate())
			// 日付・分類・繰り返し有無でのタスク一覧
			todos.GET("", s.handleList())
			// 今日のタスク一覧
			todos.GET("/today", s.handleListToday())
			// キーワード検索
			todos.GET("/search", s.handleSearch())
			// 完了状態の一括切り替え
			todos.PUT("/complete", s.handleComplete())
			// タスク詳細取得
			todos.GET("/:todo_id", s.handleGet())
			// タスク編集
			todos.PUT("/:todo_id", s.handleUpdate())
			// タスク削除
			todos.DELETE("/:todo_id", s.handleDelete())
		}
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "todo"})
	})
}

// occurrenceResponse はオカレンスのJSONレスポンス構造。
type occurrenceResponse struct {
	// TaskID はオカレンスのID。
	TaskID string `json:"todoId"`
	// Title はタスクのタイトル。
	Title string `json:"title"`
	// Category はタスクの分類。
	Category Category `json:"category"`
	// Color は表示色のタグ。
	Color string `json:"indexColor"`
	// Description はタスクの説明。
	Description string `json:"description"`
	// Date はタスクの日付。
	Date Date `json:"date"`
	// IsRoutine は繰り返しタスクかどうか。
	IsRoutine bool `json:"isRoutine"`
	// Completed は完了状態。
	Completed bool `json:"isCompleted"`
}

// toOccurrenceResponses はオカレンスのスライスをJSONレスポンスに変換する。
func toOccurrenceResponses(occs []Occurrence) []occurrenceResponse {
	responses := make([]occurrenceResponse, 0, len(occs))
	for _, o := range occs {
		responses = append(responses, occurrenceResponse{
			TaskID:      o.ID,
			Title:       o.Title,
			Category:    o.Category,
			Color:       o.Color,
			Description: o.Description,
			Date:        o.Date,
			IsRoutine:   o.IsRoutine(),
			Completed:   o.Completed,
		})
	}
	return responses
}

// handleCreate はタスクを作成するハンドラ。
func (s *Server) handleCreate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		occs, err := s.engine.CreateTask(c.Request.Context(), c.Param("member_id"), req)
		if err != nil {
			writeError(c, "タスクの作成に失敗しました", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "タスクを作成しました",
			"todos":   toOccurrenceResponses(occs),
		})
	}
}

// handleList は日付・分類・繰り返し有無で絞り込んだタスク一覧を返すハンドラ。
// dateを省略した場合は今日のタスクを返す。
func (s *Server) handleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		isRoutine, err := parseBoolQuery(c, "isRoutine")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		date := s.engine.Today()
		if raw := c.Query("date"); raw != "" {
			date, err = ParseDate(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		summaries, err := s.engine.ListTasks(c.Request.Context(), c.Param("member_id"), isRoutine, Category(c.Query("category")), date)
		if err != nil {
			writeError(c, "タスク一覧の取得に失敗しました", err)
			return
		}

		c.JSON(http.StatusOK, summaries)
	}
}

// handleListToday は今日のタスクをすべて返すハンドラ。
func (s *Server) handleListToday() gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := s.engine.ListTasksByDate(c.Request.Context(), c.Param("member_id"), s.engine.Today())
		if err != nil {
			writeError(c, "今日のタスクの取得に失敗しました", err)
			return
		}

		c.JSON(http.StatusOK, summaries)
	}
}

// handleSearch はキーワードでタスクを検索するハンドラ。
func (s *Server) handleSearch() gin.HandlerFunc {
	return func(c *gin.Context) {
		occs, err := s.engine.SearchTasks(c.Request.Context(), c.Param("member_id"), c.Query("keyword"))
		if err != nil {
			writeError(c, "タスクの検索に失敗しました", err)
			return
		}

		c.JSON(http.StatusOK, toOccurrenceResponses(occs))
	}
}

// handleComplete は複数タスクの完了状態を切り替えるハンドラ。
func (s *Server) handleComplete() gin.HandlerFunc {
	return func(c *gin.Context) {
		var checks []CompletionCheck
		if err := c.ShouldBindJSON(&checks); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		if err := s.engine.CompleteTasks(c.Request.Context(), c.Param("member_id"), checks); err != nil {
			writeError(c, "完了状態の更新に失敗しました", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "完了状態を更新しました"})
	}
}

// handleGet はタスク詳細を返すハンドラ。
func (s *Server) handleGet() gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := s.engine.GetTaskDetail(c.Request.Context(), c.Param("member_id"), c.Param("todo_id"))
		if err != nil {
			writeError(c, "タスクの取得に失敗しました", err)
			return
		}

		c.JSON(http.StatusOK, detail)
	}
}

// handleUpdate はタスクを編集するハンドラ。
func (s *Server) handleUpdate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		detail, err := s.engine.EditTask(c.Request.Context(), c.Param("member_id"), c.Param("todo_id"), req)
		if err != nil {
			writeError(c, "タスクの編集に失敗しました", err)
			return
		}

		c.JSON(http.StatusOK, detail)
	}
}

// handleDelete はタスクを削除するハンドラ。
// isDeleteAll=true の場合は繰り返しタスクの全オカレンスとルールを削除する。
func (s *Server) handleDelete() gin.HandlerFunc {
	return func(c *gin.Context) {
		deleteAll, err := parseBoolQuery(c, "isDeleteAll")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := s.engine.DeleteTask(c.Request.Context(), c.Param("member_id"), c.Param("todo_id"), deleteAll); err != nil {
			writeError(c, "タスクの削除に失敗しました", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "タスクを削除しました"})
	}
}

// parseBoolQuery は真偽値のクエリパラメータを読む。省略時はfalse。
func parseBoolQuery(c *gin.Context, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%sは真偽値で指定してください: %q", key, raw)
	}
	return v, nil
}

// writeError はエンジンのエラーをHTTPステータスに変換して返す。
func writeError(c *gin.Context, msg string, err error) {
	var rangeErr *RangeError
	switch {
	case errors.As(err, &rangeErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": rangeErr.Error(), "field": rangeErr.Field})
	case errors.Is(err, ErrInvalidTask):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrStaleCompletionState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
		log.Printf("%s: %v", msg, err)
	}
}
