package todo

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/planner/pkg/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testSecret はテスト用のJWTシークレット。
const testSecret = "todo-test-secret"

// setupTestServer はテスト用のTodoサーバーをインメモリSQLiteで構築する。
func setupTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()

	e, sqlDB := setupTestEngine(t)
	s := newServer("0", Config{JWTSecret: testSecret, TimeZone: "UTC"}, sqlDB, e)
	return s, s.router
}

// tokenFor は会員IDのJWTを発行する。
func tokenFor(t *testing.T, memberID string) string {
	t.Helper()
	token, err := middleware.GenerateJWT(testSecret, memberID, memberID+"@example.com", middleware.RoleUser)
	if err != nil {
		t.Fatalf("JWTの発行に失敗: %v", err)
	}
	return token
}

// doRequest はテスト用のHTTPリクエストを実行し、レスポンスを返すヘルパー関数。
func doRequest(t *testing.T, router *gin.Engine, method, path, memberID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewReader(jsonBytes)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if memberID != "" {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, memberID))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// parseJSON はレスポンスボディをmapにデコードするヘルパー関数。
func parseJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("JSONのデコードに失敗: %v, body=%s", err, w.Body.String())
	}
	return result
}

// parseJSONArray はレスポンスボディをスライスにデコードするヘルパー関数。
func parseJSONArray(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var result []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("JSON配列のデコードに失敗: %v, body=%s", err, w.Body.String())
	}
	return result
}

// createRoutine はHTTP経由で9月2日〜16日の月水の繰り返しタスクを作成し、オカレンスを返す。
func createRoutine(t *testing.T, router *gin.Engine) []map[string]any {
	t.Helper()

	w := doRequest(t, router, http.MethodPost, "/api/v1/members/m-1/todos", "m-1", map[string]any{
		"title":      "Study",
		"category":   "STUDY",
		"isRoutine":  true,
		"indexColor": "BLUE",
		"startDate":  "2024-09-02",
		"endDate":    "2024-09-16",
		"repeatDays": []string{"MONDAY", "WEDNESDAY"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("ステータスコード: got %d, want %d, body=%s", w.Code, http.StatusCreated, w.Body.String())
	}

	var resp struct {
		Todos []map[string]any `json:"todos"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("JSONのデコードに失敗: %v", err)
	}
	return resp.Todos
}

// TestHealthCheck はヘルスチェックエンドポイントの正常動作を検証する。
func TestHealthCheck(t *testing.T) {
	t.Parallel()

	_, router := setupTestServer(t)
	w := doRequest(t, router, http.MethodGet, "/health", "", nil)

	if w.Code != http.StatusOK {
		t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusOK)
	}
	result := parseJSON(t, w)
	if result["service"] != "todo" {
		t.Errorf("service: got %v, want todo", result["service"])
	}
}

// TestAuthorization は認証と会員スコープの検証をテストする。
func TestAuthorization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		memberID string
		wantCode int
	}{
		{name: "トークンが無い場合は401を返す", memberID: "", wantCode: http.StatusUnauthorized},
		{name: "別会員のパスには403を返す", memberID: "m-2", wantCode: http.StatusForbidden},
		{name: "本人のパスには200を返す", memberID: "m-1", wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, router := setupTestServer(t)

			w := doRequest(t, router, http.MethodGet, "/api/v1/members/m-1/todos/today", tt.memberID, nil)
			if w.Code != tt.wantCode {
				t.Errorf("ステータスコード: got %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}

// TestHandleCreate はタスク作成ハンドラのテスト。
func TestHandleCreate(t *testing.T) {
	t.Parallel()

	t.Run("繰り返しタスクを作成できる", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		todos := createRoutine(t, router)
		if len(todos) != 5 {
			t.Fatalf("オカレンス数: got %d, want 5", len(todos))
		}
		if todos[0]["date"] != "2024-09-02" || todos[4]["date"] != "2024-09-16" {
			t.Errorf("日付: got %v〜%v", todos[0]["date"], todos[4]["date"])
		}
		if todos[0]["isRoutine"] != true {
			t.Errorf("isRoutine: got %v, want true", todos[0]["isRoutine"])
		}
	})

	t.Run("必須項目が無い場合は400を返す", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		w := doRequest(t, router, http.MethodPost, "/api/v1/members/m-1/todos", "m-1", map[string]any{
			"category":   "STUDY",
			"indexColor": "BLUE",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("不正な分類の場合は400を返す", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		w := doRequest(t, router, http.MethodPost, "/api/v1/members/m-1/todos", "m-1", map[string]any{
			"title":      "a",
			"category":   "WORK",
			"indexColor": "BLUE",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("終了日が開始日より前の場合は400とフィールド名を返す", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		w := doRequest(t, router, http.MethodPost, "/api/v1/members/m-1/todos", "m-1", map[string]any{
			"title":      "Study",
			"category":   "STUDY",
			"isRoutine":  true,
			"indexColor": "BLUE",
			"startDate":  "2024-09-16",
			"endDate":    "2024-09-02",
			"repeatDays": []string{"MONDAY"},
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("ステータスコード: got %d, want %d", w.Code, http.StatusBadRequest)
		}
		if result := parseJSON(t, w); result["field"] != "endDate" {
			t.Errorf("field: got %v, want endDate", result["field"])
		}
	})
}

// TestHandleList はタスク一覧ハンドラのテスト。
func TestHandleList(t *testing.T) {
	t.Parallel()

	t.Run("日付・分類・繰り返し有無で絞り込める", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)
		createRoutine(t, router)

		w := doRequest(t, router, http.MethodGet, "/api/v1/members/m-1/todos?isRoutine=true&category=STUDY&date=2024-09-04", "m-1", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード: got %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
		}
		result := parseJSONArray(t, w)
		if len(result) != 1 || result[0]["title"] != "Study" {
			t.Errorf("一覧: got %v", result)
		}
	})

	t.Run("日付を省略すると今日のタスクを返す", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)
		createRoutine(t, router)

		w := doRequest(t, router, http.MethodGet, "/api/v1/members/m-1/todos?isRoutine=true&category=STUDY", "m-1", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード: got %d, want %d", w.Code, http.StatusOK)
		}
		// テストの現在時刻は2024-09-09（月曜日）
		if result := parseJSONArray(t, w); len(result) != 1 {
			t.Errorf("件数: got %d, want 1", len(result))
		}
	})

	t.Run("不正な日付は400を返す", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		w := doRequest(t, router, http.MethodGet, "/api/v1/members/m-1/todos?category=STUDY&date=09-04", "m-1", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("キーワード検索ができる", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)
		createRoutine(t, router)

		w := doRequest(t, router, http.MethodGet, "/api/v1/members/m-1/todos/search?keyword=Stu", "m-1", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード: got %d, want %d", w.Code, http.StatusOK)
		}
		if result := parseJSONArray(t, w); len(result) != 5 {
			t.Errorf("件数: got %d, want 5", len(result))
		}
	})
}

// TestHandleComplete は完了状態切り替えハンドラのテスト。
func TestHandleComplete(t *testing.T) {
	t.Parallel()

	t.Run("期待値が一致すれば200を返す", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)
		todos := createRoutine(t, router)

		w := doRequest(t, router, http.MethodPut, "/api/v1/members/m-1/todos/complete", "m-1", []map[string]any{
			{"todoId": todos[0]["todoId"], "isCompleted": false},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード: got %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
		}

		w = doRequest(t, router, http.MethodGet, "/api/v1/members/m-1/todos/"+todos[0]["todoId"].(string), "m-1", nil)
		if result := parseJSON(t, w); result["isCompleted"] != true {
			t.Errorf("isCompleted: got %v, want true", result["isCompleted"])
		}
	})

	t.Run("期待値が一致しない場合は409を返す", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)
		todos := createRoutine(t, router)

		w := doRequest(t, router, http.MethodPut, "/api/v1/members/m-1/todos/complete", "m-1", []map[string]any{
			{"todoId": todos[0]["todoId"], "isCompleted": true},
		})
		if w.Code != http.StatusConflict {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusConflict)
		}
	})

	t.Run("存在しないタスクは404を返す", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		w := doRequest(t, router, http.MethodPut, "/api/v1/members/m-1/todos/complete", "m-1", []map[string]any{
			{"todoId": "missing", "isCompleted": false},
		})
		if w.Code != http.StatusNotFound {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

// TestHandleUpdateAndDelete はタスク編集・削除ハンドラのテスト。
func TestHandleUpdateAndDelete(t *testing.T) {
	t.Parallel()

	t.Run("繰り返しタスクを編集すると更新後の詳細を返す", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)
		todos := createRoutine(t, router)
		anchorID := todos[2]["todoId"].(string)

		w := doRequest(t, router, http.MethodPut, "/api/v1/members/m-1/todos/"+anchorID, "m-1", map[string]any{
			"title":      "Study+",
			"category":   "STUDY",
			"isRoutine":  true,
			"indexColor": "BLUE",
			"endDate":    "2024-09-11",
			"repeatDays": []string{"WEDNESDAY"},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード: got %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
		}
		result := parseJSON(t, w)
		if result["title"] != "Study+" || result["endDate"] != "2024-09-11" || result["startDate"] != "2024-09-02" {
			t.Errorf("詳細: got %v", result)
		}

		w = doRequest(t, router, http.MethodGet, "/api/v1/members/m-1/todos/"+todos[4]["todoId"].(string), "m-1", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("削除されたオカレンスのステータスコード: got %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("isDeleteAll=trueでシリーズ全体を削除する", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)
		todos := createRoutine(t, router)

		w := doRequest(t, router, http.MethodDelete, "/api/v1/members/m-1/todos/"+todos[1]["todoId"].(string)+"?isDeleteAll=true", "m-1", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード: got %d, want %d", w.Code, http.StatusOK)
		}

		w = doRequest(t, router, http.MethodGet, "/api/v1/members/m-1/todos/search?keyword=Study", "m-1", nil)
		if result := parseJSONArray(t, w); len(result) != 0 {
			t.Errorf("件数: got %d, want 0", len(result))
		}
	})

	t.Run("存在しないタスクの削除は404を返す", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		w := doRequest(t, router, http.MethodDelete, "/api/v1/members/m-1/todos/missing", "m-1", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}
