package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS はプランナーのフロントエンドのオリジンからの呼び出しを許可するGinミドルウェアを返す。
// Todo APIのPUT/DELETEと、通知のSSE購読で再接続時に送られるLast-Event-IDヘッダーを許可する。
// オリジンはCORS_ALLOWED_ORIGINSで設定し、未設定のサービスではこのミドルウェアを組み込まない。
func CORS(allowedOrigins []string) gin.HandlerFunc {
	originsSet := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originsSet[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := originsSet[origin]; ok {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Last-Event-ID")
			c.Header("Access-Control-Max-Age", "86400")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// ParseOrigins はカンマ区切りのオリジン一覧（CORS_ALLOWED_ORIGINS）をスライスに変換する。
// 空要素と前後の空白は取り除く。
func ParseOrigins(csv string) []string {
	origins := make([]string, 0)
	for o := range strings.SplitSeq(csv, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
