package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Recovery はTodoサービスと通知サービスのハンドラで起きたパニックを回復するGinミドルウェアを返す。
// スタックトレースを認証済みの会員IDとともにログへ出力し、500エラーを返す。
// SSE購読のように書き込みを始めた後は、ステータスを上書きせずストリームを打ち切る。
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[PANIC] %s %s member=%q: %v\n%s", c.Request.Method, c.Request.URL.Path, GetUserID(c), r, debug.Stack())
				if c.Writer.Written() {
					c.Abort()
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "内部サーバーエラーが発生しました",
				})
			}
		}()
		c.Next()
	}
}
