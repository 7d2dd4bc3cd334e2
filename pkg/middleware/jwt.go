package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ロール定数。トークン発行側（認証サービス）と値を揃えること。
const (
	// RoleUser は一般会員のロール。
	RoleUser = "ROLE_USER"
	// RoleAdmin は管理者のロール。全体通知の送信権限を持つ。
	RoleAdmin = "ROLE_ADMIN"
)

// tokenIssuer はトークンの発行者名。
const tokenIssuer = "planner-auth"

// JWTClaims はJWTトークンのクレーム（ペイロード）を表す。
// 会員ID・ロール等の情報をサービス間で伝播するために使用する。
type JWTClaims struct {
	jwt.RegisteredClaims
	// UserID は認証済み会員の一意識別子。
	UserID string `json:"user_id"`
	// Email は会員のメールアドレス。
	Email string `json:"email"`
	// Role は会員のロール（ROLE_USER / ROLE_ADMIN）。
	Role string `json:"role"`
}

// headerKeyUserID はサービス間で会員IDを伝播するためのHTTPヘッダーキー。
const headerKeyUserID = "X-User-ID"

// GenerateJWT は会員情報からJWTトークンを生成する。
// トークンの発行は会員認証を担う外部サービスの役割で、両サービスは検証だけを行う。
// この関数は発行側が守るべきクレームの形式を示し、テストやクライアントがトークンを用意するために使う。
// roleが空の場合はRoleUserとして発行する。
func GenerateJWT(secret, userID, email, role string) (string, error) {
	if role == "" {
		role = RoleUser
	}
	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("JWTトークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// JWTAuth はJWTトークンを検証するGinミドルウェアを返す。
// 検証に成功した場合、コンテキストに "user_id"、"email"、"role" を設定する。
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorizationヘッダーが必要です",
			})
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Bearer トークン形式が不正です",
			})
			return
		}

		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid || claims.UserID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "トークンが無効です",
			})
			return
		}

		role := claims.Role
		if role == "" {
			role = RoleUser
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", role)
		c.Header(headerKeyUserID, claims.UserID)
		c.Next()
	}
}

// RequireSelf はパスパラメータの会員IDが認証済み会員と一致することを検証するGinミドルウェアを返す。
// 一致しない場合は403を返す。JWTAuthミドルウェアが事前に適用されている必要がある。
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "ユーザーIDが取得できません",
			})
			return
		}
		if c.Param(param) != userID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "この会員のリソースを操作する権限がありません",
			})
			return
		}
		c.Next()
	}
}

// GetUserID はGinコンテキストから会員IDを取得する。
// JWTAuthミドルウェアが事前に適用されている必要がある。
func GetUserID(c *gin.Context) string {
	return getString(c, "user_id")
}

// GetEmail はGinコンテキストからメールアドレスを取得する。
func GetEmail(c *gin.Context) string {
	return getString(c, "email")
}

// GetRole はGinコンテキストからロールを取得する。
func GetRole(c *gin.Context) string {
	return getString(c, "role")
}

func getString(c *gin.Context, key string) string {
	v, _ := c.Get(key)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
