// Package middleware はプランナー各サービスのGin HTTP APIで使用する共通ミドルウェアを提供する。
//
// JWT認証トークンの検証、パスの会員IDと認証済み会員の照合、
// パニックリカバリ、CORS設定など、全サービスで共通して使用するミドルウェアを含む。
package middleware
