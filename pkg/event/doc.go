// Package event はSSEで会員に配信するイベントの共通表現を提供する。
//
// イベントIDはUUIDv7で採番する。UUIDv7は生成時刻順に文字列比較できるため、
// 再接続時のLast-Event-IDより後のイベントを求める比較に使用できる。
package event
