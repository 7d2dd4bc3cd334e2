// Package notification は管理者からのお知らせを会員へリアルタイム配信する通知サービスを提供する。
//
// 会員はSSEで購読し、再接続時にLast-Event-IDを送ると切断中に配信された通知を受け取れる。
// 配信した通知は会員ごとの未読記録として保存され、一覧取得時に既読になる。
package notification
