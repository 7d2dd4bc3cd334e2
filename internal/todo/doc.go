// Package todo は単発タスクと繰り返しタスク（ルーティン）を管理するサービスを提供する。
//
// 繰り返しルールは曜日集合と期間から日付ごとのオカレンスに展開される。
// 編集時はアンカーとなるオカレンスより後の日付だけを再生成し、
// 過去のオカレンスと完了状態は保持する。
package todo
