// 通知サービスのエントリポイント。
// 管理者からの全体通知をSSEで配信し、再接続時にはLast-Event-ID以降の通知を再送する。
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/nao1215/planner/internal/notification"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8091"
	}

	cfg, err := notification.LoadConfig()
	if err != nil {
		log.Fatalf("通知サービスの設定読み込みに失敗: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := notification.NewServer(ctx, port, cfg)
	if err != nil {
		log.Fatalf("通知サーバーの初期化に失敗: %v", err)
	}

	log.Printf("通知サービスを起動します: :%s", port)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("通知サービスの起動に失敗: %v", err)
	}
	log.Printf("通知サービスを停止しました")
}
