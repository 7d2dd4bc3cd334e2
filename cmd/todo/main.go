// Todoサービスのエントリポイント。
// 会員ごとのタスクと繰り返しタスクの管理を担当する。
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/nao1215/planner/internal/todo"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}

	cfg, err := todo.LoadConfig()
	if err != nil {
		log.Fatalf("Todoサービスの設定読み込みに失敗: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := todo.NewServer(ctx, port, cfg)
	if err != nil {
		log.Fatalf("Todoサーバーの初期化に失敗: %v", err)
	}

	log.Printf("Todoサービスを起動します: :%s", port)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("Todoサービスの起動に失敗: %v", err)
	}
	log.Printf("Todoサービスを停止しました")
}
