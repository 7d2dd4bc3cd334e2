package httpserver

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"
)

// TestServe はServe関数を検証する。
func TestServe(t *testing.T) {
	t.Parallel()

	t.Run("コンテキストのキャンセルで正常に停止すること", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

		done := make(chan error, 1)
		go func() { done <- Serve(ctx, srv, time.Second) }()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Serve()でエラーが発生: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Serve()が停止しない")
		}
	})

	t.Run("使用中のポートではエラーを返すこと", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("リッスンに失敗: %v", err)
		}
		t.Cleanup(func() { ln.Close() })

		srv := &http.Server{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}
		if err := Serve(t.Context(), srv, time.Second); err == nil {
			t.Error("使用中のポートでエラーが返るべき")
		}
	})
}
