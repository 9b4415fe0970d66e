package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"camerafetch/internal/camera"
	"camerafetch/internal/config"
	"camerafetch/internal/poller"
	"camerafetch/internal/server"
)

func main() {
	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// ポーリングを構成する
	shutdown := poller.NewShutdown()
	fetcher := camera.NewHTTPFetcher(cfg.Fetch.SaveDir, cfg.Fetch.RequestTimeout)
	sup := poller.NewSupervisor(cfg.Fetch.SaveDir, cfg.Fetch.Cameras, fetcher, shutdown)

	// シグナルはここでのみ停止要求へ変換する
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("シグナルを受信しました: %v。停止を要求します", sig)
		shutdown.Request()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ステータスAPIサーバーを起動する
	srv := server.New(cfg, sup)
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.Start(ctx)
	}()

	// ポーリングを開始し、停止要求と全ループの終了まで待機する。
	// ディレクトリの準備失敗のみが致命的エラーとなる
	if err := sup.Run(ctx); err != nil {
		log.Fatalf("ポーリングの開始に失敗しました: %v", err)
	}

	// サーバーを停止する
	cancel()
	if err := <-serverErrCh; err != nil {
		log.Printf("ステータスAPIサーバーでエラーが発生しました: %v", err)
	}

	log.Println("シャットダウンが完了しました")
}
