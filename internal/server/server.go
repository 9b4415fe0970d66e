package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"camerafetch/internal/config"
	"camerafetch/internal/poller"
)

// Server はステータスAPIサーバーを管理する構造体
type Server struct {
	config     *config.Config
	supervisor *poller.Supervisor
	runID      string
	startedAt  time.Time
	httpServer *http.Server
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config, supervisor *poller.Supervisor) *Server {
	s := &Server{
		config:     cfg,
		supervisor: supervisor,
		runID:      uuid.NewString(),
		startedAt:  time.Now(),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	s.registerRoutes(engine)

	s.httpServer = &http.Server{
		Addr:         cfg.ServerAddress(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

// registerRoutes はHTTPルートを設定する
func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/health", s.handleHealth)
	r.GET("/api/status", s.handleStatus)
	r.GET("/api/cameras", s.handleCameras)
	r.GET("/api/cameras/:name/latest", s.handleLatestImage)
}

// Handler はルーティング済みのHTTPハンドラを返す（テスト用）
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start はサーバーを起動し、コンテキストのキャンセルまでブロックする
func (s *Server) Start(ctx context.Context) error {
	shutdownCh := make(chan error, 1)

	go func() {
		log.Printf("ステータスAPIサーバーを起動しています: %s", s.config.ServerAddress())
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			shutdownCh <- fmt.Errorf("サーバーの起動に失敗: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-shutdownCh:
		return err
	}

	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	log.Println("ステータスAPIサーバーをシャットダウンしています...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	log.Println("ステータスAPIサーバーが正常にシャットダウンされました")
	return nil
}
