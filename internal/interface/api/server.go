package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jinford/docqa/internal/platform/config"
)

// shutdownTimeout はグレースフルシャットダウンの猶予時間
const shutdownTimeout = 10 * time.Second

// Server はHTTPサーバを表す
type Server struct {
	engine *gin.Engine
	port   int
	logger *slog.Logger
}

// NewServer はルーティングとミドルウェアを設定したサーバを作成する
func NewServer(askService AskService, cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	handler := NewHandler(askService, cfg, logger)
	engine.POST("/ask", handler.Ask)
	engine.GET("/health", handler.Health)
	engine.GET("/debug/env", handler.DebugEnv)

	return &Server{
		engine: engine,
		port:   cfg.HTTP.Port,
		logger: logger,
	}
}

// Engine はginエンジンを返す（テスト用）
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run はHTTPサーバを起動し、ctxのキャンセルでグレースフルに停止する
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server started", "port", s.port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	return <-errCh
}
