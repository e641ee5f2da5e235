// internal/server/handler.go
//
// Package server 提供可選的維運 HTTP 端點（/health 與 /metrics）。
// 此層不持有、也不讀寫 Bank；指標資料由 metrics.Collector 提供。
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// Server 組合 metrics handler 與 logger。
type Server struct {
	metrics http.Handler
	logger  *slog.Logger
}

// NewServer 建立維運伺服器；metrics 為 nil 時 /metrics 回傳 404。
func NewServer(metrics http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{metrics: metrics, logger: logger}
}

// health 提供健康檢查端點：GET /health。
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Start 於背景 goroutine 啟動 HTTP 伺服器並立即回傳。
func (s *Server) Start(addr string) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		s.logger.Info("Starting ops server", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Ops server failed", slog.String("error", err.Error()))
		}
	}()
	return srv
}

// Shutdown 在 timeout 內關閉 srv。
func (s *Server) Shutdown(srv *http.Server, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("Ops server shutdown failed", slog.String("error", err.Error()))
	}
}
