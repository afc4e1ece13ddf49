// Package health exposes a tiny liveness endpoint so container platforms
// can probe the bot process.
package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"payshot/core/buildinfo"
	"payshot/core/logger"
)

// Server runs the liveness HTTP listener.
type Server struct {
	srv *http.Server
}

type status struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// New builds a health server bound to listen:port.
func New(listen, port string) *Server {
	mux := http.NewServeMux()
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(status{
			Status:  "ok",
			Service: "payshot",
			Version: buildinfo.Version,
		})
	}
	mux.HandleFunc("/", handler)
	mux.HandleFunc("/health", handler)

	return &Server{
		srv: &http.Server{
			Addr:              net.JoinHostPort(listen, port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start begins serving in the background. Listener failures other than
// graceful shutdown are logged, not fatal; the bot keeps running.
func (s *Server) Start() {
	go func() {
		logger.Info(context.Background(), "health", "health.listen",
			slog.String("addr", s.srv.Addr),
		)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(context.Background(), "health", "health.failed",
				slog.String("err", err.Error()),
			)
		}
	}()
}

// Stop shuts the listener down, waiting for in-flight probes.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
