// Package ops serves the operational HTTP endpoints: health and Prometheus
// metrics. The OpenADR transport itself is outbound-only; this server never
// speaks the protocol.
package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server wraps the ops HTTP listener.
type Server struct {
	srv *http.Server
	log *zap.Logger
}

type healthResponse struct {
	Status string `json:"status"`
	VenID  string `json:"ven_id"`
}

// Start begins serving /healthz and /metrics on the given port.
func Start(port int, venID string, log *zap.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok", VenID: venID})
	})
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	s := &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		log: log,
	}
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("ops server error", zap.Error(err))
		}
	}()
	log.Info("ops server listening", zap.String("addr", addr))
	return s
}

// Shutdown drains the listener.
func (s *Server) Shutdown(ctx context.Context) {
	if err := s.srv.Shutdown(ctx); err != nil {
		s.log.Warn("ops server shutdown error", zap.Error(err))
	}
}
