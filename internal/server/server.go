// Package server exposes the analysis pipeline over a small REST API:
// health, portfolio-wide recommendations, and single-symbol analysis.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"stock-news-advisor/internal/advisor"
	"stock-news-advisor/internal/interfaces"
	"stock-news-advisor/internal/logger"
	"stock-news-advisor/internal/types"
)

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	analyzer interfaces.Analyzer
	prices   interfaces.PriceProvider
	holdings []types.Holding
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(analyzer interfaces.Analyzer, prices interfaces.PriceProvider, holdings []types.Holding) *Server {
	srv := &Server{
		analyzer: analyzer,
		prices:   prices,
		holdings: holdings,
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server and shuts it down gracefully
// when ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(ctx, "Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(requestLogger)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/quote/{symbol}", s.handleQuote)
	r.Get("/api/recommendations", s.handleRecommendations)
	r.Get("/api/analyze/{symbol}", s.handleAnalyze)

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Debug(r.Context(), "HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ist := time.FixedZone("IST", 19800)
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":   "ok",
			"holdings": len(s.holdings),
			"time_ist": time.Now().In(ist).Format("2006-01-02 15:04:05"),
		},
	})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "symbol")))
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	price, err := s.prices.LastPrice(r.Context(), symbol)
	if err != nil {
		writeError(w, http.StatusBadGateway, "quote failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"symbol":     symbol,
			"last_price": price,
		},
	})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.analyzer.AnalyzePortfolio(r.Context(), s.holdings)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "portfolio analysis failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    analysis,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "symbol")))
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	result, err := s.analyzer.AnalyzeSymbol(r.Context(), symbol, s.holdingFor(symbol))
	if err != nil {
		var insufficient *advisor.InsufficientDataError
		if errors.As(err, &insufficient) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "analysis failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    result,
	})
}

// holdingFor returns the portfolio holding for a symbol, or nil when the
// symbol is not held. Unheld symbols are still analyzable; the position
// rules simply never fire.
func (s *Server) holdingFor(symbol string) *types.Holding {
	for i := range s.holdings {
		if s.holdings[i].Symbol == symbol {
			return &s.holdings[i]
		}
	}
	return nil
}
