// Package api - Thin HTTP layer over the zone catalog.
// Handlers parse input, call core packages and serialize the result. They
// never compute prices or geometry themselves.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"parking-cost/core/catalog"
	"parking-cost/core/tariff"
	"parking-cost/core/types"
	"parking-cost/internal/errors"
	"parking-cost/internal/logging"
)

// Options configures a Server
type Options struct {
	// Version is reported by GET /version
	Version string

	// Currency prices are displayed in
	Currency types.Currency

	// Calendar tariff windows are evaluated in. Defaults to UTC.
	Calendar tariff.Calendar

	// Now supplies the end of open-ended price queries. Defaults to time.Now.
	Now func() time.Time
}

// Server is the API server
type Server struct {
	engine   *gin.Engine
	store    *catalog.Store
	calendar tariff.Calendar
	currency types.Currency
	version  string
	now      func() time.Time
	log      *zap.Logger
}

// NewServer creates a server answering from the catalog currently in store
func NewServer(store *catalog.Store, opts Options) *Server {
	if opts.Calendar == nil {
		opts.Calendar = tariff.NewCalendar(time.UTC)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Currency == "" {
		opts.Currency = types.CurrencyEUR
	}

	engine := gin.New()
	engine.SetTrustedProxies(nil)

	s := &Server{
		engine:   engine,
		store:    store,
		calendar: opts.Calendar,
		currency: opts.Currency,
		version:  opts.Version,
		now:      opts.Now,
		log:      logging.Named("api"),
	}

	engine.Use(s.recovery(), s.requestLogger())
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/version", s.handleVersion)

	s.engine.GET("/zones", s.handleListZones)
	s.engine.GET("/zones/nearby", s.handleNearby)
	s.engine.GET("/zones/:code", s.handleGetZone)
	s.engine.GET("/zones/:code/price", s.handlePrice)

	s.engine.NoRoute(func(c *gin.Context) {
		s.writeError(c, http.StatusNotFound, string(errors.TypeNotFound), "no such endpoint")
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.Network("server stopped", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Internal("shutdown failed", err)
	}
	return nil
}

// requestLogger logs one line per request
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

// recovery turns a handler panic into a 500 with the usual error envelope
func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.log.Error("handler panicked",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered))
		s.writeError(c, http.StatusInternalServerError, string(errors.TypeInternal), "internal error")
		c.Abort()
	})
}

func (s *Server) writeJSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

func (s *Server) writeError(c *gin.Context, status int, code, message string) {
	s.writeJSON(c, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// writeDomainError maps a typed error onto an HTTP status
func (s *Server) writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.IsType(err, errors.TypeInvalidInterval):
		s.writeError(c, http.StatusBadRequest, string(errors.TypeInvalidInterval), err.Error())
	case errors.IsType(err, errors.TypeInput):
		s.writeError(c, http.StatusBadRequest, string(errors.TypeInput), err.Error())
	case errors.IsType(err, errors.TypeNotFound):
		s.writeError(c, http.StatusNotFound, string(errors.TypeNotFound), err.Error())
	default:
		s.log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		s.writeError(c, http.StatusInternalServerError, string(errors.TypeInternal), "internal error")
	}
}
