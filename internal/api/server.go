// Package api exposes the bill engine over a JSON HTTP API.
//
// Access is capability based. Creating a bill returns an edit token; sharing
// mints additional read-only or editable tokens; a viewer holding the owner
// PIN can claim an edit token. Shared bills are readable without a token,
// private bills are not.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/wutcharinth/splitbill/internal/api/dto"
	"github.com/wutcharinth/splitbill/internal/auth"
	"github.com/wutcharinth/splitbill/internal/middleware"
	"github.com/wutcharinth/splitbill/internal/rates"
	"github.com/wutcharinth/splitbill/internal/service"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string

	// PublicBaseURL is used to build share links, e.g. "https://splitbill.app".
	PublicBaseURL string

	// PinnedCurrencies are listed first by the currencies endpoint.
	PinnedCurrencies []string
}

// DefaultConfig returns sensible defaults for local development.
func DefaultConfig() Config {
	return Config{
		Port:             8080,
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		PublicBaseURL:    "http://localhost:8080",
		PinnedCurrencies: []string{"THB", "USD", "EUR", "GBP", "JPY"},
	}
}

// Server wires the bill service and its collaborators into a gin router.
type Server struct {
	config     Config
	bills      *service.BillService
	tokens     *auth.ShareTokenManager
	rates      rates.Provider
	router     *gin.Engine
	httpServer *http.Server
}

// NewServer creates the API server. The rates provider may be nil, in which
// case the rates endpoint reports unavailable.
func NewServer(cfg Config, bills *service.BillService, tokens *auth.ShareTokenManager, rateProvider rates.Provider) *Server {
	s := &Server{
		config: cfg,
		bills:  bills,
		tokens: tokens,
		rates:  rateProvider,
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address derived from the configured port.
func (s *Server) Addr() string {
	return fmt.Sprintf(":%d", s.config.Port)
}

// Start listens on the configured port and serves until the listener fails
// or Shutdown is called. The handler is wrapped in h2c so HTTP/2 works
// without TLS behind a plain proxy.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:        s.Addr(),
		Handler:     h2c.NewHandler(s.router, &http2.Server{}),
		IdleTimeout: 60 * time.Second,
	}

	slog.Info("Server starting", "address", s.Addr(), "url", fmt.Sprintf("http://localhost%s", s.Addr()))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops a started server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logging("/health", "/metrics"))
	router.Use(middleware.Metrics())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/bills", s.createBill)
		api.GET("/bills/:id", s.getBill)
		api.POST("/bills/:id/actions", s.applyActions)
		api.GET("/bills/:id/summary", s.getSummary)
		api.GET("/bills/:id/export", s.exportBill)
		api.POST("/bills/:id/share", s.shareBill)
		api.POST("/bills/:id/claim", s.claimBill)
		api.GET("/rates", s.getRate)
		api.GET("/currencies", s.getCurrencies)
	}

	return router
}

// shareURL builds the link embedded in share responses.
func (s *Server) shareURL(billID, token string) string {
	return fmt.Sprintf("%s/bill/%s?token=%s", s.config.PublicBaseURL, billID, token)
}
