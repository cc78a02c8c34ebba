// Package http provides the HTTP server adapter for the application layer.
// This is a thin adapter layer that translates HTTP requests to application service calls.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rbcaldoza/docflows/internal/application/service"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	JWTSecret    string
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	handlers   *Handlers
	logger     Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(
	config ServerConfig,
	requisitionService service.RequisitionService,
	paymentService service.PaymentService,
	voucherService service.VoucherService,
	checkService service.CheckService,
	exporter VoucherExporter,
	logger Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	server := &Server{
		config: config,
		router: router,
		handlers: NewHandlers(requisitionService, paymentService,
			voucherService, checkService, exporter, logger),
		logger: logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(RequestID())
	s.router.Use(s.loggingMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString("request_id"),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	h := s.handlers

	// Health check
	s.router.GET("/health", h.HealthCheck)

	// API routes
	api := s.router.Group("/api/v1")
	api.Use(ActorAuth(s.config.JWTSecret))
	{
		requisitions := api.Group("/requisitions")
		{
			requisitions.POST("", h.CreateRequisition)
			requisitions.GET("", h.ListRequisitions)
			requisitions.GET("/:id", h.GetRequisition)
			requisitions.PUT("/:id", h.UpdateRequisition)
			requisitions.DELETE("/:id", h.DeleteRequisition)
			requisitions.POST("/:id/submit", h.SubmitRequisition)
			requisitions.POST("/:id/approve", h.ApproveRequisition)
			requisitions.POST("/:id/reject", h.RejectRequisition)
			requisitions.POST("/:id/cancel", h.CancelRequisition)
			requisitions.GET("/:id/history", h.RequisitionHistory)
		}

		payments := api.Group("/payment-requests")
		{
			payments.POST("", h.CreatePayment)
			payments.GET("", h.ListPayments)
			payments.GET("/:id", h.GetPayment)
			payments.DELETE("/:id", h.DeletePayment)
			payments.POST("/:id/submit", h.SubmitPayment)
			payments.POST("/:id/approve", h.ApprovePayment)
			payments.POST("/:id/reject", h.RejectPayment)
			payments.POST("/:id/cancel", h.CancelPayment)
			payments.POST("/:id/check-voucher", h.GenerateVoucher)
			payments.GET("/:id/history", h.PaymentHistory)
		}

		vouchers := api.Group("/check-vouchers")
		{
			vouchers.GET("", h.ListVouchers)
			vouchers.GET("/:id", h.GetVoucher)
			vouchers.POST("/:id/verify", h.VerifyVoucher)
			vouchers.POST("/:id/approve", h.ApproveVoucher)
			vouchers.POST("/:id/reject", h.RejectVoucher)
			vouchers.POST("/:id/issue-check", h.IssueCheck)
			vouchers.GET("/:id/export", h.ExportVoucher)
			vouchers.GET("/:id/history", h.VoucherHistory)
		}

		checks := api.Group("/checks")
		{
			checks.GET("", h.ListChecks)
			checks.GET("/:id", h.GetCheck)
			checks.POST("/:id/clear", h.ClearCheck)
			checks.POST("/:id/void", h.VoidCheck)
			checks.POST("/:id/cancel", h.CancelCheck)
			checks.GET("/:id/history", h.CheckHistory)
		}
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
