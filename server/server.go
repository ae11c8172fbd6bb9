// Package server hosts the HTTP surface of the resolver.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/hrygo/apptime/internal/profile"
	"github.com/hrygo/apptime/plugin/aitime"
	"github.com/hrygo/apptime/plugin/timeout"
	apiv1 "github.com/hrygo/apptime/server/router/api/v1"
)

// Server is the HTTP server for the resolver API.
type Server struct {
	Profile *profile.Profile

	echoServer *echo.Echo
	apiV1      *apiv1.APIV1Service
	listener   net.Listener
	cancel     context.CancelFunc
}

// NewServer creates a new Server. The profile must already be validated.
func NewServer(ctx context.Context, profile *profile.Profile, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(middleware.Recover())
	echoServer.Server.Handler = echoServer
	echoServer.Server.ReadTimeout = timeout.ReadTimeout
	echoServer.Server.WriteTimeout = timeout.WriteTimeout
	echoServer.Server.IdleTimeout = timeout.IdleTimeout

	ctx, cancel := context.WithCancel(ctx)
	s := &Server{
		Profile:    profile,
		echoServer: echoServer,
		cancel:     cancel,
	}

	timeService := aitime.NewService(profile.Location().String(), logger)
	s.apiV1 = apiv1.NewAPIV1Service(profile, timeService, logger)
	if err := s.apiV1.RegisterGateway(ctx, echoServer); err != nil {
		cancel()
		return nil, errors.Wrap(err, "failed to register api v1")
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echoServer
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start begins listening for HTTP requests (non-blocking).
func (s *Server) Start() error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", address)
	}
	s.listener = ln

	go func() {
		if err := s.echoServer.Server.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("http server", slog.String("error", err.Error()))
		}
	}()
	return nil
}

// Shutdown gracefully stops the server and the cache sweeper.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	return s.echoServer.Shutdown(ctx)
}
