// Package rest exposes the QuickNotes REST API over HTTP using chi.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/quicknotes/internal/logging"
	"github.com/dmitrijs2005/quicknotes/internal/server/config"
	"github.com/dmitrijs2005/quicknotes/internal/server/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HTTPServer struct {
	address         string
	apiPrefix       string
	allowedOrigins  []string
	shutdownTimeout time.Duration
	jwtSecret       []byte
	auth            *services.AuthService
	notes           *services.NoteService
	store           Pinger
	logger          logging.Logger
}

func NewHTTPServer(c *config.Config, l logging.Logger, as *services.AuthService, ns *services.NoteService, store Pinger) *HTTPServer {
	return &HTTPServer{
		address:         c.EndpointAddrHTTP,
		apiPrefix:       normalizePrefix(c.APIPrefix),
		allowedOrigins:  c.AllowedOrigins,
		shutdownTimeout: c.ShutdownTimeout,
		jwtSecret:       []byte(c.SecretKey),
		auth:            as,
		notes:           ns,
		store:           store,
		logger:          l.With("module", "http_server"),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the configured shutdown timeout.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		errCh <- srv.Serve(listen)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func normalizePrefix(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
