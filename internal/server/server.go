// Package server exposes the built site over HTTP for previewing, accepts
// contact form submissions, and optionally watches the source directories
// to rebuild on change.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	contactsvc "github.com/goliatone/go-portfolio/internal/contact"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

const (
	defaultAddr          = ":8080"
	defaultHoneypotField = "_gotcha"
	shutdownGrace        = 5 * time.Second
)

var errOutputDirRequired = errors.New("server: output directory is required")

// Config controls the preview server.
type Config struct {
	// Addr is the listen address, default ":8080".
	Addr string
	// OutputDir is the build output directory the server fronts.
	OutputDir string
	// HoneypotField names the hidden form field bots fill in, default "_gotcha".
	HoneypotField string
}

// Dependencies carries the collaborators the server needs. Contact is
// optional; without it POST /contact answers 503.
type Dependencies struct {
	Contact contactsvc.Service
	Logger  interfaces.LoggerProvider
}

// Server serves the generated site plus the contact endpoint.
type Server struct {
	cfg     Config
	contact contactsvc.Service
	logger  interfaces.Logger
}

// New validates config and builds a Server.
func New(cfg Config, deps Dependencies) (*Server, error) {
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return nil, errOutputDirRequired
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = defaultAddr
	}
	if strings.TrimSpace(cfg.HoneypotField) == "" {
		cfg.HoneypotField = defaultHoneypotField
	}
	return &Server{
		cfg:     cfg,
		contact: deps.Contact,
		logger:  logging.ServerLogger(deps.Logger),
	}, nil
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /contact", s.handleContactSubmit)

	mux.Handle("GET /rss.xml", s.artifactHandler("rss.xml", "application/rss+xml"))
	mux.Handle("GET /atom.xml", s.artifactHandler("atom.xml", "application/atom+xml"))
	mux.Handle("GET /sitemap.xml", s.artifactHandler("sitemap.xml", "application/xml"))
	mux.Handle("GET /robots.txt", s.artifactHandler("robots.txt", "text/plain; charset=utf-8"))

	mux.Handle("GET /", newStaticHandler(s.cfg.OutputDir))

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", s.cfg.Addr, "dir", s.cfg.OutputDir)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("preview server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if s.contact == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error:   "contact_disabled",
			Message: "contact form is not configured",
		})
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: "could not parse form body",
		})
		return
	}

	input := contactsvc.SubmitInput{
		Name:       r.PostFormValue("name"),
		Email:      r.PostFormValue("email"),
		Subject:    r.PostFormValue("subject"),
		Message:    r.PostFormValue("message"),
		Honeypot:   r.PostFormValue(s.cfg.HoneypotField),
		RemoteAddr: r.RemoteAddr,
	}

	result, err := s.contact.Submit(r.Context(), input)
	if err != nil {
		s.logger.Warn("contact submission rejected", "error", err)
		writeError(w, err)
		return
	}
	if result.Dropped {
		s.logger.Debug("contact submission dropped", "remote_addr", r.RemoteAddr)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
