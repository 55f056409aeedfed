// Package server exposes the washing pipelines over HTTP.
//
// Every washing endpoint accepts the same form-encoded (or multipart)
// request: the html field plus an optional cleanup-preset and per-request
// removal overrides. Handlers decode the form, resolve the policy and hand
// off to an htmlwash.Washer; no state is shared between requests apart from
// the read-only preset table.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mrjoshuak/htmlwash"
	"github.com/mrjoshuak/htmlwash/internal/config"
	"github.com/mrjoshuak/htmlwash/policy"
)

// Messages returned to clients.
const (
	msgInvalidInput  = "Invalid input"
	msgTooLarge      = "Request body too large"
	msgInternalError = "Internal server error"
)

// Server routes washing requests to the pipelines.
type Server struct {
	cfg      *config.Config
	presets  policy.Presets
	logger   *slog.Logger
	washer   htmlwash.Washer
	scrubber htmlwash.Washer
	mux      *http.ServeMux
}

// New creates a Server. presets is read-only for the life of the server.
func New(cfg *config.Config, presets policy.Presets, logger *slog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		presets: presets,
		logger:  logger,
		washer: htmlwash.New(
			htmlwash.WithMaxInputSize(cfg.MaxBodySize),
		),
		scrubber: htmlwash.New(
			htmlwash.WithMaxInputSize(cfg.MaxBodySize),
			htmlwash.WithScrubURLs(true),
		),
		mux: http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /wash", s.handleWash(htmlwash.ModeWash))
	s.mux.HandleFunc("POST /filter-markdown", s.handleWash(htmlwash.ModeMarkdownHTML))
	s.mux.HandleFunc("POST /markdownify", s.handleWash(htmlwash.ModeMarkdown))
	s.mux.HandleFunc("POST /wash-pptr", s.handleWash(htmlwash.ModeAutomation))
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /presets", s.handlePresets)

	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe listens on the configured address and serves until ctx is
// canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.mux,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) handleWash(mode htmlwash.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := s.logger.With("path", r.URL.Path, "mode", mode.String())

		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodySize)
		if err := s.parseForm(r); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				logger.Warn("request body too large", "limit", tooLarge.Limit)
				writeText(w, http.StatusRequestEntityTooLarge, msgTooLarge)
				return
			}
			logger.Warn("malformed form", "error", err)
			writeText(w, http.StatusBadRequest, msgInvalidInput)
			return
		}

		req := decodeForm(r.PostForm)
		if req.HTML == "" {
			logger.Error("missing html field")
			writeText(w, http.StatusBadRequest, msgInvalidInput)
			return
		}

		p := policy.Resolve(s.presets, req.Preset, req.Overrides)
		logger.Debug("washing",
			"preset", req.Preset,
			"bytes", len(req.HTML),
			"scrub_urls", req.ScrubURLs,
		)

		washer := s.washer
		if req.ScrubURLs {
			washer = s.scrubber
		}

		out, err := washer.Process(mode, req.HTML, p)
		if err != nil {
			if htmlwash.IsPolicyError(err) {
				logger.Info("rejected policy", "error", err)
				writeText(w, http.StatusBadRequest, err.Error())
				return
			}
			logger.Error("processing failed", "error", err)
			writeText(w, http.StatusInternalServerError, msgInternalError)
			return
		}

		w.Header().Set("Content-Type", mode.ContentType())
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, out); err != nil {
			logger.Warn("writing response", "error", err)
			return
		}

		logger.Info("washed",
			"in", len(req.HTML),
			"out", len(out),
			"duration", time.Since(start),
		)
	}
}

// parseForm fills r.PostForm from a url-encoded or multipart body.
func (s *Server) parseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(s.cfg.MaxBodySize)
	}
	return r.ParseForm()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.presets.Names()); err != nil {
		s.logger.Warn("writing presets", "error", err)
	}
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}
