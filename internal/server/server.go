// Package server exposes the regex compiler over HTTP.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"regexnfa/internal/compiler"
	"regexnfa/internal/config"
	"regexnfa/internal/nfa"
)

// Server serves the regex-to-NFA API. Requests share nothing: each one runs
// its own compilation.
type Server struct {
	cfg     config.Config
	log     logrus.FieldLogger
	http    *http.Server
	compile func(string) (*nfa.NFA, error)
}

func New(cfg config.Config, log logrus.FieldLogger) *Server {
	s := &Server{
		cfg:     cfg,
		log:     log,
		compile: compiler.Compile,
	}
	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the routed handler with logging and panic recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/regex-to-nfa", s.handleRegexToNFA)
	return s.withLogging(s.withRecovery(mux))
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", s.cfg.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully within
// the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.WithField("addr", ln.Addr().String()).Info("listening")
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serving http")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return errors.Wrap(s.http.Shutdown(shutdownCtx), "shutting down")
	})
	return g.Wait()
}

type ctxKey struct{}

func requestLogger(r *http.Request) logrus.FieldLogger {
	if log, ok := r.Context().Value(ctxKey{}).(logrus.FieldLogger); ok {
		return log
	}
	return logrus.StandardLogger()
}

// statusRecorder remembers the status sent downstream. An implicit header
// from Write counts as 200.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	return r.ResponseWriter.Write(b)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := s.log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		})
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), ctxKey{}, logrus.FieldLogger(log))))
		log.WithFields(logrus.Fields{
			"status":   rec.status,
			"duration": time.Since(start),
		}).Info("request")
	})
}

// withRecovery turns a panic into a 500. If the response has already
// started it can only be logged.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				log := requestLogger(r).WithField("panic", v)
				if rec.wroteHeader {
					log.WithField("status", rec.status).Error("recovered from panic after response started")
					return
				}
				log.Error("recovered from panic")
				writeError(w, requestLogger(r), http.StatusInternalServerError, msgInternal)
			}
		}()
		next.ServeHTTP(rec, r)
	})
}
