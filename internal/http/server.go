package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reconboard/internal/gateway"
	"reconboard/internal/log"
	"reconboard/internal/metrics"
	"reconboard/internal/view"
	appweb "reconboard/web"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// Config holds the server's dependencies and tunables.
type Config struct {
	Addr           string
	Engine         gateway.EngineClient
	Logger         *log.Logger
	Metrics        *metrics.Collector
	Registry       *prometheus.Registry
	UploadMaxBytes int64
}

// Server serves dashboard pages and partials over the view controllers.
type Server struct {
	http.Server
	templates *template.Template

	engine       gateway.EngineClient
	summary      *view.SummaryController
	transactions *view.TransactionsController

	logger         *log.Logger
	metrics        *metrics.Collector
	registry       *prometheus.Registry
	rateLimiter    *rateLimiter
	uploadMaxBytes int64
	shutdownOnce   sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	uploadMax := cfg.UploadMaxBytes
	if uploadMax <= 0 {
		uploadMax = 10 << 20
	}

	s := &Server{
		Server: http.Server{
			Addr:         cfg.Addr,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		engine:         cfg.Engine,
		summary:        view.NewSummaryController(cfg.Engine, logger),
		transactions:   view.NewTransactionsController(cfg.Engine, logger),
		logger:         logger,
		metrics:        cfg.Metrics,
		registry:       cfg.Registry,
		rateLimiter:    newRateLimiter(),
		uploadMaxBytes: uploadMax,
	}

	t, err := template.New("").Funcs(template.FuncMap{
		"amount":      formatAmount,
		"percent":     formatPercent,
		"statusLabel": statusLabel,
		"statusClass": statusClass,
		"isReady":     func(st view.State) bool { return st == view.StateReady },
		"isError":     func(st view.State) bool { return st == view.StateError },
		"isNotFound":  func(st view.State) bool { return st == view.StateNotFound },
		"isSuccess":   func(k view.NoticeKind) bool { return k == view.NoticeSuccess },
	}).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	s.templates = t

	r := mux.NewRouter()
	r.Use(s.withObservability)

	r.HandleFunc("/", s.handleWelcome).Methods(http.MethodGet)
	r.HandleFunc("/summary", s.handleSummaryPage).Methods(http.MethodGet)
	r.HandleFunc("/transactions", s.handleTransactionsPage).Methods(http.MethodGet)
	r.HandleFunc("/transactions/{id}", s.handleTransactionDetail).Methods(http.MethodGet)

	// UI partials
	r.HandleFunc("/ui/summary", s.handleSummaryPartial).Methods(http.MethodGet)
	r.HandleFunc("/ui/transactions", s.handleTransactionsPartial).Methods(http.MethodGet)

	r.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)

	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.PathPrefix("/static/").Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		logger.Warn("failed to mount embedded static FS", log.FieldError, err)
	}

	s.Handler = r
	return s, nil
}

// withObservability adds security headers, request IDs, rate limiting on
// writes, access logging, and per-route metrics.
func (s *Server) withObservability(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		s.logger.DebugContext(ctx, "request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP,
			log.FieldUserAgent, r.Header.Get("User-Agent"))

		// Uploads are the only write; rate limit them per client.
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "rate limit exceeded",
				log.FieldClientIP, clientIP, log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		securityHeaders(w)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		if s.metrics != nil {
			s.metrics.RecordHTTPRequest(routePath(r), strconv.Itoa(rw.statusCode), duration)
		}
		s.logger.InfoContext(ctx, "request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, duration.Milliseconds(),
			log.FieldClientIP, clientIP)
	})
}

// routePath returns the route template for metric labels so that
// /transactions/{id} stays one series regardless of the id.
func routePath(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports readiness. The engine being down does not make the
// dashboard unready; pages degrade to their error states instead.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
