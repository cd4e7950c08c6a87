// Package web is the browser front end of the console: server-rendered auth forms, the
// assistant chat and the campaign dashboard, each browser session with its own workspace.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brazucaphish/console/pkg/apiclient"
	"github.com/brazucaphish/console/pkg/assets"
	"github.com/brazucaphish/console/pkg/config"
	"github.com/brazucaphish/console/pkg/dashboard"
	"github.com/brazucaphish/console/pkg/i18n"
	"github.com/brazucaphish/console/pkg/ratelimit"
	"github.com/brazucaphish/console/pkg/session"
	"github.com/brazucaphish/console/pkg/shared/kvs"
	"github.com/brazucaphish/console/pkg/shared/logging"
)

const (
	// cleanupPeriod is how often idle workspaces and rate limit buckets are dropped.
	cleanupPeriod = time.Minute
	// workspaceIdleTTL is how long an unused workspace stays in memory. Its token outlives it.
	workspaceIdleTTL = 24 * time.Hour
	// maxWorkspaces bounds the workspaces held in memory; the least recently used goes first.
	maxWorkspaces = 10000
	// drainRetryAfter is the retry hint returned by /health while shutting down.
	drainRetryAfter = 10
)

// Options configures a Server.
type Options struct {
	Config *config.Config
	// API is the unauthenticated backend client; each workspace derives its own.
	API *apiclient.Client
	// Store keeps browser sessions and their tokens.
	Store kvs.Store
	// Notifier is told about generated campaigns. Optional.
	Notifier   dashboard.Notifier
	Translator *i18n.Translator
	Logger     logging.Logger
}

// settings are the parts of the configuration that a reload may change.
type settings struct {
	generation    uint64
	serviceName   string
	defaultLang   i18n.Language
	registerFlow  string
	redirectDelay time.Duration
	rateRequests  int
	rateWindow    time.Duration
}

func newSettings(cfg *config.Config, generation uint64) *settings {
	delay, _ := cfg.Auth.GetRedirectDelay()
	window, _ := cfg.Server.RateLimit.GetWindow()
	return &settings{
		generation:    generation,
		serviceName:   cfg.Service.Name,
		defaultLang:   i18n.ParseOr(cfg.Locale.Default, i18n.DefaultLanguage),
		registerFlow:  cfg.Auth.RegisterFlow,
		redirectDelay: delay,
		rateRequests:  cfg.Server.RateLimit.Requests,
		rateWindow:    window,
	}
}

// Server serves the web front end. Create it with New and mount Handler.
type Server struct {
	cookieName   string
	cookieSecure bool
	api          *apiclient.Client
	store        kvs.Store
	sessions     *session.Browsers
	notifier     dashboard.Notifier
	translator   *i18n.Translator
	templates    *Templates
	limiter      *ratelimit.Limiter
	logger       logging.Logger

	settings atomic.Pointer[settings]
	ready    atomic.Bool
	draining atomic.Bool

	mu            sync.Mutex
	workspaces    map[string]*workspace
	maxWorkspaces int
	now           func() time.Time
}

// New creates a server. It is not ready until SetReady is called.
func New(opts Options) (*Server, error) {
	if opts.Config == nil || opts.API == nil || opts.Store == nil {
		return nil, errors.New("web: config, API client and store are required")
	}

	templates, err := newTemplates()
	if err != nil {
		return nil, err
	}

	translator := opts.Translator
	if translator == nil {
		translator = i18n.NewTranslator()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewSimpleLogger("web", logging.LevelInfo, false)
	} else {
		logger = logger.WithModule("web")
	}

	st := newSettings(opts.Config, 1)
	s := &Server{
		cookieName:    opts.Config.Server.CookieName,
		cookieSecure:  opts.Config.Server.CookieSecure,
		api:           opts.API,
		store:         opts.Store,
		sessions:      session.NewBrowsers(kvs.NewNamespacedStore(opts.Store, "sessions:"), session.DefaultTTL),
		notifier:      opts.Notifier,
		translator:    translator,
		templates:     templates,
		limiter:       ratelimit.NewLimiter(st.rateRequests, st.rateWindow),
		logger:        logger,
		workspaces:    make(map[string]*workspace),
		maxWorkspaces: maxWorkspaces,
		now:           time.Now,
	}
	s.settings.Store(st)
	return s, nil
}

// Handler returns the routes of the front end.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.page(s.handleLoginPage))
	mux.HandleFunc("GET /login", s.page(s.handleLoginPage))
	mux.HandleFunc("POST /login", s.post(s.handleLogin))
	mux.HandleFunc("GET /register", s.page(s.handleRegisterPage))
	mux.HandleFunc("POST /register", s.post(s.handleRegister))
	mux.HandleFunc("GET /confirm", s.page(s.handleConfirmPage))
	mux.HandleFunc("POST /confirm", s.post(s.handleConfirm))

	mux.HandleFunc("GET /chatbot", s.stateful(s.handleChatPage))
	mux.HandleFunc("POST /chatbot", s.post(s.handleChat))

	mux.HandleFunc("GET /dashboard", s.stateful(s.handleDashboard))
	mux.HandleFunc("POST /dashboard/campaigns", s.post(s.handleNewCampaign))
	mux.HandleFunc("GET /dashboard/campaigns/{id}", s.stateful(s.handleCampaign))
	mux.HandleFunc("GET /dashboard/campaigns/{id}/export", s.stateful(s.handleExport))
	mux.HandleFunc("GET /dashboard/export", s.stateful(s.handleExportSelected))
	mux.HandleFunc("POST /dashboard/table", s.post(s.handleTableAction))

	mux.HandleFunc("GET /assets/styles.css", s.handleCSS)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("/", s.page(s.handleNotFound))

	return s.logRequests(mux)
}

// SetReady marks the server as accepting traffic.
func (s *Server) SetReady() {
	s.ready.Store(true)
}

// SetDraining makes /health report draining so load balancers stop sending traffic.
func (s *Server) SetDraining() {
	s.draining.Store(true)
}

// Reload applies a new configuration. Settings that are bound at startup (listen address,
// cookie, API base URL, storage, mail) need a restart and are only reported.
func (s *Server) Reload(cfg *config.Config) {
	prev := s.settings.Load()
	next := newSettings(cfg, prev.generation+1)
	s.settings.Store(next)

	if next.rateRequests != prev.rateRequests || next.rateWindow != prev.rateWindow {
		s.limiter.Configure(next.rateRequests, next.rateWindow)
	}

	if cfg.Server.CookieName != s.cookieName || cfg.Server.CookieSecure != s.cookieSecure {
		s.logger.Warn("Cookie settings changed, restart to apply")
	}
	if cfg.API.BaseURL != s.api.BaseURL() {
		s.logger.Warn("API base URL changed, restart to apply", "base_url", cfg.API.BaseURL)
	}
	s.logger.Info("Settings reloaded", "generation", next.generation, "register_flow", next.registerFlow, "locale", next.defaultLang)
}

// Run drops idle workspaces and stale rate limit buckets until ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(cleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *Server) cleanup() {
	s.limiter.Cleanup(s.settings.Load().rateWindow)

	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ws := range s.workspaces {
		if now.Sub(ws.lastSeen) > workspaceIdleTTL {
			delete(s.workspaces, id)
		}
	}
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status     string `json:"status"`
	Live       bool   `json:"live"`
	Ready      bool   `json:"ready"`
	Workspaces int    `json:"workspaces"`
	RetryAfter *int   `json:"retry_after,omitempty"`
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := HealthResponse{Status: "ok", Live: true, Ready: s.ready.Load(), Workspaces: len(s.workspaces)}
	s.mu.Unlock()

	status := http.StatusOK
	switch {
	case s.draining.Load():
		retry := drainRetryAfter
		resp.Status, resp.Ready, resp.RetryAfter = "draining", false, &retry
		status = http.StatusServiceUnavailable
	case !resp.Ready:
		resp.Status = "starting"
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// handleCSS serves the embedded CSS
func (s *Server) handleCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(assets.GetEmbeddedCSS()))
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("Request served", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}
