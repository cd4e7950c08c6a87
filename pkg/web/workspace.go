package web

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/brazucaphish/console/pkg/chat"
	"github.com/brazucaphish/console/pkg/dashboard"
	"github.com/brazucaphish/console/pkg/forms"
	"github.com/brazucaphish/console/pkg/i18n"
	"github.com/brazucaphish/console/pkg/session"
	"github.com/brazucaphish/console/pkg/shared/kvs"
)

// langCookieMaxAge keeps an explicit language choice for a year.
const langCookieMaxAge = 365 * 24 * 60 * 60

// workspace is everything the console keeps for one browser session.
type workspace struct {
	tokens    *session.TokenStore
	chat      *chat.Panel
	dashboard *dashboard.View

	// lastSeen is guarded by Server.mu.
	lastSeen time.Time

	formsMu  sync.Mutex
	forms    *forms.Controller
	formsGen uint64
}

// visit is one request with its session resolved. Stateless pages get a nil session and
// workspace unless the browser already has a session.
type visit struct {
	session  *session.Session
	ws       *workspace
	lang     i18n.Language
	settings *settings
}

// formController returns the workspace's form controller, rebuilt when settings were
// reloaded since it was created.
func (s *Server) formController(ws *workspace, st *settings) *forms.Controller {
	ws.formsMu.Lock()
	defer ws.formsMu.Unlock()

	if ws.forms == nil || ws.formsGen != st.generation {
		client := s.api.WithTokens(ws.tokens.TokenSource())
		ws.forms = forms.NewController(client, ws.tokens, s.translator, forms.Options{
			RegisterFlow:  st.registerFlow,
			RedirectDelay: st.redirectDelay,
			Logger:        s.logger,
		})
		ws.formsGen = st.generation
	}
	return ws.forms
}

// workspace returns the workspace of session id, creating it on first use.
func (s *Server) workspace(id string) *workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.workspaces[id]
	if !ok {
		if len(s.workspaces) >= s.maxWorkspaces {
			s.evictOldestLocked()
		}
		tokens := session.NewTokenStore(kvs.NewNamespacedStore(s.store, "tokens:"+id+":"))
		client := s.api.WithTokens(tokens.TokenSource())
		ws = &workspace{
			tokens: tokens,
			chat:   chat.NewPanel(client, s.translator, s.logger),
			dashboard: dashboard.NewView(client, s.translator, dashboard.Options{
				Notifier: s.notifier,
				Logger:   s.logger,
			}),
		}
		s.workspaces[id] = ws
	}
	ws.lastSeen = s.now()
	return ws
}

// evictOldestLocked drops the least recently used workspace. s.mu must be held.
func (s *Server) evictOldestLocked() {
	var oldest string
	var seen time.Time
	for id, ws := range s.workspaces {
		if oldest == "" || ws.lastSeen.Before(seen) {
			oldest, seen = id, ws.lastSeen
		}
	}
	if oldest != "" {
		delete(s.workspaces, oldest)
		s.logger.Debug("Workspace evicted", "session_id", oldest)
	}
}

// loadSession returns the session named by the request cookie, or nil.
func (s *Server) loadSession(r *http.Request) *session.Session {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	sess, err := s.sessions.Load(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, session.ErrSessionNotFound) {
			s.logger.Warn("Failed to load session", "error", err)
		}
		return nil
	}
	return sess
}

func (s *Server) newSession(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	sess, err := s.sessions.Open(r.Context())
	if err != nil {
		return nil, err
	}
	s.setSessionCookie(w, sess)
	s.logger.Debug("Session created", "session_id", sess.ID)
	return sess, nil
}

// saveSession stores sess with a fresh expiry and renews the cookie to match.
func (s *Server) saveSession(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		return err
	}
	s.setSessionCookie(w, sess)
	return nil
}

func (s *Server) setSessionCookie(w http.ResponseWriter, sess *session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// begin resolves the session, workspace and language of a request. A session and its
// workspace are only created for stateful routes; other pages use an existing one if any.
// An explicit ?lang choice is remembered in the lang cookie and the session.
func (s *Server) begin(w http.ResponseWriter, r *http.Request, stateful bool) (*visit, error) {
	st := s.settings.Load()

	sess := s.loadSession(r)
	switch {
	case sess == nil && stateful:
		var err error
		if sess, err = s.newSession(w, r); err != nil {
			return nil, err
		}
	case sess != nil && sess.ExpiresAt.Sub(s.now()) < session.DefaultTTL/2:
		if err := s.saveSession(w, r, sess); err != nil {
			s.logger.Warn("Failed to renew session", "error", err)
		}
	}

	fallback := st.defaultLang
	if sess != nil {
		fallback = i18n.ParseOr(sess.Lang, st.defaultLang)
	}
	lang := i18n.DetectLanguage(r, fallback)
	if chosen, ok := i18n.Parse(r.URL.Query().Get("lang")); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     i18n.LangCookie,
			Value:    string(chosen),
			Path:     "/",
			MaxAge:   langCookieMaxAge,
			SameSite: http.SameSiteLaxMode,
		})
		if sess != nil && sess.Lang != string(chosen) {
			sess.Lang = string(chosen)
			if err := s.saveSession(w, r, sess); err != nil {
				s.logger.Warn("Failed to store language choice", "error", err)
			}
		}
	}

	v := &visit{session: sess, lang: lang, settings: st}
	if stateful {
		v.ws = s.workspace(sess.ID)
	}
	return v, nil
}

type visitHandler func(w http.ResponseWriter, r *http.Request, v *visit)

func (s *Server) serveVisit(stateful bool, h visitHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := s.begin(w, r, stateful)
		if err != nil {
			s.logger.Error("Failed to start session", "error", err)
			s.renderError(w, i18n.DetectLanguage(r, s.settings.Load().defaultLang), http.StatusInternalServerError, "error.internal")
			return
		}
		h(w, r, v)
	}
}

// page wraps a handler that renders without per-session state.
func (s *Server) page(h visitHandler) http.HandlerFunc {
	return s.serveVisit(false, h)
}

// stateful wraps a handler that needs the visitor's session and workspace.
func (s *Server) stateful(h visitHandler) http.HandlerFunc {
	return s.serveVisit(true, h)
}

// post is stateful plus the per-session rate limit on form posts.
func (s *Server) post(h visitHandler) http.HandlerFunc {
	return s.stateful(func(w http.ResponseWriter, r *http.Request, v *visit) {
		if v.settings.rateRequests > 0 && !s.limiter.Allow(v.session.ID) {
			s.logger.Warn("Rate limit exceeded", "session_id", v.session.ID, "path", r.URL.Path)
			w.Header().Set("Retry-After", strconv.Itoa(int(v.settings.rateWindow.Seconds())))
			s.renderError(w, v.lang, http.StatusTooManyRequests, "error.rate_limited")
			return
		}
		if err := r.ParseForm(); err != nil {
			s.renderError(w, v.lang, http.StatusBadRequest, "error.bad_request")
			return
		}
		h(w, r, v)
	})
}
