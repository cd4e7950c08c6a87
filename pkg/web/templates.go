package web

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"time"

	"github.com/brazucaphish/console/pkg/chat"
	"github.com/brazucaphish/console/pkg/dashboard"
	"github.com/brazucaphish/console/pkg/forms"
	"github.com/brazucaphish/console/pkg/i18n"
)

// Navigation entries highlighted in the top bar.
const (
	navLogin     = "login"
	navRegister  = "register"
	navChatbot   = "chatbot"
	navDashboard = "dashboard"
)

// PageData contains common data for all pages
type PageData struct {
	Lang        i18n.Language
	ServiceName string
	Title       string
	Nav         string
	// Refresh, when set, sends the browser to another page after a delay.
	Refresh *Refresh

	translator *i18n.Translator
}

// T translates key in the page language.
func (p PageData) T(key string) string {
	return p.translator.T(p.Lang, key)
}

// Tf translates key and formats it with args.
func (p PageData) Tf(key string, args ...interface{}) string {
	return p.translator.Tf(p.Lang, key, args...)
}

// Refresh is a delayed navigation rendered as <meta http-equiv="refresh">.
type Refresh struct {
	Seconds int
	URL     string
}

// Content is the value of the meta refresh content attribute.
func (r Refresh) Content() string {
	return fmt.Sprintf("%d; url=%s", r.Seconds, r.URL)
}

// newRefresh rounds the delay up to whole seconds, the unit meta refresh accepts.
func newRefresh(url string, after time.Duration) *Refresh {
	return &Refresh{Seconds: int(math.Ceil(after.Seconds())), URL: url}
}

// LoginPageData contains data for the login page
type LoginPageData struct {
	PageData
	Display forms.Display
	Email   string
}

// RegisterPageData contains data for the register page
type RegisterPageData struct {
	PageData
	Display   forms.Display
	GivenName string
	Email     string
}

// ConfirmPageData contains data for the confirmation page
type ConfirmPageData struct {
	PageData
	Display forms.Display
	Email   string
	Code    string
}

// ChatPageData contains data for the assistant page
type ChatPageData struct {
	PageData
	State chat.State
}

// DashboardPageData contains data for the dashboard
type DashboardPageData struct {
	PageData
	Alert    string
	Overview *dashboard.Overview
	Links    *dashboard.Links
	Detail   *dashboard.Detail
	Chart    template.HTML
	Form     dashboard.NewCampaignInput
	FormOpen bool
}

// ErrorPageData contains data for error pages
type ErrorPageData struct {
	PageData
	Message string
}

// Templates holds all parsed pages. Each page defines "content" inside the shared layout.
type Templates struct {
	pages map[string]*template.Template
}

var pageSources = map[string]string{
	"login":     loginTemplate,
	"register":  registerTemplate,
	"confirm":   confirmTemplate,
	"chatbot":   chatTemplate,
	"dashboard": dashboardTemplate,
	"error":     errorTemplate,
}

// newTemplates creates and parses all templates
func newTemplates() (*Templates, error) {
	layout, err := template.New("layout").Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	t := &Templates{pages: make(map[string]*template.Template, len(pageSources))}
	for name, src := range pageSources {
		page, err := template.Must(layout.Clone()).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		t.pages[name] = page
	}
	return t, nil
}

// render executes a page into a buffer first so a template error never leaves a
// half-written response.
func (t *Templates) render(w http.ResponseWriter, status int, name string, data interface{}) error {
	page, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}

	setSecurityHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

func setSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "same-origin")
	w.Header().Set("Cache-Control", "no-store")
}
