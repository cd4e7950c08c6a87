package web

import (
	"net/http"

	"github.com/brazucaphish/console/pkg/forms"
	"github.com/brazucaphish/console/pkg/i18n"
)

// buildPageData builds common page data
func (s *Server) buildPageData(lang i18n.Language, titleKey, nav string) PageData {
	return PageData{
		Lang:        lang,
		ServiceName: s.settings.Load().serviceName,
		Title:       s.translator.T(lang, titleKey),
		Nav:         nav,
		translator:  s.translator,
	}
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data interface{}) {
	if err := s.templates.render(w, status, name, data); err != nil {
		s.logger.Error("Failed to render page", "page", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (s *Server) renderError(w http.ResponseWriter, lang i18n.Language, status int, messageKey string) {
	s.render(w, status, "error", &ErrorPageData{
		PageData: s.buildPageData(lang, "error.internal", ""),
		Message:  s.translator.T(lang, messageKey),
	})
}

// applyOutcome performs an immediate redirect and reports true, or schedules a delayed
// one on the page about to be rendered.
func applyOutcome(w http.ResponseWriter, r *http.Request, page *PageData, out forms.Outcome) bool {
	if out.Redirect == "" {
		return false
	}
	if out.RedirectAfter <= 0 {
		http.Redirect(w, r, out.Redirect, http.StatusSeeOther)
		return true
	}
	page.Refresh = newRefresh(out.Redirect, out.RedirectAfter)
	return false
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request, v *visit) {
	s.render(w, http.StatusNotFound, "error", &ErrorPageData{
		PageData: s.buildPageData(v.lang, "error.not_found", ""),
		Message:  s.translator.T(v.lang, "error.not_found"),
	})
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request, v *visit) {
	s.render(w, http.StatusOK, "login", &LoginPageData{
		PageData: s.buildPageData(v.lang, "login.title", navLogin),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, v *visit) {
	in := forms.LoginInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	out, _ := s.formController(v.ws, v.settings).Login(r.Context(), v.lang, in)

	page := &LoginPageData{
		PageData: s.buildPageData(v.lang, "login.title", navLogin),
		Display:  out.Display,
		Email:    in.Email,
	}
	if applyOutcome(w, r, &page.PageData, out) {
		return
	}
	s.render(w, http.StatusOK, "login", page)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request, v *visit) {
	s.render(w, http.StatusOK, "register", &RegisterPageData{
		PageData: s.buildPageData(v.lang, "register.title", navRegister),
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request, v *visit) {
	in := forms.RegisterInput{
		GivenName:       r.PostFormValue("givenName"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}
	out, _ := s.formController(v.ws, v.settings).Register(r.Context(), v.lang, in)

	page := &RegisterPageData{
		PageData: s.buildPageData(v.lang, "register.title", navRegister),
		Display:  out.Display,
	}
	if !out.ResetForm {
		page.GivenName, page.Email = in.GivenName, in.Email
	}
	if applyOutcome(w, r, &page.PageData, out) {
		return
	}
	s.render(w, http.StatusOK, "register", page)
}

func (s *Server) handleConfirmPage(w http.ResponseWriter, r *http.Request, v *visit) {
	s.render(w, http.StatusOK, "confirm", &ConfirmPageData{
		PageData: s.buildPageData(v.lang, "confirm.title", ""),
		Email:    forms.PrefillEmail(r.URL.Query()),
	})
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request, v *visit) {
	in := forms.ConfirmInput{
		Email:            r.PostFormValue("email"),
		ConfirmationCode: r.PostFormValue("confirmationCode"),
	}
	out, _ := s.formController(v.ws, v.settings).Confirm(r.Context(), v.lang, in)

	page := &ConfirmPageData{
		PageData: s.buildPageData(v.lang, "confirm.title", ""),
		Display:  out.Display,
		Email:    in.Email,
		Code:     in.ConfirmationCode,
	}
	if applyOutcome(w, r, &page.PageData, out) {
		return
	}
	s.render(w, http.StatusOK, "confirm", page)
}

func (s *Server) handleChatPage(w http.ResponseWriter, r *http.Request, v *visit) {
	s.render(w, http.StatusOK, "chatbot", &ChatPageData{
		PageData: s.buildPageData(v.lang, "chat.title", navChatbot),
		State:    v.ws.chat.State(),
	})
}

// handleChat submits a message and redirects back to the log so a reload does not
// send it again. Blank messages change nothing.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request, v *visit) {
	_, _ = v.ws.chat.Submit(r.Context(), v.lang, r.PostFormValue("message"))
	http.Redirect(w, r, "/chatbot", http.StatusSeeOther)
}
