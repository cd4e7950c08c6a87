// Package forms handles the register, confirm and login forms: local validation, one API
// call per submission, and what to display or where to go afterwards.
package forms

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/brazucaphish/console/pkg/apiclient"
	"github.com/brazucaphish/console/pkg/config"
	"github.com/brazucaphish/console/pkg/i18n"
	"github.com/brazucaphish/console/pkg/ratelimit"
	"github.com/brazucaphish/console/pkg/shared/logging"
)

// DefaultRedirectDelay is how long success messages stay visible before redirecting.
const DefaultRedirectDelay = 1500 * time.Millisecond

// API is the part of the backend client the forms use.
type API interface {
	Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.MessageResponse, error)
	Confirm(ctx context.Context, req apiclient.ConfirmRequest) (*apiclient.MessageResponse, error)
	Login(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error)
}

// TokenSaver persists the token returned by login.
type TokenSaver interface {
	Save(ctx context.Context, token string) error
}

// Display is the message area under a form. Error and Success are never both set.
type Display struct {
	Error   string
	Success string
}

func (d *Display) showError(msg string) {
	d.Error, d.Success = msg, ""
}

func (d *Display) showSuccess(msg string) {
	d.Success, d.Error = msg, ""
}

// Outcome describes what the front end does after a submission.
type Outcome struct {
	Display Display
	// Redirect is the path to navigate to; empty means stay on the form.
	Redirect string
	// RedirectAfter delays the navigation so the success message can be read.
	RedirectAfter time.Duration
	// ResetForm clears the form fields. Failed submissions keep them.
	ResetForm bool
}

// Options configures a Controller.
type Options struct {
	// RegisterFlow is config.RegisterFlowConfirm (default) or config.RegisterFlowReset.
	RegisterFlow  string
	RedirectDelay time.Duration
	Logger        logging.Logger
}

// Controller runs the auth forms of one user. Each form admits one submission at a time.
type Controller struct {
	api           API
	tokens        TokenSaver
	translator    *i18n.Translator
	registerFlow  string
	redirectDelay time.Duration
	logger        logging.Logger

	registerGate ratelimit.Gate
	confirmGate  ratelimit.Gate
	loginGate    ratelimit.Gate
}

// NewController creates a form controller.
func NewController(api API, tokens TokenSaver, translator *i18n.Translator, opts Options) *Controller {
	flow := opts.RegisterFlow
	if flow == "" {
		flow = config.RegisterFlowConfirm
	}
	delay := opts.RedirectDelay
	if delay <= 0 {
		delay = DefaultRedirectDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewSimpleLogger("forms", logging.LevelInfo, false)
	} else {
		logger = logger.WithModule("forms")
	}

	return &Controller{
		api:           api,
		tokens:        tokens,
		translator:    translator,
		registerFlow:  flow,
		redirectDelay: delay,
		logger:        logger,
	}
}

// RegisterInput holds the register form fields.
type RegisterInput struct {
	GivenName       string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register validates the passwords and creates the account.
func (c *Controller) Register(ctx context.Context, lang i18n.Language, in RegisterInput) (Outcome, error) {
	var out Outcome

	if in.Password != in.ConfirmPassword {
		out.Display.showError(c.translator.T(lang, "register.error.mismatch"))
		return out, ErrPasswordMismatch
	}

	if !c.registerGate.TryEnter() {
		out.Display.showError(c.translator.T(lang, "error.in_progress"))
		return out, ErrSubmitInProgress
	}
	defer c.registerGate.Leave()

	_, err := c.api.Register(ctx, apiclient.RegisterRequest{
		GivenName: in.GivenName,
		Email:     in.Email,
		Password:  in.Password,
	})
	if err != nil {
		c.logger.Info("Registration failed", "email", in.Email, "error", err)
		out.Display.showError(apiclient.MessageOr(err, c.translator.T(lang, "register.error.failed")))
		return out, err
	}

	c.logger.Info("Registration succeeded", "email", in.Email, "flow", c.registerFlow)
	if c.registerFlow == config.RegisterFlowReset {
		out.Display.showSuccess(c.translator.T(lang, "register.success.check_email"))
		out.ResetForm = true
		return out, nil
	}

	out.Display.showSuccess(c.translator.T(lang, "register.success.redirect"))
	out.Redirect = "/confirm?" + url.Values{"email": {in.Email}}.Encode()
	out.RedirectAfter = c.redirectDelay
	return out, nil
}

// ConfirmInput holds the confirmation form fields.
type ConfirmInput struct {
	Email            string
	ConfirmationCode string
}

// PrefillEmail returns the email the confirmation page is opened with.
func PrefillEmail(query url.Values) string {
	return query.Get("email")
}

// Confirm confirms the account with the emailed code.
func (c *Controller) Confirm(ctx context.Context, lang i18n.Language, in ConfirmInput) (Outcome, error) {
	var out Outcome

	if !c.confirmGate.TryEnter() {
		out.Display.showError(c.translator.T(lang, "error.in_progress"))
		return out, ErrSubmitInProgress
	}
	defer c.confirmGate.Leave()

	_, err := c.api.Confirm(ctx, apiclient.ConfirmRequest{
		Email:            in.Email,
		ConfirmationCode: in.ConfirmationCode,
	})
	if err != nil {
		c.logger.Info("Confirmation failed", "email", in.Email, "error", err)
		out.Display.showError(apiclient.MessageOr(err, c.translator.T(lang, "confirm.error.failed")))
		return out, err
	}

	c.logger.Info("Account confirmed", "email", in.Email)
	out.Display.showSuccess(c.translator.T(lang, "confirm.success"))
	out.Redirect = "/login"
	out.RedirectAfter = c.redirectDelay
	return out, nil
}

// LoginInput holds the login form fields.
type LoginInput struct {
	Email    string
	Password string
}

// Login signs in, stores the token and sends the user to the dashboard.
func (c *Controller) Login(ctx context.Context, lang i18n.Language, in LoginInput) (Outcome, error) {
	var out Outcome

	if !c.loginGate.TryEnter() {
		out.Display.showError(c.translator.T(lang, "error.in_progress"))
		return out, ErrSubmitInProgress
	}
	defer c.loginGate.Leave()

	resp, err := c.api.Login(ctx, apiclient.LoginRequest{Email: in.Email, Password: in.Password})
	if err != nil {
		c.logger.Info("Login failed", "email", in.Email, "error", err)
		out.Display.showError(apiclient.MessageOr(err, c.translator.T(lang, "login.error.invalid")))
		return out, err
	}

	if err := c.tokens.Save(ctx, resp.Token); err != nil {
		c.logger.Error("Failed to store session token", "error", err)
		out.Display.showError(c.translator.T(lang, "error.internal"))
		return out, err
	}

	c.logger.Info("Login succeeded", "email", in.Email)
	out.Redirect = "/dashboard"
	return out, nil
}

// IsValidation reports whether err was raised before any request was sent.
func IsValidation(err error) bool {
	return errors.Is(err, ErrPasswordMismatch) || errors.Is(err, ErrSubmitInProgress)
}
