package cmd

import (
	"fmt"
	"io"

	"github.com/brazucaphish/console/pkg/apiclient"
	"github.com/brazucaphish/console/pkg/chart"
	"github.com/brazucaphish/console/pkg/config"
	"github.com/brazucaphish/console/pkg/dashboard"
	"github.com/brazucaphish/console/pkg/forms"
	"github.com/brazucaphish/console/pkg/i18n"
	"github.com/brazucaphish/console/pkg/mailer"
	"github.com/brazucaphish/console/pkg/session"
	"github.com/brazucaphish/console/pkg/shared/kvs"
	"github.com/brazucaphish/console/pkg/shared/logging"
	"github.com/brazucaphish/console/pkg/termui"
	"github.com/spf13/cobra"
)

// cliTokenNamespace keeps the terminal token apart from browser sessions sharing a store.
const cliTokenNamespace = "tokens:cli:"

// app is what a terminal command works with: the stored token and a client using it.
type app struct {
	cfg        *config.Config
	lang       i18n.Language
	logger     logging.Logger
	translator *i18n.Translator
	store      kvs.Store
	tokens     *session.TokenStore
	api        *apiclient.Client
	printer    *termui.Printer
	out        io.Writer
}

func (o *rootOptions) newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	// Terminal output belongs to the command; logs go to stderr and stay quiet by default.
	level := logging.LevelWarn
	if o.verbose {
		level = logging.LevelDebug
	}
	logger := logging.NewSimpleLoggerWithWriter("main", level, false, cmd.ErrOrStderr())

	store, err := kvs.New(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}

	timeout, _ := cfg.API.GetTimeout()
	client, err := apiclient.New(apiclient.Options{BaseURL: cfg.API.BaseURL, Timeout: timeout, Logger: logger})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	tokens := session.NewTokenStore(kvs.NewNamespacedStore(store, cliTokenNamespace))
	lang := i18n.ParseOr(cfg.Locale.Default, i18n.DefaultLanguage)
	translator := i18n.NewTranslator()

	return &app{
		cfg:        cfg,
		lang:       lang,
		logger:     logger,
		translator: translator,
		store:      store,
		tokens:     tokens,
		api:        client.WithTokens(tokens.TokenSource()),
		printer:    termui.NewPrinter(cmd.OutOrStdout(), translator, lang),
		out:        cmd.OutOrStdout(),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func (a *app) t(key string) string {
	return a.translator.T(a.lang, key)
}

func (a *app) forms() *forms.Controller {
	delay, _ := a.cfg.Auth.GetRedirectDelay()
	return forms.NewController(a.api, a.tokens, a.translator, forms.Options{
		RegisterFlow:  a.cfg.Auth.RegisterFlow,
		RedirectDelay: delay,
		Logger:        a.logger,
	})
}

// dashboard returns a view drawing text charts. Generated links are mailed when the
// digest mailer is enabled.
func (a *app) dashboard() (*dashboard.View, error) {
	notifier, err := mailer.NewNotifier(a.cfg, "", a.translator, a.logger)
	if err != nil {
		return nil, err
	}
	return dashboard.NewView(a.api, a.translator, dashboard.Options{
		Chart:    chart.NewASCII,
		Notifier: notifier,
		Logger:   a.logger,
	}), nil
}

// report prints the outcome of an auth form. The terminal has no pages, so a redirect
// is shown as the path a browser would open.
func (a *app) report(out forms.Outcome, err error) error {
	if out.Display.Error != "" {
		a.printer.Error(out.Display.Error)
	}
	if out.Display.Success != "" {
		a.printer.Success(out.Display.Success)
	}
	if out.Redirect != "" {
		a.printer.Navigate(out.Redirect)
	}
	if err != nil {
		return errReported
	}
	return nil
}
