// Package dashboard implements the campaign dashboard: stats cards, the campaign table,
// campaign creation, the per-campaign detail view with its click chart, and CSV export.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/brazucaphish/console/pkg/apiclient"
	"github.com/brazucaphish/console/pkg/chart"
	"github.com/brazucaphish/console/pkg/i18n"
	"github.com/brazucaphish/console/pkg/ratelimit"
	"github.com/brazucaphish/console/pkg/shared/logging"
)

// MaxEmails is the number of target emails sent with a new campaign; extra entries are dropped.
const MaxEmails = 100

// Table actions.
const (
	ActionView   = "view"
	ActionExport = "export"
)

// API is the part of the backend client the dashboard uses.
type API interface {
	Stats(ctx context.Context) (*apiclient.Stats, error)
	CampaignDetail(ctx context.Context, id apiclient.ID) (*apiclient.CampaignDetail, error)
	Generate(ctx context.Context, req apiclient.GenerateRequest) (*apiclient.GenerateResponse, error)
	Export(ctx context.Context, id apiclient.ID, w io.Writer) (string, error)
}

// Digest is the set of links generated for a new campaign.
type Digest struct {
	CampaignID   apiclient.ID
	CampaignName string
	Links        []apiclient.GeneratedLink
	ExpiresAt    string
	CopyAll      string
}

// Notifier is told about every generated campaign, e.g. to mail the links to the operator.
type Notifier interface {
	NotifyLinks(ctx context.Context, lang i18n.Language, digest Digest) error
}

// Cards are the four stats cards, already formatted.
type Cards struct {
	TotalCampaigns string
	TotalClicks    string
	UniqueVictims  string
	SuccessRate    string
}

// Row is one campaign table row. An Empty row spans the table and shows Name only.
type Row struct {
	ID        apiclient.ID
	Name      string
	CreatedAt string
	Clicks    int
	Empty     bool
}

// Overview is the dashboard home: cards and campaign table.
type Overview struct {
	Cards Cards
	Rows  []Row
}

// NewCampaignInput holds the new campaign form fields as typed.
type NewCampaignInput struct {
	Name        string
	Description string
	TargetURL   string
	Emails      string
}

// Links is the result panel of a new campaign.
type Links struct {
	CampaignID apiclient.ID
	ExpiresAt  string
	// Lines are "email › link", one per generated link.
	Lines []string
	Links []apiclient.GeneratedLink
	// CopyAll is the text copied by "copy all": the link URLs joined by newlines.
	CopyAll string
}

// CreateOutcome describes what the front end does after a new campaign submission.
type CreateOutcome struct {
	// Alert is a blocking message; empty when there is nothing to report.
	Alert string
	Links *Links
	// ResetForm clears the form and CollapseForm hides its panel.
	ResetForm    bool
	CollapseForm bool
	Overview     *Overview
}

// Detail is the campaign detail view.
type Detail struct {
	ID          apiclient.ID
	Name        string
	Since       string
	Until       string
	TotalClicks int
	UniqueUsers int
	UniqueIPs   int
	// Summary is the textual summary, one line per counter.
	Summary []string
	Chart   chart.Chart
}

// Options configures a View.
type Options struct {
	// Chart builds the detail chart. Defaults to chart.NewSVG.
	Chart    chart.Factory
	Notifier Notifier
	Logger   logging.Logger
}

// View is the dashboard of one user. It is safe for concurrent use.
type View struct {
	api        API
	translator *i18n.Translator
	newChart   chart.Factory
	notifier   Notifier
	logger     logging.Logger

	createGate ratelimit.Gate
	slot       chart.Slot

	mu       sync.Mutex
	selected apiclient.ID
	overview *Overview
	links    *Links
	detail   *Detail
}

// NewView creates a dashboard view.
func NewView(api API, translator *i18n.Translator, opts Options) *View {
	factory := opts.Chart
	if factory == nil {
		factory = chart.NewSVG
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewSimpleLogger("dashboard", logging.LevelInfo, false)
	} else {
		logger = logger.WithModule("dashboard")
	}
	return &View{
		api:        api,
		translator: translator,
		newChart:   factory,
		notifier:   opts.Notifier,
		logger:     logger,
	}
}

// SuccessRate formats unique/total as a rounded percentage, "0%" when total is zero.
func SuccessRate(unique, total int) string {
	if total == 0 {
		return "0%"
	}
	return strconv.Itoa(int(math.Round(float64(unique)/float64(total)*100))) + "%"
}

// Refresh reloads the cards and rebuilds the campaign table.
func (v *View) Refresh(ctx context.Context, lang i18n.Language) (Overview, error) {
	stats, err := v.api.Stats(ctx)
	if err != nil {
		v.logger.Warn("Failed to load dashboard stats", "error", err)
		return Overview{}, err
	}

	ov := Overview{
		Cards: Cards{
			TotalCampaigns: strconv.Itoa(stats.TotalCampaigns),
			TotalClicks:    strconv.Itoa(stats.TotalClicks),
			UniqueVictims:  strconv.Itoa(stats.UniqueVictims),
			SuccessRate:    SuccessRate(stats.UniqueVictims, stats.TotalClicks),
		},
		Rows: v.rows(lang, stats.Campaigns),
	}

	v.mu.Lock()
	v.overview = &ov
	v.mu.Unlock()
	return ov, nil
}

func (v *View) rows(lang i18n.Language, campaigns []apiclient.CampaignSummary) []Row {
	if len(campaigns) == 0 {
		return []Row{{Name: v.translator.T(lang, "dashboard.table.empty"), Empty: true}}
	}
	rows := make([]Row, 0, len(campaigns))
	for _, c := range campaigns {
		rows = append(rows, Row{
			ID:        c.ID,
			Name:      c.Name,
			CreatedAt: FormatDate(lang, c.CreatedAt),
			Clicks:    c.Clicks,
		})
	}
	return rows
}

// ParseEmails splits on any whitespace, drops empty entries and keeps the first MaxEmails.
func ParseEmails(text string) []string {
	emails := strings.Fields(text)
	if len(emails) > MaxEmails {
		emails = emails[:MaxEmails]
	}
	return emails
}

// NewCampaign generates tracking links for a new campaign, then refreshes the dashboard.
func (v *View) NewCampaign(ctx context.Context, lang i18n.Language, in NewCampaignInput) (CreateOutcome, error) {
	var out CreateOutcome

	req := apiclient.GenerateRequest{
		CampaignName: strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		TargetURL:    strings.TrimSpace(in.TargetURL),
		Emails:       ParseEmails(in.Emails),
	}
	if len(req.Emails) == 0 {
		out.Alert = v.translator.T(lang, "dashboard.error.no_emails")
		return out, ErrNoEmails
	}

	if !v.createGate.TryEnter() {
		out.Alert = v.translator.T(lang, "error.in_progress")
		return out, ErrSubmitInProgress
	}
	defer v.createGate.Leave()

	resp, err := v.api.Generate(ctx, req)
	if err != nil {
		v.logger.Warn("Campaign generation failed", "emails", len(req.Emails), "error", err)
		out.Alert = apiclient.DescribeOr(err, v.translator.T(lang, "dashboard.error.unknown"))
		return out, err
	}

	links := newLinks(resp)
	v.mu.Lock()
	v.links = links
	v.mu.Unlock()

	v.logger.Info("Campaign generated", "campaign_id", resp.CampaignID, "links", len(resp.Links))
	out.Links = links
	out.ResetForm = true
	out.CollapseForm = true

	v.notify(ctx, lang, Digest{
		CampaignID:   resp.CampaignID,
		CampaignName: req.CampaignName,
		Links:        resp.Links,
		ExpiresAt:    resp.ExpiresAt,
		CopyAll:      links.CopyAll,
	})

	ov, err := v.Refresh(ctx, lang)
	if err != nil {
		out.Alert = apiclient.DescribeOr(err, v.translator.T(lang, "dashboard.error.unknown"))
		return out, err
	}
	out.Overview = &ov
	return out, nil
}

func newLinks(resp *apiclient.GenerateResponse) *Links {
	l := &Links{
		CampaignID: resp.CampaignID,
		ExpiresAt:  resp.ExpiresAt,
		Links:      resp.Links,
		Lines:      make([]string, 0, len(resp.Links)),
	}
	urls := make([]string, 0, len(resp.Links))
	for _, link := range resp.Links {
		l.Lines = append(l.Lines, link.Email+" › "+link.Link)
		urls = append(urls, link.Link)
	}
	l.CopyAll = strings.Join(urls, "\n")
	return l
}

func (v *View) notify(ctx context.Context, lang i18n.Language, d Digest) {
	if v.notifier == nil {
		return
	}
	if err := v.notifier.NotifyLinks(ctx, lang, d); err != nil {
		v.logger.Error("Failed to send link digest", "campaign_id", d.CampaignID, "error", err)
	}
}

// ShowCampaign loads a campaign, selects it and replaces the detail chart.
func (v *View) ShowCampaign(ctx context.Context, lang i18n.Language, id apiclient.ID) (*Detail, error) {
	resp, err := v.api.CampaignDetail(ctx, id)
	if err != nil {
		v.logger.Warn("Failed to load campaign", "campaign_id", id, "error", err)
		return nil, err
	}

	series := chart.Series{
		Label:  chart.ClicksLabel,
		Labels: make([]string, 0, len(resp.Timeline)),
		Values: make([]float64, 0, len(resp.Timeline)),
	}
	for _, p := range resp.Timeline {
		series.Labels = append(series.Labels, p.Date)
		series.Values = append(series.Values, float64(p.Clicks))
	}

	d := &Detail{
		ID:          id,
		Name:        resp.Campaign.Name,
		Since:       resp.Campaign.Since,
		Until:       resp.Campaign.Until,
		TotalClicks: resp.Stats.TotalClicks,
		UniqueUsers: resp.Stats.UniqueUsers,
		UniqueIPs:   resp.Stats.UniqueIPs,
	}
	d.Summary = v.summary(lang, d)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = id
	d.Chart = v.slot.Swap(func() chart.Chart { return v.newChart(series) })
	v.detail = d
	return d, nil
}

func (v *View) summary(lang i18n.Language, d *Detail) []string {
	t := v.translator
	lines := []string{
		fmt.Sprintf("%s: %d", t.T(lang, "dashboard.detail.total_clicks"), d.TotalClicks),
		fmt.Sprintf("%s: %d", t.T(lang, "dashboard.detail.unique_users"), d.UniqueUsers),
	}
	if d.UniqueIPs > 0 {
		lines = append(lines, fmt.Sprintf("%s: %d", t.T(lang, "dashboard.detail.unique_ips"), d.UniqueIPs))
	}
	if d.Since != "" || d.Until != "" {
		lines = append(lines, fmt.Sprintf("%s: %s – %s", t.T(lang, "dashboard.detail.period"),
			FormatDate(lang, d.Since), FormatDate(lang, d.Until)))
	}
	return lines
}

// ShowError is the alert text for a failed dashboard call.
func (v *View) ShowError(lang i18n.Language, err error) string {
	switch {
	case errors.Is(err, ErrNoSelection):
		return v.translator.T(lang, "dashboard.error.no_selection")
	case errors.Is(err, ErrNoEmails):
		return v.translator.T(lang, "dashboard.error.no_emails")
	case errors.Is(err, ErrSubmitInProgress):
		return v.translator.T(lang, "error.in_progress")
	}
	return apiclient.DescribeOr(err, v.translator.T(lang, "dashboard.error.unknown"))
}

// Export streams a campaign's CSV into w and returns the suggested filename.
func (v *View) Export(ctx context.Context, id apiclient.ID, w io.Writer) (string, error) {
	name, err := v.api.Export(ctx, id, w)
	if err != nil {
		v.logger.Warn("Campaign export failed", "campaign_id", id, "error", err)
		return "", err
	}
	v.logger.Info("Campaign exported", "campaign_id", id, "filename", name)
	return name, nil
}

// ExportSelected exports the campaign last opened in the detail view.
func (v *View) ExportSelected(ctx context.Context, w io.Writer) (string, error) {
	id, ok := v.Selected()
	if !ok {
		return "", ErrNoSelection
	}
	return v.Export(ctx, id, w)
}

// ActionResult is the effect of a table action: Detail for view, Export for export.
type ActionResult struct {
	Detail *Detail
	// Export is the campaign whose CSV the front end should download.
	Export apiclient.ID
}

// HandleTableAction dispatches a click on a table row button.
func (v *View) HandleTableAction(ctx context.Context, lang i18n.Language, action string, id apiclient.ID) (ActionResult, error) {
	switch action {
	case ActionView:
		d, err := v.ShowCampaign(ctx, lang, id)
		if err != nil {
			return ActionResult{}, err
		}
		return ActionResult{Detail: d}, nil
	case ActionExport:
		return ActionResult{Export: id}, nil
	}
	return ActionResult{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

// Selected returns the id of the campaign last opened successfully.
func (v *View) Selected() (apiclient.ID, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected, v.selected != ""
}

// Overview returns the last refreshed overview, or nil.
func (v *View) Overview() *Overview {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.overview
}

// Links returns the links of the last generated campaign, or nil.
func (v *View) Links() *Links {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.links
}

// DismissLinks hides the links of the last generated campaign.
func (v *View) DismissLinks() {
	v.mu.Lock()
	v.links = nil
	v.mu.Unlock()
}

// Detail returns the campaign detail currently shown, or nil.
func (v *View) Detail() *Detail {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.detail
}

// Chart returns the live detail chart, or nil.
func (v *View) Chart() chart.Chart {
	return v.slot.Current()
}
