package termui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/brazucaphish/console/pkg/dashboard"
	"github.com/brazucaphish/console/pkg/i18n"
	"github.com/olekukonko/tablewriter"
)

// Printer writes dashboard views as plain text tables.
type Printer struct {
	w          io.Writer
	translator *i18n.Translator
	lang       i18n.Language
}

// NewPrinter creates a printer for lang.
func NewPrinter(w io.Writer, translator *i18n.Translator, lang i18n.Language) *Printer {
	return &Printer{w: w, translator: translator, lang: lang}
}

func (p *Printer) t(key string) string {
	return p.translator.T(p.lang, key)
}

func (p *Printer) table() *tablewriter.Table {
	table := tablewriter.NewWriter(p.w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// Overview prints the stats cards and the campaign table.
func (p *Printer) Overview(ov dashboard.Overview) {
	cards := p.table()
	cards.SetHeader([]string{
		p.t("dashboard.card.total_campaigns"),
		p.t("dashboard.card.total_clicks"),
		p.t("dashboard.card.unique_victims"),
		p.t("dashboard.card.success_rate"),
	})
	cards.Append([]string{ov.Cards.TotalCampaigns, ov.Cards.TotalClicks, ov.Cards.UniqueVictims, ov.Cards.SuccessRate})
	cards.Render()

	campaigns := p.table()
	campaigns.SetHeader([]string{
		"ID",
		p.t("dashboard.table.name"),
		p.t("dashboard.table.created"),
		p.t("dashboard.table.clicks"),
	})
	for _, row := range ov.Rows {
		if row.Empty {
			campaigns.Append([]string{"", row.Name, "", ""})
			continue
		}
		campaigns.Append([]string{row.ID.String(), row.Name, row.CreatedAt, strconv.Itoa(row.Clicks)})
	}
	campaigns.Render()
}

// Links prints the links generated for a new campaign.
func (p *Printer) Links(links *dashboard.Links) {
	fmt.Fprintln(p.w, titleStyle.Render(p.t("dashboard.links.heading")))
	if links.CampaignID != "" {
		fmt.Fprintln(p.w, p.translator.Tf(p.lang, "dashboard.links.campaign_id", links.CampaignID))
	}
	for _, line := range links.Lines {
		fmt.Fprintln(p.w, line)
	}
	if links.ExpiresAt != "" {
		fmt.Fprintln(p.w, mutedStyle.Render(p.translator.Tf(p.lang, "dashboard.links.expires", links.ExpiresAt)))
	}
}

// Detail prints the campaign summary followed by its chart.
func (p *Printer) Detail(d *dashboard.Detail) error {
	fmt.Fprintln(p.w, titleStyle.Render(d.Name))
	for _, line := range d.Summary {
		fmt.Fprintln(p.w, line)
	}
	fmt.Fprintln(p.w)
	if d.Chart == nil {
		return nil
	}
	return d.Chart.Render(p.w)
}

// Success prints a success message.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, successStyle.Render(msg))
}

// Error prints an error message.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, errorStyle.Render(msg))
}

// Navigate prints the path a browser would have been sent to.
func (p *Printer) Navigate(path string) {
	fmt.Fprintln(p.w, mutedStyle.Render("→ "+path))
}
