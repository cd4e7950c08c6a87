package web

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/brazucaphish/console/pkg/apiclient"
	"github.com/brazucaphish/console/pkg/chart"
	"github.com/brazucaphish/console/pkg/dashboard"
)

// dashboardPage builds the dashboard from the workspace state. The overview is fetched
// again when refresh is set or nothing was loaded yet.
func (s *Server) dashboardPage(ctx context.Context, v *visit, refresh bool) *DashboardPageData {
	d := v.ws.dashboard
	page := &DashboardPageData{PageData: s.buildPageData(v.lang, "dashboard.title", navDashboard)}

	if refresh || d.Overview() == nil {
		if _, err := d.Refresh(ctx, v.lang); err != nil {
			page.Alert = d.ShowError(v.lang, err)
		}
	}
	page.Overview = d.Overview()
	page.Links = d.Links()

	if detail := d.Detail(); detail != nil {
		page.Detail = detail
		page.Chart = s.renderChart(detail.Chart)
	}
	return page
}

// renderChart renders the detail chart as inline SVG. The SVG chart escapes its own labels.
func (s *Server) renderChart(c chart.Chart) template.HTML {
	if c == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		s.logger.Warn("Failed to render chart", "error", err)
		return ""
	}
	return template.HTML(buf.String())
}

// handleDashboard is a plain load, which also closes the generated links panel.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, v *visit) {
	v.ws.dashboard.DismissLinks()
	s.render(w, http.StatusOK, "dashboard", s.dashboardPage(r.Context(), v, true))
}

func (s *Server) handleNewCampaign(w http.ResponseWriter, r *http.Request, v *visit) {
	in := dashboard.NewCampaignInput{
		Name:        r.PostFormValue("campaignName"),
		Description: r.PostFormValue("description"),
		TargetURL:   r.PostFormValue("targetUrl"),
		Emails:      r.PostFormValue("emails"),
	}
	out, err := v.ws.dashboard.NewCampaign(r.Context(), v.lang, in)

	page := s.dashboardPage(r.Context(), v, false)
	if out.Alert != "" {
		page.Alert = out.Alert
	}
	if err != nil && out.Links == nil {
		page.Form = in
		page.FormOpen = true
	}
	s.render(w, http.StatusOK, "dashboard", page)
}

func (s *Server) handleCampaign(w http.ResponseWriter, r *http.Request, v *visit) {
	_, err := v.ws.dashboard.ShowCampaign(r.Context(), v.lang, apiclient.ID(r.PathValue("id")))

	page := s.dashboardPage(r.Context(), v, false)
	if err != nil {
		page.Alert = v.ws.dashboard.ShowError(v.lang, err)
	}
	s.render(w, http.StatusOK, "dashboard", page)
}

func (s *Server) handleTableAction(w http.ResponseWriter, r *http.Request, v *visit) {
	id := apiclient.ID(r.PostFormValue("id"))
	res, err := v.ws.dashboard.HandleTableAction(r.Context(), v.lang, r.PostFormValue("action"), id)
	if errors.Is(err, dashboard.ErrUnknownAction) {
		s.renderError(w, v.lang, http.StatusBadRequest, "error.bad_request")
		return
	}
	if res.Export != "" {
		http.Redirect(w, r, exportPath(res.Export), http.StatusSeeOther)
		return
	}

	page := s.dashboardPage(r.Context(), v, false)
	if err != nil {
		page.Alert = v.ws.dashboard.ShowError(v.lang, err)
	}
	s.render(w, http.StatusOK, "dashboard", page)
}

func exportPath(id apiclient.ID) string {
	return "/dashboard/campaigns/" + url.PathEscape(id.String()) + "/export"
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, v *visit) {
	id := apiclient.ID(r.PathValue("id"))
	s.sendExport(w, r, v, func(buf *bytes.Buffer) (string, error) {
		return v.ws.dashboard.Export(r.Context(), id, buf)
	})
}

// handleExportSelected exports the campaign open in the detail view; without one it
// goes back to the dashboard.
func (s *Server) handleExportSelected(w http.ResponseWriter, r *http.Request, v *visit) {
	s.sendExport(w, r, v, func(buf *bytes.Buffer) (string, error) {
		return v.ws.dashboard.ExportSelected(r.Context(), buf)
	})
}

// sendExport relays the backend CSV with its suggested filename. The body is buffered
// because the filename is only known once the backend has answered.
func (s *Server) sendExport(w http.ResponseWriter, r *http.Request, v *visit, export func(*bytes.Buffer) (string, error)) {
	var buf bytes.Buffer
	name, err := export(&buf)
	if errors.Is(err, dashboard.ErrNoSelection) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	if err != nil {
		page := s.dashboardPage(r.Context(), v, false)
		page.Alert = v.ws.dashboard.ShowError(v.lang, err)
		s.render(w, http.StatusOK, "dashboard", page)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
