package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/brazucaphish/console/pkg/apiclient"
	"github.com/brazucaphish/console/pkg/apiclient/apitest"
	"github.com/brazucaphish/console/pkg/chart"
	"github.com/brazucaphish/console/pkg/i18n"
	"github.com/brazucaphish/console/pkg/shared/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	digests []Digest
	err     error
}

func (n *recordingNotifier) NotifyLinks(_ context.Context, _ i18n.Language, d Digest) error {
	n.digests = append(n.digests, d)
	return n.err
}

func newView(t *testing.T, opts Options) (*View, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	client, err := apiclient.New(apiclient.Options{BaseURL: srv.URL, Logger: logging.NewTestLogger()})
	require.NoError(t, err)
	opts.Logger = logging.NewTestLogger()
	return NewView(client, i18n.NewTranslator(), opts), srv
}

func statsBody(campaigns ...map[string]interface{}) map[string]interface{} {
	if campaigns == nil {
		campaigns = []map[string]interface{}{}
	}
	return map[string]interface{}{
		"total_campaigns": len(campaigns),
		"total_clicks":    40,
		"unique_victims":  10,
		"campaigns":       campaigns,
	}
}

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		unique, total int
		want          string
	}{
		{0, 0, "0%"},
		{5, 0, "0%"},
		{10, 40, "25%"},
		{1, 3, "33%"},
		{2, 3, "67%"},
		{1, 8, "13%"},
		{7, 7, "100%"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.unique, tt.total), func(t *testing.T) {
			assert.Equal(t, tt.want, SuccessRate(tt.unique, tt.total))
		})
	}
}

func TestParseEmails(t *testing.T) {
	assert.Empty(t, ParseEmails(""))
	assert.Empty(t, ParseEmails(" \n\t\r\n "))
	assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, ParseEmails("a@x.com\r\nb@x.com  \n\n c@x.com\t"))

	var many []string
	for i := 0; i < 150; i++ {
		many = append(many, fmt.Sprintf("user%d@x.com", i))
	}
	got := ParseEmails(strings.Join(many, "\n"))
	assert.Len(t, got, MaxEmails)
	assert.Equal(t, many[:100], got)
}

func TestRefresh(t *testing.T) {
	view, srv := newView(t, Options{})
	srv.Respond("GET /api/phish/stats", apitest.Response{Body: statsBody(
		map[string]interface{}{"id": 7, "name": "Q3 payroll", "created_at": "2024-09-01T10:00:00", "clicks": 30},
		map[string]interface{}{"id": 8, "name": "IT reset", "created_at": "not a date", "clicks": 10},
	)})

	ov, err := view.Refresh(context.Background(), i18n.Portuguese)
	require.NoError(t, err)
	assert.Equal(t, Cards{TotalCampaigns: "2", TotalClicks: "40", UniqueVictims: "10", SuccessRate: "25%"}, ov.Cards)
	assert.Equal(t, []Row{
		{ID: "7", Name: "Q3 payroll", CreatedAt: "01/09/2024", Clicks: 30},
		{ID: "8", Name: "IT reset", CreatedAt: "not a date", Clicks: 10},
	}, ov.Rows)
	assert.Equal(t, &ov, view.Overview())
}

func TestRefresh_EmptyTableAndZeroClicks(t *testing.T) {
	view, srv := newView(t, Options{})
	srv.Respond("GET /api/phish/stats", apitest.Response{Body: map[string]interface{}{"total_campaigns": 0, "total_clicks": 0, "unique_victims": 0}})

	ov, err := view.Refresh(context.Background(), i18n.Portuguese)
	require.NoError(t, err)
	assert.Equal(t, "0%", ov.Cards.SuccessRate)
	assert.Equal(t, []Row{{Name: "Nenhuma campanha", Empty: true}}, ov.Rows)
}

func TestRefresh_Error(t *testing.T) {
	view, srv := newView(t, Options{})
	srv.Respond("GET /api/phish/stats", apitest.Response{Status: http.StatusUnauthorized, Body: map[string]string{"message": "Token missing"}})

	_, err := view.Refresh(context.Background(), i18n.English)
	require.Error(t, err)
	assert.Equal(t, "Token missing", view.ShowError(i18n.English, err))
	assert.Nil(t, view.Overview())
}

func TestNewCampaign_NoEmailsSendsNothing(t *testing.T) {
	view, srv := newView(t, Options{})

	out, err := view.NewCampaign(context.Background(), i18n.Portuguese, NewCampaignInput{Name: "Q3", Emails: "  \n "})
	assert.ErrorIs(t, err, ErrNoEmails)
	assert.Equal(t, "Informe pelo menos um e-mail.", out.Alert)
	assert.Nil(t, out.Links)
	assert.Empty(t, srv.Requests())
}

func TestNewCampaign_Success(t *testing.T) {
	notifier := &recordingNotifier{}
	view, srv := newView(t, Options{Notifier: notifier})
	srv.Respond("POST /api/phish/generate", apitest.Response{Body: map[string]interface{}{
		"campaign_id": 12,
		"links": []map[string]string{
			{"email": "a@x.com", "link": "https://t.example/l/h1", "hash": "h1"},
			{"email": "b@x.com", "link": "https://t.example/l/h2", "hash": "h2"},
		},
		"expires_at": "2024-10-01T00:00:00",
	}})
	srv.Respond("GET /api/phish/stats", apitest.Response{Body: statsBody(
		map[string]interface{}{"id": 12, "name": "Q3", "created_at": "2024-09-01", "clicks": 0},
	)})

	var emails []string
	for i := 0; i < 150; i++ {
		emails = append(emails, fmt.Sprintf("user%d@x.com", i))
	}

	out, err := view.NewCampaign(context.Background(), i18n.English, NewCampaignInput{
		Name:        "  Q3  ",
		Description: "   ",
		TargetURL:   " https://intranet.example ",
		Emails:      strings.Join(emails, " \n"),
	})
	require.NoError(t, err)
	assert.Empty(t, out.Alert)
	assert.True(t, out.ResetForm)
	assert.True(t, out.CollapseForm)

	var body map[string]interface{}
	req, ok := srv.Last("/api/phish/generate")
	require.True(t, ok)
	require.NoError(t, req.JSON(&body))
	assert.Equal(t, "Q3", body["campaign_name"])
	assert.Equal(t, "https://intranet.example", body["target_url"])
	assert.NotContains(t, body, "description")
	assert.Len(t, body["emails"], 100)

	require.NotNil(t, out.Links)
	assert.Equal(t, apiclient.ID("12"), out.Links.CampaignID)
	assert.Equal(t, []string{"a@x.com › https://t.example/l/h1", "b@x.com › https://t.example/l/h2"}, out.Links.Lines)
	assert.Equal(t, "https://t.example/l/h1\nhttps://t.example/l/h2", out.Links.CopyAll)
	assert.Same(t, out.Links, view.Links())
	view.DismissLinks()
	assert.Nil(t, view.Links())

	require.NotNil(t, out.Overview, "the dashboard is refreshed")
	assert.Equal(t, 1, srv.Count(http.MethodGet, "/api/phish/stats"))

	require.Len(t, notifier.digests, 1)
	assert.Equal(t, "Q3", notifier.digests[0].CampaignName)
	assert.Equal(t, out.Links.CopyAll, notifier.digests[0].CopyAll)
}

func TestNewCampaign_NotifierFailureIsIgnored(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	view, srv := newView(t, Options{Notifier: notifier})
	srv.Respond("POST /api/phish/generate", apitest.Response{Body: map[string]interface{}{"campaign_id": 1, "links": []interface{}{}}})
	srv.Respond("GET /api/phish/stats", apitest.Response{Body: statsBody()})

	_, err := view.NewCampaign(context.Background(), i18n.English, NewCampaignInput{Emails: "a@x.com"})
	assert.NoError(t, err)
	assert.Len(t, notifier.digests, 1)
}

func TestNewCampaign_ErrorText(t *testing.T) {
	tests := []struct {
		name string
		resp apitest.Response
		want string
	}{
		{"error field", apitest.Response{Status: http.StatusBadRequest, Body: map[string]string{"error": "Invalid target", "message": "ignored"}}, "Invalid target"},
		{"message field", apitest.Response{Status: http.StatusBadRequest, Body: map[string]string{"message": "Quota exceeded"}}, "Quota exceeded"},
		{"status text", apitest.Response{Status: http.StatusBadGateway, Raw: "<html>"}, "Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, srv := newView(t, Options{})
			srv.Respond("POST /api/phish/generate", tt.resp)

			out, err := view.NewCampaign(context.Background(), i18n.English, NewCampaignInput{Emails: "a@x.com"})
			require.Error(t, err)
			assert.Equal(t, tt.want, out.Alert)
			assert.False(t, out.ResetForm, "a failed submission keeps the form")
			assert.Nil(t, view.Links())
			assert.Zero(t, srv.Count(http.MethodGet, "/api/phish/stats"))
		})
	}
}

func detailBody(name string, clicks ...int) apitest.Response {
	var timeline []map[string]interface{}
	for i, c := range clicks {
		timeline = append(timeline, map[string]interface{}{"date": fmt.Sprintf("2024-09-%02d", i+1), "clicks": c})
	}
	return apitest.Response{Body: map[string]interface{}{
		"campaign": map[string]interface{}{"name": name},
		"stats":    map[string]int{"total_clicks": 30, "unique_users": 8},
		"timeline": timeline,
	}}
}

func TestShowCampaign_OneLiveChart(t *testing.T) {
	var built []chart.Chart
	var liveAtCreation []int
	factory := func(s chart.Series) chart.Chart {
		live := 0
		for _, b := range built {
			if !b.Destroyed() {
				live++
			}
		}
		liveAtCreation = append(liveAtCreation, live)
		c := chart.NewASCII(s)
		built = append(built, c)
		return c
	}
	view, srv := newView(t, Options{Chart: factory})
	srv.Respond("GET /api/phish/stats?campaign_id=7", detailBody("Q3 payroll", 12, 18))
	srv.Respond("GET /api/phish/stats?campaign_id=8", detailBody("IT reset", 3))

	first, err := view.ShowCampaign(context.Background(), i18n.English, "7")
	require.NoError(t, err)
	assert.Equal(t, "Q3 payroll", first.Name)
	assert.Equal(t, []string{"Total clicks: 30", "Unique users: 8"}, first.Summary)

	second, err := view.ShowCampaign(context.Background(), i18n.English, "8")
	require.NoError(t, err)

	require.Len(t, built, 2)
	assert.Equal(t, []int{0, 0}, liveAtCreation, "the previous chart is gone before the next is built")
	assert.True(t, built[0].Destroyed())
	assert.False(t, built[1].Destroyed())
	assert.Same(t, second.Chart, view.Chart())
	assert.Same(t, second, view.Detail())

	id, ok := view.Selected()
	assert.True(t, ok)
	assert.Equal(t, apiclient.ID("8"), id)
}

func TestShowCampaign_SeriesAndExtras(t *testing.T) {
	var series chart.Series
	view, srv := newView(t, Options{Chart: func(s chart.Series) chart.Chart {
		series = s
		return chart.NewSVG(s)
	}})
	srv.Respond("GET /api/phish/stats?campaign_id=7", apitest.Response{Body: map[string]interface{}{
		"campaign": map[string]interface{}{"id": 7, "name": "Q3", "since": "2024-09-01", "until": "2024-09-30"},
		"stats":    map[string]int{"total_clicks": 30, "unique_users": 8, "unique_ips": 9},
		"timeline": []map[string]interface{}{{"date": "2024-09-01", "clicks": 12}, {"date": "2024-09-02", "clicks": 18}},
	}})

	d, err := view.ShowCampaign(context.Background(), i18n.Portuguese, "7")
	require.NoError(t, err)
	assert.Equal(t, chart.Series{
		Label:  "Clicks",
		Labels: []string{"2024-09-01", "2024-09-02"},
		Values: []float64{12, 18},
	}, series)
	assert.Equal(t, []string{
		"Total de cliques: 30",
		"Usuários únicos: 8",
		"IPs únicos: 9",
		"Período: 01/09/2024 – 30/09/2024",
	}, d.Summary)
}

func TestShowCampaign_FailureKeepsSelection(t *testing.T) {
	view, srv := newView(t, Options{})
	srv.Respond("GET /api/phish/stats?campaign_id=7", detailBody("Q3", 1))

	_, err := view.ShowCampaign(context.Background(), i18n.English, "7")
	require.NoError(t, err)
	live := view.Chart()

	_, err = view.ShowCampaign(context.Background(), i18n.English, "99")
	require.Error(t, err)
	assert.Equal(t, "not found", view.ShowError(i18n.English, err))

	id, _ := view.Selected()
	assert.Equal(t, apiclient.ID("7"), id, "selection changes only after a successful load")
	assert.Same(t, live, view.Chart())
	assert.False(t, live.Destroyed())
}

func TestExportSelected(t *testing.T) {
	view, srv := newView(t, Options{})
	srv.Respond("GET /api/phish/stats?campaign_id=7", detailBody("Q3", 1))
	srv.Respond("GET /api/phish/export/7", apitest.Response{Raw: "Email\na@x.com\n", ContentType: "text/csv"})

	var buf bytes.Buffer
	_, err := view.ExportSelected(context.Background(), &buf)
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Equal(t, "No campaign selected.", view.ShowError(i18n.English, err))
	assert.Empty(t, srv.Requests(), "nothing happens without a selection")

	_, err = view.ShowCampaign(context.Background(), i18n.English, "7")
	require.NoError(t, err)

	name, err := view.ExportSelected(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, "campaign_7.csv", name)
	assert.Equal(t, "Email\na@x.com\n", buf.String())
}

func TestHandleTableAction(t *testing.T) {
	view, srv := newView(t, Options{})
	srv.Respond("GET /api/phish/stats?campaign_id=7", detailBody("Q3", 1))

	res, err := view.HandleTableAction(context.Background(), i18n.English, ActionView, "7")
	require.NoError(t, err)
	require.NotNil(t, res.Detail)
	assert.Equal(t, "Q3", res.Detail.Name)

	res, err = view.HandleTableAction(context.Background(), i18n.English, ActionExport, "9")
	require.NoError(t, err)
	assert.Equal(t, apiclient.ID("9"), res.Export)
	assert.Nil(t, res.Detail)
	assert.Zero(t, srv.Count(http.MethodGet, "/api/phish/export/9"), "export is a navigation, not a fetch")

	_, err = view.HandleTableAction(context.Background(), i18n.English, "delete", "7")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		lang  i18n.Language
		value string
		want  string
	}{
		{i18n.English, "2024-09-01T10:00:00", "9/1/2024"},
		{i18n.Portuguese, "2024-09-01T10:00:00", "01/09/2024"},
		{i18n.English, "2024-09-01T10:00:00Z", "9/1/2024"},
		{i18n.English, "2024-09-01 10:00:00", "9/1/2024"},
		{i18n.English, "Sun, 01 Sep 2024 10:00:00 GMT", "9/1/2024"},
		{i18n.English, "2024-09-01", "9/1/2024"},
		{i18n.English, "yesterday", "yesterday"},
		{i18n.English, "", ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.lang)+"/"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.lang, tt.value))
		})
	}
}
