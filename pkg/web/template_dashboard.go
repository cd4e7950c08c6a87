package web

const dashboardTemplate = `{{define "content"}}
{{with .Alert}}<div class="alert alert-error" role="alert">{{.}}</div>{{end}}

{{with .Overview}}
<section class="stats">
  <div class="card"><div class="stat-value" id="total-campaigns">{{.Cards.TotalCampaigns}}</div><div class="stat-label">{{$.T "dashboard.card.total_campaigns"}}</div></div>
  <div class="card"><div class="stat-value" id="total-clicks">{{.Cards.TotalClicks}}</div><div class="stat-label">{{$.T "dashboard.card.total_clicks"}}</div></div>
  <div class="card"><div class="stat-value" id="unique-victims">{{.Cards.UniqueVictims}}</div><div class="stat-label">{{$.T "dashboard.card.unique_victims"}}</div></div>
  <div class="card"><div class="stat-value" id="success-rate">{{.Cards.SuccessRate}}</div><div class="stat-label">{{$.T "dashboard.card.success_rate"}}</div></div>
</section>
{{end}}

<details class="card"{{if .FormOpen}} open{{end}}>
  <summary>{{.T "dashboard.new.heading"}}</summary>
  <form method="post" action="/dashboard/campaigns">
    <label>{{.T "dashboard.new.name"}}
      <input type="text" name="campaignName" value="{{.Form.Name}}">
    </label>
    <label>{{.T "dashboard.new.description"}}
      <input type="text" name="description" value="{{.Form.Description}}">
    </label>
    <label>{{.T "dashboard.new.target_url"}}
      <input type="url" name="targetUrl" value="{{.Form.TargetURL}}">
    </label>
    <label>{{.T "dashboard.new.emails"}}
      <textarea name="emails" rows="6">{{.Form.Emails}}</textarea>
    </label>
    <button type="submit" class="btn">{{.T "dashboard.new.submit"}}</button>
  </form>
</details>

{{with .Links}}
<section class="card" id="generated-links">
  <h2>{{$.T "dashboard.links.heading"}}</h2>
  {{with .CampaignID}}<p class="muted">{{$.Tf "dashboard.links.campaign_id" .}}</p>{{end}}
  <ul class="links-list">
    {{- range .Lines}}
    <li>{{.}}</li>
    {{- end}}
  </ul>
  {{with .ExpiresAt}}<p class="muted">{{$.Tf "dashboard.links.expires" .}}</p>{{end}}
  <textarea id="copy-all" rows="3" readonly>{{.CopyAll}}</textarea>
  <button type="button" class="btn btn-secondary" onclick="navigator.clipboard.writeText(document.getElementById('copy-all').value)">{{$.T "dashboard.links.copy_all"}}</button>
  <a class="btn btn-secondary" href="/dashboard">{{$.T "dashboard.links.close"}}</a>
</section>
{{end}}

{{with .Overview}}
<section class="card">
  <table id="campaigns">
    <thead>
      <tr><th>{{$.T "dashboard.table.name"}}</th><th>{{$.T "dashboard.table.created"}}</th><th>{{$.T "dashboard.table.clicks"}}</th><th>{{$.T "dashboard.table.actions"}}</th></tr>
    </thead>
    <tbody>
      {{- range .Rows}}
      {{- if .Empty}}
      <tr><td colspan="4" class="empty">{{.Name}}</td></tr>
      {{- else}}
      <tr>
        <td>{{.Name}}</td>
        <td>{{.CreatedAt}}</td>
        <td>{{.Clicks}}</td>
        <td>
          <form method="post" action="/dashboard/table">
            <input type="hidden" name="id" value="{{.ID}}">
            <button type="submit" name="action" value="view" class="btn btn-secondary">{{$.T "dashboard.table.view"}}</button>
            <button type="submit" name="action" value="export" class="btn btn-secondary">{{$.T "dashboard.table.export"}}</button>
          </form>
        </td>
      </tr>
      {{- end}}
      {{- end}}
    </tbody>
  </table>
</section>
{{end}}

{{with .Detail}}
<section class="card" id="campaign-detail">
  <h2>{{.Name}}</h2>
  <ul>
    {{- range .Summary}}
    <li>{{.}}</li>
    {{- end}}
  </ul>
  {{$.Chart}}
  <a href="/dashboard/export" class="btn">{{$.T "dashboard.detail.export"}}</a>
</section>
{{end}}
{{end}}`
