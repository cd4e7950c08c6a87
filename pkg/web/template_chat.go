package web

const chatTemplate = `{{define "content"}}
<div class="card">
  <h1>{{.T "chat.heading"}}</h1>
  <div class="chat-log" id="chat-log">
    {{- range .State.Log}}
    {{- if eq .Sender "user"}}
    <div class="bubble bubble-user">{{.Text}}</div>
    {{- else}}
    <div class="bubble bubble-bot">{{.Text}}</div>
    {{- end}}
    {{- end}}
  </div>
  {{with .State.Error}}<div class="alert alert-error" role="alert">{{.}}</div>{{end}}
  <form method="post" action="/chatbot" class="chat-form">
    <input type="text" name="message" placeholder="{{.T "chat.placeholder"}}" autocomplete="off" autofocus>
    <button type="submit" class="btn">{{.T "chat.send"}}</button>
  </form>
</div>
{{end}}`
