package web

const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
{{- with .Refresh}}
<meta http-equiv="refresh" content="{{.Content}}">
{{- end}}
<title>{{.Title}} - {{.ServiceName}}</title>
<link rel="stylesheet" href="/assets/styles.css">
</head>
<body>
<header class="topbar">
  <span class="brand">{{.ServiceName}}</span>
  <nav>
    <a href="/login"{{if eq .Nav "login"}} class="active"{{end}}>{{.T "nav.login"}}</a>
    <a href="/register"{{if eq .Nav "register"}} class="active"{{end}}>{{.T "nav.register"}}</a>
    <a href="/chatbot"{{if eq .Nav "chatbot"}} class="active"{{end}}>{{.T "nav.chatbot"}}</a>
    <a href="/dashboard"{{if eq .Nav "dashboard"}} class="active"{{end}}>{{.T "nav.dashboard"}}</a>
  </nav>
  <span class="lang"><a href="?lang=en">EN</a> · <a href="?lang=pt">PT</a></span>
</header>
<main class="container">
{{template "content" .}}
</main>
</body>
</html>
{{end}}`

const errorTemplate = `{{define "content"}}
<div class="narrow">
  <div class="card">
    <h1>{{.Title}}</h1>
    <div class="alert alert-error">{{.Message}}</div>
    <a href="/login" class="btn">{{.T "error.home"}}</a>
  </div>
</div>
{{end}}`
