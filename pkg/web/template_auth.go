package web

const displayPartial = `{{with .Display.Error}}<div class="alert alert-error" role="alert">{{.}}</div>{{end}}
    {{with .Display.Success}}<div class="alert alert-success" role="status">{{.}}</div>{{end}}`

const loginTemplate = `{{define "content"}}
<div class="narrow">
  <div class="card">
    <h1>{{.T "login.heading"}}</h1>
    ` + displayPartial + `
    <form method="post" action="/login">
      <label>{{.T "login.email"}}
        <input type="email" name="email" value="{{.Email}}" required autofocus>
      </label>
      <label>{{.T "login.password"}}
        <input type="password" name="password" required>
      </label>
      <button type="submit" class="btn">{{.T "login.submit"}}</button>
    </form>
    <p class="muted">{{.T "login.no_account"}} <a href="/register">{{.T "nav.register"}}</a></p>
  </div>
</div>
{{end}}`

const registerTemplate = `{{define "content"}}
<div class="narrow">
  <div class="card">
    <h1>{{.T "register.heading"}}</h1>
    ` + displayPartial + `
    <form method="post" action="/register">
      <label>{{.T "register.given_name"}}
        <input type="text" name="givenName" value="{{.GivenName}}" required autofocus>
      </label>
      <label>{{.T "register.email"}}
        <input type="email" name="email" value="{{.Email}}" required>
      </label>
      <label>{{.T "register.password"}}
        <input type="password" name="password" required>
      </label>
      <label>{{.T "register.confirm_password"}}
        <input type="password" name="confirmPassword" required>
      </label>
      <button type="submit" class="btn">{{.T "register.submit"}}</button>
    </form>
    <p class="muted">{{.T "register.have_account"}} <a href="/login">{{.T "nav.login"}}</a></p>
  </div>
</div>
{{end}}`

const confirmTemplate = `{{define "content"}}
<div class="narrow">
  <div class="card">
    <h1>{{.T "confirm.heading"}}</h1>
    ` + displayPartial + `
    <form method="post" action="/confirm">
      <label>{{.T "confirm.email"}}
        <input type="email" name="email" value="{{.Email}}" required>
      </label>
      <label>{{.T "confirm.code"}}
        <input type="text" name="confirmationCode" value="{{.Code}}" required autofocus>
      </label>
      <button type="submit" class="btn">{{.T "confirm.submit"}}</button>
    </form>
  </div>
</div>
{{end}}`
