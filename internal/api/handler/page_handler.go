package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the portal's server-rendered shells. The pages are
// deliberately thin: they load, call the JSON API with the session cookie,
// and render client side.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

var loginPage = template.Must(template.New("login").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Sign in</title></head>
<body>
<h1>Sign in</h1>
<form method="post" action="/api/auth/login" id="login-form">
  <input type="hidden" name="redirect" value="{{.Redirect}}">
  <label>Username <input name="username" autocomplete="username"></label>
  <label>Password <input name="password" type="password" autocomplete="current-password"></label>
  <button type="submit">Sign in</button>
</form>
<script src="/static/login.js" defer></script>
</body>
</html>
`))

// Login renders the sign-in page. The optional redirect query parameter is
// echoed into the form so a successful login can return to the page the
// visitor originally asked for.
func (h *PageHandler) Login(c echo.Context) error {
	var buf bytes.Buffer
	if err := loginPage.Execute(&buf, struct{ Redirect string }{Redirect: c.QueryParam("redirect")}); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// AdminDashboard renders the admin shell.
func (h *PageHandler) AdminDashboard(c echo.Context) error {
	return c.HTML(http.StatusOK, `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Admin</title></head>
<body>
<h1>Admin dashboard</h1>
<div id="app" data-page="admin"></div>
<script src="/static/admin.js" defer></script>
</body>
</html>
`)
}

// ClientDashboard renders the client shell.
func (h *PageHandler) ClientDashboard(c echo.Context) error {
	return c.HTML(http.StatusOK, `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Reports</title></head>
<body>
<h1>Your reports</h1>
<div id="app" data-page="client"></div>
<script src="/static/client.js" defer></script>
</body>
</html>
`)
}
