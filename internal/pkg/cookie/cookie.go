// Package cookie serializes and parses HTTP cookies and defines the portal's
// session cookie shape. It deals only in header strings; everything
// transport-side (picking the response to write to) stays with the caller.
package cookie

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SessionCookieName is the name of the portal's session cookie.
const SessionCookieName = "session"

// Attributes controls the cookie's directives. Zero values omit the
// corresponding directive, except HTTPOnly and Secure which simply render
// their flags when true.
type Attributes struct {
	MaxAge   int
	Domain   string
	Path     string
	Expires  time.Time
	HTTPOnly bool
	Secure   bool
	SameSite string // "lax", "strict" or "none"
}

// Serialize renders a Set-Cookie header value. The cookie value is
// url-encoded so opaque ids survive any characterset.
func Serialize(name, value string, attrs Attributes) string {
	parts := []string{name + "=" + url.QueryEscape(value)}
	if attrs.MaxAge != 0 {
		parts = append(parts, "Max-Age="+strconv.Itoa(attrs.MaxAge))
	}
	if attrs.Domain != "" {
		parts = append(parts, "Domain="+attrs.Domain)
	}
	if attrs.Path != "" {
		parts = append(parts, "Path="+attrs.Path)
	}
	if !attrs.Expires.IsZero() {
		parts = append(parts, "Expires="+attrs.Expires.UTC().Format(http.TimeFormat))
	}
	if attrs.HTTPOnly {
		parts = append(parts, "HttpOnly")
	}
	if attrs.Secure {
		parts = append(parts, "Secure")
	}
	if attrs.SameSite != "" {
		parts = append(parts, "SameSite="+sameSiteLabel(attrs.SameSite))
	}
	return strings.Join(parts, "; ")
}

// Parse extracts name=value pairs from a Cookie request header. Malformed
// fragments are skipped; values failing url-decoding are kept raw.
func Parse(header string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok || name == "" {
			continue
		}
		if decoded, err := url.QueryUnescape(value); err == nil {
			value = decoded
		}
		out[name] = value
	}
	return out
}

// Codec builds the portal's session cookies with fixed security attributes:
// always HttpOnly, SameSite=Lax, Path=/; Secure outside local development.
type Codec struct {
	TTL    time.Duration
	Secure bool
	Domain string
}

// Session renders the Set-Cookie header carrying a session id, with Max-Age
// equal to the session lifetime.
func (c Codec) Session(id string) string {
	return Serialize(SessionCookieName, id, Attributes{
		MaxAge:   int(math.Ceil(c.TTL.Seconds())),
		Domain:   c.Domain,
		Path:     "/",
		HTTPOnly: true,
		Secure:   c.Secure,
		SameSite: "lax",
	})
}

// Blank renders the deletion cookie: empty value, immediately-past expiry.
// Written at logout and whenever an invalid session cookie is presented, so
// the browser state is cleared even if the server-side session was already
// gone.
func (c Codec) Blank() string {
	return Serialize(SessionCookieName, "", Attributes{
		Domain:   c.Domain,
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   c.Secure,
		SameSite: "lax",
	})
}

func sameSiteLabel(s string) string {
	switch strings.ToLower(s) {
	case "strict":
		return "Strict"
	case "none":
		return "None"
	default:
		return "Lax"
	}
}
