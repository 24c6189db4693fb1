package http

import (
	"net/http"
	"strings"
)

const bearerScheme = "Bearer "

// authTransport sets the Authorization header unless the request already carries one.
type authTransport struct {
	header    string
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.header == "" || req.Header.Get("Authorization") != "" {
		return t.transport.RoundTrip(req)
	}

	out := req.Clone(req.Context())
	out.Header.Set("Authorization", t.header)
	return t.transport.RoundTrip(out)
}

// WithAuthToken authenticates requests with a bearer token. A token that
// already includes the scheme is used as is.
func WithAuthToken(token string) HttpOpts {
	header := strings.TrimSpace(token)
	if header != "" && !strings.HasPrefix(header, bearerScheme) {
		header = bearerScheme + header
	}

	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{header: header, transport: rt}
	})
}
