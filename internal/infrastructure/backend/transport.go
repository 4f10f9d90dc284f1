package backend

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/loccar/loccar-web/internal/api/metrics"
	"github.com/loccar/loccar-web/internal/core/session"
)

// UnauthorizedFunc is called when the backend answers 401 to a request that
// carried the session's token.
type UnauthorizedFunc func(ctx context.Context, st *session.State)

type anonymousKey struct{}

// anonymous marks ctx so its requests go out without the session's token.
// Used by the credential endpoints, whose 401 means bad credentials rather
// than a rejected token.
func anonymous(ctx context.Context) context.Context {
	return context.WithValue(ctx, anonymousKey{}, true)
}

func isAnonymous(ctx context.Context) bool {
	v, _ := ctx.Value(anonymousKey{}).(bool)
	return v
}

// authTransport injects the bearer token of the session carried by the
// request context and reports token rejections.
type authTransport struct {
	base           http.RoundTripper
	onUnauthorized UnauthorizedFunc
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	st, hasSession := session.FromContext(req.Context())

	var token string
	if hasSession && !isAnonymous(req.Context()) {
		token = st.Token()
	}

	out := req.Clone(req.Context())
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}
	if out.Body != nil && out.Header.Get("Content-Type") == "" {
		out.Header.Set("Content-Type", "application/json")
	}
	out.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := t.base.RoundTrip(out)
	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	metrics.BackendRequestDuration.WithLabelValues(req.Method, status).Observe(time.Since(start).Seconds())

	if err == nil && resp.StatusCode == http.StatusUnauthorized && token != "" && t.onUnauthorized != nil {
		t.onUnauthorized(req.Context(), st)
	}
	return resp, err
}
