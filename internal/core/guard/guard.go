package guard

import (
	"net/url"
	"strings"

	"github.com/loccar/loccar-web/internal/core/session"
)

// Outcome is the result of a guard check.
type Outcome int

const (
	Allow Outcome = iota
	RedirectLogin
	RedirectHome
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// Decision tells the navigation layer what to do with a request.
type Decision struct {
	Outcome  Outcome
	Location string
	Reason   string
}

// Allowed reports whether the request may proceed.
func (d Decision) Allowed() bool { return d.Outcome == Allow }

// Authenticate is the first check: without a session the user goes to the
// login page, carrying the requested URL.
func Authenticate(snap session.Snapshot, requested string) Decision {
	if snap.Authenticated {
		return Decision{Outcome: Allow}
	}
	return Decision{
		Outcome:  RedirectLogin,
		Location: LoginURL(requested),
		Reason:   "not authenticated",
	}
}

// Authorize is the second check and assumes an authenticated snapshot.
// Clients are confined to client-accessible sections, staff may go anywhere,
// and any other role is sent to the login page.
func Authorize(snap session.Snapshot, requested string) Decision {
	role := snap.Role()
	switch {
	case role.IsStaff():
		return Decision{Outcome: Allow}
	case role.IsClient():
		if ClientAccessible(requested) {
			return Decision{Outcome: Allow}
		}
		return Decision{Outcome: RedirectHome, Location: ClientHome, Reason: "client role not allowed"}
	default:
		return Decision{Outcome: RedirectLogin, Location: LoginPath, Reason: "unrecognized role " + role.String()}
	}
}

// Check runs Authenticate then Authorize.
func Check(snap session.Snapshot, requested string) Decision {
	if d := Authenticate(snap, requested); !d.Allowed() {
		return d
	}
	return Authorize(snap, requested)
}

// LoginURL builds the login redirect for requested.
func LoginURL(requested string) string {
	if requested == "" || requested == RootPath {
		return LoginPath
	}
	// '/' is legal in a query component and keeps the URL readable.
	return LoginPath + "?returnUrl=" + strings.ReplaceAll(url.QueryEscape(requested), "%2F", "/")
}

// AfterLogin picks where a freshly logged-in user goes: returnURL when it is
// a local protected page the role may enter, the role's default otherwise.
func AfterLogin(snap session.Snapshot, returnURL string) string {
	if isLocalPath(returnURL) {
		if _, ok := Lookup(returnURL); ok && Check(snap, returnURL).Allowed() {
			return returnURL
		}
	}
	return DefaultRoute(snap.Role())
}

func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.Contains(p, `\`)
}
