package domain

// Session is the client-held record of whether a user is logged in and who
// they are. User is only ever set together with Token.
type Session struct {
	Token string `json:"-"`
	User  *User  `json:"user,omitempty"`
}

// Authenticated reports whether the session holds a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Normalize enforces the token/user invariant.
func (s Session) Normalize() Session {
	if s.Token == "" {
		s.User = nil
	}
	return s
}
