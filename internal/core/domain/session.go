package domain

// Session is the portal-held authentication state for one browser session.
// Invariant after every store mutation: Authenticated == (User != nil &&
// Token != "").
type Session struct {
	User          *User  `json:"user"`
	Token         string `json:"token"`
	Authenticated bool   `json:"authenticated"`
}

// EmptySession returns the zero session state used before login and after
// logout.
func EmptySession() Session {
	return Session{}
}

// Role returns the session user's role, or the empty role when nobody is
// signed in.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Tipo
}
