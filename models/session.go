package models

// Session is the terminal client's signed-in state. It is persisted sealed
// in the local database, never in plain text.
type Session struct {
	Token       string `json:"token"`
	UserID      int64  `json:"userId"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
}

// NewSession builds the session returned by a successful authentication.
func NewSession(resp AuthResponse) Session {
	return Session{
		Token:       resp.Token,
		UserID:      resp.User.ID,
		Username:    resp.User.Username,
		DisplayName: resp.User.DisplayName,
		IsAdmin:     resp.User.IsAdmin,
	}
}

// Valid reports whether s carries a token and a user.
func (s Session) Valid() bool {
	return s.Token != "" && s.UserID > 0
}

// Name is what the client shows for the signed-in user.
func (s Session) Name() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.Username
}
