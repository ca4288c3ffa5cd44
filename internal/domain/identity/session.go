package identity

// Profile is the full session record stored under the loginUser key
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      Role      `json:"role,omitempty"`
	LoginType LoginType `json:"loginType,omitempty"`
}

// LoginInfo is the minimal session record stored under the loginInfo
// key. Route guards read UserID from here.
type LoginInfo struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Session is the current login state. It spans three storage keys
// (loginUser, loginInfo, isLogin) that predate this service and are read
// by existing clients, so every login and logout path must move all
// three together.
type Session struct {
	Profile Profile
	Info    LoginInfo
	IsLogin bool
}

// NewSession builds a logged-in session for the given profile and token
func NewSession(profile Profile, token string) Session {
	return Session{
		Profile: profile,
		Info:    LoginInfo{Token: token, UserID: profile.ID},
		IsLogin: true,
	}
}

// IsAdmin reports whether the session belongs to the admin account.
// This mirrors the storefront's guarded-route check: a literal
// comparison of loginInfo.userId.
func (s *Session) IsAdmin() bool {
	return s.IsLogin && s.Info.UserID == AdminUserID
}
