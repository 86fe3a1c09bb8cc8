package models

// UserType is the role a session was opened with.
type UserType string

const (
	UserTypeEmployee UserType = "Employee"
	UserTypeAdmin    UserType = "Admin"
)

// SessionStatusConnected is the only status a persisted session carries.
const SessionStatusConnected = "connected"

// Session is the identity persisted in the SessionStore after login.
// JWT is kept in memory only and never serialized.
type Session struct {
	Type     UserType `json:"type"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Status   string   `json:"status"`
	JWT      string   `json:"-"`
}

// Credentials is the body of the store's login call.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
