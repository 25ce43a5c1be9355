package domain

import "errors"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidInput = errors.New("invalid input")

// ErrStorage marks a failure of the backing dataset file. Fatal during
// bootstrap; maps to a retryable 503 at request time.
var ErrStorage = errors.New("storage unavailable")

// User models an account in the system. The password hash never crosses the
// JSON boundary of the API: it is persisted through the store's own records
// and only the login flow reads it back.
type User struct {
	ID                     string `json:"id"`
	Username               string `json:"username"`
	PasswordHash           string `json:"-"`
	Role                   string `json:"role"`
	DefaultPasswordChanged bool   `json:"default_password_changed"`
}

// Sanitized returns a copy with the password hash cleared, safe to hand to
// any caller outside the credential-verification path.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
