package models

// Role classifies what command surface a logged-in user is shown.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
	RoleUser    Role = "user"
)

// Credential is one row of the static credential table. PasswordHash is a
// bcrypt hash; plaintext passwords never leave the login prompt.
type Credential struct {
	Username     string
	PasswordHash string
	Role         Role
	Name         string
	Permissions  []string
}

// User is the session's view of an authenticated user. It carries no
// password material.
type User struct {
	Username    string   `json:"username"`
	Role        Role     `json:"role"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// HasPermission reports whether the user's permission set contains p.
func (u *User) HasPermission(p string) bool {
	for _, have := range u.Permissions {
		if have == p {
			return true
		}
	}
	return false
}
