package auth

import "fmt"

// Role is the access level carried in the token's role claim.
type Role string

const (
	RoleEditor   Role = "editor"
	RoleReviewer Role = "reviewer"
	RoleAuditor  Role = "auditor"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleEditor, RoleReviewer, RoleAuditor, RoleAdmin:
		return true
	}
	return false
}

// ParseRole validates a role read from a token or the command line.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
