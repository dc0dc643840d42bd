package entities

import "strings"

// Role is the coarse authorization level handed to the engine by the identity provider.
type Role string

const (
	RoleStandard   Role = "standard"
	RolePrivileged Role = "privileged"
)

// Actor identifies who performs an operation. The engine never authenticates;
// it only checks the role it is given.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func (a Actor) IsPrivileged() bool {
	return a.Role == RolePrivileged
}

func (a Actor) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ValidationError("actor id is required")
	}
	switch a.Role {
	case RoleStandard, RolePrivileged:
		return nil
	}
	return ValidationError("unknown actor role %q", a.Role)
}

// ParseRole maps a header value to a Role. Unknown or empty values fall back to standard.
func ParseRole(v string) Role {
	if Role(strings.ToLower(strings.TrimSpace(v))) == RolePrivileged {
		return RolePrivileged
	}
	return RoleStandard
}
