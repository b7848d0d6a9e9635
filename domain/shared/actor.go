package shared

// Role is the closed set of roles an authenticated caller can hold.
// It is resolved once at the API boundary and consumed only by the
// authorization guard; no other layer branches on it.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole maps a wire-level role string to a Role, defaulting to RoleUser
// for anything unrecognized.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// Actor identifies the caller of a core operation. It is transient: built
// per request from the resolved identity, passed explicitly into every
// application-service call, never persisted.
type Actor struct {
	ID   string
	Role Role
}

// IsZero reports whether the actor carries no identity.
func (a Actor) IsZero() bool {
	return a.ID == ""
}
