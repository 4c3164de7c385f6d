package identity

import "session-booking/internal/pkg/errs"

var ErrInvalidRole = errs.NewKind(errs.ErrValidation, "invalid role")

type Role string

const (
	RoleGuest    Role = "guest"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

var roleHierarchy = map[Role]int{
	RoleGuest:    1,
	RoleOperator: 2,
	RoleAdmin:    3,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := roleHierarchy[r]
	return ok
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// AtLeast reports whether r ranks at or above min.
func (r Role) AtLeast(min Role) bool {
	have, ok := roleHierarchy[r]
	want, minOK := roleHierarchy[min]
	return ok && minOK && have >= want
}

// Principal is the caller as asserted by the external identity provider.
type Principal struct {
	GuestRef string
	Role     Role
}
