package domain

// History is one append-only status transition record for a combo.
type History struct {
	ID         string
	ComboID    string
	FromStatus Status
	ToStatus   Status
	Notes      string
	ActorID    string
	ActorRole  Role
	CreatedAt  int64
}

// Role identifies the kind of actor driving an operation.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// ParseRole validates a role claim from a caller token.
func ParseRole(label string) (Role, bool) {
	switch Role(label) {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return Role(label), true
	}
	return "", false
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	AccountID string
	Role      Role
}

// transitionRoles maps each target status to the roles allowed to request
// it. Either side may cancel their own combo.
var transitionRoles = map[Status][]Role{
	StatusPreparing:       {RoleSeller},
	StatusDelivering:      {RoleSeller},
	StatusDelivered:       {RoleSeller},
	StatusCompleted:       {RoleCustomer},
	StatusCancelled:       {RoleCustomer, RoleSeller},
	StatusReturnRequested: {RoleCustomer},
	StatusReturnApproved:  {RoleSeller},
	StatusReturnRejected:  {RoleSeller},
	StatusReturned:        {RoleSeller},
}

// RolesFor returns the roles that may drive a transition to the given status.
func RolesFor(to Status) ([]Role, bool) {
	roles, ok := transitionRoles[to]
	return roles, ok
}
