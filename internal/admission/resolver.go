package admission

import (
	"context"
	"fmt"

	"asset-service/internal/auth"
)

// PolicyKind selects one of the four access shapes used by the handlers.
type PolicyKind int

const (
	PolicyAdminOnly PolicyKind = iota
	PolicySelfOrAdmin
	PolicyOwnedEmployeeOrAdmin
	PolicyOwnedDeviceOrAdmin
)

// Policy binds an access shape to the resource instance it targets.
type Policy struct {
	Kind       PolicyKind
	AccountID  int
	EmployeeID int
	DeviceID   int
}

func AdminOnly() Policy {
	return Policy{Kind: PolicyAdminOnly}
}

func SelfOrAdmin(accountID int) Policy {
	return Policy{Kind: PolicySelfOrAdmin, AccountID: accountID}
}

func OwnedEmployeeOrAdmin(employeeID int) Policy {
	return Policy{Kind: PolicyOwnedEmployeeOrAdmin, EmployeeID: employeeID}
}

func OwnedDeviceOrAdmin(deviceID int) Policy {
	return Policy{Kind: PolicyOwnedDeviceOrAdmin, DeviceID: deviceID}
}

// AssignmentLookup resolves the ownership fact for device policies: whether
// an employee currently holds a device (an assignment with no return date).
// Implemented by the assignment repository; the resolver performs no I/O of
// its own.
type AssignmentLookup interface {
	IsActivelyAssigned(ctx context.Context, employeeID, deviceID int) (bool, error)
}

// Resolver decides whether a Principal may act on a resource instance.
// Ownership facts are computed fresh per request and never cached: the
// underlying relationships can change between requests.
type Resolver struct {
	assignments AssignmentLookup
}

func NewResolver(assignments AssignmentLookup) *Resolver {
	if assignments == nil {
		panic(errRulesetNilAssignmentFmt)
	}
	return &Resolver{assignments: assignments}
}

// Resolve produces the access verdict for one principal/policy pair.
// Unauthenticated (identity absent) and Forbidden (identity resolved but
// insufficient) are distinct reasons; callers map them to 401 and 403.
func (r *Resolver) Resolve(ctx context.Context, principal *auth.Principal, policy Policy) Verdict {
	if principal == nil {
		return Denied(ReasonUnauthenticated, msgNotAuthenticated)
	}

	if principal.IsAdmin() {
		return Admitted()
	}

	switch policy.Kind {
	case PolicyAdminOnly:
		return Denied(ReasonForbidden, msgInsufficientPrivilege)

	case PolicySelfOrAdmin:
		if principal.AccountID == policy.AccountID {
			return Admitted()
		}
		return Denied(ReasonForbidden, msgInsufficientPrivilege)

	case PolicyOwnedEmployeeOrAdmin:
		if principal.EmployeeID != nil && *principal.EmployeeID == policy.EmployeeID {
			return Admitted()
		}
		return Denied(ReasonForbidden, msgInsufficientPrivilege)

	case PolicyOwnedDeviceOrAdmin:
		if principal.EmployeeID == nil {
			return Denied(ReasonForbidden, msgNoEmployeeLink)
		}
		assigned, err := r.assignments.IsActivelyAssigned(ctx, *principal.EmployeeID, policy.DeviceID)
		if err != nil {
			return Denied(ReasonLookupFailure, msgAssignmentLookupFailed)
		}
		if !assigned {
			return Denied(ReasonForbidden, msgInsufficientPrivilege)
		}
		return Admitted()

	default:
		return Denied(ReasonForbidden, fmt.Sprintf("unknown policy kind: %d", policy.Kind))
	}
}
