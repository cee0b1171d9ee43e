package admission

import (
	"context"
	"errors"
	"testing"

	"asset-service/internal/auth"

	"github.com/stretchr/testify/assert"
)

type stubAssignments struct {
	assigned bool
	err      error
	calls    int
}

func (s *stubAssignments) IsActivelyAssigned(ctx context.Context, employeeID, deviceID int) (bool, error) {
	s.calls++
	return s.assigned, s.err
}

func intPtr(v int) *int { return &v }

func adminPrincipal() *auth.Principal {
	return &auth.Principal{AccountID: 1, Username: "root", Role: auth.RoleAdmin}
}

func userPrincipal(accountID int, employeeID *int) *auth.Principal {
	return &auth.Principal{AccountID: accountID, Username: "user", Role: auth.RoleUser, EmployeeID: employeeID}
}

func TestResolver_NilPrincipalUnauthenticated(t *testing.T) {
	r := NewResolver(&stubAssignments{})

	verdict := r.Resolve(context.Background(), nil, AdminOnly())

	assert.False(t, verdict.Allowed)
	assert.Equal(t, ReasonUnauthenticated, verdict.Reason)
	assert.Equal(t, 401, verdict.StatusCode())
}

func TestResolver_AdminBypassesEverything(t *testing.T) {
	lookups := &stubAssignments{assigned: false}
	r := NewResolver(lookups)

	policies := []Policy{
		AdminOnly(),
		SelfOrAdmin(99),
		OwnedEmployeeOrAdmin(99),
		OwnedDeviceOrAdmin(99),
	}

	for _, policy := range policies {
		verdict := r.Resolve(context.Background(), adminPrincipal(), policy)
		assert.True(t, verdict.Allowed)
	}

	// Admin never triggers the assignment lookup.
	assert.Zero(t, lookups.calls)
}

func TestResolver_AdminOnlyForbidsUser(t *testing.T) {
	r := NewResolver(&stubAssignments{})

	verdict := r.Resolve(context.Background(), userPrincipal(2, nil), AdminOnly())

	assert.False(t, verdict.Allowed)
	assert.Equal(t, ReasonForbidden, verdict.Reason)
	assert.Equal(t, 403, verdict.StatusCode())
}

func TestResolver_SelfOrAdmin(t *testing.T) {
	r := NewResolver(&stubAssignments{})

	own := r.Resolve(context.Background(), userPrincipal(2, nil), SelfOrAdmin(2))
	assert.True(t, own.Allowed)

	other := r.Resolve(context.Background(), userPrincipal(2, nil), SelfOrAdmin(3))
	assert.False(t, other.Allowed)
	assert.Equal(t, ReasonForbidden, other.Reason)
}

func TestResolver_OwnedEmployeeOrAdmin(t *testing.T) {
	r := NewResolver(&stubAssignments{})

	own := r.Resolve(context.Background(), userPrincipal(2, intPtr(7)), OwnedEmployeeOrAdmin(7))
	assert.True(t, own.Allowed)

	other := r.Resolve(context.Background(), userPrincipal(2, intPtr(7)), OwnedEmployeeOrAdmin(8))
	assert.False(t, other.Allowed)

	unlinked := r.Resolve(context.Background(), userPrincipal(2, nil), OwnedEmployeeOrAdmin(7))
	assert.False(t, unlinked.Allowed)
}

func TestResolver_OwnedDeviceOrAdmin(t *testing.T) {
	tests := []struct {
		name     string
		assigned bool
		err      error
		want     bool
		reason   Reason
	}{
		{"actively assigned", true, nil, true, ""},
		{"not assigned", false, nil, false, ReasonForbidden},
		{"lookup error", false, errors.New("db down"), false, ReasonLookupFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(&stubAssignments{assigned: tt.assigned, err: tt.err})

			verdict := r.Resolve(context.Background(), userPrincipal(2, intPtr(7)), OwnedDeviceOrAdmin(4))

			assert.Equal(t, tt.want, verdict.Allowed)
			if !tt.want {
				assert.Equal(t, tt.reason, verdict.Reason)
			}
		})
	}
}

func TestResolver_OwnedDeviceWithoutEmployeeLink(t *testing.T) {
	lookups := &stubAssignments{assigned: true}
	r := NewResolver(lookups)

	verdict := r.Resolve(context.Background(), userPrincipal(2, nil), OwnedDeviceOrAdmin(4))

	assert.False(t, verdict.Allowed)
	assert.Equal(t, ReasonForbidden, verdict.Reason)
	assert.Zero(t, lookups.calls)
}

func TestResolver_LookupFailureMapsTo500(t *testing.T) {
	r := NewResolver(&stubAssignments{err: errors.New("timeout")})

	verdict := r.Resolve(context.Background(), userPrincipal(2, intPtr(7)), OwnedDeviceOrAdmin(4))

	assert.Equal(t, 500, verdict.StatusCode())
}
