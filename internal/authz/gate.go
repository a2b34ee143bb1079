package authz

import (
	"errors"

	"github.com/SAP-F-2025/collaboration-service/internal/auth"
	"github.com/SAP-F-2025/collaboration-service/internal/models"
)

var (
	// ErrUnauthenticated means no usable identity was presented (401).
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means a valid identity failed the policy (403).
	ErrForbidden = errors.New("permission denied")
)

// Policy declares the access requirement for an operation. Route handlers
// attach one as a literal next to the route definition.
//
// When both AllowedRoles and MinRole are set, AllowedRoles wins: explicit
// enumeration takes precedence over the rank threshold.
type Policy struct {
	// MinRole admits any role ranking at or above it in the caller's workspace.
	MinRole models.UserRole
	// AllowedRoles admits exactly the listed roles.
	AllowedRoles []models.UserRole
	// Workspace restricts the operation to one workspace type.
	Workspace models.Workspace
}

// Check evaluates an identity against a policy.
//
// The evaluation order is load-bearing and covered by tests:
//
//  1. nil identity -> ErrUnauthenticated
//  2. workspace restriction mismatch -> ErrForbidden
//  3. admin -> allow (after the workspace check, so an admin of workspace A
//     never passes a gate restricted to workspace B)
//  4. allowed-set membership, when the set is non-empty
//  5. rank threshold, when MinRole is set
//  6. otherwise allow (authentication was the only requirement)
func Check(identity *auth.Identity, policy Policy) error {
	if identity == nil {
		return ErrUnauthenticated
	}

	if policy.Workspace != "" && identity.Workspace != policy.Workspace {
		return ErrForbidden
	}

	role := models.NormalizeRole(identity.Workspace, identity.Role)
	if role == models.RoleAdmin {
		return nil
	}

	if len(policy.AllowedRoles) > 0 {
		for _, allowed := range policy.AllowedRoles {
			if role == allowed {
				return nil
			}
		}
		return ErrForbidden
	}

	if policy.MinRole != "" {
		if models.Rank(identity.Workspace, role) >= models.Rank(identity.Workspace, policy.MinRole) {
			return nil
		}
		return ErrForbidden
	}

	return nil
}
