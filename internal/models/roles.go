package models

// Workspace is the top-level tenancy discriminator. It scopes which role
// enumeration applies; rank numbers are never comparable across workspaces.
type Workspace string

const (
	WorkspaceEducational  Workspace = "educational"
	WorkspaceProfessional Workspace = "professional"
)

func (w Workspace) Valid() bool {
	return w == WorkspaceEducational || w == WorkspaceProfessional
}

type UserRole string
type Role = UserRole // Alias for compatibility

const (
	// Educational workspace roles, lowest rank first.
	RoleStudent     UserRole = "student"
	RoleTA          UserRole = "ta"
	RoleInstructor  UserRole = "instructor"
	RoleCoordinator UserRole = "coordinator"
	RolePrincipal   UserRole = "principal"

	// Professional workspace roles, lowest rank first.
	RoleMember   UserRole = "member"
	RoleLead     UserRole = "lead"
	RoleManager  UserRole = "manager"
	RoleOrgAdmin UserRole = "org_admin"

	// RoleAdmin is the cross-workspace superuser. It ranks above every role
	// in both workspaces and satisfies any role check, but it does not
	// override a workspace restriction.
	RoleAdmin UserRole = "admin"
)

// AdminRank exceeds the highest rank of either workspace enumeration.
const AdminRank = 100

var educationalRanks = map[UserRole]int{
	RoleStudent:     1,
	RoleTA:          2,
	RoleInstructor:  3,
	RoleCoordinator: 4,
	RolePrincipal:   5,
}

var professionalRanks = map[UserRole]int{
	RoleMember:   1,
	RoleLead:     2,
	RoleManager:  3,
	RoleOrgAdmin: 4,
}

// Rank returns the ordering of a role within its workspace. A role that is
// unknown in the given workspace ranks 0, which no policy threshold accepts.
// The function is total: every input yields an integer.
func Rank(workspace Workspace, role UserRole) int {
	if role == RoleAdmin {
		return AdminRank
	}
	switch workspace {
	case WorkspaceEducational:
		return educationalRanks[role]
	case WorkspaceProfessional:
		return professionalRanks[role]
	}
	return 0
}

// NormalizeRole maps legacy role tokens onto the canonical enumeration.
// Accounts created before roles were split per workspace carry the bare
// workspace name as their role; those map to the lowest rank of that
// workspace. This is a one-way migration shim, not an alias system.
func NormalizeRole(workspace Workspace, role UserRole) UserRole {
	switch {
	case role == UserRole(WorkspaceProfessional) && workspace == WorkspaceProfessional:
		return RoleMember
	case role == UserRole(WorkspaceEducational) && workspace == WorkspaceEducational:
		return RoleStudent
	}
	return role
}

// DefaultRole is the role assigned at registration when none is provisioned.
func DefaultRole(workspace Workspace) UserRole {
	if workspace == WorkspaceProfessional {
		return RoleMember
	}
	return RoleStudent
}
