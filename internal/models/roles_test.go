package models

import "testing"

func TestRankStrictlyIncreasing(t *testing.T) {
	cases := []struct {
		workspace Workspace
		order     []UserRole
	}{
		{WorkspaceEducational, []UserRole{RoleStudent, RoleTA, RoleInstructor, RoleCoordinator, RolePrincipal}},
		{WorkspaceProfessional, []UserRole{RoleMember, RoleLead, RoleManager, RoleOrgAdmin}},
	}

	for _, tc := range cases {
		prev := 0
		for _, role := range tc.order {
			rank := Rank(tc.workspace, role)
			if rank <= prev {
				t.Errorf("Rank(%s, %s) = %d, want > %d", tc.workspace, role, rank, prev)
			}
			prev = rank
		}
	}
}

func TestRankAdmin(t *testing.T) {
	edu := Rank(WorkspaceEducational, RoleAdmin)
	pro := Rank(WorkspaceProfessional, RoleAdmin)
	if edu != pro {
		t.Fatalf("admin rank differs across workspaces: %d vs %d", edu, pro)
	}

	for _, role := range []UserRole{RolePrincipal, RoleOrgAdmin} {
		for _, ws := range []Workspace{WorkspaceEducational, WorkspaceProfessional} {
			if Rank(ws, role) >= edu {
				t.Errorf("Rank(%s, %s) = %d, want below admin rank %d", ws, role, Rank(ws, role), edu)
			}
		}
	}
}

func TestRankUnknownRole(t *testing.T) {
	cases := []struct {
		workspace Workspace
		role      UserRole
	}{
		{WorkspaceEducational, "wizard"},
		{WorkspaceEducational, RoleMember},    // professional role in educational workspace
		{WorkspaceProfessional, RoleStudent},  // educational role in professional workspace
		{"galactic", RoleStudent},             // unknown workspace
		{WorkspaceProfessional, ""},
	}

	for _, tc := range cases {
		if rank := Rank(tc.workspace, tc.role); rank != 0 {
			t.Errorf("Rank(%s, %q) = %d, want 0", tc.workspace, tc.role, rank)
		}
	}
}

func TestNormalizeRole(t *testing.T) {
	if got := NormalizeRole(WorkspaceProfessional, "professional"); got != RoleMember {
		t.Errorf("NormalizeRole(professional, professional) = %s, want member", got)
	}
	if got := NormalizeRole(WorkspaceEducational, "educational"); got != RoleStudent {
		t.Errorf("NormalizeRole(educational, educational) = %s, want student", got)
	}
	// Legacy token of the wrong workspace stays untouched (and ranks 0).
	if got := NormalizeRole(WorkspaceEducational, "professional"); got != "professional" {
		t.Errorf("NormalizeRole(educational, professional) = %s, want professional", got)
	}
	if got := NormalizeRole(WorkspaceEducational, RoleInstructor); got != RoleInstructor {
		t.Errorf("NormalizeRole should not touch canonical roles, got %s", got)
	}
}
