// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package authorization

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/swiftticket/swiftticket/lib/schema"
)

// expectedMatrix restates the permission table independently of the
// implementation so that a change to either side fails the test.
var expectedMatrix = map[Action][3]bool{
	//                          admin  pm     dev
	ActionCreateProject:        {true, true, false},
	ActionManageProjectMembers: {true, true, false},
	ActionCreateTicket:         {true, true, false},
	ActionEditTicket:           {true, true, false},
	ActionChangeTicketStatus:   {true, false, true},
	ActionReassignTicket:       {true, true, false},
	ActionUseAIFeatures:        {true, true, false},
}

func TestCanMatrixExhaustive(t *testing.T) {
	roles := schema.Roles()
	if len(roles) != 3 {
		t.Fatalf("Roles() = %v, want 3 roles", roles)
	}
	if len(Actions()) != len(expectedMatrix) {
		t.Fatalf("Actions() has %d entries, expected table has %d", len(Actions()), len(expectedMatrix))
	}

	for _, action := range Actions() {
		row, exists := expectedMatrix[action]
		if !exists {
			t.Errorf("action %q missing from expected table", action)
			continue
		}
		for column, role := range roles {
			if got := Can(role, action); got != row[column] {
				t.Errorf("Can(%s, %s) = %v, want %v", role, action, got, row[column])
			}
		}
	}
}

func TestPerActionPrimitivesMatchTable(t *testing.T) {
	primitives := map[Action]func(schema.Role) bool{
		ActionCreateProject:        CanCreateProject,
		ActionManageProjectMembers: CanManageProjectMembers,
		ActionCreateTicket:         CanCreateTicket,
		ActionEditTicket:           CanEditTicket,
		ActionChangeTicketStatus:   CanChangeTicketStatus,
		ActionReassignTicket:       CanReassignTicket,
		ActionUseAIFeatures:        CanUseAIFeatures,
	}
	if len(primitives) != len(Actions()) {
		t.Fatalf("%d primitives for %d actions", len(primitives), len(Actions()))
	}
	for action, primitive := range primitives {
		for _, role := range schema.Roles() {
			if primitive(role) != Can(role, action) {
				t.Errorf("primitive for %s disagrees with Can for role %s", action, role)
			}
		}
	}
}

func TestUnknownRoleAndActionDenied(t *testing.T) {
	for _, action := range Actions() {
		if Can("guest", action) {
			t.Errorf("Can(guest, %s) = true, want false", action)
		}
	}
	for _, role := range schema.Roles() {
		if Can(role, "delete_everything") {
			t.Errorf("Can(%s, delete_everything) = true, want false", role)
		}
	}
}

func TestDeveloperCannotCreateTicket(t *testing.T) {
	session := NewSession(schema.User{ID: 3, Username: "dev", Role: schema.RoleDeveloper})
	if session.Can(ActionCreateTicket) {
		t.Fatal("developer must not be able to create tickets")
	}
	err := session.Require(ActionCreateTicket)
	if !IsAuthorization(err) {
		t.Fatalf("Require(create_ticket) = %v, want *AuthorizationError", err)
	}
	var authorizationError *AuthorizationError
	if !errors.As(err, &authorizationError) {
		t.Fatal("errors.As failed")
	}
	if authorizationError.Role != schema.RoleDeveloper || authorizationError.Action != ActionCreateTicket {
		t.Errorf("error = %+v", authorizationError)
	}
	if !strings.Contains(err.Error(), "create_ticket") {
		t.Errorf("Error() = %q, want action name", err.Error())
	}
}

func TestSessionEvaluateReasons(t *testing.T) {
	var nilSession *Session
	tests := []struct {
		name         string
		session      *Session
		action       Action
		wantDecision Decision
		wantReason   DenyReason
	}{
		{
			name:         "admin_allowed",
			session:      NewSession(schema.User{ID: 1, Role: schema.RoleAdmin}),
			action:       ActionChangeTicketStatus,
			wantDecision: Allow,
		},
		{
			name:         "manager_lacks_status",
			session:      NewSession(schema.User{ID: 2, Role: schema.RoleProjectManager}),
			action:       ActionChangeTicketStatus,
			wantDecision: Deny,
			wantReason:   ReasonRoleLacksAction,
		},
		{
			name:         "unknown_role",
			session:      NewSession(schema.User{ID: 4, Role: "guest"}),
			action:       ActionCreateTicket,
			wantDecision: Deny,
			wantReason:   ReasonUnknownRole,
		},
		{
			name:         "unknown_action",
			session:      NewSession(schema.User{ID: 1, Role: schema.RoleAdmin}),
			action:       "archive_project",
			wantDecision: Deny,
			wantReason:   ReasonUnknownAction,
		},
		{
			name:         "no_session",
			session:      nilSession,
			action:       ActionCreateTicket,
			wantDecision: Deny,
			wantReason:   ReasonNoSession,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.session.Evaluate(test.action)
			if result.Decision != test.wantDecision {
				t.Errorf("Decision = %s, want %s", result.Decision, test.wantDecision)
			}
			if test.wantDecision == Deny && result.Reason != test.wantReason {
				t.Errorf("Reason = %s, want %s", result.Reason, test.wantReason)
			}
		})
	}
}

func TestRequireAllowsPermittedAction(t *testing.T) {
	session := NewSession(schema.User{ID: 3, Role: schema.RoleDeveloper})
	if err := session.Require(ActionChangeTicketStatus); err != nil {
		t.Errorf("Require(change_ticket_status) = %v, want nil", err)
	}
}

func TestIsAuthorizationThroughWrapping(t *testing.T) {
	inner := &AuthorizationError{Role: schema.RoleDeveloper, Action: ActionReassignTicket}
	wrapped := fmt.Errorf("reassigning ticket 4: %w", inner)
	if !IsAuthorization(wrapped) {
		t.Error("IsAuthorization should see through fmt.Errorf wrapping")
	}
	if IsAuthorization(errors.New("plain")) {
		t.Error("IsAuthorization(plain error) = true")
	}
}

func TestAssignableAndMemberCandidateRoles(t *testing.T) {
	for _, role := range AssignableRoles() {
		if !(schema.User{Role: role}).IsAssignable() {
			t.Errorf("assignable role %s rejected by User.IsAssignable", role)
		}
	}
	candidates := MemberCandidateRoles()
	if len(candidates) != 2 || candidates[0] != schema.RoleDeveloper || candidates[1] != schema.RoleProjectManager {
		t.Errorf("MemberCandidateRoles() = %v", candidates)
	}
}
