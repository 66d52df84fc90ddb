// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/swiftticket/swiftticket/cmd/swiftticket/cli"
	"github.com/swiftticket/swiftticket/lib/schema"
)

const testToken = "test-token"

var (
	created = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	admin     = schema.User{ID: 1, Username: "root", FirstName: "Ada", LastName: "Admin", Role: schema.RoleAdmin}
	manager   = schema.User{ID: 2, Username: "pm", FirstName: "Pat", LastName: "Manager", Role: schema.RoleProjectManager}
	developer = schema.User{
		ID: 3, Username: "bob", FirstName: "Bob", LastName: "Builder", Role: schema.RoleDeveloper,
		Profile: &schema.Profile{ExpertiseAreas: []string{"frontend"}, CurrentWorkload: 2},
	}
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// fakeServer is an in-memory SwiftTicket API.
type fakeServer struct {
	mu        sync.Mutex
	me        schema.User
	project   schema.Project
	tickets   []schema.Ticket
	requests  []recordedRequest
	failStats bool
	failAI    bool
	server    *httptest.Server
}

func newFakeServer(t *testing.T, me schema.User) *fakeServer {
	t.Helper()
	project := schema.Project{
		ID: 1, Key: "API", Name: "Public API",
		CreatedBy: manager,
		Members:   []schema.User{manager, developer},
		CreatedAt: created,
	}
	fake := &fakeServer{
		me:      me,
		project: project,
		tickets: []schema.Ticket{
			{ID: 1, Title: "Login fails", Description: "500 on login", Type: schema.TypeBug, Priority: schema.PriorityHigh, Status: schema.StatusOpen, Project: project, CreatedBy: manager, CreatedAt: created, UpdatedAt: created},
			{ID: 2, Title: "Add export", Description: "CSV export", Type: schema.TypeFeature, Priority: schema.PriorityMedium, Status: schema.StatusInProgress, Project: project, CreatedBy: manager, AssignedTo: &developer, CreatedAt: created, UpdatedAt: created},
			{ID: 3, Title: "Docs", Description: "Write docs", Type: schema.TypeTask, Priority: schema.PriorityLow, Status: schema.StatusDone, Project: project, CreatedBy: admin, Summary: "Docs are written.", CreatedAt: created, UpdatedAt: created},
		},
	}
	fake.server = httptest.NewServer(fake)
	t.Cleanup(fake.server.Close)
	return fake
}

var ticketPathPattern = regexp.MustCompile(`^/api/tickets/(\d+)/(.*)$`)

func (fake *fakeServer) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	body, _ := io.ReadAll(request.Body)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.requests = append(fake.requests, recordedRequest{
		Method: request.Method,
		Path:   request.URL.Path,
		Query:  request.URL.RawQuery,
		Body:   string(body),
	})

	path := request.URL.Path
	if path != "/api/auth/login/" && request.Header.Get("Authorization") != "Bearer "+testToken {
		writeJSON(writer, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type"})
		return
	}

	route := request.Method + " " + path
	switch route {
	case "GET /api/auth/me/":
		writeJSON(writer, http.StatusOK, fake.me)
		return
	case "GET /api/auth/users/":
		writeJSON(writer, http.StatusOK, []schema.User{admin, manager, developer})
		return
	case "POST /api/auth/login/":
		var credentials schema.Credentials
		_ = json.Unmarshal(body, &credentials)
		if credentials.Password != "correct-horse" {
			writeJSON(writer, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
			return
		}
		writeJSON(writer, http.StatusOK, map[string]any{"access": testToken, "refresh": "refresh-token", "user": fake.me})
		return
	case "GET /api/tickets/":
		writeJSON(writer, http.StatusOK, fake.tickets)
		return
	case "POST /api/tickets/":
		var draft schema.TicketDraft
		_ = json.Unmarshal(body, &draft)
		ticket := schema.Ticket{
			ID: 100, Title: draft.Title, Description: draft.Description,
			Type: draft.Type, Priority: draft.Priority, Component: draft.Component,
			Status: schema.StatusOpen, Project: fake.project, CreatedBy: fake.me,
		}
		writeJSON(writer, http.StatusCreated, ticket)
		return
	case "POST /api/tickets/ai_classify/":
		if fake.failAI {
			writeJSON(writer, http.StatusServiceUnavailable, map[string]string{"error": "AI service unavailable"})
			return
		}
		writeJSON(writer, http.StatusOK, map[string]string{"type": "bug", "priority": "critical", "component": "quantum"})
		return
	case "GET /api/projects/":
		writeJSON(writer, http.StatusOK, []schema.Project{fake.project})
		return
	case "GET /api/projects/1/":
		writeJSON(writer, http.StatusOK, fake.project)
		return
	case "GET /api/projects/1/stats/":
		if fake.failStats {
			writeJSON(writer, http.StatusInternalServerError, map[string]string{"error": "stats unavailable"})
			return
		}
		writeJSON(writer, http.StatusOK, schema.ProjectStats{TotalTickets: 9, OpenTickets: 4, InProgressTickets: 3, CompletedTickets: 2})
		return
	case "POST /api/projects/1/add_member/", "POST /api/projects/1/remove_member/":
		writeJSON(writer, http.StatusOK, map[string]any{"message": "Membership updated", "project": fake.project})
		return
	case "GET /api/activities/", "GET /api/activities/recent/":
		writeJSON(writer, http.StatusOK, []schema.Activity{})
		return
	}

	match := ticketPathPattern.FindStringSubmatch(path)
	if match == nil {
		writeJSON(writer, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	ticketID, _ := strconv.Atoi(match[1])
	index := -1
	for position, ticket := range fake.tickets {
		if ticket.ID == ticketID {
			index = position
		}
	}
	if index < 0 {
		writeJSON(writer, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	ticket := &fake.tickets[index]

	switch request.Method + " " + match[2] {
	case "GET ":
		writeJSON(writer, http.StatusOK, ticket)
	case "PUT ":
		var fields map[string]json.RawMessage
		_ = json.Unmarshal(body, &fields)
		if raw, exists := fields["assigned_to_id"]; exists {
			if string(raw) == "null" {
				ticket.AssignedTo = nil
			} else {
				id, _ := strconv.Atoi(string(raw))
				for _, user := range []schema.User{admin, manager, developer} {
					if user.ID == id {
						assignee := user
						ticket.AssignedTo = &assignee
					}
				}
			}
		}
		if raw, exists := fields["priority"]; exists {
			_ = json.Unmarshal(raw, &ticket.Priority)
		}
		ticket.UpdatedAt = created.Add(time.Hour)
		writeJSON(writer, http.StatusOK, ticket)
	case "POST update_status/":
		var change schema.StatusChange
		_ = json.Unmarshal(body, &change)
		ticket.Status = change.Status
		ticket.UpdatedAt = created.Add(time.Hour)
		writeJSON(writer, http.StatusOK, ticket)
	case "POST ai_summarize/":
		if fake.failAI {
			writeJSON(writer, http.StatusInternalServerError, map[string]string{"error": "AI service unavailable"})
			return
		}
		writeJSON(writer, http.StatusOK, map[string]string{"summary": "Here is a summary of the ticket: Login returns 500.", "message": "ok"})
	case "POST ai_suggest_assignee/":
		writeJSON(writer, http.StatusOK, map[string]string{"suggested_assignee": "bob"})
	default:
		writeJSON(writer, http.StatusNotFound, map[string]string{"detail": "Not found."})
	}
}

func writeJSON(writer http.ResponseWriter, status int, value any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(value)
}

// writes returns the recorded non-GET requests.
func (fake *fakeServer) writes() []recordedRequest {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	var writes []recordedRequest
	for _, request := range fake.requests {
		if request.Method != http.MethodGet {
			writes = append(writes, request)
		}
	}
	return writes
}

func (fake *fakeServer) requested(method, path string) (recordedRequest, bool) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	for _, request := range fake.requests {
		if request.Method == method && request.Path == path {
			return request, true
		}
	}
	return recordedRequest{}, false
}

// writeTestConfig points the CLI at baseURL with plain output and an
// isolated session file, and returns the config path.
func writeTestConfig(t *testing.T, baseURL string) string {
	t.Helper()
	directory := t.TempDir()
	path := filepath.Join(directory, "swiftticket.yaml")
	content := fmt.Sprintf("server:\n  base_url: %s/api\n  timeout: 5s\nui:\n  color: never\n  width: 120\nlog:\n  level: error\n", baseURL)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv(cli.SessionFileEnvVar, filepath.Join(directory, "session.json"))
	t.Setenv("SWIFTTICKET_CONFIG", "")
	t.Setenv("SWIFTTICKET_TOKEN", testToken)
	return path
}

// execute runs the command tree and returns what it wrote to stdout.
func execute(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	original := os.Stdout
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = writer

	var buffer bytes.Buffer
	copied := make(chan struct{})
	go func() {
		io.Copy(&buffer, reader)
		close(copied)
	}()

	fullArgs := append([]string{"--config", configPath}, args...)
	runErr := Root().Execute(context.Background(), fullArgs)

	writer.Close()
	os.Stdout = original
	<-copied
	reader.Close()

	return buffer.String(), runErr
}

func TestTicketsListFilters(t *testing.T) {
	fake := newFakeServer(t, admin)
	configPath := writeTestConfig(t, fake.server.URL)

	output, err := execute(t, configPath, "tickets", "list", "--status", "open")
	if err != nil {
		t.Fatalf("tickets list: %v", err)
	}
	if !strings.Contains(output, "Login fails") || strings.Contains(output, "Add export") {
		t.Errorf("output should list only the open ticket:\n%s", output)
	}
	if !strings.Contains(output, "Showing 1 of 3 tickets") {
		t.Errorf("output missing filter summary:\n%s", output)
	}
}

func TestTicketsListJSON(t *testing.T) {
	fake := newFakeServer(t, developer)
	configPath := writeTestConfig(t, fake.server.URL)

	output, err := execute(t, configPath, "tickets", "list", "--assigned", "me", "--json")
	if err != nil {
		t.Fatalf("tickets list: %v", err)
	}
	var result ticketListResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decoding output %q: %v", output, err)
	}
	if result.Visible != 1 || result.Total != 3 {
		t.Errorf("visible/total = %d/%d, want 1/3", result.Visible, result.Total)
	}
	if len(result.Tickets) != 1 || result.Tickets[0].ID != 2 {
		t.Errorf("tickets = %+v, want only ticket 2", result.Tickets)
	}
}

func TestTicketsListRejectsUnknownStatus(t *testing.T) {
	fake := newFakeServer(t, admin)
	configPath := writeTestConfig(t, fake.server.URL)

	_, err := execute(t, configPath, "tickets", "list", "--status", "closed")
	if code := cli.ExitCodeFor(err); code != 2 {
		t.Errorf("exit code = %d (err %v), want 2", code, err)
	}
}

func TestTicketsStatusDeveloper(t *testing.T) {
	fake := newFakeServer(t, developer)
	configPath := writeTestConfig(t, fake.server.URL)

	output, err := execute(t, configPath, "tickets", "status", "API-2", "in_review")
	if err != nil {
		t.Fatalf("tickets status: %v", err)
	}
	request, found := fake.requested(http.MethodPost, "/api/tickets/2/update_status/")
	if !found {
		t.Fatal("no update_status request made")
	}
	if request.Body != `{"status":"in_review"}` {
		t.Errorf("body = %s, want in_review", request.Body)
	}
	if !strings.Contains(output, "API-2: In Progress -> In Review") {
		t.Errorf("output = %q", output)
	}
}

func TestTicketsStatusSameStatusMakesNoRequest(t *testing.T) {
	fake := newFakeServer(t, admin)
	configPath := writeTestConfig(t, fake.server.URL)

	output, err := execute(t, configPath, "tickets", "status", "1", "open")
	if err != nil {
		t.Fatalf("tickets status: %v", err)
	}
	if writes := fake.writes(); len(writes) != 0 {
		t.Errorf("writes = %+v, want none", writes)
	}
	if !strings.Contains(output, "already Open") {
		t.Errorf("output = %q", output)
	}
}

func TestTicketsStatusManagerForbiddenBeforeWrite(t *testing.T) {
	fake := newFakeServer(t, manager)
	configPath := writeTestConfig(t, fake.server.URL)

	_, err := execute(t, configPath, "tickets", "status", "1", "done")
	if code := cli.ExitCodeFor(err); code != 3 {
		t.Errorf("exit code = %d (err %v), want 3", code, err)
	}
	if writes := fake.writes(); len(writes) != 0 {
		t.Errorf("writes = %+v, want none", writes)
	}
	if _, found := fake.requested(http.MethodGet, "/api/auth/me/"); !found {
		t.Error("authorization check did not resolve the user")
	}
}

func TestTicketsCreateDeveloperForbidden(t *testing.T) {
	fake := newFakeServer(t, developer)
	configPath := writeTestConfig(t, fake.server.URL)

	_, err := execute(t, configPath, "tickets", "create", "--project", "1", "--title", "x", "--description", "y")
	if code := cli.ExitCodeFor(err); code != 3 {
		t.Errorf("exit code = %d (err %v), want 3", code, err)
	}
	if writes := fake.writes(); len(writes) != 0 {
		t.Errorf("writes = %+v, want none", writes)
	}
}

func TestTicketsCreateWithClassification(t *testing.T) {
	fake := newFakeServer(t, manager)
	configPath := writeTestConfig(t, fake.server.URL)

	output, err := execute(t, configPath, "tickets", "create",
		"--project", "1", "--title", "Crash", "--description", "App crashes", "--classify", "--priority", "low")
	if err != nil {
		t.Fatalf("tickets create: %v", err)
	}
	request, found := fake.requested(http.MethodPost, "/api/tickets/")
	if !found {
		t.Fatal("no create request made")
	}
	var sent map[string]any
	if err := json.Unmarshal([]byte(request.Body), &sent); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	// The classifier's type is applied, its unknown component dropped,
	// and the explicit --priority wins over its suggestion.
	if sent["ticket_type"] != "bug" || sent["priority"] != "low" || sent["component"] != "backend" {
		t.Errorf("sent = %v", sent)
	}
	if _, exists := sent["assigned_to_id"]; exists {
		t.Errorf("assigned_to_id sent for an unassigned draft: %v", sent)
	}
	if !strings.Contains(output, "Created API-100: Crash") {
		t.Errorf("output = %q", output)
	}
}

func TestTicketsAssignNoneSendsNull(t *testing.T) {
	fake := newFakeServer(t, admin)
	configPath := writeTestConfig(t, fake.server.URL)

	output, err := execute(t, configPath, "tickets", "assign", "2", "--none")
	if err != nil {
		t.Fatalf("tickets assign: %v", err)
	}
	request, found := fake.requested(http.MethodPut, "/api/tickets/2/")
	if !found {
		t.Fatal("no update request made")
	}
	if request.Body != `{"assigned_to_id":null}` {
		t.Errorf("body = %s, want explicit null", request.Body)
	}
	if !strings.Contains(output, "API-2 is now unassigned") {
		t.Errorf("output = %q", output)
	}
}

func TestTicketsAssignRejectsManagerAsAssignee(t *testing.T) {
	fake := newFakeServer(t, admin)
	configPath := writeTestConfig(t, fake.server.URL)

	_, err := execute(t, configPath, "tickets", "assign", "1", "--user", "2")
	if code := cli.ExitCodeFor(err); code != 2 {
		t.Errorf("exit code = %d (err %v), want 2", code, err)
	}
	if writes := fake.writes(); len(writes) != 0 {
		t.Errorf("writes = %+v, want none", writes)
	}
}

func TestTicketsCreateRejectsManagerAsAssignee(t *testing.T) {
	fake := newFakeServer(t, admin)
	configPath := writeTestConfig(t, fake.server.URL)

	_, err := execute(t, configPath, "tickets", "create",
		"--project", "1", "--title", "Crash", "--description", "App crashes", "--assignee", "2")
	if code := cli.ExitCodeFor(err); code != 2 {
		t.Errorf("exit code = %d (err %v), want 2", code, err)
	}
	if writes := fake.writes(); len(writes) != 0 {
		t.Errorf("writes = %+v, want none", writes)
	}
}

func TestTicketsCreateWithDeveloperAssignee(t *testing.T) {
	fake := newFakeServer(t, admin)
	configPath := writeTestConfig(t, fake.server.URL)

	if _, err := execute(t, configPath, "tickets", "create",
		"--project", "1", "--title", "Crash", "--description", "App crashes", "--assignee", "3"); err != nil {
		t.Fatalf("tickets create: %v", err)
	}
	request, found := fake.requested(http.MethodPost, "/api/tickets/")
	if !found || !strings.Contains(request.Body, `"assigned_to_id":3`) {
		t.Errorf("create request = %+v, found %v; want assigned_to_id 3", request, found)
	}
}

func TestTicketFlagHelpListsEveryValue(t *testing.T) {
	flagSets := map[string]*pflag.FlagSet{
		"create": cli.FlagsFromParams("create", &ticketCreateParams{}),
		"edit":   cli.FlagsFromParams("edit", &ticketEditParams{}),
	}
	for name, flagSet := range flagSets {
		typeUsage := flagSet.Lookup("type").Usage
		for _, ticketType := range schema.TicketTypes() {
			if !strings.Contains(typeUsage, string(ticketType)) {
				t.Errorf("%s --type help %q missing %s", name, typeUsage, ticketType)
			}
		}
		componentUsage := flagSet.Lookup("component").Usage
		for _, component := range schema.Components() {
			if !strings.Contains(componentUsage, string(component)) {
				t.Errorf("%s --component help %q missing %s", name, componentUsage, component)
			}
		}
		priorityUsage := flagSet.Lookup("priority").Usage
		for _, priority := range schema.Priorities() {
			if !strings.Contains(priorityUsage, string(priority)) {
				t.Errorf("%s --priority help %q missing %s", name, priorityUsage, priority)
			}
		}
	}
}

func TestTicketsAssignRequiresExactlyOneTarget(t *testing.T) {
	fake := newFakeServer(t, admin)
	configPath := writeTestConfig(t, fake.server.URL)

	for _, args := range [][]string{
		{"tickets", "assign", "1"},
		{"tickets", "assign", "1", "--user", "3", "--none"},
	} {
		_, err := execute(t, configPath, args...)
		if code := cli.ExitCodeFor(err); code != 2 {
			t.Errorf("%v: exit code = %d (err %v), want 2", args, code, err)
		}
	}
}

func TestTicketsEditSendsOnlyChangedFields(t *testing.T) {
	fake := newFakeServer(t, manager)
	configPath := writeTestConfig(t, fake.server.URL)

	if _, err := execute(t, configPath, "tickets", "edit", "1", "--priority", "critical"); err != nil {
		t.Fatalf("tickets edit: %v", err)
	}
	request, found := fake.requested(http.MethodPut, "/api/tickets/1/")
	if !found {
		t.Fatal("no update request made")
	}
	if request.Body != `{"priority":"critical"}` {
		t.Errorf("body = %s", request.Body)
	}
}

func TestTicketsSummarize(t *testing.T) {
	fake := newFakeServer(t, manager)
	configPath := writeTestConfig(t, fake.server.URL)

	output, err := execute(t, configPath, "tickets", "summarize", "1")
	if err != nil {
		t.Fatalf("tickets summarize: %v", err)
	}
	if !strings.Contains(output, "Login returns 500.") || strings.Contains(output, "Here is a summary") {
		t.Errorf("output = %q, want cleaned summary", output)
	}
}

func TestTicketsSummarizeKeepsExistingSummary(t *testing.T) {
	fake := newFakeServer(t, manager)
	configPath := writeTestConfig(t, fake.server.URL)

	_, err := execute(t, configPath, "tickets", "summarize", "3")
	if code := cli.ExitCodeFor(err); code != 2 {
		t.Errorf("exit code = %d (err %v), want 2", code, err)
	}
	if _, found := fake.requested(http.MethodPost, "/api/tickets/3/ai_summarize/"); found {
		t.Error("summarize request made for a ticket that already has a summary")
	}
}

func TestTicketsSummarizeFailureIsUnavailable(t *testing.T) {
	fake := newFakeServer(t, manager)
	fake.failAI = true
	configPath := writeTestConfig(t, fake.server.URL)

	_, err := execute(t, configPath, "tickets", "summarize", "1")
	if code := cli.ExitCodeFor(err); code != 5 {
		t.Errorf("exit code = %d (err %v), want 5", code, err)
	}
	if err == nil || !strings.Contains(err.Error(), "AI summary failed. Please try again later.") {
		t.Errorf("error = %v, want the summary notice as hint", err)
	}
}

func TestTicketsSuggestApply(t *testing.T) {
	fake := newFakeServer(t, admin)
	configPath := writeTestConfig(t, fake.server.URL)

	output, err := execute(t, configPath, "tickets", "suggest", "1", "--apply")
	if err != nil {
		t.Fatalf("tickets suggest: %v", err)
	}
	request, found := fake.requested(http.MethodPut, "/api/tickets/1/")
	if !found {
		t.Fatal("suggestion was not applied")
	}
	if request.Body != `{"assigned_to_id":3}` {
		t.Errorf("body = %s", request.Body)
	}
	if !strings.Contains(output, "assigned to Bob Builder") {
		t.Errorf("output = %q", output)
	}
}

func TestAIFeaturesDeniedForDeveloper(t *testing.T) {
	fake := newFakeServer(t, developer)
	configPath := writeTestConfig(t, fake.server.URL)

	_, err := execute(t, configPath, "tickets", "classify", "--title", "Crash")
	if code := cli.ExitCodeFor(err); code != 3 {
		t.Errorf("exit code = %d (err %v), want 3", code, err)
	}
	if _, found := fake.requested(http.MethodPost, "/api/tickets/ai_classify/"); found {
		t.Error("classify request made for a developer")
	}
}

func TestProjectsShowFallsBackToLocalStats(t *testing.T) {
	fake := newFakeServer(t, admin)
	fake.failStats = true
	configPath := writeTestConfig(t, fake.server.URL)

	output, err := execute(t, configPath, "projects", "show", "1")
	if err != nil {
		t.Fatalf("projects show: %v", err)
	}
	if !strings.Contains(output, "3 total") || !strings.Contains(output, "(computed locally)") {
		t.Errorf("output should carry locally computed stats:\n%s", output)
	}
}

func TestProjectsShowPrefersServerStats(t *testing.T) {
	fake := newFakeServer(t, admin)
	configPath := writeTestConfig(t, fake.server.URL)

	output, err := execute(t, configPath, "projects", "show", "1")
	if err != nil {
		t.Fatalf("projects show: %v", err)
	}
	if !strings.Contains(output, "9 total") || strings.Contains(output, "(computed locally)") {
		t.Errorf("output should carry server stats:\n%s", output)
	}
}

func TestProjectsRemoveCreatorRejectedLocally(t *testing.T) {
	fake := newFakeServer(t, admin)
	configPath := writeTestConfig(t, fake.server.URL)

	_, err := execute(t, configPath, "projects", "remove-member", "1", "2")
	if code := cli.ExitCodeFor(err); code != 2 {
		t.Errorf("exit code = %d (err %v), want 2", code, err)
	}
	if writes := fake.writes(); len(writes) != 0 {
		t.Errorf("writes = %+v, want none", writes)
	}
}

func TestProjectsAddMember(t *testing.T) {
	fake := newFakeServer(t, manager)
	configPath := writeTestConfig(t, fake.server.URL)

	output, err := execute(t, configPath, "projects", "add-member", "1", "1")
	if err != nil {
		t.Fatalf("projects add-member: %v", err)
	}
	request, found := fake.requested(http.MethodPost, "/api/projects/1/add_member/")
	if !found || request.Body != `{"user_id":1}` {
		t.Errorf("add_member request = %+v, found %v", request, found)
	}
	if !strings.Contains(output, "Membership updated") {
		t.Errorf("output = %q", output)
	}
}

func TestActivityTicketQuery(t *testing.T) {
	fake := newFakeServer(t, admin)
	configPath := writeTestConfig(t, fake.server.URL)

	output, err := execute(t, configPath, "activity", "--ticket", "API-5", "--project", "1")
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	request, found := fake.requested(http.MethodGet, "/api/activities/")
	if !found || request.Query != "project=1&ticket=5" {
		t.Errorf("activities request = %+v, found %v; want project=1&ticket=5", request, found)
	}
	if !strings.Contains(output, "No recent activity.") {
		t.Errorf("output = %q", output)
	}
}

func TestUnauthorizedTokenCarriesLoginHint(t *testing.T) {
	fake := newFakeServer(t, admin)
	configPath := writeTestConfig(t, fake.server.URL)
	t.Setenv("SWIFTTICKET_TOKEN", "expired")

	_, err := execute(t, configPath, "dashboard")
	if code := cli.ExitCodeFor(err); code != 3 {
		t.Errorf("exit code = %d (err %v), want 3", code, err)
	}
	if err == nil || !strings.Contains(err.Error(), "swiftticket login") {
		t.Errorf("error = %v, want login hint", err)
	}
}

func TestTransportFailureExitCode(t *testing.T) {
	fake := newFakeServer(t, admin)
	configPath := writeTestConfig(t, fake.server.URL)
	fake.server.Close()

	_, err := execute(t, configPath, "projects", "list")
	if code := cli.ExitCodeFor(err); code != 4 {
		t.Errorf("exit code = %d (err %v), want 4", code, err)
	}
}

func TestNotFoundTicket(t *testing.T) {
	fake := newFakeServer(t, admin)
	configPath := writeTestConfig(t, fake.server.URL)

	_, err := execute(t, configPath, "tickets", "show", "404")
	var toolError *cli.ToolError
	if !errors.As(err, &toolError) || toolError.Category != cli.CategoryNotFound {
		t.Errorf("error = %v, want not_found", err)
	}
}

func TestLoginSavesSessionUsedByLaterCommands(t *testing.T) {
	fake := newFakeServer(t, developer)
	configPath := writeTestConfig(t, fake.server.URL)
	t.Setenv("SWIFTTICKET_TOKEN", "")

	passwordFile := filepath.Join(t.TempDir(), "password")
	if err := os.WriteFile(passwordFile, []byte("correct-horse\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, configPath, "login", "bob", "--password-file", passwordFile); err != nil {
		t.Fatalf("login: %v", err)
	}
	session, err := cli.LoadSessionFrom(os.Getenv(cli.SessionFileEnvVar))
	if err != nil || session == nil {
		t.Fatalf("LoadSessionFrom = %v, %v", session, err)
	}
	if session.AccessToken != testToken || session.Username != "bob" {
		t.Errorf("session = %+v", *session)
	}

	output, err := execute(t, configPath, "me")
	if err != nil {
		t.Fatalf("me with saved session: %v", err)
	}
	if !strings.Contains(output, "Bob Builder") {
		t.Errorf("output = %q", output)
	}

	if _, err := execute(t, configPath, "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	_, err = execute(t, configPath, "me")
	if code := cli.ExitCodeFor(err); code != 3 {
		t.Errorf("me after logout: exit code = %d (err %v), want 3", code, err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	fake := newFakeServer(t, developer)
	configPath := writeTestConfig(t, fake.server.URL)

	passwordFile := filepath.Join(t.TempDir(), "password")
	if err := os.WriteFile(passwordFile, []byte("wrong"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, configPath, "login", "bob", "--password-file", passwordFile)
	if code := cli.ExitCodeFor(err); code != 3 {
		t.Errorf("exit code = %d (err %v), want 3", code, err)
	}
	if _, statErr := os.Stat(os.Getenv(cli.SessionFileEnvVar)); !os.IsNotExist(statErr) {
		t.Errorf("session file written after a failed login (stat: %v)", statErr)
	}
}

func TestDashboardJSON(t *testing.T) {
	fake := newFakeServer(t, developer)
	configPath := writeTestConfig(t, fake.server.URL)

	output, err := execute(t, configPath, "dashboard", "--json")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	var dashboard struct {
		TotalTickets  int             `json:"total_tickets"`
		MyTickets     []schema.Ticket `json:"my_tickets"`
		TotalProjects int             `json:"total_projects"`
	}
	if err := json.Unmarshal([]byte(output), &dashboard); err != nil {
		t.Fatalf("decoding %q: %v", output, err)
	}
	if dashboard.TotalTickets != 3 || dashboard.TotalProjects != 1 {
		t.Errorf("totals = %d tickets, %d projects; want 3, 1", dashboard.TotalTickets, dashboard.TotalProjects)
	}
	if len(dashboard.MyTickets) != 1 || dashboard.MyTickets[0].ID != 2 {
		t.Errorf("my tickets = %+v, want only the assigned ticket", dashboard.MyTickets)
	}
}

func TestUsersListAssignable(t *testing.T) {
	fake := newFakeServer(t, admin)
	configPath := writeTestConfig(t, fake.server.URL)

	output, err := execute(t, configPath, "users", "list", "--assignable", "--json")
	if err != nil {
		t.Fatalf("users list: %v", err)
	}
	var users []schema.User
	if err := json.Unmarshal([]byte(output), &users); err != nil {
		t.Fatalf("decoding %q: %v", output, err)
	}
	if len(users) != 2 || users[0].ID != admin.ID || users[1].ID != developer.ID {
		t.Errorf("users = %+v, want admin and developer", users)
	}
}

func TestParseTicketID(t *testing.T) {
	tests := []struct {
		argument string
		want     int
		wantErr  bool
	}{
		{"12", 12, false},
		{"#12", 12, false},
		{"API-12", 12, false},
		{"WEB2-7", 7, false},
		{"API-", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
		{"twelve", 0, true},
	}
	for _, test := range tests {
		got, err := parseTicketID(test.argument)
		if (err != nil) != test.wantErr {
			t.Errorf("parseTicketID(%q) error = %v, wantErr %v", test.argument, err, test.wantErr)
			continue
		}
		if got != test.want {
			t.Errorf("parseTicketID(%q) = %d, want %d", test.argument, got, test.want)
		}
	}
}
