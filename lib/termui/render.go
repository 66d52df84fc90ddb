// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package termui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/swiftticket/swiftticket/lib/activity"
	"github.com/swiftticket/swiftticket/lib/aiassist"
	"github.com/swiftticket/swiftticket/lib/board"
	"github.com/swiftticket/swiftticket/lib/schema"
	"github.com/swiftticket/swiftticket/lib/ticketfilter"
)

const dateLayout = "Jan 2, 2006"

// TicketID formats a ticket identifier, prefixed with the project key
// when the project has one ("API-12", "#12").
func TicketID(ticket schema.Ticket) string {
	if ticket.Project.Key != "" {
		return ticket.Project.Key + "-" + strconv.Itoa(ticket.ID)
	}
	return "#" + strconv.Itoa(ticket.ID)
}

// TicketTable renders tickets one per row. The title column shrinks
// to fit width.
func TicketTable(styler *Styler, tickets []schema.Ticket, width int) string {
	table := NewTable(
		Column{Title: "ID"},
		Column{Title: "TITLE", Flex: true, MinWidth: 12},
		Column{Title: "STATUS"},
		Column{Title: "PRIORITY"},
		Column{Title: "TYPE"},
		Column{Title: "PROJECT"},
		Column{Title: "ASSIGNEE"},
	)
	for _, ticket := range tickets {
		table.AddRow(
			TicketID(ticket),
			ticket.Title,
			styler.Status(ticket.Status),
			styler.Priority(ticket.Priority),
			string(ticket.Type),
			ticket.Project.Name,
			ticket.AssigneeName(),
		)
	}
	return table.Render(styler, width)
}

// FilterSummary describes a filter result: "Showing 3 of 12 tickets
// (status:done)". The spec suffix is omitted for the identity filter.
func FilterSummary(styler *Styler, result ticketfilter.Result, spec ticketfilter.Spec) string {
	line := fmt.Sprintf("Showing %d of %d tickets", result.Visible, result.Total)
	if !spec.IsIdentity() {
		line += " (" + spec.String() + ")"
	}
	return styler.Faint(line)
}

// TicketList renders a filter result as a table plus summary line, or
// an empty-state message when nothing matched.
func TicketList(styler *Styler, result ticketfilter.Result, spec ticketfilter.Spec, width int) string {
	if result.Visible == 0 {
		if result.Total == 0 {
			return styler.Faint("No tickets yet.")
		}
		return styler.Faint(fmt.Sprintf("No tickets match the current filters (%d hidden).", result.Total))
	}
	return TicketTable(styler, result.Tickets, width) + "\n\n" + FilterSummary(styler, result, spec)
}

// TicketDetail renders every field of a ticket followed by its
// description and, when present, its AI summary.
func TicketDetail(styler *Styler, ticket schema.Ticket, width int) string {
	var builder strings.Builder
	builder.WriteString(styler.Header(TicketID(ticket) + "  " + ticket.Title))
	builder.WriteString("\n\n")

	component := string(ticket.Component)
	if component == "" {
		component = "-"
	}
	fields := [][2]string{
		{"Status", styler.Status(ticket.Status)},
		{"Priority", styler.Priority(ticket.Priority)},
		{"Type", string(ticket.Type)},
		{"Component", component},
		{"Project", ticket.Project.Name},
		{"Assignee", ticket.AssigneeName()},
		{"Reporter", ticket.CreatedBy.DisplayName()},
		{"Created", formatDate(ticket.CreatedAt.Format(dateLayout), ticket.CreatedAt.IsZero())},
		{"Updated", formatDate(ticket.UpdatedAt.Format(dateLayout), ticket.UpdatedAt.IsZero())},
	}
	builder.WriteString(fieldBlock(styler, fields))

	if description := Markdown(styler, ticket.Description, width); description != "" {
		builder.WriteString("\n\n")
		builder.WriteString(description)
	}
	if ticket.HasSummary() {
		builder.WriteString("\n\n")
		builder.WriteString(styler.Header("AI Summary"))
		builder.WriteString("\n")
		builder.WriteString(Markdown(styler, ticket.Summary, width))
	}
	return builder.String()
}

func formatDate(formatted string, zero bool) string {
	if zero {
		return "-"
	}
	return formatted
}

// fieldBlock renders label/value pairs with labels padded to a common
// width.
func fieldBlock(styler *Styler, fields [][2]string) string {
	labelWidth := 0
	for _, field := range fields {
		if len(field[0]) > labelWidth {
			labelWidth = len(field[0])
		}
	}
	lines := make([]string, len(fields))
	for index, field := range fields {
		label := field[0] + ":" + strings.Repeat(" ", labelWidth-len(field[0])+1)
		lines[index] = styler.Faint(label) + field[1]
	}
	return strings.Join(lines, "\n")
}

// ProjectTable renders projects one per row.
func ProjectTable(styler *Styler, projects []schema.Project, width int) string {
	if len(projects) == 0 {
		return styler.Faint("No projects yet.")
	}
	table := NewTable(
		Column{Title: "ID"},
		Column{Title: "KEY"},
		Column{Title: "NAME", Flex: true, MinWidth: 10},
		Column{Title: "OWNER"},
		Column{Title: "MEMBERS"},
	)
	for _, project := range projects {
		key := project.Key
		if key == "" {
			key = "-"
		}
		table.AddRow(
			strconv.Itoa(project.ID),
			key,
			project.Name,
			project.CreatedBy.DisplayName(),
			strconv.Itoa(len(project.Members)),
		)
	}
	return table.Render(styler, width)
}

// ProjectDetail renders a project, its members, and its ticket
// counts.
func ProjectDetail(styler *Styler, project schema.Project, stats ticketfilter.Stats, width int) string {
	var builder strings.Builder
	title := project.Name
	if project.Key != "" {
		title = project.Key + "  " + title
	}
	builder.WriteString(styler.Header(title))
	builder.WriteString("\n")
	if description := Markdown(styler, project.Description, width); description != "" {
		builder.WriteString("\n")
		builder.WriteString(description)
		builder.WriteString("\n")
	}
	builder.WriteString("\n")
	builder.WriteString(fieldBlock(styler, [][2]string{
		{"Owner", project.CreatedBy.DisplayName()},
		{"Created", formatDate(project.CreatedAt.Format(dateLayout), project.CreatedAt.IsZero())},
	}))
	builder.WriteString("\n\n")
	builder.WriteString(StatsLine(styler, stats))
	builder.WriteString("\n\n")
	builder.WriteString(styler.Header("Members"))
	builder.WriteString("\n")
	builder.WriteString(UserTable(styler, project.Members, width))
	return builder.String()
}

// StatsLine renders status counts on one line, noting when the counts
// were computed locally.
func StatsLine(styler *Styler, stats ticketfilter.Stats) string {
	parts := []string{
		fmt.Sprintf("%d total", stats.Total),
		styler.Status(schema.StatusOpen) + " " + strconv.Itoa(stats.Open),
		styler.Status(schema.StatusInProgress) + " " + strconv.Itoa(stats.InProgress),
		styler.Status(schema.StatusInReview) + " " + strconv.Itoa(stats.InReviewOrUnlisted),
		styler.Status(schema.StatusDone) + " " + strconv.Itoa(stats.Done),
	}
	line := strings.Join(parts, "  ")
	if !stats.FromServer {
		line += "  " + styler.Faint("(computed locally)")
	}
	return line
}

// UserTable renders users with their role, expertise, and workload.
func UserTable(styler *Styler, users []schema.User, width int) string {
	if len(users) == 0 {
		return styler.Faint("No users.")
	}
	table := NewTable(
		Column{Title: "ID"},
		Column{Title: "USERNAME"},
		Column{Title: "NAME"},
		Column{Title: "ROLE"},
		Column{Title: "WORKLOAD"},
		Column{Title: "EXPERTISE", Flex: true, MinWidth: 8},
	)
	for _, user := range users {
		expertise := "-"
		if user.Profile != nil && len(user.Profile.ExpertiseAreas) > 0 {
			expertise = strings.Join(user.Profile.ExpertiseAreas, ", ")
		}
		table.AddRow(
			strconv.Itoa(user.ID),
			user.Username,
			user.DisplayName(),
			styler.Role(user.Role),
			strconv.Itoa(user.Workload()),
			expertise,
		)
	}
	return table.Render(styler, width)
}

// UserDetail renders a user's account and profile.
func UserDetail(styler *Styler, user schema.User) string {
	fields := [][2]string{
		{"Username", user.Username},
		{"Name", user.DisplayName()},
		{"Email", user.Email},
		{"Role", styler.Role(user.Role)},
	}
	if user.Profile != nil {
		if user.Profile.Bio != "" {
			fields = append(fields, [2]string{"Bio", user.Profile.Bio})
		}
		if len(user.Profile.ExpertiseAreas) > 0 {
			fields = append(fields, [2]string{"Expertise", strings.Join(user.Profile.ExpertiseAreas, ", ")})
		}
		fields = append(fields, [2]string{"Workload", strconv.Itoa(user.Profile.CurrentWorkload)})
	}
	return fieldBlock(styler, fields)
}

// ActivityRow renders one feed entry: colored glyph, description,
// and relative time. The description is truncated so the row fits
// width.
func ActivityRow(styler *Styler, entry activity.Entry, width int) string {
	glyph := styler.Hex(entry.Glyph.Symbol, entry.Glyph.Color)
	when := styler.Faint(entry.When)

	description := entry.Activity.Description
	if description == "" {
		description = string(entry.Activity.ActionType)
	}
	if name := entry.Activity.User.Username; name != "" {
		description = name + ": " + description
	}
	if width > 0 {
		// glyph, two single-space gaps, and the time column.
		available := width - 1 - 2 - len(entry.When)
		description = Truncate(description, available)
	}
	return glyph + " " + description + " " + when
}

// ActivityFeed renders entries newest first, one per line.
func ActivityFeed(styler *Styler, entries []activity.Entry, width int) string {
	if len(entries) == 0 {
		return styler.Faint("No recent activity.")
	}
	lines := make([]string, len(entries))
	for index, entry := range entries {
		lines[index] = ActivityRow(styler, entry, width)
	}
	return strings.Join(lines, "\n")
}

// Dashboard renders the home screen: counts, recent tickets, and the
// activity feed.
func Dashboard(styler *Styler, dashboard *board.Dashboard, width int) string {
	var builder strings.Builder
	builder.WriteString(styler.Header("Welcome back, " + dashboard.User.DisplayName()))
	builder.WriteString("  ")
	builder.WriteString(styler.Role(dashboard.User.Role))
	builder.WriteString("\n\n")
	builder.WriteString(fieldBlock(styler, [][2]string{
		{"Total tickets", strconv.Itoa(dashboard.TotalTickets)},
		{"My tickets", strconv.Itoa(len(dashboard.MyTickets))},
		{"In progress", strconv.Itoa(dashboard.Stats.InProgress)},
		{"Completed", strconv.Itoa(dashboard.Stats.Done)},
		{"Projects", strconv.Itoa(dashboard.TotalProjects)},
	}))
	builder.WriteString("\n\n")
	builder.WriteString(styler.Header("Recent tickets"))
	builder.WriteString("\n")
	if len(dashboard.RecentTickets) == 0 {
		builder.WriteString(styler.Faint("No tickets yet."))
	} else {
		builder.WriteString(TicketTable(styler, dashboard.RecentTickets, width))
	}
	builder.WriteString("\n\n")
	builder.WriteString(styler.Header("Recent activity"))
	builder.WriteString("\n")
	builder.WriteString(ActivityFeed(styler, dashboard.Feed, width))
	return builder.String()
}

// Classification renders the fields an AI classification suggested.
func Classification(styler *Styler, classification aiassist.Classification) string {
	value := func(s string) string {
		if s == "" {
			return styler.Faint("(no suggestion)")
		}
		return s
	}
	return fieldBlock(styler, [][2]string{
		{"Type", value(string(classification.Type))},
		{"Priority", value(string(classification.Priority))},
		{"Component", value(string(classification.Component))},
	})
}

// Suggestion renders an assignee suggestion or its notice.
func Suggestion(styler *Styler, suggestion aiassist.Suggestion) string {
	if !suggestion.Matched() {
		return styler.Faint(suggestion.Notice)
	}
	user := *suggestion.User
	line := fmt.Sprintf("AI suggests %s (%s), workload %d", user.DisplayName(), user.Username, user.Workload())
	return line
}

// AINotice renders the dismissible notice for a failed AI feature.
func AINotice(styler *Styler, err error) string {
	notice := aiassist.NoticeFor(err)
	if notice == "" {
		notice = "AI assistance is unavailable."
	}
	return styler.Error(notice)
}
