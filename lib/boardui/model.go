// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boardui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/swiftticket/swiftticket/lib/authorization"
	"github.com/swiftticket/swiftticket/lib/board"
	"github.com/swiftticket/swiftticket/lib/schema"
	"github.com/swiftticket/swiftticket/lib/termui"
	"github.com/swiftticket/swiftticket/lib/ticketfilter"
)

// FocusRegion identifies which part of the board receives keys.
type FocusRegion int

const (
	// FocusList routes keys to list navigation.
	FocusList FocusRegion = iota
	// FocusSearch routes keys to the search bar.
	FocusSearch
	// FocusDetail routes keys to detail scrolling.
	FocusDetail
)

// listRatio is the fraction of the width given to the list pane.
const listRatio = 0.55

// chromeLines is the number of rows outside the panes: the header,
// the bottom separator, and the help bar.
const chromeLines = 3

// refreshDoneMsg carries the outcome of a View.Refresh.
type refreshDoneMsg struct {
	err error
}

// Model is the bubbletea model for the ticket board.
type Model struct {
	view    *board.View
	session *authorization.Session
	styler  *termui.Styler
	keys    KeyMap

	width  int
	height int
	ready  bool

	focus  FocusRegion
	search SearchInput
	spec   ticketfilter.Spec

	snapshot     *board.Snapshot
	cursor       int
	scrollOffset int
	selectedID   int // Stable focus: selection is tracked by ticket ID.

	detail   viewport.Model
	detailID int

	refreshing bool
	lastError  string
}

// NewModel creates a board over view. Init starts the first refresh;
// a snapshot already committed on view is shown immediately.
func NewModel(view *board.View, session *authorization.Session, styler *termui.Styler) Model {
	spec := view.Spec()
	model := Model{
		view:       view,
		session:    session,
		styler:     styler,
		keys:       DefaultKeyMap,
		spec:       spec,
		search:     SearchInput{Input: spec.Search},
		snapshot:   view.Snapshot(),
		refreshing: true,
	}
	model.restoreSelection()
	return model
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return waitForRefresh(model.view.Refresh())
}

// waitForRefresh blocks a tea.Cmd goroutine on the refresh result.
func waitForRefresh(done <-chan error) tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: <-done}
	}
}

func (model *Model) startRefresh() tea.Cmd {
	model.refreshing = true
	return waitForRefresh(model.view.Refresh())
}

// Spec returns the filter currently applied.
func (model Model) Spec() ticketfilter.Spec {
	return model.spec
}

// Tickets returns the tickets currently listed.
func (model Model) Tickets() []schema.Ticket {
	if model.snapshot == nil {
		return nil
	}
	return model.snapshot.Result.Tickets
}

// Selected returns the highlighted ticket.
func (model Model) Selected() (schema.Ticket, bool) {
	tickets := model.Tickets()
	if model.cursor < 0 || model.cursor >= len(tickets) {
		return schema.Ticket{}, false
	}
	return tickets[model.cursor], true
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if model.focus == FocusSearch {
			return model.handleSearchKeys(message)
		}
		return model.handleKeys(message)

	case refreshDoneMsg:
		model.refreshing = false
		if message.err != nil {
			model.lastError = message.err.Error()
			return model, nil
		}
		model.lastError = ""
		model.snapshot = model.view.Snapshot()
		model.restoreSelection()
		model.syncDetail()

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.updatePaneSizes()
		model.detailID = 0
		model.syncDetail()
	}
	return model, nil
}

func (model Model) handleKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.FocusToggle):
		if model.focus == FocusList {
			model.focus = FocusDetail
		} else {
			model.focus = FocusList
		}

	case key.Matches(message, model.keys.Search):
		model.focus = FocusSearch
		model.search.Active = true
		model.cursor = 0
		model.scrollOffset = 0

	case key.Matches(message, model.keys.SearchClear):
		if model.search.Input != "" {
			model.search.Clear()
			model.applySpec(model.withSearch(""))
		}

	case key.Matches(message, model.keys.CycleStatus):
		spec := model.spec
		spec.Status = nextStatus(spec.Status)
		model.applySpec(spec)

	case key.Matches(message, model.keys.CyclePriority):
		spec := model.spec
		spec.Priority = nextPriority(spec.Priority)
		model.applySpec(spec)

	case key.Matches(message, model.keys.CycleScope):
		spec := model.spec
		spec.AssignedTo = nextScope(spec.AssignedTo)
		model.applySpec(spec)

	case key.Matches(message, model.keys.CycleProject):
		spec := model.spec
		spec.Project = model.nextProject(spec.Project)
		model.applySpec(spec)
		return model, model.startRefresh()

	case key.Matches(message, model.keys.ClearFilters):
		hadProject := model.spec.Project != 0
		model.search.Clear()
		model.applySpec(model.spec.Clear())
		if hadProject {
			return model, model.startRefresh()
		}

	case key.Matches(message, model.keys.Refresh):
		return model, model.startRefresh()

	default:
		if model.focus == FocusDetail {
			model.handleDetailKeys(message)
		} else {
			model.handleListKeys(message)
		}
	}
	return model, nil
}

func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case key.Matches(message, model.keys.SearchClear):
		// Esc: clear text first, leave search mode on the second press.
		if model.search.Input != "" {
			model.search.Input = ""
			model.applySpec(model.withSearch(""))
		} else {
			model.search.Active = false
			model.focus = FocusList
		}

	case message.Type == tea.KeyEnter:
		model.search.Active = false
		model.focus = FocusList

	case message.Type == tea.KeyBackspace:
		if model.search.HandleBackspace() {
			model.applySpec(model.withSearch(model.search.Input))
		}

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		if message.Type == tea.KeySpace {
			model.search.HandleRune(' ')
		}
		for _, character := range message.Runes {
			model.search.HandleRune(character)
		}
		model.applySpec(model.withSearch(model.search.Input))
	}
	return model, nil
}

func (model Model) withSearch(query string) ticketfilter.Spec {
	spec := model.spec
	spec.Search = query
	return spec
}

// applySpec re-runs the filter over the fetched tickets. No request
// is made.
func (model *Model) applySpec(spec ticketfilter.Spec) {
	model.spec = spec
	model.snapshot = model.view.SetSpec(spec)
	model.restoreSelection()
	model.syncDetail()
}

func (model *Model) handleListKeys(message tea.KeyMsg) {
	count := len(model.Tickets())
	switch {
	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.cursor < count-1 {
			model.cursor++
		}
	case key.Matches(message, model.keys.PageUp):
		model.cursor -= model.listHeight()
		if model.cursor < 0 {
			model.cursor = 0
		}
	case key.Matches(message, model.keys.PageDown):
		model.cursor += model.listHeight()
		if model.cursor > count-1 {
			model.cursor = count - 1
		}
		if model.cursor < 0 {
			model.cursor = 0
		}
	case key.Matches(message, model.keys.Home):
		model.cursor = 0
	case key.Matches(message, model.keys.End):
		if count > 0 {
			model.cursor = count - 1
		}
	default:
		return
	}
	if selected, ok := model.Selected(); ok {
		model.selectedID = selected.ID
	}
	model.ensureCursorVisible()
	model.syncDetail()
}

func (model *Model) handleDetailKeys(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.detail.LineUp(1)
	case key.Matches(message, model.keys.Down):
		model.detail.LineDown(1)
	case key.Matches(message, model.keys.PageUp):
		model.detail.HalfViewUp()
	case key.Matches(message, model.keys.PageDown):
		model.detail.HalfViewDown()
	case key.Matches(message, model.keys.Home):
		model.detail.GotoTop()
	case key.Matches(message, model.keys.End):
		model.detail.GotoBottom()
	}
}

// restoreSelection puts the cursor back on the selected ticket after
// the list changed, or clamps it when that ticket is gone.
func (model *Model) restoreSelection() {
	tickets := model.Tickets()
	for index, ticket := range tickets {
		if ticket.ID == model.selectedID {
			model.cursor = index
			model.ensureCursorVisible()
			return
		}
	}
	if model.cursor >= len(tickets) {
		model.cursor = len(tickets) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	if selected, ok := model.Selected(); ok {
		model.selectedID = selected.ID
	} else {
		model.selectedID = 0
	}
	model.ensureCursorVisible()
}

func (model *Model) ensureCursorVisible() {
	height := model.listHeight()
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+height {
		model.scrollOffset = model.cursor - height + 1
	}
	if model.scrollOffset < 0 {
		model.scrollOffset = 0
	}
}

// listHeight is the number of ticket rows visible in the list pane,
// after its header row.
func (model Model) listHeight() int {
	height := model.height - chromeLines - 1
	if height < 1 {
		return 1
	}
	return height
}

func (model Model) listWidth() int {
	return int(float64(model.width) * listRatio)
}

func (model Model) detailWidth() int {
	width := model.width - model.listWidth() - 1
	if width < 10 {
		width = 10
	}
	return width
}

func (model *Model) updatePaneSizes() {
	model.detail.Width = model.detailWidth()
	model.detail.Height = model.height - chromeLines
	if model.detail.Height < 1 {
		model.detail.Height = 1
	}
	model.ensureCursorVisible()
}

// syncDetail re-renders the detail pane when the selection changed.
func (model *Model) syncDetail() {
	if !model.ready {
		return
	}
	selected, ok := model.Selected()
	if !ok {
		model.detailID = 0
		model.detail.SetContent(model.styler.Faint("No ticket selected."))
		return
	}
	if selected.ID == model.detailID {
		return
	}
	model.detailID = selected.ID
	model.detail.SetContent(termui.TicketDetail(model.styler, selected, model.detailWidth()-1))
	model.detail.GotoTop()
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}
	if model.snapshot == nil {
		if model.lastError != "" {
			return model.styler.Error("Could not load tickets: "+model.lastError) + "\n" +
				model.styler.Faint("r retry  q quit")
		}
		return "Loading tickets..."
	}

	sections := []string{model.renderHeader()}
	listView := model.renderList()
	divider := model.styler.NewStyle().Foreground(model.styler.Theme().BorderColor).
		Render(strings.TrimRight(strings.Repeat("│\n", model.listHeight()+1), "\n"))
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, listView, divider, model.detail.View()))
	sections = append(sections, model.styler.NewStyle().Foreground(model.styler.Theme().BorderColor).
		Render(strings.Repeat("─", model.width)))
	sections = append(sections, model.renderHelp())
	return strings.Join(sections, "\n")
}

func (model Model) renderHeader() string {
	if model.search.Active {
		cursor := model.styler.NewStyle().Foreground(model.styler.Theme().HeaderForeground).Bold(true).Render("▎")
		return termui.Truncate(" / "+model.search.Input+cursor, model.width)
	}
	line := model.styler.Header(" SwiftTicket") + "  " + model.styler.Role(model.session.Role()) +
		"  " + termui.FilterSummary(model.styler, model.snapshot.Result, model.spec)
	if model.spec.Project != 0 {
		if name, ok := model.snapshot.ProjectNames[model.spec.Project]; ok {
			line += "  " + model.styler.Faint("["+name+"]")
		}
	}
	return termui.Truncate(line, model.width)
}

func (model Model) renderList() string {
	width := model.listWidth()
	height := model.listHeight()
	tickets := model.Tickets()

	lines := make([]string, 0, height+1)
	lines = append(lines, model.styler.Header(fitWidth(" ID       STATUS       PRI       TITLE", width)))
	if len(tickets) == 0 {
		lines = append(lines, model.styler.Faint(fitWidth(" No tickets match the current filters.", width)))
	}
	end := model.scrollOffset + height
	if end > len(tickets) {
		end = len(tickets)
	}
	for index := model.scrollOffset; index < end; index++ {
		row := model.renderRow(tickets[index], width)
		if index == model.cursor {
			row = model.styler.NewStyle().
				Background(model.styler.Theme().SelectedBackground).
				Foreground(model.styler.Theme().SelectedForeground).
				Render(fitWidth("▸"+strings.TrimPrefix(row, " "), width))
		}
		lines = append(lines, row)
	}
	for len(lines) < height+1 {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderRow(ticket schema.Ticket, width int) string {
	row := " " + fitWidth(termui.TicketID(ticket), 8) + " " +
		fitWidth(ticket.Status.Label(), 12) + " " +
		fitWidth(string(ticket.Priority), 9) + " " +
		ticket.Title
	return fitWidth(row, width)
}

// fitWidth pads or truncates text to exactly width columns.
func fitWidth(text string, width int) string {
	text = termui.Truncate(text, width)
	if padding := width - lipgloss.Width(text); padding > 0 {
		text += strings.Repeat(" ", padding)
	}
	return text
}

func (model Model) renderHelp() string {
	focus := "LIST"
	switch model.focus {
	case FocusDetail:
		focus = "DETAIL"
	case FocusSearch:
		focus = "SEARCH"
	}
	help := fmt.Sprintf(" [%s] q quit  ↑↓ move  Tab focus  / search  s status  p priority  a assigned  P project  c clear  r refresh", focus)
	if count := len(model.Tickets()); count > 0 {
		help += fmt.Sprintf("  %d/%d", model.cursor+1, count)
	}
	line := model.styler.Faint(help)
	if model.refreshing {
		line += "  " + model.styler.Status(schema.StatusInProgress)
	}
	if model.lastError != "" {
		line += "  " + model.styler.Error("Error: "+model.lastError)
	}
	return line
}

// nextStatus steps through any → open → in_progress → in_review →
// done → any.
func nextStatus(current schema.Status) schema.Status {
	return cycle(append([]schema.Status{""}, schema.Statuses()...), current)
}

func nextPriority(current schema.Priority) schema.Priority {
	return cycle(append([]schema.Priority{""}, schema.Priorities()...), current)
}

func nextScope(current ticketfilter.Scope) ticketfilter.Scope {
	if current == "" {
		current = ticketfilter.ScopeAll
	}
	return cycle(ticketfilter.Scopes(), current)
}

// nextProject steps through the fetched projects in server order,
// then back to all projects.
func (model Model) nextProject(current int) int {
	values := []int{0}
	if model.snapshot != nil {
		for _, project := range model.snapshot.Projects {
			values = append(values, project.ID)
		}
	}
	return cycle(values, current)
}

// cycle returns the value after current, wrapping to the first. A
// current value not in values also yields the first.
func cycle[T comparable](values []T, current T) T {
	for index, value := range values {
		if value == current {
			return values[(index+1)%len(values)]
		}
	}
	return values[0]
}
