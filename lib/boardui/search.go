// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boardui

// SearchInput is the free-text query bar. Matching itself lives in
// the ticketfilter package; this only edits the text.
type SearchInput struct {
	// Input is the current query text.
	Input string

	// Active is true while the bar has keyboard focus.
	Active bool
}

// HandleRune appends a typed character.
func (search *SearchInput) HandleRune(character rune) {
	search.Input += string(character)
}

// HandleBackspace removes the last character. Returns true if the
// input changed.
func (search *SearchInput) HandleBackspace() bool {
	if search.Input == "" {
		return false
	}
	runes := []rune(search.Input)
	search.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the input and deactivates the bar.
func (search *SearchInput) Clear() {
	search.Input = ""
	search.Active = false
}
