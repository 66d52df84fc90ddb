// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package boardui is the interactive ticket board: a bubbletea model
// with a ticket list on the left and the selected ticket's detail on
// the right.
//
// The model is a thin shell around a [board.View]. Fetching happens
// in View.Refresh, off the UI goroutine; every filter keystroke calls
// View.SetSpec, which re-runs the filter engine over the tickets
// already fetched without a request. Changing the project filter also
// triggers a refresh because project stats come from the server.
//
// Selection is tracked by ticket ID so the highlighted ticket stays
// put while the list narrows and widens around it.
package boardui
