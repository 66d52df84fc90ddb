// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package aiassist gates and sanitizes calls to the server's AI
// features: ticket classification, summarization, and assignee
// suggestion.
//
// The AI service is optional infrastructure. Every failure it produces
// surfaces as an [AIUnavailableError] carrying a short notice for the
// user; callers show the notice and carry on, since no AI result is
// ever required to complete a ticket operation. Role checks and input
// validation happen before the [Gateway] is touched, so a denied or
// empty request never reaches the network.
//
// There is no retry. A user who wants another attempt asks again.
package aiassist
