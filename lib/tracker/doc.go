// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tracker provides a typed Go client for the SwiftTicket REST
// API.
//
// Each endpoint has one method on [Client]. Requests carry a bearer
// token when one is configured and an X-Request-ID header so client
// and server log lines can be correlated. Every failure, whether the
// connection broke, the server answered with a non-2xx status, or the
// body did not decode, is returned as a [*TransportError] naming the
// method and path. Non-2xx responses additionally carry an [*APIError]
// with the server's message and any per-field errors, reachable with
// errors.As or the IsNotFound/IsForbidden/IsBadRequest helpers.
//
// The client does no retrying and keeps no cache. Callers re-fetch to
// observe changes made elsewhere.
//
// [Client] satisfies workflow.Backend and aiassist.Gateway, so the
// same value drives ticket mutations and AI features.
package tracker
