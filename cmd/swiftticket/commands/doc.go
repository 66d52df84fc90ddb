// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands defines the swiftticket command tree. Every command
// loads the configuration, builds a tracker client, and for anything
// that writes, resolves the signed-in user with GET /auth/me/ and runs
// the local authorization check before the first mutating request.
package commands
