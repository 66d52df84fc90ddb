// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the swiftticket
// command.
//
// Configuration comes from at most one file, named by the --config flag
// (via [LoadFile]) or the SWIFTTICKET_CONFIG environment variable (via
// [Load]). There is no automatic file search. Running without a file
// is valid and yields [Default].
//
// Files are YAML. Files ending in .json or .jsonc are accepted too:
// comments and trailing commas are stripped first, and the result is
// parsed as YAML, which is a superset of JSON.
//
// The file may contain environment-specific sections (development,
// staging, production) that override base values when
// [Config].Environment matches. Production is stricter: the server
// must be reached over HTTPS.
//
// The server section supports ${VAR} and ${VAR:-default} expansion,
// so a file can reference a token without containing it. The
// SWIFTTICKET_TOKEN environment variable, when set, overrides
// server.token after expansion.
//
// This package depends on no other swiftticket packages.
package config
