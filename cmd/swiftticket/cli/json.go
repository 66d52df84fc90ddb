// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"os"
	"reflect"
)

// JSONOutput adds a --json flag to a command's params struct. Every
// swiftticket command that prints tickets, projects, users or activity
// embeds it so scripts get the same records the table shows.
//
//	type ticketsListParams struct {
//	    cli.JSONOutput
//	    Search string `flag:"search" desc:"substring of title or description"`
//	}
//
//	if done, err := params.EmitJSON(result); done {
//	    return err
//	}
type JSONOutput struct {
	OutputJSON bool `json:"-" flag:"json" desc:"output as JSON"`
}

// EmitJSON prints result when --json was given and reports whether it
// did. An empty ticket or user list prints [] rather than null.
func (j *JSONOutput) EmitJSON(result any) (bool, error) {
	if !j.OutputJSON {
		return false, nil
	}
	return true, WriteJSON(normalizeNilSlice(result))
}

// WriteJSON prints value to stdout as two-space indented JSON, using
// the same field names as the SwiftTicket API.
func WriteJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// normalizeNilSlice turns a nil slice into an empty one of the same type.
func normalizeNilSlice(value any) any {
	slice := reflect.ValueOf(value)
	if slice.Kind() == reflect.Slice && slice.IsNil() {
		return reflect.MakeSlice(slice.Type(), 0, 0).Interface()
	}
	return value
}
