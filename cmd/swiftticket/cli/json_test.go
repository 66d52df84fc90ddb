// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"testing"
)

func TestNormalizeNilSlice(t *testing.T) {
	var tickets []string
	data, err := json.Marshal(normalizeNilSlice(tickets))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("nil slice = %s, want []", data)
	}

	data, err = json.Marshal(normalizeNilSlice(map[string]int{"total": 3}))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"total":3}` {
		t.Errorf("non-slice value = %s, want it unchanged", data)
	}
}

func TestEmitJSONWithoutFlag(t *testing.T) {
	var output JSONOutput
	done, err := output.EmitJSON([]string{"API-1"})
	if done || err != nil {
		t.Errorf("EmitJSON without --json = (%v, %v), want (false, nil)", done, err)
	}
}
