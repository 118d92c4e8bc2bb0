package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBuildSchema(t *testing.T) {
	data, err := json.Marshal(buildSchema())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)

	for _, field := range []string{`"screen"`, `"player"`, `"avalanche"`, `"barrier"`, `"hud"`} {
		if !strings.Contains(out, field) {
			t.Errorf("schema missing %s", field)
		}
	}
	if strings.Contains(out, `"required"`) {
		t.Error("every field has a default, nothing should be required")
	}
}
