package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		json, yaml bool
		want       Format
	}{
		{false, false, FormatText},
		{true, false, FormatJSON},
		{false, true, FormatYAML},
		{true, true, FormatJSON},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.json, tt.yaml); got != tt.want {
			t.Errorf("ParseFormat(%v, %v) = %v, want %v", tt.json, tt.yaml, got, tt.want)
		}
	}
}

func TestDataJSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterTo(&buf, FormatJSON)
	if err := w.Data("search", []string{"a"}); err != nil {
		t.Fatal(err)
	}

	var result JSONResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if !result.OK || result.Command != "search" || result.Version == "" {
		t.Errorf("unexpected envelope: %+v", result)
	}
}

func TestDataYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterTo(&buf, FormatYAML)
	if err := w.Data("tree", map[string]int{"count": 2}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "count: 2" {
		t.Errorf("unexpected YAML: %q", buf.String())
	}
}

func TestDataTextIsError(t *testing.T) {
	w := NewWriterTo(&bytes.Buffer{}, FormatText)
	if err := w.Data("tree", nil); err == nil {
		t.Error("expected error for text format")
	}
}

func TestFprintJSONError(t *testing.T) {
	var buf bytes.Buffer
	if err := FprintJSONError(&buf, "tree", errors.New("no such file"), ExitSystemError); err != nil {
		t.Fatal(err)
	}

	var result JSONResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if result.OK || result.Command != "tree" || result.Error != "no such file" || result.Code != ExitSystemError {
		t.Errorf("unexpected envelope: %+v", result)
	}
	if strings.Contains(buf.String(), `"data"`) {
		t.Errorf("error envelope should omit data: %s", buf.String())
	}
}
