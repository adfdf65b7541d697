package shell

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/klytics/phrasekit/internal/catalog"
	"github.com/klytics/phrasekit/internal/formats/xlsx"
	"github.com/klytics/phrasekit/internal/insert"
)

func init() {
	color.NoColor = true
}

func fixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phrases.xlsx")
	rows := [][]string{
		{"Travail", "Thème", "Situation", "Avis", "Phrase"},
		{"Sales,HR", "Intro", "Meeting", "Bon", "Welcome aboard"},
		{"Sales", "Closing", "Thanks", "Mauvais", "Thanks for nothing"},
	}
	wb := &xlsx.Workbook{Sheets: []xlsx.Sheet{{Name: "Phrases", Rows: rows}}}
	if err := xlsx.WriteFile(wb, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func newSession(t *testing.T) (*Session, *bytes.Buffer, *[]string) {
	t.Helper()
	var inserted []string
	sink := insert.Func(func(_ context.Context, text string) error {
		inserted = append(inserted, text)
		return nil
	})
	out := &bytes.Buffer{}
	s := NewSession(catalog.New(nil), sink, out)
	s.HistoryFile = filepath.Join(t.TempDir(), "history")
	return s, out, &inserted
}

func TestEvalRequiresLoad(t *testing.T) {
	s, _, _ := newSession(t)
	if err := s.Eval(context.Background(), "tree"); err == nil {
		t.Error("tree without a spreadsheet should fail")
	}
	if err := s.Eval(context.Background(), "welcome"); err == nil {
		t.Error("search without a spreadsheet should fail")
	}
}

func TestEvalLoadTreePick(t *testing.T) {
	s, out, inserted := newSession(t)
	ctx := context.Background()

	if err := s.Eval(ctx, "load "+fixture(t)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Loaded 2 phrase(s) in 2 categor(ies)") {
		t.Errorf("unexpected load output: %q", out.String())
	}

	out.Reset()
	if err := s.Eval(ctx, "tree"); err != nil {
		t.Fatal(err)
	}
	// Categories open, sub-categories closed: no phrases are listed yet.
	if !strings.Contains(out.String(), "Sales") || strings.Contains(out.String(), "[1]") {
		t.Errorf("unexpected tree:\n%s", out.String())
	}

	out.Reset()
	if err := s.Eval(ctx, "toggle Sales/Intro"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[1]") {
		t.Errorf("expected numbered phrase after toggle:\n%s", out.String())
	}

	if err := s.Eval(ctx, "pick 1"); err != nil {
		t.Fatal(err)
	}
	if len(*inserted) != 1 || (*inserted)[0] != "Welcome aboard" {
		t.Errorf("inserted = %v", *inserted)
	}
}

func TestEvalSearch(t *testing.T) {
	s, out, inserted := newSession(t)
	ctx := context.Background()
	if err := s.Eval(ctx, "load "+fixture(t)); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := s.Eval(ctx, "THANKS nothing"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[1]") || strings.Contains(out.String(), "[2]") {
		t.Errorf("expected exactly one result:\n%s", out.String())
	}
	if err := s.Eval(ctx, "pick 1"); err != nil {
		t.Fatal(err)
	}
	if len(*inserted) != 1 || (*inserted)[0] != "Thanks for nothing" {
		t.Errorf("inserted = %v", *inserted)
	}

	out.Reset()
	if err := s.Eval(ctx, "search zebra"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No results found") {
		t.Errorf("expected no-results message, got %q", out.String())
	}
	if err := s.Eval(ctx, "pick 1"); err == nil {
		t.Error("pick after an empty search should fail")
	}
}

func TestEvalToggleUnknown(t *testing.T) {
	s, _, _ := newSession(t)
	ctx := context.Background()
	if err := s.Eval(ctx, "load "+fixture(t)); err != nil {
		t.Fatal(err)
	}
	if err := s.Eval(ctx, "toggle Marketing"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestEvalExit(t *testing.T) {
	s, _, _ := newSession(t)
	if err := s.Eval(context.Background(), "exit"); !errors.Is(err, ErrExit) {
		t.Errorf("expected ErrExit, got %v", err)
	}
	if len(s.CommandHistory) != 1 {
		t.Errorf("history = %v", s.CommandHistory)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{5, "5s"},
		{75, "1m 15s"},
	}
	for _, tt := range tests {
		got := formatDuration(time.Duration(tt.secs) * time.Second)
		if got != tt.want {
			t.Errorf("formatDuration(%ds) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
