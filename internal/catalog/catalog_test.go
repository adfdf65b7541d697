package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/klytics/phrasekit/internal/formats/xlsx"
	"github.com/klytics/phrasekit/internal/phrases"
)

var header = []string{"Travail", "Thème", "Situation", "Avis", "Phrase"}

func writeSheet(t *testing.T, rows ...[]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phrases.xlsx")
	wb := &xlsx.Workbook{Sheets: []xlsx.Sheet{{Name: "Phrases", Rows: append([][]string{header}, rows...)}}}
	if err := xlsx.WriteFile(wb, path); err != nil {
		t.Fatalf("could not write fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeSheet(t, []string{"Sales,HR", "Intro", "Meeting", "Bon", "Welcome aboard"})
	c := New(nil)

	snap, err := c.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snap.Sheet != "Phrases" || snap.Generation != 1 {
		t.Errorf("unexpected snapshot metadata: %+v", snap)
	}
	if len(snap.Records) != 1 || snap.Records[0].Rating != phrases.Good {
		t.Errorf("unexpected records: %+v", snap.Records)
	}
	if snap.Tree.Phrases("HR", "Intro") == nil {
		t.Error("expected phrase under (HR, Intro)")
	}
	if c.Current() != snap {
		t.Error("Current should return the loaded snapshot")
	}
}

func TestLoadNoFile(t *testing.T) {
	c := New(nil)
	if _, err := c.Load(context.Background(), ""); !errors.Is(err, ErrNoFile) {
		t.Errorf("expected ErrNoFile, got %v", err)
	}
	if _, err := c.LoadBytes(context.Background(), "stdin", nil); !errors.Is(err, ErrNoFile) {
		t.Errorf("expected ErrNoFile, got %v", err)
	}
}

func TestLoadFailureKeepsPreviousDataset(t *testing.T) {
	path := writeSheet(t, []string{"A", "X", "T", "", "kept"})
	c := New(nil)
	first, err := c.Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	bad := filepath.Join(t.TempDir(), "broken.xlsx")
	if err := os.WriteFile(bad, []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Load(context.Background(), bad); !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
	if c.Current() != first {
		t.Error("failed load must not replace the dataset")
	}
}

func TestReloadIsIdempotent(t *testing.T) {
	path := writeSheet(t,
		[]string{"A,B", "X", "T", "Bon", "hello"},
		[]string{"C", "Y", "U", "Mauvais", "world"},
	)
	c := New(nil)

	first, err := c.Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	opts := cmpopts.IgnoreUnexported(phrases.Tree{}, phrases.Category{})
	if diff := cmp.Diff(first.Dataset, second.Dataset, opts); diff != "" {
		t.Errorf("reload differs (-first +second):\n%s", diff)
	}
	if second.Tree.Len() != 3 {
		t.Errorf("expected 3 tree entries after reload, got %d", second.Tree.Len())
	}
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	c := New(nil)
	sheet := &xlsx.Sheet{Name: "S", Rows: [][]string{header, {"A", "X", "T", "", "old"}}}
	newer := &xlsx.Sheet{Name: "S", Rows: [][]string{header, {"B", "Y", "T", "", "new"}}}

	slow := c.begin()
	fast := c.begin()

	if _, err := c.finish(context.Background(), fast, "fast", newer, nil); err != nil {
		t.Fatalf("newest load failed: %v", err)
	}
	if _, err := c.finish(context.Background(), slow, "slow", sheet, nil); !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}
	if got := c.Current().Source; got != "fast" {
		t.Errorf("stale load overwrote dataset: source %q", got)
	}
}

func TestCancelledLoadIsDiscarded(t *testing.T) {
	path := writeSheet(t, []string{"A", "X", "T", "", "x"})
	c := New(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Load(ctx, path); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if c.Current() != nil {
		t.Error("cancelled load must not set a dataset")
	}
}

func TestSearch(t *testing.T) {
	c := New(nil)
	if got := c.Search("anything"); len(got) != 0 {
		t.Errorf("expected no results before load, got %d", len(got))
	}

	path := writeSheet(t,
		[]string{"A", "X", "One", "", "Welcome aboard"},
		[]string{"A", "X", "Two", "", "Goodbye"},
	)
	if _, err := c.Load(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	got := c.Search("weLcome")
	if len(got) != 1 || got[0].Title != "One" {
		t.Errorf("unexpected results: %+v", got)
	}
	if got := c.Search(""); len(got) != 0 {
		t.Errorf("empty query should match nothing, got %d", len(got))
	}
}
