package docx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mustWrite(t *testing.T, doc *Document) []byte {
	t.Helper()
	data, err := WriteDocument(doc)
	if err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}
	return data
}

func TestWriteAndParse(t *testing.T) {
	data := mustWrite(t, New("Dear team,", "Line one\nLine two", "", "A & B <ok>"))

	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []string{"Dear team,", "Line one\nLine two", "A & B <ok>"}
	if len(doc.Paragraphs) != len(want) {
		t.Fatalf("expected %d paragraphs, got %d: %q", len(want), len(doc.Paragraphs), doc.Paragraphs)
	}
	for i := range want {
		if doc.Paragraphs[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, doc.Paragraphs[i], want[i])
		}
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("plain text")); err == nil {
		t.Error("expected error for non-zip data")
	}
}

func TestInsertAtCursorReplacesMarker(t *testing.T) {
	data := mustWrite(t, New("Hello "+DefaultMarker+" world"))

	out, placement, err := InsertAtCursor(data, DefaultMarker, "dear")
	if err != nil {
		t.Fatalf("InsertAtCursor failed: %v", err)
	}
	if placement != AtCursor {
		t.Errorf("expected AtCursor, got %s", placement)
	}

	doc, err := Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Text(); got != "Hello dear"+DefaultMarker+" world" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestInsertAtCursorKeepsOrder(t *testing.T) {
	data := mustWrite(t, New(DefaultMarker))

	var err error
	for _, s := range []string{"one ", "two ", "three"} {
		data, _, err = InsertAtCursor(data, DefaultMarker, s)
		if err != nil {
			t.Fatal(err)
		}
	}

	doc, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Text(); got != "one two three"+DefaultMarker {
		t.Errorf("cursor did not advance: %q", got)
	}
}

func TestInsertAtCursorNoMarkerAppends(t *testing.T) {
	data := mustWrite(t, New("Existing paragraph"))

	out, placement, err := InsertAtCursor(data, DefaultMarker, "Appended")
	if err != nil {
		t.Fatal(err)
	}
	if placement != AtEnd {
		t.Errorf("expected AtEnd, got %s", placement)
	}

	doc, err := Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %q", doc.Paragraphs)
	}
	if doc.Paragraphs[1] != "Appended"+DefaultMarker {
		t.Errorf("unexpected last paragraph %q", doc.Paragraphs[1])
	}
}

func TestInsertAtCursorEmptyText(t *testing.T) {
	data := mustWrite(t, New("x"+DefaultMarker))

	out, _, err := InsertAtCursor(data, DefaultMarker, "")
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Text() != "x"+DefaultMarker {
		t.Errorf("empty insert changed text: %q", doc.Text())
	}
}

func TestInsertAtCursorEscapesAndBreaks(t *testing.T) {
	data := mustWrite(t, New(DefaultMarker))

	out, _, err := InsertAtCursor(data, DefaultMarker, "Q&A <1>\nnext")
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Text() != "Q&A <1>\nnext"+DefaultMarker {
		t.Errorf("unexpected text %q", doc.Text())
	}
}

func TestInsertAtCursorControlCharacters(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"vertical tab", "line\vbreak", "line\nbreak"},
		{"bell", "bell\a", "bell\uFFFD"},
		{"invalid utf8", "bad\xffutf8", "bad\uFFFDutf8"},
		{"crlf", "a\r\nb", "a\nb"},
		{"lone cr", "a\rb", "a\nb"},
		{"noncharacter", "x\uFFFEy", "x\uFFFDy"},
		{"tab kept", "a\tb", "a\tb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := mustWrite(t, New("Dear "+DefaultMarker))
			out, _, err := InsertAtCursor(data, DefaultMarker, tt.text)
			if err != nil {
				t.Fatal(err)
			}
			doc, err := Parse(out)
			if err != nil {
				t.Fatalf("document no longer parses: %v", err)
			}
			if got, want := doc.Text(), "Dear "+tt.want+DefaultMarker; got != want {
				t.Errorf("text = %q, want %q", got, want)
			}
		})
	}
}

func TestInsertAtCursorAppendSanitizes(t *testing.T) {
	data := mustWrite(t, New("Existing"))
	out, placement, err := InsertAtCursor(data, DefaultMarker, "one\r\ntwo\vthree\x00")
	if err != nil {
		t.Fatal(err)
	}
	if placement != AtEnd {
		t.Errorf("expected AtEnd, got %s", placement)
	}
	doc, err := Parse(out)
	if err != nil {
		t.Fatalf("document no longer parses: %v", err)
	}
	if got := doc.Paragraphs[len(doc.Paragraphs)-1]; got != "one\ntwo\nthree\uFFFD"+DefaultMarker {
		t.Errorf("last paragraph = %q", got)
	}
}

func TestInsertAtCursorEmptyMarker(t *testing.T) {
	data := mustWrite(t, New("x"))
	if _, _, err := InsertAtCursor(data, "", "y"); err != ErrEmptyMarker {
		t.Errorf("expected ErrEmptyMarker, got %v", err)
	}
}

func TestInsertFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letter.docx")
	if err := os.WriteFile(path, mustWrite(t, New("Hi "+DefaultMarker)), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := InsertFile(path, DefaultMarker, "there"); err != nil {
		t.Fatalf("InsertFile failed: %v", err)
	}

	doc, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(doc.Text(), "Hi there") {
		t.Errorf("unexpected text %q", doc.Text())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %d entries", len(entries))
	}
}

func TestInsertFileMissing(t *testing.T) {
	if _, err := InsertFile("/nonexistent/doc.docx", DefaultMarker, "x"); err == nil {
		t.Error("expected error for missing document")
	}
}
