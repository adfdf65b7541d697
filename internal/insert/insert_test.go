package insert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klytics/phrasekit/internal/formats/docx"
)

func TestNewTargets(t *testing.T) {
	var buf bytes.Buffer

	if ins, err := New(Options{Target: TargetStdout, Out: &buf}); err != nil {
		t.Errorf("stdout: %v", err)
	} else if _, ok := ins.(*Writer); !ok {
		t.Errorf("stdout: got %T", ins)
	}

	if ins, err := New(Options{Target: TargetDocx, Document: "a.docx"}); err != nil {
		t.Errorf("docx: %v", err)
	} else if d, ok := ins.(*Document); !ok || d.Marker != docx.DefaultMarker {
		t.Errorf("docx: got %#v", ins)
	}

	if _, err := New(Options{Target: TargetDocx}); err == nil {
		t.Error("docx without document should fail")
	}

	if ins, err := New(Options{Target: TargetClipboard}); err != nil {
		t.Errorf("clipboard: %v", err)
	} else if _, ok := ins.(*Clipboard); !ok {
		t.Errorf("clipboard: got %T", ins)
	}

	if _, err := New(Options{Target: "fax"}); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("expected ErrUnknownTarget, got %v", err)
	}
}

func TestWriterInsert(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{W: &buf}

	if err := w.Insert(context.Background(), "Welcome aboard"); err != nil {
		t.Fatal(err)
	}
	if err := w.Insert(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "Welcome aboard\n\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestDocumentInsert(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reply.docx")
	data, err := docx.WriteDocument(docx.New("Hello " + docx.DefaultMarker))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	ins, err := New(Options{Target: TargetDocx, Document: path})
	if err != nil {
		t.Fatal(err)
	}
	if err := ins.Insert(context.Background(), "world"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	doc, err := docx.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Text(); got != "Hello world"+docx.DefaultMarker {
		t.Errorf("unexpected document text %q", got)
	}
}

func TestDocumentInsertFailureIsReturned(t *testing.T) {
	d := &Document{Path: filepath.Join(t.TempDir(), "missing.docx"), Marker: docx.DefaultMarker}
	if err := d.Insert(context.Background(), "x"); err == nil {
		t.Error("expected error for missing document")
	}
}

func TestInsertHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if err := (&Writer{W: &buf}).Insert(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("cancelled insert must not write")
	}
}

func TestFunc(t *testing.T) {
	var got string
	f := Func(func(_ context.Context, text string) error {
		got = text
		return nil
	})
	if err := f.Insert(context.Background(), "abc"); err != nil || got != "abc" {
		t.Errorf("Func did not forward text: %q, %v", got, err)
	}
}
