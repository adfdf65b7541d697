// Package insert delivers a selected phrase to its destination: a .docx
// document at its cursor, the system clipboard, or a plain writer.
package insert

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/klytics/phrasekit/internal/formats/docx"
)

// Targets understood by New.
const (
	TargetDocx      = "docx"
	TargetClipboard = "clipboard"
	TargetStdout    = "stdout"
)

// ErrUnknownTarget is returned by New for an unsupported target name.
var ErrUnknownTarget = errors.New("unknown insert target")

// Inserter replaces the current selection of its destination with text and
// leaves the cursor right after it. A failed insert is final; callers do
// not retry.
type Inserter interface {
	Insert(ctx context.Context, text string) error
}

// Options selects and configures an Inserter.
type Options struct {
	Target   string
	Document string
	Marker   string
	Out      io.Writer
	Logger   *zap.Logger
}

// New builds the Inserter described by opts.
func New(opts Options) (Inserter, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	switch opts.Target {
	case TargetDocx:
		if opts.Document == "" {
			return nil, fmt.Errorf("insert target %q needs a document — set insert.document or pass --doc", TargetDocx)
		}
		marker := opts.Marker
		if marker == "" {
			marker = docx.DefaultMarker
		}
		return &Document{Path: opts.Document, Marker: marker, logger: logger}, nil
	case TargetClipboard:
		return &Clipboard{logger: logger}, nil
	case TargetStdout, "":
		if opts.Out == nil {
			return nil, fmt.Errorf("insert target %q needs an output writer", TargetStdout)
		}
		return &Writer{W: opts.Out}, nil
	}
	return nil, fmt.Errorf("%w %q — use %s, %s or %s", ErrUnknownTarget, opts.Target, TargetDocx, TargetClipboard, TargetStdout)
}

// Document inserts into a .docx file at its cursor marker.
type Document struct {
	Path   string
	Marker string

	logger *zap.Logger
}

// Insert implements Inserter.
func (d *Document) Insert(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	placement, err := docx.InsertFile(d.Path, d.Marker, text)
	if err != nil {
		return fmt.Errorf("could not insert into %s: %w", d.Path, err)
	}
	if d.logger != nil {
		d.logger.Info("phrase inserted",
			zap.String("document", d.Path),
			zap.Stringer("placement", placement),
			zap.Int("chars", len([]rune(text))))
	}
	return nil
}

// Clipboard copies the phrase to the system clipboard.
type Clipboard struct {
	logger *zap.Logger
}

// Insert implements Inserter.
func (c *Clipboard) Insert(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return errors.New("no clipboard available on this system — install xclip, xsel or wl-clipboard")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("could not copy to clipboard: %w", err)
	}
	if c.logger != nil {
		c.logger.Debug("phrase copied to clipboard", zap.Int("chars", len([]rune(text))))
	}
	return nil
}

// Writer writes the phrase, newline-terminated, to W.
type Writer struct {
	W io.Writer
}

// Insert implements Inserter.
func (w *Writer) Insert(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w.W, text)
	return err
}

// Func adapts a plain function to Inserter.
type Func func(ctx context.Context, text string) error

// Insert implements Inserter.
func (f Func) Insert(ctx context.Context, text string) error {
	return f(ctx, text)
}
