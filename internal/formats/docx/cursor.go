package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMarker stands for the cursor inside a document.
const DefaultMarker = "{{cursor}}"

// ErrEmptyMarker is returned when no cursor marker is configured.
var ErrEmptyMarker = errors.New("cursor marker must not be empty")

// Placement tells where an insertion landed.
type Placement int

const (
	// AtCursor means the text replaced the cursor marker.
	AtCursor Placement = iota
	// AtEnd means the document had no cursor, so the text was appended as
	// a new final paragraph.
	AtEnd
)

func (p Placement) String() string {
	if p == AtEnd {
		return "end"
	}
	return "cursor"
}

// InsertAtCursor replaces the first cursor marker in data with text and
// puts the marker back right after it, so repeated inserts read in order.
// Without a marker the text goes into a new paragraph at the end of the
// body, followed by the marker.
func InsertAtCursor(data []byte, marker, text string) ([]byte, Placement, error) {
	if marker == "" {
		return nil, AtCursor, ErrEmptyMarker
	}

	placement := AtCursor
	out, err := rewritePart(data, documentPart, func(body string) (string, error) {
		escMarker := escape(marker)
		if idx := strings.Index(body, escMarker); idx >= 0 {
			// Close the marker's <w:t> around any line breaks in text.
			inserted := strings.ReplaceAll(escape(text), "\n", `</w:t><w:br/><w:t xml:space="preserve">`)
			return body[:idx] + inserted + body[idx:], nil
		}

		placement = AtEnd
		end := strings.LastIndex(body, "</w:body>")
		if end < 0 {
			return "", fmt.Errorf("invalid .docx file — no body element found in document.xml")
		}
		// Section properties must stay the last child of the body.
		if sect := strings.LastIndex(body[:end], "<w:sectPr"); sect >= 0 {
			end = sect
		}
		para := paragraphXML(text + marker)
		return body[:end] + para + body[end:], nil
	})
	if err != nil {
		return nil, placement, err
	}
	return out, placement, nil
}

// InsertFile applies InsertAtCursor to the document at path, replacing the
// file only once the new content has been fully written.
func InsertFile(path, marker, text string) (Placement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return AtCursor, fmt.Errorf("file not found: %s — create it with 'phrasekit doc new %s'", path, path)
		}
		return AtCursor, fmt.Errorf("could not read %s: %w", path, err)
	}

	out, placement, err := InsertAtCursor(data, marker, text)
	if err != nil {
		return placement, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".phrasekit-*.docx")
	if err != nil {
		return placement, fmt.Errorf("could not create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return placement, fmt.Errorf("could not write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return placement, fmt.Errorf("could not write %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return placement, fmt.Errorf("could not replace %s: %w", path, err)
	}
	return placement, nil
}

// rewritePart copies the archive, passing the named part through fn.
func rewritePart(data []byte, name string, fn func(string) (string, error)) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("invalid .docx file: %w", err)
	}

	buf := new(bytes.Buffer)
	writer := zip.NewWriter(buf)
	found := false

	for _, f := range reader.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("could not open %s in archive: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("could not read %s: %w", f.Name, err)
		}

		if f.Name == name {
			found = true
			edited, err := fn(string(content))
			if err != nil {
				return nil, err
			}
			content = []byte(edited)
		}

		header := &zip.FileHeader{
			Name:   f.Name,
			Method: f.Method,
		}
		header.SetModTime(f.Modified)

		w, err := writer.CreateHeader(header)
		if err != nil {
			return nil, fmt.Errorf("could not create %s in output: %w", f.Name, err)
		}
		if _, err := w.Write(content); err != nil {
			return nil, fmt.Errorf("could not write %s: %w", f.Name, err)
		}
	}

	if !found {
		return nil, fmt.Errorf("invalid .docx file — missing %s", name)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("could not finalize output archive: %w", err)
	}
	return buf.Bytes(), nil
}
