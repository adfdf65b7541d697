package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

const documentPart = "word/document.xml"

// ReadFile returns the paragraphs of the .docx file at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s — check that the path is correct", path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("permission denied reading %s — close the file if it is open in another application", path)
		}
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse extracts the non-empty paragraphs of a .docx file. Line breaks
// inside a paragraph come back as "\n".
func Parse(data []byte) (*Document, error) {
	body, err := readPart(data, documentPart)
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	dec := xml.NewDecoder(bytes.NewReader(body))

	var (
		cur    strings.Builder
		inPara bool
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("XML parse error in document.xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				inPara = true
				cur.Reset()
			case "t":
				inText = inPara
			case "br":
				if inPara {
					cur.WriteByte('\n')
				}
			case "tab":
				if inPara {
					cur.WriteByte('\t')
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				if inPara && strings.TrimSpace(cur.String()) != "" {
					doc.Paragraphs = append(doc.Paragraphs, cur.String())
				}
				inPara = false
			}
		case xml.CharData:
			if inText {
				cur.Write(el)
			}
		}
	}

	return doc, nil
}

// Text joins all paragraphs with newlines.
func (d *Document) Text() string {
	return strings.Join(d.Paragraphs, "\n")
}

func readPart(data []byte, name string) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("invalid .docx file — the file does not appear to be a valid ZIP archive: %w", err)
	}
	for _, f := range reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("could not open %s inside .docx archive: %w", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("could not read %s: %w", name, err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("invalid .docx file — missing %s", name)
}
