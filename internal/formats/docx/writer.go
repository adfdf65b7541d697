// Package docx reads, writes and edits the .docx documents phrases are
// inserted into.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Document is a plain document made of paragraphs. A "\n" inside a
// paragraph is written as a line break.
type Document struct {
	Paragraphs []string
}

// New returns a document with the given paragraphs.
func New(paragraphs ...string) *Document {
	return &Document{Paragraphs: paragraphs}
}

// WriteDocument generates a .docx file from doc and returns the raw bytes.
func WriteDocument(doc *Document) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/_rels/document.xml.rels", docRelsXML},
		{"word/document.xml", documentXML(doc)},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("could not create %s: %w", p.name, err)
		}
		if _, err := w.Write([]byte(p.body)); err != nil {
			return nil, fmt.Errorf("could not write %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("could not finalize .docx archive: %w", err)
	}
	return buf.Bytes(), nil
}

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const docRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
</Relationships>`

func documentXML(doc *Document) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="` + wordNS + `"><w:body>`)
	for _, p := range doc.Paragraphs {
		b.WriteString(paragraphXML(p))
	}
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

// paragraphXML renders text as a single-run paragraph.
func paragraphXML(text string) string {
	return `<w:p><w:r>` + runContentXML(text) + `</w:r></w:p>`
}

// runContentXML renders text as the inside of a run, turning newlines into
// <w:br/> elements.
func runContentXML(text string) string {
	lines := strings.Split(sanitize(text), "\n")
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString(`<w:br/>`)
		}
		b.WriteString(`<w:t xml:space="preserve">`)
		b.WriteString(escape(line))
		b.WriteString(`</w:t>`)
	}
	return b.String()
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return xmlEscaper.Replace(sanitize(s))
}

// sanitize makes s safe as XML character data. Line endings and Word's
// manual line break (U+000B) become "\n"; invalid UTF-8 and characters
// XML 1.0 does not allow become U+FFFD.
func sanitize(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\r' || r == '\v':
			return '\n'
		case isXMLChar(r):
			return r
		}
		return '\uFFFD'
	}, s)
}

func isXMLChar(r rune) bool {
	return r == '\t' || r == '\n' ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}
