//go:build ignore

// This program generates the phrasekit test fixtures: a phrase spreadsheet
// and a reply document with a cursor marker.
package main

import (
	"fmt"
	"os"

	"github.com/klytics/phrasekit/cmd/sample"
	"github.com/klytics/phrasekit/internal/formats/docx"
	"github.com/klytics/phrasekit/internal/formats/xlsx"
)

func main() {
	if err := generateXlsx(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating phrases.xlsx: %v\n", err)
		os.Exit(1)
	}

	if err := generateDocx(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating reply.docx: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Test fixtures generated successfully.")
}

func generateXlsx() error {
	wb := &xlsx.Workbook{
		Sheets: []xlsx.Sheet{
			{Name: "Phrases", Rows: append([][]string{sample.Header}, sample.Rows...)},
			// Only the first sheet is read; this one must never show up.
			{Name: "Archive", Rows: [][]string{sample.Header, {"Old", "Old", "Retired", "Bon", "Retired phrase"}}},
		},
	}
	return xlsx.WriteFile(wb, "testdata/phrases.xlsx")
}

func generateDocx() error {
	doc := docx.New(
		"Dear customer,",
		"Thank you for your message.",
		docx.DefaultMarker,
		"Best regards,\nThe support team",
	)
	data, err := docx.WriteDocument(doc)
	if err != nil {
		return err
	}
	return os.WriteFile("testdata/reply.docx", data, 0644)
}
