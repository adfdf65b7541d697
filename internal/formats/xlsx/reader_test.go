package xlsx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAndReadFirstSheet(t *testing.T) {
	original := &Workbook{
		Sheets: []Sheet{
			{
				Name: "Phrases",
				Rows: [][]string{
					{"Travail", "Thème", "Situation", "Avis", "Phrase"},
					{"Sales,HR", "Intro", "Meeting", "Bon", "Welcome aboard"},
				},
			},
			{
				Name: "Ignored",
				Rows: [][]string{{"not", "read"}},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "phrases.xlsx")
	if err := WriteFile(original, path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	sheet, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if sheet.Name != "Phrases" {
		t.Errorf("expected first sheet 'Phrases', got %q", sheet.Name)
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(sheet.Rows))
	}
	if got := sheet.Rows[1][4]; got != "Welcome aboard" {
		t.Errorf("expected 'Welcome aboard', got %q", got)
	}
}

func TestReadBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phrases.xlsx")
	wb := &Workbook{Sheets: []Sheet{{Rows: [][]string{{"h"}, {"a", "b"}}}}}
	if err := WriteFile(wb, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	sheet, err := ReadBytes(data)
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if sheet.Name != "Sheet1" {
		t.Errorf("expected default name Sheet1, got %q", sheet.Name)
	}
	if sheet.DataRows() != 1 {
		t.Errorf("expected 1 data row, got %d", sheet.DataRows())
	}
}

func TestReadBytesInvalid(t *testing.T) {
	if _, err := ReadBytes([]byte("not a zip")); err == nil {
		t.Error("expected error for non-xlsx data")
	}
}

func TestReadFileNotFound(t *testing.T) {
	if _, err := ReadFile("/nonexistent/phrases.xlsx"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteFileEmptyWorkbook(t *testing.T) {
	err := WriteFile(&Workbook{}, filepath.Join(t.TempDir(), "x.xlsx"))
	if !errors.Is(err, ErrNoSheets) {
		t.Errorf("expected ErrNoSheets, got %v", err)
	}
}

func TestDataRows(t *testing.T) {
	sheet := Sheet{
		Rows: [][]string{
			{"A", "B"},
			{"C", "D"},
			{"", ""},
			{},
		},
	}
	if n := sheet.DataRows(); n != 1 {
		t.Errorf("expected 1 data row, got %d", n)
	}
}
