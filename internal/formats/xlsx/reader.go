// Package xlsx reads and writes the phrase spreadsheets (.xlsx).
package xlsx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheets is returned when a workbook contains no worksheet at all.
var ErrNoSheets = errors.New("workbook has no sheets")

// Sheet is the raw cell grid of one worksheet, header row included.
type Sheet struct {
	Name string     `json:"name"`
	Rows [][]string `json:"rows"`
}

// Workbook is an ordered set of sheets, used when writing files.
type Workbook struct {
	Sheets []Sheet `json:"sheets"`
}

// ReadFile opens an .xlsx file and returns its first sheet. Other sheets
// are ignored.
func ReadFile(path string) (*Sheet, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s — check that the path is correct", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	defer f.Close()

	return firstSheet(f)
}

// ReadBytes returns the first sheet of an in-memory .xlsx file.
func ReadBytes(data []byte) (*Sheet, error) {
	return Read(bytes.NewReader(data))
}

// Read returns the first sheet of an .xlsx stream.
func Read(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not read Excel data: %w", err)
	}
	defer f.Close()

	return firstSheet(f)
}

func firstSheet(f *excelize.File) (*Sheet, error) {
	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, ErrNoSheets
	}
	name := names[0]

	// GetRows drops trailing empty cells, so a row with an empty last
	// column comes back short.
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", name, err)
	}
	return &Sheet{Name: name, Rows: rows}, nil
}

// DataRows counts the rows after the header that hold at least one value.
func (s *Sheet) DataRows() int {
	count := 0
	for i := 1; i < len(s.Rows); i++ {
		for _, cell := range s.Rows[i] {
			if cell != "" {
				count++
				break
			}
		}
	}
	return count
}
