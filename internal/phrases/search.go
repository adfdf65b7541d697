package phrases

import "strings"

// Dataset is everything built from one loaded sheet.
type Dataset struct {
	Records []Record `json:"records"`
	Tree    *Tree    `json:"tree"`
}

// Build parses grid into both the flat search list and the category tree.
func Build(grid [][]string) *Dataset {
	return &Dataset{
		Records: ParseRows(grid),
		Tree:    BuildTree(grid),
	}
}

// ParseRows converts every valid data row of grid into a Record.
// Short or missing rows are skipped without error.
func ParseRows(grid [][]string) []Record {
	var list []Record
	validRows(grid, func(idx int, row []string) {
		list = append(list, recordFromRow(idx, row))
	})
	return list
}

// Search returns the records whose text contains every whitespace-separated
// token of query, case-insensitively, in their original order. An empty
// query matches nothing.
func Search(query string, records []Record) []Record {
	tokens := strings.Fields(strings.ToLower(query))
	results := []Record{}
	if len(tokens) == 0 {
		return results
	}
	for _, r := range records {
		if matchAll(strings.ToLower(r.Text), tokens) {
			results = append(results, r)
		}
	}
	return results
}

func matchAll(text string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}
