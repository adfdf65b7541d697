// Package phrases turns a spreadsheet grid of canned phrases into the flat
// search list and the category tree used for browsing.
package phrases

import "strings"

// Column layout of a phrase sheet. Row 0 is a header.
const (
	ColWorkType = iota // comma-separated categories
	ColTheme           // comma-separated sub-categories
	ColTitle
	ColRating
	ColText

	// MinColumns is the number of cells a row needs to be usable.
	MinColumns
)

// Fixed fallback labels.
const (
	UntitledLabel       = "Untitled"
	UncategorizedKey    = "Uncategorized"
	UnsubcategorizedKey = "Unsubcategorized"
)

// Rating is a presentation-only quality tag.
type Rating int

const (
	// Unrated is any rating cell other than "Bon" or "Mauvais".
	Unrated Rating = iota
	// Good marks a recommended phrase ("Bon").
	Good
	// Bad marks a phrase to avoid ("Mauvais").
	Bad
)

// ParseRating maps the literal rating cell to a Rating.
func ParseRating(s string) Rating {
	switch s {
	case "Bon":
		return Good
	case "Mauvais":
		return Bad
	}
	return Unrated
}

func (r Rating) String() string {
	switch r {
	case Good:
		return "good"
	case Bad:
		return "bad"
	}
	return "unrated"
}

// MarshalText lets ratings appear as words in JSON and YAML.
func (r Rating) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Record is one insertable phrase derived from exactly one source row.
type Record struct {
	Title  string `json:"title" yaml:"title"`
	Text   string `json:"text" yaml:"text"`
	Rating Rating `json:"rating" yaml:"rating"`
	Row    int    `json:"row" yaml:"row"`
}

func recordFromRow(idx int, row []string) Record {
	title := row[ColTitle]
	if title == "" {
		title = UntitledLabel
	}
	return Record{
		Title:  title,
		Text:   row[ColText],
		Rating: ParseRating(row[ColRating]),
		Row:    idx,
	}
}

// validRows calls fn for every data row with at least MinColumns cells.
func validRows(grid [][]string, fn func(idx int, row []string)) {
	for i := 1; i < len(grid); i++ {
		row := grid[i]
		if len(row) < MinColumns {
			continue
		}
		fn(i, row)
	}
}

// splitKeys splits a comma list, trims each key and drops empties.
// An empty result falls back to the single key def.
func splitKeys(cell, def string) []string {
	var keys []string
	for _, part := range strings.Split(cell, ",") {
		if k := strings.TrimSpace(part); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return []string{def}
	}
	return keys
}
