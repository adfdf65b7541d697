package render

import (
	"github.com/klytics/phrasekit/internal/insert"
	"github.com/klytics/phrasekit/internal/phrases"
)

// LineKind identifies a row of the accordion.
type LineKind int

const (
	// LineCategory is a top-level header.
	LineCategory LineKind = iota
	// LineSubcategory is a header nested under a category.
	LineSubcategory
	// LinePhrase is a selectable phrase under a sub-category.
	LinePhrase
)

// Line is one visible row of the accordion.
type Line struct {
	Kind        LineKind
	Category    string
	Subcategory string
	// Open reports whether a header is expanded.
	Open bool
	// Count is the number of phrases below a sub-category header.
	Count int
	// Item and Index (1-based, over visible phrases) are set for phrases.
	Item  Selectable
	Index int
}

// Label is the text shown for the line, without decoration.
func (l Line) Label() string {
	switch l.Kind {
	case LineCategory:
		return l.Category
	case LineSubcategory:
		return l.Subcategory
	}
	return l.Item.Label()
}

// Accordion is a two-level collapsible view over a phrase tree. Categories
// start open and sub-categories start closed.
type Accordion struct {
	tree *phrases.Tree
	sink insert.Inserter
	open map[string]bool
}

// NewAccordion builds an accordion whose phrases insert through sink.
func NewAccordion(tree *phrases.Tree, sink insert.Inserter) *Accordion {
	if tree == nil {
		tree = phrases.NewTree()
	}
	return &Accordion{tree: tree, sink: sink, open: make(map[string]bool)}
}

func headerKey(category, subcategory string) string {
	if subcategory == "" {
		return "c\x00" + category
	}
	return "s\x00" + category + "\x00" + subcategory
}

// IsOpen reports whether the category (subcategory == "") or the
// sub-category header is expanded.
func (a *Accordion) IsOpen(category, subcategory string) bool {
	if v, ok := a.open[headerKey(category, subcategory)]; ok {
		return v
	}
	return subcategory == ""
}

// Toggle flips a header and returns its new state. Unknown headers are
// left alone and report false.
func (a *Accordion) Toggle(category, subcategory string) bool {
	c := a.tree.Category(category)
	if c == nil || (subcategory != "" && c.Subcategory(subcategory) == nil) {
		return false
	}
	state := !a.IsOpen(category, subcategory)
	a.open[headerKey(category, subcategory)] = state
	return state
}

// SetAll opens or closes every header.
func (a *Accordion) SetAll(open bool) {
	for _, c := range a.tree.Categories {
		a.open[headerKey(c.Name, "")] = open
		for _, s := range c.Subcategories {
			a.open[headerKey(c.Name, s.Name)] = open
		}
	}
}

// Lines returns the visible rows in display order.
func (a *Accordion) Lines() []Line {
	var lines []Line
	index := 0
	for _, c := range a.tree.Categories {
		catOpen := a.IsOpen(c.Name, "")
		lines = append(lines, Line{Kind: LineCategory, Category: c.Name, Open: catOpen})
		if !catOpen {
			continue
		}
		for _, s := range c.Subcategories {
			subOpen := a.IsOpen(c.Name, s.Name)
			lines = append(lines, Line{
				Kind:        LineSubcategory,
				Category:    c.Name,
				Subcategory: s.Name,
				Open:        subOpen,
				Count:       len(s.Phrases),
			})
			if !subOpen {
				continue
			}
			for _, rec := range s.Phrases {
				index++
				lines = append(lines, Line{
					Kind:        LinePhrase,
					Category:    c.Name,
					Subcategory: s.Name,
					Item:        Phrase{Record: rec, Sink: a.sink},
					Index:       index,
				})
			}
		}
	}
	return lines
}

// Entries returns the visible phrases, numbered as in Lines.
func (a *Accordion) Entries() []Selectable {
	var items []Selectable
	for _, l := range a.Lines() {
		if l.Kind == LinePhrase {
			items = append(items, l.Item)
		}
	}
	return items
}
