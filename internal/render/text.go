package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// NoResults is shown when a search matches nothing.
const NoResults = "No results found"

const (
	arrowClosed = "▶"
	arrowOpen   = "▼"
)

var (
	categoryStyle    = color.New(color.Bold, color.FgCyan)
	subcategoryStyle = color.New(color.Bold)
	dim              = color.New(color.FgHiBlack)
)

// WriteTree prints the visible accordion rows. Phrases are numbered so they
// can be picked by index.
func WriteTree(w io.Writer, a *Accordion) error {
	lines := a.Lines()
	if len(lines) == 0 {
		_, err := dim.Fprintln(w, "  (no phrases loaded)")
		return err
	}
	for _, l := range lines {
		var err error
		switch l.Kind {
		case LineCategory:
			_, err = categoryStyle.Fprintf(w, "%s %s\n", arrow(l.Open), l.Category)
		case LineSubcategory:
			_, err = subcategoryStyle.Fprintf(w, "  %s %s", arrow(l.Open), l.Subcategory)
			if err == nil {
				_, err = dim.Fprintf(w, " (%d)\n", l.Count)
			}
		case LinePhrase:
			err = writeItem(w, "    ", l.Index, l.Item)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteResults prints items as a flat numbered list, or the no-results
// state when there are none.
func WriteResults(w io.Writer, items []Selectable) error {
	if len(items) == 0 {
		_, err := dim.Fprintln(w, NoResults)
		return err
	}
	for i, it := range items {
		if err := writeItem(w, "", i+1, it); err != nil {
			return err
		}
	}
	return nil
}

func writeItem(w io.Writer, indent string, index int, it Selectable) error {
	num := fmt.Sprintf("%s[%d] ", indent, index)
	title := Title(it)
	if c := Decorate(it.Rating()).Color; c != nil {
		_, err := fmt.Fprintf(w, "%s%s\n", num, c.Sprint(title))
		return err
	}
	_, err := fmt.Fprintf(w, "%s%s\n", num, title)
	return err
}

func arrow(open bool) string {
	if open {
		return arrowOpen
	}
	return arrowClosed
}

// Preview shortens text to at most n runes on a single line.
func Preview(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if n <= 0 || len(r) <= n {
		return text
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
