// Package render presents phrases as selectable entries: the category
// accordion and the flat search result list.
package render

import (
	"context"

	"github.com/fatih/color"

	"github.com/klytics/phrasekit/internal/insert"
	"github.com/klytics/phrasekit/internal/phrases"
)

// Selectable is a rendered entry with exactly one action.
type Selectable interface {
	Label() string
	Rating() phrases.Rating
	Select(ctx context.Context) error
}

// Phrase is the Selectable for one phrase record. Selecting it sends the
// record's text to Sink.
type Phrase struct {
	Record phrases.Record
	Sink   insert.Inserter
}

// Label implements Selectable.
func (p Phrase) Label() string { return p.Record.Title }

// Rating implements Selectable.
func (p Phrase) Rating() phrases.Rating { return p.Record.Rating }

// Select implements Selectable.
func (p Phrase) Select(ctx context.Context) error {
	return p.Sink.Insert(ctx, p.Record.Text)
}

// Items wraps records as selectable phrases bound to sink.
func Items(records []phrases.Record, sink insert.Inserter) []Selectable {
	items := make([]Selectable, len(records))
	for i, r := range records {
		items[i] = Phrase{Record: r, Sink: sink}
	}
	return items
}

// Decoration is the icon and colors used for a rating.
type Decoration struct {
	Icon string
	// Color is nil for the default terminal color.
	Color *color.Color
	// Background and Hover are hex colors for richer front-ends; empty
	// means default.
	Background string
	Hover      string
}

var (
	goodDecoration = Decoration{
		Icon:       "✅",
		Color:      color.New(color.FgGreen),
		Background: "#BFEDC6",
		Hover:      "#A7DFAF",
	}
	badDecoration = Decoration{
		Icon:       "⛔",
		Color:      color.New(color.FgRed),
		Background: "#FFC2C3",
		Hover:      "#F5B4B5",
	}
)

// Decorate returns the decoration for r. Unrated phrases get none.
func Decorate(r phrases.Rating) Decoration {
	switch r {
	case phrases.Good:
		return goodDecoration
	case phrases.Bad:
		return badDecoration
	}
	return Decoration{}
}

// Title is the label of s prefixed with its rating icon, if any.
func Title(s Selectable) string {
	if icon := Decorate(s.Rating()).Icon; icon != "" {
		return icon + " " + s.Label()
	}
	return s.Label()
}
