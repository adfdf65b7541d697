// Package tui is the full-screen phrase browser: a search box above the
// category accordion, or above the flat result list while a query is typed.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/klytics/phrasekit/internal/catalog"
	"github.com/klytics/phrasekit/internal/insert"
	"github.com/klytics/phrasekit/internal/render"
)

const refreshInterval = time.Second

type insertedMsg struct {
	label string
	err   error
}

type reloadedMsg struct {
	snap *catalog.Snapshot
	err  error
}

type refreshMsg struct{}

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	categoryStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E0E0E0"))
	subcategoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0"))
	countStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	cursorStyle      = lipgloss.NewStyle().Reverse(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	emptyStyle       = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#777777"))

	ratedTextColor = lipgloss.Color("#1F1F1F")
)

// App is the bubbletea model of the browser.
type App struct {
	ctx     context.Context
	catalog *catalog.Catalog
	sink    insert.Inserter
	source  string

	search    textinput.Model
	accordion *render.Accordion
	gen       uint64
	rows      []render.Line
	cursor    int

	status string
	err    error

	width  int
	height int
}

// NewApp creates a browser over cat. source is reloaded on ctrl+r; picked
// phrases are inserted through sink.
func NewApp(ctx context.Context, cat *catalog.Catalog, sink insert.Inserter, source string) *App {
	ti := textinput.New()
	ti.Placeholder = "Search phrases…"
	ti.Prompt = "🔍 "
	ti.CharLimit = 200
	ti.Focus()

	a := &App{
		ctx:     ctx,
		catalog: cat,
		sink:    sink,
		source:  source,
		search:  ti,
	}
	a.refresh()
	return a
}

// Run starts the browser and blocks until the user quits or ctx is done.
func Run(ctx context.Context, app *App) error {
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.search.Width = max(10, msg.Width-6)
		return a, nil

	case refreshMsg:
		// Picks up reloads done outside the browser, e.g. by the watcher.
		if snap := a.catalog.Current(); snap != nil && snap.Generation != a.gen {
			a.refresh()
		}
		return a, tick()

	case insertedMsg:
		if msg.err != nil {
			a.err = msg.err
			a.status = ""
		} else {
			a.err = nil
			a.status = fmt.Sprintf("Inserted %q", msg.label)
		}
		return a, nil

	case reloadedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.status = fmt.Sprintf("Reloaded %d phrase(s) from %s", len(msg.snap.Records), filepath.Base(msg.snap.Source))
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "esc":
			if a.search.Value() == "" {
				return a, tea.Quit
			}
			a.search.SetValue("")
			a.refreshRows()
			return a, nil
		case "up", "ctrl+p":
			if a.cursor > 0 {
				a.cursor--
			}
			return a, nil
		case "down", "ctrl+n":
			if a.cursor < len(a.rows)-1 {
				a.cursor++
			}
			return a, nil
		case "enter":
			return a, a.activate()
		case "ctrl+r":
			return a, a.reload()
		}
	}

	before := a.search.Value()
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	if a.search.Value() != before {
		a.cursor = 0
		a.refreshRows()
	}
	return a, cmd
}

// refresh rebuilds the accordion from the current dataset. Open state is
// reset, as it is on every load.
func (a *App) refresh() {
	snap := a.catalog.Current()
	if snap == nil {
		a.accordion = nil
		a.gen = 0
	} else {
		a.accordion = render.NewAccordion(snap.Tree, a.sink)
		a.gen = snap.Generation
	}
	a.cursor = 0
	a.refreshRows()
}

func (a *App) refreshRows() {
	switch {
	case a.accordion == nil:
		a.rows = nil
	case strings.TrimSpace(a.search.Value()) == "":
		a.rows = a.accordion.Lines()
	default:
		items := render.Items(a.catalog.Search(a.search.Value()), a.sink)
		a.rows = make([]render.Line, len(items))
		for i, it := range items {
			a.rows[i] = render.Line{Kind: render.LinePhrase, Item: it, Index: i + 1}
		}
	}
	if a.cursor >= len(a.rows) {
		a.cursor = max(0, len(a.rows)-1)
	}
}

func (a *App) activate() tea.Cmd {
	if a.cursor >= len(a.rows) {
		return nil
	}
	row := a.rows[a.cursor]
	switch row.Kind {
	case render.LineCategory:
		a.accordion.Toggle(row.Category, "")
		a.refreshRows()
		return nil
	case render.LineSubcategory:
		a.accordion.Toggle(row.Category, row.Subcategory)
		a.refreshRows()
		return nil
	}

	ctx, item := a.ctx, row.Item
	return func() tea.Msg {
		return insertedMsg{label: item.Label(), err: item.Select(ctx)}
	}
}

func (a *App) reload() tea.Cmd {
	if a.source == "" {
		a.err = catalog.ErrNoFile
		return nil
	}
	ctx, cat, path := a.ctx, a.catalog, a.source
	return func() tea.Msg {
		snap, err := cat.Load(ctx, path)
		return reloadedMsg{snap: snap, err: err}
	}
}

func (a *App) View() string {
	var b strings.Builder

	title := "⬡ PHRASES"
	if snap := a.catalog.Current(); snap != nil {
		title += " · " + filepath.Base(snap.Source)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(a.search.View())
	b.WriteString("\n\n")
	b.WriteString(a.renderRows())
	b.WriteString("\n")

	if a.err != nil {
		b.WriteString(errorStyle.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	} else if a.status != "" {
		b.WriteString(footerStyle.Render(a.status))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("↑/↓ move · enter open/insert · esc clear · ctrl+r reload · ctrl+c quit"))
	return b.String()
}

func (a *App) renderRows() string {
	if a.accordion == nil {
		return emptyStyle.Render("No spreadsheet loaded.")
	}
	if len(a.rows) == 0 {
		if strings.TrimSpace(a.search.Value()) != "" {
			return emptyStyle.Render(render.NoResults)
		}
		return emptyStyle.Render("(no phrases loaded)")
	}

	first, last := a.window()
	lines := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		lines = append(lines, a.renderRow(a.rows[i], i == a.cursor))
	}
	return strings.Join(lines, "\n")
}

// window returns the slice of rows that fits the terminal, keeping the
// cursor visible.
func (a *App) window() (int, int) {
	visible := a.height - 8
	if visible <= 0 || visible >= len(a.rows) {
		return 0, len(a.rows)
	}
	first := 0
	if a.cursor >= visible {
		first = a.cursor - visible + 1
	}
	return first, first + visible
}

func (a *App) renderRow(l render.Line, selected bool) string {
	switch l.Kind {
	case render.LineCategory:
		s := categoryStyle.Render(arrow(l.Open) + " " + l.Category)
		if selected {
			return cursorStyle.Render(s)
		}
		return s
	case render.LineSubcategory:
		s := "  " + subcategoryStyle.Render(arrow(l.Open)+" "+l.Subcategory) + countStyle.Render(fmt.Sprintf(" (%d)", l.Count))
		if selected {
			return cursorStyle.Render(s)
		}
		return s
	}

	indent := ""
	if strings.TrimSpace(a.search.Value()) == "" {
		indent = "    "
	}
	return indent + phraseStyle(l.Item, selected).Render(render.Title(l.Item))
}

func phraseStyle(it render.Selectable, selected bool) lipgloss.Style {
	dec := render.Decorate(it.Rating())
	if dec.Background == "" {
		if selected {
			return cursorStyle
		}
		return lipgloss.NewStyle()
	}
	bg := dec.Background
	if selected {
		bg = dec.Hover
	}
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(ratedTextColor).
		Padding(0, 1)
	if selected {
		style = style.Bold(true)
	}
	return style
}

func arrow(open bool) string {
	if open {
		return "▼"
	}
	return "▶"
}
