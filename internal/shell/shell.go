// Package shell provides the interactive phrasekit REPL.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/klytics/phrasekit/internal/catalog"
	"github.com/klytics/phrasekit/internal/insert"
	"github.com/klytics/phrasekit/internal/render"
)

// ErrExit is returned by Eval when the user asks to leave.
var ErrExit = errors.New("exit")

var commands = []string{
	"load", "tree", "toggle", "expand", "collapse",
	"search", "pick", "show", "history", "help", "exit", "quit",
}

// Session is one interactive shell over a catalog.
type Session struct {
	Catalog     *catalog.Catalog
	Sink        insert.Inserter
	Out         io.Writer
	HistoryFile string
	StartTime   time.Time

	CommandHistory []string

	accordion *render.Accordion
	treeGen   uint64
	last      []render.Selectable
}

// NewSession creates a session that inserts picked phrases through sink.
func NewSession(cat *catalog.Catalog, sink insert.Inserter, out io.Writer) *Session {
	home, _ := os.UserHomeDir()
	return &Session{
		Catalog:     cat,
		Sink:        sink,
		Out:         out,
		HistoryFile: filepath.Join(home, ".phrasekit", "shell_history"),
		StartTime:   time.Now(),
	}
}

// Run starts the REPL loop. It blocks until 'exit' or Ctrl+D.
func (s *Session) Run(ctx context.Context) error {
	_ = os.MkdirAll(filepath.Dir(s.HistoryFile), 0755)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "phrases> ",
		HistoryFile:     s.HistoryFile,
		AutoComplete:    readline.NewPrefixCompleter(s.completer()...),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintln(s.Out, "phrasekit — interactive shell")
	fmt.Fprintln(s.Out, "Type words to search, 'help' for commands, 'exit' to quit.")
	fmt.Fprintln(s.Out)

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := s.Eval(ctx, line); err != nil {
			if errors.Is(err, ErrExit) {
				fmt.Fprintf(s.Out, "\nSession ended. %d commands run in %s.\n",
					len(s.CommandHistory)-1, formatDuration(time.Since(s.StartTime)))
				return nil
			}
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
	}
	return nil
}

// Eval runs a single command line. Words that are not a command are
// searched for.
func (s *Session) Eval(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	s.CommandHistory = append(s.CommandHistory, line)

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "exit", "quit":
		return ErrExit
	case "help":
		s.printHelp()
		return nil
	case "history":
		for i, h := range s.CommandHistory {
			fmt.Fprintf(s.Out, "  %d  %s\n", i+1, h)
		}
		return nil
	case "load":
		return s.load(ctx, arg)
	case "tree":
		return s.tree()
	case "toggle":
		return s.toggle(arg)
	case "expand", "collapse":
		acc, err := s.ensureAccordion()
		if err != nil {
			return err
		}
		acc.SetAll(cmd == "expand")
		return s.tree()
	case "search":
		return s.search(arg)
	case "pick":
		return s.pick(ctx, arg)
	case "show":
		return s.show(arg)
	}
	return s.search(line)
}

func (s *Session) load(ctx context.Context, path string) error {
	snap, err := s.Catalog.Load(ctx, path)
	if err != nil {
		return err
	}
	s.accordion = nil
	s.last = nil
	fmt.Fprintf(s.Out, "Loaded %d phrase(s) in %d categor(ies) from %s\n",
		len(snap.Records), len(snap.Tree.Categories), filepath.Base(snap.Source))
	return nil
}

// ensureAccordion rebuilds the accordion whenever a newer dataset has been
// loaded, including reloads done by the watcher.
func (s *Session) ensureAccordion() (*render.Accordion, error) {
	snap := s.Catalog.Current()
	if snap == nil {
		return nil, fmt.Errorf("no spreadsheet loaded — use 'load <file.xlsx>'")
	}
	if s.accordion == nil || s.treeGen != snap.Generation {
		s.accordion = render.NewAccordion(snap.Tree, s.Sink)
		s.treeGen = snap.Generation
	}
	return s.accordion, nil
}

func (s *Session) tree() error {
	acc, err := s.ensureAccordion()
	if err != nil {
		return err
	}
	s.last = acc.Entries()
	return render.WriteTree(s.Out, acc)
}

func (s *Session) toggle(arg string) error {
	if arg == "" {
		return fmt.Errorf("usage: toggle <category>[/<sub-category>]")
	}
	acc, err := s.ensureAccordion()
	if err != nil {
		return err
	}
	cat, sub, _ := strings.Cut(arg, "/")
	cat, sub = strings.TrimSpace(cat), strings.TrimSpace(sub)
	if s.Catalog.Current().Tree.Category(cat) == nil {
		return fmt.Errorf("unknown category %q", cat)
	}
	acc.Toggle(cat, sub)
	return s.tree()
}

func (s *Session) search(query string) error {
	if s.Catalog.Current() == nil {
		return fmt.Errorf("no spreadsheet loaded — use 'load <file.xlsx>'")
	}
	if strings.TrimSpace(query) == "" {
		s.last = nil
		return nil
	}
	s.last = render.Items(s.Catalog.Search(query), s.Sink)
	return render.WriteResults(s.Out, s.last)
}

func (s *Session) entry(arg string) (render.Selectable, error) {
	if len(s.last) == 0 {
		return nil, fmt.Errorf("nothing to pick — run 'tree' or a search first")
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(s.last) {
		return nil, fmt.Errorf("pick a number between 1 and %d", len(s.last))
	}
	return s.last[n-1], nil
}

func (s *Session) pick(ctx context.Context, arg string) error {
	it, err := s.entry(arg)
	if err != nil {
		return err
	}
	if err := it.Select(ctx); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(s.Out, "Inserted %q\n", it.Label())
	return nil
}

func (s *Session) show(arg string) error {
	it, err := s.entry(arg)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.Out, render.Title(it))
	if p, ok := it.(render.Phrase); ok {
		fmt.Fprintln(s.Out, p.Record.Text)
	}
	return nil
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.Out, "Commands:")
	fmt.Fprintln(s.Out, "  load <file.xlsx>          load a phrase spreadsheet")
	fmt.Fprintln(s.Out, "  tree                      show the category tree")
	fmt.Fprintln(s.Out, "  toggle <cat>[/<sub>]      open or close a header")
	fmt.Fprintln(s.Out, "  expand | collapse         open or close every header")
	fmt.Fprintln(s.Out, "  search <words>            find phrases containing all words")
	fmt.Fprintln(s.Out, "  <words>                   same as search")
	fmt.Fprintln(s.Out, "  pick <n>                  insert entry n of the last listing")
	fmt.Fprintln(s.Out, "  show <n>                  print the full text of entry n")
	fmt.Fprintln(s.Out, "  history | help | exit")
}

func (s *Session) completer() []readline.PrefixCompleterInterface {
	var items []readline.PrefixCompleterInterface
	for _, c := range commands {
		if c == "toggle" {
			items = append(items, readline.PcItem(c, readline.PcItemDynamic(s.categoryNames)))
			continue
		}
		items = append(items, readline.PcItem(c))
	}
	return items
}

func (s *Session) categoryNames(string) []string {
	snap := s.Catalog.Current()
	if snap == nil {
		return nil
	}
	names := make([]string, 0, len(snap.Tree.Categories))
	for _, c := range snap.Tree.Categories {
		names = append(names, c.Name)
	}
	return names
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	m := int(d.Minutes())
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", m, sec)
}
