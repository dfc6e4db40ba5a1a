package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/snipmd/snipmd/internal/generator"
	"github.com/snipmd/snipmd/internal/language"
	"github.com/snipmd/snipmd/internal/watch"
)

// maxEvents is how many regeneration lines the watch view keeps.
const maxEvents = 8

// Run starts the interactive watch view. It regenerates combined
// files whenever the watcher reports changes and returns when the
// user quits.
func Run(gen *generator.Generator, w *watch.Watcher) error {
	m := newModel(gen, w)
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}

type changeMsg []string

type watchErrMsg struct{ err error }

type regenMsg struct {
	stats generator.Stats
	err   error
	when  time.Time
}

type eventLine struct {
	when time.Time
	text string
	err  bool
}

type model struct {
	gen     *generator.Generator
	watcher *watch.Watcher
	spinner spinner.Model
	events  []eventLine
	fatal   error
}

func newModel(gen *generator.Generator, w *watch.Watcher) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Path
	return model{
		gen:     gen,
		watcher: w,
		spinner: sp,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, regenerate(m.gen), waitForChange(m.watcher))
}

// waitForChange blocks on the watcher until something happens.
func waitForChange(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case batch, ok := <-w.Changes():
			if !ok {
				return nil
			}
			return changeMsg(batch)
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return watchErrMsg{err}
		}
	}
}

// regenerate runs one generation pass off the UI loop.
func regenerate(gen *generator.Generator) tea.Cmd {
	return func() tea.Msg {
		stats, err := gen.Generate()
		return regenMsg{stats: stats, err: err, when: time.Now()}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, regenerate(m.gen)
		}

	case changeMsg:
		return m, tea.Batch(regenerate(m.gen), waitForChange(m.watcher))

	case watchErrMsg:
		m.fatal = msg.err
		return m, tea.Quit

	case regenMsg:
		m.events = append(m.events, newEventLine(msg))
		if len(m.events) > maxEvents {
			m.events = m.events[len(m.events)-maxEvents:]
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func newEventLine(msg regenMsg) eventLine {
	if msg.err != nil {
		return eventLine{when: msg.when, text: msg.err.Error(), err: true}
	}
	text := fmt.Sprintf("wrote %d, unchanged %d (%d snippets in %d groups)",
		msg.stats.Written, msg.stats.Unchanged, msg.stats.Snippets, msg.stats.Groups)
	return eventLine{when: msg.when, text: text}
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(m.spinner.View())
	b.WriteString(" watching ")
	b.WriteString(styles.Path.Render(m.gen.Root()))
	b.WriteString(styles.Dim.Render("  (q to quit, r to regenerate)"))
	b.WriteString("\n\n")

	for _, ev := range m.events {
		style := styles.Written
		if ev.err {
			style = styles.Err
		} else if strings.HasPrefix(ev.text, "wrote 0") {
			style = styles.Clean
		}
		b.WriteString("  ")
		b.WriteString(styles.Dim.Render(ev.when.Format("15:04:05")))
		b.WriteString(" ")
		b.WriteString(style.Render(ev.text))
		b.WriteString("\n")
	}

	if m.fatal != nil {
		b.WriteString("\n  ")
		b.WriteString(styles.Err.Render(m.fatal.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderLanguages formats the effective language table for terminal
// output.
func RenderLanguages(set *language.Set) string {
	var b strings.Builder
	b.WriteString(styles.Header.Render(fmt.Sprintf("%-14s %-14s %s", "EXTENSION", "LANGUAGE", "SYNTAX")))
	b.WriteString("\n")
	for _, l := range set.TabOrder() {
		b.WriteString(styles.Cell.Render(fmt.Sprintf("%-14s %-14s %s", l.Ext, l.Name, l.Syntax)))
		b.WriteString("\n")
	}
	return b.String()
}
