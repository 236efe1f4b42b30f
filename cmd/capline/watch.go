package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pkt.systems/capline"
)

type tickMsg time.Time

// scriptLine is one utterance of the replayed script; nil tokens mean
// a hard break.
type scriptLine struct {
	tokens []capline.Token
}

type watchModel struct {
	gen      *capline.LineGenerator
	settings capline.Settings
	script   []scriptLine
	idx      int
	n        int
	step     int
	delay    time.Duration
	boxWidth int
	termW    int
	frame    string
}

// runWatch shows the caption window live in an alt-screen view while
// the script replays on a tick, looping until the user quits.
func runWatch(gen *capline.LineGenerator, settings capline.Settings, script string, step int, delay time.Duration, width int) error {
	m := watchModel{
		gen:      gen,
		settings: settings,
		step:     step,
		delay:    delay,
		boxWidth: width,
	}
	if m.step <= 0 {
		m.step = 1
	}
	if m.delay <= 0 {
		m.delay = defaultSimDelay
	}
	for _, ln := range strings.Split(script, "\n") {
		if strings.TrimSpace(ln) == "" {
			m.script = append(m.script, scriptLine{})
			continue
		}
		m.script = append(m.script, scriptLine{tokens: capline.ScriptTokens(ln)})
	}
	m.refresh()

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m watchModel) Init() tea.Cmd { return m.tick() }

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.termW = msg.Width
	case tickMsg:
		m.advance()
		return m, m.tick()
	}
	return m, nil
}

// advance plays one decoder pass: extend the current utterance, or
// finalize and move on, or break on a blank script line. The script
// loops with a hard break between repetitions.
func (m *watchModel) advance() {
	if len(m.script) == 0 {
		return
	}
	if m.idx >= len(m.script) {
		m.idx = 0
		m.n = 0
		m.gen.Break()
		m.refresh()
		return
	}
	cur := m.script[m.idx]
	if cur.tokens == nil {
		m.gen.Break()
		m.idx++
		m.refresh()
		return
	}
	m.n += m.step
	if m.n >= len(cur.tokens) {
		m.gen.Update(cur.tokens, m.settings)
		m.gen.Finalize()
		m.idx++
		m.n = 0
	} else {
		m.gen.Update(cur.tokens[:m.n], m.settings)
	}
	m.refresh()
}

func (m *watchModel) refresh() {
	m.gen.SetText(capline.SinkFunc(func(s string) {
		m.frame = capline.RenderANSI(s)
	}))
}

func (m watchModel) View() string {
	title := titleStyle.Render(" capline ")
	box := borderStyle.Width(m.boxWidth + 2).Render(m.frame)
	st := m.gen.Stats()
	help := helpStyle.Render(fmt.Sprintf("q quit   updates %d   wraps %d", st.Updates, st.LineBreaks))
	view := title + "\n" + box + "\n" + help
	if m.termW > 0 {
		view = lipgloss.NewStyle().MaxWidth(m.termW).Render(view)
	}
	return view
}
