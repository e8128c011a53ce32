// Package poetry renders the poetry tab: one generated poem at a time with
// style cycling. Generation happens upstream; a GenerateMsg asks for more.
package poetry

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/tui/styles"
)

// GenerateMsg asks the root model for a new poem in the given style.
type GenerateMsg struct {
	Style constants.PoemStyle
}

var styleCycle = []constants.PoemStyle{
	constants.PoemHaiku,
	constants.PoemLimerick,
	constants.PoemFreeVerse,
	constants.PoemSonnet,
}

type KeyMap struct {
	Style key.Binding
	New   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Style: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "style"),
		),
		New: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "new poem"),
		),
	}
}

type Model struct {
	poem     *models.Poem
	styleIdx int
	keys     KeyMap
	loading  bool
	styles   styles.Set
	width    int
	height   int
}

// New starts with no poem; the first one is generated on demand.
func New(st styles.Set, width, height int) Model {
	return Model{
		keys:   DefaultKeyMap(),
		styles: st,
		width:  width,
		height: height,
	}
}

func (m *Model) SetPoem(p models.Poem) {
	m.poem = &p
	m.loading = false
	for i, s := range styleCycle {
		if s == p.Style {
			m.styleIdx = i
			break
		}
	}
}

func (m *Model) SetStyles(st styles.Set) {
	m.styles = st
}

// Style returns the currently selected poem style.
func (m Model) Style() constants.PoemStyle {
	return styleCycle[m.styleIdx]
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Style):
			m.styleIdx = (m.styleIdx + 1) % len(styleCycle)
			return m.generate()
		case key.Matches(msg, m.keys.New):
			return m.generate()
		}
	}
	return m, nil
}

func (m Model) generate() (Model, tea.Cmd) {
	m.loading = true
	style := m.Style()
	return m, func() tea.Msg { return GenerateMsg{Style: style} }
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	header := m.styles.Title.Render("Weather poetry — " + styleLabel(m.Style()))

	var body string
	switch {
	case m.loading:
		body = m.styles.Dim.Render("composing...")
	case m.poem == nil:
		body = m.styles.Dim.Render("Press 'g' for a poem about today's sky.")
	default:
		body = m.styles.Card.Padding(1, 3).Render(m.poem.Text)
		if m.poem.Fallback {
			body = lipgloss.JoinVertical(lipgloss.Center, body,
				m.styles.Dim.Render("offline verse — add an AI key for fresh ones"))
		}
	}

	hint := m.styles.Dim.Render("s style · g new poem")

	content := lipgloss.JoinVertical(lipgloss.Center, header, "", body, "", hint)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func styleLabel(s constants.PoemStyle) string {
	return strings.ReplaceAll(string(s), "_", " ")
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
