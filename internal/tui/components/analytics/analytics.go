// Package analytics renders the analytics tab: the city-similarity heatmap,
// detected weather patterns, and the closest-pair insight. All numbers are
// computed upstream; this component only lays them out.
package analytics

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/tui/styles"
)

// heatLimit caps the heatmap size so wide teams still fit a terminal.
const heatLimit = 8

type Model struct {
	profiles []models.WeatherProfile
	matrix   [][]float64
	clusters []models.ClusterResult
	insight  *models.SimilarityInsight
	errText  string
	loading  bool
	styles   styles.Set
	width    int
	height   int
}

func New(st styles.Set, width, height int) Model {
	return Model{
		loading: true,
		styles:  st,
		width:   width,
		height:  height,
	}
}

// SetAnalysis replaces the rendered results. matrix rows must line up with
// profiles; clusters may be nil when the run failed or had too few cities.
func (m *Model) SetAnalysis(profiles []models.WeatherProfile, matrix [][]float64, clusters []models.ClusterResult) {
	m.profiles = profiles
	m.matrix = matrix
	m.clusters = clusters
	m.loading = false
	m.errText = ""
}

func (m *Model) SetInsight(ins models.SimilarityInsight) {
	m.insight = &ins
}

func (m *Model) SetError(text string) {
	m.errText = text
	m.loading = false
}

func (m *Model) SetStyles(st styles.Set) {
	m.styles = st
}

func (m *Model) Refresh() {
	m.loading = true
	m.errText = ""
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.styles.Dim.Render("crunching team weather..."))
	}
	if len(m.profiles) < 2 {
		text := "Need at least two cities to compare. Sync the team tab first."
		if m.errText != "" {
			text = m.errText
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.styles.Dim.Render(text))
	}

	sections := []string{
		m.styles.Title.Render("City similarity"),
		m.heatmap(),
	}
	if m.insight != nil {
		sections = append(sections, "", m.insightView())
	}
	if lines := m.clusterView(); len(lines) > 0 {
		sections = append(sections, "", m.styles.Title.Render("Weather patterns"))
		sections = append(sections, lines...)
	}
	if m.errText != "" {
		sections = append(sections, "", m.styles.Warning.Render("⚠ "+m.errText))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) heatmap() string {
	n := len(m.profiles)
	if n > heatLimit {
		n = heatLimit
	}

	header := strings.Repeat(" ", 11)
	for i := 0; i < n; i++ {
		header += fmt.Sprintf("%7s", shortName(m.profiles[i].CityName, 6))
	}

	rows := []string{m.styles.Label.Render(header)}
	for i := 0; i < n; i++ {
		row := m.styles.Label.Render(fmt.Sprintf("%-11s", shortName(m.profiles[i].CityName, 10)))
		for j := 0; j < n; j++ {
			// The matrix holds raw cosines; the grid shows percentages.
			row += m.cell(m.matrix[i][j] * 100)
		}
		rows = append(rows, row)
	}
	if len(m.profiles) > heatLimit {
		rows = append(rows, m.styles.Dim.Render(fmt.Sprintf("(+%d more cities)", len(m.profiles)-heatLimit)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// cell colors a similarity score: the hotter the color, the closer the pair.
func (m Model) cell(score float64) string {
	var st lipgloss.Style
	switch {
	case score >= 80:
		st = m.styles.Success
	case score >= 60:
		st = m.styles.Accent
	case score >= 40:
		st = m.styles.Warning
	default:
		st = m.styles.Error
	}
	return st.Render(fmt.Sprintf("%7.0f", score))
}

func (m Model) insightView() string {
	ins := m.insight
	line := fmt.Sprintf("Closest pair: %s ↔ %s at %.0f%%", ins.CityA, ins.CityB, ins.Score)
	if len(ins.TopFactors) > 0 {
		line += " · driven by " + strings.Join(ins.TopFactors, ", ")
	}
	out := m.styles.Value.Render(line)
	if ins.Recommendation != "" {
		out += "\n" + m.styles.Dim.Render(ins.Recommendation)
	}
	return out
}

func (m Model) clusterView() []string {
	if len(m.clusters) == 0 {
		return nil
	}

	groups := map[int][]string{}
	labels := map[int]string{}
	for _, c := range m.clusters {
		groups[c.Cluster] = append(groups[c.Cluster], c.CityName)
		labels[c.Cluster] = fmt.Sprintf("%s %s", c.Emoji, c.Name)
	}

	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("%s %s",
			m.styles.Accent.Render(labels[id]+":"),
			m.styles.Value.Render(strings.Join(groups[id], ", "))))
	}
	return lines
}

func shortName(s string, max int) string {
	// Drop the country suffix before truncating, the grid is tight.
	if i := strings.IndexByte(s, ','); i > 0 {
		s = s[:i]
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
