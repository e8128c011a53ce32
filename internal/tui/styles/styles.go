// Package styles is the dashboard's look, kept as data: the named terminal
// palettes, the alpha-blend helper that fakes glass translucency over solid
// colors, and the lipgloss kit the views render with. Components keep their
// own one-off styles local; anything shared lives here.
package styles

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultTheme is used when the settings name no palette or an unknown one.
const DefaultTheme = "midnight"

// Palette is one named theme. All values are "#rrggbb" colors.
type Palette struct {
	Name       string
	Accent     string
	Background string
	Text       string
	TextDim    string
	Border     string
	Success    string
	Warning    string
	Error      string
}

func terminal(name, accent, background string) Palette {
	return Palette{
		Name:       name,
		Accent:     accent,
		Background: background,
		Text:       "#ffffff",
		TextDim:    "#888888",
		Border:     "#333333",
		Success:    "#00cc66",
		Warning:    "#ffaa00",
		Error:      "#ff4444",
	}
}

var palettes = map[string]Palette{
	"matrix":    terminal("Matrix", "#00ff00", "#000000"),
	"cyberpunk": terminal("Cyberpunk 2077", "#ff006e", "#0a0a0a"),
	"arctic":    terminal("Arctic Terminal", "#00d4ff", "#0d1117"),
	"solar":     terminal("Solar Flare", "#ffa500", "#1a0f00"),
	"mystic":    terminal("Mystic Purple", "#9b59b6", "#1a0f1f"),
	"midnight":  terminal("Midnight Blue", "#1e90ff", "#0a0a1f"),
}

// PaletteFor returns the palette for a theme setting, falling back to the
// default for unknown names.
func PaletteFor(theme string) Palette {
	if p, ok := palettes[strings.ToLower(strings.TrimSpace(theme))]; ok {
		return p
	}
	return palettes[DefaultTheme]
}

// Themes lists the selectable theme keys, sorted.
func Themes() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Blend mixes overlay into base by alpha: 0 keeps base, 1 yields overlay.
// Terminals have no real alpha compositing, so translucency is faked by
// leaning a surface's solid color a few percent toward white or the accent.
// Unparseable colors return base unchanged.
func Blend(base, overlay string, alpha float64) string {
	b, err := colorful.Hex(base)
	if err != nil {
		return base
	}
	o, err := colorful.Hex(overlay)
	if err != nil {
		return base
	}
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return b.BlendRgb(o, alpha).Hex()
}

// PanelBG is the outer glass surface: the background nudged toward white.
func (p Palette) PanelBG() string { return Blend(p.Background, "#ffffff", 0.06) }

// CardBG sits on panels, one step brighter than PanelBG.
func (p Palette) CardBG() string { return Blend(p.Background, "#ffffff", 0.12) }

// ActiveBG is the accent-tinted surface behind the selected tab.
func (p Palette) ActiveBG() string { return Blend(p.Background, p.Accent, 0.35) }

// Set is the shared style kit built from one palette.
type Set struct {
	Doc       lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Panel     lipgloss.Style
	Card      lipgloss.Style
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Accent    lipgloss.Style
	Dim       lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
}

// NewSet builds the style kit for a palette.
func NewSet(p Palette) Set {
	return Set{
		Doc: lipgloss.NewStyle().Padding(1, 2),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.TextDim)).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)).
			Background(lipgloss.Color(p.ActiveBG())).
			Padding(0, 1).
			Bold(true),
		Panel: lipgloss.NewStyle().
			Background(lipgloss.Color(p.PanelBG())).
			Padding(1, 2),
		Card: lipgloss.NewStyle().
			Background(lipgloss.Color(p.CardBG())).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)).
			Padding(0, 1),
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Bold(true),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextDim)),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Text)),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextDim)).Italic(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Success)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warning)).Italic(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)).Bold(true),
	}
}
