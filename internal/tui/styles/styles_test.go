package styles

import (
	"sort"
	"testing"
)

func TestBlendEndpointsAndMidpoint(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		over  string
		alpha float64
		want  string
	}{
		{"alpha zero keeps base", "#000000", "#ffffff", 0, "#000000"},
		{"alpha one yields overlay", "#000000", "#ffffff", 1, "#ffffff"},
		{"midpoint", "#000000", "#ffffff", 0.5, "#808080"},
		{"alpha clamped low", "#102030", "#ffffff", -2, "#102030"},
		{"alpha clamped high", "#102030", "#ffffff", 3, "#ffffff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blend(tt.base, tt.over, tt.alpha); got != tt.want {
				t.Errorf("Blend(%q, %q, %v) = %q, want %q", tt.base, tt.over, tt.alpha, got, tt.want)
			}
		})
	}
}

func TestBlendUnparseableReturnsBase(t *testing.T) {
	if got := Blend("not-a-color", "#ffffff", 0.5); got != "not-a-color" {
		t.Errorf("Blend() with bad base = %q, want input back", got)
	}
	if got := Blend("#102030", "garbage", 0.5); got != "#102030" {
		t.Errorf("Blend() with bad overlay = %q, want base back", got)
	}
}

func TestPaletteForFallsBack(t *testing.T) {
	def := PaletteFor(DefaultTheme)
	if got := PaletteFor("neon-dreams"); got != def {
		t.Errorf("PaletteFor(unknown) = %v, want the default palette", got.Name)
	}
	if got := PaletteFor(" MIDNIGHT "); got != def {
		t.Errorf("PaletteFor is case/space sensitive: got %v", got.Name)
	}
	if def.Accent == "" || def.Background == "" {
		t.Error("default palette has empty colors")
	}
}

func TestGlassSurfacesDiffer(t *testing.T) {
	p := PaletteFor("midnight")
	panel, card, active := p.PanelBG(), p.CardBG(), p.ActiveBG()
	if panel == p.Background || card == p.Background || active == p.Background {
		t.Error("glass surface equals the raw background, no translucency effect")
	}
	if panel == card {
		t.Error("panel and card surfaces are identical")
	}
}

func TestThemesSortedAndComplete(t *testing.T) {
	got := Themes()
	if !sort.StringsAreSorted(got) {
		t.Errorf("Themes() = %v, want sorted", got)
	}
	if len(got) != 6 {
		t.Errorf("Themes() has %d entries, want 6", len(got))
	}
	found := false
	for _, name := range got {
		if name == DefaultTheme {
			found = true
		}
	}
	if !found {
		t.Errorf("Themes() %v is missing the default %q", got, DefaultTheme)
	}
}
