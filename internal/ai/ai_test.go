package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
)

type stubDriver struct {
	out     string
	err     error
	prompts []string
}

func (s *stubDriver) Name() string { return "stub" }

func (s *stubDriver) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.out, s.err
}

func testWeather() *models.WeatherData {
	return &models.WeatherData{
		City:        "London",
		Country:     "GB",
		Temperature: 11.3,
		FeelsLike:   10.6,
		Humidity:    81,
		WindSpeed:   4.1,
		Description: "Light Rain",
	}
}

func TestPoemUsesDriverOutput(t *testing.T) {
	d := &stubDriver{out: "Rain taps the window\nA gray city holds its breath\nClouds begin to part"}
	svc := NewWithDriver(d)

	poem := svc.Poem(context.Background(), testWeather(), constants.PoemHaiku)
	if poem.Fallback {
		t.Error("Fallback = true with a working driver")
	}
	if poem.Text != d.out {
		t.Errorf("Text = %q", poem.Text)
	}
	if len(d.prompts) != 1 || !strings.Contains(d.prompts[0], "haiku") {
		t.Errorf("driver prompt = %q", d.prompts)
	}
	if !strings.Contains(d.prompts[0], "light rain") {
		t.Errorf("prompt missing lowercased condition: %q", d.prompts[0])
	}
}

func TestPoemFallsBackOnDriverFailure(t *testing.T) {
	svc := NewWithDriver(&stubDriver{err: errors.New("quota exceeded")})

	for style, canned := range fallbackPoems {
		poem := svc.Poem(context.Background(), testWeather(), style)
		if !poem.Fallback {
			t.Errorf("%s: Fallback = false after driver error", style)
		}
		found := false
		for _, text := range canned {
			if poem.Text == text {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("%s: poem text is not one of the canned poems: %q", style, poem.Text)
		}
	}
}

func TestPoemEmptyResponseFallsBack(t *testing.T) {
	svc := NewWithDriver(&stubDriver{out: "   \n  "})
	poem := svc.Poem(context.Background(), testWeather(), constants.PoemLimerick)
	if !poem.Fallback {
		t.Error("whitespace-only response did not trigger fallback")
	}
}

func TestPoemUnknownStyleDefaultsToHaiku(t *testing.T) {
	svc := NewWithDriver(nil)
	poem := svc.Poem(context.Background(), testWeather(), constants.PoemStyle("ballad"))
	if poem.Style != constants.PoemHaiku {
		t.Errorf("Style = %q, want haiku", poem.Style)
	}
}

func TestInsightFallbackBands(t *testing.T) {
	svc := NewWithDriver(nil)

	tests := []struct {
		name string
		temp float64
		want string
	}{
		{"hot", 30, "Stay hydrated"},
		{"cold", -2, "Dress warmly"},
		{"mild", 15, "comfortable conditions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testWeather()
			w.Temperature = tt.temp
			got := svc.Insight(context.Background(), w)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Insight() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestInsightPrefersDriver(t *testing.T) {
	d := &stubDriver{out: "A soft rain day; bring a light jacket."}
	svc := NewWithDriver(d)

	got := svc.Insight(context.Background(), testWeather())
	if got != d.out {
		t.Errorf("Insight() = %q", got)
	}
	if !strings.Contains(d.prompts[0], "London, GB") {
		t.Errorf("prompt missing location: %q", d.prompts[0])
	}
}

func TestActivityIdeasRequiresDriver(t *testing.T) {
	svc := NewWithDriver(nil)
	if _, err := svc.ActivityIdeas(context.Background(), testWeather(), ""); err == nil {
		t.Error("ActivityIdeas() with no driver returned nil error")
	}

	d := &stubDriver{out: "Go for a walk - the rain is light."}
	svc = NewWithDriver(d)
	out, err := svc.ActivityIdeas(context.Background(), testWeather(), "low budget")
	if err != nil || out == "" {
		t.Errorf("ActivityIdeas() = %q, %v", out, err)
	}
	if !strings.Contains(d.prompts[0], "low budget") {
		t.Errorf("prompt missing preferences: %q", d.prompts[0])
	}
}
