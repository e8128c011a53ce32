// Package ai generates the dashboard's text features (weather insights,
// poems, activity ideas) through whichever provider has a configured key.
// Every feature degrades to canned text, so the tabs render with no key,
// no network, or a misbehaving model.
package ai

import (
	"context"
	"strings"

	"github.com/ehunter/skycast/internal/ai/gemini"
	"github.com/ehunter/skycast/internal/ai/openai"
	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/logger"
	"github.com/ehunter/skycast/internal/models"
)

// Driver is one text-generation backend.
type Driver interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service routes feature prompts to the active driver.
type Service struct {
	driver Driver
}

// New selects a driver by key availability: Gemini first, then OpenAI.
// With no keys the service still works, serving fallbacks only.
func New(ctx context.Context, geminiKey, openaiKey string) *Service {
	s := &Service{}

	if geminiKey != "" {
		d, err := gemini.New(ctx, geminiKey)
		if err != nil {
			logger.Warn("gemini driver unavailable", "error", err)
		} else {
			s.driver = d
		}
	}
	if s.driver == nil && openaiKey != "" {
		s.driver = openai.New(openaiKey)
	}

	if s.driver != nil {
		logger.Debug("ai service ready", "driver", s.driver.Name())
	} else {
		logger.Debug("ai service running on fallbacks only")
	}
	return s
}

// NewWithDriver wires an explicit driver; nil means fallbacks only.
func NewWithDriver(d Driver) *Service { return &Service{driver: d} }

// Available reports whether a live driver is attached.
func (s *Service) Available() bool { return s.driver != nil }

// DriverName returns the active driver's name, or "none".
func (s *Service) DriverName() string {
	if s.driver == nil {
		return "none"
	}
	return s.driver.Name()
}

// Close releases the driver's resources when it holds any.
func (s *Service) Close() error {
	if c, ok := s.driver.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// generate runs one prompt with the request budget applied. An empty or
// whitespace answer counts as a failure.
func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.AIRequestTimeout)
	defer cancel()

	out, err := s.driver.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", errEmptyResponse
	}
	return out, nil
}

// Insight returns a short, friendly read on the current conditions. A nil
// snapshot yields an empty string, there is nothing to comment on.
func (s *Service) Insight(ctx context.Context, w *models.WeatherData) string {
	if w == nil {
		return ""
	}
	if s.driver == nil {
		return fallbackInsight(w)
	}
	out, err := s.generate(ctx, insightPrompt(w))
	if err != nil {
		logger.Warn("insight generation failed, using fallback", "driver", s.driver.Name(), "error", err)
		return fallbackInsight(w)
	}
	return out
}

// Poem writes a weather poem in the requested style. Unknown styles are
// treated as haiku; driver failures and missing weather return one of the
// canned poems.
func (s *Service) Poem(ctx context.Context, w *models.WeatherData, style constants.PoemStyle) models.Poem {
	if _, ok := poemPrompts[style]; !ok {
		logger.Warn("unknown poem style, defaulting to haiku", "style", style)
		style = constants.PoemHaiku
	}

	if s.driver == nil || w == nil {
		return fallbackPoem(style)
	}
	out, err := s.generate(ctx, poemPrompt(style, w))
	if err != nil {
		logger.Warn("poem generation failed, using fallback", "style", style, "error", err)
		return fallbackPoem(style)
	}
	return models.Poem{Style: style, Text: out}
}

// ActivityIdeas asks for free-text activity suggestions matched to the
// weather. Unlike the other features this reports failure, because the
// activities service has its own catalog to fall back on.
func (s *Service) ActivityIdeas(ctx context.Context, w *models.WeatherData, prefs string) (string, error) {
	if s.driver == nil {
		return "", errNoDriver
	}
	return s.generate(ctx, activityPrompt(w, prefs))
}
