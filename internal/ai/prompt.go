package ai

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
)

var (
	errNoDriver      = errors.New("no ai driver configured")
	errEmptyResponse = errors.New("model returned an empty response")
)

// poemPrompts are the per-style templates. Placeholders are filled from the
// weather snapshot; the haiku and sonnet lean on numbers, the limerick on
// place, the free verse on wind.
var poemPrompts = map[constants.PoemStyle]string{
	constants.PoemHaiku:     "Write a haiku about %s weather with temperature %.0f°C. Follow 5-7-5 syllable pattern strictly.",
	constants.PoemLimerick:  "Write a funny limerick about %s weather in %s. Make it witty and weather-themed.",
	constants.PoemFreeVerse: "Write a short free verse poem capturing the essence of %s weather, %.0f°C, with %s wind.",
	constants.PoemSonnet:    "Write a 14-line sonnet about %s weather. Include imagery of temperature %.0f°C and %d%% humidity.",
}

func poemPrompt(style constants.PoemStyle, w *models.WeatherData) string {
	condition := strings.ToLower(w.Description)
	if condition == "" {
		condition = "mysterious"
	}
	switch style {
	case constants.PoemLimerick:
		return fmt.Sprintf(poemPrompts[style], condition, w.Location())
	case constants.PoemFreeVerse:
		return fmt.Sprintf(poemPrompts[style], condition, w.Temperature, windDescription(w.WindSpeed))
	case constants.PoemSonnet:
		return fmt.Sprintf(poemPrompts[style], condition, w.Temperature, w.Humidity)
	default:
		return fmt.Sprintf(poemPrompts[constants.PoemHaiku], condition, w.Temperature)
	}
}

func insightPrompt(w *models.WeatherData) string {
	return fmt.Sprintf(`You are a helpful weather assistant. Provide a brief, practical insight about the current weather conditions.

Current weather in %s:
- Temperature: %.1f°C (feels like %.1f°C)
- Conditions: %s
- Humidity: %d%%
- Wind Speed: %.1f m/s

Provide a 2-3 sentence insight about:
1. How the weather feels and what to expect
2. Practical clothing or activity recommendations

Keep it conversational and helpful.`,
		w.Location(), w.Temperature, w.FeelsLike, w.Description, w.Humidity, w.WindSpeed)
}

func activityPrompt(w *models.WeatherData, prefs string) string {
	now := time.Now()
	var b strings.Builder
	fmt.Fprintf(&b, `As an expert activity advisor, suggest 5 engaging activities based on the current weather conditions and context.

Weather Conditions:
- Temperature: %.1f°C
- Condition: %s
- Wind Speed: %.1f m/s
- Humidity: %d%%

Context:
- Time of Day: %s
- Season: %s
- Day of Week: %s
`, w.Temperature, w.Description, w.WindSpeed, w.Humidity,
		timeOfDay(now), season(now), now.Weekday())

	if prefs != "" {
		fmt.Fprintf(&b, "\nUser Preferences: %s\n", prefs)
	}

	b.WriteString(`
List each activity on its own line as "Name - one sentence on why it suits this weather".
Keep suggestions practical and safe.`)
	return b.String()
}

// windDescription maps wind speed to the adjective the free-verse prompt
// wants.
func windDescription(ms float64) string {
	switch {
	case ms < 0.5:
		return "calm"
	case ms < 4:
		return "gentle"
	case ms < 8:
		return "moderate"
	case ms < 14:
		return "strong"
	default:
		return "fierce"
	}
}

func timeOfDay(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "morning"
	case h >= 12 && h < 17:
		return "afternoon"
	case h >= 17 && h < 21:
		return "evening"
	default:
		return "night"
	}
}

func season(t time.Time) string {
	switch t.Month() {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	default:
		return "autumn"
	}
}
