package ai

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
)

// fallbackPoems ship with the binary so the poetry tab works with no key
// and no network.
var fallbackPoems = map[constants.PoemStyle][]string{
	constants.PoemHaiku: {
		"Gray clouds gather fast\nRaindrops dance on window panes\nNature's gentle song",
		"Sunshine breaks through clouds\nWarm rays kiss the morning dew\nDay begins anew",
		"Winter wind whispers\nSnowflakes fall like silent dreams\nEarth sleeps peacefully",
	},
	constants.PoemLimerick: {
		"There once was weather so fine,\nWith sunshine that loved to shine,\nThe clouds stayed away,\nFor most of the day,\nAnd the forecast was simply divine!",
		"A storm cloud rolled in with a roar,\nWith rain like we'd not seen before,\nIt thundered and flashed,\nWhile the raindrops all dashed,\nThen left us all wanting much more!",
	},
	constants.PoemFreeVerse: {
		"The sky speaks in whispers today,\nClouds drift like thoughts\nacross the canvas of blue.\nTemperature holds steady,\na comfortable embrace\nfrom the atmosphere.",
		"Wind carries stories\nfrom distant places,\nwhile the sun paints\ngolden highlights\non everything it touches.",
	},
	constants.PoemSonnet: {
		"When weather paints the world in shades of gray,\nAnd clouds like cotton blankets fill the sky,\nThe temperature speaks of autumn's way,\nAs gentle breezes whisper and reply.\n\nThe humidity hangs thick upon the air,\nLike morning mist that clings to verdant ground,\nWhile nature shows her beauty everywhere,\nIn every sight and every gentle sound.\n\nThough storms may come and sunshine may depart,\nThe weather's dance continues through each day,\nA symphony that touches every heart,\nIn its eternal, ever-changing way.\n\nSo let us pause and feel the weather's grace,\nAnd find in nature's moods our peaceful place.",
	},
}

func fallbackPoem(style constants.PoemStyle) models.Poem {
	poems, ok := fallbackPoems[style]
	if !ok {
		poems = fallbackPoems[constants.PoemHaiku]
	}
	return models.Poem{
		Style:    style,
		Text:     poems[rand.Intn(len(poems))],
		Fallback: true,
	}
}

// fallbackInsight is the keyless insight: one sentence shaped by the
// temperature band.
func fallbackInsight(w *models.WeatherData) string {
	condition := strings.ToLower(w.Description)
	if condition == "" {
		condition = "current weather"
	}

	insight := fmt.Sprintf("The %s conditions with a temperature of %.1f°C create ", condition, w.Temperature)
	switch {
	case w.Temperature > 25:
		insight += "ideal conditions for outdoor activities. Stay hydrated and consider sun protection."
	case w.Temperature < 5:
		insight += "perfect weather for cozy indoor activities. Dress warmly if venturing outside."
	default:
		insight += "comfortable conditions for both indoor and outdoor pursuits."
	}
	return insight
}
