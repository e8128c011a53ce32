package weather

import (
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/ehunter/skycast/internal/models"
)

// sampleConditions are the stand-in sky states. The pick is hashed from the
// city name so repeated runs show the same demo weather for the same city.
var sampleConditions = []struct {
	desc string
	icon string
}{
	{"Clear Sky", "01d"},
	{"Few Clouds", "02d"},
	{"Scattered Clouds", "03d"},
	{"Light Rain", "10d"},
	{"Overcast Clouds", "04d"},
}

func citySeed(city string) int64 {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(city))))
	return int64(h.Sum32())
}

// displayCity normalizes free-text input ("london,gb") into the city part
// with each word capitalized.
func displayCity(city string) string {
	if i := strings.IndexByte(city, ','); i >= 0 {
		city = city[:i]
	}
	return titleCase(strings.ToLower(strings.TrimSpace(city)))
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }

// SampleCurrent builds plausible current conditions derived only from the
// city name. No country code is attached, which marks the data as demo
// output wherever the "City, CC" form would normally appear.
func SampleCurrent(city string) *models.WeatherData {
	rng := rand.New(rand.NewSource(citySeed(city)))
	cond := sampleConditions[rng.Intn(len(sampleConditions))]
	now := time.Now()

	temp := round1(8 + rng.Float64()*18)
	return &models.WeatherData{
		City:         displayCity(city),
		Temperature:  temp,
		FeelsLike:    round1(temp - 1 + rng.Float64()*2),
		Humidity:     40 + rng.Intn(45),
		WindSpeed:    round1(1 + rng.Float64()*7),
		WindDeg:      rng.Intn(360),
		Pressure:     1000 + rng.Intn(30),
		Description:  cond.desc,
		Icon:         cond.icon,
		VisibilityKM: 10,
		Cloudiness:   rng.Intn(90),
		Sunrise:      time.Date(now.Year(), now.Month(), now.Day(), 6, 30, 0, 0, now.Location()),
		Sunset:       time.Date(now.Year(), now.Month(), now.Day(), 19, 45, 0, 0, now.Location()),
		Timestamp:    now,
	}
}

// SampleForecast builds cnt three-hourly points with a plausible diurnal
// temperature swing around the city's sample baseline.
func SampleForecast(city string, cnt int) *models.Forecast {
	rng := rand.New(rand.NewSource(citySeed(city) + 1))
	cond := sampleConditions[rng.Intn(len(sampleConditions))]
	base := 8 + rng.Float64()*18

	rainy := strings.Contains(cond.desc, "Rain")
	start := time.Now().Truncate(3 * time.Hour).Add(3 * time.Hour)

	f := &models.Forecast{
		City:   displayCity(city),
		Points: make([]models.ForecastPoint, 0, cnt),
	}
	for i := 0; i < cnt; i++ {
		ts := start.Add(time.Duration(i) * 3 * time.Hour)
		diurnal := 4 * math.Sin((float64(ts.Hour())-9)/24*2*math.Pi)
		temp := round1(base + diurnal + rng.Float64()*2 - 1)

		pop := round1(rng.Float64()*0.2) // mostly dry
		if rainy {
			pop = round1(0.3 + rng.Float64()*0.5)
		}

		f.Points = append(f.Points, models.ForecastPoint{
			Time:        ts,
			Temperature: temp,
			FeelsLike:   round1(temp - 1),
			Humidity:    45 + rng.Intn(40),
			WindSpeed:   round1(1 + rng.Float64()*7),
			Pressure:    1005 + rng.Intn(20),
			Description: cond.desc,
			Icon:        cond.icon,
			POP:         pop,
		})
	}
	return f
}
