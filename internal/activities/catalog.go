package activities

import (
	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
)

// Typed constants converted once so the catalog tables stay readable.
var (
	catOutdoor = string(constants.ActivityOutdoor)
	catIndoor  = string(constants.ActivityIndoor)
	catWeather = string(constants.ActivityWeather)
	catSocial  = string(constants.ActivitySocial)

	durShort  = string(constants.DurationShort)
	durMedium = string(constants.DurationMedium)
	durLong   = string(constants.DurationLong)

	gearNone     = string(constants.EquipmentNone)
	gearBasic    = string(constants.EquipmentBasic)
	gearAdvanced = string(constants.EquipmentAdvanced)
)

// The four weather-band catalogs. Rain and storms force the indoor set no
// matter the temperature; otherwise the bands split on 25°C and 15°C.

var rainyActivities = []models.Activity{
	{Name: "Visit a Museum", Category: catIndoor, Duration: durMedium, Equipment: gearNone,
		Description: "Explore art, history, or science exhibits while staying dry"},
	{Name: "Indoor Reading", Category: catIndoor, Duration: durMedium, Equipment: gearNone,
		Description: "Perfect rainy day for a good book"},
	{Name: "Cooking Project", Category: catIndoor, Duration: durShort, Equipment: gearBasic,
		Description: "Try a new recipe and learn culinary skills"},
	{Name: "Board Games", Category: catSocial, Duration: durMedium, Equipment: gearNone,
		Description: "Fun indoor games with family and friends"},
	{Name: "Art & Crafts", Category: catIndoor, Duration: durLong, Equipment: gearBasic,
		Description: "Creative indoor activity for all ages"},
	{Name: "Movie Marathon", Category: catIndoor, Duration: durLong, Equipment: gearNone,
		Description: "Cozy indoor entertainment"},
}

var hotActivities = []models.Activity{
	{Name: "Beach Day", Category: catWeather, Duration: durLong, Equipment: gearBasic,
		Description: "Perfect weather for the beach with sun and sand"},
	{Name: "Outdoor Picnic", Category: catSocial, Duration: durMedium, Equipment: gearBasic,
		Description: "Enjoy a meal in the park with perfect weather"},
	{Name: "Swimming", Category: catWeather, Duration: durShort, Equipment: gearBasic,
		Description: "Cool off in the water on this warm day"},
	{Name: "Outdoor Sports", Category: catOutdoor, Duration: durMedium, Equipment: gearBasic,
		Description: "Great weather for active sports and games"},
	{Name: "Garden Work", Category: catOutdoor, Duration: durShort, Equipment: gearBasic,
		Description: "Perfect conditions for tending to plants and flowers"},
	{Name: "Ice Cream Tour", Category: catSocial, Duration: durShort, Equipment: gearNone,
		Description: "Cool treats perfect for hot weather"},
}

var mildActivities = []models.Activity{
	{Name: "Nature Walk", Category: catOutdoor, Duration: durShort, Equipment: gearNone,
		Description: "Perfect temperature for peaceful walking and nature observation"},
	{Name: "Cycling Adventure", Category: catOutdoor, Duration: durMedium, Equipment: gearAdvanced,
		Description: "Ideal cycling weather for exploration and exercise"},
	{Name: "Photography Walk", Category: catOutdoor, Duration: durMedium, Equipment: gearBasic,
		Description: "Great lighting and comfortable conditions for capturing beautiful moments"},
	{Name: "Outdoor Café", Category: catSocial, Duration: durShort, Equipment: gearNone,
		Description: "Perfect weather for enjoying coffee and socializing outside"},
	{Name: "Park Activities", Category: catOutdoor, Duration: durMedium, Equipment: gearBasic,
		Description: "Enjoy various park facilities and outdoor games"},
	{Name: "Farmers Market", Category: catSocial, Duration: durShort, Equipment: gearNone,
		Description: "Browse local produce and crafts in pleasant weather"},
}

var coldActivities = []models.Activity{
	{Name: "Museum Visit", Category: catIndoor, Duration: durMedium, Equipment: gearNone,
		Description: "Explore art, history, and culture in a warm, comfortable environment"},
	{Name: "Coffee Shop Work", Category: catIndoor, Duration: durLong, Equipment: gearBasic,
		Description: "Cozy indoor workspace perfect for productivity"},
	{Name: "Shopping Mall", Category: catIndoor, Duration: durLong, Equipment: gearNone,
		Description: "Warm indoor shopping and browsing experience"},
	{Name: "Gym Workout", Category: catIndoor, Duration: durShort, Equipment: gearBasic,
		Description: "Stay active and warm with indoor exercise"},
	{Name: "Library Visit", Category: catIndoor, Duration: durLong, Equipment: gearNone,
		Description: "Quiet, warm space for reading, studying, or research"},
	{Name: "Indoor Climbing", Category: catIndoor, Duration: durMedium, Equipment: gearAdvanced,
		Description: "Exciting indoor rock climbing to stay active in cold weather"},
}

// catalog picks the band set for the given conditions. The returned slice is
// a copy; callers mutate scores in place.
func catalog(w *models.WeatherData) []models.Activity {
	switch {
	case rainyCondition(w.Description):
		return cloneActivities(rainyActivities)
	case w.Temperature > 25:
		return cloneActivities(hotActivities)
	case w.Temperature > 15:
		return cloneActivities(mildActivities)
	default:
		return cloneActivities(coldActivities)
	}
}

func cloneActivities(src []models.Activity) []models.Activity {
	return append([]models.Activity(nil), src...)
}
