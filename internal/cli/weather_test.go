package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
)

func TestWeatherCmdOffline(t *testing.T) {
	ctx, cleanup := setupTestCLI(t)
	defer cleanup()

	cmd := &WeatherCmd{City: []string{"Berlin"}}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("weather command failed: %v", err)
	}
}

func TestWeatherCmdDefaultCity(t *testing.T) {
	ctx, cleanup := setupTestCLI(t)
	defer cleanup()

	// No CITY argument falls back to the configured default.
	cmd := &WeatherCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("weather command without args failed: %v", err)
	}
}

func TestForecastCmdValidate(t *testing.T) {
	tests := []struct {
		days    int
		wantErr bool
	}{
		{1, false},
		{3, false},
		{constants.DefaultForecastDays, false},
		{0, true},
		{constants.DefaultForecastDays + 1, true},
	}

	for _, tt := range tests {
		cmd := &ForecastCmd{Days: tt.days}
		err := cmd.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate() with days=%d: err=%v, wantErr=%v", tt.days, err, tt.wantErr)
		}
	}
}

func TestForecastCmdOffline(t *testing.T) {
	ctx, cleanup := setupTestCLI(t)
	defer cleanup()

	cmd := &ForecastCmd{City: []string{"Lisbon"}, Days: 2}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("forecast command failed: %v", err)
	}
}

func TestHistoryCmdEmpty(t *testing.T) {
	ctx, cleanup := setupTestCLI(t)
	defer cleanup()

	cmd := &HistoryCmd{Limit: 10}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("history command on empty store failed: %v", err)
	}
}

func TestHistoryCmd(t *testing.T) {
	ctx, cleanup := setupTestCLI(t)
	defer cleanup()

	now := time.Now()
	for i, rec := range []models.WeatherRecord{
		{Location: "Oslo, NO", Temperature: 3.5, Humidity: 80, Description: "Light Snow"},
		{Location: "Oslo, NO", Temperature: 4.1, Humidity: 78, Description: "Overcast Clouds"},
		{Location: "Lagos, NG", Temperature: 31, Humidity: 65, Description: "Clear Sky"},
	} {
		rec.RecordedAt = now.Add(time.Duration(i-3) * time.Hour).Format(constants.TimestampFormat)
		if err := ctx.Store.SaveWeather(rec); err != nil {
			t.Fatalf("failed to seed weather record: %v", err)
		}
	}

	cmd := &HistoryCmd{Limit: 10}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("history command failed: %v", err)
	}

	scoped := &HistoryCmd{City: []string{"Oslo,", "NO"}, Days: 7}
	if err := scoped.Run(ctx); err != nil {
		t.Errorf("city-scoped history failed: %v", err)
	}

	records, err := ctx.Store.WeatherHistory(strings.Join(scoped.City, " "), 7)
	if err != nil {
		t.Fatalf("WeatherHistory failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 Oslo records, got %d", len(records))
	}
}
