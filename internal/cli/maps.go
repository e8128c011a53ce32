package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/maps"
)

type MapCmd struct {
	City []string `arg:"" optional:"" help:"City name (defaults to the configured city)."`
	Zoom int      `short:"z" help:"Zoom level (1-20)." default:"13"`
	Size string   `help:"Image size as WIDTHxHEIGHT." default:"400x300"`
	Out  string   `short:"o" help:"Download the map image to this path instead of printing the URL."`
}

func (c *MapCmd) Validate() error {
	if c.Zoom < 1 || c.Zoom > 20 {
		return fmt.Errorf("zoom must be between 1 and 20")
	}
	return nil
}

func (c *MapCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if !ctx.Maps.HasKey() {
		return fmt.Errorf("no Google Maps API key configured; set one with 'skycast keys set maps'")
	}

	city := strings.Join(c.City, " ")
	if city == "" {
		city = ctx.DefaultCity()
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.WeatherRequestTimeout)
	defer cancel()

	loc, err := ctx.Maps.Geocode(reqCtx, city)
	if err != nil {
		return fmt.Errorf("failed to geocode %s: %w", city, err)
	}

	opts := maps.MapOptions{Zoom: c.Zoom, Size: c.Size}
	if c.Out != "" {
		if err := ctx.Maps.SaveStaticMap(reqCtx, loc.Lat, loc.Lon, opts, c.Out); err != nil {
			return fmt.Errorf("failed to save map: %w", err)
		}
		fmt.Printf("✓ Map of %s saved to %s\n", loc.Address, c.Out)
		return nil
	}

	fmt.Printf("%s (%.4f, %.4f)\n", loc.Address, loc.Lat, loc.Lon)
	fmt.Println(ctx.Maps.StaticMapURL(loc.Lat, loc.Lon, opts))
	return nil
}

type GeocodeCmd struct {
	Query []string `arg:"" optional:"" help:"Address or place to look up."`
	Lat   *float64 `help:"Latitude for a reverse lookup."`
	Lon   *float64 `help:"Longitude for a reverse lookup."`
}

func (c *GeocodeCmd) Validate() error {
	if (c.Lat == nil) != (c.Lon == nil) {
		return fmt.Errorf("reverse lookups need both --lat and --lon")
	}
	if c.Lat == nil && len(c.Query) == 0 {
		return fmt.Errorf("pass an address, or --lat and --lon for a reverse lookup")
	}
	return nil
}

func (c *GeocodeCmd) Run(ctx *Context) error {
	if !ctx.Maps.HasKey() {
		return fmt.Errorf("no Google Maps API key configured; set one with 'skycast keys set maps'")
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.WeatherRequestTimeout)
	defer cancel()

	var (
		loc *maps.GeocodeResult
		err error
	)
	if c.Lat != nil {
		loc, err = ctx.Maps.ReverseGeocode(reqCtx, *c.Lat, *c.Lon)
	} else {
		loc, err = ctx.Maps.Geocode(reqCtx, strings.Join(c.Query, " "))
	}
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	fmt.Printf("Address:  %s\n", loc.Address)
	fmt.Printf("Lat/Lon:  %.6f, %.6f\n", loc.Lat, loc.Lon)
	if loc.PlaceID != "" {
		fmt.Printf("Place ID: %s\n", loc.PlaceID)
	}
	return nil
}
