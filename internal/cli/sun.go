package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mawaqit-dev/mawaqit/internal/astro"
	"github.com/mawaqit-dev/mawaqit/internal/cache"
	"github.com/mawaqit-dev/mawaqit/internal/display"
	"github.com/spf13/cobra"
)

func newSunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sun",
		Short: "Show the current solar position",
		Long:  "Display the instantaneous solar position (declination, equation of time,\nhour angle, altitude, azimuth) for the configured location. Useful for\nshadow-based qibla and prayer-time verification.",
		RunE:  runSun,
	}
}

func runSun(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)

	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		c = nil
		fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
	}

	loc, err := resolveLocation(cfg, c)
	if err != nil {
		return err
	}

	now := time.Now()
	pos := astro.SunPosition(loc.Coords.Latitude, loc.Coords.Longitude, now)

	if FlagJSON {
		out := struct {
			Location locationJSON   `json:"location"`
			Time     string         `json:"time"`
			Position astro.Position `json:"position"`
		}{
			Location: locationJSON{
				City:      loc.City,
				Country:   loc.Country,
				Latitude:  loc.Coords.Latitude,
				Longitude: loc.Coords.Longitude,
			},
			Time:     now.UTC().Format(time.RFC3339),
			Position: pos,
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println()
	fmt.Printf("  %s\n", display.Bold("Solar Position"))
	fmt.Println()
	fmt.Printf("  %s\n", loc.String())
	fmt.Printf("  %s\n", now.UTC().Format("02 Jan 2006 15:04:05 MST"))
	fmt.Println()
	fmt.Printf("  %-18s %9.3f°\n", "Declination", pos.Declination)
	fmt.Printf("  %-18s %9.3f°\n", "Right ascension", pos.RightAscension)
	fmt.Printf("  %-18s %8.2f min\n", "Equation of time", pos.EquationOfTime)
	fmt.Printf("  %-18s %9.3f°\n", "Hour angle", pos.HourAngle)
	fmt.Printf("  %-18s %9.3f°\n", "Altitude", pos.Altitude)
	fmt.Printf("  %-18s %9.3f°\n", "Azimuth", pos.Azimuth)
	fmt.Println()
	return nil
}
