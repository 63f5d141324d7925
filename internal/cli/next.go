package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mawaqit-dev/mawaqit/internal/cache"
	"github.com/mawaqit-dev/mawaqit/internal/prayer"
	"github.com/spf13/cobra"
)

var (
	flagFormat  string
	flagPrayers string
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time with a countdown.\nDesigned for status bars (tmux, i3blocks, etc.).",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template")
	cmd.Flags().StringVar(&flagPrayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)
	goTimeFmt := goTimeFormat(cfg)

	// Determine which events to track.
	// Priority: --prayers flag > config > defaults.
	tracked := selectedEvents(cfg)
	if cmd.Flags().Changed("prayers") && flagPrayers != "" {
		tracked = strings.Split(flagPrayers, ",")
		for i := range tracked {
			tracked[i] = strings.TrimSpace(tracked[i])
		}
	}

	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		// Cache init failure is non-fatal; only geolocation caching is lost.
		c = nil
		fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
	}

	loc, err := resolveLocation(cfg, c)
	if err != nil {
		return err
	}

	agg, params, err := buildAggregator(cfg, loc)
	if err != nil {
		return err
	}

	tzLoc, err := displayLocation(params)
	if err != nil {
		return err
	}
	now := time.Now().In(tzLoc)

	day, err := agg.Daily(now)
	if err != nil {
		return err
	}

	next, ok := nextTracked(day.Events, tracked, now)
	if !ok {
		// Every tracked event today has passed; roll over to tomorrow.
		tomorrow, err := agg.Daily(now.AddDate(0, 0, 1))
		if err != nil {
			return err
		}
		events := filterEvents(tomorrow.Events, tracked)
		if len(events) == 0 {
			return fmt.Errorf("could not determine next prayer")
		}
		next = events[0]
	}

	fmt.Print(prayer.FormatOutput(next, now, tzLoc, flagFormat, goTimeFmt))
	return nil
}

// nextTracked returns the first tracked event strictly after now.
func nextTracked(events []prayer.Event, tracked []string, now time.Time) (prayer.Event, bool) {
	for _, e := range filterEvents(events, tracked) {
		if e.Time.After(now) {
			return e, true
		}
	}
	return prayer.Event{}, false
}
