package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mawaqit-dev/mawaqit/internal/cache"
	"github.com/mawaqit-dev/mawaqit/internal/display"
	"github.com/mawaqit-dev/mawaqit/internal/prayer"
	"github.com/mawaqit-dev/mawaqit/internal/schedule"
	"github.com/spf13/cobra"
)

func runToday(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)
	goTimeFmt := goTimeFormat(cfg)

	c, err := cache.New(cfg.CacheDir)
	if err != nil {
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

	events := filterEvents(day.Events, selectedEvents(cfg))

	// Current and next events. Current may live in yesterday's schedule.
	calc, err := prayer.NewCalculator(loc.Coords, params)
	if err != nil {
		return err
	}
	current, err := calc.CurrentEvent(now)
	if err != nil {
		return err
	}
	next, hasNext := day.Times.Next(now)

	if FlagJSON {
		return printTodayJSON(day, events, current, next, hasNext, now, loc, params, goTimeFmt, tzLoc)
	}

	printTodayRich(day, events, current, next, hasNext, now, loc, params, goTimeFmt, tzLoc)
	return nil
}

// filterEvents keeps the named events, in schedule order.
func filterEvents(events []prayer.Event, names []string) []prayer.Event {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		if canonical, ok := prayer.IsEventName(n); ok {
			keep[canonical] = true
		}
	}
	out := make([]prayer.Event, 0, len(names))
	for _, e := range events {
		if keep[e.Name] {
			out = append(out, e)
		}
	}
	return out
}

// printTodayRich renders the colored terminal output for today's schedule.
func printTodayRich(day *schedule.Day, events []prayer.Event, current, next prayer.Event, hasNext bool, now time.Time, loc resolvedLocation, params prayer.Params, goTimeFmt string, tzLoc *time.Location) {
	fmt.Println()
	fmt.Printf("  %s\n", display.Bold("Prayer Times"))
	fmt.Println()

	fmt.Printf("  %s\n", loc.String())
	if params.TimeZone != "" {
		fmt.Printf("  %s\n", params.TimeZone)
	}
	fmt.Printf("  %s\n", now.Format("02 Jan 2006"))
	fmt.Printf("  %s\n", day.Hijri.Format())
	fmt.Println()

	maxNameLen := 0
	for _, e := range events {
		if len(e.Name) > maxNameLen {
			maxNameLen = len(e.Name)
		}
	}

	for _, e := range events {
		timeStr := e.Time.In(tzLoc).Format(goTimeFmt)
		line := fmt.Sprintf("  %-*s  %s", maxNameLen, e.Name, timeStr)

		switch {
		case e.Name == current.Name && !e.Time.After(now):
			// Current event: dimmed.
			fmt.Println(display.Dim(line))
		case hasNext && e.Name == next.Name && e.Time.Equal(next.Time):
			// Next event: accent color + countdown.
			remaining := prayer.FormatRemaining(prayer.TimeRemaining(e, now))
			suffix := fmt.Sprintf("  <- next in %s", remaining)
			fmt.Println(display.Accent(line) + display.Accent(suffix))
		default:
			fmt.Println(line)
		}
	}

	fmt.Println()
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location locationJSON      `json:"location"`
	Date     dateJSON          `json:"date"`
	Timings  map[string]string `json:"timings"`
	Current  string            `json:"current"`
	Next     *nextJSON         `json:"next"`
}

type locationJSON struct {
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Timezone  string  `json:"timezone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type dateJSON struct {
	Gregorian string `json:"gregorian"`
	Hijri     string `json:"hijri"`
}

type nextJSON struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

func makeLocationJSON(loc resolvedLocation, params prayer.Params) locationJSON {
	return locationJSON{
		City:      loc.City,
		Country:   loc.Country,
		Timezone:  params.TimeZone,
		Latitude:  loc.Coords.Latitude,
		Longitude: loc.Coords.Longitude,
	}
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(day *schedule.Day, events []prayer.Event, current, next prayer.Event, hasNext bool, now time.Time, loc resolvedLocation, params prayer.Params, goTimeFmt string, tzLoc *time.Location) error {
	timings := make(map[string]string)
	for _, e := range events {
		timings[strings.ToLower(e.Name)] = e.Time.In(tzLoc).Format(goTimeFmt)
	}

	out := todayJSON{
		Location: makeLocationJSON(loc, params),
		Date: dateJSON{
			Gregorian: now.Format("02 Jan 2006"),
			Hijri:     day.Hijri.Format(),
		},
		Timings: timings,
		Current: strings.ToLower(current.Name),
	}

	if hasNext {
		remaining := prayer.FormatRemaining(prayer.TimeRemaining(next, now))
		out.Next = &nextJSON{
			Prayer:    strings.ToLower(next.Name),
			Time:      next.Time.In(tzLoc).Format(goTimeFmt),
			Remaining: remaining,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
