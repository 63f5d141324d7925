package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mawaqit-dev/mawaqit/internal/cache"
	"github.com/mawaqit-dev/mawaqit/internal/display"
	"github.com/mawaqit-dev/mawaqit/internal/prayer"
	"github.com/mawaqit-dev/mawaqit/internal/schedule"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Display a grid of prayer times for N days starting today (default: 7).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days := 7
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("invalid number of days: %q (must be a positive integer)", args[0])
				}
				days = n
			}
			return runRange(cmd, days)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Long:  "Alias for 'list 7'. Display a grid of prayer times for 7 days.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRange(cmd, 7)
		},
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show prayer times for the current calendar month",
		Long:  "Display a grid of prayer times for every day of the current month.",
		RunE:  runMonth,
	}
}

func newYearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "year",
		Short: "Show prayer times for the current calendar year",
		Long:  "Display a grid of prayer times for every day of the current year, sectioned by month.",
		RunE:  runYear,
	}
}

// rangeContext bundles everything the multi-day renderers need.
type rangeContext struct {
	agg      *schedule.Aggregator
	params   prayer.Params
	loc      resolvedLocation
	tzLoc    *time.Location
	now      time.Time
	events   []string
	timeFmt  string
	useCache *cache.Cache
}

func newRangeContext(cmd *cobra.Command) (*rangeContext, error) {
	cfg := effectiveConfig(cmd)

	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		c = nil
		fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
	}

	loc, err := resolveLocation(cfg, c)
	if err != nil {
		return nil, err
	}

	agg, params, err := buildAggregator(cfg, loc)
	if err != nil {
		return nil, err
	}

	tzLoc, err := displayLocation(params)
	if err != nil {
		return nil, err
	}

	return &rangeContext{
		agg:      agg,
		params:   params,
		loc:      loc,
		tzLoc:    tzLoc,
		now:      time.Now().In(tzLoc),
		events:   selectedEvents(cfg),
		timeFmt:  goTimeFormat(cfg),
		useCache: c,
	}, nil
}

func runRange(cmd *cobra.Command, days int) error {
	rc, err := newRangeContext(cmd)
	if err != nil {
		return err
	}

	list, err := rc.agg.Range(rc.now, days)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Prayer Times — %d Days", days)
	return rc.render(title, list, false)
}

func runMonth(cmd *cobra.Command, args []string) error {
	rc, err := newRangeContext(cmd)
	if err != nil {
		return err
	}

	label := rc.now.Format("2006-01")
	if entry := rc.loadCached(label); entry != nil {
		return rc.render("Prayer Times — "+rc.now.Format("January 2006"), entry.Days, false)
	}

	m, err := rc.agg.Monthly(rc.now)
	if err != nil {
		return err
	}
	rc.saveCached(label, m.Days)

	return rc.render("Prayer Times — "+m.Label, m.Days, false)
}

func runYear(cmd *cobra.Command, args []string) error {
	rc, err := newRangeContext(cmd)
	if err != nil {
		return err
	}

	label := rc.now.Format("2006")
	if entry := rc.loadCached(label); entry != nil {
		return rc.render("Prayer Times — "+label, entry.Days, true)
	}

	y, err := rc.agg.Yearly(rc.now)
	if err != nil {
		return err
	}
	rc.saveCached(label, y.Days)

	return rc.render("Prayer Times — "+y.Label, y.Days, true)
}

func (rc *rangeContext) loadCached(label string) *cache.ScheduleEntry {
	if rc.useCache == nil {
		return nil
	}
	return rc.useCache.LoadSchedule(label, rc.loc.Coords, rc.params)
}

func (rc *rangeContext) saveCached(label string, days []*schedule.Day) {
	if rc.useCache == nil {
		return
	}
	_ = rc.useCache.SaveSchedule(label, rc.loc.Coords, rc.params, days) // best-effort
}

// render prints the table (or JSON) for a list of day schedules.
// monthSections inserts a separator at each month boundary.
func (rc *rangeContext) render(title string, days []*schedule.Day, monthSections bool) error {
	if FlagJSON {
		return rc.renderJSON(days)
	}

	fmt.Println()
	fmt.Printf("  %s\n", display.Bold(title))
	fmt.Println()
	fmt.Printf("  %s\n", rc.loc.String())
	fmt.Println()

	headers := []string{"Date", "Hijri"}
	headers = append(headers, rc.events...)
	tbl := display.NewTable(headers)

	todayStr := rc.now.Format("2006-01-02")
	lastMonth := time.Month(0)

	for i, day := range days {
		local := day.Date.In(rc.tzLoc)
		if monthSections && local.Month() != lastMonth {
			tbl.StartSection()
			lastMonth = local.Month()
		}

		row := []string{
			local.Format("Mon 02 Jan"),
			fmt.Sprintf("%d %s", day.Hijri.Day, day.Hijri.MonthName),
		}
		for _, e := range filterEvents(day.Events, rc.events) {
			row = append(row, e.Time.In(rc.tzLoc).Format(rc.timeFmt))
		}
		tbl.AddRow(row)

		if local.Format("2006-01-02") == todayStr {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Print(tbl.Render())
	fmt.Println()
	return nil
}

// listJSONOutput is the JSON structure for multi-day commands.
type listJSONOutput struct {
	Location locationJSON  `json:"location"`
	Days     []listJSONDay `json:"days"`
}

type listJSONDay struct {
	Date    string            `json:"date"`
	Hijri   string            `json:"hijri"`
	Timings map[string]string `json:"timings"`
}

func (rc *rangeContext) renderJSON(days []*schedule.Day) error {
	out := listJSONOutput{
		Location: makeLocationJSON(rc.loc, rc.params),
	}

	for _, day := range days {
		timings := make(map[string]string)
		for _, e := range filterEvents(day.Events, rc.events) {
			timings[strings.ToLower(e.Name)] = e.Time.In(rc.tzLoc).Format(rc.timeFmt)
		}
		out.Days = append(out.Days, listJSONDay{
			Date:    day.Date.In(rc.tzLoc).Format("02 Jan 2006"),
			Hijri:   day.Hijri.Format(),
			Timings: timings,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
