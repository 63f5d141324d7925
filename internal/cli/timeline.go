package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mawaqit-dev/mawaqit/internal/timeline"
	"github.com/spf13/cobra"
)

func newTimelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Show today's normalized day timeline",
		Long:  "Print today's events normalized into the [0,1] progress domain anchored at\nFajr (0) and tomorrow's Fajr (1), plus the current progress value. This is\nthe record sky/sun animation layers consume.",
		RunE:  runTimeline,
	}
}

func runTimeline(cmd *cobra.Command, args []string) error {
	rc, err := newRangeContext(cmd)
	if err != nil {
		return err
	}

	today, err := rc.agg.Daily(rc.now)
	if err != nil {
		return err
	}
	tomorrow, err := rc.agg.Daily(rc.now.AddDate(0, 0, 1))
	if err != nil {
		return err
	}

	tl := timeline.Build(today.Times, tomorrow.Times.Fajr)
	progress := timeline.Progress(rc.now, today.Times, tomorrow.Times.Fajr)

	if FlagJSON {
		out := struct {
			Date     string            `json:"date"`
			Timeline timeline.Timeline `json:"timeline"`
			Progress float64           `json:"progress"`
		}{
			Date:     rc.now.Format("2006-01-02"),
			Timeline: tl,
			Progress: progress,
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	rows := []struct {
		name string
		frac float64
		at   time.Time
	}{
		{"Fajr", tl.Fajr, today.Times.Fajr},
		{"Sunrise", tl.Sunrise, today.Times.Sunrise},
		{"Dhuhr", tl.Dhuhr, today.Times.Dhuhr},
		{"Asr", tl.Asr, today.Times.Asr},
		{"Maghrib", tl.Maghrib, today.Times.Maghrib},
		{"Isha", tl.Isha, today.Times.Isha},
		{"Midnight", tl.MidNight, today.Times.Midnight},
		{"Lastthird", tl.LastThird, today.Times.LastThird},
		{"Next Fajr", tl.End, tomorrow.Times.Fajr},
	}

	fmt.Println()
	for _, r := range rows {
		fmt.Printf("  %-10s %5.3f  %s\n", r.name, r.frac, r.at.In(rc.tzLoc).Format(rc.timeFmt))
	}
	fmt.Println()
	fmt.Printf("  progress now: %.3f\n", progress)
	fmt.Println()
	return nil
}
