package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mawaqit-dev/mawaqit/internal/display"
	"github.com/mawaqit-dev/mawaqit/internal/prayer"
	"github.com/mawaqit-dev/mawaqit/internal/schedule"
	"github.com/spf13/cobra"
)

var flagQueryDays string

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long:  "Query a specific prayer time for today, or across multiple days with --days.\n\nValid prayer names: " + strings.Join(prayer.AllEventNames, ", "),
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}

	cmd.Flags().StringVar(&flagQueryDays, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	name, ok := prayer.IsEventName(args[0])
	if !ok {
		return fmt.Errorf("unknown prayer %q; valid names: %s", args[0], strings.Join(prayer.AllEventNames, ", "))
	}

	days := 1
	if flagQueryDays != "" {
		switch flagQueryDays {
		case "week":
			days = 7
		case "month":
			days = 30
		default:
			n, err := fmt.Sscanf(flagQueryDays, "%d", &days)
			if err != nil || n != 1 || days < 1 {
				return fmt.Errorf("invalid --days value %q: must be a positive integer, 'week', or 'month'", flagQueryDays)
			}
		}
	}

	rc, err := newRangeContext(cmd)
	if err != nil {
		return err
	}

	list, err := rc.agg.Range(rc.now, days)
	if err != nil {
		return err
	}

	if days == 1 {
		day := list[0]
		e, ok := day.Times.ByName(name)
		if !ok {
			return fmt.Errorf("no timing found for %s", name)
		}
		timeStr := e.Time.In(rc.tzLoc).Format(rc.timeFmt)

		if FlagJSON {
			out := queryJSONSingle{
				Prayer: strings.ToLower(name),
				Time:   timeStr,
				Date:   rc.now.Format("02 Jan 2006"),
				Hijri:  day.Hijri.Format(),
			}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("%s %s\n", name, timeStr)
		return nil
	}

	if FlagJSON {
		return rc.printQueryJSON(list, name)
	}

	fmt.Println()
	fmt.Printf("  %s\n", display.Bold(fmt.Sprintf("%s Times — %d Days", name, days)))
	fmt.Println()
	fmt.Printf("  %s\n", rc.loc.String())
	fmt.Println()

	tbl := display.NewTable([]string{"Date", name})
	todayStr := rc.now.Format("2006-01-02")

	for i, day := range list {
		local := day.Date.In(rc.tzLoc)
		timeStr := ""
		if e, ok := day.Times.ByName(name); ok {
			timeStr = e.Time.In(rc.tzLoc).Format(rc.timeFmt)
		}
		tbl.AddRow([]string{local.Format("Mon 02 Jan"), timeStr})

		if local.Format("2006-01-02") == todayStr {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Print(tbl.Render())
	fmt.Println()
	return nil
}

type queryJSONSingle struct {
	Prayer string `json:"prayer"`
	Time   string `json:"time"`
	Date   string `json:"date"`
	Hijri  string `json:"hijri"`
}

type queryJSONMulti struct {
	Location locationJSON   `json:"location"`
	Prayer   string         `json:"prayer"`
	Days     []queryJSONDay `json:"days"`
}

type queryJSONDay struct {
	Date  string `json:"date"`
	Hijri string `json:"hijri"`
	Time  string `json:"time"`
}

func (rc *rangeContext) printQueryJSON(days []*schedule.Day, name string) error {
	out := queryJSONMulti{
		Location: makeLocationJSON(rc.loc, rc.params),
		Prayer:   strings.ToLower(name),
	}

	for _, day := range days {
		timeStr := ""
		if e, ok := day.Times.ByName(name); ok {
			timeStr = e.Time.In(rc.tzLoc).Format(rc.timeFmt)
		}
		out.Days = append(out.Days, queryJSONDay{
			Date:  day.Date.In(rc.tzLoc).Format("02 Jan 2006"),
			Hijri: day.Hijri.Format(),
			Time:  timeStr,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
