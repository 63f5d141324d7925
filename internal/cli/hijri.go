package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mawaqit-dev/mawaqit/internal/hijri"
	"github.com/spf13/cobra"
)

var flagHijriDate string

func newHijriCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hijri",
		Short: "Show the Hijri (Islamic) calendar date",
		Long:  "Convert today's Gregorian date (or --date) to the tabular Hijri calendar.\nUse --hijri-offset to adjust for local moon-sighting announcements.",
		RunE:  runHijri,
	}

	cmd.Flags().StringVar(&flagHijriDate, "date", "", "Gregorian date to convert (YYYY-MM-DD, default: today)")

	return cmd
}

func runHijri(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)

	day := time.Now()
	if flagHijriDate != "" {
		parsed, err := time.Parse("2006-01-02", flagHijriDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", flagHijriDate)
		}
		day = parsed
	}

	h, err := hijri.FromTime(day, cfg.HijriOffsetOrDefault(0))
	if err != nil {
		return err
	}

	if FlagJSON {
		out := struct {
			Gregorian string     `json:"gregorian"`
			Hijri     hijri.Date `json:"hijri"`
			Formatted string     `json:"formatted"`
		}{
			Gregorian: day.Format("2006-01-02"),
			Hijri:     h,
			Formatted: h.Format(),
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s (%s)\n", h.Format(), h.Weekday)
	return nil
}
