package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/kimchoi-jjiggae/coachMe/internal/utils"
)

var summaryPreset string

// summaryCmd prints entry and word counts per day for a date range.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Entries and words written over a period",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loc := cfg.Location()
		now := time.Now().In(loc)
		start, end, err := utils.GetDateRange(summaryPreset, now)
		if err != nil {
			return err
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		sum, err := a.svc.Summarize(cmd.Context(), start, end, loc)
		if err != nil {
			return err
		}
		_, streak, err := a.svc.Streak(cmd.Context(), now, loc)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s to %s):\n", summaryPreset, start.Format("2006-01-02"), end.Add(-time.Nanosecond).Format("2006-01-02"))
		days := make([]string, 0, len(sum.ByDay))
		for d := range sum.ByDay {
			days = append(days, d)
		}
		sort.Strings(days)
		for _, d := range days {
			fmt.Fprintf(out, "  %s %3d entr%s\n", d, sum.ByDay[d], pluralY(sum.ByDay[d]))
		}
		fmt.Fprintf(out, "  %-10s %3d entr%s, %d words\n", "TOTAL", sum.Entries, pluralY(sum.Entries), sum.Words)
		fmt.Fprintf(out, "  streak: %d day%s\n", streak, plural(streak))
		return nil
	},
}

func init() {
	summaryCmd.Flags().StringVar(&summaryPreset, "preset", "week", "today|yesterday|week|month|year|last7days|last30days")
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
