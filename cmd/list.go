package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kimchoi-jjiggae/coachMe/internal/journal"
	"github.com/kimchoi-jjiggae/coachMe/internal/utils"
)

var (
	since   string
	until   string
	preset  string
	limit   int
	page    int
	format  string
	noColor bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	Long: `Examples:
	voicejournal list                              # every entry, 20 per page
	voicejournal list --since yesterday            # since yesterday 00:00
	voicejournal list --preset week                # this week
	voicejournal list --format table --limit 50    # table format
	voicejournal list --format json --page 2       # second page as JSON`,
	RunE: func(cmd *cobra.Command, args []string) error {
		loc := cfg.Location()
		now := time.Now().In(loc)

		var sinceTime, untilTime time.Time
		var err error
		switch {
		case preset != "":
			sinceTime, untilTime, err = utils.GetDateRange(preset, now)
			if err != nil {
				return fmt.Errorf("invalid preset %q: %w", preset, err)
			}
		case since != "":
			sinceTime, err = utils.ParseFlexibleDate(since, now)
			if err != nil {
				return fmt.Errorf("invalid --since date %q: %w", since, err)
			}
		}
		if until != "" {
			untilTime, err = utils.ParseFlexibleDate(until, now)
			if err != nil {
				return fmt.Errorf("invalid --until date %q: %w", until, err)
			}
		}
		if limit <= 0 || limit > 1000 {
			limit = 20
		}

		renderer, err := newRenderer(loc)
		if err != nil {
			return err
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		opts := journal.ListOptions{Since: sinceTime, Until: untilTime}
		total, err := a.svc.Count(ctx, opts)
		if err != nil {
			return err
		}
		pagination := utils.NewPagination(total, limit, page)
		opts.Limit, opts.Offset = pagination.PerPage, pagination.Offset
		entries, err := a.svc.List(ctx, opts)
		if err != nil {
			return err
		}

		list := &utils.EntryList{
			Entries:    entries,
			Total:      total,
			Page:       pagination.Current,
			PerPage:    pagination.PerPage,
			TotalPages: pagination.TotalPages,
		}
		if !sinceTime.IsZero() {
			list.Since = sinceTime.In(loc).Format("2006-01-02 15:04")
		}
		out, err := renderer.RenderEntryList(list)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&since, "since", "", "Start date (today, yesterday, 3 days, 2h ago, YYYY-MM-DD)")
	listCmd.Flags().StringVar(&until, "until", "", "End date, exclusive")
	listCmd.Flags().StringVar(&preset, "preset", "", "Date range: today|yesterday|week|month|year|last7days|last30days")
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Entries per page (max 1000)")
	listCmd.Flags().IntVar(&page, "page", 1, "Page number")
	addRenderFlags(listCmd)
}

func addRenderFlags(c *cobra.Command) {
	c.Flags().StringVarP(&format, "format", "f", "default", "Output format: default|table|json|csv|compact|quiet")
	c.Flags().BoolVar(&noColor, "no-color", false, "Disable colors")
}

func newRenderer(loc *time.Location) (*utils.Renderer, error) {
	f, err := utils.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	rc := utils.DefaultRenderConfig()
	rc.Format = f
	rc.Color = !noColor
	rc.Location = loc
	return utils.NewRenderer(rc), nil
}
