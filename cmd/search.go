package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kimchoi-jjiggae/coachMe/internal/utils"
)

var searchLimit int

// searchCmd matches title and content case-insensitively.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search entry titles and text",
	Long: `Examples:
	voicejournal search grateful
	voicejournal search "long day" --format compact
	voicejournal search 50% --limit 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		if searchLimit <= 0 || searchLimit > 1000 {
			searchLimit = 200
		}
		renderer, err := newRenderer(cfg.Location())
		if err != nil {
			return err
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.svc.Search(cmd.Context(), query, searchLimit)
		if err != nil {
			return err
		}
		out, err := renderer.RenderEntryList(&utils.EntryList{Entries: entries, Total: len(entries), Query: query})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 200, "Maximum results")
	addRenderFlags(searchCmd)
}
