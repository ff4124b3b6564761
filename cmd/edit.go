package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kimchoi-jjiggae/coachMe/internal/journal"
)

var (
	editText    string
	editTitle   string
	editAppend  string
	editRetitle bool
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an existing entry",
	Long: `Examples:
	voicejournal edit 3f2a9c1e --title "Quiet Sunday"
	voicejournal edit 3f2a9c1e -m "Replaced text."
	voicejournal edit 3f2a9c1e --append "and then it rained"   # punctuated, like dictation
	voicejournal edit 3f2a9c1e --retitle                       # generate a fresh title`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if editText == "" && editTitle == "" && editAppend == "" && !editRetitle {
			return fmt.Errorf("nothing to update - specify --text, --title, --append or --retitle")
		}
		if editTitle != "" && editRetitle {
			return fmt.Errorf("--title and --retitle are mutually exclusive")
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		id, err := resolveID(ctx, a.svc, args[0])
		if err != nil {
			return err
		}

		if editAppend != "" {
			if _, err := a.svc.Append(ctx, id, editAppend); err != nil {
				return err
			}
		}

		e, err := a.svc.Get(ctx, id)
		if err != nil {
			return err
		}
		if editText != "" || editTitle != "" || editRetitle {
			req := journal.SaveRequest{ID: id, Title: e.Title, Content: e.Content}
			if editText != "" {
				req.Content = editText
			}
			if editTitle != "" {
				req.Title = editTitle
			}
			if editRetitle {
				req.Title = ""
			}
			if e, err = a.svc.Save(ctx, req); err != nil {
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Entry %s updated: %s\n", shortID(e.ID), e.Title)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editText, "text", "m", "", "Replace the entry text")
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "Replace the title")
	editCmd.Flags().StringVarP(&editAppend, "append", "a", "", "Punctuate and append a transcript fragment")
	editCmd.Flags().BoolVar(&editRetitle, "retitle", false, "Generate a new title from the text")
}
