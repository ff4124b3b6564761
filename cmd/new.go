package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kimchoi-jjiggae/coachMe/internal/journal"
	"github.com/kimchoi-jjiggae/coachMe/internal/textproc"
)

var (
	newTitle     string
	newPunctuate bool
)

var newCmd = &cobra.Command{
	Use:   "new [text]",
	Short: "Write a journal entry",
	Long: `Saves a new entry. Without arguments the text is read from stdin.
An empty --title is generated by the completion service, or locally when it
is unavailable.

Examples:
	voicejournal new "grateful for a slow morning"
	voicejournal new --title "Sunday" < notes.txt
	voicejournal new -p "so i think today was good"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if newPunctuate {
			text = textproc.Punctuate(text)
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		e, err := a.svc.Save(cmd.Context(), journal.SaveRequest{Title: newTitle, Content: text})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Saved %s: %s\n", shortID(e.ID), e.Title)
		if a.svc.HasRemote() && !e.Synced {
			fmt.Fprintln(out, "Kept locally; run `voicejournal sync` to retry the upload.")
		}
		return nil
	},
}

func init() {
	newCmd.Flags().StringVarP(&newTitle, "title", "t", "", "Entry title (generated when empty)")
	newCmd.Flags().BoolVarP(&newPunctuate, "punctuate", "p", false, "Punctuate the text as a dictated transcript first")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
