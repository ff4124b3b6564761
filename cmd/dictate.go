package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kimchoi-jjiggae/coachMe/internal/journal"
)

var (
	dictateMax  time.Duration
	dictateSave bool
)

var dictateCmd = &cobra.Command{
	Use:   "dictate [id]",
	Short: "Append transcript lines from stdin to the draft or an entry",
	Long: `Reads finalized transcript fragments from stdin, one per line, punctuates
each and appends it to the working draft (or to the entry with the given id).
The session ends at end of input or after --max-duration.

Examples:
	speech-to-text | voicejournal dictate
	voicejournal dictate --save < transcript.txt     # then save the draft as an entry
	voicejournal dictate 3f2a9c1e < more.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if dictateMax > 0 {
			cfg.Dictation.MaxDuration = dictateMax
		}
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		var id string
		if len(args) == 1 {
			if id, err = resolveID(ctx, a.svc, args[0]); err != nil {
				return err
			}
		}

		res, err := a.svc.Dictate(ctx, journal.NewLineSource(cmd.InOrStdin()), id)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		target := "draft"
		if id != "" {
			target = "entry " + shortID(id)
		}
		fmt.Fprintf(out, "Added %d fragment%s to the %s.\n", res.Fragments, plural(res.Fragments), target)
		if res.TimedOut {
			fmt.Fprintf(out, "Stopped after %s.\n", cfg.Dictation.MaxDuration)
		}

		if dictateSave && id == "" {
			e, err := a.svc.SaveDraft(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved %s: %s\n", shortID(e.ID), e.Title)
		}
		return nil
	},
}

func init() {
	dictateCmd.Flags().DurationVar(&dictateMax, "max-duration", 0, "Override dictation.max_duration")
	dictateCmd.Flags().BoolVar(&dictateSave, "save", false, "Save the draft as an entry when input ends")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
