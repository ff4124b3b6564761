package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kimchoi-jjiggae/coachMe/internal/textproc"
)

var punctuateExplain bool

var punctuateCmd = &cobra.Command{
	Use:   "punctuate [text]",
	Short: "Punctuate a raw speech transcript",
	Long: `Adds punctuation and capitalization to an unpunctuated transcript, read
from the arguments or stdin. --explain lists the ordered rules.

Example:
	echo "so i think today was good" | voicejournal punctuate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if punctuateExplain {
			for i, r := range textproc.Rules() {
				fmt.Fprintf(out, "%2d  %-20s %s\n", i+1, r.Name, r.Pattern.String())
			}
			return nil
		}
		text, err := readText(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, textproc.Punctuate(text))
		return nil
	},
}

func init() {
	punctuateCmd.Flags().BoolVar(&punctuateExplain, "explain", false, "Print the punctuation rules in order")
}
