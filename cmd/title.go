package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kimchoi-jjiggae/coachMe/internal/textproc"
)

var (
	titleExplain bool
	titleLocal   bool
)

var titleCmd = &cobra.Command{
	Use:   "title [text]",
	Short: "Suggest a title for some text without saving it",
	Long: `Prints a title for the text given as arguments or on stdin.
--local skips the completion service; --explain prints the topic table the
local heuristic uses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if titleExplain {
			for _, p := range textproc.Patterns() {
				fmt.Fprintf(out, "%3d  %-16s %s\n", p.Weight, strings.TrimSpace(p.Prefix), p.Match.String())
			}
			return nil
		}

		text, err := readText(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("no text given")
		}

		if titleLocal {
			fmt.Fprintln(out, textproc.DeriveTitle(text))
			return nil
		}
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		title, source := a.svc.Title(cmd.Context(), text)
		fmt.Fprintln(out, title)
		logger.Debug("title generated", zap.String("source", string(source)))
		return nil
	},
}

func init() {
	titleCmd.Flags().BoolVar(&titleExplain, "explain", false, "Print the topic patterns and weights")
	titleCmd.Flags().BoolVar(&titleLocal, "local", false, "Use only the local heuristic")
}
