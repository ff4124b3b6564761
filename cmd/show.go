package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one entry in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer, err := newRenderer(cfg.Location())
		if err != nil {
			return err
		}
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		id, err := resolveID(cmd.Context(), a.svc, args[0])
		if err != nil {
			return err
		}
		e, err := a.svc.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		out, err := renderer.RenderEntry(e)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	addRenderFlags(showCmd)
}
