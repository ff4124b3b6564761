package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push unsynced entries to the remote store and pull missing ones",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		out := cmd.OutOrStdout()
		if !a.svc.HasRemote() {
			fmt.Fprintln(out, "No remote store configured (remote.enabled); nothing to sync.")
			return nil
		}
		r, err := a.svc.Sync(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Pushed %d, pulled %d", r.Pushed, r.Pulled)
		if r.Failed > 0 {
			fmt.Fprintf(out, ", %d failed (see log)", r.Failed)
		}
		fmt.Fprintln(out, ".")
		return nil
	}),
}
