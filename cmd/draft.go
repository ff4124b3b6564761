package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kimchoi-jjiggae/coachMe/internal/journal"
)

var draftTitle string

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Work with the unsaved draft",
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the draft",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		d, err := a.svc.Draft(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if d.Empty() {
			fmt.Fprintln(out, "No draft.")
			return nil
		}
		if d.Title != "" {
			fmt.Fprintf(out, "# %s\n\n", d.Title)
		}
		fmt.Fprintln(out, d.Content)
		return nil
	}),
}

var draftSetCmd = &cobra.Command{
	Use:   "set [text]",
	Short: "Replace the draft text (stdin when no arguments)",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		text, err := readText(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if _, err := a.svc.SetDraft(cmd.Context(), journal.Draft{Title: draftTitle, Content: strings.TrimSpace(text)}); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Draft updated.")
		return nil
	}),
}

var draftAppendCmd = &cobra.Command{
	Use:   "append <fragment>",
	Short: "Punctuate a transcript fragment and add it to the draft",
	Args:  cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		d, err := a.svc.AppendDraft(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), d.Content)
		return nil
	}),
}

var draftClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the draft",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if err := a.svc.ClearDraft(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Draft cleared.")
		return nil
	}),
}

var draftSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the draft as an entry and clear it",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		e, err := a.svc.SaveDraft(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s: %s\n", shortID(e.ID), e.Title)
		return nil
	}),
}

func init() {
	draftSetCmd.Flags().StringVarP(&draftTitle, "title", "t", "", "Draft title")
	draftCmd.AddCommand(draftShowCmd, draftSetCmd, draftAppendCmd, draftClearCmd, draftSaveCmd)
}

// withApp opens the app around a RunE body.
func withApp(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, a, args)
	}
}
