package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kimchoi-jjiggae/coachMe/internal/notify"
	"github.com/kimchoi-jjiggae/coachMe/internal/schedule"
)

// notifier is swapped in tests.
var notifier notify.Notifier = notify.Desktop{}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Daily journaling reminders",
}

var remindRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Send reminders at the configured time until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Reminder.Enabled {
			return fmt.Errorf("reminders are disabled; set reminder.enabled in the config")
		}
		logger.Info("reminders running", zap.String("time", cfg.Reminder.Time), zap.Strings("workdays", cfg.Reminder.Workdays))
		err := schedule.Run(cmd.Context(), cfg, logger, sendReminder)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

var remindNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print when the next reminder fires",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		next := schedule.NextAt(time.Now(), cfg.Reminder, cfg.Location())
		if next.IsZero() {
			fmt.Fprintln(out, "No reminder day configured.")
			return nil
		}
		fmt.Fprintln(out, next.Format("Mon 2006-01-02 15:04 MST"))
		if !cfg.Reminder.Enabled {
			fmt.Fprintln(out, "(reminders are disabled)")
		}
		return nil
	},
}

var remindTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a reminder now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return reminderNow(cmd.Context())
	},
}

func init() {
	remindCmd.AddCommand(remindRunCmd, remindNextCmd, remindTestCmd)
}

func sendReminder(ctx context.Context) {
	if err := reminderNow(ctx); err != nil {
		logger.Warn("reminder failed", zap.Error(err))
	}
}

// reminderNow notifies with today's count and the current streak.
func reminderNow(ctx context.Context) error {
	var today, streak int
	a, err := openApp(ctx)
	if err != nil {
		logger.Warn("reminder without journal stats", zap.Error(err))
	} else {
		defer a.Close()
		today, streak, err = a.svc.Streak(ctx, time.Now(), cfg.Location())
		if err != nil {
			logger.Warn("journal stats", zap.Error(err))
		}
	}
	title, msg := notify.FormatDailyPrompt(today, streak)
	return notifier.Notify(title, msg)
}

// runReminders backs long-running commands; it stops with ctx.
func runReminders(ctx context.Context) {
	if err := schedule.Run(ctx, cfg, logger, sendReminder); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("reminder loop stopped", zap.Error(err))
	}
}
