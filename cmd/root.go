package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kimchoi-jjiggae/coachMe/internal/config"
	"github.com/kimchoi-jjiggae/coachMe/internal/logging"
	"github.com/kimchoi-jjiggae/coachMe/internal/version"
)

var (
	cfgFile  string
	logLevel string

	cfg    config.Config
	logger = zap.NewNop()
)

// withReminders marks long-running commands that also fire daily reminders.
const withReminders = "reminders"

var rootCmd = &cobra.Command{
	Use:           "voicejournal",
	Short:         "Voice journal: dictate, title and keep daily entries",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			cfg, err = config.LoadFrom(cfgFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger, err = logging.New(cfg.Log)
		if err != nil {
			return err
		}

		if cmd.Annotations[withReminders] == "true" && cfg.Reminder.Enabled && os.Getenv("VOICEJOURNAL_NO_REMINDER") != "1" {
			go runReminders(cmd.Context())
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	rootCmd.Version = version.GetVersion()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/voicejournal/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug|info|warn|error)")

	rootCmd.AddCommand(
		newCmd, listCmd, showCmd, editCmd, deleteCmd, searchCmd,
		titleCmd, punctuateCmd, dictateCmd, draftCmd,
		syncCmd, remindCmd, serveCmd, summaryCmd, tuiCmd, versionCmd,
	)
}
