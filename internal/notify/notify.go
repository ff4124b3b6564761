// Package notify sends desktop notifications for journal reminders.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

const appName = "Voice Journal"

// Notifier delivers a reminder; tests swap in a recorder.
type Notifier interface {
	Notify(title, message string) error
}

// Desktop uses the platform notification center through beeep.
type Desktop struct {
	// Alert plays the platform alert sound as well.
	Alert bool
}

func (d Desktop) Notify(title, message string) error {
	if d.Alert {
		return beeep.Alert(title, message, "")
	}
	return beeep.Notify(title, message, "")
}

func Info(title, message string) error {
	return beeep.Notify(title, message, "")
}

func Done(message string) error {
	return beeep.Alert(appName, message, "")
}

// FormatDailyPrompt builds the reminder text from how many entries were
// written today and the current streak of consecutive days.
func FormatDailyPrompt(today, streak int) (string, string) {
	title := appName + " reminder"
	var msg string
	switch {
	case today > 0:
		msg = fmt.Sprintf("You already wrote %d entr%s today. Anything else on your mind?", today, pluralY(today))
	case streak > 0:
		msg = fmt.Sprintf("Keep your %d-day streak going. How was your day?", streak)
	default:
		msg = "Take a minute to reflect. How was your day?"
	}
	return title, msg
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
