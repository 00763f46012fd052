package output

import (
	"github.com/pterm/pterm"

	"github.com/mikey-austin/sound_board/internal/notify"
)

// RenderNotification prints a toast-style notification to the terminal.
func RenderNotification(n notify.Notification) {
	text := n.Title
	if n.Message != "" {
		text = n.Title + ": " + n.Message
	}
	switch n.Level {
	case notify.LevelSuccess:
		pterm.Success.Println(text)
	case notify.LevelError:
		pterm.Error.Println(text)
	case notify.LevelWarning:
		pterm.Warning.Println(text)
	default:
		pterm.Info.Println(text)
	}
}

// DrainNotifications renders everything already queued on the channel.
func DrainNotifications(events <-chan notify.Notification) {
	for {
		select {
		case n := <-events:
			RenderNotification(n)
		default:
			return
		}
	}
}
