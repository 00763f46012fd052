package main

import (
	"os"
	"os/signal"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mikey-austin/sound_board/internal/core"
	"github.com/mikey-austin/sound_board/internal/player"
)

func playCommand() *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "play <row|id>",
		Short: "Play a sound's preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(cmd.Context(), app.timeout)
			defer cancel()

			var events <-chan player.Event
			if follow {
				events = app.service.Player.Subscribe()
			}

			name, err := app.service.Play(ctx, args[0])
			if err != nil {
				app.flushNotifications()
				return err
			}
			if !follow {
				return app.printer.Print(app.service.PlaybackStatus())
			}
			return followPlayback(cmd, app, name, events)
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "stay attached until playback ends")

	return cmd
}

// followPlayback renders a progress bar until the stream ends, errors, or the
// user interrupts. Interrupting stops playback before exiting.
func followPlayback(cmd *cobra.Command, app *app, name string, events <-chan player.Event) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	bar, err := pterm.DefaultProgressbar.WithTotal(100).WithTitle(name).Start()
	if err != nil {
		return err
	}
	defer func() { _, _ = bar.Stop() }()

	current := 0
	for {
		select {
		case <-ctx.Done():
			app.service.Stop()
			return nil
		case event := <-events:
			switch event.Kind {
			case player.EventProgress:
				target := int(event.Ratio * 100)
				if target > current {
					bar.Add(target - current)
					current = target
				}
			case player.EventEnded:
				if current < 100 {
					bar.Add(100 - current)
				}
				return nil
			case player.EventErrored:
				return event.Err
			}
		}
	}
}

func stopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop playback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			app.service.Stop()
			return app.printer.Print(app.service.PlaybackStatus())
		},
	}
}

func volumeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vol <0..100>",
		Short: "Set playback volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)

			percent, err := strconv.Atoi(args[0])
			if err != nil {
				return core.Usage("volume must be a number between 0 and 100")
			}
			return app.service.SetVolume(percent)
		},
	}
}

func statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show playback status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			return app.printer.Print(app.service.PlaybackStatus())
		},
	}
}
