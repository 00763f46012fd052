package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mikey-austin/sound_board/internal/core"
)

func configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change settings",
	}

	cmd.AddCommand(configShowCommand())
	cmd.AddCommand(configSetKeyCommand())
	cmd.AddCommand(configSetCommand())

	return cmd
}

func configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			return app.printer.Print(app.service.ConfigView())
		},
	}
}

func configSetKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key <key>",
		Short: "Store your catalog API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			if err := app.service.SetAPIKey(args[0]); err != nil {
				return err
			}
			app.flushNotifications()
			return nil
		},
	}
}

func configSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Change a setting (volume, auto-stop, theme)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			name, value := args[0], args[1]

			switch name {
			case "volume":
				percent, err := strconv.Atoi(value)
				if err != nil {
					return core.Usage("volume must be a number between 0 and 100")
				}
				return app.service.SetVolume(percent)
			case "auto-stop":
				enabled, err := strconv.ParseBool(value)
				if err != nil {
					return core.Usage("auto-stop must be true or false")
				}
				return app.service.Settings.SetAutoStop(enabled)
			case "theme":
				theme := strings.ToLower(value)
				if theme != "dark" && theme != "light" {
					return core.Usage("theme must be dark or light")
				}
				return app.service.Settings.SetTheme(theme)
			default:
				return core.Usage("unknown setting, expected volume, auto-stop, or theme")
			}
		},
	}
}
