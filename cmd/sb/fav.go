package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const defaultExportFile = "sb-favorites.json"

func favCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fav",
		Short: "Manage favorite sounds",
	}

	cmd.AddCommand(favListCommand())
	cmd.AddCommand(favToggleCommand())
	cmd.AddCommand(favRemoveCommand())
	cmd.AddCommand(favClearCommand())
	cmd.AddCommand(favExportCommand())
	cmd.AddCommand(favImportCommand())

	return cmd
}

func favListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List favorites",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			return app.printer.Print(app.service.ListFavorites())
		},
	}
}

func favToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <row|id>",
		Aliases: []string{"add"},
		Short:   "Toggle a sound in the favorites",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(cmd.Context(), app.timeout)
			defer cancel()

			if _, _, err := app.service.ToggleFavorite(ctx, args[0]); err != nil {
				return err
			}
			app.flushNotifications()
			return nil
		},
	}
}

func favRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <row|id>",
		Short: "Remove a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			return app.service.RemoveFavorite(args[0])
		},
	}
}

func favClearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every favorite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			if !yes {
				confirmed, err := confirm("Remove all favorites?")
				if err != nil {
					return err
				}
				if !confirmed {
					return nil
				}
			}
			if err := app.service.ClearFavorites(); err != nil {
				return err
			}
			app.flushNotifications()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}

func favExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export favorites to a JSON file",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			path := defaultExportFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := app.service.ExportFavorites(path); err != nil {
				return err
			}
			app.flushNotifications()
			return nil
		},
	}
}

func confirm(message string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultValue(false).Show(message)
}

func favImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge favorites from an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			if _, err := app.service.ImportFavorites(args[0]); err != nil {
				return err
			}
			app.flushNotifications()
			return nil
		},
	}
}
