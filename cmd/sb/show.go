package main

import (
	"github.com/spf13/cobra"
)

func showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <row|id>",
		Short: "Show a sound's full details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(cmd.Context(), app.timeout)
			defer cancel()

			view, err := app.service.Show(ctx, args[0])
			if err != nil {
				return err
			}
			return app.printer.Print(view)
		},
	}
}
