package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mikey-austin/sound_board/internal/core"
	"github.com/mikey-austin/sound_board/pkg/sb"
)

// sortKeys maps friendly flag values onto catalog sort parameters.
var sortKeys = map[string]sb.SortKey{
	"":          sb.SortScore,
	"score":     sb.SortScore,
	"rating":    sb.SortRatingDesc,
	"downloads": sb.SortDownloadsDesc,
	"duration":  sb.SortDurationDesc,
	"created":   sb.SortCreatedDesc,
}

func searchCommand() *cobra.Command {
	var (
		sort        string
		minDuration float64
		maxDuration float64
	)

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search the sound catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(cmd.Context(), app.timeout)
			defer cancel()

			key, ok := sortKeys[sort]
			if !ok {
				return core.Usage("sort must be one of score, rating, downloads, duration, created")
			}
			filters := sb.SearchFilters{Sort: key}
			if cmd.Flags().Changed("min-duration") || cmd.Flags().Changed("max-duration") {
				filters.Duration = &sb.DurationRange{Min: minDuration, Max: maxDuration}
			}

			view, err := app.service.Search(ctx, strings.Join(args, " "), filters)
			if err != nil {
				return err
			}
			defer app.flushNotifications()
			return app.printer.Print(view)
		},
	}

	cmd.Flags().StringVarP(&sort, "sort", "s", "", "sort order (score|rating|downloads|duration|created)")
	cmd.Flags().Float64Var(&minDuration, "min-duration", 0, "minimum duration in seconds")
	cmd.Flags().Float64Var(&maxDuration, "max-duration", 60, "maximum duration in seconds")

	return cmd
}

func nextCommand() *cobra.Command {
	return pageCommand("next", "Show the next page of results", 1)
}

func prevCommand() *cobra.Command {
	return pageCommand("prev", "Show the previous page of results", -1)
}

func pageCommand(use string, short string, delta int) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(cmd.Context(), app.timeout)
			defer cancel()

			view, err := app.service.Page(ctx, delta)
			if err != nil {
				return err
			}
			return app.printer.Print(view)
		},
	}
}
