package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mikey-austin/sound_board/internal/adapters/config"
	"github.com/mikey-austin/sound_board/internal/adapters/logging"
	"github.com/mikey-austin/sound_board/internal/adapters/output"
	"github.com/mikey-austin/sound_board/internal/adapters/state"
	"github.com/mikey-austin/sound_board/internal/catalog"
	"github.com/mikey-austin/sound_board/internal/core"
	"github.com/mikey-austin/sound_board/internal/credential"
	"github.com/mikey-austin/sound_board/internal/favorites"
	"github.com/mikey-austin/sound_board/internal/notify"
	"github.com/mikey-austin/sound_board/internal/player"
	"github.com/mikey-austin/sound_board/internal/player/gst"
	"github.com/mikey-austin/sound_board/internal/player/vlc"
	"github.com/mikey-austin/sound_board/internal/session"
	"github.com/mikey-austin/sound_board/internal/settings"
)

type app struct {
	log      *zap.Logger
	service  core.Service
	printer  output.Printer
	notifier *notify.Notifier
	events   <-chan notify.Notification
	quiet    bool
	json     bool
	timeout  time.Duration
}

func main() {
	root := &cobra.Command{
		Use:           "sb",
		Short:         "Search, preview, and collect Freesound sounds",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var (
		configFile string
		timeout    time.Duration
		quiet      bool
		jsonOut    bool
		verbose    bool
	)

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	root.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "request timeout")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	root.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output json")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		log := logging.NewLogger(verbose)

		var cfg config.Config
		var err error
		if configFile != "" {
			cfg, err = config.LoadFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}

		storageDir, err := cfg.StorageDir()
		if err != nil {
			return err
		}

		settingsStore, err := settings.NewStore(log, filepath.Join(storageDir, "settings.json"))
		if err != nil {
			return err
		}
		favoritesStore, err := favorites.NewStore(log, filepath.Join(storageDir, "favorites.json"))
		if err != nil {
			return err
		}

		resolver := credential.Resolver{Settings: settingsStore}
		client, err := catalog.NewClient(log, resolver, catalog.Config{
			BaseURL: cfg.Catalog.BaseURL,
			Timeout: cfg.Catalog.Timeout(),
		})
		if err != nil {
			return err
		}

		driver, err := buildDriver(cfg.Playback)
		if err != nil {
			return err
		}
		controller, err := player.New(log, driver, settingsStore, player.Config{})
		if err != nil {
			return err
		}

		notifier := &notify.Notifier{}
		events := notifier.Subscribe()

		service := core.Service{
			Log:       log,
			Catalog:   client,
			Session:   session.New(log, client),
			Snapshots: state.NewStore(filepath.Join(storageDir, "session.json")),
			Favorites: favoritesStore,
			Settings:  settingsStore,
			Resolver:  resolver,
			Player:    controller,
			Notifier:  notifier,
			Backend:   cfg.Playback.Backend,
		}

		var printer output.Printer
		if jsonOut {
			printer = output.JSONPrinter{}
		} else {
			printer = output.HumanPrinter{}
		}

		cmd.SetContext(withApp(cmd.Context(), &app{
			log:      log,
			service:  service,
			printer:  printer,
			notifier: notifier,
			events:   events,
			quiet:    quiet,
			json:     jsonOut,
			timeout:  timeout,
		}))
		return nil
	}

	root.AddCommand(searchCommand())
	root.AddCommand(nextCommand())
	root.AddCommand(prevCommand())
	root.AddCommand(showCommand())
	root.AddCommand(playCommand())
	root.AddCommand(stopCommand())
	root.AddCommand(volumeCommand())
	root.AddCommand(statusCommand())
	root.AddCommand(favCommand())
	root.AddCommand(configCommand())

	if err := root.Execute(); err != nil {
		described := core.Describe(err)
		fmt.Fprintln(os.Stderr, described.Error())
		os.Exit(described.Code)
	}
}

type appKey struct{}

func withApp(ctx context.Context, a *app) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

func fromContext(cmd *cobra.Command) *app {
	val := cmd.Context().Value(appKey{})
	if val == nil {
		return nil
	}
	return val.(*app)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func buildDriver(cfg config.Playback) (player.Driver, error) {
	switch cfg.Backend {
	case "", "vlc":
		return vlc.NewDriver(cfg.VLCURL, cfg.VLCUser, cfg.VLCPassword, 0)
	case "gstreamer":
		pipeline := cfg.GstPipeline
		if pipeline == "" {
			pipeline = "playbin3 uri={url} volume={volume}"
		}
		return gst.NewDriver(pipeline)
	default:
		return nil, core.Usage(fmt.Sprintf("unknown playback backend %q", cfg.Backend))
	}
}

// flushNotifications prints anything the service queued during a command.
func (a *app) flushNotifications() {
	if a.quiet || a.json {
		return
	}
	output.DrainNotifications(a.events)
}
