package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeetkhinde/RHTML/internal/config"
	"github.com/jeetkhinde/RHTML/internal/dev"
	"github.com/jeetkhinde/RHTML/pkg/loader"
	"github.com/jeetkhinde/RHTML/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		port     int
		host     string
		pagesDir string
		noReload bool
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the template directory with hot reload",
		Long: `Load every template under the pages directory, build the route
table, and serve it over HTTP. Template edits rebuild the routes and
push a livereload message to connected browsers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromWorkingDir()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("pages") {
				cfg.PagesDir = pagesDir
			}
			if noReload {
				cfg.Dev.HotReload = false
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			return runServe(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "Port to serve on")
	cmd.Flags().StringVar(&host, "host", config.DefaultHost, "Host to bind to")
	cmd.Flags().StringVar(&pagesDir, "pages", config.DefaultPagesDir, "Templates directory")
	cmd.Flags().BoolVar(&noReload, "no-reload", false, "Disable watching and livereload")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func runServe(parent context.Context, cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := loader.New(loader.Config{
		PagesDir:  cfg.PagesDir,
		Extension: cfg.Extension,
		Logger:    logger,
	})
	snap, err := l.LoadAll()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	store := loader.NewStore(snap)

	metrics := server.NewMetrics()
	metrics.SetRoutesLoaded(snap.Router().Len())

	var reload *dev.ReloadServer
	if cfg.Dev.HotReload {
		reload = dev.NewReloadServer()
		defer reload.Close()

		watcher, err := dev.NewWatcher(dev.WatcherConfig{
			Dir:       cfg.PagesDir,
			Extension: cfg.Extension,
			Debounce:  cfg.Debounce(),
			Logger:    logger,
			OnChange: func(paths []string) {
				applyChanges(l, store, metrics, reload, logger, paths)
			},
		})
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		go watcher.Run(ctx)
	}

	srv := server.New(server.Config{
		Store:           store,
		CaseInsensitive: cfg.CaseInsensitive,
		Dev:             cfg.Dev.HotReload,
		Reload:          reload,
		Metrics:         metrics,
		Logger:          logger,
	})

	printBanner()
	fmt.Println()
	success("Loaded %d templates from %s", snap.Count(), cfg.PagesDir)
	info("Serving on %s", cfg.URL())
	if cfg.Dev.HotReload {
		info("Hot reload enabled, watching %s", cfg.PagesDir)
	} else {
		warn("Hot reload disabled")
	}
	fmt.Println()

	return srv.ListenAndServe(ctx, cfg.Address())
}

// applyChanges rebuilds the snapshot for each changed template and
// publishes the result. A validation failure keeps the previous snapshot
// live and surfaces the error in connected browsers.
func applyChanges(l *loader.Loader, store *loader.Store, metrics *server.Metrics, reload *dev.ReloadServer, logger *slog.Logger, paths []string) {
	var snap *loader.Snapshot
	for _, path := range paths {
		next, err := l.Reload(path)
		if err != nil {
			logger.Error("reload failed", "path", path, "err", err)
			reload.NotifyError(err.Error())
			return
		}
		snap = next
	}
	if snap == nil {
		return
	}

	store.Swap(snap)
	metrics.RecordReload()
	metrics.SetRoutesLoaded(snap.Router().Len())
	logger.Info("routes rebuilt", "templates", snap.Count(), "changed", len(paths))

	reload.ClearError()
	reload.NotifyReload()
}
