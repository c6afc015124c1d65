package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photoshare/internal/config"
	"photoshare/internal/handlers"
	"photoshare/internal/logger"
	"photoshare/internal/render"
	"photoshare/internal/repository"
	"photoshare/internal/server"
	"photoshare/internal/service"

	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.Command{
		Name:  "photoshare",
		Usage: "Serve the photo feed",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Directory holding config.yml and .env",
				Value:   "configs",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Override http.host",
			},
			&cli.StringFlag{
				Name:  "port",
				Usage: "Override http.port",
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "photoshare: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if host := cmd.String("host"); host != "" {
		cfg.HTTP.Host = host
	}
	if port := cmd.String("port"); port != "" {
		cfg.HTTP.Port = port
	}

	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	// open store
	repos, closeStore, err := repository.Open(cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			log.Errorw("failed to close store", "err", cerr)
		}
	}()
	if cfg.Store.Seed {
		if err := repos.Images.Seed(ctx, repository.DefaultImages()); err != nil {
			return fmt.Errorf("seed images: %w", err)
		}
	}

	// wire dependencies
	services := service.NewService(repos)
	renderer, err := render.New(render.Options{Live: cfg.Live.Enabled})
	if err != nil {
		return err
	}
	var hub *handlers.Hub
	if cfg.Live.Enabled {
		hub = handlers.NewHub(log)
	}
	h := handlers.NewHandler(services, renderer, log, handlers.Options{
		MaxUploadBytes: cfg.Upload.MaxBytes,
		Swagger:        cfg.HTTP.Swagger,
		Hub:            hub,
	})

	// start HTTP server
	srv := server.New(cfg.Addr(), h.InitRoutes())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()
	log.Infow("server started",
		"addr", srv.Addr(),
		"store", cfg.Store.Driver,
		"live", cfg.Live.Enabled,
	)

	return waitForShutdown(srv, hub, errCh, log)
}

// waitForShutdown blocks until a termination signal or a server failure,
// then drains in-flight requests.
func waitForShutdown(srv *server.Server, hub *handlers.Hub, errCh <-chan error, log *logger.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Infow("shutting down server...", "signal", sig.String())
	}

	// live connections are hijacked and not tracked by http.Server
	if hub != nil {
		hub.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
