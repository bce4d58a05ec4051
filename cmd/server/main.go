package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/fx"

	"wine-trip-planner/internal/config"
	"wine-trip-planner/internal/server"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.Load,
			server.ConfigFrom,
			provideServer,
		),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func provideServer(cfg server.Config) (*server.Server, error) {
	srv, err := server.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	return srv, nil
}

// StartServer ties the HTTP server to the application lifecycle
func StartServer(lc fx.Lifecycle, cfg *config.Config, srv *server.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			actualAddr, err := srv.Start()
			if err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			if cfg.OpenBrowser {
				// Open browser after a short delay to ensure server is ready
				go func() {
					time.Sleep(500 * time.Millisecond)
					url := fmt.Sprintf("http://%s", actualAddr)
					if err := server.OpenBrowser(url); err != nil {
						log.Printf("Could not open browser: %v", err)
					} else {
						log.Printf("Opened browser at %s", url)
					}
				}()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("could not gracefully shutdown the server: %w", err)
			}
			log.Println("Server stopped")
			return nil
		},
	})
}
