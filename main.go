package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/agentworld/bus"
	"github.com/mark3labs/agentworld/config"
	"github.com/mark3labs/agentworld/game"
	"github.com/mark3labs/agentworld/middleware"
	"github.com/mark3labs/agentworld/routes"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func main() {
	app := pocketbase.New()

	cfg := config.Default()
	cfg.Register(app.RootCmd.PersistentFlags())

	ctx, cancel := context.WithCancel(context.Background())
	var (
		b    *bus.Bus
		loop *game.FrameLoop
	)

	middleware.AddRequestLogging(app)

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Flags are fully parsed by the time serve runs
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		cat, err := game.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return err
		}

		b, err = bus.Start(ctx, bus.Options{
			Port:     cfg.NATSPort,
			StoreDir: cfg.NATSStoreDir,
			Bucket:   cfg.KVBucket,
		})
		if err != nil {
			return err
		}

		notifier := game.NewNotifier(game.WithNATS(b.Conn, cfg.SelectionSubject))
		world, err := game.NewWorld(ctx, cat,
			game.WithNotifier(notifier),
			game.WithKeyValue(b.KV),
			game.WithCamera(cfg.Camera),
		)
		if err != nil {
			return err
		}

		loop = game.NewFrameLoop(world, cfg.FrameInterval(), cfg.BroadcastInterval())
		loop.Start()

		if err := routes.SetupRoutes(ctx, se.Router, world, cfg); err != nil {
			return err
		}

		log.Info("World ready",
			"zones", len(cat.Zones),
			"agents", len(world.Agents()),
			"nats", b.ClientURL(),
			"subject", cfg.SelectionSubject,
		)

		return se.Next()
	})

	app.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		cancel()
		if loop != nil {
			loop.Stop()
		}
		if b != nil {
			b.Close()
		}
		return e.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
