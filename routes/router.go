package routes

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/agentworld/config"
	"github.com/mark3labs/agentworld/game"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
)

// SetupRoutes initializes all routes with the world they serve
func SetupRoutes(ctx context.Context, router *router.Router[*core.RequestEvent], world *game.World, cfg config.Config) error {

	err := errors.Join(
		setupIndexRoutes(ctx, router, world, cfg),
		setupSelectionRoutes(router, world.Notifier()),
	)
	if err != nil {
		return fmt.Errorf("failed to set up routes: %w", err)
	}

	return nil
}
