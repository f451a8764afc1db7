package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/agentworld/config"
	"github.com/mark3labs/agentworld/game"
	"github.com/mark3labs/agentworld/views"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	datastar "github.com/starfederation/datastar/sdk/go"
)

// Signals struct for handling DataStar signals
type Signals struct {
	PointerX float64 `json:"pointerX"`
	PointerY float64 `json:"pointerY"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// worldSignal wraps a marshaled world state as the "world" signal
func worldSignal(stateJSON []byte) []byte {
	return []byte(fmt.Sprintf(`{"world": %s}`, stateJSON))
}

// selectedSignal names the selected agent, or clears it
func selectedSignal(name string) ([]byte, error) {
	return json.Marshal(map[string]string{"selected": name})
}

func setupIndexRoutes(ctx context.Context, router *router.Router[*core.RequestEvent], world *game.World, cfg config.Config) error {
	router.GET("/", func(e *core.RequestEvent) error {
		return views.Index(world.GetState()).Render(e.Request.Context(), e.Response)
	})

	router.GET("/api/agents", func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, world.Agents())
	})

	// Pointer moves are bookkeeping only
	router.POST("/pointer", func(e *core.RequestEvent) error {
		signals := &Signals{}
		if err := datastar.ReadSignals(e.Request, signals); err != nil {
			log.Warn("Error reading pointer signals", "error", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		world.SetPointer(signals.PointerX, signals.PointerY)
		return e.NoContent(http.StatusNoContent)
	})

	router.POST("/resize", func(e *core.RequestEvent) error {
		signals := &Signals{}
		if err := datastar.ReadSignals(e.Request, signals); err != nil {
			log.Warn("Error reading resize signals", "error", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		if err := world.Resize(signals.Width, signals.Height); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return e.NoContent(http.StatusNoContent)
	})

	// Clicks carry their own pointer position. Other pages receive the card
	// through the /selection stream
	router.POST("/click", func(e *core.RequestEvent) error {
		signals := &Signals{}
		if err := datastar.ReadSignals(e.Request, signals); err != nil {
			log.Warn("Error reading click signals", "error", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		agent, ok := world.ClickAt(signals.PointerX, signals.PointerY)

		payload, err := selectedSignal(agent.Name)
		if err != nil {
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}

		sse := datastar.NewSSE(e.Response, e.Request)
		if ok {
			if err := sse.MergeFragmentTempl(views.AgentCard(agent)); err != nil {
				log.Error("Error sending selection card", "error", err)
				return nil
			}
		}
		if err := sse.MergeSignals(payload); err != nil {
			log.Error("Error sending selection signal", "error", err)
		}
		return nil
	})

	router.GET("/world", func(e *core.RequestEvent) error {
		reqCtx := e.Request.Context()
		sse := datastar.NewSSE(e.Response, e.Request)

		// Send the current state right away
		if err := mergeState(sse, world.GetState()); err != nil {
			log.Error("Error sending world state", "error", err)
			return nil
		}

		watcher, err := world.WatchState(reqCtx)
		if err != nil {
			log.Warn("World state watch unavailable, polling instead", "error", err)
			return pollWorld(ctx, reqCtx, sse, world, cfg.BroadcastInterval())
		}
		defer watcher.Stop()

		for {
			select {
			case <-reqCtx.Done():
				return nil
			case <-ctx.Done():
				return nil
			case entry, ok := <-watcher.Updates():
				if !ok {
					return nil
				}
				if entry == nil {
					continue
				}
				if err := sse.MergeSignals(worldSignal(entry.Value())); err != nil {
					log.Debug("World stream closed", "error", err)
					return nil
				}
			}
		}
	})

	return nil
}

func mergeState(sse *datastar.ServerSentEventGenerator, state game.WorldState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("error marshaling world state: %w", err)
	}
	return sse.MergeSignals(worldSignal(stateJSON))
}

// pollWorld streams snapshots on a timer when no KV bucket is available
func pollWorld(ctx, reqCtx context.Context, sse *datastar.ServerSentEventGenerator, world *game.World, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-reqCtx.Done():
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := mergeState(sse, world.GetState()); err != nil {
				log.Debug("World stream closed", "error", err)
				return nil
			}
		}
	}
}
