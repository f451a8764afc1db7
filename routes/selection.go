package routes

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/mark3labs/agentworld/game"
	"github.com/mark3labs/agentworld/views"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	datastar "github.com/starfederation/datastar/sdk/go"
)

// selectionBuffer is how many undelivered events a slow listener may hold
// before further events to it are dropped
const selectionBuffer = 16

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func setupSelectionRoutes(router *router.Router[*core.RequestEvent], notifier *game.Notifier) error {
	// Selection cards for the world page
	router.GET("/selection", func(e *core.RequestEvent) error {
		events, unsubscribe := subscribe(notifier)
		defer unsubscribe()

		sse := datastar.NewSSE(e.Response, e.Request)
		for {
			select {
			case <-e.Request.Context().Done():
				return nil
			case event := <-events:
				if err := sse.MergeFragmentTempl(views.AgentCard(event.Agent)); err != nil {
					log.Debug("Selection stream closed", "error", err)
					return nil
				}
			}
		}
	})

	// Raw selection events for external listeners
	socket := selectionSocket(notifier)
	router.GET("/ws/selection", func(e *core.RequestEvent) error {
		socket(e.Response, e.Request)
		return nil
	})

	return nil
}

// subscribe registers a buffered listener. Events for a full buffer are
// dropped rather than blocking the notifier.
func subscribe(notifier *game.Notifier) (<-chan game.SelectionEvent, func()) {
	events := make(chan game.SelectionEvent, selectionBuffer)
	unsubscribe := notifier.Subscribe(func(event game.SelectionEvent) {
		select {
		case events <- event:
		default:
			log.Warn("Dropping selection event for slow listener", "event", event.ID)
		}
	})
	return events, unsubscribe
}

// selectionSocket streams every selection event as one JSON websocket
// message until the client goes away
func selectionSocket(notifier *game.Notifier) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(rw, r, nil)
		if err != nil {
			log.Warn("Websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		events, unsubscribe := subscribe(notifier)
		defer unsubscribe()

		// Reads only detect the client closing
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		log.Info("Selection listener connected", "remote", r.RemoteAddr)

		for {
			select {
			case <-closed:
				return
			case event := <-events:
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteJSON(event); err != nil {
					log.Debug("Selection socket write failed", "error", err)
					return
				}
			}
		}
	}
}
