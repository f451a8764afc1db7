package middleware

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pocketbase/pocketbase/core"
)

// streamingPrefixes are long-lived endpoints that are only logged when they
// close
var streamingPrefixes = []string{"/world", "/selection", "/ws/"}

// AddRequestLogging logs every request served by the app's router
func AddRequestLogging(app core.App) {
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(logRequest)
		return se.Next()
	})
}

func logRequest(e *core.RequestEvent) error {
	start := time.Now()
	err := e.Next()

	fields := []any{
		"method", e.Request.Method,
		"path", e.Request.URL.Path,
		"duration", time.Since(start),
	}
	if err != nil {
		log.Warn("Request failed", append(fields, "error", err)...)
		return err
	}

	if isStreaming(e.Request.URL.Path) {
		log.Info("Stream closed", fields...)
	} else {
		log.Debug("Request served", fields...)
	}
	return nil
}

func isStreaming(path string) bool {
	for _, prefix := range streamingPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
