package game

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// FrameLoop drives the world's animation once per frame and periodically
// publishes the world snapshot for renderers
type FrameLoop struct {
	world             *World
	frameDelay        time.Duration
	broadcastInterval time.Duration
	mutex             sync.Mutex
	isRunning         bool
	quit              chan struct{} // Channel to signal shutdown
	done              chan struct{}
}

// NewFrameLoop creates a frame loop for the world
func NewFrameLoop(world *World, frameDelay, broadcastInterval time.Duration) *FrameLoop {
	return &FrameLoop{
		world:             world,
		frameDelay:        frameDelay,
		broadcastInterval: broadcastInterval,
	}
}

// Start begins ticking in a background goroutine
func (l *FrameLoop) Start() {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.isRunning {
		return
	}
	l.isRunning = true
	l.quit = make(chan struct{})
	l.done = make(chan struct{})

	go l.run(l.quit, l.done)

	log.Info("Frame loop started", "frameDelay", l.frameDelay, "broadcastInterval", l.broadcastInterval)
}

// Stop halts the loop and waits for the current frame to finish
func (l *FrameLoop) Stop() {
	l.mutex.Lock()
	if !l.isRunning {
		l.mutex.Unlock()
		return
	}
	l.isRunning = false
	close(l.quit)
	done := l.done
	l.mutex.Unlock()

	<-done
	log.Info("Frame loop stopped")
}

// run is the main frame loop. One goroutine runs all frames so ticks never
// overlap.
func (l *FrameLoop) run(quit, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.frameDelay)
	defer ticker.Stop()

	var lastBroadcast time.Time
	frames := 0

	for {
		select {
		case <-quit:
			return
		case now := <-ticker.C:
			l.world.Tick(l.world.Elapsed().Seconds())
			frames++

			if l.broadcastInterval > 0 && now.Sub(lastBroadcast) >= l.broadcastInterval {
				lastBroadcast = now
				if err := l.world.PublishState(); err != nil {
					log.Error("Error publishing world state", "error", err)
				}
			}

			if frames%600 == 0 {
				log.Debug("Frame loop heartbeat", "frames", frames)
			}
		}
	}
}
