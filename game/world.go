package game

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/agentworld/game/physics"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/samber/lo"
)

// StateKey is the KV key the latest world snapshot is stored under
const StateKey = "current"

// World owns the live agents, their scene and the viewer state. It is the
// only holder of the agent map; every method serialises on one mutex so the
// frame loop and input handlers take turns on a single logical thread.
type World struct {
	catalog  Catalog
	agents   map[string]*Agent
	scene    *Scene
	camera   physics.Camera
	surface  Surface
	pointer  Pointer
	elapsed  float64
	started  time.Time
	now      func() time.Time
	notifier *Notifier
	kv       jetstream.KeyValue
	ctx      context.Context
	mutex    sync.Mutex
}

// Option configures a World
type Option func(*World)

// WithNotifier sets the selection notifier
func WithNotifier(n *Notifier) Option {
	return func(w *World) {
		w.notifier = n
	}
}

// WithKeyValue publishes world snapshots to a JetStream KV bucket
func WithKeyValue(kv jetstream.KeyValue) Option {
	return func(w *World) {
		w.kv = kv
	}
}

// WithCamera replaces the default camera
func WithCamera(c physics.Camera) Option {
	return func(w *World) {
		w.camera = c
	}
}

// WithSurface sets the initial drawing surface size
func WithSurface(width, height float64) Option {
	return func(w *World) {
		w.surface = Surface{Width: width, Height: height}
	}
}

// WithClock overrides the wall clock used for elapsed time
func WithClock(now func() time.Time) Option {
	return func(w *World) {
		w.now = now
	}
}

// NewWorld validates the catalog and builds the world from it
func NewWorld(ctx context.Context, cat Catalog, opts ...Option) (*World, error) {
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	world := &World{
		catalog: cat,
		scene:   NewScene(),
		camera:  physics.DefaultCamera(),
		surface: Surface{Width: 1280, Height: 720},
		now:     time.Now,
		ctx:     ctx,
	}
	for _, opt := range opts {
		opt(world)
	}
	if world.notifier == nil {
		world.notifier = NewNotifier()
	}
	if err := world.camera.Validate(); err != nil {
		return nil, fmt.Errorf("invalid camera: %w", err)
	}
	world.camera.Resize(world.surface.Width, world.surface.Height)

	world.agents = Build(cat, world.scene)
	world.started = world.now()

	log.Info("World built", "zones", len(cat.Zones), "agents", len(world.agents))

	return world, nil
}

// Notifier returns the selection notifier
func (w *World) Notifier() *Notifier {
	return w.notifier
}

// Catalog returns the catalog the world was built from
func (w *World) Catalog() Catalog {
	return w.catalog
}

// Elapsed returns the time since the world was built
func (w *World) Elapsed() time.Duration {
	return w.now().Sub(w.started)
}

// Tick recomputes every agent's visual transform from absolute time t in
// seconds. Nothing carries over from the previous tick.
func (w *World) Tick(t float64) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.elapsed = t
	for _, agent := range w.agents {
		agent.visual.apply(Animate(t, agent.Level))
	}
}

// SetPointer records the latest pointer position on the drawing surface
func (w *World) SetPointer(x, y float64) {
	w.mutex.Lock()
	w.pointer = Pointer{X: x, Y: y, Valid: true}
	w.mutex.Unlock()
}

// Resize updates the drawing surface and the camera aspect ratio
func (w *World) Resize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %vx%v", width, height)
	}

	w.mutex.Lock()
	w.surface = Surface{Width: width, Height: height}
	w.camera.Resize(width, height)
	w.mutex.Unlock()

	log.Debug("Surface resized", "width", width, "height", height)
	return nil
}

// Click resolves the latest pointer position to an agent. On a hit the
// selection is announced through the notifier.
func (w *World) Click() (Agent, bool) {
	w.mutex.Lock()
	pointer := w.pointer
	if !pointer.Valid {
		w.mutex.Unlock()
		log.Debug("Click ignored, no pointer position yet")
		return Agent{}, false
	}
	agent, tr, ok := w.pickLocked(pointer.X, pointer.Y)
	w.mutex.Unlock()

	return w.announce(agent, tr, ok)
}

// ClickAt stores the pointer position carried by a click and resolves it in
// the same step, so a click never picks from an older pointer move
func (w *World) ClickAt(x, y float64) (Agent, bool) {
	w.mutex.Lock()
	w.pointer = Pointer{X: x, Y: y, Valid: true}
	agent, tr, ok := w.pickLocked(x, y)
	w.mutex.Unlock()

	return w.announce(agent, tr, ok)
}

// announce notifies outside the lock so listeners may call back into the world
func (w *World) announce(agent Agent, tr Transform, ok bool) (Agent, bool) {
	if !ok {
		return Agent{}, false
	}
	w.notifier.NotifyPicked(agent, tr)
	return agent, true
}

// Pick resolves a surface position to the nearest agent without recording
// it or notifying anyone
func (w *World) Pick(x, y float64) (Agent, bool) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	agent, _, ok := w.pickLocked(x, y)
	return agent, ok
}

func (w *World) pickLocked(x, y float64) (Agent, Transform, bool) {
	ndc := physics.PointerToNDC(x, y, w.surface.Width, w.surface.Height)
	colliders := physics.GetColliders(w.scene.Visuals())

	name, ok := physics.Resolve(ndc, w.camera, colliders)
	if !ok {
		return Agent{}, Transform{}, false
	}

	agent, ok := w.agents[name]
	if !ok {
		log.Error("Picked visual has no agent", "agent", name)
		return Agent{}, Transform{}, false
	}
	return agent.detach(), agent.visual.Transform(), true
}

// Agent returns a copy of the named agent
func (w *World) Agent(name string) (Agent, bool) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	agent, ok := w.agents[name]
	if !ok {
		return Agent{}, false
	}
	return agent.detach(), true
}

// Visual returns a copy of the named agent's visual
func (w *World) Visual(name string) (Visual, bool) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	agent, ok := w.agents[name]
	if !ok {
		return Visual{}, false
	}
	return *agent.visual, true
}

// Agents returns copies of all agents sorted by name
func (w *World) Agents() []Agent {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.agentsLocked()
}

func (w *World) agentsLocked() []Agent {
	names := lo.Keys(w.agents)
	sort.Strings(names)
	return lo.Map(names, func(name string, _ int) Agent {
		return w.agents[name].detach()
	})
}

// Camera returns the current camera
func (w *World) Camera() physics.Camera {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.camera
}

// GetState returns a copy of the current world state
func (w *World) GetState() WorldState {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	zones := make([]Zone, len(w.catalog.Zones))
	copy(zones, w.catalog.Zones)

	return WorldState{
		Elapsed: w.elapsed,
		Camera:  w.camera,
		Surface: w.surface,
		Zones:   zones,
		Agents:  w.agentsLocked(),
		Visuals: w.scene.Snapshot(),
	}
}

// PublishState writes the current snapshot to the KV bucket. Without a
// bucket it does nothing.
func (w *World) PublishState() error {
	if w.kv == nil {
		return nil
	}

	stateJSON, err := json.Marshal(w.GetState())
	if err != nil {
		return fmt.Errorf("error marshaling world state: %w", err)
	}

	if _, err := w.kv.Put(w.ctx, StateKey, stateJSON); err != nil {
		return fmt.Errorf("error saving world state to KV: %w", err)
	}
	return nil
}

// WatchState creates a watcher for world snapshot updates.
// Returns the KeyWatcher directly so caller can use its Updates() channel
func (w *World) WatchState(ctx context.Context) (jetstream.KeyWatcher, error) {
	if w.kv == nil {
		return nil, fmt.Errorf("world state is not published to a KV bucket")
	}

	watcher, err := w.kv.Watch(ctx, StateKey, jetstream.UpdatesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to create KV watcher: %w", err)
	}
	return watcher, nil
}

// detach copies the agent without its scene handle
func (a *Agent) detach() Agent {
	out := *a
	out.visual = nil
	return out
}
