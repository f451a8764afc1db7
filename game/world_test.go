package game

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/mark3labs/agentworld/bus"
	"github.com/mark3labs/agentworld/game/physics"
)

func newTestWorld(t *testing.T, opts ...Option) *World {
	t.Helper()
	w, err := NewWorld(context.Background(), DefaultCatalog(), opts...)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

// pointerAt returns the surface coordinates where p appears on screen
func pointerAt(t *testing.T, w *World, p Position) (float64, float64) {
	t.Helper()
	ndc, ok := w.Camera().Project(p)
	if !ok {
		t.Fatalf("position %+v is behind the camera", p)
	}
	state := w.GetState()
	return ndc.Pointer(state.Surface.Width, state.Surface.Height)
}

func TestNewWorldRejectsBadCatalog(t *testing.T) {
	cat := DefaultCatalog()
	cat.Zones[3].Agents = []string{"ECHO"}
	if _, err := NewWorld(context.Background(), cat); err == nil {
		t.Fatal("expected error for agent claimed by two zones")
	}
}

func TestNewWorldRejectsBadCamera(t *testing.T) {
	cam := physics.DefaultCamera()
	cam.FOV = -1
	if _, err := NewWorld(context.Background(), DefaultCatalog(), WithCamera(cam)); err == nil {
		t.Fatal("expected error for invalid camera")
	}
}

func TestWorldAgents(t *testing.T) {
	w := newTestWorld(t)

	agents := w.Agents()
	if len(agents) != 6 {
		t.Fatalf("expected 6 agents, got %d", len(agents))
	}
	for i := 1; i < len(agents); i++ {
		if agents[i-1].Name >= agents[i].Name {
			t.Fatalf("agents not sorted: %s before %s", agents[i-1].Name, agents[i].Name)
		}
	}

	echo, ok := w.Agent("ECHO")
	if !ok || echo.Position != (Position{X: -10, Y: 1.5, Z: 6}) {
		t.Fatalf("Agent(ECHO) = %+v, %v", echo, ok)
	}
	if echo.visual != nil {
		t.Fatal("agent copies must not expose the scene handle")
	}
	if _, ok := w.Agent("NOBODY"); ok {
		t.Fatal("unknown agent found")
	}
}

func TestWorldTickAnimatesVisualsOnly(t *testing.T) {
	w := newTestWorld(t)

	w.Tick(0)
	lucidia, _ := w.Visual("LUCIDIA")
	alice, _ := w.Visual("ALICE")

	if want := 1.5 + math.Sin(99)*0.3; lucidia.Mesh.Position.Y != want {
		t.Fatalf("LUCIDIA height = %v, want %v", lucidia.Mesh.Position.Y, want)
	}
	if want := 1.5 + math.Sin(85)*0.3; alice.Mesh.Position.Y != want {
		t.Fatalf("ALICE height = %v, want %v", alice.Mesh.Position.Y, want)
	}
	if lucidia.Light.Position != lucidia.Mesh.Position {
		t.Fatal("light should follow the mesh")
	}

	agent, _ := w.Agent("LUCIDIA")
	if agent.Position.Y != BaseHeight || agent.HP != agent.MaxHP {
		t.Fatalf("tick mutated agent stats: %+v", agent)
	}
}

func TestWorldTickIsRestartable(t *testing.T) {
	a := newTestWorld(t)
	b := newTestWorld(t)

	// a runs through many frames, b jumps straight to the same time
	for i := 0; i <= 600; i++ {
		a.Tick(float64(i) / 60)
	}
	b.Tick(10)

	for _, name := range []string{"LUCIDIA", "ALICE", "OCTAVIA", "ARIA", "ECHO", "CIPHER"} {
		va, _ := a.Visual(name)
		vb, _ := b.Visual(name)
		if va.Mesh != vb.Mesh {
			t.Fatalf("%s differs: %+v vs %+v", name, va.Mesh, vb.Mesh)
		}
	}
}

func TestWorldPickAndClick(t *testing.T) {
	n := NewNotifier()
	var events []SelectionEvent
	n.Subscribe(func(e SelectionEvent) { events = append(events, e) })

	w := newTestWorld(t, WithNotifier(n), WithSurface(800, 600))

	if _, ok := w.Click(); ok {
		t.Fatal("click before any pointer move should not select")
	}

	x, y := pointerAt(t, w, Position{X: -10, Y: 1.5, Z: 6})
	w.SetPointer(x, y)

	agent, ok := w.Click()
	if !ok || agent.Name != "ECHO" {
		t.Fatalf("Click() = %+v, %v; want ECHO", agent, ok)
	}
	if len(events) != 1 || events[0].Agent.Name != "ECHO" {
		t.Fatalf("expected one ECHO selection event, got %+v", events)
	}

	// Empty sky in the top corner
	w.SetPointer(1, 1)
	if _, ok := w.Click(); ok {
		t.Fatal("click on empty space should not select")
	}
	if len(events) != 1 {
		t.Fatalf("miss should not notify, got %d events", len(events))
	}
}

func TestWorldClickAtUsesClickPosition(t *testing.T) {
	n := NewNotifier()
	var events []SelectionEvent
	n.Subscribe(func(e SelectionEvent) { events = append(events, e) })

	w := newTestWorld(t, WithNotifier(n), WithSurface(800, 600))
	w.Tick(2.5)

	visual, _ := w.Visual("ECHO")
	x, y := pointerAt(t, w, visual.Mesh.Position)

	// The last stored move points at empty sky
	w.SetPointer(1, 1)

	agent, ok := w.ClickAt(x, y)
	if !ok || agent.Name != "ECHO" {
		t.Fatalf("ClickAt() = %+v, %v; want ECHO", agent, ok)
	}
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}

	want := Animate(2.5, agent.Level)
	if events[0].Transform == nil || *events[0].Transform != want {
		t.Fatalf("event transform = %+v, want %+v", events[0].Transform, want)
	}

	// The click position is now the stored pointer
	if again, ok := w.Click(); !ok || again.Name != "ECHO" {
		t.Fatalf("Click() after ClickAt = %+v, %v", again, ok)
	}
}

func TestWorldPickEveryAgent(t *testing.T) {
	w := newTestWorld(t, WithSurface(1280, 720))
	w.Tick(3.2)

	for _, agent := range w.Agents() {
		visual, _ := w.Visual(agent.Name)
		x, y := pointerAt(t, w, visual.Mesh.Position)
		got, ok := w.Pick(x, y)
		if !ok || got.Name != agent.Name {
			t.Errorf("Pick at %s = %q, %v", agent.Name, got.Name, ok)
		}
	}
}

func TestWorldResize(t *testing.T) {
	w := newTestWorld(t)

	if err := w.Resize(1000, 250); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if w.Camera().Aspect != 4 {
		t.Fatalf("aspect = %v, want 4", w.Camera().Aspect)
	}
	if err := w.Resize(0, 10); err == nil {
		t.Fatal("expected error for empty surface")
	}
}

func TestWorldElapsed(t *testing.T) {
	now := time.Unix(1000, 0)
	w := newTestWorld(t, WithClock(func() time.Time { return now }))

	now = now.Add(2500 * time.Millisecond)
	if got := w.Elapsed(); got != 2500*time.Millisecond {
		t.Fatalf("Elapsed = %v", got)
	}
}

func TestWorldGetState(t *testing.T) {
	w := newTestWorld(t)
	w.Tick(1.25)

	state := w.GetState()
	if state.Elapsed != 1.25 {
		t.Fatalf("elapsed = %v", state.Elapsed)
	}
	if len(state.Zones) != 6 || len(state.Agents) != 6 || len(state.Visuals) != 6 {
		t.Fatalf("unexpected state sizes: %d zones, %d agents, %d visuals",
			len(state.Zones), len(state.Agents), len(state.Visuals))
	}

	state.Zones[0].Name = "changed"
	if w.Catalog().Zones[0].Name == "changed" {
		t.Fatal("state zones alias the catalog")
	}

	if _, err := json.Marshal(state); err != nil {
		t.Fatalf("state should marshal: %v", err)
	}
}

func TestWorldPublishState(t *testing.T) {
	w := newTestWorld(t)
	if err := w.PublishState(); err != nil {
		t.Fatalf("PublishState without KV should be a no-op, got %v", err)
	}
	if _, err := w.WatchState(context.Background()); err == nil {
		t.Fatal("WatchState without KV should fail")
	}

	b, err := bus.Start(context.Background(), bus.Options{Port: -1, StoreDir: t.TempDir(), Bucket: "world_test"})
	if err != nil {
		t.Fatalf("bus.Start: %v", err)
	}
	defer b.Close()

	w = newTestWorld(t, WithKeyValue(b.KV))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	watcher, err := w.WatchState(ctx)
	if err != nil {
		t.Fatalf("WatchState: %v", err)
	}
	defer watcher.Stop()

	w.Tick(2)
	if err := w.PublishState(); err != nil {
		t.Fatalf("PublishState: %v", err)
	}

	for {
		select {
		case entry := <-watcher.Updates():
			if entry == nil {
				continue
			}
			var state WorldState
			if err := json.Unmarshal(entry.Value(), &state); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if state.Elapsed != 2 || len(state.Agents) != 6 {
				t.Fatalf("unexpected published state: elapsed=%v agents=%d", state.Elapsed, len(state.Agents))
			}
			return
		case <-ctx.Done():
			t.Fatal("timed out waiting for state update")
		}
	}
}
