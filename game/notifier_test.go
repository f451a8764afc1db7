package game

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/agentworld/bus"
)

func testAgent() Agent {
	tmpl := DefaultCatalog().Templates["ECHO"]
	return Agent{
		AgentTemplate: tmpl,
		Zone:          "echo-archive",
		Position:      Position{X: -10, Y: BaseHeight, Z: 6},
	}
}

func TestNotifierDeliversToListeners(t *testing.T) {
	n := NewNotifier(WithTimeStamper(func() int64 { return 42 }))

	var first, second []SelectionEvent
	n.Subscribe(func(e SelectionEvent) { first = append(first, e) })
	unsubscribe := n.Subscribe(func(e SelectionEvent) { second = append(second, e) })

	event := n.Notify(testAgent())
	if event.ID == "" || event.Type != EventAgentSelected || event.Timestamp != 42 {
		t.Fatalf("unexpected event %+v", event)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected one delivery each, got %d and %d", len(first), len(second))
	}
	if first[0].Agent.Name != "ECHO" || first[0].Agent.Level != 68 {
		t.Fatalf("event carries wrong agent: %+v", first[0].Agent)
	}

	unsubscribe()
	unsubscribe()
	if n.Listeners() != 1 {
		t.Fatalf("expected 1 listener after unsubscribe, got %d", n.Listeners())
	}

	n.Notify(testAgent())
	if len(first) != 2 || len(second) != 1 {
		t.Fatalf("unsubscribed listener still notified: %d and %d", len(first), len(second))
	}
}

func TestNotifierWithoutListenersDrops(t *testing.T) {
	n := NewNotifier()
	event := n.Notify(testAgent())
	if event.Agent.Name != "ECHO" {
		t.Fatalf("unexpected event %+v", event)
	}
}

func TestNotifierPickedCarriesTransform(t *testing.T) {
	n := NewNotifier()

	plain := n.Notify(testAgent())
	if plain.Transform != nil {
		t.Fatalf("plain notify should carry no transform, got %+v", plain.Transform)
	}

	tr := Animate(1.25, 68)
	picked := n.NotifyPicked(testAgent(), tr)
	if picked.Transform == nil || *picked.Transform != tr {
		t.Fatalf("transform = %+v, want %+v", picked.Transform, tr)
	}

	b, err := json.Marshal(picked)
	if err != nil {
		t.Fatal(err)
	}
	var decoded SelectionEvent
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Transform == nil || decoded.Transform.Height != tr.Height {
		t.Fatalf("transform lost on the wire: %s", b)
	}
}

func TestNotifierEventIDsAreUnique(t *testing.T) {
	n := NewNotifier()
	a := n.Notify(testAgent())
	b := n.Notify(testAgent())
	if a.ID == b.ID {
		t.Fatalf("event ids collide: %s", a.ID)
	}
}

func TestNotifierPublishesToNATS(t *testing.T) {
	b, err := bus.Start(context.Background(), bus.Options{Port: -1, StoreDir: t.TempDir(), Bucket: "notifier_test"})
	if err != nil {
		t.Fatalf("bus.Start: %v", err)
	}
	defer b.Close()

	sub, err := b.Conn.SubscribeSync(DefaultSelectionSubject)
	if err != nil {
		t.Fatalf("SubscribeSync: %v", err)
	}
	if err := b.Conn.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	n := NewNotifier(WithNATS(b.Conn, ""))
	sent := n.Notify(testAgent())

	msg, err := sub.NextMsg(2 * time.Second)
	if err != nil {
		t.Fatalf("NextMsg: %v", err)
	}

	var got SelectionEvent
	if err := json.Unmarshal(msg.Data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.ID != sent.ID || got.Agent.Name != "ECHO" || got.Agent.Category != CategoryMemory {
		t.Fatalf("unexpected published event %+v", got)
	}
	if got.Agent.Position != (Position{X: -10, Y: BaseHeight, Z: 6}) {
		t.Fatalf("position not carried: %+v", got.Agent.Position)
	}
}
