package bus

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
)

func startTestBus(t *testing.T) *Bus {
	t.Helper()
	b, err := Start(context.Background(), Options{
		Port:     -1,
		StoreDir: t.TempDir(),
		Bucket:   "world_test",
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(b.Close)
	return b
}

func TestStartRequiresBucket(t *testing.T) {
	if _, err := Start(context.Background(), Options{Port: -1, StoreDir: t.TempDir()}); err == nil {
		t.Fatal("expected error without bucket name")
	}
}

func TestKeyValueRoundTrip(t *testing.T) {
	b := startTestBus(t)
	ctx := context.Background()

	if _, err := b.KV.Put(ctx, "current", []byte(`{"elapsed":1}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	entry, err := b.KV.Get(ctx, "current")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(entry.Value()) != `{"elapsed":1}` {
		t.Fatalf("unexpected value %q", entry.Value())
	}
}

func TestPublishSubscribe(t *testing.T) {
	b := startTestBus(t)

	nc, err := nats.Connect(b.ClientURL())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer nc.Close()

	sub, err := nc.SubscribeSync("agents.selected")
	if err != nil {
		t.Fatalf("SubscribeSync: %v", err)
	}
	if err := nc.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if err := b.Conn.Publish("agents.selected", []byte("hello")); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	msg, err := sub.NextMsg(2 * time.Second)
	if err != nil {
		t.Fatalf("NextMsg: %v", err)
	}
	if string(msg.Data) != "hello" {
		t.Fatalf("unexpected payload %q", msg.Data)
	}
}
