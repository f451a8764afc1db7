// Package bus runs the embedded NATS server that carries selection events
// and the world snapshot KV bucket.
package bus

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Options configures the embedded broker
type Options struct {
	Host     string
	Port     int // -1 picks a random free port
	StoreDir string
	Bucket   string
}

// Bus is a running embedded NATS server with a connected client
type Bus struct {
	server *server.Server
	Conn   *nats.Conn
	JS     jetstream.JetStream
	KV     jetstream.KeyValue
}

// Start launches the server, connects to it and creates the KV bucket
func Start(ctx context.Context, opts Options) (*Bus, error) {
	if opts.Host == "" {
		opts.Host = "127.0.0.1"
	}
	if opts.Bucket == "" {
		return nil, fmt.Errorf("bus: bucket name is required")
	}

	ns, err := server.NewServer(&server.Options{
		Host:      opts.Host,
		Port:      opts.Port,
		JetStream: true,
		StoreDir:  opts.StoreDir,
		NoSigs:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create nats server: %w", err)
	}

	ns.Start()
	if !ns.ReadyForConnections(5 * time.Second) {
		ns.Shutdown()
		return nil, fmt.Errorf("nats server not ready")
	}

	nc, err := nats.Connect(ns.ClientURL())
	if err != nil {
		ns.Shutdown()
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		ns.Shutdown()
		return nil, fmt.Errorf("failed to create jetstream context: %w", err)
	}

	kv, err := js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  opts.Bucket,
		History: 1,
		Storage: jetstream.MemoryStorage,
	})
	if err != nil {
		nc.Close()
		ns.Shutdown()
		return nil, fmt.Errorf("failed to create KV bucket %q: %w", opts.Bucket, err)
	}

	log.Info("NATS server started", "url", ns.ClientURL(), "bucket", opts.Bucket)

	return &Bus{
		server: ns,
		Conn:   nc,
		JS:     js,
		KV:     kv,
	}, nil
}

// ClientURL returns the URL clients can connect to
func (b *Bus) ClientURL() string {
	return b.server.ClientURL()
}

// Close flushes and closes the client connection and shuts the server down
func (b *Bus) Close() {
	if err := b.Conn.FlushTimeout(time.Second); err != nil {
		log.Warn("Error flushing nats connection", "error", err)
	}
	b.Conn.Close()
	b.server.Shutdown()
	b.server.WaitForShutdown()
	log.Info("NATS server stopped")
}
