package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/agentworld/game/physics"
	"github.com/spf13/pflag"
)

// Config holds the world server settings
type Config struct {
	FrameRate        int
	BroadcastRate    int
	CatalogPath      string
	NATSPort         int
	NATSStoreDir     string
	KVBucket         string
	SelectionSubject string
	Camera           physics.Camera
}

// Default returns the settings used when no flags are given
func Default() Config {
	return Config{
		FrameRate:        60,
		BroadcastRate:    10,
		NATSPort:         -1,
		KVBucket:         "world",
		SelectionSubject: "agents.selected",
		Camera:           physics.DefaultCamera(),
	}
}

// Register binds the settings to command line flags
func (c *Config) Register(fs *pflag.FlagSet) {
	fs.IntVar(&c.FrameRate, "frame-rate", c.FrameRate, "animation frames per second")
	fs.IntVar(&c.BroadcastRate, "broadcast-rate", c.BroadcastRate, "world snapshots published per second")
	fs.StringVar(&c.CatalogPath, "catalog", c.CatalogPath, "YAML world catalog (defaults to the built-in world)")
	fs.IntVar(&c.NATSPort, "nats-port", c.NATSPort, "embedded NATS client port (-1 for a random port)")
	fs.StringVar(&c.NATSStoreDir, "nats-store", c.NATSStoreDir, "embedded NATS JetStream store directory")
	fs.StringVar(&c.KVBucket, "kv-bucket", c.KVBucket, "KV bucket for world snapshots")
	fs.StringVar(&c.SelectionSubject, "selection-subject", c.SelectionSubject, "NATS subject for agent selection events")
	fs.Float64Var(&c.Camera.FOV, "camera-fov", c.Camera.FOV, "camera vertical field of view in degrees")
	fs.Float64Var(&c.Camera.Position.X, "camera-x", c.Camera.Position.X, "camera position x")
	fs.Float64Var(&c.Camera.Position.Y, "camera-y", c.Camera.Position.Y, "camera position y")
	fs.Float64Var(&c.Camera.Position.Z, "camera-z", c.Camera.Position.Z, "camera position z")
	fs.Float64Var(&c.Camera.Target.X, "camera-target-x", c.Camera.Target.X, "camera look-at x")
	fs.Float64Var(&c.Camera.Target.Y, "camera-target-y", c.Camera.Target.Y, "camera look-at y")
	fs.Float64Var(&c.Camera.Target.Z, "camera-target-z", c.Camera.Target.Z, "camera look-at z")
}

// Validate checks the settings are usable
func (c Config) Validate() error {
	var errs []error
	if c.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("frame-rate must be positive, got %d", c.FrameRate))
	}
	if c.BroadcastRate <= 0 {
		errs = append(errs, fmt.Errorf("broadcast-rate must be positive, got %d", c.BroadcastRate))
	}
	if c.BroadcastRate > c.FrameRate {
		errs = append(errs, errors.New("broadcast-rate cannot exceed frame-rate"))
	}
	if c.KVBucket == "" {
		errs = append(errs, errors.New("kv-bucket is required"))
	}
	if c.SelectionSubject == "" {
		errs = append(errs, errors.New("selection-subject is required"))
	}
	if err := c.Camera.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// FrameInterval is the delay between animation frames
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

// BroadcastInterval is the delay between published snapshots
func (c Config) BroadcastInterval() time.Duration {
	return time.Second / time.Duration(c.BroadcastRate)
}
