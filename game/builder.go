package game

import (
	"github.com/charmbracelet/log"
)

// Build instantiates one live agent per (zone, agent name) pair and places
// its visual in the scene. A name listed by two zones ends up in the later
// zone; Catalog.Validate rejects such catalogs before they get here.
func Build(cat Catalog, scene *Scene) map[string]*Agent {
	agents := make(map[string]*Agent)

	for _, zone := range cat.Zones {
		for _, name := range zone.Agents {
			tmpl, ok := cat.Templates[name]
			if !ok {
				log.Warn("Skipping unknown agent", "zone", zone.ID, "agent", name)
				continue
			}

			pos := Position{X: zone.X, Y: BaseHeight, Z: zone.Z}
			visual := scene.Place(name, pos, tmpl.Color)

			agents[name] = &Agent{
				AgentTemplate: tmpl,
				Zone:          zone.ID,
				Position:      pos,
				VisualID:      visual.ID,
				visual:        visual,
			}

			log.Debug("Agent placed", "agent", name, "zone", zone.ID, "x", pos.X, "y", pos.Y, "z", pos.Z)
		}
	}

	return agents
}
