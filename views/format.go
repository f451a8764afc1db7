package views

import (
	"fmt"

	"github.com/mark3labs/agentworld/game"
)

func formatPosition(p game.Position) string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", p.X, p.Y, p.Z)
}

func rosterSize(zone game.Zone) string {
	if len(zone.Agents) == 1 {
		return "1 agent"
	}
	return fmt.Sprintf("%d agents", len(zone.Agents))
}
