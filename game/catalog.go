package game

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/agentworld/utils"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Catalog is the static description of the world: zones and the agent
// templates they reference, keyed by agent name
type Catalog struct {
	Zones     []Zone                   `json:"zones" yaml:"zones"`
	Templates map[string]AgentTemplate `json:"agents" yaml:"agents"`
}

// DefaultCatalog returns the shipped six-zone world
func DefaultCatalog() Catalog {
	return Catalog{
		Zones: []Zone{
			{ID: "lucidia-core", Name: "Lucidia Core", Emoji: "🧠", Color: "#9c27b0", X: 0, Z: -10, Agents: []string{"LUCIDIA"}},
			{ID: "alice-gateway", Name: "Alice Gateway", Emoji: "🚪", Color: "#2196f3", X: 10, Z: -6, Agents: []string{"ALICE"}},
			{ID: "octavia-forge", Name: "Octavia Forge", Emoji: "⚙️", Color: "#ff9800", X: 10, Z: 6, Agents: []string{"OCTAVIA"}},
			{ID: "aria-observatory", Name: "Aria Observatory", Emoji: "🔭", Color: "#00bcd4", X: 0, Z: 10, Agents: []string{"ARIA"}},
			{ID: "echo-archive", Name: "Echo Archive", Emoji: "📚", Color: "#4caf50", X: -10, Z: 6, Agents: []string{"ECHO"}},
			{ID: "cipher-vault", Name: "Cipher Vault", Emoji: "🔐", Color: "#f44336", X: -10, Z: -6, Agents: []string{"CIPHER"}},
		},
		Templates: map[string]AgentTemplate{
			"LUCIDIA": {ID: "agent-lucidia", Name: "LUCIDIA", Category: CategoryLogic, Color: "#ce93d8", Level: 99, HP: 9900, MaxHP: 9900},
			"ALICE":   {ID: "agent-alice", Name: "ALICE", Category: CategoryGateway, Color: "#64b5f6", Level: 85, HP: 8500, MaxHP: 8500},
			"OCTAVIA": {ID: "agent-octavia", Name: "OCTAVIA", Category: CategoryCompute, Color: "#ffb74d", Level: 78, HP: 7800, MaxHP: 7800},
			"ARIA":    {ID: "agent-aria", Name: "ARIA", Category: CategoryVision, Color: "#4dd0e1", Level: 72, HP: 7200, MaxHP: 7200},
			"ECHO":    {ID: "agent-echo", Name: "ECHO", Category: CategoryMemory, Color: "#81c784", Level: 68, HP: 6800, MaxHP: 6800},
			"CIPHER":  {ID: "agent-cipher", Name: "CIPHER", Category: CategorySecurity, Color: "#e57373", Level: 90, HP: 9000, MaxHP: 9000},
		},
	}
}

// Zone returns the zone with the given id
func (c Catalog) Zone(id string) (Zone, bool) {
	for _, zone := range c.Zones {
		if zone.ID == id {
			return zone, true
		}
	}
	return Zone{}, false
}

// Template returns the agent template with the given name
func (c Catalog) Template(name string) (AgentTemplate, bool) {
	tmpl, ok := c.Templates[name]
	return tmpl, ok
}

// Validate checks the catalog is well formed. All problems are reported
// together so a bad catalog file can be fixed in one pass.
func (c Catalog) Validate() error {
	var errs []error

	if len(c.Zones) == 0 {
		errs = append(errs, errors.New("catalog has no zones"))
	}

	zoneIDs := make(map[string]bool, len(c.Zones))
	claimedBy := make(map[string]string)
	for _, zone := range c.Zones {
		if zone.ID == "" {
			errs = append(errs, fmt.Errorf("zone %q has no id", zone.Name))
			continue
		}
		if zoneIDs[zone.ID] {
			errs = append(errs, fmt.Errorf("duplicate zone id %q", zone.ID))
		}
		zoneIDs[zone.ID] = true

		if _, err := utils.NormalizeColor(zone.Color); err != nil {
			errs = append(errs, fmt.Errorf("zone %q: %w", zone.ID, err))
		}

		for _, name := range zone.Agents {
			if _, ok := c.Templates[name]; !ok {
				errs = append(errs, fmt.Errorf("zone %q references unknown agent %q", zone.ID, name))
				continue
			}
			if owner, taken := claimedBy[name]; taken {
				errs = append(errs, fmt.Errorf("agent %q is claimed by both zone %q and zone %q", name, owner, zone.ID))
				continue
			}
			claimedBy[name] = zone.ID
		}
	}

	names := make([]string, 0, len(c.Templates))
	for name := range c.Templates {
		names = append(names, name)
	}
	sort.Strings(names)

	templateIDs := make(map[string]string, len(names))
	for _, name := range names {
		tmpl := c.Templates[name]
		if tmpl.ID == "" {
			errs = append(errs, fmt.Errorf("agent %q has no id", name))
		} else if owner, taken := templateIDs[tmpl.ID]; taken {
			errs = append(errs, fmt.Errorf("agent %q reuses id %q of agent %q", name, tmpl.ID, owner))
		} else {
			templateIDs[tmpl.ID] = name
		}
		if tmpl.Name != name {
			errs = append(errs, fmt.Errorf("agent key %q does not match template name %q", name, tmpl.Name))
		}
		if !tmpl.Category.Valid() {
			errs = append(errs, fmt.Errorf("agent %q has unknown category %q", name, tmpl.Category))
		}
		if _, err := utils.NormalizeColor(tmpl.Color); err != nil {
			errs = append(errs, fmt.Errorf("agent %q: %w", name, err))
		}
		if tmpl.HP != tmpl.MaxHP {
			errs = append(errs, fmt.Errorf("agent %q must start at full health (%d/%d)", name, tmpl.HP, tmpl.MaxHP))
		}
		if _, placed := claimedBy[name]; !placed {
			log.Warn("Agent template is not placed in any zone", "agent", name)
		}
	}

	return errors.Join(errs...)
}

const catalogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["zones", "agents"],
  "properties": {
    "zones": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "name", "color", "x", "z", "agents"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "emoji": {"type": "string"},
          "color": {"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"},
          "x": {"type": "number"},
          "z": {"type": "number"},
          "agents": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "agents": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["id", "name", "category", "color", "level", "hp", "maxHp"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "category": {"enum": ["LOGIC", "GATEWAY", "COMPUTE", "VISION", "MEMORY", "SECURITY"]},
          "color": {"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"},
          "level": {"type": "integer", "minimum": 0},
          "hp": {"type": "integer", "minimum": 0},
          "maxHp": {"type": "integer", "minimum": 0}
        }
      }
    }
  }
}`

// LoadCatalog reads a YAML catalog file. An empty path returns the
// shipped catalog.
func LoadCatalog(path string) (Catalog, error) {
	if strings.TrimSpace(path) == "" {
		cat := DefaultCatalog()
		return cat, cat.Validate()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}

	cat, err := ParseCatalog(b)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}

	log.Info("Catalog loaded", "path", path, "zones", len(cat.Zones), "agents", len(cat.Templates))
	return cat, nil
}

// ParseCatalog decodes a YAML catalog, checks it against the catalog
// schema and validates its references
func ParseCatalog(b []byte) (Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Catalog{}, fmt.Errorf("invalid catalog yaml: %w", err)
	}

	// Round-trip through JSON so the validator sees JSON types
	raw, err := json.Marshal(doc)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog is not representable as json: %w", err)
	}
	var jsonDoc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&jsonDoc); err != nil {
		return Catalog{}, fmt.Errorf("catalog is not representable as json: %w", err)
	}

	schema, err := jsonschema.CompileString("catalog.schema.json", catalogSchema)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to compile catalog schema: %w", err)
	}
	if err := schema.Validate(jsonDoc); err != nil {
		return Catalog{}, fmt.Errorf("catalog schema: %w", err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(b, &cat); err != nil {
		return Catalog{}, fmt.Errorf("invalid catalog yaml: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}
