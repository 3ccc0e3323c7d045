// Package identity maintains the mapping from the lighting bridge's opaque
// resource-ids to the hub's stable entity-ids, built once at startup from the
// hub's local entity-registry file — the only reliable source, since the
// hub's public state API never exposes unique-ids directly. Lookup runs in
// that one direction only; there is no entity-id → resource-id lookup.
package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// platform identifies this integration's entries in the hub's entity
// registry.
const platform = "hue"

// registryFile mirrors the on-disk shape of the hub's entity-registry
// storage file: a top-level "data.entities" array of flat records.
type registryFile struct {
	Data struct {
		Entities []registryEntry `json:"entities"`
	} `json:"data"`
}

type registryEntry struct {
	EntityID string `json:"entity_id"`
	UniqueID string `json:"unique_id"`
	Platform string `json:"platform"`
}

// Map is an immutable resource-id → entity-id index, built once at Load and
// never mutated. Lookup requires no synchronization.
type Map struct {
	byUniqueID map[string]string
}

// Load reads the hub's entity-registry file at path and indexes every entry
// whose platform matches this integration.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading entity registry %s: %w", path, err)
	}

	var reg registryFile
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parsing entity registry %s: %w", path, err)
	}

	m := &Map{byUniqueID: make(map[string]string)}
	for _, entry := range reg.Data.Entities {
		if entry.Platform != platform || entry.EntityID == "" || entry.UniqueID == "" {
			continue
		}
		m.byUniqueID[entry.UniqueID] = entry.EntityID
	}

	return m, nil
}

// Resolve maps a vendor resource-id to a hub entity-id. Lookup order:
//  1. Exact key match.
//  2. Suffix match: any registered key that ends with rid, or contains
//     "_"+rid or "-"+rid, to accommodate composite hub unique-ids.
//
// A miss returns ok == false; the caller treats that as a per-light failure.
func (m *Map) Resolve(rid string) (entityID string, ok bool) {
	if entityID, ok = m.byUniqueID[rid]; ok {
		return entityID, true
	}

	suffixUnderscore := "_" + rid
	suffixHyphen := "-" + rid
	for key, entity := range m.byUniqueID {
		if strings.HasSuffix(key, rid) ||
			strings.Contains(key, suffixUnderscore) ||
			strings.Contains(key, suffixHyphen) {
			return entity, true
		}
	}

	return "", false
}

// Len returns the number of resolvable resource-ids, for health reporting.
func (m *Map) Len() int {
	return len(m.byUniqueID)
}
