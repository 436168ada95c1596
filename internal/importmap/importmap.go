// Package importmap is a minimal reference import map: the out-of-scope
// external collaborator internal/resolve consults to remap bare
// specifiers and to suggest shorter import-map keys for the
// import-map-remap diagnostic.
//
// It implements the WHATWG import map "imports"/"scopes" resolution
// algorithm closely enough to drive that diagnostic, not the full
// specification (module specifier parsing edge cases, trailing-slash
// address-space packing, and so on are out of scope here).
package importmap

import (
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Map is a parsed import map.
type Map struct {
	imports map[string]string
	scopes  map[string]map[string]string // scope prefix -> imports
}

type rawMap struct {
	Imports map[string]string            `json:"imports"`
	Scopes  map[string]map[string]string `json:"scopes"`
}

// Parse parses an import map document (the contents of a "deno.json"
// "importMap" file, or an inline "imports"/"scopes" object).
func Parse(data []byte) (*Map, error) {
	var raw rawMap
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &Map{imports: raw.Imports, scopes: raw.Scopes}, nil
}

// resolveIn tries to resolve specifier against one imports table, honoring
// exact matches and longest-prefix-with-trailing-slash matches.
func resolveIn(table map[string]string, specifier string) (string, bool) {
	if target, ok := table[specifier]; ok {
		return target, true
	}

	var bestKey, bestTarget string
	for key, target := range table {
		if !strings.HasSuffix(key, "/") {
			continue
		}
		if strings.HasPrefix(specifier, key) && len(key) > len(bestKey) {
			bestKey, bestTarget = key, target
		}
	}
	if bestKey == "" {
		return "", false
	}
	return bestTarget + strings.TrimPrefix(specifier, bestKey), true
}

func (m *Map) tablesFor(referrer string) []map[string]string {
	tables := make([]map[string]string, 0, len(m.scopes)+1)

	type scope struct {
		prefix string
		table  map[string]string
	}
	var matching []scope
	for prefix, table := range m.scopes {
		if strings.HasPrefix(referrer, prefix) {
			matching = append(matching, scope{prefix, table})
		}
	}
	sort.Slice(matching, func(i, j int) bool { return len(matching[i].prefix) > len(matching[j].prefix) })
	for _, s := range matching {
		tables = append(tables, s.table)
	}
	tables = append(tables, m.imports)
	return tables
}

// Resolve implements resolve.ImportMap: it reports whether specifier
// resolves through the map from referrer.
func (m *Map) Resolve(specifier, referrer string) bool {
	if m == nil {
		return false
	}
	for _, table := range m.tablesFor(referrer) {
		if _, ok := resolveIn(table, specifier); ok {
			return true
		}
	}
	return false
}

// Lookup implements resolve.ImportMap: it returns the shortest key in
// scope for referrer that resolves (exactly) to resolvedSpecifier.
func (m *Map) Lookup(resolvedSpecifier, referrer string) (string, bool) {
	if m == nil {
		return "", false
	}
	var best string
	for _, table := range m.tablesFor(referrer) {
		for key, target := range table {
			if target != resolvedSpecifier {
				continue
			}
			if best == "" || len(key) < len(best) {
				best = key
			}
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
