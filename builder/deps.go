package builder

import (
	"sort"

	"github.com/storyai/shipyard-app/typeid"
)

// tracker records unique providers, unique dependencies, and fully added
// plugins, each tagged with the path that registered it.
//
// Unique dependencies are two-phase: declarations are only recorded here,
// and validated together at finish, because sibling plugins register in no
// guaranteed order and a dependency may legitimately be declared before its
// provider. Plugin dependencies are the opposite: they are validated
// eagerly, at declaration time.
type tracker struct {
	providedBy   map[typeid.Key][]typeid.Path
	requiredBy   map[typeid.Key][]Requirement
	addedPlugins map[typeid.Key]typeid.Path
}

func newTracker() *tracker {
	return &tracker{
		providedBy:   make(map[typeid.Key][]typeid.Path),
		requiredBy:   make(map[typeid.Key][]Requirement),
		addedPlugins: make(map[typeid.Key]typeid.Path),
	}
}

func (t *tracker) addUniqueProvider(key typeid.Key, path typeid.Path) {
	t.providedBy[key] = append(t.providedBy[key], path)
}

func (t *tracker) addUniqueDependency(key typeid.Key, req Requirement) {
	t.requiredBy[key] = append(t.requiredBy[key], req)
}

// addPluginDependency validates eagerly: the depended-on plugin must have
// finished building already.
func (t *tracker) addPluginDependency(key typeid.Key, path typeid.Path, reason string) error {
	if _, ok := t.addedPlugins[key]; !ok {
		return &MissingPluginDependencyError{
			Path:       path,
			Dependency: key.String(),
			Reason:     reason,
		}
	}
	return nil
}

func (t *tracker) pluginAdded(key typeid.Key) (typeid.Path, bool) {
	path, ok := t.addedPlugins[key]
	return path, ok
}

func (t *tracker) recordPlugin(key typeid.Key, path typeid.Path) {
	t.addedPlugins[key] = path
}

// validateUniqueDependencies collects every required unique type with no
// provider into one aggregate error. Returns nil when all dependencies
// resolve.
func (t *tracker) validateUniqueDependencies() error {
	var missing []MissingUnique
	for key, reqs := range t.requiredBy {
		if _, provided := t.providedBy[key]; provided {
			continue
		}
		missing = append(missing, MissingUnique{
			Type:       key.String(),
			RequiredBy: reqs,
		})
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i].Type < missing[j].Type })
	return &UnmetUniqueDependencyError{Missing: missing}
}

// sortedProvidedKeys returns the provided unique keys in name order, for
// deterministic diagnostics.
func (t *tracker) sortedProvidedKeys() []typeid.Key {
	keys := make([]typeid.Key, 0, len(t.providedBy))
	for key := range t.providedBy {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}
