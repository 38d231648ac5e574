package builder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/storyai/shipyard-app/typeid"
)

// ErrFinished is the panic value for any registration attempted after
// Finish has consumed the builder.
var ErrFinished = errors.New("builder already finished")

// Requirement records who declared a dependency and why.
type Requirement struct {
	Path   typeid.Path
	Reason string
}

// DuplicatePluginError reports a plugin type added twice anywhere in the
// plugin tree.
type DuplicatePluginError struct {
	Plugin   string
	Path     typeid.Path // the path attempting the second add
	Previous typeid.Path // the path recorded when the plugin was first added
}

func (e *DuplicatePluginError) Error() string {
	return fmt.Sprintf("plugin %s cannot be added at %s: already added as %s",
		e.Plugin, e.Path.String(), e.Previous.String())
}

// PluginCycleError reports a plugin re-entered while already on the active
// nesting path.
type PluginCycleError struct {
	Plugin string
	Path   typeid.Path // the would-be cyclic chain, ending in Plugin
}

func (e *PluginCycleError) Error() string {
	return fmt.Sprintf("adding plugin %s would create a cycle: %s",
		e.Plugin, e.Path.String())
}

// MissingPluginDependencyError reports a plugin dependency declared before
// the depended-on plugin finished being added.
type MissingPluginDependencyError struct {
	Path       typeid.Path // who declared the dependency
	Dependency string
	Reason     string
}

func (e *MissingPluginDependencyError) Error() string {
	return fmt.Sprintf("%s depends on plugin %s (%s), which has not been added",
		e.Path.String(), e.Dependency, e.Reason)
}

// MissingUnique is one entry of an UnmetUniqueDependencyError: a unique
// type nobody provided, with everyone who required it.
type MissingUnique struct {
	Type       string
	RequiredBy []Requirement
}

// UnmetUniqueDependencyError aggregates every unique dependency left
// unresolved when Finish ran. Entries are sorted by type name.
type UnmetUniqueDependencyError struct {
	Missing []MissingUnique
}

func (e *UnmetUniqueDependencyError) Error() string {
	var sb strings.Builder
	sb.WriteString("failed to finish due to unmet unique dependencies:\n")
	for _, m := range e.Missing {
		fmt.Fprintf(&sb, "- %s required by:\n", m.Type)
		for _, req := range m.RequiredBy {
			fmt.Fprintf(&sb, "    %s: %s\n", req.Path.String(), req.Reason)
		}
	}
	sb.WriteString("add the missing unique with Builder.AddUnique, or remove the DependsOnUnique declaration")
	return sb.String()
}
