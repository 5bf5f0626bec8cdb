// Package components implements the custom component factories referenced
// by the scene format: ishikawa, document.section, document.properties, and
// document.text. Each factory assembles a subtree of native primitives
// (vstack/hstack/table/text) and returns it to the tree builder.
//
// The registry shape (Register/Get/List, panic on nil or duplicate
// registration) mirrors a plain self-registering lookup table,
// generalized to tree-building component factories.
package components

import (
	"fmt"

	"github.com/hugozap/volare/pkg/scene"
)

var registry = make(map[string]scene.ComponentFactory)

// Register adds a custom component factory under name. Panics if factory is
// nil or name is already registered, matching init()-time self-registration
// semantics: a programming error here is a build-time bug, not a runtime one.
func Register(name string, factory scene.ComponentFactory) {
	if factory == nil {
		panic(fmt.Sprintf("components: Register factory for %s is nil", name))
	}
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("components: Register called twice for %s", name))
	}
	registry[name] = factory
}

// Get retrieves a registered factory by name.
func Get(name string) (scene.ComponentFactory, bool) {
	f, ok := registry[name]
	return f, ok
}

// List returns the names of all registered custom components.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// Lookup adapts Get to the scene.ComponentLookup shape expected by
// scene.Build.
func Lookup(typeName string) (scene.ComponentFactory, bool) {
	return Get(typeName)
}

func init() {
	Register("ishikawa", buildIshikawa)
	Register("document.section", buildDocumentSection)
	Register("document.properties", buildDocumentProperties)
	Register("document.text", buildDocumentText)
}
