package engine

import (
	"fmt"
	"sort"
)

// ScriptFactory creates a Component from JSON props.
type ScriptFactory func(props map[string]any) Component

var scriptRegistry = map[string]ScriptFactory{}

// RegisterScript registers a named script factory. Scene files refer to
// scripts by this name.
func RegisterScript(name string, factory ScriptFactory) {
	if _, exists := scriptRegistry[name]; exists {
		panic(fmt.Sprintf("script %q already registered", name))
	}
	scriptRegistry[name] = factory
}

// CreateScript looks up a registered script by name and creates it with the given props.
func CreateScript(name string, props map[string]any) Component {
	factory, ok := scriptRegistry[name]
	if !ok {
		return nil
	}
	return factory(props)
}

// Scripts returns the registered script names, sorted.
func Scripts() []string {
	names := make([]string, 0, len(scriptRegistry))
	for name := range scriptRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PropFloat reads a numeric prop decoded from JSON.
func PropFloat(props map[string]any, key string, fallback float32) float32 {
	if v, ok := props[key].(float64); ok {
		return float32(v)
	}
	return fallback
}

// PropInt reads an integer prop decoded from JSON.
func PropInt(props map[string]any, key string, fallback int) int {
	if v, ok := props[key].(float64); ok {
		return int(v)
	}
	return fallback
}

// PropBool reads a boolean prop decoded from JSON.
func PropBool(props map[string]any, key string, fallback bool) bool {
	if v, ok := props[key].(bool); ok {
		return v
	}
	return fallback
}
