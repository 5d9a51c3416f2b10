package tools

import (
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

var (
	// ErrDuplicateTool reports a registration under an already-taken name.
	// Registry misconfiguration; fatal at startup.
	ErrDuplicateTool = errors.New("duplicate tool")

	// ErrUnknownTool reports a lookup for a name nothing registered.
	ErrUnknownTool = errors.New("unknown tool")
)

// Registry maps tool names to definitions. Registration happens once at
// startup; afterwards the registry is read-only and safe to share across
// concurrent queries.
type Registry struct {
	byName  map[string]ToolDefinition
	ordered []string // registration order; definition export must be stable
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]ToolDefinition)}
}

// Register adds a definition under its name. Duplicate names fail with
// ErrDuplicateTool.
func (r *Registry) Register(def ToolDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("register tool: name is empty")
	}
	if def.Execute == nil {
		return fmt.Errorf("register tool %q: executor is nil", def.Name)
	}
	if _, exists := r.byName[def.Name]; exists {
		return fmt.Errorf("register tool %q: %w", def.Name, ErrDuplicateTool)
	}
	r.byName[def.Name] = def
	r.ordered = append(r.ordered, def.Name)
	return nil
}

// Lookup returns the definition for name, or ErrUnknownTool.
func (r *Registry) Lookup(name string) (ToolDefinition, error) {
	def, ok := r.byName[name]
	if !ok {
		return ToolDefinition{}, fmt.Errorf("tool %q: %w", name, ErrUnknownTool)
	}
	return def, nil
}

// Definitions exports the advertised tool schemas in registration order.
// The order is identical on every call; prompts may rely on positional hints.
func (r *Registry) Definitions() []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(r.ordered))
	for _, name := range r.ordered {
		def := r.byName[name]
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        def.Name,
			Description: anthropic.String(def.Description),
			InputSchema: def.InputSchema,
		}})
	}
	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.ordered))
	copy(out, r.ordered)
	return out
}
