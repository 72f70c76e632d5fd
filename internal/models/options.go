package models

import (
	"fmt"
	"sort"
)

// TemplateKind selects which template layers a project is generated from.
type TemplateKind string

const (
	// TemplateRouter is a VCLight project with vclight-router and route handlers
	TemplateRouter TemplateKind = "router"

	// TemplateBlank is a bare VCLight project
	TemplateBlank TemplateKind = "blank"
)

// IsValid checks if the template kind is valid
func (t TemplateKind) IsValid() bool {
	switch t {
	case TemplateRouter, TemplateBlank:
		return true
	default:
		return false
	}
}

// String returns the string representation of TemplateKind
func (t TemplateKind) String() string {
	return string(t)
}

// Description is the label shown when prompting for a template.
func (t TemplateKind) Description() string {
	switch t {
	case TemplateRouter:
		return "A template project with VCLight and router"
	case TemplateBlank:
		return "A blank project with VCLight"
	default:
		return string(t)
	}
}

// Layers returns the template layers rendered for this kind, in order.
func (t TemplateKind) Layers() []string {
	if t == TemplateRouter {
		return []string{"base", "router"}
	}
	return []string{"base"}
}

// ParseTemplateKind parses a string into a TemplateKind
func ParseTemplateKind(s string) (TemplateKind, error) {
	t := TemplateKind(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid template: %s (must be router or blank)", s)
	}
	return t, nil
}

// Plugin is an optional tooling add-on.
type Plugin string

const (
	PluginPrettier Plugin = "prettier"
)

// AllPlugins lists the plugins offered to the user.
var AllPlugins = []Plugin{PluginPrettier}

// IsValid checks if the plugin is known
func (p Plugin) IsValid() bool {
	return p == PluginPrettier
}

// String returns the string representation of Plugin
func (p Plugin) String() string {
	return string(p)
}

// Description is the label shown when prompting for plugins.
func (p Plugin) Description() string {
	switch p {
	case PluginPrettier:
		return "Prettier"
	default:
		return string(p)
	}
}

// ParsePlugin parses a string into a Plugin
func ParsePlugin(s string) (Plugin, error) {
	p := Plugin(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid plugin: %s (must be prettier)", s)
	}
	return p, nil
}

// Options are the user's choices for a single generation run.
type Options struct {
	Template TemplateKind
	Plugins  []Plugin
}

// HasPlugin reports whether p was selected.
func (o Options) HasPlugin(p Plugin) bool {
	for _, selected := range o.Plugins {
		if selected == p {
			return true
		}
	}
	return false
}

// Dependencies returns the runtime packages the project needs.
func (o Options) Dependencies() []string {
	deps := []string{"vercel", "vclight"}
	if o.Template == TemplateRouter {
		deps = append(deps, "vclight-router")
	}
	return deps
}

// DevDependencies returns the development packages the project needs.
func (o Options) DevDependencies() []string {
	deps := []string{"@vercel/node"}
	if o.HasPlugin(PluginPrettier) {
		deps = append(deps, "prettier")
	}
	return deps
}

// Scripts returns the npm scripts written to the manifest.
func (o Options) Scripts() map[string]string {
	scripts := map[string]string{
		"serve": "vercel dev",
	}
	if o.HasPlugin(PluginPrettier) {
		scripts["format"] = "prettier --write ."
	}
	return scripts
}

// RenderContext is the flat set of bindings visible to every directive
// template in a run. It must not be modified once a run starts.
type RenderContext map[string]any

// Context builds the render context for a project.
func (o Options) Context(name, packageName string) RenderContext {
	ctx := RenderContext{
		"name":        name,
		"packageName": packageName,
		"template":    o.Template.String(),
		"router":      o.Template == TemplateRouter,
	}
	for _, p := range AllPlugins {
		ctx[p.String()] = o.HasPlugin(p)
	}
	return ctx
}

// Keys returns the context's binding names, sorted.
func (c RenderContext) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Truthy reports whether binding key is set to a non-zero value.
func (c RenderContext) Truthy(key string) bool {
	switch v := c[key].(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	default:
		return true
	}
}
