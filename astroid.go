// Package astroid is the umbrella API for the analysis library: it
// bundles tree construction, the module manager and the inference
// engine so most callers import a single package.
//
// The library models a dynamic, duck-typed source language. Trees are
// built programmatically (or handed over by an external parser),
// registered with a manager, and queried through best-effort inference
// that degrades to the Unresolved sentinel instead of failing.
package astroid

import (
	"github.com/pylint-dev/astroid/brain"
	"github.com/pylint-dev/astroid/config"
	"github.com/pylint-dev/astroid/infer"
	"github.com/pylint-dev/astroid/manager"
	"github.com/pylint-dev/astroid/nodes"
)

type (
	Manager  = manager.Manager
	Engine   = infer.Engine
	Context  = infer.Context
	Value    = infer.Value
	Registry = brain.Registry
	Builder  = nodes.Builder
	Config   = config.Config
)

// Unresolved is the sentinel value meaning inference could not
// determine a result.
var Unresolved = infer.Unresolved

// IsUnresolved reports whether v is the Unresolved sentinel.
func IsUnresolved(v Value) bool { return infer.IsUnresolved(v) }

// New creates a manager with the default configuration.
func New() *Manager { return manager.New(config.Default()) }

// NewWithConfig creates a manager from a loaded configuration.
func NewWithConfig(cfg Config) *Manager { return manager.New(cfg) }

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) { return config.Load(path) }

// NewBuilder creates a tree builder for synthetic sources.
func NewBuilder() *Builder { return nodes.NewBuilder() }

// NewContext creates a fresh inference context.
func NewContext() *Context { return infer.NewContext() }
