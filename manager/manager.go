// Package manager owns the set of loaded module trees: registration,
// transform application, lookup by dotted path for import resolution,
// and cache invalidation when the backing source files change on disk.
package manager

import (
	"fmt"
	"sync"

	"github.com/pylint-dev/astroid/brain"
	"github.com/pylint-dev/astroid/config"
	"github.com/pylint-dev/astroid/infer"
	"github.com/pylint-dev/astroid/nodes"
)

// Manager is the shared front door of an analysis session. It is safe
// for concurrent use; registration and eviction take the write lock,
// lookups the read lock.
type Manager struct {
	mu       sync.RWMutex
	registry *brain.Registry
	engine   *infer.Engine
	modules  map[string]*nodes.Module
	files    map[string]string // absolute file path -> module dotted path
	watcher  *watcher
	onEvict  func(module string)
}

// New creates a manager with a fresh registry and engine wired to it.
// Disabled brain entries from the configuration are applied up front.
func New(cfg config.Config) *Manager {
	reg := brain.NewRegistry()
	for _, name := range cfg.DisabledBrains {
		reg.Disable(name)
	}
	m := &Manager{
		registry: reg,
		engine:   infer.NewEngine(reg, cfg),
		modules:  make(map[string]*nodes.Module),
		files:    make(map[string]string),
	}
	m.engine.SetModules(m)
	return m
}

// Engine returns the inference engine bound to this manager.
func (m *Manager) Engine() *infer.Engine { return m.engine }

// Registry returns the transform registry shared with the engine.
func (m *Manager) Registry() *brain.Registry { return m.registry }

// OnEvict installs a hook called with the module path whenever a
// watched file change evicts a module.
func (m *Manager) OnEvict(f func(module string)) { m.onEvict = f }

// Register applies the build-phase transforms to mod, finalizes the
// result and caches it under its module name, replacing any previous
// tree. It returns the registered tree, which may differ from mod when
// a transform replaced the root.
func (m *Manager) Register(mod *nodes.Module) *nodes.Module {
	root := m.registry.ApplyTransforms(mod)
	final, ok := root.(*nodes.Module)
	if !ok {
		final = mod
	}
	nodes.Finalize(final)

	m.mu.Lock()
	m.modules[final.Name] = final
	m.mu.Unlock()

	// Any cached hierarchy state may now be stale.
	m.engine.Invalidate(nil)
	return final
}

// Unregister drops the module registered under name.
func (m *Manager) Unregister(name string) {
	m.mu.Lock()
	delete(m.modules, name)
	m.mu.Unlock()
	m.engine.Invalidate(nil)
}

// LookupModule resolves a dotted module path to its registered tree.
// It implements the engine's import resolution.
func (m *Manager) LookupModule(path string) (*nodes.Module, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mod, ok := m.modules[path]
	return mod, ok
}

// Modules returns the registered module paths.
func (m *Manager) Modules() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.modules))
	for name := range m.modules {
		out = append(out, name)
	}
	return out
}

// BindFile associates a source file with a registered module. When the
// file is written, removed or renamed, the module is evicted from the
// cache so the caller reloads it. The first binding starts the watcher.
func (m *Manager) BindFile(path, module string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.modules[module]; !ok {
		return fmt.Errorf("manager: module %s is not registered", module)
	}
	if m.watcher == nil {
		w, err := newWatcher(m.evictFile)
		if err != nil {
			return err
		}
		m.watcher = w
	}
	if err := m.watcher.add(path); err != nil {
		return err
	}
	m.files[path] = module
	return nil
}

// evictFile drops the module bound to a changed file.
func (m *Manager) evictFile(path string) {
	m.mu.Lock()
	module, ok := m.files[path]
	if ok {
		delete(m.files, path)
		delete(m.modules, module)
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	m.engine.Invalidate(nil)
	if m.onEvict != nil {
		m.onEvict(module)
	}
}

// Close stops the file watcher. The cached modules stay usable.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watcher == nil {
		return nil
	}
	err := m.watcher.close()
	m.watcher = nil
	return err
}
