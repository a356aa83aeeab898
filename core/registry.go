package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

type ServiceFactory func() any

type Registry interface {
	Register(name string, factory ServiceFactory) error
	Resolve(name string) (any, bool)
	Names() []string
}

// ServiceRegistry maps service names to factories. Instances are built on
// first resolution and reused afterwards.
type ServiceRegistry struct {
	mu        sync.RWMutex
	factories map[string]ServiceFactory
	instances map[string]any
}

func NewServiceRegistry() *ServiceRegistry {
	return &ServiceRegistry{
		factories: make(map[string]ServiceFactory),
		instances: make(map[string]any),
	}
}

func (r *ServiceRegistry) Register(name string, factory ServiceFactory) error {
	if factory == nil {
		return fmt.Errorf("core: service factory is nil")
	}
	key := normalizeServiceName(name)
	if key == "" {
		return fmt.Errorf("core: service name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("core: service already registered: %s", key)
	}
	r.factories[key] = factory
	return nil
}

func (r *ServiceRegistry) Resolve(name string) (any, bool) {
	key := normalizeServiceName(name)
	if key == "" {
		return nil, false
	}
	r.mu.RLock()
	instance, ok := r.instances[key]
	factory, known := r.factories[key]
	r.mu.RUnlock()
	if ok {
		return instance, true
	}
	if !known {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if instance, ok := r.instances[key]; ok {
		return instance, true
	}
	instance = factory()
	r.instances[key] = instance
	return instance, true
}

func (r *ServiceRegistry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

func normalizeServiceName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
