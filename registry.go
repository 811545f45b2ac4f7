package sealbox

import (
	"reflect"
	"sync"
)

// registryKey combines type and sealer for cache lookup.
type registryKey struct {
	typ    reflect.Type
	sealer *Sealer
}

var (
	registry   = make(map[registryKey]*Protector)
	registryMu sync.RWMutex
)

// For returns a cached protector for type T bound to sealer, building one
// from the type's struct tags on first use. The protector is cached per
// (type, sealer) pair.
func For[T any](sealer *Sealer) (*Protector, error) {
	key := registryKey{typ: reflect.TypeFor[T](), sealer: sealer}

	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[key]; ok {
		registryMu.RUnlock()
		return cached, nil
	}
	registryMu.RUnlock()

	// Slow path: build and cache with write-lock
	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if cached, ok := registry[key]; ok {
		return cached, nil
	}

	policies, err := PoliciesFor[T]()
	if err != nil {
		return nil, err
	}

	protector, err := NewProtector(sealer, policies)
	if err != nil {
		return nil, err
	}

	registry[key] = protector
	return protector, nil
}

// Reset clears the protector registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[registryKey]*Protector)
}
