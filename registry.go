package veil

import (
	"reflect"
	"sync"
)

var (
	planRegistry   = make(map[reflect.Type]shredPlan)
	planRegistryMu sync.RWMutex
)

// plansFor returns the cached shred plan for a type or builds it.
func plansFor[T any]() (shredPlan, error) {
	typ := reflect.TypeFor[T]()

	// Fast path: read-lock cache check
	planRegistryMu.RLock()
	if cached, ok := planRegistry[typ]; ok {
		planRegistryMu.RUnlock()
		return cached, nil
	}
	planRegistryMu.RUnlock()

	// Slow path: build and cache with write-lock
	planRegistryMu.Lock()
	defer planRegistryMu.Unlock()

	// Double-check pattern
	if cached, ok := planRegistry[typ]; ok {
		return cached, nil
	}

	plan, err := buildShredPlans[T]()
	if err != nil {
		return shredPlan{}, err
	}

	planRegistry[typ] = plan
	return plan, nil
}

// ResetPlans clears the shred plan cache.
// This is primarily useful for test isolation.
func ResetPlans() {
	planRegistryMu.Lock()
	defer planRegistryMu.Unlock()
	planRegistry = make(map[reflect.Type]shredPlan)
}
