// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"sort"
	"sync"
)

// DeviceFactory creates a device with a canvas of the given size.
type DeviceFactory func(width, height int) (Device, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]DeviceFactory)
)

// Register makes a device factory available by name. It is meant to be
// called from init, following the database/sql driver pattern:
//
//	func init() {
//	    render.Register("record", func(w, h int) (render.Device, error) {
//	        return NewRecorder(), nil
//	    })
//	}
//
// Register panics if factory is nil or name is already registered.
func Register(name string, factory DeviceFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("render: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("render: Register called twice for " + name)
	}
	factories[name] = factory
}

// Unregister removes a device factory. Unknown names are ignored.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// NewDevice creates a device by registered name.
func NewDevice(name string, width, height int) (Device, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("render: unknown device %q (forgotten import?)", name)
	}
	return factory(width, height)
}

// Devices returns the registered device names in sorted order.
func Devices() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether name has a registered factory.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}
