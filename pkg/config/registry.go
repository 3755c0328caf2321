package config

import (
	"sync"

	"moxy/pkg/mock"
)

// Registry holds the default options applied before per-mock options. It is
// safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	defaults []mock.Option
}

// NewRegistry returns a Registry with the given defaults.
func NewRegistry(defaults ...mock.Option) *Registry {
	return &Registry{defaults: append([]mock.Option(nil), defaults...)}
}

// SetDefaults appends opts to the defaults. Later options win for scalars;
// list options accumulate.
func (r *Registry) SetDefaults(opts ...mock.Option) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaults = append(r.defaults, opts...)
}

// ResetDefaults drops every default.
func (r *Registry) ResetDefaults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaults = nil
}

// Defaults returns a copy of the current defaults.
func (r *Registry) Defaults() []mock.Option {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]mock.Option(nil), r.defaults...)
}

// LoadDefaults reads the config file at path and appends its options to the
// defaults.
func (r *Registry) LoadDefaults(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	r.SetDefaults(cfg.Options()...)
	return nil
}

// NewMock creates a Mock from the defaults followed by opts.
func (r *Registry) NewMock(opts ...mock.Option) *mock.Mock {
	return mock.New(append(r.Defaults(), opts...)...)
}
