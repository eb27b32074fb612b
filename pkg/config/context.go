package config

import (
	"context"
)

type ctxKey struct{}

// ContextWithManager stores the configuration manager in the context.
func ContextWithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, ctxKey{}, m)
}

// ManagerFromContext retrieves the configuration manager from the context,
// falling back to the package default so callers always get a usable
// manager. Tests attach a manager with isolated paths instead of mutating
// the default.
func ManagerFromContext(ctx context.Context) *Manager {
	if ctx != nil {
		if m, ok := ctx.Value(ctxKey{}).(*Manager); ok && m != nil {
			return m
		}
	}
	return DefaultManager()
}

// FromContext returns the resolved configuration for the provided context.
func FromContext(ctx context.Context) (*Config, error) {
	return ManagerFromContext(ctx).Get(ctx)
}
