// Package registry maps target platform names to Kotlin support providers.
// It lets the CLI and configuration select a provider by name ("jvm", "js").
package registry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/albertocavalcante/ktgradle/internal/log"
	"github.com/albertocavalcante/ktgradle/pkg/config"
	"github.com/albertocavalcante/ktgradle/pkg/framework"
)

// ProviderFactory creates a provider for the given DSL style.
type ProviderFactory func(withPluginsBlock bool) framework.Provider

// factories maps target names to their factory functions.
var factories = map[string]ProviderFactory{
	"jvm": func(withPluginsBlock bool) framework.Provider {
		return framework.NewJVMProvider(withPluginsBlock)
	},
	"js": func(withPluginsBlock bool) framework.Provider {
		if withPluginsBlock {
			log.Debug("js target ignores the plugins block, using buildscript")
		}
		return framework.NewJSProvider()
	},
}

// LoadProvider creates the provider selected by the configuration.
func LoadProvider(cfg *config.Config) (framework.Provider, error) {
	return NewProvider(cfg.Kotlin.Target, cfg.PluginsBlockEnabled())
}

// NewProvider creates the provider registered under target.
func NewProvider(target string, withPluginsBlock bool) (framework.Provider, error) {
	factory, ok := factories[target]
	if !ok {
		return nil, fmt.Errorf("unknown target %q (available: %s)", target, strings.Join(AvailableTargets(), ", "))
	}
	return factory(withPluginsBlock), nil
}

// AvailableTargets returns the registered target names, sorted.
func AvailableTargets() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsTargetAvailable checks if a target factory is registered.
func IsTargetAvailable(name string) bool {
	_, ok := factories[name]
	return ok
}

// RegisterProvider registers a provider factory.
// This allows external packages to add new targets.
func RegisterProvider(name string, factory ProviderFactory) {
	factories[name] = factory
}
