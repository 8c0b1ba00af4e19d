package platform

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"media-repurposer-go/internal/resolver"
)

type Factory func() resolver.Resolver

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
	fallback  Factory
)

func Register(name string, aliases []string, factory Factory) {
	if factory == nil {
		panic("platform: factory is nil")
	}
	keys := append([]string{name}, aliases...)
	mu.Lock()
	defer mu.Unlock()
	for _, k := range keys {
		n := normalize(k)
		if n == "" {
			continue
		}
		if _, exists := factories[n]; exists {
			panic(fmt.Sprintf("platform: duplicate register: %s", n))
		}
		factories[n] = factory
	}
}

// RegisterFallback installs the resolver used for every tag without a
// dedicated registration. Registered once by the generic resolver.
func RegisterFallback(factory Factory) {
	if factory == nil {
		panic("platform: fallback factory is nil")
	}
	mu.Lock()
	defer mu.Unlock()
	if fallback != nil {
		panic("platform: duplicate fallback register")
	}
	fallback = factory
}

func New(name string) (resolver.Resolver, error) {
	n := normalize(name)
	mu.RLock()
	f := factories[n]
	if f == nil {
		f = fallback
	}
	mu.RUnlock()
	if f == nil {
		return nil, fmt.Errorf("unknown platform: %s (available: %s)", name, strings.Join(Names(), ", "))
	}
	return f(), nil
}

// ResolverFor classifies the URL and returns the matching resolver.
// Unknown platforms still resolve through the fallback; the aggregator
// decides whether it can serve them.
func ResolverFor(url string) (resolver.Resolver, Tag, error) {
	tag := Classify(url)
	r, err := New(string(tag))
	return r, tag, err
}

// Fallback returns a fresh instance of the fallback resolver,
// bypassing classification entirely.
func Fallback() (resolver.Resolver, error) {
	mu.RLock()
	f := fallback
	mu.RUnlock()
	if f == nil {
		return nil, fmt.Errorf("no fallback resolver registered")
	}
	return f(), nil
}

func Exists(name string) bool {
	n := normalize(name)
	mu.RLock()
	_, ok := factories[n]
	mu.RUnlock()
	return ok
}

func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
