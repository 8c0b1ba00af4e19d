package generic

import (
	"media-repurposer-go/internal/platform"
	"media-repurposer-go/internal/resolver"
)

func init() {
	platform.RegisterFallback(func() resolver.Resolver { return NewResolver() })
}
