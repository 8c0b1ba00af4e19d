package tiktok

import (
	"media-repurposer-go/internal/platform"
	"media-repurposer-go/internal/resolver"
)

func init() {
	platform.Register("tiktok", []string{"tt"}, func() resolver.Resolver { return NewResolver() })
}
