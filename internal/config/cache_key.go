package config

import "fmt"

type cacheKey struct{}

// CacheKey namespaces every Redis key used by the application.
var CacheKey = cacheKey{}

// ArticleBySlug is the cache key for a published article payload.
func (cacheKey) ArticleBySlug(slug string) string {
	return fmt.Sprintf("article:slug:%s", slug)
}
