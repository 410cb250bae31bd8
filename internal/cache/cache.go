// Package cache stores rendered public read models keyed by request path
// so repeated visits skip the database.
package cache

import (
	"context"
	"time"
)

// DefaultPageTTL bounds staleness when an invalidation is lost.
const DefaultPageTTL = 5 * time.Minute

// PageCache implementations never fail the caller: errors are logged and
// reported as misses.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Invalidate(ctx context.Context, keys ...string)
	// InvalidatePrefix drops every key starting with prefix, for views
	// such as post pages whose keys are not known up front.
	InvalidatePrefix(ctx context.Context, prefix string)
}

// Public paths whose cached views depend on posts or the profile.
const (
	KeyHome       = "/"
	KeyBlog       = "/blog"
	KeyAdmin      = "/admin"
	KeyAdminPosts = "/admin/posts"
)

func PostKey(slug string) string {
	return "/blog/" + slug
}
