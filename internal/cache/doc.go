// Package cache provides a generic LRU cache whose evicted values are
// handed to a callback.
//
// It backs the render-state object cache of backend/d3d11: native state
// objects are reference counted, so every entry leaving the cache (evicted,
// replaced, deleted or cleared) must be released exactly once.
//
//	c := cache.New[Key, Object](64, func(_ Key, o Object) { o.Release() })
//	c.Set(k, obj)
//	obj, ok := c.Get(k)
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
// The eviction callback runs with the cache lock held and must not call
// back into the cache.
package cache
