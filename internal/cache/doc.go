// Package cache holds the Catalog Index Cache: the complete name/locator list
// of the upstream catalog, fetched once per Index value and served from memory
// afterwards. The index is treated as complete once populated and is never
// invalidated; a failed fetch leaves the cache empty so the next call retries
// from scratch. An Index is created once at application start and injected
// into the services that need it, there is no package-level state.
package cache
