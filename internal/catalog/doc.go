// Package catalog holds the creature catalog data model shared by the index
// cache, the page/search service, the HTTP routes and the terminal viewer:
// lightweight index entries, hydrated detail records, page results, the
// upstream error taxonomy and the display tables (type colours, stat labels).
// It performs no I/O; the Source interface is implemented by internal/upstream.
package catalog
