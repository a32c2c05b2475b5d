// Package catalog holds the pure presentation pipeline over an in-memory card
// collection: stat resolution, skill classification, filtering, sorting and
// pagination. Nothing here performs I/O or returns errors; malformed input
// degrades to defined defaults.
//
// Data flows raw cards -> Apply -> Page -> rendered rows, and both sorting and
// display read stats through ValueOf so the shown total always matches the
// sort key.
package catalog
