// Package exports renders finished subtitle results to SRT and JSON
// files and maintains the metadata sidecars that make previous runs
// discoverable and reusable as a cache.
package exports
