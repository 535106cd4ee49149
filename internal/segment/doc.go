// Package segment defines the subtitle segment model and the final
// sort-and-deduplicate pass over a segment list and its optional
// translated counterpart.
package segment
