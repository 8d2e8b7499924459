// Package persist writes the textual cluster dump: one block per non-empty
// cluster, listing the center followed by each member's identifier and
// coordinates. Destinations ending in .gz or .lz4 are compressed
// transparently.
package persist
