// Package dataset reads tabular point data into a model.Dataset.
//
// The expected shape is CSV with a header row: one identifier column
// followed by two or three coordinate columns. Files ending in .gz or .lz4
// are decompressed transparently. A row with a non-numeric coordinate fails
// the whole read; rows are never silently dropped.
package dataset
