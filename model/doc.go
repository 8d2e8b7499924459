// Package model defines the point/center/cluster entities the clustering
// engine operates on.
//
// Points live in a flat arena owned by a Dataset and are addressed by a
// dense ordinal. A point's back-reference to its owning cluster is an index
// into the active cluster slice, never a pointer, and is mutated only
// through Clusters.Assign so that membership and back-reference can never
// disagree.
package model
