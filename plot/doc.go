// Package plot renders scatter-plot visualizations of datasets and cluster
// sets as standalone HTML charts. It is read-only over the engine's state
// and has no feedback into the algorithm.
package plot
