// Package kdense partitions points in a low-dimensional space into k
// clusters with a Lloyd-style assignment-update loop, run from several
// random restarts and finished with a density-guided reseeding pass that
// picks final centers from points that repeatedly landed in large, stable
// clusters.
//
// Basic usage:
//
//	ds, _ := dataset.Open("points.csv")
//	eng, err := kdense.New(ds, 3, kdense.WithPrecision(5))
//	if err != nil {
//		// handle err
//	}
//	res, err := eng.Run(ctx)
package kdense
