package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clusterlab/kdense"
	"github.com/clusterlab/kdense/blobstore"
	"github.com/clusterlab/kdense/dataset"
	"github.com/clusterlab/kdense/model"
	"github.com/clusterlab/kdense/persist"
	"github.com/clusterlab/kdense/plot"
)

var (
	flagPrecision int
	flagOut       string
	flagPlot      string
	flagSeed      int64
	flagMaxPasses int
	flagWorkers   int
)

var clusterCmd = &cobra.Command{
	Use:   "cluster <dataset> <k>",
	Short: "Partition a dataset into k clusters",
	Long: `Partition the points of a dataset into k clusters. The dataset is CSV
with a header row: an identifier column followed by 2 or 3 coordinate
columns. Local paths and s3://bucket/key locations are accepted, optionally
gzip- or lz4-compressed by extension.`,
	Args: cobra.ExactArgs(2),
	RunE: runCluster,
}

func init() {
	clusterCmd.Flags().IntVarP(&flagPrecision, "precision", "p", 1, "number of random restarts before reseeding")
	clusterCmd.Flags().StringVarP(&flagOut, "out", "o", "", "write the cluster dump to this location")
	clusterCmd.Flags().StringVar(&flagPlot, "plot", "", "write an HTML scatter plot of the clusters to this file")
	clusterCmd.Flags().Int64Var(&flagSeed, "seed", 0, "random seed (0 seeds from the clock)")
	clusterCmd.Flags().IntVar(&flagMaxPasses, "max-passes", 0, "cap on passes per turn (0 = uncapped)")
	clusterCmd.Flags().IntVar(&flagWorkers, "workers", 1, "run restarts on this many parallel workers")
}

func runCluster(cmd *cobra.Command, args []string) error {
	k, err := strconv.Atoi(args[1])
	if err != nil || k < 1 {
		return fmt.Errorf("k must be a positive integer, got %q", args[1])
	}
	if flagPrecision < 1 {
		return fmt.Errorf("precision must be a positive integer, got %d", flagPrecision)
	}

	ctx := cmd.Context()
	ds, err := fetchDataset(cmd, args[0])
	if err != nil {
		return err
	}

	logger := newLogger()
	opts := []kdense.Option{
		kdense.WithPrecision(flagPrecision),
		kdense.WithLogger(logger),
		kdense.WithMaxPasses(flagMaxPasses),
		kdense.WithParallelRestarts(flagWorkers),
	}
	if flagSeed != 0 {
		opts = append(opts, kdense.WithRandSource(rand.NewSource(flagSeed)))
	}

	eng, err := kdense.New(ds, k, opts...)
	if err != nil {
		return err
	}
	res, err := eng.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d, %g, %d\n", res.K, res.MeanPasses, res.FinalPasses)

	if flagOut != "" {
		if err := writeDump(cmd, flagOut, ds, res.Clusters); err != nil {
			return err
		}
	}
	if flagPlot != "" {
		if err := plot.WriteHTML(flagPlot, plot.Clusters(ds, res.Clusters, nil)); err != nil {
			return err
		}
	}
	return nil
}

// fetchDataset resolves the location, streams it, and parses the CSV,
// decompressing by extension along the way.
func fetchDataset(cmd *cobra.Command, location string) (*model.Dataset, error) {
	ctx := cmd.Context()
	store, err := blobstore.Resolve(ctx, location)
	if err != nil {
		return nil, err
	}
	rc, err := store.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r, err := dataset.Decompress(rc, location)
	if err != nil {
		return nil, err
	}
	return dataset.Read(r)
}

// writeDump renders the textual cluster dump and stores it at the resolved
// location, compressed by extension.
func writeDump(cmd *cobra.Command, location string, ds *model.Dataset, clusters model.Clusters) error {
	ctx := cmd.Context()

	var buf bytes.Buffer
	w, err := persist.Compress(&buf, location)
	if err != nil {
		return err
	}
	if err := persist.Dump(w, ds, clusters); err != nil {
		return err
	}
	if c, ok := w.(io.Closer); ok && w != io.Writer(&buf) {
		if err := c.Close(); err != nil {
			return err
		}
	}

	store, err := blobstore.Resolve(ctx, location)
	if err != nil {
		return err
	}
	return store.Put(ctx, location, &buf)
}
