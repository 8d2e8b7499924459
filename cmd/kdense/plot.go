package main

import (
	"github.com/spf13/cobra"

	"github.com/clusterlab/kdense/plot"
)

var flagPlotOut string

var plotCmd = &cobra.Command{
	Use:   "plot <dataset>",
	Short: "Render a scatter plot of a raw dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := fetchDataset(cmd, args[0])
		if err != nil {
			return err
		}
		return plot.WriteHTML(flagPlotOut, plot.Dataset(ds))
	},
}

func init() {
	plotCmd.Flags().StringVarP(&flagPlotOut, "out", "o", "dataset.html", "output HTML file")
}
