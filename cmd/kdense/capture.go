package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/clusterlab/kdense/capture"
)

var (
	flagCaptureFormat string
	flagCaptureOut    string
)

var captureCmd = &cobra.Command{
	Use:   "capture <pcap>",
	Short: "Extract per-conversation features from a network capture",
	Long: `Aggregate the TCP packets of a pcap file into conversations and export
one CSV row per conversation. The --format digits select columns:
  1 mean packet size          5 bytes client to server
  2 packets client to server  6 bytes server to client
  3 packets server to client  7 total bytes
  4 total packets`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		agg, err := capture.OpenFile(args[0], capture.WithLogger(newLogger().Logger))
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if flagCaptureOut != "" {
			f, err := os.Create(flagCaptureOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		return agg.WriteCSV(w, flagCaptureFormat)
	},
}

func init() {
	captureCmd.Flags().StringVarP(&flagCaptureFormat, "format", "f", "1234567", "digit string selecting the exported columns")
	captureCmd.Flags().StringVarP(&flagCaptureOut, "out", "o", "", "output CSV file (default stdout)")
}
