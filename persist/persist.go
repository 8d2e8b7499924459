package persist

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"

	"github.com/clusterlab/kdense/model"
)

// Write dumps the non-empty clusters to the given local path, compressing
// by extension.
func Write(path string, ds *model.Dataset, clusters model.Clusters) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dump: %w", err)
	}
	defer f.Close()

	w, err := Compress(f, path)
	if err != nil {
		return err
	}
	if err := Dump(w, ds, clusters); err != nil {
		return err
	}
	if c, ok := w.(io.Closer); ok && w != io.Writer(f) {
		if err := c.Close(); err != nil {
			return fmt.Errorf("flush dump: %w", err)
		}
	}
	return f.Close()
}

// Compress wraps w according to the compression suffix of name (.gz or
// .lz4). Other names pass through unchanged.
func Compress(w io.Writer, name string) (io.Writer, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		return gzip.NewWriter(w), nil
	case strings.HasSuffix(name, ".lz4"):
		return lz4.NewWriter(w), nil
	default:
		return w, nil
	}
}

// Dump writes one block per non-empty cluster: the center line, then every
// member point's identifier and coordinates in ascending ordinal order.
// Empty clusters are omitted.
func Dump(w io.Writer, ds *model.Dataset, clusters model.Clusters) error {
	points := ds.Points()
	for _, c := range clusters {
		if c.Size() == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "Cluster {\n  Center %s\n  Points: [\n", formatCoord(c.Center().Coord())); err != nil {
			return err
		}
		var iterErr error
		c.Each(func(ord model.Ordinal) {
			if iterErr != nil {
				return
			}
			p := points[ord]
			_, iterErr = fmt.Fprintf(w, "    Point %s %s\n", p.PK(), formatCoord(p.Coord()))
		})
		if iterErr != nil {
			return iterErr
		}
		if _, err := fmt.Fprint(w, "  ]\n}\n"); err != nil {
			return err
		}
	}
	return nil
}

func formatCoord(c model.Coord) string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = fmt.Sprintf("%f", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
