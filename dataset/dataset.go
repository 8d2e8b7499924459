package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"

	"github.com/clusterlab/kdense/model"
)

// Open reads the dataset at the given local path, decompressing by
// extension.
func Open(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r, err := Decompress(f, path)
	if err != nil {
		return nil, err
	}
	return Read(r)
}

// Decompress wraps r according to the compression suffix of name (.gz or
// .lz4). Other names pass through unchanged.
func Decompress(r io.Reader, name string) (io.Reader, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip dataset: %w", err)
		}
		return zr, nil
	case strings.HasSuffix(name, ".lz4"):
		return lz4.NewReader(r), nil
	default:
		return r, nil
	}
}

// Read parses CSV point rows from r. The first record is the header: an
// identifier column followed by 2 or 3 coordinate columns whose names
// become the dataset's axis labels.
func Read(r io.Reader) (*model.Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	dim := len(header) - 1
	if dim < 2 || dim > 3 {
		return nil, fmt.Errorf("dataset header has %d coordinate columns, want 2 or 3", dim)
	}
	labels := make([]string, dim)
	for i := range labels {
		labels[i] = strings.TrimSpace(header[i+1])
	}

	var points []*model.Point
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row: %w", err)
		}
		if len(record) != dim+1 {
			return nil, fmt.Errorf("dataset row %d has %d columns, want %d", len(points)+1, len(record), dim+1)
		}

		pk := strings.TrimSpace(record[0])
		coord := make([]float64, dim)
		for i := range coord {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
			if err != nil {
				return nil, model.NewInvalidCoordinate(pk, i, err)
			}
			coord[i] = v
		}

		p, err := model.NewPoint(model.Ordinal(len(points)), pk, coord...)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	return model.NewDataset(points, labels...)
}
