package plot

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/clusterlab/kdense/model"
)

// Renderer is the subset of the go-echarts chart API this package needs.
type Renderer interface {
	Render(w io.Writer) error
}

// Clusters builds a scatter chart with one series per non-empty cluster,
// the centers overlaid as diamond markers, and an optional series of
// auxiliary points. Datasets with three coordinate columns are projected
// onto their first two axes.
func Clusters(ds *model.Dataset, cs model.Clusters, extra []*model.Point) *charts.Scatter {
	scatter := newScatter(ds, "Clusters")
	points := ds.Points()

	for i, c := range cs {
		if c.Size() == 0 {
			continue
		}
		var data []opts.ScatterData
		c.Each(func(ord model.Ordinal) {
			coord := points[ord].Coord()
			data = append(data, opts.ScatterData{
				Name:  points[ord].PK(),
				Value: []interface{}{coord[0], coord[1]},
			})
		})
		scatter.AddSeries(fmt.Sprintf("Cluster %d", i), data)
	}

	var centers []opts.ScatterData
	for _, c := range cs {
		if c.Center() == nil {
			continue
		}
		coord := c.Center().Coord()
		centers = append(centers, opts.ScatterData{
			Value:      []interface{}{coord[0], coord[1]},
			Symbol:     "diamond",
			SymbolSize: 14,
		})
	}
	if len(centers) > 0 {
		scatter.AddSeries("Centers", centers)
	}

	if len(extra) > 0 {
		var data []opts.ScatterData
		for _, p := range extra {
			coord := p.Coord()
			data = append(data, opts.ScatterData{
				Name:  p.PK(),
				Value: []interface{}{coord[0], coord[1]},
			})
		}
		scatter.AddSeries("Points", data)
	}
	return scatter
}

// Dataset builds a scatter chart of the raw dataset, one series, no
// cluster structure.
func Dataset(ds *model.Dataset) *charts.Scatter {
	scatter := newScatter(ds, "Dataset")
	var data []opts.ScatterData
	for _, p := range ds.Points() {
		coord := p.Coord()
		data = append(data, opts.ScatterData{
			Name:  p.PK(),
			Value: []interface{}{coord[0], coord[1]},
		})
	}
	scatter.AddSeries("Points", data)
	return scatter
}

// WriteHTML renders the chart to a standalone HTML file.
func WriteHTML(path string, r Renderer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	defer f.Close()
	if err := r.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}

func newScatter(ds *model.Dataset, title string) *charts.Scatter {
	scatter := charts.NewScatter()
	global := []charts.GlobalOpts{charts.WithTitleOpts(opts.Title{Title: title})}
	if labels := ds.Labels(); len(labels) >= 2 {
		global = append(global,
			charts.WithXAxisOpts(opts.XAxis{Name: labels[0]}),
			charts.WithYAxisOpts(opts.YAxis{Name: labels[1]}),
		)
	}
	scatter.SetGlobalOptions(global...)
	return scatter
}
