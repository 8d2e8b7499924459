package model

import (
	"fmt"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// Ordinal is a dense, dataset-local identifier for a point.
// It doubles as the point's index into the dataset arena.
type Ordinal uint32

// Coord is a coordinate tuple in a low-dimensional numeric space.
type Coord []float64

// Clone returns an independent copy of c.
func (c Coord) Clone() Coord {
	return slices.Clone(c)
}

// ErrInvalidCoordinate indicates a non-finite or non-numeric coordinate
// component at entity construction or mutation.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidCoordinate struct {
	PK    string
	Axis  int
	cause error
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("point %q: coordinate %d is not a finite number", e.PK, e.Axis)
}

func (e *ErrInvalidCoordinate) Unwrap() error { return e.cause }

// NewInvalidCoordinate builds an ErrInvalidCoordinate with an underlying
// cause, for callers (e.g. dataset parsers) that detect bad input before a
// numeric value even exists.
func NewInvalidCoordinate(pk string, axis int, cause error) *ErrInvalidCoordinate {
	return &ErrInvalidCoordinate{PK: pk, Axis: axis, cause: cause}
}

func checkFinite(pk string, coord Coord) error {
	for i, v := range coord {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ErrInvalidCoordinate{PK: pk, Axis: i}
		}
	}
	return nil
}

// Point is an immutable coordinate record. Only its cluster back-reference
// mutates, and only via Clusters.Assign.
type Point struct {
	ord     Ordinal
	pk      string
	coord   Coord
	cluster int // index into the active cluster slice, -1 when unassigned
}

// NewPoint validates every coordinate component and returns a new,
// unassigned point.
func NewPoint(ord Ordinal, pk string, coord ...float64) (*Point, error) {
	c := Coord(coord).Clone()
	if err := checkFinite(pk, c); err != nil {
		return nil, err
	}
	return &Point{ord: ord, pk: pk, coord: c, cluster: -1}, nil
}

// Ordinal returns the point's dense arena index.
func (p *Point) Ordinal() Ordinal { return p.ord }

// PK returns the user-facing identifier from the input's identifier column.
func (p *Point) PK() string { return p.pk }

// Coord returns the point's coordinate tuple. Callers must not mutate it.
func (p *Point) Coord() Coord { return p.coord }

// ClusterIndex returns the index of the owning cluster, or -1 when the
// point is unassigned.
func (p *Point) ClusterIndex() int { return p.cluster }

// Assigned reports whether the point currently belongs to a cluster.
func (p *Point) Assigned() bool { return p.cluster >= 0 }

func (p *Point) String() string {
	return fmt.Sprintf("Point %s %v", p.pk, []float64(p.coord))
}

// Center is a cluster's movable representative: a coordinate tuple that is
// re-settable, with the same finiteness invariant on every mutation.
type Center struct {
	coord Coord
}

// NewCenter validates the components and returns a new center.
func NewCenter(coord ...float64) (*Center, error) {
	c := Coord(coord).Clone()
	if err := checkFinite("center", c); err != nil {
		return nil, err
	}
	return &Center{coord: c}, nil
}

// Coord returns the center's current position. Callers must not mutate it.
func (c *Center) Coord() Coord { return c.coord }

// Set moves the center. Every component is validated; on error the center
// keeps its previous position.
func (c *Center) Set(coord ...float64) error {
	next := Coord(coord).Clone()
	if err := checkFinite("center", next); err != nil {
		return err
	}
	c.coord = next
	return nil
}

func (c *Center) String() string {
	return fmt.Sprintf("Center %v", []float64(c.coord))
}

// Cluster owns one center and a duplicate-free set of member points,
// tracked as a roaring bitmap over point ordinals.
type Cluster struct {
	center  *Center
	members *roaring.Bitmap
}

// NewCluster creates an empty cluster around the given center.
func NewCluster(center *Center) *Cluster {
	return &Cluster{center: center, members: roaring.New()}
}

// Center returns the cluster's center, nil until initialized.
func (c *Cluster) Center() *Center { return c.center }

// Size returns the number of member points.
func (c *Cluster) Size() int { return int(c.members.GetCardinality()) }

// Contains reports whether p is a member of this cluster.
func (c *Cluster) Contains(p *Point) bool { return c.members.Contains(uint32(p.ord)) }

// Each calls fn for every member ordinal in ascending order.
func (c *Cluster) Each(fn func(ord Ordinal)) {
	it := c.members.Iterator()
	for it.HasNext() {
		fn(Ordinal(it.Next()))
	}
}

// Clusters is the active cluster slice for one clustering run. Point
// back-references index into it.
type Clusters []*Cluster

// Assign moves p into the cluster at index target, removing it from any
// prior owner first. Membership and back-reference are updated together so
// a point is never a member of two clusters or orphaned mid-move.
func (cs Clusters) Assign(p *Point, target int) {
	if p.cluster >= 0 {
		cs[p.cluster].members.Remove(uint32(p.ord))
	}
	cs[target].members.Add(uint32(p.ord))
	p.cluster = target
}

// Clear detaches every point and empties all member sets, leaving the
// clusters ready to be discarded or reinitialized.
func (cs Clusters) Clear(points []*Point) {
	for _, p := range points {
		p.cluster = -1
	}
	for _, c := range cs {
		c.members.Clear()
	}
}

// TotalMembers returns the sum of member counts across all clusters.
func (cs Clusters) TotalMembers() int {
	var n int
	for _, c := range cs {
		n += c.Size()
	}
	return n
}

// Dataset is an ordered, immutable sequence of points plus the axis labels
// from the input header (kept for plotting).
type Dataset struct {
	points []*Point
	labels []string
}

// NewDataset wraps the given points. Point ordinals must equal their
// position in the slice; the engine's density counters rely on it.
func NewDataset(points []*Point, labels ...string) (*Dataset, error) {
	for i, p := range points {
		if p.Ordinal() != Ordinal(i) {
			return nil, fmt.Errorf("dataset point %d has ordinal %d, want dense ordering", i, p.Ordinal())
		}
	}
	return &Dataset{points: points, labels: slices.Clone(labels)}, nil
}

// Points returns the point arena. Callers must not reorder it.
func (d *Dataset) Points() []*Point { return d.points }

// Len returns the number of points.
func (d *Dataset) Len() int { return len(d.points) }

// Labels returns the axis labels from the input header, if any.
func (d *Dataset) Labels() []string { return d.labels }

// Dim returns the coordinate dimensionality, or 0 for an empty dataset.
func (d *Dataset) Dim() int {
	if len(d.points) == 0 {
		return 0
	}
	return len(d.points[0].Coord())
}

// Clone deep-copies the dataset: fresh points with the same ordinals,
// identifiers and coordinates, all unassigned. Used by the parallel restart
// mode to give each worker its own arena.
func (d *Dataset) Clone() *Dataset {
	points := make([]*Point, len(d.points))
	for i, p := range d.points {
		points[i] = &Point{ord: p.ord, pk: p.pk, coord: p.coord, cluster: -1}
	}
	return &Dataset{points: points, labels: slices.Clone(d.labels)}
}
