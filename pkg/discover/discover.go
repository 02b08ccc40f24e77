// Package discover locates the three column regions of a rendered layout.
//
// Discovery is a cascade of strategies tried in order; the first one that
// yields exactly three regions wins. A layout without a detectable
// three-column structure is an expected outcome, not an error: strategies
// report it as a nil region slice with a nil error.
package discover

import (
	"context"
	"math"
	"sort"

	"github.com/posterlab/colbalance/models"
	"github.com/posterlab/colbalance/pkg/inspector"
)

// ColumnSelector matches elements whose class signals a column role.
const ColumnSelector = `div.column, div[class*="column"], div[class*="col-"], div[class~="col"]`

// Region is one detected column. Index runs 1..3 by ascending X.
type Region struct {
	Index              int
	X                  float64 // left edge; mean member X for clustered regions
	Width              float64
	RawContainerHeight float64

	// Ref points at the concrete container when one is known (class-match
	// strategy). Width-grouped regions have no container yet; the measurer
	// re-queries for one at measurement time.
	Ref    inspector.ContainerRef
	HasRef bool

	// Members are the cluster elements of a width-grouped region.
	Members []inspector.Candidate
}

// Strategy is one detection heuristic, a pure function over the inspector.
type Strategy interface {
	Name() string
	Detect(ctx context.Context, insp inspector.LayoutInspector) ([]Region, error)
}

// Discoverer runs the configured strategy cascade.
type Discoverer struct {
	strategies []Strategy
}

// New builds the standard cascade: explicit column markers first, then
// width grouping.
func New(cfg models.Config) *Discoverer {
	return &Discoverer{strategies: []Strategy{
		ClassMatch{},
		WidthGrouping{Config: cfg},
	}}
}

// Discover returns exactly three regions sorted by X plus the name of the
// strategy that matched, or (nil, "", nil) when no strategy matched. It never
// returns one, two, or more than three regions.
func (d *Discoverer) Discover(ctx context.Context, insp inspector.LayoutInspector) ([]Region, string, error) {
	for _, s := range d.strategies {
		regions, err := s.Detect(ctx, insp)
		if err != nil {
			return nil, "", err
		}
		if regions != nil {
			return regions, s.Name(), nil
		}
	}
	return nil, "", nil
}

// ClassMatch accepts a layout only when the column-class query yields exactly
// three elements. Any other count is a non-match: with N != 3 candidates
// there is no safe way to pick which three are the columns.
type ClassMatch struct{}

func (ClassMatch) Name() string { return "class-match" }

func (ClassMatch) Detect(ctx context.Context, insp inspector.LayoutInspector) ([]Region, error) {
	cands, err := insp.FindCandidates(ctx, ColumnSelector)
	if err != nil {
		return nil, err
	}
	if len(cands) != 3 {
		return nil, nil
	}
	regions := make([]Region, len(cands))
	for i, c := range cands {
		regions[i] = Region{
			X:                  c.X,
			Width:              c.Width,
			RawContainerHeight: c.ScrollHeight,
			Ref:                c.Ref,
			HasRef:             true,
		}
	}
	return indexByX(regions), nil
}

// WidthGrouping groups sizeable block elements by rounded width and accepts
// the first group that partitions into exactly three X clusters with a
// plausible column width.
type WidthGrouping struct {
	Config models.Config
}

func (WidthGrouping) Name() string { return "width-grouping" }

func (w WidthGrouping) Detect(ctx context.Context, insp inspector.LayoutInspector) ([]Region, error) {
	cfg := w.Config
	cands, err := insp.FindCandidates(ctx, "div")
	if err != nil {
		return nil, err
	}

	groups := make(map[float64][]inspector.Candidate)
	for _, c := range cands {
		if c.Width <= cfg.MinElementSizePx || c.ScrollHeight <= cfg.MinElementSizePx {
			continue
		}
		key := math.Round(c.Width*10) / 10
		groups[key] = append(groups[key], c)
	}

	// Ascending width order makes the first-hit rule deterministic.
	widths := make([]float64, 0, len(groups))
	for width := range groups {
		widths = append(widths, width)
	}
	sort.Float64s(widths)

	for _, width := range widths {
		group := groups[width]
		if len(group) < 3 {
			continue
		}
		if width < cfg.MinColumnWidthPx || width > cfg.MaxColumnWidthPx {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].X < group[j].X })
		clusters := clusterByX(group, cfg.ClusterTolerancePx)
		if len(clusters) != 3 {
			continue
		}
		regions := make([]Region, len(clusters))
		for i, cluster := range clusters {
			regions[i] = Region{
				X:                  meanX(cluster),
				Width:              width,
				RawContainerHeight: maxScrollHeight(cluster),
				Members:            cluster,
			}
		}
		return indexByX(regions), nil
	}
	return nil, nil
}

// clusterByX walks X-sorted candidates and groups runs whose left edge stays
// within tolerance of the running cluster mean. Elements closer than the
// tolerance are always merged; a column is never split by height alone.
func clusterByX(sorted []inspector.Candidate, tolerancePx float64) [][]inspector.Candidate {
	var clusters [][]inspector.Candidate
	current := []inspector.Candidate{sorted[0]}
	for _, c := range sorted[1:] {
		if math.Abs(c.X-meanX(current)) < tolerancePx {
			current = append(current, c)
		} else {
			clusters = append(clusters, current)
			current = []inspector.Candidate{c}
		}
	}
	return append(clusters, current)
}

func indexByX(regions []Region) []Region {
	sort.Slice(regions, func(i, j int) bool { return regions[i].X < regions[j].X })
	for i := range regions {
		regions[i].Index = i + 1
	}
	return regions
}

func meanX(cands []inspector.Candidate) float64 {
	var sum float64
	for _, c := range cands {
		sum += c.X
	}
	return sum / float64(len(cands))
}

func maxScrollHeight(cands []inspector.Candidate) float64 {
	var max float64
	for _, c := range cands {
		if c.ScrollHeight > max {
			max = c.ScrollHeight
		}
	}
	return max
}
