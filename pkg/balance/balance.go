// Package balance classifies measured column heights against a height budget.
package balance

import "github.com/posterlab/colbalance/models"

// Result holds the balance statistics for one analysis.
type Result struct {
	HeightsPct  [3]float64
	IsBalanced  bool
	MaxHeightPx float64
	MinHeightPx float64
	DiffPx      float64
	DiffPct     float64

	// MaxColumn and MinColumn are 1-based indexes of the tallest and
	// shortest columns; ties go to the leftmost. They never coincide:
	// with three equal heights the shortest is reassigned so the
	// middle-column lookup (6 - max - min) stays total.
	MaxColumn int
	MinColumn int
}

// Classify is a pure function of the measured content heights and the
// configured budget.
func Classify(heights [3]float64, cfg models.Config) Result {
	budget := cfg.AvailableHeightPerColumn
	r := Result{
		MaxColumn:   1,
		MinColumn:   1,
		MaxHeightPx: heights[0],
		MinHeightPx: heights[0],
	}
	for i, h := range heights {
		r.HeightsPct[i] = h / budget * 100
		if h > r.MaxHeightPx {
			r.MaxHeightPx = h
			r.MaxColumn = i + 1
		}
		if h < r.MinHeightPx {
			r.MinHeightPx = h
			r.MinColumn = i + 1
		}
	}
	if r.MinColumn == r.MaxColumn {
		r.MinColumn = r.MaxColumn%3 + 1
	}
	r.DiffPx = r.MaxHeightPx - r.MinHeightPx
	r.DiffPct = r.DiffPx / budget * 100
	r.IsBalanced = r.DiffPx <= budget*cfg.BalanceTolerancePct/100
	return r
}
