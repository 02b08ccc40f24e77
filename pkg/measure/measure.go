// Package measure computes the effective content height of a column.
//
// A column's raw scrollHeight may include padding and overflow unrelated to
// actual content, so height is derived from the column's section children:
// sum of section intrinsic heights plus the inter-section gap.
package measure

import (
	"context"
	"log/slog"
	"math"

	"github.com/posterlab/colbalance/models"
	"github.com/posterlab/colbalance/pkg/discover"
	"github.com/posterlab/colbalance/pkg/inspector"
)

type Measurer struct {
	cfg models.Config
	log *slog.Logger
}

func New(cfg models.Config, log *slog.Logger) *Measurer {
	if log == nil {
		log = slog.Default()
	}
	return &Measurer{cfg: cfg, log: log}
}

// ContentHeight returns the effective content height of one column region.
// Width-grouped regions are first resolved to a column container near their
// X band. When no section-based measurement is possible the maximum intrinsic
// height in the band substitutes; that fallback is logged, never fatal.
func (m *Measurer) ContentHeight(ctx context.Context, insp inspector.LayoutInspector, region discover.Region) (height float64, fallback bool, err error) {
	ref := region.Ref
	ok := region.HasRef
	if !ok {
		ref, ok, err = insp.FindContainerNear(ctx, region.X, m.cfg.ContainerSearchTolerancePx)
		if err != nil {
			return 0, false, err
		}
	}

	if ok {
		sections, err := insp.MeasureSectionHeights(ctx, ref)
		if err != nil {
			return 0, false, err
		}
		if len(sections) > 0 {
			gap, readable, err := insp.ReadComputedGap(ctx, ref)
			if err != nil {
				return 0, false, err
			}
			if !readable {
				gap = m.cfg.DefaultGapPx
			}
			var sum float64
			for _, h := range sections {
				sum += h
			}
			return sum + gap*float64(len(sections)-1), false, nil
		}
	}

	h, err := m.maxIntrinsicNear(ctx, insp, region.X)
	if err != nil {
		return 0, false, err
	}
	m.log.Warn("section measurement unavailable, using intrinsic-height fallback",
		"column", region.Index, "x", region.X, "height", h)
	return h, true, nil
}

// maxIntrinsicNear approximates content height as the tallest intrinsic
// height among elements co-located in the column's X band.
func (m *Measurer) maxIntrinsicNear(ctx context.Context, insp inspector.LayoutInspector, x float64) (float64, error) {
	cands, err := insp.FindCandidates(ctx, "div")
	if err != nil {
		return 0, err
	}
	var max float64
	for _, c := range cands {
		if math.Abs(c.X-x) < m.cfg.ContainerSearchTolerancePx && c.ScrollHeight > max {
			max = c.ScrollHeight
		}
	}
	return max, nil
}
