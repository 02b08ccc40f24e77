package inspector

import (
	"context"
	"math"
	"strings"
)

// FakeElement describes one element of a synthetic layout fixture.
type FakeElement struct {
	Ref          ContainerRef
	X            float64
	Y            float64
	Width        float64
	ScrollHeight float64
	Class        string // space-separated class list

	Sections []float64
	Gap      float64
	HasGap   bool
}

// Fake is an in-memory inspector over a declarative element list, used to
// exercise the pipeline without a rendered document. Selector matching is
// fixture-grade: a selector mentioning "column" matches only column-like
// elements, anything else matches every element.
type Fake struct {
	Elements []FakeElement

	// Err, when set, is returned by every query.
	Err error

	// Queries records each FindCandidates selector, in call order.
	Queries []string
}

func (f *Fake) FindCandidates(_ context.Context, selector string) ([]Candidate, error) {
	f.Queries = append(f.Queries, selector)
	if f.Err != nil {
		return nil, f.Err
	}
	columnOnly := strings.Contains(selector, "column")
	var out []Candidate
	for _, el := range f.Elements {
		if columnOnly && !columnLike(el.Class) {
			continue
		}
		out = append(out, Candidate{
			Ref:          el.Ref,
			X:            el.X,
			Y:            el.Y,
			Width:        el.Width,
			ScrollHeight: el.ScrollHeight,
			ClassName:    el.Class,
		})
	}
	return out, nil
}

func (f *Fake) MeasureSectionHeights(_ context.Context, ref ContainerRef) ([]float64, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	for _, el := range f.Elements {
		if el.Ref == ref {
			return el.Sections, nil
		}
	}
	return nil, nil
}

func (f *Fake) ReadComputedGap(_ context.Context, ref ContainerRef) (float64, bool, error) {
	if f.Err != nil {
		return 0, false, f.Err
	}
	for _, el := range f.Elements {
		if el.Ref == ref {
			return el.Gap, el.HasGap, nil
		}
	}
	return 0, false, nil
}

func (f *Fake) FindContainerNear(_ context.Context, x, tolerancePx float64) (ContainerRef, bool, error) {
	if f.Err != nil {
		return "", false, f.Err
	}
	for _, el := range f.Elements {
		if hasClassToken(el.Class, "column") && math.Abs(el.X-x) < tolerancePx {
			return el.Ref, true, nil
		}
	}
	return "", false, nil
}

func columnLike(class string) bool {
	return strings.Contains(class, "column") ||
		strings.Contains(class, "col-") ||
		hasClassToken(class, "col")
}

func hasClassToken(class, token string) bool {
	for _, t := range strings.Fields(class) {
		if t == token {
			return true
		}
	}
	return false
}
