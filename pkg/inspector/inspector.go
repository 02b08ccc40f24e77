// Package inspector provides geometry access to a rendered document.
//
// The analysis engine never drives a browser itself; it consumes this
// capability, so the same pipeline runs against headless Chrome, against
// statically parsed poster HTML, or against synthetic fixtures in tests.
package inspector

import "context"

// ContainerRef is an opaque handle to an element previously surfaced by an
// inspector. Refs are only meaningful to the inspector that issued them.
type ContainerRef string

// Candidate is one element matching a FindCandidates query.
type Candidate struct {
	Ref          ContainerRef
	X            float64
	Y            float64
	Width        float64
	ScrollHeight float64
	ClassName    string
}

// LayoutInspector exposes geometry queries over a rendered page. A single
// inspector corresponds to a single loaded document; calls are expected to be
// cheap relative to the initial load. Implementations surface rendering and
// automation errors directly; they never retry.
type LayoutInspector interface {
	// FindCandidates returns every element matching the CSS selector with
	// its bounding-box geometry and intrinsic (scroll) height.
	FindCandidates(ctx context.Context, selector string) ([]Candidate, error)

	// MeasureSectionHeights returns the intrinsic heights of the section
	// children of the referenced container, in document order.
	MeasureSectionHeights(ctx context.Context, ref ContainerRef) ([]float64, error)

	// ReadComputedGap reads the container's computed inter-child spacing.
	// ok is false when the property is undefined or unparsable.
	ReadComputedGap(ctx context.Context, ref ContainerRef) (gap float64, ok bool, err error)

	// FindContainerNear locates a column-tagged container whose left edge
	// is within tolerancePx of x. ok is false when none exists.
	FindContainerNear(ctx context.Context, x, tolerancePx float64) (ref ContainerRef, ok bool, err error)
}
