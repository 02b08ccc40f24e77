package measure

import (
	"context"
	"testing"

	"github.com/posterlab/colbalance/models"
	"github.com/posterlab/colbalance/pkg/discover"
	"github.com/posterlab/colbalance/pkg/inspector"
)

func TestContentHeight_SectionSum(t *testing.T) {
	fake := &inspector.Fake{Elements: []inspector.FakeElement{
		{Ref: "c1", X: 40, Width: 360, ScrollHeight: 980, Class: "column",
			Sections: []float64{200, 300, 100}, Gap: 10, HasGap: true},
	}}
	region := discover.Region{Index: 1, X: 40, Ref: "c1", HasRef: true}

	h, fallback, err := New(models.DefaultConfig(), nil).ContentHeight(context.Background(), fake, region)
	if err != nil {
		t.Fatalf("ContentHeight() failed: %v", err)
	}
	if fallback {
		t.Error("fallback = true, want section-based measurement")
	}
	// 200+300+100 plus two 10px gaps.
	if h != 620 {
		t.Errorf("height = %v, want 620", h)
	}
}

func TestContentHeight_DefaultGap(t *testing.T) {
	fake := &inspector.Fake{Elements: []inspector.FakeElement{
		{Ref: "c1", X: 40, Width: 360, ScrollHeight: 980, Class: "column",
			Sections: []float64{200, 300, 100}},
	}}
	region := discover.Region{Index: 1, X: 40, Ref: "c1", HasRef: true}

	h, _, err := New(models.DefaultConfig(), nil).ContentHeight(context.Background(), fake, region)
	if err != nil {
		t.Fatalf("ContentHeight() failed: %v", err)
	}
	// Unreadable gap falls back to 25px per seam.
	if h != 650 {
		t.Errorf("height = %v, want 650", h)
	}
}

func TestContentHeight_ResolvesContainerByX(t *testing.T) {
	fake := &inspector.Fake{Elements: []inspector.FakeElement{
		{Ref: "c1", X: 42, Width: 360, ScrollHeight: 980, Class: "column",
			Sections: []float64{400, 500}, Gap: 20, HasGap: true},
	}}
	// Width-grouped region: no container ref, only a mean X near the column.
	region := discover.Region{Index: 1, X: 40}

	h, fallback, err := New(models.DefaultConfig(), nil).ContentHeight(context.Background(), fake, region)
	if err != nil {
		t.Fatalf("ContentHeight() failed: %v", err)
	}
	if fallback {
		t.Error("fallback = true, want container resolution to succeed")
	}
	if h != 920 {
		t.Errorf("height = %v, want 920", h)
	}
}

func TestContentHeight_IntrinsicFallback(t *testing.T) {
	// No column-classed container anywhere; the tallest block in the X band
	// stands in for the column height.
	fake := &inspector.Fake{Elements: []inspector.FakeElement{
		{Ref: "a1", X: 100, Width: 300, ScrollHeight: 400, Class: "block"},
		{Ref: "a2", X: 104, Width: 300, ScrollHeight: 700, Class: "block"},
		{Ref: "b1", X: 300, Width: 300, ScrollHeight: 900, Class: "block"},
	}}
	region := discover.Region{Index: 1, X: 102}

	h, fallback, err := New(models.DefaultConfig(), nil).ContentHeight(context.Background(), fake, region)
	if err != nil {
		t.Fatalf("ContentHeight() failed: %v", err)
	}
	if !fallback {
		t.Error("fallback = false, want intrinsic-height fallback")
	}
	if h != 700 {
		t.Errorf("height = %v, want 700 (tallest within the band)", h)
	}
}

func TestContentHeight_EmptyContainerFallsBack(t *testing.T) {
	// A resolvable container without sections must not yield a zero height.
	fake := &inspector.Fake{Elements: []inspector.FakeElement{
		{Ref: "c1", X: 40, Width: 360, ScrollHeight: 850, Class: "column"},
	}}
	region := discover.Region{Index: 1, X: 40, Ref: "c1", HasRef: true}

	h, fallback, err := New(models.DefaultConfig(), nil).ContentHeight(context.Background(), fake, region)
	if err != nil {
		t.Fatalf("ContentHeight() failed: %v", err)
	}
	if !fallback {
		t.Error("fallback = false, want fallback for sectionless container")
	}
	if h != 850 {
		t.Errorf("height = %v, want 850", h)
	}
}

func TestContentHeight_PropagatesInspectorError(t *testing.T) {
	fake := &inspector.Fake{Err: context.DeadlineExceeded}
	region := discover.Region{Index: 1, X: 40}

	_, _, err := New(models.DefaultConfig(), nil).ContentHeight(context.Background(), fake, region)
	if err == nil {
		t.Fatal("ContentHeight() should fail when the inspector fails")
	}
}
