package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/posterlab/colbalance/models"
	"github.com/posterlab/colbalance/pkg/inspector"
)

func TestAnalyze_Report(t *testing.T) {
	fake := &inspector.Fake{Elements: []inspector.FakeElement{
		{Ref: "c1", X: 40, Width: 360, ScrollHeight: 980, Class: "column",
			Sections: []float64{500, 425}, Gap: 25, HasGap: true},
		{Ref: "c2", X: 420, Width: 360, ScrollHeight: 930, Class: "column",
			Sections: []float64{600, 275}, Gap: 25, HasGap: true},
		{Ref: "c3", X: 800, Width: 360, ScrollHeight: 880, Class: "column",
			Sections: []float64{400, 425}, Gap: 25, HasGap: true},
	}}

	outcome, err := New(fake, models.DefaultConfig(), nil).Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}
	report := outcome.Report

	// Heights: 950, 900, 850 against a 1000px budget.
	if report.Column1 != "95.0%" || report.Column2 != "90.0%" || report.Column3 != "85.0%" {
		t.Errorf("columns = %q %q %q", report.Column1, report.Column2, report.Column3)
	}
	if !report.IsBalanced {
		t.Error("IsBalanced = false, want true for a 100px spread")
	}
	if report.MaxHeight != "950px" || report.MinHeight != "850px" {
		t.Errorf("max/min = %q/%q, want 950px/850px", report.MaxHeight, report.MinHeight)
	}
	if report.HeightDiff != "100px (10.0%)" {
		t.Errorf("HeightDiff = %q, want 100px (10.0%%)", report.HeightDiff)
	}
	if report.Suggestions == nil {
		t.Fatal("Suggestions missing")
	}
	if len(report.Suggestions.ColumnAnalysis) != 3 {
		t.Errorf("got %d column analyses, want 3", len(report.Suggestions.ColumnAnalysis))
	}

	if outcome.Stats.MaxColumn != 1 || outcome.Stats.MinColumn != 3 {
		t.Errorf("stats max/min = %d/%d, want 1/3", outcome.Stats.MaxColumn, outcome.Stats.MinColumn)
	}
}

func TestAnalyze_StaticDocument(t *testing.T) {
	html := `<!DOCTYPE html>
<html><body>
<div class="column" style="left: 40px; width: 360px; height: 980px; gap: 25px">
  <div class="section" style="height: 500px"></div>
  <div class="section" style="height: 425px"></div>
</div>
<div class="column" style="left: 420px; width: 360px; height: 930px; gap: 25px">
  <div class="section" style="height: 600px"></div>
  <div class="section" style="height: 275px"></div>
</div>
<div class="column" style="left: 800px; width: 360px; height: 880px; gap: 25px">
  <div class="section" style="height: 400px"></div>
  <div class="section" style="height: 425px"></div>
</div>
</body></html>`
	insp, err := inspector.NewStatic(strings.NewReader(html))
	if err != nil {
		t.Fatalf("NewStatic() failed: %v", err)
	}

	outcome, err := New(insp, models.DefaultConfig(), nil).Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}
	report := outcome.Report
	if report.Column1 != "95.0%" || report.Column2 != "90.0%" || report.Column3 != "85.0%" {
		t.Errorf("columns = %q %q %q", report.Column1, report.Column2, report.Column3)
	}
	if report.HeightDiff != "100px (10.0%)" {
		t.Errorf("HeightDiff = %q, want 100px (10.0%%)", report.HeightDiff)
	}
}

func TestAnalyze_NoColumnStructure(t *testing.T) {
	fake := &inspector.Fake{Elements: []inspector.FakeElement{
		{Ref: "a", X: 0, Width: 1200, ScrollHeight: 400, Class: "hero"},
		{Ref: "b", X: 0, Width: 1200, ScrollHeight: 600, Class: "body"},
	}}

	_, err := New(fake, models.DefaultConfig(), nil).Analyze(context.Background())
	if err == nil {
		t.Fatal("Analyze() should fail without a column structure")
	}
	if !errors.Is(err, ErrNoColumnStructure) {
		t.Errorf("err = %v, want ErrNoColumnStructure in the chain", err)
	}
	if CodeOf(err) != CodeNoColumnStructure {
		t.Errorf("CodeOf(err) = %q, want %q", CodeOf(err), CodeNoColumnStructure)
	}
}

func TestAnalyze_InspectionFailure(t *testing.T) {
	fake := &inspector.Fake{Err: errors.New("render target gone")}

	_, err := New(fake, models.DefaultConfig(), nil).Analyze(context.Background())
	if err == nil {
		t.Fatal("Analyze() should fail when the inspector fails")
	}
	if errors.Is(err, ErrNoColumnStructure) {
		t.Error("inspector breakage must not classify as missing structure")
	}
	if CodeOf(err) != CodeInspectionFailure {
		t.Errorf("CodeOf(err) = %q, want %q", CodeOf(err), CodeInspectionFailure)
	}
}

func TestCodeOf_ForeignError(t *testing.T) {
	if got := CodeOf(errors.New("disk full")); got != CodeInspectionFailure {
		t.Errorf("CodeOf() = %q, want %q", got, CodeInspectionFailure)
	}
}
