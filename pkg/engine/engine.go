// Package engine runs the full column analysis pipeline: discover the three
// column regions, measure their content heights, classify the balance and
// generate remediation suggestions.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/posterlab/colbalance/models"
	"github.com/posterlab/colbalance/pkg/balance"
	"github.com/posterlab/colbalance/pkg/discover"
	"github.com/posterlab/colbalance/pkg/inspector"
	"github.com/posterlab/colbalance/pkg/measure"
	"github.com/posterlab/colbalance/pkg/suggest"
)

// FailureCode identifies the class of analysis failure on the wire.
type FailureCode string

const (
	CodeInputUnavailable  FailureCode = "input_unavailable"
	CodeNoColumnStructure FailureCode = "no_column_structure"
	CodeInspectionFailure FailureCode = "inspection_failure"
)

// ErrNoColumnStructure reports a document in which no strategy found a
// three-column layout. It is an expected outcome, distinct from inspection
// breakage.
var ErrNoColumnStructure = errors.New("could not detect three-column layout structure")

// AnalysisError pairs a failure code with its cause.
type AnalysisError struct {
	Code FailureCode
	Err  error
}

func (e *AnalysisError) Error() string { return e.Err.Error() }
func (e *AnalysisError) Unwrap() error { return e.Err }

// CodeOf extracts the failure code from err, defaulting to inspection failure
// for errors that did not originate in the pipeline.
func CodeOf(err error) FailureCode {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInspectionFailure
}

type Engine struct {
	insp inspector.LayoutInspector
	cfg  models.Config
	log  *slog.Logger
}

func New(insp inspector.LayoutInspector, cfg models.Config, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{insp: insp, cfg: cfg, log: log}
}

// Outcome bundles the wire-format report with the raw statistics it was
// built from, so callers can persist exact numbers instead of re-parsing
// formatted strings.
type Outcome struct {
	Report *models.Report
	Stats  balance.Result
}

// Analyze runs the pipeline once against the inspector's document. Errors are
// always *AnalysisError; a missing column structure carries
// ErrNoColumnStructure in its chain.
func (e *Engine) Analyze(ctx context.Context) (*Outcome, error) {
	regions, strategy, err := discover.New(e.cfg).Discover(ctx, e.insp)
	if err != nil {
		return nil, &AnalysisError{Code: CodeInspectionFailure, Err: fmt.Errorf("column discovery: %w", err)}
	}
	if regions == nil {
		return nil, &AnalysisError{Code: CodeNoColumnStructure, Err: ErrNoColumnStructure}
	}
	e.log.Info("columns detected", "strategy", strategy)

	m := measure.New(e.cfg, e.log)
	var heights [3]float64
	for i, region := range regions {
		h, fallback, err := m.ContentHeight(ctx, e.insp, region)
		if err != nil {
			return nil, &AnalysisError{Code: CodeInspectionFailure, Err: fmt.Errorf("measuring column %d: %w", region.Index, err)}
		}
		heights[i] = h
		e.log.Debug("column measured", "column", region.Index, "height", h, "fallback", fallback)
	}

	res := balance.Classify(heights, e.cfg)
	return &Outcome{
		Report: buildReport(res, suggest.Generate(res, e.cfg)),
		Stats:  res,
	}, nil
}

func buildReport(res balance.Result, sug *models.SuggestionReport) *models.Report {
	return &models.Report{
		Column1:     fmt.Sprintf("%.1f%%", res.HeightsPct[0]),
		Column2:     fmt.Sprintf("%.1f%%", res.HeightsPct[1]),
		Column3:     fmt.Sprintf("%.1f%%", res.HeightsPct[2]),
		IsBalanced:  res.IsBalanced,
		MaxHeight:   fmt.Sprintf("%.0fpx", res.MaxHeightPx),
		MinHeight:   fmt.Sprintf("%.0fpx", res.MinHeightPx),
		HeightDiff:  fmt.Sprintf("%.0fpx (%.1f%%)", res.DiffPx, res.DiffPct),
		Suggestions: sug,
	}
}
