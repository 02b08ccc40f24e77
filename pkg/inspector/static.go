package inspector

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Static inspects generated poster HTML without a browser. Geometry comes
// from inline styles (left/top/width/height/gap), which generated layouts
// carry on every positioned element. It is an approximation: no cascade, no
// reflow, scrollHeight equals the declared height.
type Static struct {
	doc   *goquery.Document
	refs  map[*html.Node]ContainerRef
	byRef map[ContainerRef]*goquery.Selection
}

// NewStatic parses the document and indexes every element so that refs stay
// stable across queries.
func NewStatic(r io.Reader) (*Static, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	s := &Static{
		doc:   doc,
		refs:  make(map[*html.Node]ContainerRef),
		byRef: make(map[ContainerRef]*goquery.Selection),
	}
	doc.Find("*").Each(func(i int, sel *goquery.Selection) {
		ref := ContainerRef("e" + strconv.Itoa(i))
		s.refs[sel.Get(0)] = ref
		s.byRef[ref] = sel
	})
	return s, nil
}

func (s *Static) FindCandidates(_ context.Context, selector string) ([]Candidate, error) {
	var out []Candidate
	s.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		st := parseInlineStyle(sel.AttrOr("style", ""))
		out = append(out, Candidate{
			Ref:          s.refs[sel.Get(0)],
			X:            st["left"],
			Y:            st["top"],
			Width:        st["width"],
			ScrollHeight: st["height"],
			ClassName:    sel.AttrOr("class", ""),
		})
	})
	return out, nil
}

func (s *Static) MeasureSectionHeights(_ context.Context, ref ContainerRef) ([]float64, error) {
	sel, ok := s.byRef[ref]
	if !ok {
		return nil, fmt.Errorf("unknown container ref %q", ref)
	}
	var heights []float64
	sel.Find(".section").Each(func(_ int, sec *goquery.Selection) {
		st := parseInlineStyle(sec.AttrOr("style", ""))
		heights = append(heights, st["height"])
	})
	return heights, nil
}

func (s *Static) ReadComputedGap(_ context.Context, ref ContainerRef) (float64, bool, error) {
	sel, ok := s.byRef[ref]
	if !ok {
		return 0, false, fmt.Errorf("unknown container ref %q", ref)
	}
	st := parseInlineStyle(sel.AttrOr("style", ""))
	gap, ok := st["gap"]
	return gap, ok, nil
}

func (s *Static) FindContainerNear(_ context.Context, x, tolerancePx float64) (ContainerRef, bool, error) {
	var found ContainerRef
	var ok bool
	s.doc.Find(`div[class~="column"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		st := parseInlineStyle(sel.AttrOr("style", ""))
		if math.Abs(st["left"]-x) < tolerancePx {
			found = s.refs[sel.Get(0)]
			ok = true
			return false
		}
		return true
	})
	return found, ok, nil
}

// parseInlineStyle extracts pixel-valued properties from a style attribute.
// Non-pixel values are ignored.
func parseInlineStyle(style string) map[string]float64 {
	props := make(map[string]float64)
	for _, decl := range strings.Split(style, ";") {
		key, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		if !strings.HasSuffix(val, "px") {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSuffix(val, "px"), 64)
		if err != nil {
			continue
		}
		props[strings.ToLower(strings.TrimSpace(key))] = n
	}
	return props
}
