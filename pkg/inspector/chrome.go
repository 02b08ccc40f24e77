package inspector

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

// Chrome drives a headless browser and evaluates geometry queries inside the
// loaded page, the same round-trip the layout renderer itself performs. One
// Chrome inspector corresponds to one loaded document; Close tears the
// browser down.
type Chrome struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewChrome starts a headless browser, navigates to url (file:// or http(s)://)
// and waits for the document to be ready. Cancellation and deadlines of the
// parent context apply to the whole browser session.
func NewChrome(parent context.Context, url string) (*Chrome, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, chromedp.DefaultExecAllocatorOptions[:]...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	c := &Chrome{
		ctx: browserCtx,
		cancel: func() {
			browserCancel()
			allocCancel()
		},
	}
	if err := chromedp.Run(browserCtx, chromedp.Navigate(url), chromedp.WaitReady("body")); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return c, nil
}

// Close shuts the browser down. The inspector is unusable afterwards.
func (c *Chrome) Close() {
	c.cancel()
}

func (c *Chrome) FindCandidates(ctx context.Context, selector string) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	js := fmt.Sprintf(`(() => {
		return [...document.querySelectorAll(%q)].map(el => {
			if (!el.dataset.cbRef) {
				window.__cbRefSeq = (window.__cbRefSeq || 0) + 1;
				el.dataset.cbRef = "cb-" + window.__cbRefSeq;
			}
			const r = el.getBoundingClientRect();
			return {
				ref: el.dataset.cbRef,
				x: r.left,
				y: r.top,
				width: r.width,
				scrollHeight: el.scrollHeight,
				className: el.className
			};
		});
	})()`, selector)

	var items []struct {
		Ref          string  `json:"ref"`
		X            float64 `json:"x"`
		Y            float64 `json:"y"`
		Width        float64 `json:"width"`
		ScrollHeight float64 `json:"scrollHeight"`
		ClassName    string  `json:"className"`
	}
	if err := chromedp.Run(c.ctx, chromedp.Evaluate(js, &items)); err != nil {
		return nil, fmt.Errorf("candidate query failed: %w", err)
	}
	out := make([]Candidate, len(items))
	for i, it := range items {
		out[i] = Candidate{
			Ref:          ContainerRef(it.Ref),
			X:            it.X,
			Y:            it.Y,
			Width:        it.Width,
			ScrollHeight: it.ScrollHeight,
			ClassName:    it.ClassName,
		}
	}
	return out, nil
}

func (c *Chrome) MeasureSectionHeights(ctx context.Context, ref ContainerRef) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	js := fmt.Sprintf(`(() => {
		const el = document.querySelector('[data-cb-ref=%q]');
		if (!el) return {found: false, heights: []};
		return {found: true, heights: [...el.querySelectorAll('.section')].map(s => s.scrollHeight)};
	})()`, string(ref))

	var res struct {
		Found   bool      `json:"found"`
		Heights []float64 `json:"heights"`
	}
	if err := chromedp.Run(c.ctx, chromedp.Evaluate(js, &res)); err != nil {
		return nil, fmt.Errorf("section measurement failed: %w", err)
	}
	if !res.Found {
		return nil, fmt.Errorf("container %q no longer present", ref)
	}
	return res.Heights, nil
}

func (c *Chrome) ReadComputedGap(ctx context.Context, ref ContainerRef) (float64, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	js := fmt.Sprintf(`(() => {
		const el = document.querySelector('[data-cb-ref=%q]');
		if (!el) return {found: false, ok: false, gap: 0};
		const g = parseFloat(window.getComputedStyle(el).gap);
		return {found: true, ok: !isNaN(g), gap: isNaN(g) ? 0 : g};
	})()`, string(ref))

	var res struct {
		Found bool    `json:"found"`
		OK    bool    `json:"ok"`
		Gap   float64 `json:"gap"`
	}
	if err := chromedp.Run(c.ctx, chromedp.Evaluate(js, &res)); err != nil {
		return 0, false, fmt.Errorf("gap query failed: %w", err)
	}
	if !res.Found {
		return 0, false, fmt.Errorf("container %q no longer present", ref)
	}
	return res.Gap, res.OK, nil
}

func (c *Chrome) FindContainerNear(ctx context.Context, x, tolerancePx float64) (ContainerRef, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	js := fmt.Sprintf(`(() => {
		const hit = [...document.querySelectorAll('div')].find(d => {
			const r = d.getBoundingClientRect();
			return Math.abs(r.left - %f) < %f && d.classList.contains('column');
		});
		if (!hit) return {found: false, ref: ""};
		if (!hit.dataset.cbRef) {
			window.__cbRefSeq = (window.__cbRefSeq || 0) + 1;
			hit.dataset.cbRef = "cb-" + window.__cbRefSeq;
		}
		return {found: true, ref: hit.dataset.cbRef};
	})()`, x, tolerancePx)

	var res struct {
		Found bool   `json:"found"`
		Ref   string `json:"ref"`
	}
	if err := chromedp.Run(c.ctx, chromedp.Evaluate(js, &res)); err != nil {
		return "", false, fmt.Errorf("container search failed: %w", err)
	}
	return ContainerRef(res.Ref), res.Found, nil
}
