package document

import "github.com/tsawler/folio/model"

// evaluateSafeArea recomputes the safe flag of every element on the
// given pages from the context margin. The margin is fractional with y
// measured from the top of the page, while element boxes use a
// bottom-left origin; the y components flip accordingly.
func evaluateSafeArea(ctx *model.Context, pages ...*model.Page) {
	for _, page := range pages {
		safe := model.NewRect(
			page.Width*ctx.Margin.X1,
			page.Height*(1-ctx.Margin.Y2),
			page.Width*ctx.Margin.X2,
			page.Height*(1-ctx.Margin.Y1),
		)
		for _, slot := range page.Slots {
			slot.Element.Safe = slot.Element.BBox.Overlaps(safe)
		}
	}
}

// RecalculateSafeArea re-runs the safe-area evaluator over the whole
// document and rebuilds the chain indexes, since safe membership gates
// chain eligibility.
func (d *Document) RecalculateSafeArea() {
	evaluateSafeArea(d.ctx, d.ctx.Pages...)
	d.rebuildChains()
}
