package document

import "github.com/tsawler/folio/model"

// Chain is one reconstructed logical run: its head element and the
// combined text of every fragment in the run.
type Chain struct {
	Head *model.Element
	Text string
}

// position locates an element inside the context page lists.
type position struct {
	page int // 0-indexed page
	slot int // index into the page's slot list
}

// Document is the editable element model over a context. All mutations
// go through Document methods; the derived chain indexes are rebuilt
// after each one.
type Document struct {
	ctx *model.Context

	chains  map[int]Chain // head key -> run
	toChain map[int]int   // member key -> head key
	byKey   map[int]position
}

// New wraps an existing context. Safe flags are taken as stored (they
// are part of the persisted state); chains are derived immediately.
// Freshly ingested contexts should go through [NewFresh] instead.
func New(ctx *model.Context) *Document {
	d := &Document{ctx: ctx}
	d.rebuildIndex()
	d.rebuildChains()
	return d
}

// NewFresh wraps a just-ingested context, running the safe-area
// evaluator before deriving chains.
func NewFresh(ctx *model.Context) *Document {
	d := &Document{ctx: ctx}
	d.rebuildIndex()
	evaluateSafeArea(ctx, ctx.Pages...)
	d.rebuildChains()
	return d
}

// Context returns the underlying context, e.g. for persistence.
func (d *Document) Context() *model.Context {
	return d.ctx
}

// Margin returns the current fractional safe-area margin.
func (d *Document) Margin() model.Rect {
	return d.ctx.Margin
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.ctx.PageCount()
}

// PageExtent returns the width and height of the 0-indexed page, or
// zeros when out of range.
func (d *Document) PageExtent(page int) (width, height float64) {
	p := d.ctx.Page(page)
	if p == nil {
		return 0, 0
	}
	return p.Width, p.Height
}

// Element returns the element identified by key, or nil if the key does
// not exist anywhere in the document.
func (d *Document) Element(key int) *model.Element {
	pos, ok := d.byKey[key]
	if !ok {
		return nil
	}
	return d.ctx.Pages[pos.page].Slots[pos.slot].Element
}

// ElementOnPage returns the element identified by key if it lives on
// the 0-indexed page, or nil.
func (d *Document) ElementOnPage(page, key int) *model.Element {
	pos, ok := d.byKey[key]
	if !ok || pos.page != page {
		return nil
	}
	return d.ctx.Pages[pos.page].Slots[pos.slot].Element
}

// Walk calls fn for every (key, element) pair in document order,
// stopping early when fn returns false.
func (d *Document) Walk(fn func(key int, e *model.Element) bool) {
	for _, page := range d.ctx.Pages {
		for _, slot := range page.Slots {
			if !fn(slot.Key, slot.Element) {
				return
			}
		}
	}
}

// rebuild refreshes every derived structure after a structural
// mutation.
func (d *Document) rebuild() {
	d.rebuildIndex()
	d.rebuildChains()
}

func (d *Document) rebuildIndex() {
	d.byKey = make(map[int]position)
	for pi, page := range d.ctx.Pages {
		for si, slot := range page.Slots {
			d.byKey[slot.Key] = position{page: pi, slot: si}
		}
	}
}
