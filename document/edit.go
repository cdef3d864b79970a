package document

import "github.com/tsawler/folio/model"

// Disposition selects where Move places the moved element relative to
// the pivot.
type Disposition int

const (
	Before Disposition = iota
	After
)

func (d Disposition) String() string {
	if d == After {
		return "after"
	}
	return "before"
}

// ToggleVisible flips the visible flag of the element identified by
// key and rebuilds the chains. Returns false when the key does not
// exist.
func (d *Document) ToggleVisible(key int) bool {
	e := d.Element(key)
	if e == nil {
		return false
	}
	e.Visible = !e.Visible
	d.rebuildChains()
	return true
}

// ToggleBody flips the body flag of the element identified by key and
// rebuilds the chains. Returns false when the key does not exist.
func (d *Document) ToggleBody(key int) bool {
	e := d.Element(key)
	if e == nil {
		return false
	}
	e.Body = !e.Body
	d.rebuildChains()
	return true
}

// ToggleContinuation cycles the element's continuation marker through
// none -> concat -> join -> none and rebuilds the chains. Returns false
// when the key does not exist.
func (d *Document) ToggleContinuation(key int) bool {
	e := d.Element(key)
	if e == nil {
		return false
	}
	e.Marker = e.Marker.Next()
	d.rebuildChains()
	return true
}

// Split replaces the element identified by key with its precomputed
// children, inserted at the original position in order, each under a
// freshly minted key. The element must be safe, visible, and
// splittable; otherwise Split is a no-op returning false.
func (d *Document) Split(key int) bool {
	pos, ok := d.byKey[key]
	if !ok {
		return false
	}
	page := d.ctx.Pages[pos.page]
	e := page.Slots[pos.slot].Element
	if !e.Safe || !e.Visible || !e.CanBeSplit() {
		return false
	}

	slots := make([]model.Slot, 0, len(page.Slots)+len(e.Children)-1)
	slots = append(slots, page.Slots[:pos.slot]...)
	for _, child := range e.Children {
		slots = append(slots, model.Slot{Key: d.ctx.Allocate(), Element: child})
	}
	slots = append(slots, page.Slots[pos.slot+1:]...)
	page.Slots = slots

	// New elements need their safe flag derived before they can chain.
	evaluateSafeArea(d.ctx, page)
	d.rebuild()
	return true
}

// Merge collapses two or more elements of one page into a single
// replacement element built by the merge factory. Only elements on the
// 0-indexed page whose key appears in keys and that are safe, visible,
// and mergeable qualify; fewer than two qualifying elements makes Merge
// a no-op returning false.
//
// The replacement is inserted at the smallest original index among the
// qualifying elements, which are all removed. Source texts join in the
// order the keys were given.
func (d *Document) Merge(page int, keys []int, mode model.MergeMode) bool {
	p := d.ctx.Page(page)
	if p == nil || len(keys) == 0 {
		return false
	}

	insertAt := -1
	var sources []*model.Element
	drop := make(map[int]bool)
	for _, key := range keys {
		if drop[key] {
			continue
		}
		i := p.IndexOf(key)
		if i < 0 {
			continue
		}
		e := p.Slots[i].Element
		if !e.Safe || !e.Visible || !e.CanBeMerged() {
			continue
		}
		if insertAt == -1 || i < insertAt {
			insertAt = i
		}
		sources = append(sources, e)
		drop[key] = true
	}

	if len(sources) < 2 {
		return false
	}

	merged := model.FromMerge(p.Number, sources, mode)
	mergedKey := d.ctx.Allocate()

	slots := make([]model.Slot, 0, len(p.Slots)-len(sources)+1)
	for i, slot := range p.Slots {
		if i == insertAt {
			slots = append(slots, model.Slot{Key: mergedKey, Element: merged})
		}
		if drop[slot.Key] {
			continue
		}
		slots = append(slots, slot)
	}
	p.Slots = slots

	evaluateSafeArea(d.ctx, p)
	d.rebuild()
	return true
}

// Move relocates the element movedKey to just before or after the
// element pivotKey on the 0-indexed page. Both elements must currently
// be safe and visible on that page. Returns false when either key is
// missing among eligible elements, the keys are equal, or the page is
// out of range. The relative order of all other elements is preserved.
func (d *Document) Move(pivotKey, movedKey, page int, disp Disposition) bool {
	if pivotKey == movedKey {
		return false
	}
	p := d.ctx.Page(page)
	if p == nil {
		return false
	}

	pivotIdx, moveIdx := -1, -1
	for i, slot := range p.Slots {
		if !slot.Element.Safe || !slot.Element.Visible {
			continue
		}
		switch slot.Key {
		case pivotKey:
			pivotIdx = i
		case movedKey:
			moveIdx = i
		}
	}
	if pivotIdx < 0 || moveIdx < 0 {
		return false
	}

	moved := p.Slots[moveIdx]
	p.Slots = append(p.Slots[:moveIdx], p.Slots[moveIdx+1:]...)
	if moveIdx < pivotIdx {
		pivotIdx--
	}

	at := pivotIdx
	if disp == After {
		at++
	}
	p.Slots = append(p.Slots[:at], append([]model.Slot{moved}, p.Slots[at:]...)...)

	d.rebuild()
	return true
}

// SetMargin replaces the safe-area margin, re-evaluates safe flags on
// every page, and rebuilds the chains. The margin is accepted
// uncorrected; out-of-range components are the caller's problem.
func (d *Document) SetMargin(margin model.Rect) {
	d.ctx.Margin = margin
	d.RecalculateSafeArea()
}

// SetTranslated stores a translation overlay on the element identified
// by key. Returns false when the key does not exist or the element
// cannot carry a translation.
func (d *Document) SetTranslated(key int, text string) bool {
	e := d.Element(key)
	if e == nil || !e.CanBeTranslated() {
		return false
	}
	e.Translated = text
	return true
}

// CanBeTranslated reports whether the run the key belongs to can take a
// translation overlay. For chain members the capability is the head's.
func (d *Document) CanBeTranslated(key int) bool {
	if head, ok := d.toChain[key]; ok {
		c, ok := d.chains[head]
		return ok && c.Head.CanBeTranslated()
	}
	e := d.Element(key)
	return e != nil && e.CanBeTranslated()
}
