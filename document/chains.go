package document

import "github.com/tsawler/folio/model"

// rebuildChains derives the chain indexes from scratch by scanning all
// pages in document order and all elements within a page in slot order.
// Chains may span page boundaries.
//
// Only elements that are visible, safe, and body take part; everything
// else is invisible to the state machine and neither interrupts nor
// closes an open chain. An eligible element with a continuation marker
// opens a chain when none is active; while a chain is active, each
// eligible element joins it using the previous eligible element's
// marker as the join rule, and an element whose own marker is none
// closes the chain. A chain still open at the end of the scan is
// committed as-is.
func (d *Document) rebuildChains() {
	d.chains = make(map[int]Chain)
	d.toChain = make(map[int]int)

	var (
		headKey  int
		head     *model.Element
		combined string
		prev     *model.Element // most recent eligible element
	)

	for _, page := range d.ctx.Pages {
		for _, slot := range page.Slots {
			e := slot.Element
			if !e.Visible || !e.Safe || !e.Body {
				continue
			}

			if head == nil {
				if e.Marker != model.MarkerNone {
					headKey, head, combined = slot.Key, e, e.Text
					d.toChain[slot.Key] = slot.Key
				}
				// A standalone line stays out of the membership table;
				// its text is surfaced directly where needed.
			} else {
				switch prev.Marker {
				case model.MarkerConcat:
					combined += " " + e.Text
				case model.MarkerJoin:
					combined += "\n" + e.Text
				case model.MarkerNone:
					// Unreachable: a chain only stays open behind a
					// continuing element.
					combined += "\n" + e.Text
				}
				d.toChain[slot.Key] = headKey

				if e.Marker == model.MarkerNone {
					d.chains[headKey] = Chain{Head: head, Text: combined}
					head = nil
				}
			}

			prev = e
		}
	}

	// A chain that never resolved to a none marker ends with the
	// document.
	if head != nil {
		d.chains[headKey] = Chain{Head: head, Text: combined}
	}
}

// ChainHead resolves key to its chain's head key. The second result is
// false when the key has no chain membership.
func (d *Document) ChainHead(key int) (int, bool) {
	head, ok := d.toChain[key]
	return head, ok
}

// IsChainHead reports whether key heads a chain.
func (d *Document) IsChainHead(key int) bool {
	head, ok := d.toChain[key]
	return ok && head == key
}
