package document

import (
	"strings"

	"github.com/tsawler/folio/model"
)

// ContinuationOmitted is the placeholder a page view emits in place of
// leading elements that only continue a run begun on an earlier page.
const ContinuationOmitted = "[omitted: continued from previous page]"

// TextRun is a resolved logical run of text: the element it is
// attributed to, that element's key, and the full run text.
type TextRun struct {
	Key     int
	Element *model.Element
	Text    string
}

// ChainedText resolves key to its logical run. A chain member resolves
// to the chain's head and combined text; a key outside any chain
// resolves to the element itself with its own text. The second result
// is false when the key does not exist.
func (d *Document) ChainedText(key int) (TextRun, bool) {
	if head, ok := d.toChain[key]; ok {
		c := d.chains[head]
		return TextRun{Key: head, Element: c.Head, Text: c.Text}, true
	}
	e := d.Element(key)
	if e == nil {
		return TextRun{}, false
	}
	return TextRun{Key: key, Element: e, Text: e.Text}, true
}

// PageText renders the 0-indexed page's visible text. Leading body
// elements that merely continue a chain whose head lies on an earlier
// page are replaced by the [ContinuationOmitted] placeholder. Once a
// page-local segment begins, chain heads emit their run text (or the
// head's translation overlay when present), continuations emit nothing,
// and standalone elements emit their own display text. Non-body
// elements always emit directly. Elements that are not visible and safe
// are skipped entirely. An out-of-range page renders as empty.
func (d *Document) PageText(page int) string {
	p := d.ctx.Page(page)
	if p == nil {
		return ""
	}

	var b strings.Builder
	leading := true

	for _, slot := range p.Slots {
		e := slot.Element
		if !e.Safe || !e.Visible {
			continue
		}

		if leading {
			if head, chained := d.toChain[slot.Key]; e.Body && (!chained || head == slot.Key) {
				leading = false
			} else if e.Body {
				b.WriteString(ContinuationOmitted + "\n")
			}
		}

		if !leading {
			d.emitRun(&b, slot.Key, e)
		} else if !e.Body {
			b.WriteString(e.Text + "\n")
		}
	}

	return b.String()
}

// DocumentText renders the whole document's visible text with the same
// head/continuation/standalone rule as PageText, without the
// leading-omission special case.
func (d *Document) DocumentText() string {
	var b strings.Builder
	for _, page := range d.ctx.Pages {
		for _, slot := range page.Slots {
			e := slot.Element
			if !e.Safe || !e.Visible {
				continue
			}
			d.emitRun(&b, slot.Key, e)
		}
	}
	return b.String()
}

// emitRun writes one element under the chain-aware emission rule: a
// chain head emits its translation overlay or the combined run text, a
// continuation emits nothing (its text already appeared at the head),
// and anything outside a chain emits its display text.
func (d *Document) emitRun(b *strings.Builder, key int, e *model.Element) {
	head, chained := d.toChain[key]
	if !chained {
		b.WriteString(e.DisplayText() + "\n")
		return
	}
	if head != key {
		return
	}
	if e.Translated != "" {
		b.WriteString(e.Translated + "\n")
		return
	}
	b.WriteString(d.chains[head].Text + "\n")
}
