// Package model provides the data model for page-structured documents.
//
// This package defines the types shared by every other part of folio:
// geometric primitives, the positioned text/image [Element], the ordered
// [Page] container, and the persistable [Context].
//
// # Document Structure
//
// A [Context] holds the safe-area margin, the ordered list of pages, and
// the key counter used to mint element keys:
//
//	ctx := model.NewContext()
//	page := ctx.AddPage(model.NewPage(1, 612, 792))
//	page.Append(ctx.Allocate(), model.NewTextElement(1, bbox, "Hello"))
//
// Each [Page] contains dimensions and an ordered list of [Slot] entries.
// Slot order is reading order; there is no separate sort key.
//
// # Elements
//
// An [Element] carries its bounding box (origin bottom-left, y up), its
// text, the visible/body/safe flags, and a three-state continuation
// [Marker] declaring whether it continues into the next fragment.
// Elements never carry their key: keys are assigned by the containing
// Context and live in the page slots.
//
// # Geometry
//
// [Rect] is a two-corner rectangle used both for fractional margins
// (coordinates in [0,1]) and absolute bounding boxes (page units). No
// corner ordering is assumed; comparisons go through Normalized.
package model
