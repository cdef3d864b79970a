package model

// Slot is one entry in a page's ordered element list: the element
// together with its document-unique key.
type Slot struct {
	Key     int      `json:"key"`
	Element *Element `json:"element"`
}

// Page is a single page of the document: its dimensions and an ordered
// list of keyed elements. Slot order defines reading and continuation
// order.
type Page struct {
	Number int     `json:"number"` // 1-indexed
	Width  float64 `json:"width"`  // page units
	Height float64 `json:"height"` // page units

	// ImageData optionally holds the rendered page raster (JPEG or PNG),
	// kept so scanned pages can be re-recognized or re-displayed.
	ImageData []byte `json:"image_data,omitempty"`

	Slots []Slot `json:"slots"`
}

// NewPage creates an empty page with the given number and dimensions.
func NewPage(number int, width, height float64) *Page {
	return &Page{Number: number, Width: width, Height: height}
}

// Append adds an element with its key at the end of the page.
func (p *Page) Append(key int, e *Element) {
	p.Slots = append(p.Slots, Slot{Key: key, Element: e})
}

// IndexOf returns the slot index of key, or -1 if the key is not on the
// page.
func (p *Page) IndexOf(key int) int {
	for i, slot := range p.Slots {
		if slot.Key == key {
			return i
		}
	}
	return -1
}

// AspectRatio returns width/height, or 0 for a degenerate page.
func (p *Page) AspectRatio() float64 {
	if p.Height == 0 {
		return 0
	}
	return p.Width / p.Height
}
