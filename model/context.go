package model

// DefaultMargin is the fractional safe-area definition applied to new
// contexts: 15% side margins, 8% top and bottom.
var DefaultMargin = Rect{X1: 0.15, Y1: 0.08, X2: 0.85, Y2: 0.92}

// Context is the persistable unit of the document model: the safe-area
// margin, the ordered pages, and the counter that mints element keys.
type Context struct {
	Margin Rect    `json:"margin"`
	Pages  []*Page `json:"pages"`

	// NextKey is the next key to hand out. Keys are strictly increasing
	// and never reused for the lifetime of the context.
	NextKey int `json:"next_key"`
}

// NewContext creates an empty context with the default margin.
func NewContext() *Context {
	return &Context{Margin: DefaultMargin}
}

// AddPage appends a page and returns it.
func (c *Context) AddPage(p *Page) *Page {
	c.Pages = append(c.Pages, p)
	return p
}

// Page returns the page at the 0-indexed position, or nil when out of
// range.
func (c *Context) Page(i int) *Page {
	if i < 0 || i >= len(c.Pages) {
		return nil
	}
	return c.Pages[i]
}

// PageCount returns the number of pages.
func (c *Context) PageCount() int {
	return len(c.Pages)
}

// Allocate mints a fresh element key.
func (c *Context) Allocate() int {
	key := c.NextKey
	c.NextKey++
	return key
}
