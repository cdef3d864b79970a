package ingest

import (
	"strings"

	"github.com/tsawler/folio/model"
)

// lineElements turns a block of recognized text into one element per
// non-blank line, each taking an equal full-width band of the page,
// stacked top to bottom. Used when the recognizer gives no positions.
func lineElements(pageNumber int, width, height float64, text string) []*model.Element {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil
	}

	lineHeight := height / float64(len(lines))
	elems := make([]*model.Element, 0, len(lines))
	for i, line := range lines {
		top := height - float64(i)*lineHeight
		bottom := top - lineHeight
		if bottom < 0 {
			bottom = 0
		}
		elems = append(elems, model.NewTextElement(
			pageNumber,
			model.NewRect(0, bottom, width, top),
			line,
		))
	}
	return elems
}
