package export

import (
	"html"
	"strings"

	"github.com/tsawler/folio/document"
)

// HTML renders the document as a standalone HTML page, one section per
// source page, with each text run in its own paragraph. Content is
// escaped, so extracted text can never inject markup.
func HTML(d *document.Document, title string) string {
	if title == "" {
		title = "Document"
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString("<h1>" + html.EscapeString(title) + "</h1>\n")

	for page := 0; page < d.PageCount(); page++ {
		text := strings.TrimSpace(d.PageText(page))
		if text == "" {
			continue
		}
		b.WriteString("<section>\n")
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			b.WriteString("<p>" + html.EscapeString(line) + "</p>\n")
		}
		b.WriteString("</section>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}
