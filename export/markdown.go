// Package export renders the chained document view to interchange
// formats. Both exporters work off the document's derived text views,
// so hidden and out-of-margin fragments never leak into the output and
// reconstructed runs appear exactly once.
package export

import (
	"strings"
	"unicode"

	"github.com/tsawler/folio/document"
)

// Markdown renders the document as a markdown file with heuristic
// heading detection: short numbered lines, ALL-CAPS lines, and lines
// naming common section words become level-2 headings; everything else
// accumulates into paragraphs.
func Markdown(d *document.Document, title string) string {
	if title == "" {
		title = "Document"
	}

	var out []string
	out = append(out, "# "+title, "")

	var para []string
	flush := func() {
		if len(para) > 0 {
			out = append(out, strings.Join(para, " "), "")
			para = nil
		}
	}

	for _, line := range strings.Split(d.DocumentText(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		if isLikelyHeading(line) {
			flush()
			out = append(out, "## "+line, "")
			continue
		}
		para = append(para, line)
	}
	flush()

	return strings.TrimRight(strings.Join(out, "\n"), "\n") + "\n"
}

// sectionWords are common section names that mark a line as a heading.
var sectionWords = []string{
	"abstract", "introduction", "background", "method", "methods",
	"result", "results", "discussion", "conclusion", "conclusions",
	"references", "appendix", "acknowledgments",
}

// isLikelyHeading applies the heading heuristics to a single line.
func isLikelyHeading(line string) bool {
	if len(line) < 3 || len(line) > 100 {
		return false
	}

	// Numbered headings: "3. Results", "2.1 Setup".
	if hasDigit(line) && strings.Contains(line, ".") && len(line) < 60 && !strings.HasSuffix(line, ".") {
		fields := strings.Fields(line)
		if len(fields) > 0 && startsNumbered(fields[0]) {
			return true
		}
	}

	// Short ALL-CAPS lines.
	if len(line) < 50 && isAllUpper(line) {
		return true
	}

	lower := strings.ToLower(line)
	for _, word := range sectionWords {
		if strings.HasPrefix(lower, word) && len(line) < 40 {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// startsNumbered reports whether the token looks like a section number
// ("1.", "2.3", "10.").
func startsNumbered(token string) bool {
	token = strings.TrimSuffix(token, ".")
	if token == "" {
		return false
	}
	for _, part := range strings.Split(token, ".") {
		if part == "" {
			return false
		}
		for _, r := range part {
			if !unicode.IsDigit(r) {
				return false
			}
		}
	}
	return true
}

// isAllUpper reports whether the line's letters are all uppercase and
// there is at least one letter.
func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
