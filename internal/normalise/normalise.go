// Package normalise cleans raw document text before extraction and
// classification so regexes see a predictable shape regardless of how
// the text was produced (OCR, paste, export).
package normalise

import "strings"

// Text canonicalises raw document text: CRLF/CR become LF, trailing
// whitespace is stripped per line, runs of three or more blank lines
// collapse to one, and surrounding whitespace is trimmed.
func Text(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blanks++
			if blanks > 1 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}

// Name trims a filename for display without touching its extension.
func Name(name string) string {
	return strings.TrimSpace(name)
}
