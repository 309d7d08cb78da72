package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseWhitespace squashes runs of whitespace into single spaces
// and trims the ends. Rendered math snippets routinely come back with
// ragged spacing.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// soft hyphens show up in portal rich text as invisible line-break
// hints and must not survive into normalized output
const softHyphen = "­"

func StripSoftHyphens(s string) string {
	return strings.ReplaceAll(s, softHyphen, "")
}

// JoinNonEmpty joins the parts with single spaces, skipping empty
// parts so that no doubled separators appear in the output.
func JoinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, " ")
}
