package export

import (
	"strings"
	"unicode"
)

var entities = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// StripHTML reduces authored rich text to plain text: tags are dropped,
// block-level closers become newlines, and the common entities are decoded.
func StripHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inTag := false
	var tag strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		// A '<' only opens a tag when what follows could start a tag name;
		// a literal less-than in prose stays put.
		case r == '<' && !inTag && startsTagName(runes, i+1):
			inTag = true
			tag.Reset()
		case r == '>' && inTag:
			inTag = false
			if fields := strings.Fields(tag.String()); len(fields) > 0 {
				switch strings.ToLower(strings.Trim(fields[0], "/")) {
				case "p", "div", "br", "li", "h1", "h2", "h3", "h4", "tr":
					b.WriteByte('\n')
				}
			}
		case inTag:
			tag.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	out := entities.Replace(b.String())
	lines := strings.Split(out, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if t := strings.TrimSpace(line); t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, "\n")
}

func startsTagName(runes []rune, i int) bool {
	if i >= len(runes) {
		return false
	}
	r := runes[i]
	return r == '/' || r == '!' || unicode.IsLetter(r)
}
