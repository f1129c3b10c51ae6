package export

import "strings"

// Filename derives a download filename from a course title: every run of
// non-alphanumeric characters collapses to a single dash.
func Filename(title, suffix string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		name = "course"
	}
	return name + "-" + suffix + ".docx"
}
