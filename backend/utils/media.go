package utils

import "strings"

var videoExtensions = []string{".mp4", ".webm", ".mov", ".avi"}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"}

var videoHosts = []string{"youtube", "vimeo"}

// InferFileType classifies a media URL as video, image or document. The
// match is best-effort: anything unrecognized falls back to document.
func InferFileType(url string) string {
	lower := strings.ToLower(url)

	// Query strings would defeat a plain suffix match.
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}

	for _, host := range videoHosts {
		if strings.Contains(lower, host) {
			return "video"
		}
	}
	for _, ext := range videoExtensions {
		if strings.HasSuffix(lower, ext) {
			return "video"
		}
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return "image"
		}
	}

	return "document"
}
