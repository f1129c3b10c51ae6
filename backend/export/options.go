package export

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Options controls what the content export includes. ExamForms is a
// pointer so that an omitted examForms parameter (nil, include every form)
// stays distinguishable from an explicit empty one (include none).
type Options struct {
	IncludeLessons      bool
	IncludeQuizzes      bool
	IncludeVideos       bool
	IncludeDescriptions bool
	IncludeHTML         bool
	ExamForms           *[]string
}

func DefaultOptions() Options {
	return Options{
		IncludeLessons:      true,
		IncludeQuizzes:      true,
		IncludeVideos:       false,
		IncludeDescriptions: true,
		IncludeHTML:         true,
		ExamForms:           nil,
	}
}

// ParseOptions reads the export flags off the query string, falling back
// to defaults for anything absent. stripHTML is the wire spelling of
// IncludeHTML=false.
func ParseOptions(c *fiber.Ctx) Options {
	opts := DefaultOptions()

	opts.IncludeLessons = queryBool(c, "includeLessons", opts.IncludeLessons)
	opts.IncludeQuizzes = queryBool(c, "includeQuizzes", opts.IncludeQuizzes)
	opts.IncludeVideos = queryBool(c, "includeVideos", opts.IncludeVideos)
	opts.IncludeDescriptions = queryBool(c, "includeDescriptions", opts.IncludeDescriptions)
	opts.IncludeHTML = queryBool(c, "includeHTML", opts.IncludeHTML)
	if queryBool(c, "stripHTML", false) {
		opts.IncludeHTML = false
	}

	if c.Request().URI().QueryArgs().Has("examForms") {
		forms := splitForms(c.Query("examForms"))
		opts.ExamForms = &forms
	}

	return opts
}

// FormIncluded reports whether a given exam form should be exported.
func (o Options) FormIncluded(form string) bool {
	if o.ExamForms == nil {
		return true
	}
	for _, f := range *o.ExamForms {
		if strings.EqualFold(f, form) {
			return true
		}
	}
	return false
}

func splitForms(raw string) []string {
	forms := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			forms = append(forms, strings.ToUpper(part))
		}
	}
	return forms
}

func queryBool(c *fiber.Ctx, key string, def bool) bool {
	raw := strings.ToLower(c.Query(key))
	switch raw {
	case "":
		// A bare flag (?includeVideos) counts as true.
		if c.Request().URI().QueryArgs().Has(key) {
			return true
		}
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
