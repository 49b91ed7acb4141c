package bank

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// SupportedMajor is the document major version this build understands.
const SupportedMajor = "v1"

// validateDocument performs all structural checks on a decoded document.
// Returns a combined error describing all problems found, or nil if valid.
func validateDocument(doc document) error {
	var errs []string

	switch {
	case !semver.IsValid(doc.Version):
		errs = append(errs, fmt.Sprintf("invalid version %q", doc.Version))
	case semver.Major(doc.Version) != SupportedMajor:
		errs = append(errs, fmt.Sprintf("unsupported version %q (want %s.x.y)", doc.Version, SupportedMajor))
	}

	if len(doc.Subjects) == 0 {
		errs = append(errs, "bank has no subjects")
	}

	ids := make(map[string]bool, len(doc.Subjects))
	for _, s := range doc.Subjects {
		if s.ID == "" {
			errs = append(errs, "subject with empty ID")
		}
		if ids[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate subject ID: %q", s.ID))
		}
		ids[s.ID] = true

		if strings.TrimSpace(s.Title) == "" {
			errs = append(errs, fmt.Sprintf("subject %q has no title", s.ID))
		}
		if len(s.Questions) == 0 {
			errs = append(errs, fmt.Sprintf("subject %q has no questions", s.ID))
		}

		for i, q := range s.Questions {
			prefix := fmt.Sprintf("subject %q question %d", s.ID, i)
			if strings.TrimSpace(q.Prompt) == "" {
				errs = append(errs, prefix+": empty prompt")
			}
			if len(q.Options) < 2 {
				errs = append(errs, fmt.Sprintf("%s: need at least 2 options, got %d", prefix, len(q.Options)))
			}
			if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
				errs = append(errs, fmt.Sprintf("%s: correctOptionIndex %d out of range [0, %d)",
					prefix, q.CorrectOptionIndex, len(q.Options)))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("question bank validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
