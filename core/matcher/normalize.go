package matcher

import (
	"regexp"
	"strings"
)

// Price groups are human-entered tier labels and arrive dressed up in every
// way suppliers can think of: "A", "Group A", "AUTO-A", "GROUP2", "2".
// groupForms derives the comparable shapes of one label so matching can
// work through the dressing without migrating catalog data.
type groupForms struct {
	// Norm is the uppercase-trimmed label
	Norm string

	// Stripped removes leading grouping tokens and separators
	Stripped string

	// Suffix is the text after the last hyphen
	Suffix string

	// Digits is the numeric tier with all label dressing removed
	Digits string
}

var (
	leadingToken = regexp.MustCompile(`^(?:GROUP|AUTO|STRAIGHT|ZIP|FOLDING|EXTERNAL)[\s_-]*`)
	nonDigits    = regexp.MustCompile(`[^0-9]`)
)

// formsOf derives all comparable forms of a price-group label
func formsOf(group string) groupForms {
	norm := strings.ToUpper(strings.TrimSpace(group))

	stripped := norm
	for {
		next := leadingToken.ReplaceAllString(stripped, "")
		if next == stripped {
			break
		}
		stripped = next
	}

	suffix := norm
	if idx := strings.LastIndex(norm, "-"); idx >= 0 {
		suffix = norm[idx+1:]
	}

	return groupForms{
		Norm:     norm,
		Stripped: stripped,
		Suffix:   suffix,
		Digits:   nonDigits.ReplaceAllString(norm, ""),
	}
}

// matchTier is the priority order grids are compared in; lower wins
type matchTier int

const (
	tierExactGroup matchTier = iota
	tierStripped
	tierSuffix
	tierDigits
	tierNoMatch
)

// String names the tier for match details
func (t matchTier) String() string {
	switch t {
	case tierExactGroup:
		return "exact"
	case tierStripped:
		return "prefix-stripped"
	case tierSuffix:
		return "suffix"
	case tierDigits:
		return "numeric"
	default:
		return "none"
	}
}

// tierBetween returns the best tier on which two price-group labels agree
func tierBetween(request, candidate groupForms) matchTier {
	if request.Norm != "" && request.Norm == candidate.Norm {
		return tierExactGroup
	}
	if request.Stripped != "" && request.Stripped == candidate.Stripped {
		return tierStripped
	}
	if request.Suffix != "" &&
		(candidate.Norm == request.Suffix || strings.HasSuffix(candidate.Norm, "-"+request.Suffix)) {
		return tierSuffix
	}
	if request.Digits != "" && request.Digits == candidate.Digits {
		return tierDigits
	}
	return tierNoMatch
}
