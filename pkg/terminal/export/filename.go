package export

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize makes a name safe for filenames: accents are stripped via NFKD
// decomposition, everything is lowercased, spaces become underscores, and any
// remaining character outside [a-z0-9_] is dropped.
func Normalize(value string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(value) {
		if r > unicode.MaxASCII {
			continue
		}
		r = unicode.ToLower(r)
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		}
	}
	return b.String()
}

func formatDateForFilename(d time.Time) string {
	return d.Format("2006_01_02")
}

// BaseFilename builds the export file name stem. end is the user's inclusive
// end date, never the widened query bound. Identical logical parameters
// always produce the same name.
func BaseFilename(department, product string, start, end time.Time, applyFillNA bool) string {
	fillSuffix := "without_fillna"
	if applyFillNA {
		fillSuffix = "with_fillna"
	}

	return fmt.Sprintf("values_%s_%s_%s_%s_%s",
		Normalize(department),
		Normalize(product),
		formatDateForFilename(start),
		formatDateForFilename(end),
		fillSuffix,
	)
}
