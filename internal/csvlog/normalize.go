package csvlog

import "strings"

// quoteCutset covers straight and curly (smart) quotation marks. Spreadsheet
// exports routinely replace straight quotes with curly ones, so both forms
// must normalize to the same lookup key.
const quoteCutset = "\"'“”‘’"

// NormalizeName trims surrounding whitespace and quotation marks from an
// attendee name. Applied to every name in every mode.
func NormalizeName(name string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(name), quoteCutset))
}

// splitAttendees splits the attendees field on commas and normalizes each
// name, dropping entries that normalize to nothing.
func splitAttendees(field string) []string {
	parts := strings.Split(field, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := NormalizeName(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
