package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	schemeCodePattern   = regexp.MustCompile(`^[A-Z]{2}(\d{5})[A-Z]$`)
	fallbackCodePattern = regexp.MustCompile(`^.+-(\d{5,})$`)
)

// FormatTicketCode maps (scheme id, index) to the canonical ticket code, e.g. ("1", 1) -> "AB00001A".
// Unknown schemes get the "<schemeID>-<index>" form instead of an error.
func FormatTicketCode(schemeID string, index int) string {
	padded := fmt.Sprintf("%05d", index)
	scheme, ok := LookupScheme(schemeID)
	if !ok {
		return schemeID + "-" + padded
	}
	return strings.ToUpper(scheme.Prefix + padded + scheme.Suffix)
}

// ParseTicketIndex extracts the numeric index from a ticket code.
// It returns false for anything that does not look like a formatted code.
func ParseTicketIndex(code string) (int, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	m := schemeCodePattern.FindStringSubmatch(code)
	if m == nil {
		m = fallbackCodePattern.FindStringSubmatch(code)
	}
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
