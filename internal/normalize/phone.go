// Package normalize provides deterministic canonicalization of phone numbers
// and Northern Ontario street addresses.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

// NA is the sentinel returned for values that cannot be normalized.
const NA = "N/A"

var nonDigitRe = regexp.MustCompile(`\D`)

// Phone normalizes a raw phone string to "(NNN) NNN-NNNN". Inputs that do not
// contain exactly 10 digits (or 11 with a leading 1) yield NA. Total: every
// input maps to a value, never an error.
func Phone(raw string) string {
	if raw == "" || strings.EqualFold(raw, NA) {
		return NA
	}

	digits := nonDigitRe.ReplaceAllString(raw, "")

	switch {
	case len(digits) == 10:
		return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
	case len(digits) == 11 && digits[0] == '1':
		return fmt.Sprintf("(%s) %s-%s", digits[1:4], digits[4:7], digits[7:])
	}
	return NA
}
