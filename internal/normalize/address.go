package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// "ONP3B1A1" -> "ON P3B1A1": glue between province and postal code.
	provPostalGlueRe = regexp.MustCompile(`(?i)(ON|Ontario)([A-Za-z][0-9][A-Za-z])`)
	provinceSegRe    = regexp.MustCompile(`(?i)^(on|ontario)$`)
	districtSuffixRe = regexp.MustCompile(`(?i)\s+District$`)
	// Canadian postal code: FSA then LDU, optional space between.
	postalRe   = regexp.MustCompile(`([A-Za-z][0-9][A-Za-z])\s?([0-9][A-Za-z][0-9])`)
	localityRe = regexp.MustCompile(`(?i)([^,]+),\s*(ON|Ontario)`)
)

var titleCaser = cases.Title(language.English)

// Address canonicalizes an address using the default postal table.
func Address(raw string) string {
	return AddressWithTable(raw, DefaultPostalTable)
}

// AddressWithTable canonicalizes a raw address string: segments are trimmed,
// deduplicated, and title-cased, the province token is normalized to "ON",
// postal-code spacing is standardized, and a missing locality is inferred
// from the postal FSA. Idempotent: re-applying yields the same string.
func AddressWithTable(raw string, table PostalTable) string {
	if raw == "" || raw == NA {
		return NA
	}

	addr := provPostalGlueRe.ReplaceAllString(raw, "${1} ${2}")

	parts := strings.Split(addr, ",")
	seen := make(map[string]bool, len(parts))
	uniq := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if provinceSegRe.MatchString(p) {
			p = "ON"
		}
		// "Sudbury District" and the like collapse to the bare locality.
		clean := districtSuffixRe.ReplaceAllString(p, "")
		lower := strings.ToLower(clean)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		if clean == "ON" {
			uniq = append(uniq, "ON")
		} else {
			uniq = append(uniq, titleCaser.String(clean))
		}
	}
	addr = strings.Join(uniq, ", ")

	addr = postalRe.ReplaceAllStringFunc(addr, func(m string) string {
		g := postalRe.FindStringSubmatch(m)
		return strings.ToUpper(g[1]) + " " + strings.ToUpper(g[2])
	})

	// Infer the locality from the FSA when the postal code directly follows
	// the province token, meaning no city segment is present between them.
	if m := postalRe.FindStringSubmatch(addr); m != nil {
		fsa := strings.ToUpper(m[1])
		provFSARe := regexp.MustCompile(`(?i),\s*(ON|Ontario)\s*` + regexp.QuoteMeta(fsa))
		if provFSARe.MatchString(addr) {
			locality := table.Locality(fsa)
			core := strings.ToLower(districtSuffixRe.ReplaceAllString(locality, ""))
			present := false
			for _, p := range uniq {
				if strings.Contains(strings.ToLower(p), core) {
					present = true
					break
				}
			}
			if !present {
				addr = provFSARe.ReplaceAllString(addr, ", "+locality+", ON, "+fsa)
			}
		}
	}

	return addr
}

// LocalityFrom extracts the locality preceding a ", ON"/", Ontario" token in
// an address, or returns fallback when no such token exists.
func LocalityFrom(address, fallback string) string {
	if m := localityRe.FindStringSubmatch(address); m != nil {
		return strings.TrimSpace(m[1])
	}
	return fallback
}
