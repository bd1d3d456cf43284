package normalize

// PostalTable maps a postal-code FSA (forward sortation area, the first three
// characters) to a canonical locality name. Read-only after initialization.
type PostalTable map[string]string

// DefaultLocality is returned for FSAs absent from the table.
const DefaultLocality = "Northern Ontario"

// Locality returns the canonical locality for an FSA, or DefaultLocality if
// the FSA is unmapped.
func (t PostalTable) Locality(fsa string) string {
	if loc, ok := t[fsa]; ok {
		return loc
	}
	return DefaultLocality
}

// DefaultPostalTable covers Northern Ontario FSAs (P prefix) plus the K0M
// fringe. Used for city inference when an address carries a postal code but
// no locality.
var DefaultPostalTable = PostalTable{
	"P0A": "Parry Sound",
	"P0B": "Muskoka",
	"P0C": "Mactier",
	"P0E": "Manitoulin",
	"P0G": "Parry Sound",
	"P0H": "Nipissing",
	"P0J": "Timiskaming",
	"P0K": "Cochrane",
	"P0L": "Hearst",
	"P0M": "Sudbury",
	"P0N": "Cochrane",
	"P0P": "Manitoulin",
	"P0R": "Algoma",
	"P0S": "Algoma",
	"P0T": "Nipigon",
	"P0V": "Red Lake",
	"P0W": "Rainy River",
	"P1A": "North Bay",
	"P1B": "North Bay",
	"P1C": "North Bay",
	"P1H": "Huntsville",
	"P2A": "Parry Sound",
	"P2B": "Sturgeon Falls",
	"P2N": "Kirkland Lake",
	"P3A": "Sudbury",
	"P3B": "Sudbury",
	"P3C": "Sudbury",
	"P3E": "Sudbury",
	"P3G": "Sudbury",
	"P3L": "Garson",
	"P3N": "Val Caron",
	"P3P": "Hanmer",
	"P3Y": "Lively",
	"P4N": "Timmins",
	"P4P": "Timmins",
	"P4R": "Timmins",
	"P5A": "Elliot Lake",
	"P5E": "Espanola",
	"P5N": "Kapuskasing",
	"P6A": "Sault Ste. Marie",
	"P6B": "Sault Ste. Marie",
	"P6C": "Sault Ste. Marie",
	"P7A": "Thunder Bay",
	"P7B": "Thunder Bay",
	"P7C": "Thunder Bay",
	"P7E": "Thunder Bay",
	"P8N": "Dryden",
	"P8T": "Sioux Lookout",
	"P9A": "Fort Frances",
	"P9N": "Kenora",
	"K0M": "Central Ontario",
}
