package model

// Source indicates where a lead's contact data came from.
type Source string

const (
	// SourceKept means the input row already carried a usable phone and was
	// passed through untouched (address still normalized).
	SourceKept Source = "kept"
	// SourcePrimary means the directory lookup (YellowPages) supplied the data.
	SourcePrimary Source = "yellowpages"
	// SourceFallback means the web-search fallback (DuckDuckGo) supplied it.
	SourceFallback Source = "duckduckgo"
	// SourceDiscovered marks a lead produced by the discovery engine.
	SourceDiscovered Source = "discovered"
	// SourceImported marks a lead loaded from a CSV file.
	SourceImported Source = "imported"
)

// LeadRecord is a single business lead. Phone and Website use the sentinel
// "N/A" when absent. A record is owned by exactly one in-flight task during
// enrichment and is never mutated concurrently.
type LeadRecord struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	Source  Source `json:"source,omitempty"`
}

// NA is the sentinel for absent phone/website/address values.
const NA = "N/A"

// HasUsablePhone reports whether the record's existing phone should be kept
// as-is instead of going through the lookup chain.
func (l LeadRecord) HasUsablePhone() bool {
	return l.Phone != "" && l.Phone != NA && len(l.Phone) > 5
}
