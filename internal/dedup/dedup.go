// Package dedup provides the duplicate-suppression index shared by the
// discovery and export paths.
package dedup

import (
	"strings"
	"sync"

	"github.com/Kathail/NorthScrape/internal/model"
)

// Index is a monotonic set of composite keys. Keys are only ever added for
// the lifetime of a pipeline run; once inserted, a key is never reported
// absent again.
type Index struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{seen: make(map[string]struct{})}
}

// TryInsert atomically records key if unseen. It returns true exactly once
// per distinct key, regardless of concurrent call order.
func (i *Index) TryInsert(key string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.seen[key]; ok {
		return false
	}
	i.seen[key] = struct{}{}
	return true
}

// Len returns the number of distinct keys inserted so far.
func (i *Index) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.seen)
}

// DiscoveryKey derives the dedup key used while discovering candidates:
// lowercased name plus the first 10 characters of the normalized address.
func DiscoveryKey(name, normalizedAddr string) string {
	return strings.ToLower(name) + "|" + strings.ToLower(truncate(normalizedAddr, 10))
}

// ExportKey derives the final-output dedup key: the phone when present,
// otherwise an address prefix.
func ExportKey(l model.LeadRecord) string {
	if l.Phone != model.NA && l.Phone != "" {
		return "PH:" + l.Phone
	}
	return "AD:" + truncate(l.Address, 15)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
