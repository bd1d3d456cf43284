package dedup

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kathail/NorthScrape/internal/model"
)

func TestIndex_TryInsert(t *testing.T) {
	idx := NewIndex()

	assert.True(t, idx.TryInsert("a"))
	assert.False(t, idx.TryInsert("a"))
	assert.True(t, idx.TryInsert("b"))
	assert.Equal(t, 2, idx.Len())
}

func TestIndex_TryInsert_Concurrent(t *testing.T) {
	idx := NewIndex()
	const keys = 50
	const workers = 8

	var accepted atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < keys; k++ {
				if idx.TryInsert(fmt.Sprintf("key-%d", k)) {
					accepted.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	// Each distinct key accepted exactly once across all workers.
	assert.Equal(t, int64(keys), accepted.Load())
	assert.Equal(t, keys, idx.Len())
}

func TestDiscoveryKey(t *testing.T) {
	k1 := DiscoveryKey("Acme Store", "12 Oak Ave, Timmins, ON")
	k2 := DiscoveryKey("ACME STORE", "12 Oak Avenue, Timmins, ON")
	// Same name, same 10-char address prefix: one candidate.
	assert.Equal(t, k1, k2)

	k3 := DiscoveryKey("Acme Store", "99 Birch Rd, Timmins, ON")
	assert.NotEqual(t, k1, k3)
}

func TestExportKey(t *testing.T) {
	withPhone := model.LeadRecord{Name: "A", Address: "12 Oak Ave, Timmins, ON", Phone: "(705) 555-1234"}
	assert.Equal(t, "PH:(705) 555-1234", ExportKey(withPhone))

	noPhone := model.LeadRecord{Name: "B", Address: "12 Oak Avenue, Timmins, ON", Phone: model.NA}
	assert.Equal(t, "AD:12 Oak Avenue, ", ExportKey(noPhone))

	short := model.LeadRecord{Name: "C", Address: "9 Elm", Phone: ""}
	assert.Equal(t, "AD:9 Elm", ExportKey(short))
}
