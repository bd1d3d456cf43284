package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddress(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "locality inferred from fsa",
			raw:  "123 Main St, ON P3B1A1",
			want: "123 Main St, Sudbury, ON, P3B 1A1",
		},
		{
			name: "glued province and postal code",
			raw:  "123 Main St, ONP3B1A1",
			want: "123 Main St, Sudbury, ON, P3B 1A1",
		},
		{
			name: "unmapped fsa falls back to region default",
			raw:  "9 Bay Rd, ON X1Y2Z3",
			want: "9 Bay Rd, Northern Ontario, ON, X1Y 2Z3",
		},
		{
			name: "city present, no inference",
			raw:  "88 Pine St, Sault Ste. Marie, ON, P6A5K9",
			want: "88 Pine St, Sault Ste. Marie, ON, P6A 5K9",
		},
		{
			name: "duplicate segments collapse case-insensitively",
			raw:  "12 Oak Ave, TIMMINS, Timmins, ON",
			want: "12 Oak Ave, Timmins, ON",
		},
		{
			name: "district suffix stripped",
			raw:  "101 First Ave, Sudbury District, ON",
			want: "101 First Ave, Sudbury, ON",
		},
		{
			name: "lowercase province normalized",
			raw:  "5 king st, espanola, ontario",
			want: "5 King St, Espanola, ON",
		},
		{
			name: "empty segments dropped",
			raw:  " , 44 Elm St,, North Bay, ON, ",
			want: "44 Elm St, North Bay, ON",
		},
		{"empty", "", "N/A"},
		{"sentinel", "N/A", "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Address(tt.raw))
		})
	}
}

func TestAddress_Idempotent(t *testing.T) {
	inputs := []string{
		"123 Main St, ON P3B1A1",
		"88 Pine St, Sault Ste. Marie, ON P6A5K9",
		"12 Oak Ave, Timmins, ON",
		"101 First Ave, Sudbury District, ON",
		"5 king st, espanola, ontario",
		"just a street name",
	}
	for _, in := range inputs {
		once := Address(in)
		assert.Equal(t, once, Address(once), "input %q", in)
	}
}

func TestAddress_NoDoubleInsertOnReapply(t *testing.T) {
	once := Address("123 Main St, ON P3B1A1")
	assert.Equal(t, "123 Main St, Sudbury, ON, P3B 1A1", once)
	// The inferred locality satisfies the presence check on re-application.
	assert.Equal(t, once, Address(once))
}

func TestLocalityFrom(t *testing.T) {
	assert.Equal(t, "Sudbury", LocalityFrom("123 Main St, Sudbury, ON, P3B 1A1", "ON"))
	assert.Equal(t, "Timmins", LocalityFrom("12 Oak Ave, Timmins, Ontario", "ON"))
	assert.Equal(t, "ON", LocalityFrom("no province here", "ON"))
	assert.Equal(t, "", LocalityFrom("", ""))
}

func TestPostalTable_Locality(t *testing.T) {
	assert.Equal(t, "Sudbury", DefaultPostalTable.Locality("P3B"))
	assert.Equal(t, "Thunder Bay", DefaultPostalTable.Locality("P7A"))
	assert.Equal(t, DefaultLocality, DefaultPostalTable.Locality("ZZZ"))
}
