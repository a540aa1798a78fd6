package tracker

import (
	"reflect"
	"testing"
)

func TestHistoryLedgerRecord(t *testing.T) {
	tests := []struct {
		name   string
		record []int
		want   []int // newest first
	}{
		{
			name:   "newest first ordering",
			record: []int{100, 200, 300},
			want:   []int{300, 200, 100},
		},
		{
			name:   "non-positive totals ignored",
			record: []int{0, -5, 120},
			want:   []int{120},
		},
		{
			name:   "duplicate moves to newest slot",
			record: []int{100, 200, 300, 100},
			want:   []int{100, 300, 200},
		},
		{
			name:   "capacity evicts oldest",
			record: []int{1, 2, 3, 4, 5, 6},
			want:   []int{6, 5, 4, 3, 2},
		},
		{
			name:   "duplicate does not evict",
			record: []int{1, 2, 3, 4, 5, 3},
			want:   []int{3, 5, 4, 2, 1},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ledger := NewHistoryLedger(nil)
			for _, seconds := range test.record {
				ledger.Record(seconds)
			}
			if got := ledger.List(); !reflect.DeepEqual(got, test.want) {
				t.Errorf("List() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestHistoryLedgerRestore(t *testing.T) {
	ledger := NewHistoryLedger([]int{10, 0, 20, -3, 30, 40, 50, 60})

	if got, want := ledger.List(), []int{60, 50, 40, 30, 20}; !reflect.DeepEqual(got, want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	if got := ledger.Len(); got != 5 {
		t.Fatalf("Len() = %d, want 5", got)
	}
}

func TestHistoryLedgerEntriesIsACopy(t *testing.T) {
	ledger := NewHistoryLedger([]int{10, 20})

	entries := ledger.Entries()
	if got, want := entries, []int{10, 20}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}
	entries[0] = 999
	if got := ledger.Entries()[0]; got != 10 {
		t.Fatalf("mutating the returned slice changed the ledger: %d", got)
	}
}
