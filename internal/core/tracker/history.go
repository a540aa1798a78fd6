package tracker

// historyCapacity bounds the session-history ledger.
const historyCapacity = 5

// HistoryLedger is a bounded, deduplicated record of past session totals
// in seconds, insertion-ordered oldest first. Persistence is the storage
// collaborator's job; the ledger itself has no failure modes.
type HistoryLedger struct {
	entries []int
}

// NewHistoryLedger restores a ledger from persisted entries, dropping
// non-positive values and keeping only the newest five.
func NewHistoryLedger(restored []int) *HistoryLedger {
	ledger := &HistoryLedger{}
	for _, seconds := range restored {
		ledger.Record(seconds)
	}
	return ledger
}

// Record appends a session total. Non-positive totals are ignored so
// empty sessions never pollute history. A repeated value moves to the
// newest slot instead of growing the list.
func (ledger *HistoryLedger) Record(seconds int) {
	if seconds <= 0 {
		return
	}
	for i, existing := range ledger.entries {
		if existing == seconds {
			ledger.entries = append(ledger.entries[:i], ledger.entries[i+1:]...)
			break
		}
	}
	ledger.entries = append(ledger.entries, seconds)
	if len(ledger.entries) > historyCapacity {
		ledger.entries = ledger.entries[len(ledger.entries)-historyCapacity:]
	}
}

// List returns the entries newest first.
func (ledger *HistoryLedger) List() []int {
	out := make([]int, 0, len(ledger.entries))
	for i := len(ledger.entries) - 1; i >= 0; i-- {
		out = append(out, ledger.entries[i])
	}
	return out
}

// Entries returns the internal oldest-first order, used for persistence.
func (ledger *HistoryLedger) Entries() []int {
	return append([]int(nil), ledger.entries...)
}

// Len reports the number of recorded totals.
func (ledger *HistoryLedger) Len() int {
	return len(ledger.entries)
}
