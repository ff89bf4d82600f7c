package domain

import (
	"github.com/google/uuid"
)

// LedgerEntry is one investor's cumulative stake in a campaign.
// Position is the creation-order index; it never changes, even after the
// entry is cleared by a refund.
type LedgerEntry struct {
	Investor uuid.UUID
	Amount   Amount
	Position int
}

// Ledger is the ordered, append-biased registry of investor stakes.
// Entries are appended on first contribution and never removed: a full
// refund zeroes the amount but keeps the entry as an audit placeholder.
// The running total and active count are maintained incrementally so cap
// checks are O(1).
type Ledger struct {
	entries []LedgerEntry
	index   map[uuid.UUID]int
	total   Amount
	active  int
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{index: make(map[uuid.UUID]int)}
}

// LedgerFromEntries rebuilds a ledger from persisted entries.
// Entries must be sorted by Position; total and active count are recomputed.
func LedgerFromEntries(entries []LedgerEntry) *Ledger {
	l := &Ledger{
		entries: make([]LedgerEntry, len(entries)),
		index:   make(map[uuid.UUID]int, len(entries)),
	}
	copy(l.entries, entries)
	for i := range l.entries {
		l.entries[i].Position = i
		l.index[l.entries[i].Investor] = i
		l.total = l.total.Add(l.entries[i].Amount)
		if !l.entries[i].Amount.IsZero() {
			l.active++
		}
	}
	return l
}

// Upsert adds delta to the investor's stake, creating an entry at the end of
// creation order on first contribution. Re-contributing after a full refund
// reactivates the existing placeholder entry in its original position.
func (l *Ledger) Upsert(investor uuid.UUID, delta Amount) {
	if delta.IsZero() {
		return
	}
	i, ok := l.index[investor]
	if !ok {
		l.entries = append(l.entries, LedgerEntry{
			Investor: investor,
			Amount:   delta,
			Position: len(l.entries),
		})
		l.index[investor] = len(l.entries) - 1
		l.total = l.total.Add(delta)
		l.active++
		return
	}
	if l.entries[i].Amount.IsZero() {
		l.active++
	}
	l.entries[i].Amount = l.entries[i].Amount.Add(delta)
	l.total = l.total.Add(delta)
}

// Clear zeroes the investor's stake and returns the amount that was held.
// The entry stays in creation order as a placeholder. Returns ErrNotFound
// if the investor has no entry or the entry is already zero.
func (l *Ledger) Clear(investor uuid.UUID) (Amount, error) {
	i, ok := l.index[investor]
	if !ok || l.entries[i].Amount.IsZero() {
		return Amount{}, ErrNotFound
	}
	held := l.entries[i].Amount
	l.entries[i].Amount = Amount{}
	l.total, _ = l.total.Sub(held)
	l.active--
	return held, nil
}

// AmountOf returns the investor's current stake (zero if no entry).
func (l *Ledger) AmountOf(investor uuid.UUID) Amount {
	if i, ok := l.index[investor]; ok {
		return l.entries[i].Amount
	}
	return Amount{}
}

// EnumerateActive returns up to limit active (non-zero) entries in creation
// order. A limit <= 0 returns nothing; callers clamp limits for reads.
func (l *Ledger) EnumerateActive(limit int) []LedgerEntry {
	if limit <= 0 {
		return nil
	}
	out := make([]LedgerEntry, 0, min(limit, l.active))
	for _, e := range l.entries {
		if e.Amount.IsZero() {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Total returns the sum of all active entries, maintained incrementally.
func (l *Ledger) Total() Amount { return l.total }

// ActiveCount returns the number of entries with a positive amount.
func (l *Ledger) ActiveCount() int { return l.active }

// Len returns the number of entries including cleared placeholders.
func (l *Ledger) Len() int { return len(l.entries) }

// Entries returns a snapshot of all entries (placeholders included) in
// creation order, for persistence.
func (l *Ledger) Entries() []LedgerEntry {
	out := make([]LedgerEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
