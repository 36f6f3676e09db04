package agent

// Actor keys the two sides of a concession ledger.
type Actor uint8

const (
	ActorSelf Actor = iota
	ActorCounterpart
)

// Ledger records the concessions each side has made within one
// session, and selects an escalating non-price demand whenever the
// owning agent has conceded more often than its counterpart.
type Ledger struct {
	self        []int
	counterpart []int
	catalog     []string
}

// NewLedger builds a ledger over the given ordered demand catalog.
// The catalog escalates: repeated own concessions select later, larger
// asks, clamped to the final entry.
func NewLedger(catalog []string) *Ledger {
	return &Ledger{catalog: catalog}
}

// Record appends a concession amount for the given actor.
func (l *Ledger) Record(a Actor, amount int) {
	if a == ActorSelf {
		l.self = append(l.self, amount)
	} else {
		l.counterpart = append(l.counterpart, amount)
	}
}

// Count returns how many concessions the given actor has recorded.
func (l *Ledger) Count(a Actor) int {
	if a == ActorSelf {
		return len(l.self)
	}
	return len(l.counterpart)
}

// Demand returns the reciprocity ask for the given own-concession
// count: index min(len−1, count−1). A zero count falls back to the
// first catalog entry; in practice every caller guards on count > 0,
// so the fallback never fires (kept to preserve observable behavior).
func (l *Ledger) Demand(ownCount int) string {
	idx := 0
	if ownCount > 0 {
		idx = ownCount - 1
		if idx > len(l.catalog)-1 {
			idx = len(l.catalog) - 1
		}
	}
	return l.catalog[idx]
}

// BuyerDemands is the buyer-side reciprocity catalog, ordered from the
// mildest ask to the strongest.
func BuyerDemands() []string {
	return []string{
		"free delivery",
		"extended warranty (6 months)",
		"priority dispatch",
		"a small bulk discount on the next order",
		"payment terms (30 days)",
	}
}

// SellerDemands is the seller-side reciprocity catalog.
func SellerDemands() []string {
	return []string{
		"commitment to higher volume",
		"faster payment terms",
		"exclusive supplier status",
		"priority contract renewal",
		"multi-order agreement",
	}
}
