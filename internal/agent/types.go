// Package agent implements the negotiation strategy core: per-round
// offer policy, counterpart estimation, concession reciprocity, and
// tone-adapted messaging. Two mirrored instances of the same core
// exist, buyer-side and seller-side, reflected around the price axis.
package agent

import (
	"github.com/talgya/bazaar/internal/product"
	"github.com/talgya/bazaar/internal/tone"
)

// Role distinguishes the two mirrored sides of a negotiation.
type Role uint8

const (
	RoleBuyer Role = iota
	RoleSeller
)

// String returns the lowercase role name.
func (r Role) String() string {
	if r == RoleSeller {
		return "seller"
	}
	return "buyer"
}

// Status is the outcome of a single negotiation round. The core emits
// only Ongoing and Accepted; Rejected and Timeout are declared by the
// session when the round cap is exhausted.
type Status uint8

const (
	StatusOngoing Status = iota
	StatusAccepted
	StatusRejected
	StatusTimeout
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	case StatusTimeout:
		return "timeout"
	default:
		return "ongoing"
	}
}

// Decision is the output of one agent turn. Price is the counter-offer
// while Ongoing, or the accepted price on Accepted.
type Decision struct {
	Status  Status `json:"status"`
	Price   int    `json:"price"`
	Message string `json:"message"`
}

// Message is one role-tagged entry of the conversation log.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Context is the per-session negotiation state an agent reads each
// round. It is owned by the session: agents never append to it.
// Limit is the role-dependent hard constraint: maximum budget for a
// buyer, walk-away floor for a seller.
type Context struct {
	Product     product.Product
	Limit       int
	Round       int
	TheirOffers []int
	OwnOffers   []int
	Messages    []Message
}

// LastOwnOffer returns the agent's most recent offer, if any.
func (c *Context) LastOwnOffer() (int, bool) {
	if len(c.OwnOffers) == 0 {
		return 0, false
	}
	return c.OwnOffers[len(c.OwnOffers)-1], true
}

// State is the core-internal mutable state of one agent for one
// session. It is built up front at agent construction, mutated every
// round, and discarded with the session.
type State struct {
	Estimator *Estimator
	Ledger    *Ledger
	LastTone  tone.Tone
}
