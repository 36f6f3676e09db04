// Package session drives the negotiation round loop. The session owns
// the shared context (offer histories, round counter, message log),
// invokes the two parties in strict alternation, and converts round
// cap exhaustion into a terminal timeout. The agents themselves never
// declare one.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/talgya/bazaar/internal/agent"
	"github.com/talgya/bazaar/internal/product"
)

// Party is either side of a negotiation: a strategy agent or a
// scripted counterpart.
type Party interface {
	Open(ctx *agent.Context) (int, string)
	Respond(ctx *agent.Context, price int, havePrice bool, message string) agent.Decision
}

// Outcome summarizes one finished negotiation.
type Outcome struct {
	ID          uuid.UUID       `json:"id"`
	Product     product.Product `json:"product"`
	BuyerBudget int             `json:"buyer_budget"`
	SellerFloor int             `json:"seller_floor"`

	Status     agent.Status `json:"status"`
	DealMade   bool         `json:"deal_made"`
	FinalPrice int          `json:"final_price"`
	Rounds     int          `json:"rounds"`

	// Buyer-view performance figures, zero when no deal closed.
	Savings        int     `json:"savings"`
	SavingsPct     float64 `json:"savings_pct"`
	BelowMarketPct float64 `json:"below_market_pct"`

	Transcript []agent.Message `json:"transcript"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Session holds one negotiation between a buyer and a seller over a
// single product. Each session is isolated: parties carry their own
// per-session state and are not reused across sessions.
type Session struct {
	ID          uuid.UUID
	Product     product.Product
	BuyerBudget int
	SellerFloor int
	MaxRounds   int

	Buyer  Party
	Seller Party

	buyerCtx  agent.Context
	sellerCtx agent.Context
	messages  []agent.Message
}

// New builds a session with the default 10-round cap.
func New(p product.Product, budget, floor int, buyer, seller Party) *Session {
	return &Session{
		ID:          uuid.New(),
		Product:     p,
		BuyerBudget: budget,
		SellerFloor: floor,
		MaxRounds:   10,
		Buyer:       buyer,
		Seller:      seller,
	}
}

// Run plays the negotiation to completion: the seller opens, then
// buyer and seller alternate each round until acceptance or the round
// cap. Exactly one party computes at a time.
func (s *Session) Run() Outcome {
	s.buyerCtx = agent.Context{Product: s.Product, Limit: s.BuyerBudget}
	s.sellerCtx = agent.Context{Product: s.Product, Limit: s.SellerFloor}

	sellerPrice, sellerMsg := s.Seller.Open(&s.sellerCtx)
	s.recordSellerOffer(sellerPrice, sellerMsg)

	for round := 1; round <= s.MaxRounds; round++ {
		s.buyerCtx.Round = round
		s.sellerCtx.Round = round

		var status agent.Status
		var buyerOffer int
		var buyerMsg string
		if round == 1 {
			buyerOffer, buyerMsg = s.Buyer.Open(&s.buyerCtx)
			status = agent.StatusOngoing
		} else {
			d := s.Buyer.Respond(&s.buyerCtx, sellerPrice, true, sellerMsg)
			status, buyerOffer, buyerMsg = d.Status, d.Price, d.Message
		}
		s.recordBuyerOffer(buyerOffer, buyerMsg)

		if status == agent.StatusAccepted {
			return s.outcome(agent.StatusAccepted, sellerPrice, round)
		}

		d := s.Seller.Respond(&s.sellerCtx, buyerOffer, true, buyerMsg)
		if d.Status == agent.StatusAccepted {
			s.appendMessage(agent.RoleSeller, d.Message)
			return s.outcome(agent.StatusAccepted, buyerOffer, round)
		}
		sellerPrice, sellerMsg = d.Price, d.Message
		s.recordSellerOffer(sellerPrice, sellerMsg)
	}

	return s.outcome(agent.StatusTimeout, 0, s.MaxRounds)
}

func (s *Session) recordBuyerOffer(offer int, msg string) {
	s.buyerCtx.OwnOffers = append(s.buyerCtx.OwnOffers, offer)
	s.sellerCtx.TheirOffers = append(s.sellerCtx.TheirOffers, offer)
	s.appendMessage(agent.RoleBuyer, msg)
}

func (s *Session) recordSellerOffer(offer int, msg string) {
	s.sellerCtx.OwnOffers = append(s.sellerCtx.OwnOffers, offer)
	s.buyerCtx.TheirOffers = append(s.buyerCtx.TheirOffers, offer)
	s.appendMessage(agent.RoleSeller, msg)
}

func (s *Session) appendMessage(role agent.Role, text string) {
	m := agent.Message{Role: role, Text: text}
	s.messages = append(s.messages, m)
	s.buyerCtx.Messages = append(s.buyerCtx.Messages, m)
	s.sellerCtx.Messages = append(s.sellerCtx.Messages, m)
}

func (s *Session) outcome(status agent.Status, finalPrice, rounds int) Outcome {
	o := Outcome{
		ID:          s.ID,
		Product:     s.Product,
		BuyerBudget: s.BuyerBudget,
		SellerFloor: s.SellerFloor,
		Status:      status,
		DealMade:    status == agent.StatusAccepted,
		FinalPrice:  finalPrice,
		Rounds:      rounds,
		Transcript:  s.messages,
		CreatedAt:   time.Now().UTC(),
	}
	if o.DealMade {
		o.Savings = s.BuyerBudget - finalPrice
		if s.BuyerBudget > 0 {
			o.SavingsPct = float64(o.Savings) / float64(s.BuyerBudget) * 100
		}
		if s.Product.MarketPrice > 0 {
			o.BelowMarketPct = float64(s.Product.MarketPrice-finalPrice) / float64(s.Product.MarketPrice) * 100
		}
	}
	return o
}

// BuyerContext exposes the buyer-side role view, for inspection in
// tests and reporting.
func (s *Session) BuyerContext() *agent.Context { return &s.buyerCtx }

// SellerContext exposes the seller-side role view.
func (s *Session) SellerContext() *agent.Context { return &s.sellerCtx }
