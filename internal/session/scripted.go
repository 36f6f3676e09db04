package session

import (
	"fmt"

	"github.com/talgya/bazaar/internal/agent"
)

// ScriptedSeller is a deterministic mock counterpart for exercising a
// buyer agent. It opens high, concedes a fixed percentage per round,
// and accepts any offer that clears a 10% profit over its minimum.
type ScriptedSeller struct {
	MinPrice int
}

// Open asks 150% of market.
func (s *ScriptedSeller) Open(ctx *agent.Context) (int, string) {
	price := int(float64(ctx.Product.MarketPrice) * 1.5)
	msg := fmt.Sprintf("These are premium %s grade %s. I'm asking ₹%d.",
		ctx.Product.Grade, ctx.Product.Name, price)
	return price, msg
}

// Respond accepts a profitable offer, issues a take-it-or-leave-it
// counter near the round cap, and otherwise concedes 15% above the
// buyer's offer, never below its minimum.
func (s *ScriptedSeller) Respond(ctx *agent.Context, price int, havePrice bool, message string) agent.Decision {
	if havePrice && price >= int(float64(s.MinPrice)*1.1) {
		return agent.Decision{
			Status:  agent.StatusAccepted,
			Price:   price,
			Message: fmt.Sprintf("You have a deal at ₹%d!", price),
		}
	}
	if ctx.Round >= 9 {
		counter := max(s.MinPrice, int(float64(price)*1.05))
		return agent.Decision{
			Status:  agent.StatusOngoing,
			Price:   counter,
			Message: fmt.Sprintf("Final offer: ₹%d. Take it or leave it.", counter),
		}
	}
	counter := max(s.MinPrice, int(float64(price)*1.15))
	return agent.Decision{
		Status:  agent.StatusOngoing,
		Price:   counter,
		Message: fmt.Sprintf("I can come down to ₹%d.", counter),
	}
}

// ScriptedBuyer is the mirror mock for exercising a seller agent:
// opens low, stretches toward the seller in fixed fractions, accepts
// any price comfortably inside its budget.
type ScriptedBuyer struct {
	Budget int
}

// Open bids 60% of market, capped at budget.
func (b *ScriptedBuyer) Open(ctx *agent.Context) (int, string) {
	offer := min(int(float64(ctx.Product.MarketPrice)*0.6), b.Budget)
	msg := fmt.Sprintf("I'm interested, but ₹%d is what I can offer for the %s.",
		offer, ctx.Product.Name)
	return offer, msg
}

// Respond accepts any price at or below 90% of budget, tightens to 95%
// of the seller's ask near the cap, and otherwise counters at 85%.
func (b *ScriptedBuyer) Respond(ctx *agent.Context, price int, havePrice bool, message string) agent.Decision {
	if havePrice && price <= int(float64(b.Budget)*0.9) {
		return agent.Decision{
			Status:  agent.StatusAccepted,
			Price:   price,
			Message: fmt.Sprintf("Alright, ₹%d works for me!", price),
		}
	}
	if ctx.Round >= 9 {
		counter := min(b.Budget, int(float64(price)*0.95))
		return agent.Decision{
			Status:  agent.StatusOngoing,
			Price:   counter,
			Message: fmt.Sprintf("That's my ceiling: ₹%d.", counter),
		}
	}
	counter := min(b.Budget, int(float64(price)*0.85))
	return agent.Decision{
		Status:  agent.StatusOngoing,
		Price:   counter,
		Message: fmt.Sprintf("I can stretch to ₹%d, but that's pushing my budget.", counter),
	}
}
