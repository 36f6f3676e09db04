package agent

import (
	"fmt"
	"math"

	"github.com/talgya/bazaar/internal/tone"
)

// Agent is one side of a bilateral negotiation. It owns its session
// state and computes one Decision per round: update the counterpart
// estimate and concession ledger, classify tone, and run the offer
// policy. All computed offers are clamped into the legal range before
// return; there is no fatal error path.
type Agent struct {
	name    string
	role    Role
	params  Params
	persona Persona
	prompt  string
	ears    *tone.Classifier
	phrases PhraseSource
	leads   []string
	tails   []string
	state   *State
}

// NewBuyer constructs a buyer-side agent with fresh session state.
func NewBuyer(name string, phrases PhraseSource) *Agent {
	return newAgent(name, RoleBuyer, BuyerParams(), BuyerPersona(), buyerPrompt,
		tone.BuyerEars(), phrases, buyerLeads, buyerTails, BuyerDemands())
}

// NewSeller constructs a seller-side agent with fresh session state.
func NewSeller(name string, phrases PhraseSource) *Agent {
	return newAgent(name, RoleSeller, SellerParams(), SellerPersona(), sellerPrompt,
		tone.SellerEars(), phrases, sellerLeads, sellerTails, SellerDemands())
}

func newAgent(name string, role Role, p Params, persona Persona, prompt string,
	ears *tone.Classifier, phrases PhraseSource, leads, tails, demands []string) *Agent {
	if phrases == nil {
		phrases = Fixed{}
	}
	return &Agent{
		name:    name,
		role:    role,
		params:  p,
		persona: persona,
		prompt:  prompt,
		ears:    ears,
		phrases: phrases,
		leads:   leads,
		tails:   tails,
		state: &State{
			Estimator: NewEstimator(role, p),
			Ledger:    NewLedger(demands),
			LastTone:  tone.Neutral,
		},
	}
}

// Name returns the agent's display name.
func (a *Agent) Name() string { return a.name }

// Role returns which side of the negotiation the agent plays.
func (a *Agent) Role() Role { return a.role }

// Persona returns the fixed personality descriptor.
func (a *Agent) Persona() Persona { return a.persona }

// Prompt returns the static style description used for external
// consistency evaluation.
func (a *Agent) Prompt() string { return a.prompt }

// State exposes the core-internal session state for inspection.
func (a *Agent) State() *State { return a.state }

// SetRounds aligns the policy's round horizon with a non-default
// session cap: the time-pressure curve spans the new cap and
// FINALIZING begins one round before it. Caps below 2 are ignored.
func (a *Agent) SetRounds(rounds int) {
	if rounds < 2 {
		return
	}
	a.params.MaxRounds = rounds
	a.params.FinalRound = rounds - 1
}

// Open produces the opening offer and message for round 1. A buyer
// records its opening amount as the ledger baseline; a seller records
// a zero baseline.
func (a *Agent) Open(ctx *Context) (int, string) {
	offer := a.opening(ctx)
	content := fmt.Sprintf("My opening is ₹%d for %d units of %s-grade %s.",
		offer, ctx.Product.Quantity, ctx.Product.Grade, ctx.Product.Name)
	if a.role == RoleBuyer {
		a.state.Ledger.Record(ActorSelf, offer)
	} else {
		a.state.Ledger.Record(ActorSelf, 0)
	}
	return offer, a.decorate(content)
}

// Respond computes the agent's decision for one bargaining round given
// the counterpart's latest price and message. When havePrice is false
// a price is extracted from the message text if possible; with no
// numeric signal at all the agent falls back to a mild self-nudged
// counter.
func (a *Agent) Respond(ctx *Context, price int, havePrice bool, message string) Decision {
	if !havePrice {
		if p, ok := ExtractPrice(message); ok {
			price, havePrice = p, true
		}
	}

	if havePrice {
		if last, ok := a.state.Estimator.Last(); ok {
			if conc := a.counterpartConcession(last, price); conc > 0 {
				a.state.Ledger.Record(ActorCounterpart, conc)
			}
		}
		a.state.Estimator.Observe(price)
	}

	tactic := a.adapt(message)

	opening := a.opening(ctx)
	walk := a.walkaway(ctx)
	lastMy := opening
	if v, ok := ctx.LastOwnOffer(); ok {
		lastMy = v
	}

	acceptAt := a.acceptThreshold(ctx)
	proxy := a.marketProxy(ctx)

	// Immediate acceptance: the counterpart already cleared the
	// savings threshold or the market-proxy bound.
	if havePrice {
		if a.clears(price, a.conservative(acceptAt, walk)) {
			msg := fmt.Sprintf("I accept ₹%d. It meets my efficiency threshold.", price)
			return Decision{StatusAccepted, price, a.decorate(msg)}
		}
		if a.clears(price, a.conservative(walk, proxy)) && a.legal(ctx, price) {
			msg := fmt.Sprintf("I accept ₹%d. This aligns with my market analysis.", price)
			return Decision{StatusAccepted, price, a.decorate(msg)}
		}
	}

	closing, haveClosing := a.closingTarget()
	if haveClosing {
		closing = a.conservative(closing, walk)
		closing = a.conservative(closing, ctx.Limit)
	}

	// FINALIZING: accept anything inside the hard constraint, else
	// issue a last-shot price with an escalated reciprocity demand.
	if ctx.Round >= a.params.FinalRound {
		if havePrice && a.legal(ctx, price) {
			msg := fmt.Sprintf("Finalizing at ₹%d.", price)
			return Decision{StatusAccepted, price, a.decorate(msg)}
		}
		lastShot := a.lastShot(ctx, walk, closing, haveClosing, acceptAt)
		demand := a.state.Ledger.Demand(a.state.Ledger.Count(ActorSelf))
		msg := fmt.Sprintf("Final offer ₹%d. In return I require: %s. Immediate confirmation concludes the deal.",
			lastShot, demand)
		return Decision{StatusOngoing, lastShot, a.decorate(msg)}
	}

	// Dynamic target: interpolate opening → walk-away along the eased
	// time-pressure curve and accept anything that satisfies it.
	dyn := a.dynamicTarget(ctx, opening, walk)
	if havePrice && a.clears(price, a.conservative(dyn, ctx.Limit)) {
		msg := fmt.Sprintf("Agreed at ₹%d. Efficient resolution.", price)
		return Decision{StatusAccepted, price, a.decorate(msg)}
	}

	// No numeric signal this round: request one and nudge our own
	// offer slightly toward the counterpart.
	if !havePrice {
		proposed := a.selfNudge(ctx, opening, lastMy)
		content := fmt.Sprintf("My counter is ₹%d. Provide a numeric offer to proceed.", proposed)
		return Decision{StatusOngoing, proposed, a.decorate(content)}
	}

	proposed := a.counter(ctx, price, lastMy, opening, walk, closing, haveClosing, acceptAt)

	// Moving toward the counterpart is a concession; record it.
	if conc := a.ownConcession(lastMy, proposed); conc > 0 {
		a.state.Ledger.Record(ActorSelf, conc)
	}

	selfN := a.state.Ledger.Count(ActorSelf)
	otherN := a.state.Ledger.Count(ActorCounterpart)
	reciprocity := ""
	if selfN > otherN {
		reciprocity = fmt.Sprintf(" In return for this move I need: %s.", a.state.Ledger.Demand(selfN))
	}

	var content string
	if tactic == tone.TacticAppeal && a.role == RoleBuyer {
		content = fmt.Sprintf("My counter is ₹%d. I prefer to work with you: if you can include %s, we can close today. Let's make this a lasting cooperation.",
			proposed, a.state.Ledger.Demand(selfN))
	} else if tactic == tone.TacticAppeal {
		content = fmt.Sprintf("My counter is ₹%d. I'd prefer to continue this partnership: include %s, and we close today.",
			proposed, a.state.Ledger.Demand(selfN))
	} else if a.role == RoleBuyer {
		content = fmt.Sprintf("My counter is ₹%d. This reflects market structure, my ceiling, and time-to-agreement.%s",
			proposed, reciprocity)
	} else {
		content = fmt.Sprintf("My counter is ₹%d. This reflects market floor and sustainable pricing.%s",
			proposed, reciprocity)
	}

	return Decision{StatusOngoing, proposed, a.decorate(content)}
}

// ── Policy arithmetic ────────────────────────────────────────────────

// opening computes the round-1 anchor: aggressive for the owning side,
// clamped into the legal range.
func (a *Agent) opening(ctx *Context) int {
	market := ctx.Product.MarketPrice
	if a.role == RoleBuyer {
		open := min(
			int(float64(ctx.Limit)*a.params.AggressiveOpenRatio),
			int(float64(market)*a.params.MarketOpenRatio),
		)
		return max(a.params.MinStep, min(open, ctx.Limit))
	}
	open := max(
		int(float64(market)*a.params.AggressiveOpenRatio),
		int(float64(market)*a.params.MarketOpenRatio),
	)
	return max(open, ctx.Limit)
}

// walkaway is the bound beyond which the policy refuses to concede:
// market-anchored, capped by the hard constraint.
func (a *Agent) walkaway(ctx *Context) int {
	market := ctx.Product.MarketPrice
	bound := int(float64(market) * a.params.WalkawayRatio)
	if a.role == RoleBuyer {
		return min(bound, ctx.Limit)
	}
	return max(bound, ctx.Limit)
}

func (a *Agent) acceptThreshold(ctx *Context) int {
	if a.role == RoleBuyer {
		return int(float64(ctx.Limit) * (1 - a.params.SavingsThreshold))
	}
	return int(float64(ctx.Limit) * (1 + a.params.SavingsThreshold))
}

func (a *Agent) marketProxy(ctx *Context) int {
	return int(float64(ctx.Product.MarketPrice) * a.params.MarketProxyRatio)
}

// closingTarget derives the estimate-based blend target from the
// running extreme, shaded by the extreme margin and the minimum
// profitability margin.
func (a *Agent) closingTarget() (int, bool) {
	ext, ok := a.state.Estimator.Extreme()
	if !ok {
		return 0, false
	}
	shaded := int(float64(ext) * a.params.ExtremeMargin)
	target := int(float64(shaded) * a.params.ProfitMargin)
	if a.role == RoleBuyer && target < a.params.MinStep {
		target = a.params.MinStep
	}
	return target, true
}

// dynamicTarget eases from the opening toward the walk-away bound as
// rounds progress, slightly front-loaded.
func (a *Agent) dynamicTarget(ctx *Context, opening, walk int) int {
	r := ctx.Round
	if r < 1 {
		r = 1
	}
	if r > a.params.MaxRounds {
		r = a.params.MaxRounds
	}
	progress := float64(r-1) / float64(a.params.MaxRounds-1)
	eased := math.Pow(progress, a.params.Easing)
	if a.role == RoleBuyer {
		return opening + int(float64(walk-opening)*eased)
	}
	return opening - int(float64(opening-walk)*eased)
}

// lastShot is the FINALIZING price: the better of the walk-away bound
// and the closing target, never beyond the hard constraint.
func (a *Agent) lastShot(ctx *Context, walk, closing int, haveClosing bool, acceptAt int) int {
	if a.role == RoleBuyer {
		shot := min(ctx.Limit, walk)
		if haveClosing {
			shot = min(shot, max(acceptAt, closing))
		}
		return min(shot, ctx.Limit)
	}
	shot := max(walk, ctx.Product.MarketPrice)
	if haveClosing {
		shot = max(shot, closing)
	}
	return max(shot, ctx.Limit)
}

// selfNudge is the counter proposed when the counterpart gave no
// numeric signal: an 8% move toward them, inside the legal range.
func (a *Agent) selfNudge(ctx *Context, opening, lastMy int) int {
	if a.role == RoleBuyer {
		v := int(float64(lastMy) * (1 + a.params.SelfNudge))
		return min(ctx.Limit, max(opening, v))
	}
	v := int(float64(lastMy) * (1 - a.params.SelfNudge))
	return max(ctx.Limit, min(opening, v))
}

// counter computes the gap-tiered, time-accelerated, estimate-blended
// counter-offer for a normal bargaining round.
func (a *Agent) counter(ctx *Context, price, lastMy, opening, walk, closing int, haveClosing bool, acceptAt int) int {
	market := ctx.Product.MarketPrice

	gap := price - lastMy
	if a.role == RoleSeller {
		gap = lastMy - price
	}
	if gap < 0 {
		gap = 0
	}

	baseFar := max(a.params.MinStep, int(float64(market)*a.params.FarStepRatio))
	baseNear := max(a.params.MinStep, int(float64(market)*a.params.NearStepRatio))
	pctGap := float64(gap) / float64(max(1, lastMy))

	var step int
	switch {
	case pctGap > a.params.FarGapPct:
		step = baseFar
	case pctGap > a.params.NearGapPct:
		step = (baseFar + baseNear) / 2
	default:
		step = baseNear
	}
	if ctx.Round > a.params.AccelAfterRound {
		step = int(float64(step) * a.params.AccelFactor)
	}

	var proposed int
	if haveClosing {
		// Blend: move half the remaining distance toward the anchor,
		// or the tiered step, whichever is the larger move.
		if a.role == RoleBuyer {
			anchor := max(acceptAt, closing)
			anchor = min(anchor, walk, ctx.Limit)
			toward := max(step, (anchor-lastMy)/2)
			proposed = lastMy + max(a.params.MinStep, toward)
		} else {
			anchor := min(acceptAt, closing)
			anchor = max(anchor, walk, ctx.Limit)
			toward := max(step, (lastMy-anchor)/2)
			proposed = lastMy - max(a.params.MinStep, toward)
		}
	} else {
		move := max(a.params.MinStep, max(step, int(float64(gap)*0.45)))
		if a.role == RoleBuyer {
			proposed = lastMy + move
		} else {
			proposed = lastMy - move
		}
	}

	// Clamp: never retreat behind the opening or the last own offer,
	// never cross the walk-away bound or the hard constraint.
	if a.role == RoleBuyer {
		proposed = max(proposed, opening, lastMy)
		proposed = min(proposed, ctx.Limit, walk)
	} else {
		proposed = min(proposed, opening, lastMy)
		proposed = max(proposed, ctx.Limit, walk)
	}
	return proposed
}

// ── Mirroring helpers ────────────────────────────────────────────────

// clears reports whether the counterpart's price satisfies a bound in
// the agent's favorable direction.
func (a *Agent) clears(price, bound int) bool {
	if a.role == RoleBuyer {
		return price <= bound
	}
	return price >= bound
}

// conservative returns whichever of two bounds is harder to satisfy
// from the counterpart's side: the lower for a buyer, the higher for a
// seller.
func (a *Agent) conservative(x, y int) int {
	if a.role == RoleBuyer {
		return min(x, y)
	}
	return max(x, y)
}

// legal reports whether a price respects the agent's hard constraint.
func (a *Agent) legal(ctx *Context, price int) bool {
	if a.role == RoleBuyer {
		return price <= ctx.Limit
	}
	return price >= ctx.Limit
}

// counterpartConcession is the magnitude by which the counterpart
// moved in our favor relative to their previous offer, or 0.
func (a *Agent) counterpartConcession(last, price int) int {
	if a.role == RoleBuyer {
		if price < last {
			return last - price
		}
		return 0
	}
	if price > last {
		return price - last
	}
	return 0
}

// ownConcession is the magnitude by which the agent moved in the
// counterpart's favor relative to its own previous offer, or 0.
func (a *Agent) ownConcession(lastMy, proposed int) int {
	if a.role == RoleBuyer {
		if proposed > lastMy {
			return proposed - lastMy
		}
		return 0
	}
	if proposed < lastMy {
		return lastMy - proposed
	}
	return 0
}

// adapt classifies the counterpart's tone and selects the framing
// tactic for this round's message.
func (a *Agent) adapt(message string) tone.Tactic {
	t := a.ears.Classify(message)
	a.state.LastTone = t
	return tone.TacticFor(t)
}

// decorate wraps content in a persona lead and tail phrase. Phrase
// choice never affects price, acceptance, or control flow.
func (a *Agent) decorate(content string) string {
	lead := a.phrases.Pick(a.leads)
	tail := a.phrases.Pick(a.tails)
	return lead + " " + content + " " + tail
}
