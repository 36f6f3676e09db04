package agent

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/talgya/bazaar/internal/product"
)

func testProduct(market int) product.Product {
	return product.Product{
		Name:        "Alphonso Mangoes",
		Category:    "Mangoes",
		Quantity:    100,
		Grade:       product.GradeA,
		Origin:      "Ratnagiri",
		MarketPrice: market,
	}
}

// advance mimics the session's bookkeeping for unit tests: the agent's
// own offer is appended after each turn.
func advance(ctx *Context, offer int) {
	ctx.OwnOffers = append(ctx.OwnOffers, offer)
}

func TestBuyerOpeningOffer(t *testing.T) {
	b := NewBuyer("test", Fixed{})
	ctx := &Context{Product: testProduct(180000), Limit: 216000, Round: 1}

	offer, msg := b.Open(ctx)
	// min(216000×0.78, 180000×0.72) = min(168480, 129600)
	if offer != 129600 {
		t.Errorf("opening offer = %d, want 129600", offer)
	}
	if !strings.Contains(msg, "100 units") || !strings.Contains(msg, "Alphonso Mangoes") {
		t.Errorf("opening message missing product details: %q", msg)
	}
	if got := b.State().Ledger.Count(ActorSelf); got != 1 {
		t.Errorf("buyer opening should record ledger baseline, count = %d", got)
	}
}

func TestSellerOpeningOffer(t *testing.T) {
	s := NewSeller("test", Fixed{})
	ctx := &Context{Product: testProduct(180000), Limit: 144000, Round: 1}

	offer, _ := s.Open(ctx)
	// max(180000×1.25, 180000×1.15) = 225000
	if offer != 225000 {
		t.Errorf("opening offer = %d, want 225000", offer)
	}
}

func TestBuyerAcceptsBelowThresholdExactly(t *testing.T) {
	b := NewBuyer("test", Fixed{})
	ctx := &Context{Product: testProduct(180000), Limit: 216000, Round: 1}
	offer, _ := b.Open(ctx)
	advance(ctx, offer)
	ctx.Round = 2

	// 170000 clears min(budget×0.9, market×0.96) = min(194400, 172800).
	d := b.Respond(ctx, 170000, true, "I can come down to ₹170000.")
	if d.Status != StatusAccepted {
		t.Fatalf("status = %v, want accepted", d.Status)
	}
	if d.Price != 170000 {
		t.Errorf("accepted price = %d, want the exact counterpart price 170000", d.Price)
	}
}

func TestBuyerRejectsAboveDynamicTarget(t *testing.T) {
	b := NewBuyer("test", Fixed{})
	ctx := &Context{Product: testProduct(180000), Limit: 216000, Round: 1}
	offer, _ := b.Open(ctx)
	advance(ctx, offer)
	ctx.Round = 2

	d := b.Respond(ctx, 260000, true, "Premium quality, ₹260000.")
	if d.Status != StatusOngoing {
		t.Fatalf("status = %v, want ongoing", d.Status)
	}
	if d.Price <= offer {
		t.Errorf("counter %d should move above the opening %d", d.Price, offer)
	}
	if d.Price > 216000 {
		t.Errorf("counter %d exceeds budget", d.Price)
	}
}

func TestBuyerNoNumericSignalFallback(t *testing.T) {
	b := NewBuyer("test", Fixed{})
	ctx := &Context{Product: testProduct(180000), Limit: 216000, Round: 1}
	offer, _ := b.Open(ctx)
	advance(ctx, offer)
	ctx.Round = 3

	d := b.Respond(ctx, 0, false, "these are the finest you will find")
	if d.Status != StatusOngoing {
		t.Fatalf("status = %v, want ongoing", d.Status)
	}
	// Self-nudge: 129600 × 1.08.
	if want := 139968; d.Price != want {
		t.Errorf("fallback counter = %d, want %d", d.Price, want)
	}
	if !strings.Contains(d.Message, "numeric offer") {
		t.Errorf("fallback message should request a numeric offer: %q", d.Message)
	}
	if b.State().Estimator.Observations() != 0 {
		t.Error("no price should have been observed")
	}
}

func TestRespondExtractsPriceFromText(t *testing.T) {
	b := NewBuyer("test", Fixed{})
	ctx := &Context{Product: testProduct(180000), Limit: 216000, Round: 1}
	offer, _ := b.Open(ctx)
	advance(ctx, offer)
	ctx.Round = 2

	d := b.Respond(ctx, 0, false, "For this quality I'm asking ₹240,000, firm.")
	if b.State().Estimator.Observations() != 1 {
		t.Fatalf("extracted price should be observed, observations = %d",
			b.State().Estimator.Observations())
	}
	if d.Status != StatusOngoing {
		t.Errorf("status = %v, want ongoing against a high extracted ask", d.Status)
	}
}

func TestBuyerFinalizingRespectsBudget(t *testing.T) {
	b := NewBuyer("test", Fixed{})
	ctx := &Context{Product: testProduct(180000), Limit: 162000, Round: 1}
	offer, _ := b.Open(ctx)
	advance(ctx, offer)

	ctx.Round = 9
	d := b.Respond(ctx, 200000, true, "₹200000, final.")
	if d.Status != StatusOngoing {
		t.Fatalf("status = %v, want ongoing above budget", d.Status)
	}
	if d.Price > 162000 {
		t.Errorf("last-shot %d exceeds budget 162000", d.Price)
	}
	if !strings.Contains(d.Message, "Final offer") {
		t.Errorf("finalizing message should signal a final offer: %q", d.Message)
	}
	if !strings.Contains(d.Message, "In return I require") {
		t.Errorf("finalizing message should carry a reciprocity demand: %q", d.Message)
	}

	advance(ctx, d.Price)
	ctx.Round = 10
	d = b.Respond(ctx, 160000, true, "₹160000 then.")
	if d.Status != StatusAccepted || d.Price != 160000 {
		t.Errorf("finalizing should accept within budget, got %v at %d", d.Status, d.Price)
	}
}

func TestSellerFinalizingRespectsFloor(t *testing.T) {
	s := NewSeller("test", Fixed{})
	ctx := &Context{Product: testProduct(180000), Limit: 171000, Round: 1}
	offer, _ := s.Open(ctx)
	advance(ctx, offer)

	ctx.Round = 9
	d := s.Respond(ctx, 150000, true, "₹150000 is all I have.")
	if d.Status != StatusOngoing {
		t.Fatalf("status = %v, want ongoing below floor", d.Status)
	}
	if d.Price < 171000 {
		t.Errorf("last-shot %d below floor 171000", d.Price)
	}

	advance(ctx, d.Price)
	ctx.Round = 10
	d = s.Respond(ctx, 175000, true, "₹175000, truly final.")
	if d.Status != StatusAccepted || d.Price != 175000 {
		t.Errorf("finalizing should accept at or above floor, got %v at %d", d.Status, d.Price)
	}
}

func TestConcessionTracking(t *testing.T) {
	b := NewBuyer("test", Fixed{})
	ctx := &Context{Product: testProduct(180000), Limit: 216000, Round: 1}
	offer, _ := b.Open(ctx)
	advance(ctx, offer)

	ctx.Round = 2
	d := b.Respond(ctx, 260000, true, "₹260000.")
	advance(ctx, d.Price)
	selfAfterFirst := b.State().Ledger.Count(ActorSelf)
	if selfAfterFirst < 2 {
		t.Errorf("moving up is a concession, self count = %d", selfAfterFirst)
	}

	// The seller dropping price is a counterpart concession.
	ctx.Round = 3
	d = b.Respond(ctx, 230000, true, "I can come down to ₹230000.")
	advance(ctx, d.Price)
	if got := b.State().Ledger.Count(ActorCounterpart); got != 1 {
		t.Errorf("counterpart concession count = %d, want 1", got)
	}

	// Counts never decrease.
	if b.State().Ledger.Count(ActorSelf) < selfAfterFirst {
		t.Error("self concession count decreased")
	}
}

func TestBuyerOffersNonDecreasing(t *testing.T) {
	b := NewBuyer("test", Fixed{})
	ctx := &Context{Product: testProduct(180000), Limit: 200000, Round: 1}
	offer, _ := b.Open(ctx)
	advance(ctx, offer)

	sellerPrice := 270000
	prev := offer
	for round := 2; round <= 10; round++ {
		ctx.Round = round
		d := b.Respond(ctx, sellerPrice, true, "I can come down a little.")
		if d.Status == StatusAccepted {
			return
		}
		if d.Price < prev {
			t.Fatalf("round %d: buyer offer %d regressed below %d", round, d.Price, prev)
		}
		prev = d.Price
		advance(ctx, d.Price)
		sellerPrice = int(float64(sellerPrice) * 0.96)
	}
}

func TestBuyerNeverExceedsBudgetRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		market := 50000 + rng.Intn(450000)
		budget := int(float64(market) * (0.7 + rng.Float64()*0.6))

		b := NewBuyer("test", Fixed{})
		ctx := &Context{Product: testProduct(market), Limit: budget, Round: 1}
		offer, _ := b.Open(ctx)
		if offer > budget {
			t.Fatalf("trial %d: opening %d exceeds budget %d", trial, offer, budget)
		}
		advance(ctx, offer)

		sellerPrice := int(float64(market) * 1.5)
		for round := 2; round <= 10; round++ {
			ctx.Round = round
			d := b.Respond(ctx, sellerPrice, true, "I can come down to this.")
			if d.Price > budget {
				t.Fatalf("trial %d round %d: offer %d exceeds budget %d (market %d)",
					trial, round, d.Price, budget, market)
			}
			if d.Status == StatusAccepted {
				break
			}
			advance(ctx, d.Price)
			sellerPrice = int(float64(sellerPrice) * 0.94)
		}
	}
}

func TestSellerNeverBreaksFloorRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for trial := 0; trial < 200; trial++ {
		market := 50000 + rng.Intn(450000)
		floor := int(float64(market) * (0.7 + rng.Float64()*0.3))

		s := NewSeller("test", Fixed{})
		ctx := &Context{Product: testProduct(market), Limit: floor, Round: 1}
		offer, _ := s.Open(ctx)
		if offer < floor {
			t.Fatalf("trial %d: opening %d below floor %d", trial, offer, floor)
		}
		advance(ctx, offer)

		buyerPrice := int(float64(market) * 0.5)
		for round := 2; round <= 10; round++ {
			ctx.Round = round
			d := s.Respond(ctx, buyerPrice, true, "I can stretch to this.")
			if d.Price < floor {
				t.Fatalf("trial %d round %d: offer %d below floor %d (market %d)",
					trial, round, d.Price, floor, market)
			}
			if d.Status == StatusAccepted {
				break
			}
			advance(ctx, d.Price)
			buyerPrice = int(float64(buyerPrice) * 1.07)
		}
	}
}

func TestSetRoundsShiftsFinalizing(t *testing.T) {
	short := NewBuyer("test", Fixed{})
	short.SetRounds(6)
	ctx := &Context{Product: testProduct(180000), Limit: 216000, Round: 1}
	offer, _ := short.Open(ctx)
	advance(ctx, offer)

	// With a 6-round cap, round 5 is already the finalizing phase.
	ctx.Round = 5
	d := short.Respond(ctx, 300000, true, "₹300000, firm.")
	if d.Status != StatusOngoing {
		t.Fatalf("status = %v, want ongoing above budget", d.Status)
	}
	if !strings.Contains(d.Message, "Final offer") {
		t.Errorf("round 5 of a 6-round cap should issue a final offer: %q", d.Message)
	}
	if d.Price > 216000 {
		t.Errorf("last-shot %d exceeds budget", d.Price)
	}

	// Under the default 10-round cap the same round still bargains.
	def := NewBuyer("test", Fixed{})
	ctx = &Context{Product: testProduct(180000), Limit: 216000, Round: 1}
	offer, _ = def.Open(ctx)
	advance(ctx, offer)
	ctx.Round = 5
	d = def.Respond(ctx, 300000, true, "₹300000, firm.")
	if strings.Contains(d.Message, "Final offer") {
		t.Errorf("round 5 of the default cap should still counter: %q", d.Message)
	}
}

func TestSetRoundsIgnoresDegenerateCap(t *testing.T) {
	b := NewBuyer("test", Fixed{})
	b.SetRounds(1)
	ctx := &Context{Product: testProduct(180000), Limit: 216000, Round: 1}
	offer, _ := b.Open(ctx)
	advance(ctx, offer)

	ctx.Round = 2
	d := b.Respond(ctx, 300000, true, "₹300000.")
	if strings.Contains(d.Message, "Final offer") {
		t.Errorf("degenerate cap must not move the finalizing round: %q", d.Message)
	}
}

func TestPersonaDeclared(t *testing.T) {
	b := NewBuyer("Strategist", Fixed{})
	p := b.Persona()
	if p.Type != "professional_strategist" {
		t.Errorf("persona type = %q", p.Type)
	}
	if len(p.Traits) == 0 || len(p.Catchphrases) == 0 {
		t.Error("persona should declare traits and catchphrases")
	}
	if b.Prompt() == "" {
		t.Error("personality prompt should be non-empty")
	}

	s := NewSeller("Persuader", Fixed{})
	if s.Persona().Type != "persuasive" {
		t.Errorf("seller persona type = %q", s.Persona().Type)
	}
}

func TestDecorationDoesNotAffectPrice(t *testing.T) {
	run := func(src PhraseSource) int {
		b := NewBuyer("test", src)
		ctx := &Context{Product: testProduct(180000), Limit: 216000, Round: 1}
		offer, _ := b.Open(ctx)
		advance(ctx, offer)
		ctx.Round = 2
		d := b.Respond(ctx, 260000, true, "₹260000.")
		return d.Price
	}

	fixed := run(Fixed{})
	for seed := int64(0); seed < 5; seed++ {
		if got := run(RandomPhrases(seed)); got != fixed {
			t.Fatalf("phrase seed %d changed price: %d != %d", seed, got, fixed)
		}
	}
}
