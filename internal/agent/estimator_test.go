package agent

import (
	"math"
	"testing"
)

func TestEstimatorEmpty(t *testing.T) {
	e := NewEstimator(RoleBuyer, BuyerParams())
	if _, ok := e.Estimate(); ok {
		t.Error("Estimate() should report absent before any observation")
	}
	if _, ok := e.Extreme(); ok {
		t.Error("Extreme() should report absent before any observation")
	}
	if _, ok := e.Last(); ok {
		t.Error("Last() should report absent before any observation")
	}
}

func TestEstimatorFirstObservationSeedsProxy(t *testing.T) {
	e := NewEstimator(RoleBuyer, BuyerParams())
	e.Observe(200000)

	est, ok := e.Estimate()
	if !ok {
		t.Fatal("Estimate() absent after observation")
	}
	if want := int(200000 * 0.85); est != want {
		t.Errorf("first estimate = %d, want rough proxy %d", est, want)
	}
}

func TestEstimatorTracksExtremes(t *testing.T) {
	buyer := NewEstimator(RoleBuyer, BuyerParams())
	for _, p := range []int{200000, 185000, 190000, 182000, 195000} {
		buyer.Observe(p)
	}
	if ext, _ := buyer.Extreme(); ext != 182000 {
		t.Errorf("buyer extreme = %d, want running minimum 182000", ext)
	}

	seller := NewEstimator(RoleSeller, SellerParams())
	for _, p := range []int{120000, 135000, 128000, 140000, 132000} {
		seller.Observe(p)
	}
	if ext, _ := seller.Extreme(); ext != 140000 {
		t.Errorf("seller extreme = %d, want running maximum 140000", ext)
	}
}

func TestEstimatorConvergence(t *testing.T) {
	// Seed with one outlier, then repeat an identical price. The
	// decayed estimate must converge to that price's rough proxy.
	e := NewEstimator(RoleBuyer, BuyerParams())
	e.Observe(200000)
	for i := 0; i < 5; i++ {
		e.Observe(150000)
	}

	est, _ := e.Estimate()
	proxy := int(150000 * 0.85)
	if diff := math.Abs(float64(est - proxy)); diff > 0.05*float64(proxy) {
		t.Errorf("estimate %d not within 5%% of proxy %d after 5 identical observations", est, proxy)
	}

	if e.Observations() != 6 {
		t.Errorf("Observations() = %d, want 6", e.Observations())
	}
}

func TestEstimatorConvergesSlowly(t *testing.T) {
	// A single extreme observation must not drag the estimate all the
	// way to its proxy.
	e := NewEstimator(RoleBuyer, BuyerParams())
	e.Observe(200000)
	e.Observe(100000)

	est, _ := e.Estimate()
	lowProxy := int(100000 * 0.85)
	if est <= lowProxy {
		t.Errorf("estimate %d jumped to single-observation proxy %d", est, lowProxy)
	}
}
