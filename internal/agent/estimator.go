package agent

// Estimator infers the counterpart's true walk-away price from the
// offers it has shown. It keeps two signals: the running extreme (the
// lowest seller price a buyer has seen, or highest buyer price a
// seller has seen) and an exponentially decayed estimate over a rough
// margin-scaled proxy. The decay makes a single extreme offer converge
// slowly instead of skewing the estimate in one round.
type Estimator struct {
	role        Role
	proxyMargin float64
	decay       float64

	history []int
	extreme int
	est     float64
	seen    bool
}

// NewEstimator builds an estimator for the given role using the
// role's proxy margin and decay weight.
func NewEstimator(role Role, p Params) *Estimator {
	return &Estimator{role: role, proxyMargin: p.ProxyMargin, decay: p.EstimateDecay}
}

// Observe folds one counterpart price into the history, the running
// extreme, and the decayed estimate. The first observation seeds the
// estimate directly from the rough proxy.
func (e *Estimator) Observe(price int) {
	e.history = append(e.history, price)

	proxy := float64(int(float64(price) * e.proxyMargin))
	if !e.seen {
		e.extreme = price
		e.est = proxy
		e.seen = true
		return
	}

	if e.role == RoleBuyer {
		if price < e.extreme {
			e.extreme = price
		}
	} else {
		if price > e.extreme {
			e.extreme = price
		}
	}
	e.est = float64(int(e.decay*e.est + (1-e.decay)*proxy))
}

// Estimate returns the decayed floor/ceiling estimate, rounded down to
// an integer, or ok=false before any observation.
func (e *Estimator) Estimate() (int, bool) {
	if !e.seen {
		return 0, false
	}
	return int(e.est), true
}

// Extreme returns the running extreme counterpart price, or ok=false
// before any observation.
func (e *Estimator) Extreme() (int, bool) {
	if !e.seen {
		return 0, false
	}
	return e.extreme, true
}

// Last returns the most recently observed counterpart price, or
// ok=false before any observation.
func (e *Estimator) Last() (int, bool) {
	if len(e.history) == 0 {
		return 0, false
	}
	return e.history[len(e.history)-1], true
}

// Observations returns how many counterpart prices have been seen.
func (e *Estimator) Observations() int {
	return len(e.history)
}
