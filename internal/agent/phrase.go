package agent

import "math/rand"

// PhraseSource selects one phrase from a fixed set. Message decoration
// is the only non-deterministic element of an agent; isolating it
// behind this interface lets tests pin wording without touching the
// pricing logic.
type PhraseSource interface {
	Pick(options []string) string
}

type randomPhrases struct {
	rng *rand.Rand
}

// RandomPhrases returns a seeded phrase source. The same seed yields
// the same decoration sequence.
func RandomPhrases(seed int64) PhraseSource {
	return &randomPhrases{rng: rand.New(rand.NewSource(seed))}
}

func (r *randomPhrases) Pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[r.rng.Intn(len(options))]
}

// Fixed is a deterministic phrase source that always picks the first
// option. Used by tests.
type Fixed struct{}

func (Fixed) Pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[0]
}

// Lead and tail phrase sets wrapping every outgoing message, per role.
var (
	buyerLeads = []string{"For clarity:", "Let's be direct:", "To be efficient:", "Straightforwardly:"}
	buyerTails = []string{"Please confirm.", "I expect a prompt response.", "Proceed accordingly.", "This suits my thresholds."}

	sellerLeads = []string{"Professionally:", "Let's be clear:", "For efficiency:", "Directly:"}
	sellerTails = []string{"Confirm at your earliest.", "I expect reciprocity.", "Proceed accordingly.", "This is sustainable."}
)
