// Package tone classifies free-text negotiation messages into a coarse
// tone signal and maps that signal to a response tactic. Classification
// is pure keyword scoring with no side effects.
package tone

import "strings"

// Tone is the classified register of a counterpart message.
type Tone uint8

const (
	Neutral Tone = iota
	Emotional
	Logical
)

// String returns the lowercase tone name.
func (t Tone) String() string {
	switch t {
	case Emotional:
		return "emotional"
	case Logical:
		return "logical"
	default:
		return "neutral"
	}
}

// Tactic is how the agent frames its next message in response to the
// counterpart's tone.
type Tactic uint8

const (
	// TacticLogical keeps the message purely numeric and unemotional.
	TacticLogical Tactic = iota
	// TacticAppeal injects a mild personal appeal to destabilize a
	// purely analytical counterpart.
	TacticAppeal
)

// TacticFor maps tone to tactic: stay logical against emotion, appeal
// against cold logic, default to logical.
func TacticFor(t Tone) Tactic {
	if t == Logical {
		return TacticAppeal
	}
	return TacticLogical
}

// Classifier scores text against three fixed keyword lists. Each
// emotional hit subtracts 2; each logical or polite hit adds 1.
// Score ≤ -1 classifies emotional, ≥ +1 logical, otherwise neutral.
type Classifier struct {
	emotional []string
	logical   []string
	polite    []string
}

// NewClassifier builds a classifier over the given keyword lists.
// Matching is case-insensitive substring containment.
func NewClassifier(emotional, logical, polite []string) *Classifier {
	return &Classifier{emotional: emotional, logical: logical, polite: polite}
}

// Classify scores text and returns its tone. Empty text is neutral.
func (c *Classifier) Classify(text string) Tone {
	if text == "" {
		return Neutral
	}
	t := strings.ToLower(text)

	score := 0
	for _, kw := range c.emotional {
		if strings.Contains(t, kw) {
			score -= 2
		}
	}
	for _, kw := range c.logical {
		if strings.Contains(t, kw) {
			score++
		}
	}
	for _, kw := range c.polite {
		if strings.Contains(t, kw) {
			score++
		}
	}

	switch {
	case score <= -1:
		return Emotional
	case score >= 1:
		return Logical
	default:
		return Neutral
	}
}

// BuyerEars listens to seller messages: what a buyer-side agent
// watches for in the counterpart's language.
func BuyerEars() *Classifier {
	return NewClassifier(
		[]string{"angry", "insult", "unfair", "frustrat", "outrage", "hate", "never", "demand", "disrespect", "!", "how dare"},
		[]string{"market", "price", "cost", "margin", "percent", "%", "data", "analysis", "based on"},
		[]string{"please", "kindly", "thank", "appreciate"},
	)
}

// SellerEars listens to buyer messages.
func SellerEars() *Classifier {
	return NewClassifier(
		[]string{"angry", "unfair", "frustrat", "demand", "unacceptable", "!", "urgent"},
		[]string{"market", "budget", "price", "analysis", "cost", "%", "data"},
		[]string{"please", "thank", "appreciate"},
	)
}
