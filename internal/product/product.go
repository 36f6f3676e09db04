// Package product describes the goods being negotiated over.
// A Product is a read-only input to a negotiation and is never mutated.
package product

// Grade is the quality grade of a lot.
type Grade string

const (
	GradeA      Grade = "A"
	GradeB      Grade = "B"
	GradeExport Grade = "Export"
)

// Product is an immutable descriptor of the lot under negotiation.
// MarketPrice is a reference price only; neither party is assumed to
// value the lot at exactly this number.
type Product struct {
	Name        string            `json:"name" db:"name"`
	Category    string            `json:"category" db:"category"`
	Quantity    int               `json:"quantity" db:"quantity"`
	Grade       Grade             `json:"grade" db:"grade"`
	Origin      string            `json:"origin" db:"origin"`
	MarketPrice int               `json:"market_price" db:"market_price"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// FairPrice adjusts the reference market price by quality grade.
// Export lots command a small premium, B-grade a discount.
func (p Product) FairPrice() int {
	switch p.Grade {
	case GradeExport:
		return int(float64(p.MarketPrice) * 1.02)
	case GradeA:
		return int(float64(p.MarketPrice) * 0.98)
	case GradeB:
		return int(float64(p.MarketPrice) * 0.92)
	default:
		return p.MarketPrice
	}
}
