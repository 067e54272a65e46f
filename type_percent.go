package folio

import "fmt"

// Percent is a percentage value, 42.5 means 42.5%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// String formats with two decimals, "9.80%".
func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// Short formats with one decimal, "42.5%".
func (p Percent) Short() string {
	return fmt.Sprintf("%.1f%%", float64(p))
}

// SignedShort formats with one decimal and an explicit sign, "+1.2%" or "-0.3%".
func (p Percent) SignedShort() string {
	return fmt.Sprintf("%+.1f%%", float64(p))
}

// Ptr returns a pointer to p, used for optional percentages.
func (p Percent) Ptr() *Percent { return &p }
