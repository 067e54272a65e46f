package folio

// Range is a performance period understood by the performance tool.
type Range string

const (
	Range1D  Range = "1d"
	RangeYTD Range = "ytd"
	Range1Y  Range = "1y"
	Range5Y  Range = "5y"
	RangeMax Range = "max"
)

// Ranges lists the supported performance ranges.
var Ranges = []Range{Range1D, RangeYTD, Range1Y, Range5Y, RangeMax}

// ParseRange validates s as a performance range.
func ParseRange(s string) (Range, error) {
	for _, r := range Ranges {
		if string(r) == s {
			return r, nil
		}
	}
	return "", Errorf(InvalidInput, "Unsupported range '%s'", s)
}
