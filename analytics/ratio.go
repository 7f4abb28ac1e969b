package analytics

import (
	"fmt"
	"math"
	"strconv"
)

// Ratio is a float64 whose positive infinity is printable. JSON encodes it as
// a number, or as the string "∞" when infinite.
type Ratio float64

const infinity = "∞"

func (r Ratio) IsInf() bool {
	return math.IsInf(float64(r), 1)
}

func (r Ratio) String() string {
	if r.IsInf() {
		return infinity
	}
	return strconv.FormatFloat(float64(r), 'f', 2, 64)
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if r.IsInf() {
		return []byte(`"` + infinity + `"`), nil
	}
	return strconv.AppendFloat(nil, float64(r), 'f', -1, 64), nil
}

func (r *Ratio) UnmarshalJSON(b []byte) error {
	if string(b) == `"`+infinity+`"` {
		*r = Ratio(math.Inf(1))
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("ratio: %w", err)
	}
	*r = Ratio(v)
	return nil
}
