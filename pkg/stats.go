package vetoana

import (
	"math"
	"strconv"
)

// Ratio is a quotient that is undefined when its denominator is zero.
// Value is NaN whenever Defined is false.
type Ratio struct {
	Value   float64
	Defined bool
}

func NewRatio(num, den float64) Ratio {
	if den == 0 {
		return Ratio{Value: math.NaN()}
	}
	return Ratio{Value: num / den, Defined: true}
}

func (r Ratio) String() string {
	if !r.Defined {
		return "undefined"
	}
	return formatFloat(r.Value)
}

// Rate is a counting rate with its Poisson uncertainty sqrt(N)/T.
type Rate struct {
	Value   float64
	Err     float64
	Defined bool
}

func NewPoissonRate(count int, liveTime float64) Rate {
	if liveTime == 0 {
		return Rate{Value: math.NaN(), Err: math.NaN()}
	}
	n := float64(count)
	return Rate{
		Value:   n / liveTime,
		Err:     math.Sqrt(n) / liveTime,
		Defined: true,
	}
}

func (r Rate) String() string {
	if !r.Defined {
		return "undefined"
	}
	return formatFloat(r.Value) + " +/- " + formatFloat(r.Err)
}

// formatFloat prints like a default C++ ostream: six significant digits.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
