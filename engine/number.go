package engine

import (
	"math"
	"strconv"
)

// Number is a prolog number. Integers and floating-point numbers share the same native representation.
type Number float64

func (Number) term() {}

func (n Number) String() string {
	f := float64(n)
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
