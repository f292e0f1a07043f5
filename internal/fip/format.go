package fip

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// shortestRepr renders v with the fewest digits that round-trip, using plain
// decimal notation for decimal exponents in [-4, 16) and always keeping a
// fractional part ("10.0", not "10").
func shortestRepr(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if v == 0 {
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	e := strconv.FormatFloat(v, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])

	if exp < -4 || exp >= 16 {
		// Go already prints at least two exponent digits ("1e-05").
		return e
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// roundTo rounds v to the given number of decimals using the exact binary
// value, with ties to even.
func roundTo(v float64, decimals int) float64 {
	if decimals < 0 {
		p := math.Pow10(-decimals)
		return math.RoundToEven(v/p) * p
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// FormatPeriod renders a peak period for its label. The digit count comes
// from the position of the decimal point: four characters when it sits
// before index 3, otherwise the width of the integer part.
func FormatPeriod(period float64) string {
	p := shortestRepr(period)
	point := strings.IndexByte(p, '.')
	ndigits := 4
	if point >= 3 {
		ndigits = point
	}

	p = shortestRepr(roundTo(period, ndigits-point))
	if len(p) > ndigits {
		p = p[:ndigits]
	}
	return p
}

type sciOptions struct {
	decimalDigits int
	precision     int
	exponent      *int
}

// SciOption customizes SciNotation.
type SciOption func(*sciOptions)

// WithDecimalDigits sets how many mantissa decimals are kept when rounding.
func WithDecimalDigits(n int) SciOption {
	return func(o *sciOptions) { o.decimalDigits = n }
}

// WithPrecision sets how many mantissa decimals are printed. It defaults to
// the decimal digit count.
func WithPrecision(n int) SciOption {
	return func(o *sciOptions) { o.precision = n }
}

// WithExponent forces the power of ten instead of deriving it from the value.
func WithExponent(e int) SciOption {
	return func(o *sciOptions) { o.exponent = &e }
}

// SciNotation renders v as a LaTeX scientific-notation string such as
// `$1.2\cdot10^{-3}$`. Zero and non-finite values render as "0".
func SciNotation(v float64, opts ...SciOption) string {
	o := sciOptions{decimalDigits: 1, precision: -1}
	for _, opt := range opts {
		opt(&o)
	}
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}

	exp := int(math.Floor(math.Log10(math.Abs(v))))
	if o.exponent != nil {
		exp = *o.exponent
	}
	prec := o.precision
	if prec < 0 {
		prec = o.decimalDigits
	}

	coeff := roundTo(v/math.Pow(10, float64(exp)), o.decimalDigits)
	mant := strconv.FormatFloat(coeff, 'f', prec, 64)
	if exp != 0 {
		return fmt.Sprintf(`$%s\cdot10^{%d}$`, mant, exp)
	}
	return fmt.Sprintf("$%s$", mant)
}
