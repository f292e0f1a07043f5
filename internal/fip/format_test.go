package fip

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPeriod(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3.14159, "3.14"},
		{2.718281828, "2.71"},
		{0.5, "0.5"},
		{1.0, "1.0"},
		{10.0, "10.0"},
		{45.678, "45.6"},
		{99.99, "99.9"},
		{9.99996, "10.0"},
		{123.456, "123"},
		{365.25, "365"},
		{1234.56, "1235"},
		{12345.678, "12346"},
		{0.000123456, "0.0"},
		{1e-05, "1e-0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPeriod(tt.in), "FormatPeriod(%v)", tt.in)
	}
}

func TestShortestRepr(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{10, "10.0"},
		{0.1, "0.1"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{-2.5, "-2.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shortestRepr(tt.in), "shortestRepr(%v)", tt.in)
	}
}

func TestSciNotation(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		opts []SciOption
		want string
	}{
		{"negative exponent", 0.00123, nil, `$1.2\cdot10^{-3}$`},
		{"positive exponent", 12345, nil, `$1.2\cdot10^{4}$`},
		{"zero exponent", 4, nil, `$4.0$`},
		{"mantissa rounds up", 9.96, nil, `$10.0$`},
		{"negative value", -0.05, nil, `$-5.0\cdot10^{-2}$`},
		{"half", 0.5, nil, `$5.0\cdot10^{-1}$`},
		{"zero", 0, nil, "0"},
		{"NaN", math.NaN(), nil, "0"},
		{"Inf", math.Inf(1), nil, "0"},
		{"-Inf", math.Inf(-1), nil, "0"},
		{"two digits", 0.00123, []SciOption{WithDecimalDigits(2)}, `$1.23\cdot10^{-3}$`},
		{"wider precision", 0.00123, []SciOption{WithPrecision(3)}, `$1.200\cdot10^{-3}$`},
		{"fixed exponent", 0.00123, []SciOption{WithExponent(-2)}, `$0.1\cdot10^{-2}$`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SciNotation(tt.in, tt.opts...))
		})
	}
}
