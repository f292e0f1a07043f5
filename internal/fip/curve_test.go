package fip

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurve(t *testing.T) {
	c, err := NewCurve([]float64{1, 2, 3}, []float64{0.5, 0.1, 2})
	require.NoError(t, err)
	assert.Equal(t, Curve{{1, 0.5}, {2, 0.1}, {3, 2}}, c)
	assert.Equal(t, []float64{1, 2, 3}, c.Frequencies())
	assert.Equal(t, []float64{0.5, 0.1, 2}, c.Significances())
}

func TestNewCurve_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		freqs []float64
		sig   []float64
	}{
		{"length mismatch", []float64{1, 2}, []float64{1}},
		{"empty", nil, nil},
		{"zero frequency", []float64{0, 1}, []float64{1, 1}},
		{"negative frequency", []float64{-1, 1}, []float64{1, 1}},
		{"NaN frequency", []float64{math.NaN()}, []float64{1}},
		{"not increasing", []float64{1, 3, 2}, []float64{1, 1, 1}},
		{"duplicate frequency", []float64{1, 1}, []float64{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCurve(tt.freqs, tt.sig)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCurve))
		})
	}
}
