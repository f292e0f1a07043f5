package fip

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlacer(yGap, xLogGap float64) PlacerConfig {
	return PlacerConfig{
		YGap:            yGap,
		XLogGap:         xLogGap,
		ReferencePeriod: 1000,
		FlipThreshold:   DefaultFlipThreshold,
		RightShift:      DefaultRightShift,
		LeftShift:       DefaultLeftShift,
		OutwardShift:    DefaultOutwardShift,
	}
}

func TestPlaceLabels_NearDuplicatePushedUp(t *testing.T) {
	reqs := []AnnotationRequest{
		{X: 10, Y: 5, Text: "a"},
		{X: 10.01, Y: 5, Text: "b"},
	}

	got, err := PlaceLabels(reqs, testPlacer(1, 0.1))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.InDelta(t, 13.0, got[0].AnchorX, 1e-12)
	assert.Equal(t, 5.0, got[0].AnchorY)
	assert.InDelta(t, 13.013, got[1].AnchorX, 1e-12)
	assert.Equal(t, 6.0, got[1].AnchorY)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, "b", got[1].Text)
}

func TestPlaceLabels_Displacement(t *testing.T) {
	tests := []struct {
		name  string
		reqs  []AnnotationRequest
		step  float64
		wantX float64
		wantY float64
	}{
		{
			name:  "lower label moved below when there is room",
			reqs:  []AnnotationRequest{{X: 10, Y: 5}, {X: 10, Y: 4.5}},
			wantX: 13,
			wantY: 4,
		},
		{
			name:  "lower label pushed right without room below",
			reqs:  []AnnotationRequest{{X: 10, Y: 0.75}, {X: 10, Y: 0.5}},
			wantX: 13 * DefaultOutwardShift,
			wantY: 0.5,
		},
		{
			name:  "higher label moved above",
			reqs:  []AnnotationRequest{{X: 10, Y: 5}, {X: 10, Y: 5.5}},
			wantX: 13,
			wantY: 6,
		},
		{
			name:  "explicit step",
			reqs:  []AnnotationRequest{{X: 10, Y: 5}, {X: 10, Y: 5.5}},
			step:  0.25,
			wantX: 13,
			wantY: 5.25,
		},
		{
			name:  "no conflict outside y gap",
			reqs:  []AnnotationRequest{{X: 10, Y: 5}, {X: 10, Y: 6}},
			wantX: 13,
			wantY: 6,
		},
		{
			name:  "no conflict outside x gap",
			reqs:  []AnnotationRequest{{X: 10, Y: 5}, {X: 100, Y: 5}},
			wantX: 130,
			wantY: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testPlacer(1, 0.1)
			cfg.YStep = tt.step
			got, err := PlaceLabels(tt.reqs, cfg)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.InDelta(t, tt.wantX, got[1].AnchorX, 1e-9)
			assert.InDelta(t, tt.wantY, got[1].AnchorY, 1e-12)
		})
	}
}

func TestPlaceLabels_FlipsLeftPastReference(t *testing.T) {
	cfg := testPlacer(1, 0.1)
	cfg.ReferencePeriod = 1

	got, err := PlaceLabels([]AnnotationRequest{{X: 10, Y: 1}, {X: 5, Y: 3}}, cfg)
	require.NoError(t, err)

	// log10(13/1) > 0.85, so the label goes to 0.8x.
	assert.InDelta(t, 8.0, got[0].AnchorX, 1e-12)
	// log10(6.5/1) = 0.81 stays on the right.
	assert.InDelta(t, 6.5, got[1].AnchorX, 1e-12)
}

func TestPlaceLabels_NearestBlockerSingleRound(t *testing.T) {
	reqs := []AnnotationRequest{
		{X: 10, Y: 5},   // placed at (13, 5)
		{X: 20, Y: 5},   // blocked by the first, lands at (26, 6)
		{X: 12, Y: 5.5}, // conflicts with both; the first is nearer in log x
	}

	got, err := PlaceLabels(reqs, testPlacer(1, 0.5))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, 6.0, got[1].AnchorY)
	// Moved above the first label; had the second been the blocker it would
	// have gone below to 5.
	assert.Equal(t, 6.0, got[2].AnchorY)

	// The move is not re-checked: the third label now overlaps the second.
	dy := math.Abs(got[2].AnchorY - got[1].AnchorY)
	dx := math.Abs(math.Log10(got[2].AnchorX / got[1].AnchorX))
	assert.Less(t, dy, 1.0)
	assert.Less(t, dx, 0.5)
}

func TestPlaceLabels_EarlierLabelsFixed(t *testing.T) {
	reqs := []AnnotationRequest{{X: 10, Y: 5}, {X: 10, Y: 5}, {X: 10, Y: 5}}

	got, err := PlaceLabels(reqs, testPlacer(1, 0.1))
	require.NoError(t, err)

	assert.Equal(t, 5.0, got[0].AnchorY)
	assert.Equal(t, 6.0, got[1].AnchorY)
	// The second label sits exactly one gap away, so only the first blocks
	// and the third lands on top of the second.
	assert.Equal(t, 6.0, got[2].AnchorY)
}

func TestPlaceLabels_Errors(t *testing.T) {
	t.Run("non-positive x", func(t *testing.T) {
		for _, x := range []float64{0, -3, math.NaN()} {
			_, err := PlaceLabels([]AnnotationRequest{{X: 1, Y: 1}, {X: x, Y: 1}}, testPlacer(1, 0.1))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNonPositiveX), "x=%v: %v", x, err)
			assert.Contains(t, err.Error(), "request 1")
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := testPlacer(1, 0.1)
		cfg.ReferencePeriod = 0
		_, err := PlaceLabels([]AnnotationRequest{{X: 1, Y: 1}}, cfg)
		assert.True(t, errors.Is(err, ErrInvalidPlacerConfig))

		cfg = testPlacer(-1, 0.1)
		_, err = PlaceLabels(nil, cfg)
		assert.True(t, errors.Is(err, ErrInvalidPlacerConfig))

		cfg = testPlacer(1, 0.1)
		cfg.OutwardShift = 0
		_, err = PlaceLabels(nil, cfg)
		assert.True(t, errors.Is(err, ErrInvalidPlacerConfig))
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := PlaceLabels(nil, testPlacer(1, 0.1))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func randomRequests(rng *rand.Rand, n int) []AnnotationRequest {
	reqs := make([]AnnotationRequest, n)
	for i := range reqs {
		reqs[i] = AnnotationRequest{
			// Dyadic y values keep the +-step arithmetic exact.
			X: 1 + rng.Float64()*20,
			Y: float64(rng.Intn(16)) * 0.5,
		}
	}
	return reqs
}

func TestPlaceLabels_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	reqs := randomRequests(rng, 25)
	cfg := testPlacer(1, 0.2)

	first, err := PlaceLabels(reqs, cfg)
	require.NoError(t, err)
	second, err := PlaceLabels(reqs, cfg)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("placements differ between calls (-first +second):\n%s", diff)
	}
}

// TestPlaceLabels_BlockerResolved checks that every moved label clears the
// label that blocked it, unless it was pushed outward instead.
func TestPlaceLabels_BlockerResolved(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const yGap, xGap = 1.0, 0.2

	for trial := 0; trial < 50; trial++ {
		reqs := randomRequests(rng, 12)
		got, err := PlaceLabels(reqs, testPlacer(yGap, xGap))
		require.NoError(t, err)

		for j := range got {
			x1 := reqs[j].X * DefaultRightShift
			y1 := reqs[j].Y
			blocker, nearest := -1, math.Inf(1)
			for i := 0; i < j; i++ {
				dy := math.Abs(y1 - got[i].AnchorY)
				dx := math.Abs(math.Log10(x1 / got[i].AnchorX))
				if dy < yGap && dx < xGap && dx < nearest {
					blocker, nearest = i, dx
				}
			}
			if blocker < 0 {
				assert.Equal(t, x1, got[j].AnchorX)
				assert.Equal(t, y1, got[j].AnchorY)
				continue
			}

			pushedOut := got[j].AnchorX != x1
			dy := math.Abs(got[j].AnchorY - got[blocker].AnchorY)
			dx := math.Abs(math.Log10(got[j].AnchorX / got[blocker].AnchorX))
			assert.True(t, pushedOut || dy >= yGap || dx >= xGap,
				"trial %d label %d still conflicts with blocker %d", trial, j, blocker)
		}
	}
}

func TestNewPlacerConfig(t *testing.T) {
	cfg := NewPlacerConfig(Range{Min: 0, Max: 9}, Range{Min: 1, Max: 1e9}, 500)

	assert.InDelta(t, 1.0, cfg.YGap, 1e-12)
	assert.InDelta(t, 1.0, cfg.XLogGap, 1e-12)
	assert.InDelta(t, 0.9, cfg.YStep, 1e-12)
	assert.Equal(t, 500.0, cfg.ReferencePeriod)
	assert.Equal(t, DefaultFlipThreshold, cfg.FlipThreshold)
	require.NoError(t, cfg.Validate())
}
