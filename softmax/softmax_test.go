package softmax

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gomlx/exceptions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naiveSoftmax is the straightforward stabilized definition the optimized
// implementations are checked against.
func naiveSoftmax(x []float64) []float64 {
	mx := x[0]
	for _, v := range x {
		if v > mx {
			mx = v
		}
	}
	out := make([]float64, len(x))
	total := 0.0
	for ii, v := range x {
		out[ii] = math.Exp(v - mx)
		total += out[ii]
	}
	for ii := range out {
		out[ii] /= total
	}
	return out
}

func randomInput(rng *rand.Rand, n int) []float64 {
	x := make([]float64, n)
	for ii := range x {
		x[ii] = rng.Float64()*20 - 10
	}
	return x
}

func TestImplementationsAgree(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for _, n := range []int{1, 3, 100, 10000} {
		input := randomInput(rng, n)
		want := naiveSoftmax(input)
		for _, fn := range Functions() {
			t.Run(fn.Name, func(t *testing.T) {
				dst := make([]float64, n)
				fn.Compute(dst, input)

				sum := 0.0
				for ii := range dst {
					assert.InDelta(t, want[ii], dst[ii], 1e-6, "n=%d position %d", n, ii)
					sum += dst[ii]
				}
				assert.InDelta(t, 1.0, sum, 1e-9, "n=%d probabilities must sum to 1", n)
			})
		}
	}
}

func TestExtremeInputs(t *testing.T) {
	// Large shifts must not overflow, and far-below-max entries must
	// underflow to 0 rather than NaN.
	input := []float64{1000, 1000, -1000}
	for _, fn := range Functions() {
		t.Run(fn.Name, func(t *testing.T) {
			dst := make([]float64, len(input))
			fn.Compute(dst, input)
			assert.InDelta(t, 0.5, dst[0], 1e-9)
			assert.InDelta(t, 0.5, dst[1], 1e-9)
			assert.InDelta(t, 0.0, dst[2], 1e-12)
		})
	}
}

func TestBadArgumentsPanic(t *testing.T) {
	for _, fn := range Functions() {
		t.Run(fn.Name, func(t *testing.T) {
			err := exceptions.TryCatch[error](func() {
				fn.Compute(nil, nil)
			})
			require.Error(t, err, "empty input")

			err = exceptions.TryCatch[error](func() {
				fn.Compute(make([]float64, 2), []float64{1, 2, 3})
			})
			require.Error(t, err, "mismatched dst length")
		})
	}
}

func TestFastExp(t *testing.T) {
	for v := -700.0; v <= 0; v += 0.37 {
		want := math.Exp(v)
		got := fastExp(v)
		if want == 0 {
			assert.Equal(t, 0.0, got)
			continue
		}
		assert.InEpsilon(t, want, got, 1e-8, "v=%v", v)
	}
	assert.Equal(t, 0.0, fastExp(-1000))
	assert.Equal(t, 1.0, fastExp(0))
}
