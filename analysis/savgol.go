package analysis

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SavGol applies a Savitzky-Golay filter to y: every point is replaced by
// the value of a least-squares polynomial of the given degree fitted to the
// surrounding window. The first and last half-windows are filled by
// evaluating the boundary windows' polynomials at the edge positions, so the
// output always has the same length and ordering as the input.
func SavGol(y []float64, window, degree int) ([]float64, error) {
	n := len(y)
	switch {
	case window <= 0 || window%2 == 0:
		return nil, errors.Errorf("smoothing window must be odd and positive, got %d", window)
	case degree >= window:
		return nil, errors.Errorf("polynomial degree %d requires a window larger than %d", degree, degree)
	case n < window:
		return nil, errors.Errorf("need at least %d points to smooth, got %d", window, n)
	}
	for ii, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Errorf("non-finite value %v at position %d", v, ii)
		}
	}

	half := window / 2
	projection, err := polyFitProjection(window, degree)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)

	// Interior points: the fitted polynomial evaluated at the window center
	// reduces to a fixed convolution with the center row of the projection.
	centerWeights := mat.Row(nil, half, projection)
	for ii := half; ii < n-half; ii++ {
		out[ii] = floats.Dot(centerWeights, y[ii-half:ii+half+1])
	}

	// Edges: evaluate the first and last windows' polynomials at the
	// remaining positions.
	for ii := 0; ii < half; ii++ {
		out[ii] = floats.Dot(mat.Row(nil, ii, projection), y[:window])
		out[n-1-ii] = floats.Dot(mat.Row(nil, window-1-ii, projection), y[n-window:])
	}
	return out, nil
}

// polyFitProjection returns the window x window matrix P such that P*y is
// the least-squares polynomial fit of degree `degree` to the window values
// y, evaluated back at every window position: P = A (AᵀA)⁻¹ Aᵀ for the
// Vandermonde matrix A centered on the window.
func polyFitProjection(window, degree int) (*mat.Dense, error) {
	half := window / 2
	vandermonde := mat.NewDense(window, degree+1, nil)
	for ii := 0; ii < window; ii++ {
		x := float64(ii - half)
		pow := 1.0
		for jj := 0; jj <= degree; jj++ {
			vandermonde.Set(ii, jj, pow)
			pow *= x
		}
	}

	var gram mat.Dense
	gram.Mul(vandermonde.T(), vandermonde)
	var gramInv mat.Dense
	if err := gramInv.Inverse(&gram); err != nil {
		return nil, errors.Wrap(err, "degenerate smoothing window")
	}
	var pseudoInv, projection mat.Dense
	pseudoInv.Mul(&gramInv, vandermonde.T())
	projection.Mul(vandermonde, &pseudoInv)
	return &projection, nil
}
