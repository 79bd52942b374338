package softmax

import (
	"math"

	"github.com/gomlx/exceptions"
	"gorgonia.org/tensor"
)

// Tensor computes softmax through gorgonia's tensor package, standing in
// for a GPU-capable tensor-library implementation.
func Tensor(dst, x []float64) {
	checkArgs(dst, x)

	backing := make([]float64, len(x))
	copy(backing, x)
	t := tensor.New(tensor.WithShape(len(x)), tensor.WithBacking(backing))

	mx, err := t.Max()
	if err != nil {
		exceptions.Panicf("softmax: tensor max failed: %v", err)
	}
	shifted, err := tensor.Sub(t, mx.Data().(float64))
	if err != nil {
		exceptions.Panicf("softmax: tensor subtract failed: %v", err)
	}
	exped, err := shifted.(*tensor.Dense).Apply(math.Exp)
	if err != nil {
		exceptions.Panicf("softmax: tensor exp failed: %v", err)
	}
	total, err := exped.(*tensor.Dense).Sum()
	if err != nil {
		exceptions.Panicf("softmax: tensor sum failed: %v", err)
	}
	normalized, err := tensor.Div(exped, total.Data().(float64))
	if err != nil {
		exceptions.Panicf("softmax: tensor divide failed: %v", err)
	}
	copy(dst, normalized.Data().([]float64))
}
