package m

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// maxElements bounds a single allocation. Anything larger is reported as a
// resource failure instead of being handed to the runtime.
const maxElements = math.MaxInt32

// fits reports whether an r×c matrix stays within maxElements.
func fits(r, c int) bool {
	return r > 0 && c > 0 && r <= maxElements/c
}

// withBiasNode returns v with a trailing constant 1 for the bias row.
func withBiasNode(v []float64) *mat.VecDense {
	a := mat.NewVecDense(len(v)+1, nil)
	for i, x := range v {
		a.SetVec(i, x)
	}
	a.SetVec(len(v), 1)
	return a
}

func randomArray(size int, v float64, src rand.Source) []float64 {
	dist := distuv.Uniform{
		Min: -1 / math.Sqrt(v),
		Max: 1 / math.Sqrt(v),
		Src: src,
	}

	data := make([]float64, size)
	for i := 0; i < size; i++ {
		data[i] = dist.Rand()
	}
	return data
}

// GetColumn copies column j of matrix.
func GetColumn(matrix mat.Matrix, j int) []float64 {
	return mat.Col(nil, j, matrix)
}
