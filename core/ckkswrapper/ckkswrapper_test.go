package ckkswrapper

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"perceptron/m"
	"perceptron/utils"
)

var (
	heOnce sync.Once
	heCtx  *HeContext
)

func sharedContext(t *testing.T) *HeContext {
	t.Helper()
	heOnce.Do(func() { heCtx = NewHeContext() })
	return heCtx
}

func TestMain(tm *testing.M) {
	utils.Verbose = false
	os.Exit(tm.Run())
}

func TestHeContextRoundTrip(t *testing.T) {
	h := sharedContext(t)
	vals := []float64{3.1415926535, -2, 0.5}

	ct, err := h.EncryptVector(vals)
	require.NoError(t, err)
	got, err := h.DecryptVector(ct, len(vals))
	require.NoError(t, err)
	require.InDeltaSlice(t, vals, got, 1e-6)
}

func TestSlotCountBounds(t *testing.T) {
	h := sharedContext(t)
	_, err := h.EncryptVector(make([]float64, h.Params.MaxSlots()+1))
	require.Error(t, err)

	ct, err := h.EncryptVector([]float64{1})
	require.NoError(t, err)
	_, err = h.DecryptVector(ct, h.Params.MaxSlots()+1)
	require.Error(t, err)
	_, err = h.DecryptVector(ct, -1)
	require.Error(t, err)

	got, err := h.DecryptVector(ct, 0)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestAffineRotations(t *testing.T) {
	require.Empty(t, AffineRotations(1))
	require.Equal(t, []int{1}, AffineRotations(2))
	require.Equal(t, []int{1, 2}, AffineRotations(4))
	require.Equal(t, []int{1, 2, 4}, AffineRotations(5))
}

func TestAffineMatchesPlaintextConnection(t *testing.T) {
	h := sharedContext(t)

	net, err := m.Build([]int{3, 4, 2})
	require.NoError(t, err)
	net.Init(rand.NewSource(1))
	conn := net.Connection(0)

	x := []float64{0.2, -0.7, 1.3}
	want, err := conn.PreActivation(x)
	require.NoError(t, err)

	rows, _ := conn.Dims()
	ct, err := h.EncryptVector(append(append([]float64{}, x...), 1))
	require.NoError(t, err)

	kit := h.GenServerKit(AffineRotations(rows))
	cts, err := kit.Affine(ct, conn.Weight())
	require.NoError(t, err)
	require.Len(t, cts, 4)

	got, err := h.DecryptSlots(cts)
	require.NoError(t, err)
	require.InDeltaSlice(t, want, got, 1e-4)
}

func TestAffineHandTotals(t *testing.T) {
	h := sharedContext(t)
	w := mat.NewDense(2, 2, []float64{
		1, 2,
		3, 4,
	})
	ct, err := h.EncryptVector([]float64{1, 1})
	require.NoError(t, err)

	kit := h.GenServerKit(AffineRotations(2))
	cts, err := kit.Affine(ct, w)
	require.NoError(t, err)

	got, err := h.DecryptSlots(cts)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{4, 6}, got, 1e-4)
}
