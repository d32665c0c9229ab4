package main

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"perceptron/m"
	"perceptron/utils"
)

func TestMain(tm *testing.M) {
	utils.Verbose = false
	os.Exit(tm.Run())
}

func testOptions() options {
	return options{
		cfg: &utils.Config{
			Architecture: []int{3, 4, 5},
			Hidden:       "relu",
			Output:       "sigmoid",
			Seed:         42,
			Init:         true,
		},
		input:  "0.1 0.2 0.3",
		target: "1 0 0 1 0",
		eps:    1e-7,
	}
}

func TestRunForwardAndCost(t *testing.T) {
	res, err := run(testOptions(), &bytes.Buffer{})
	require.NoError(t, err)

	require.Len(t, res.Output, 5)
	for _, p := range res.Output {
		require.Greater(t, p, 0.0)
		require.Less(t, p, 1.0)
	}
	require.Len(t, res.DCost, 5)
	require.Greater(t, res.Cost, 0.0)
	require.Nil(t, res.Encrypted)

	want, err := m.DCost([]float64{1, 0, 0, 1, 0}, res.Output)
	require.NoError(t, err)
	require.InDeltaSlice(t, want, res.DCost, 1e-12)
}

func TestRunWithoutInput(t *testing.T) {
	opts := testOptions()
	opts.input = ""
	res, err := run(opts, &bytes.Buffer{})
	require.NoError(t, err)
	require.Nil(t, res.Output)
	require.Nil(t, res.DCost)
}

func TestRunJSONTopology(t *testing.T) {
	opts := testOptions()
	opts.json = true
	var buf bytes.Buffer
	_, err := run(opts, &buf)
	require.NoError(t, err)

	var topo utils.Topology
	require.NoError(t, json.Unmarshal(buf.Bytes(), &topo))
	require.Equal(t, []int{3, 4, 5}, topo.Widths())
}

func TestRunErrors(t *testing.T) {
	opts := testOptions()
	opts.input = "0.1 0.2"
	_, err := run(opts, &bytes.Buffer{})
	require.ErrorIs(t, err, m.ErrShapeMismatch)

	opts = testOptions()
	opts.target = "1 0"
	_, err = run(opts, &bytes.Buffer{})
	require.ErrorIs(t, err, m.ErrShapeMismatch)

	opts = testOptions()
	opts.input = "0.1 x 0.3"
	_, err = run(opts, &bytes.Buffer{})
	require.Error(t, err)
}

func TestRunEncryptedMatchesPlaintext(t *testing.T) {
	if testing.Short() {
		t.Skip("CKKS key generation is slow")
	}
	opts := testOptions()
	opts.cfg.Encrypted = true

	res, err := run(opts, &bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, res.Encrypted, len(res.Output))
	require.InDeltaSlice(t, res.Output, res.Encrypted, 1e-4)
	require.Less(t, res.Divergence, 1e-4)
}

func TestMaxDivergence(t *testing.T) {
	require.Equal(t, 0.0, maxDivergence(nil, nil))
	require.InDelta(t, 0.5, maxDivergence([]float64{1, 2, 3}, []float64{1, 2.5, 2.9}), 1e-12)
}
