package utils

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleTopology() Topology {
	return Topology{
		Layers: []LayerInfo{
			{Width: 3, Activation: "relu"},
			{Width: 4, Activation: "relu"},
			{Width: 5, Activation: "sigmoid"},
		},
		Connections: []ConnectionInfo{
			{From: 0, To: 1, Shape: []int{4, 4}},
			{From: 1, To: 2, Shape: []int{5, 5}},
		},
	}
}

func TestTopologyWidths(t *testing.T) {
	require.Equal(t, []int{3, 4, 5}, sampleTopology().Widths())
}

func TestWriteTopology(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTopology(&buf, sampleTopology()))

	var decoded Topology
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, sampleTopology(), decoded)
	require.True(t, strings.HasSuffix(buf.String(), "}\n"))
}

func TestPrintTopology(t *testing.T) {
	buf := withOutput(t, true)
	PrintTopology(sampleTopology())
	out := buf.String()
	require.Contains(t, out, "widths [3 4 5]")
	require.Contains(t, out, "layer 2: 5 x sigmoid")
	require.Contains(t, out, "weight 1->2: 5x5")
}
