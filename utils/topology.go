package utils

import (
	"encoding/json"
	"fmt"
	"io"
)

// LayerInfo describes one layer of a network
type LayerInfo struct {
	Width      int    `json:"width"`
	Activation string `json:"activation"`
}

// ConnectionInfo describes the weight matrix between two layers
type ConnectionInfo struct {
	From  int   `json:"from"`
	To    int   `json:"to"`
	Shape []int `json:"shape"`
}

// Topology is a machine-readable description of a network's structure.
// It carries no weight values.
type Topology struct {
	Layers      []LayerInfo      `json:"layers"`
	Connections []ConnectionInfo `json:"connections"`
}

// Widths returns the layer widths in order
func (t Topology) Widths() []int {
	widths := make([]int, len(t.Layers))
	for i, l := range t.Layers {
		widths[i] = l.Width
	}
	return widths
}

// WriteTopology writes the topology as indented JSON
func WriteTopology(w io.Writer, t Topology) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal topology: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// PrintTopology prints one line per layer and connection.
// Respects the Verbose flag.
func PrintTopology(t Topology) {
	Reportf("network: %d layers, widths %v\n", len(t.Layers), t.Widths())
	for i, l := range t.Layers {
		Reportf("  layer %d: %d x %s\n", i, l.Width, l.Activation)
	}
	for _, c := range t.Connections {
		Reportf("  weight %d->%d: %dx%d\n", c.From, c.To, c.Shape[0], c.Shape[1])
	}
}
