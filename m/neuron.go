package m

import (
	"fmt"

	"perceptron/activation"
)

// Neuron is a single unit bound to one activation kind.
type Neuron struct {
	kind activation.Kind
}

// NewNeuron returns a neuron bound to kind.
func NewNeuron(kind activation.Kind) Neuron {
	return Neuron{kind: kind}
}

func (n Neuron) Kind() activation.Kind {
	return n.kind
}

// Evaluate applies the neuron's activation function to x.
func (n Neuron) Evaluate(x float64) float64 {
	return n.kind.Eval(x)
}

// Layer is a fixed-width, ordered group of neurons.
type Layer struct {
	neurons []Neuron
}

func newLayer(width int, kind activation.Kind) Layer {
	neurons := make([]Neuron, width)
	for i := range neurons {
		neurons[i] = NewNeuron(kind)
	}
	return Layer{neurons: neurons}
}

func (l Layer) Width() int {
	return len(l.neurons)
}

// Neuron returns the i-th neuron of the layer.
func (l Layer) Neuron(i int) Neuron {
	return l.neurons[i]
}

// Kinds returns the activation kind of every neuron in order.
func (l Layer) Kinds() []activation.Kind {
	kinds := make([]activation.Kind, len(l.neurons))
	for i, n := range l.neurons {
		kinds[i] = n.kind
	}
	return kinds
}

// Activate evaluates each neuron on the matching element of z.
func (l Layer) Activate(z []float64) ([]float64, error) {
	if len(z) != len(l.neurons) {
		return nil, fmt.Errorf("%w: layer width %d, input length %d", ErrShapeMismatch, len(l.neurons), len(z))
	}
	out := make([]float64, len(z))
	for i, n := range l.neurons {
		out[i] = n.Evaluate(z[i])
	}
	return out, nil
}
