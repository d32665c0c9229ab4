package m

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"perceptron/activation"
	"perceptron/utils"
)

// Connection holds the parameters between layer i and layer i+1.
//
// The weight matrix has width(i)+1 rows and width(i+1) columns. Column j holds
// the incoming coefficients of neuron j in layer i+1; the last row is that
// neuron's bias, applied to a constant 1 appended to the input. The shape is
// fixed at Build time.
type Connection struct {
	weight *mat.Dense
}

func (c *Connection) Dims() (rows, cols int) {
	return c.weight.Dims()
}

// Weight returns a copy of the weight matrix, bias row included.
func (c *Connection) Weight() mat.Matrix {
	return mat.DenseCopyOf(c.weight)
}

// At returns the weight from source node i to destination neuron j.
func (c *Connection) At(i, j int) float64 {
	return c.weight.At(i, j)
}

// Set sets the weight from source node i to destination neuron j. Row
// width(i) is the bias row.
func (c *Connection) Set(i, j int, v float64) {
	c.weight.Set(i, j, v)
}

// SetWeight copies w into the connection. w must have the connection's shape.
func (c *Connection) SetWeight(w mat.Matrix) error {
	r, cols := c.weight.Dims()
	wr, wc := w.Dims()
	if wr != r || wc != cols {
		return fmt.Errorf("%w: connection weight is %dx%d, got %dx%d", ErrShapeMismatch, r, cols, wr, wc)
	}
	c.weight.Copy(w)
	return nil
}

// Bias returns the bias of destination neuron j.
func (c *Connection) Bias(j int) float64 {
	r, _ := c.weight.Dims()
	return c.weight.At(r-1, j)
}

// SetBias sets the bias of destination neuron j.
func (c *Connection) SetBias(j int, b float64) {
	r, _ := c.weight.Dims()
	c.weight.Set(r-1, j, b)
}

// PreActivation returns [x, 1]·W.
func (c *Connection) PreActivation(x []float64) ([]float64, error) {
	r, cols := c.weight.Dims()
	if len(x) != r-1 {
		return nil, fmt.Errorf("%w: connection expects %d inputs, got %d", ErrShapeMismatch, r-1, len(x))
	}
	z := mat.NewVecDense(cols, nil)
	z.MulVec(c.weight.T(), withBiasNode(x))
	return z.RawVector().Data, nil
}

// Network is a feed-forward perceptron. Its topology is fixed at Build time;
// weight values may change but a Connection must have one writer at a time.
type Network struct {
	layers      []Layer
	connections []Connection
}

// Build allocates a network with the given layer widths. Every layer but the
// last uses ReLU; the last uses Sigmoid. Weights start at zero.
func Build(widths []int) (*Network, error) {
	return BuildWith(widths, activation.ReLU, activation.Sigmoid)
}

// BuildWith is Build with caller-chosen hidden and output activations.
func BuildWith(widths []int, hidden, output activation.Kind) (*Network, error) {
	if len(widths) < 2 {
		return nil, fmt.Errorf("%w: at least input and output layer required, got %d layers", ErrTopology, len(widths))
	}
	for i, w := range widths {
		if w <= 0 {
			return nil, fmt.Errorf("%w: layer %d has width %d", ErrTopology, i, w)
		}
	}
	if !hidden.Valid() || !output.Valid() {
		return nil, fmt.Errorf("%w: activation kinds %d/%d", ErrTopology, int(hidden), int(output))
	}
	for i := 0; i < len(widths)-1; i++ {
		if !fits(widths[i]+1, widths[i+1]) {
			return nil, fmt.Errorf("%w: weight %d of %dx%d is too large", ErrResource, i, widths[i]+1, widths[i+1])
		}
	}
	for i, w := range widths {
		if w > maxElements {
			return nil, fmt.Errorf("%w: layer %d of width %d is too large", ErrResource, i, w)
		}
	}

	net, err := allocate(widths, hidden, output)
	if err != nil {
		return nil, err
	}
	utils.Reportf("built network with layer widths %v\n", net.Widths())
	return net, nil
}

func allocate(widths []int, hidden, output activation.Kind) (net *Network, err error) {
	defer func() {
		if r := recover(); r != nil {
			net, err = nil, fmt.Errorf("%w: %v", ErrResource, r)
		}
	}()

	last := len(widths) - 1
	net = &Network{
		layers:      make([]Layer, len(widths)),
		connections: make([]Connection, last),
	}
	for i, w := range widths {
		kind := hidden
		if i == last {
			kind = output
		}
		net.layers[i] = newLayer(w, kind)
	}
	for i := 0; i < last; i++ {
		net.connections[i] = Connection{weight: mat.NewDense(widths[i]+1, widths[i+1], nil)}
	}
	return net, nil
}

// Widths returns a copy of the layer widths.
func (net *Network) Widths() []int {
	widths := make([]int, len(net.layers))
	for i, l := range net.layers {
		widths[i] = l.Width()
	}
	return widths
}

func (net *Network) NumLayers() int {
	return len(net.layers)
}

func (net *Network) Layer(i int) Layer {
	return net.layers[i]
}

func (net *Network) NumConnections() int {
	return len(net.connections)
}

// Connection returns the parameters between layer i and layer i+1.
func (net *Network) Connection(i int) *Connection {
	return &net.connections[i]
}

// Init fills every weight, bias row included, with uniform samples in
// ±1/sqrt(rows) drawn from src.
func (net *Network) Init(src rand.Source) {
	for i := range net.connections {
		w := net.connections[i].weight
		r, c := w.Dims()
		data := randomArray(r*c, float64(r), src)
		copy(w.RawMatrix().Data, data)
	}
}

// Forward feeds input through the network and returns the output layer's
// activations. The input layer passes its values through unchanged.
func (net *Network) Forward(input []float64) ([]float64, error) {
	if len(input) != net.layers[0].Width() {
		return nil, fmt.Errorf("%w: input layer width %d, input length %d", ErrShapeMismatch, net.layers[0].Width(), len(input))
	}
	out := input
	for i := range net.connections {
		z, err := net.connections[i].PreActivation(out)
		if err != nil {
			return nil, err
		}
		if out, err = net.layers[i+1].Activate(z); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DCost is the binary cross-entropy derivative; see the package function.
func (net *Network) DCost(target, predicted []float64) ([]float64, error) {
	return DCost(target, predicted)
}

// Topology describes the network's structure.
func (net *Network) Topology() utils.Topology {
	t := utils.Topology{
		Layers:      make([]utils.LayerInfo, len(net.layers)),
		Connections: make([]utils.ConnectionInfo, len(net.connections)),
	}
	for i, l := range net.layers {
		t.Layers[i] = utils.LayerInfo{Width: l.Width(), Activation: l.Neuron(0).Kind().String()}
	}
	for i := range net.connections {
		r, c := net.connections[i].Dims()
		t.Connections[i] = utils.ConnectionInfo{From: i, To: i + 1, Shape: []int{r, c}}
	}
	return t
}
