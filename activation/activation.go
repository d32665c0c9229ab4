package activation

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Func is a scalar activation function.
type Func func(x float64) float64

// Kind identifies one of the built-in activation functions.
type Kind int

const (
	One Kind = iota
	Identity
	BinaryStep
	Sign
	Sigmoid
	Tanh
	ReLU
	LeakyReLU
	Softplus
	Softsign
)

// ErrUnknownActivation is returned by Parse for a name no kind carries.
var ErrUnknownActivation = errors.New("unknown activation")

type entry struct {
	name string
	fn   Func
}

// table is indexed by Kind and never written after package init.
var table = [...]entry{
	One:        {"one", one},
	Identity:   {"identity", identity},
	BinaryStep: {"binarystep", binaryStep},
	Sign:       {"sign", sign},
	Sigmoid:    {"sigmoid", sigmoid},
	Tanh:       {"tanh", tanh},
	ReLU:       {"relu", relu},
	LeakyReLU:  {"leakyrelu", leakyReLU},
	Softplus:   {"softplus", softplus},
	Softsign:   {"softsign", softsign},
}

// byName maps activation names to kinds.
var byName = func() map[string]Kind {
	lookup := make(map[string]Kind, len(table))
	for k, e := range table {
		lookup[e.name] = Kind(k)
	}
	return lookup
}()

func one(x float64) float64      { return 1 }
func identity(x float64) float64 { return x }

func binaryStep(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func tanh(x float64) float64 {
	return 2.0/(1.0+math.Exp(-2*x)) - 1.0
}

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func leakyReLU(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0.01 * x
}

func softplus(x float64) float64 {
	return math.Log(1 + math.Exp(x))
}

func softsign(x float64) float64 {
	return x / (1 + math.Abs(x))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(table)
}

// Func returns the scalar function for k. It panics if k is not a declared
// kind.
func (k Kind) Func() Func {
	if !k.Valid() {
		panic(fmt.Sprintf("activation: invalid kind %d", int(k)))
	}
	return table[k].fn
}

// Eval applies the activation function of k to x.
func (k Kind) Eval(x float64) float64 {
	return k.Func()(x)
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return table[k].name
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, len(table))
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Parse resolves an activation name, ignoring case and surrounding space.
func Parse(name string) (Kind, error) {
	k, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownActivation, name)
	}
	return k, nil
}
