// mlp: builds a feed-forward perceptron and exercises its primitives
//
// Usage:
//
//	mlp --arch="3 4 5" --init --input="0.1 0.2 0.3" --target="1 0 0 1 0" --he
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"golang.org/x/exp/rand"

	"perceptron/activation"
	"perceptron/core/ckkswrapper"
	"perceptron/m"
	"perceptron/utils"
)

var (
	arch      = flag.String("arch", "3 4 5", "Layer widths, input first")
	hidden    = flag.String("hidden", "relu", "Activation of every layer but the last")
	output    = flag.String("output", "sigmoid", "Activation of the output layer")
	seed      = flag.Int64("seed", 42, "Random seed for weight init")
	initW     = flag.Bool("init", false, "Initialize weights uniformly instead of zero")
	input     = flag.String("input", "", "Input vector to feed forward")
	target    = flag.String("target", "", "Target vector for the cost derivative")
	eps       = flag.Float64("eps", 1e-7, "Clamp predictions into [eps, 1-eps] before the cost derivative")
	encrypted = flag.Bool("he", false, "Evaluate the first connection under CKKS")
	jsonOut   = flag.Bool("json", false, "Print the topology as JSON on stdout")
	verbose   = flag.Bool("verbose", true, "Verbose output")
)

// options is the driver input after flag parsing.
type options struct {
	cfg    *utils.Config
	input  string
	target string
	eps    float64
	json   bool
}

// result collects what a run computed; nil slices mean the step was skipped.
type result struct {
	Output     []float64
	Encrypted  []float64
	Divergence float64
	Cost       float64
	DCost      []float64
}

func main() {
	flag.Parse()
	utils.Verbose = *verbose
	if *jsonOut {
		utils.Output = os.Stderr
	}

	architecture, err := utils.ParseArchitecture(*arch)
	if err != nil {
		fail(fmt.Errorf("parsing --arch: %w", err))
	}
	cfg := &utils.Config{
		Architecture: architecture,
		Hidden:       *hidden,
		Output:       *output,
		Seed:         *seed,
		Init:         *initW,
		Encrypted:    *encrypted,
		Verbose:      *verbose,
	}
	if err := utils.ValidateConfig(cfg); err != nil {
		fail(err)
	}

	opts := options{cfg: cfg, input: *input, target: *target, eps: *eps, json: *jsonOut}
	if _, err := run(opts, os.Stdout); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func run(opts options, stdout io.Writer) (*result, error) {
	cfg := opts.cfg
	stats := &utils.TimingStats{}
	res := &result{}
	totalStart := time.Now()

	hiddenKind, err := activation.Parse(cfg.Hidden)
	if err != nil {
		return nil, err
	}
	outputKind, err := activation.Parse(cfg.Output)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	net, err := m.BuildWith(cfg.Architecture, hiddenKind, outputKind)
	if err != nil {
		return nil, err
	}
	stats.BuildTime = time.Since(start)

	topo := net.Topology()
	if opts.json {
		if err := utils.WriteTopology(stdout, topo); err != nil {
			return nil, err
		}
	} else {
		utils.PrintTopology(topo)
	}

	if cfg.Init {
		start = time.Now()
		net.Init(rand.NewSource(uint64(cfg.Seed)))
		stats.InitTime = time.Since(start)
		utils.Reportf("initialized weights with seed %d\n", cfg.Seed)
	}

	if opts.input == "" {
		stats.TotalTime = time.Since(totalStart)
		utils.PrintTimingStats(stats)
		return res, nil
	}

	x, err := utils.ParseVector(opts.input)
	if err != nil {
		return nil, fmt.Errorf("parsing --input: %w", err)
	}

	start = time.Now()
	if res.Output, err = net.Forward(x); err != nil {
		return nil, err
	}
	stats.ForwardTime = time.Since(start)
	utils.Reportf("output: %v\n", res.Output)

	if cfg.Encrypted {
		start = time.Now()
		he := ckkswrapper.NewHeContext()
		stats.HEInitTime = time.Since(start)

		start = time.Now()
		if res.Encrypted, err = forwardSplit(he, net, x); err != nil {
			return nil, fmt.Errorf("encrypted forward: %w", err)
		}
		stats.EncryptedTime = time.Since(start)

		res.Divergence = maxDivergence(res.Encrypted, res.Output)
		utils.Reportf("encrypted output: %v (max divergence %.3g)\n", res.Encrypted, res.Divergence)
	}

	if opts.target != "" {
		t, err := utils.ParseVector(opts.target)
		if err != nil {
			return nil, fmt.Errorf("parsing --target: %w", err)
		}
		start = time.Now()
		clamped := m.Clamp(res.Output, opts.eps)
		if res.DCost, err = net.DCost(t, clamped); err != nil {
			return nil, err
		}
		if res.Cost, err = m.Cost(t, clamped); err != nil {
			return nil, err
		}
		stats.CostTime = time.Since(start)
		utils.Reportf("cost: %.6f\n", res.Cost)
		utils.Reportf("dcost: %v\n", res.DCost)
	}

	stats.TotalTime = time.Since(totalStart)
	utils.PrintTimingStats(stats)
	return res, nil
}

// maxDivergence is the largest elementwise |a[i]-b[i]|.
func maxDivergence(a, b []float64) float64 {
	d := 0.0
	for i := range a {
		d = math.Max(d, math.Abs(a[i]-b[i]))
	}
	return d
}

// forwardSplit runs the first connection on an encrypted input and the rest
// of the network in plaintext once the client has decrypted it.
func forwardSplit(he *ckkswrapper.HeContext, net *m.Network, x []float64) ([]float64, error) {
	conn := net.Connection(0)
	rows, _ := conn.Dims()

	ct, err := he.EncryptVector(append(append([]float64{}, x...), 1))
	if err != nil {
		return nil, err
	}
	kit := he.GenServerKit(ckkswrapper.AffineRotations(rows))
	cts, err := kit.Affine(ct, conn.Weight())
	if err != nil {
		return nil, err
	}
	z, err := he.DecryptSlots(cts)
	if err != nil {
		return nil, err
	}

	out, err := net.Layer(1).Activate(z)
	if err != nil {
		return nil, err
	}
	for i := 1; i < net.NumConnections(); i++ {
		if z, err = net.Connection(i).PreActivation(out); err != nil {
			return nil, err
		}
		if out, err = net.Layer(i + 1).Activate(z); err != nil {
			return nil, err
		}
	}
	return out, nil
}
