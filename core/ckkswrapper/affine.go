package ckkswrapper

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v5/core/rlwe"
	"github.com/tuneinsight/lattigo/v5/he/hefloat"
	"gonum.org/v1/gonum/mat"

	"perceptron/m"
)

// AffineRotations returns the rotations Affine needs to sum rows slots.
func AffineRotations(rows int) []int {
	var rots []int
	for step := 1; step < rows; step *= 2 {
		rots = append(rots, step)
	}
	return rots
}

// Affine evaluates x·w on an encrypted row vector x occupying the first
// rows(w) slots of ct; every other slot must be zero. The result has one
// ciphertext per column of w, with the dot product in slot 0.
//
// The kit must hold Galois keys for AffineRotations(rows(w)).
func (kit *ServerKit) Affine(ct *rlwe.Ciphertext, w mat.Matrix) ([]*rlwe.Ciphertext, error) {
	rows, cols := w.Dims()
	if rows > kit.Params.MaxSlots() {
		return nil, fmt.Errorf("weight has %d rows, only %d slots", rows, kit.Params.MaxSlots())
	}
	if ct.Level() < 1 {
		return nil, fmt.Errorf("ciphertext at level %d cannot be rescaled", ct.Level())
	}

	out := make([]*rlwe.Ciphertext, cols)
	for j := 0; j < cols; j++ {
		column := m.GetColumn(w, j)
		pt := hefloat.NewPlaintext(kit.Params, ct.Level())
		if err := kit.Encoder.Encode(column, pt); err != nil {
			return nil, fmt.Errorf("column %d: encode: %w", j, err)
		}

		prod, err := kit.Evaluator.MulNew(ct, pt)
		if err != nil {
			return nil, fmt.Errorf("column %d: mul: %w", j, err)
		}
		if err := kit.Evaluator.Rescale(prod, prod); err != nil {
			return nil, fmt.Errorf("column %d: rescale: %w", j, err)
		}

		for step := 1; step < rows; step *= 2 {
			rotated, err := kit.Evaluator.RotateNew(prod, step)
			if err != nil {
				return nil, fmt.Errorf("column %d: rotate %d: %w", j, step, err)
			}
			if err := kit.Evaluator.Add(prod, rotated, prod); err != nil {
				return nil, fmt.Errorf("column %d: add: %w", j, err)
			}
		}
		out[j] = prod
	}
	return out, nil
}
