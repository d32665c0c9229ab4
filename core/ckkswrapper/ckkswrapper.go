// Package ckkswrapper wraps the CKKS scheme for evaluating network
// connections on encrypted activations.
package ckkswrapper

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v5/core/rlwe"
	"github.com/tuneinsight/lattigo/v5/he/hefloat"
)

// DefaultParametersLiteral is a LogN=14 parameter set with ten 34-45 bit
// moduli and a 2^40 default scale.
var DefaultParametersLiteral = hefloat.ParametersLiteral{
	LogN: 14,
	Q: []uint64{0x200000008001, 0x400018001, // 45 + 9 x 34
		0x3fffd0001, 0x400060001,
		0x400068001, 0x3fff90001,
		0x400080001, 0x4000a8001,
		0x400108001, 0x3ffeb8001},
	P:               []uint64{0x7fffffd8001, 0x7fffffc8001}, // 43, 43
	LogDefaultScale: 40,
}

// HeContext holds the client side of a CKKS key pair.
type HeContext struct {
	Params    hefloat.Parameters
	Encoder   *hefloat.Encoder
	Encryptor *rlwe.Encryptor
	Decryptor *rlwe.Decryptor

	kgen *rlwe.KeyGenerator
	sk   *rlwe.SecretKey
	rlk  *rlwe.RelinearizationKey
}

// ServerKit is what the evaluating party needs: no secret key.
type ServerKit struct {
	Params    hefloat.Parameters
	Encoder   *hefloat.Encoder
	Evaluator *hefloat.Evaluator
}

// NewHeContext builds a context from DefaultParametersLiteral.
func NewHeContext() *HeContext {
	he, err := NewHeContextFromLiteral(DefaultParametersLiteral)
	if err != nil {
		panic(err)
	}
	return he
}

// NewHeContextFromLiteral builds a context and a fresh key set from lit.
func NewHeContextFromLiteral(lit hefloat.ParametersLiteral) (*HeContext, error) {
	params, err := hefloat.NewParametersFromLiteral(lit)
	if err != nil {
		return nil, fmt.Errorf("ckks parameters: %w", err)
	}

	kgen := hefloat.NewKeyGenerator(params)
	sk, pk := kgen.GenKeyPairNew()

	return &HeContext{
		Params:    params,
		Encoder:   hefloat.NewEncoder(params),
		Encryptor: hefloat.NewEncryptor(params, pk),
		Decryptor: hefloat.NewDecryptor(params, sk),
		kgen:      kgen,
		sk:        sk,
		rlk:       kgen.GenRelinearizationKeyNew(sk),
	}, nil
}

// GenServerKit generates an evaluator holding the relinearization key and a
// Galois key for each rotation in rots.
func (h *HeContext) GenServerKit(rots []int) *ServerKit {
	seen := make(map[uint64]bool, len(rots))
	galEls := make([]uint64, 0, len(rots))
	for _, r := range rots {
		el := h.Params.GaloisElement(r)
		if !seen[el] {
			seen[el] = true
			galEls = append(galEls, el)
		}
	}
	evk := rlwe.NewMemEvaluationKeySet(h.rlk, h.kgen.GenGaloisKeysNew(galEls, h.sk)...)
	return &ServerKit{
		Params:    h.Params,
		Encoder:   hefloat.NewEncoder(h.Params),
		Evaluator: hefloat.NewEvaluator(h.Params, evk),
	}
}

// EncryptVector encodes v into the first len(v) slots and encrypts it.
func (h *HeContext) EncryptVector(v []float64) (*rlwe.Ciphertext, error) {
	if len(v) > h.Params.MaxSlots() {
		return nil, fmt.Errorf("vector of length %d exceeds %d slots", len(v), h.Params.MaxSlots())
	}
	pt := hefloat.NewPlaintext(h.Params, h.Params.MaxLevel())
	if err := h.Encoder.Encode(v, pt); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	ct, err := h.Encryptor.EncryptNew(pt)
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}
	return ct, nil
}

func (h *HeContext) decode(ct *rlwe.Ciphertext) ([]complex128, error) {
	pt := h.Decryptor.DecryptNew(ct)
	decoded := make([]complex128, h.Params.MaxSlots())
	if err := h.Encoder.Decode(pt, decoded); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return decoded, nil
}

// DecryptVector returns the real parts of the first n slots of ct.
func (h *HeContext) DecryptVector(ct *rlwe.Ciphertext, n int) ([]float64, error) {
	if n < 0 || n > h.Params.MaxSlots() {
		return nil, fmt.Errorf("requested %d slots, have %d", n, h.Params.MaxSlots())
	}
	decoded, err := h.decode(ct)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = real(decoded[i])
	}
	return out, nil
}

// DecryptSlots returns slot 0 of each ciphertext.
func (h *HeContext) DecryptSlots(cts []*rlwe.Ciphertext) ([]float64, error) {
	out := make([]float64, len(cts))
	for i, ct := range cts {
		decoded, err := h.decode(ct)
		if err != nil {
			return nil, fmt.Errorf("ciphertext %d: %w", i, err)
		}
		out[i] = real(decoded[0])
	}
	return out, nil
}
