package utils

import (
	"fmt"
	"strconv"
	"strings"

	"perceptron/activation"
)

// Config holds driver configuration
type Config struct {
	Architecture []int
	Hidden       string
	Output       string
	Seed         int64
	Init         bool
	Encrypted    bool
	Verbose      bool
}

func fields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// ParseArchitecture parses architecture string into slice of integers
func ParseArchitecture(archStr string) ([]int, error) {
	archParts := fields(archStr)
	arch := make([]int, len(archParts))
	for i, s := range archParts {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		arch[i] = n
	}
	return arch, nil
}

// ParseVector parses a whitespace or comma separated list of reals
func ParseVector(vecStr string) ([]float64, error) {
	parts := fields(vecStr)
	vec := make([]float64, len(parts))
	for i, s := range parts {
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		vec[i] = x
	}
	return vec, nil
}

// ValidateConfig validates driver configuration
func ValidateConfig(config *Config) error {
	if len(config.Architecture) < 2 {
		return fmt.Errorf("architecture must have at least 2 layers (input and output)")
	}

	for i, w := range config.Architecture {
		if w <= 0 {
			return fmt.Errorf("layer %d width must be positive, got %d", i, w)
		}
	}

	if _, err := activation.Parse(config.Hidden); err != nil {
		return fmt.Errorf("hidden activation: %w", err)
	}

	if _, err := activation.Parse(config.Output); err != nil {
		return fmt.Errorf("output activation: %w", err)
	}

	return nil
}
