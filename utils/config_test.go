package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseArchitecture(t *testing.T) {
	arch, err := ParseArchitecture("3 4 5")
	require.NoError(t, err)
	require.Equal(t, []int{3, 4, 5}, arch)

	arch, err = ParseArchitecture("784,128, 10")
	require.NoError(t, err)
	require.Equal(t, []int{784, 128, 10}, arch)

	arch, err = ParseArchitecture("")
	require.NoError(t, err)
	require.Empty(t, arch)

	_, err = ParseArchitecture("3 x 5")
	require.Error(t, err)
}

func TestParseVector(t *testing.T) {
	vec, err := ParseVector("0.8, 0.2")
	require.NoError(t, err)
	require.Equal(t, []float64{0.8, 0.2}, vec)

	_, err = ParseVector("1 nope")
	require.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{Architecture: []int{3, 4, 5}, Hidden: "relu", Output: "sigmoid"}
	}
	require.NoError(t, ValidateConfig(valid()))

	c := valid()
	c.Architecture = []int{5}
	require.Error(t, ValidateConfig(c))

	c = valid()
	c.Architecture = []int{3, 0, 5}
	require.Error(t, ValidateConfig(c))

	c = valid()
	c.Architecture = []int{3, -1}
	require.Error(t, ValidateConfig(c))

	c = valid()
	c.Hidden = "swish"
	require.Error(t, ValidateConfig(c))

	c = valid()
	c.Output = ""
	require.Error(t, ValidateConfig(c))
}
