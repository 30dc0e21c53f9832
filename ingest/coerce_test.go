package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFloat(t *testing.T) {
	for in, want := range map[string]float64{
		"150.437577": 150.437577,
		"0":          0,
		" 3 ":        3,
		"-1.5e2":     -150,
	} {
		got := toFloat(in)
		require.NotNil(t, got, in)
		assert.InDelta(t, want, *got, 1e-9, in)
	}
	for _, in := range []string{"", "abc", "NaN", "Inf", "1,5"} {
		assert.Nil(t, toFloat(in), in)
	}
}

func TestToInteger(t *testing.T) {
	for in, want := range map[string]int64{
		"2787965087": 2787965087,
		"0":          0,
		"12.9":       12,
		"-12.9":      -12,
		"1e3":        1000,
	} {
		got := toInteger(in)
		require.NotNil(t, got, in)
		assert.Equal(t, want, *got, in)
	}
	for _, in := range []string{"", "ten", "1e400", "NaN"} {
		assert.Nil(t, toInteger(in), in)
	}
}
