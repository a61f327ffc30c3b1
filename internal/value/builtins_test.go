package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AshTS/CLRSPseudocode/internal/value"
)

func TestArithmeticBuiltins(t *testing.T) {
	cases := []struct {
		name string
		fn   func([]value.Value) (value.Value, error)
		want value.Value
	}{
		{"add", value.Add, value.Number(7)},
		{"sub", value.Sub, value.Number(-1)},
		{"mul", value.Mul, value.Number(12)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.fn([]value.Value{value.Number(3), value.Number(4)})
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestComparisonBuiltinsRejectNonNumbers(t *testing.T) {
	_, err := value.Lt([]value.Value{value.Boolean(true), value.Number(1)})
	assert.Error(t, err)
}

func TestEqBuiltinIsStructural(t *testing.T) {
	a := value.NewArray([]value.Value{value.Number(1)})
	b := value.NewArray([]value.Value{value.Number(1)})
	got, err := value.Eq([]value.Value{a, b})
	require.NoError(t, err)
	assert.Equal(t, value.Boolean(true), got)
}

func TestAssertEqualFailsWithBothRepresentations(t *testing.T) {
	_, err := value.AssertEqual([]value.Value{value.Number(1), value.Number(2)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1")
	assert.Contains(t, err.Error(), "2")
}

func TestFloorCeil(t *testing.T) {
	f, err := value.Floor([]value.Value{value.Number(1.7)})
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), f)

	c, err := value.Ceil([]value.Value{value.Number(1.2)})
	require.NoError(t, err)
	assert.Equal(t, value.Number(2), c)
}
