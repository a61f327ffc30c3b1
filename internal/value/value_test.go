package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AshTS/CLRSPseudocode/internal/value"
)

func TestEqualArraysByContentsNotIdentity(t *testing.T) {
	a := value.NewArray([]value.Value{value.Number(1), value.Number(2)})
	b := value.NewArray([]value.Value{value.Number(1), value.Number(2)})
	assert.True(t, value.Equal(a, b), "arrays with equal contents should compare equal regardless of identity")
	assert.NotSame(t, a, b)
}

func TestEqualEmptyArraysAlwaysEqual(t *testing.T) {
	a := value.NewArray(nil)
	b := value.NewArray(nil)
	assert.True(t, value.Equal(a, b))
}

func TestIndexIsOneBasedAndValidated(t *testing.T) {
	arr := value.NewArray([]value.Value{value.Number(10), value.Number(20)})

	v, err := value.Index(arr, value.Number(1))
	require.NoError(t, err)
	assert.Equal(t, value.Number(10), v)

	_, err = value.Index(arr, value.Number(0))
	assert.Error(t, err, "index 0 is not a valid 1-based index")

	_, err = value.Index(arr, value.Number(1.5))
	assert.Error(t, err, "a non-whole index must be rejected")

	_, err = value.Index(arr, value.Number(3))
	assert.Error(t, err, "out of range index must be rejected")
}

func TestMemberAccessLengthReadOnly(t *testing.T) {
	arr := value.NewArray([]value.Value{value.Number(1)})

	length, err := value.MemberAccess(arr, "length")
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), length)

	err = value.MutableMemberAccess(arr, "length", value.Number(5))
	assert.Error(t, err, ".length must be read-only")

	err = value.MutableMemberAccess(arr, "heapsize", value.Number(5))
	require.NoError(t, err)
	heapsize, err := value.MemberAccess(arr, "heapsize")
	require.NoError(t, err)
	assert.Equal(t, value.Number(5), heapsize)
}

func TestArraysShareMutableState(t *testing.T) {
	arr := value.NewArray([]value.Value{value.Number(1)})
	alias := arr
	require.NoError(t, value.MutableIndex(alias, value.Number(1), value.Number(99)))
	v, err := value.Index(arr, value.Number(1))
	require.NoError(t, err)
	assert.Equal(t, value.Number(99), v, "mutating through one holder of the pointer must be visible through another")
}
