/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeDescRoundTrip(t *testing.T) {
	texts := []string{"byte", "short", "int", "long", "float", "double", "geometry.shape.Circle"}

	for _, text := range texts {
		td, err := ParseTypeDesc(text)
		require.NoError(t, err, "ParseTypeDesc(%q)", text)
		assert.Equal(t, text, td.String(), "round trip of %q", text)
	}
}

func TestReturnDescRoundTrip(t *testing.T) {
	for _, text := range []string{"void", "int", "geometry.shape.Circle"} {
		rd, err := ParseReturnDesc(text)
		require.NoError(t, err, "ParseReturnDesc(%q)", text)
		assert.Equal(t, text, rd.String(), "round trip of %q", text)
	}
}

func TestParamsDescSize(t *testing.T) {
	intT, _ := ParseTypeDesc("int")
	longT, _ := ParseTypeDesc("long")
	params := NewParamsDesc([]TypeDesc{intT, longT, intT})

	assert.Equal(t, 4, params.Size()) // 1 + 2 + 1
	assert.Equal(t, 3, params.Len())
}

func TestIsAssignableWith(t *testing.T) {
	intT, _ := ParseTypeDesc("int")
	assert.True(t, intT.IsAssignableWith(IntVal(5)), "int type should accept an IntVal")
	assert.False(t, intT.IsAssignableWith(LongVal(5)), "int type should not accept a LongVal")

	class, err := NewClass("geometry.shape.Circle", nil, nil)
	require.NoError(t, err)
	refT, _ := ParseTypeDesc("geometry.shape.Circle")
	assert.True(t, refT.IsAssignableWith(Null()), "reference type should accept null")
	assert.True(t, refT.IsAssignableWith(Reference{Instance: NewInstance(class)}),
		"reference type should accept an instance of the same class")

	other, _ := NewClass("geometry.shape.Square", nil, nil)
	assert.False(t, refT.IsAssignableWith(Reference{Instance: NewInstance(other)}),
		"reference type should reject an instance of a different class")
}
