package privacy

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "******4567", MaskPhone("+911234567"))
	assert.Equal(t, MaskPlaceholder, MaskPhone(""))
	assert.Equal(t, MaskPlaceholder, MaskPhone("1234"))
	assert.Equal(t, "*2345", MaskPhone("12345"))
}

func TestMaskPhonePreservesLengthAndSuffix(t *testing.T) {
	inputs := []string{"+919876543210", "0801234567", "55512", "9876543210123"}
	for _, in := range inputs {
		out := MaskPhone(in)
		assert.Len(t, out, len(in), "masked phone must keep input length for %q", in)
		assert.Equal(t, in[len(in)-4:], out[len(out)-4:], "last 4 digits unchanged for %q", in)
		assert.Equal(t, strings.Repeat("*", len(in)-4), out[:len(out)-4])
	}
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("jane.doe@example.com"))
	assert.Equal(t, "a***@b.in", MaskEmail("arun@b.in"))
	assert.Equal(t, MaskPlaceholder, MaskEmail("not-an-email"))
	assert.Equal(t, MaskPlaceholder, MaskEmail(""))
	assert.Equal(t, MaskPlaceholder, MaskEmail("@example.com"))
}

func TestMaskKeepsMultiByteRunesIntact(t *testing.T) {
	assert.Equal(t, "Á.G.", MaskFullName("Ángel García"))
	assert.Equal(t, "Á***@example.com", MaskEmail("Ángel@example.com"))
	assert.True(t, utf8.ValidString(MaskFullName("émile zola")))
	assert.True(t, utf8.ValidString(MaskEmail("émile@example.fr")))
}

func TestMaskFullName(t *testing.T) {
	assert.Equal(t, "J.Q.D.", MaskFullName("Jane Q Doe"))
	assert.Equal(t, "J.", MaskFullName("jane"))
	assert.Equal(t, "R.K.", MaskFullName("  ravi   kumar "))
	assert.Equal(t, MaskPlaceholder, MaskFullName(""))
	assert.Equal(t, MaskPlaceholder, MaskFullName("   "))
}

func TestMaskID(t *testing.T) {
	assert.Equal(t, "a1b2c3d4...", MaskID("a1b2c3d4-e5f6-7890"))
	assert.Equal(t, "abc...", MaskID("abc"))
	assert.Equal(t, MaskPlaceholder, MaskID(""))
}
