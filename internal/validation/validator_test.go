package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHex(t *testing.T) {
	assert.NoError(t, ValidateHex("48656c6c6f"))
	assert.NoError(t, ValidateHex("  ABCDEF  "))
	assert.Error(t, ValidateHex(""))
	assert.Error(t, ValidateHex("abc"))
	assert.Error(t, ValidateHex("zz"))
}

func TestParseCodeword(t *testing.T) {
	want := []byte{72, 101, 108, 108, 111, 146, 152, 203, 131}

	tests := []struct {
		name  string
		input string
	}{
		{"Hex", "48656c6c6f9298cb83"},
		{"Hex upper", "48656C6C6F9298CB83"},
		{"Hex spaced", "48 65 6c 6c 6f 92 98 cb 83"},
		{"Base64", "SGVsbG+SmMuD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCodeword(tt.input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := ParseCodeword("   ")
	assert.Error(t, err)
	_, err = ParseCodeword("not a codeword!")
	assert.Error(t, err)
}

func TestParseCodewordAs(t *testing.T) {
	// "deadbeef" is valid as both hex and base64
	got, err := ParseCodewordAs("deadbeef", FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, got)

	got, err = ParseCodewordAs("deadbeef", FormatHex)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, got)

	got, err = ParseCodewordAs("deadbeef", FormatBase64)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x75, 0xe6, 0x9d, 0x6d, 0xe7, 0x9f}, got)

	_, err = ParseCodewordAs("SGVsbG+SmMuD", FormatHex)
	assert.Error(t, err)
	_, err = ParseCodewordAs("48 65 6c", FormatBase64)
	assert.Error(t, err)
	_, err = ParseCodewordAs("48656c", "ascii85")
	assert.Error(t, err)
}

func TestValidateNsym(t *testing.T) {
	assert.NoError(t, ValidateNsym(1))
	assert.NoError(t, ValidateNsym(254))
	assert.Error(t, ValidateNsym(0))
	assert.Error(t, ValidateNsym(255))
}

func TestValidateMessageLength(t *testing.T) {
	assert.NoError(t, ValidateMessageLength(251, 4))
	assert.Error(t, ValidateMessageLength(252, 4))
	assert.Error(t, ValidateMessageLength(5, 0))
}

func TestValidatePositionAndBit(t *testing.T) {
	assert.NoError(t, ValidatePosition(0, 9))
	assert.NoError(t, ValidatePosition(8, 9))
	assert.Error(t, ValidatePosition(9, 9))
	assert.Error(t, ValidatePosition(-1, 9))

	assert.NoError(t, ValidateBit(0))
	assert.NoError(t, ValidateBit(7))
	assert.Error(t, ValidateBit(8))
}

func TestParsePositions(t *testing.T) {
	got, err := ParsePositions("2, 0,7", 9)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 7}, got)

	for _, list := range []string{"", "1,x", "1,1", "9", "-1"} {
		_, err := ParsePositions(list, 9)
		assert.Error(t, err, "list %q", list)
	}
}
