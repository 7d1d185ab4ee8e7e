package code_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsarma/codepad/internal/code"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"Hello",
		"print(\"héllo wörld\")\n",
		"日本語のテキスト",
		"emoji 🚀 and tabs\t\r\n",
		string([]byte{0x00, 0x01, 0xfe}),
	}
	for _, in := range inputs {
		got, err := code.Decode(code.Encode(in))
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}

func TestDecode_KnownValues(t *testing.T) {
	got, err := code.Decode("SGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "Hello", got)

	// Judge0 wraps long base64 payloads at 60 columns.
	got, err = code.Decode("SGVs\nbG8=\n")
	require.NoError(t, err)
	assert.Equal(t, "Hello", got)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := code.Decode("not base64!!")
	assert.Error(t, err)
}
