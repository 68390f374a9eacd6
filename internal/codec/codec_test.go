package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lobx/internal/book"
	"lobx/internal/codec"
)

func TestDecode_Add(t *testing.T) {
	cmd, err := codec.Decode("A-B-12-240")
	require.NoError(t, err)
	assert.Equal(t, book.AddCommand(book.Buy, 12, 240), cmd)

	cmd, err = codec.Decode("A-S-5-101")
	require.NoError(t, err)
	assert.Equal(t, book.AddCommand(book.Sell, 5, 101), cmd)
}

func TestDecode_Delete(t *testing.T) {
	cmd, err := codec.Decode("D-1231316")
	require.NoError(t, err)
	assert.Equal(t, book.DeleteCommand("1231316"), cmd)
}

func TestDecode_Modify(t *testing.T) {
	cmd, err := codec.Decode("M-1231316-8")
	require.NoError(t, err)
	assert.Equal(t, book.ModifyCommand("1231316", 8), cmd)
}

func TestDecode_Malformed(t *testing.T) {
	cases := []string{
		"",
		"X-1-2-3",
		"A-B-12",
		"A-Q-12-240",
		"A-B-abc-240",
		"D",
		"M-1",
	}
	for _, line := range cases {
		_, err := codec.Decode(line)
		assert.Error(t, err, "line %q should fail to decode", line)
	}
}

func TestRoundTrip(t *testing.T) {
	cmds := []book.Command{
		book.AddCommand(book.Buy, 12, 240),
		book.AddCommand(book.Sell, 5, 101),
		book.DeleteCommand("1231316"),
		book.ModifyCommand("1231316", 8),
	}
	for _, cmd := range cmds {
		line, err := codec.Encode(cmd)
		require.NoError(t, err)
		decoded, err := codec.Decode(line)
		require.NoError(t, err)
		assert.Equal(t, cmd, decoded)
	}
}
