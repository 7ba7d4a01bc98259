package sh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBytes(t *testing.T) {
	b, err := ParseBytes([]string{"0x10", "16", "0xff", "0"})
	require.NoError(t, err)
	require.Equal(t, []byte{0x10, 16, 0xff, 0}, b)
	_, err = ParseBytes([]string{"256"})
	require.Error(t, err)
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x80001000")
	require.NoError(t, err)
	require.Equal(t, uint32(0x80001000), addr)
	_, err = ParseAddress("0x100000000")
	require.Error(t, err)
}

func TestParseCount(t *testing.T) {
	n, err := ParseCount("32")
	require.NoError(t, err)
	require.Equal(t, 32, n)
	_, err = ParseCount("0")
	require.Error(t, err)
	_, err = ParseCount("-1")
	require.Error(t, err)
}

func TestParseWords(t *testing.T) {
	words, err := ParseWords([]string{"-1", "0xffff", "0x7fff", "-32768", "0x8000", "12"})
	require.NoError(t, err)
	require.Equal(t, []int16{-1, -1, 0x7fff, -32768, -32768, 12}, words)
	_, err = ParseWords([]string{"0x10000"})
	require.Error(t, err)
	_, err = ParseWords([]string{"abc"})
	require.Error(t, err)
}

func TestFormatWords(t *testing.T) {
	words := []int16{-1, 1, 2, 3, 4, 5, 6, 7, 8}
	require.Equal(t,
		"00000010: ffff 0001 0002 0003 0004 0005 0006 0007\n00000018: 0008",
		FormatWords(0x10, words))
	require.Empty(t, FormatWords(0, nil))
}
