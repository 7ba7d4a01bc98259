package bridge

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeWords(t *testing.T) {
	words := []int16{0, 1, -1, 0x1234, math.MaxInt16, math.MinInt16, -2}
	b := EncodeWords(words)
	require.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x01, 0xff, 0xff, 0x12, 0x34,
		0x7f, 0xff, 0x80, 0x00, 0xff, 0xfe,
	}, b)
	require.Equal(t, words, DecodeWords(b))
	require.Equal(t, []int16{-1}, DecodeWords([]byte{0xff, 0xff, 0x01}))
}

func TestWriteBlocksChunking(t *testing.T) {
	testCases := []struct {
		name      string
		words     int
		blockSize int
		expect    []int
	}{
		{"empty", 0, 1, nil},
		{"word by word", 3, 1, []int{2, 2, 2}},
		{"partial trailing block", 5, 2, []int{4, 4, 2}},
		{"exact blocks", 6, 3, []int{6, 6}},
		{"single short block", 2, 8, []int{4}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ch := newTestChannel()
			words := make([]int16, tc.words)
			for n := range words {
				words[n] = int16(n*0x101 - 3)
			}
			tx, err := WriteBlocks(ch, words, tc.blockSize)
			require.NoError(t, err)
			var sizes []int
			for _, w := range ch.writes {
				sizes = append(sizes, len(w))
			}
			require.Equal(t, tc.expect, sizes)
			require.Equal(t, EncodeWords(words), append([]byte{}, tx.Sent...))
		})
	}
}

func TestBlocksRoundTrip(t *testing.T) {
	words := []int16{-1, 0, 1, math.MinInt16, math.MaxInt16, 0x0100, -0x0100, 0x00ff, 42, -42, 7}
	for blockSize := 1; blockSize <= len(words)+1; blockSize++ {
		ch := newTestChannel()
		_, err := WriteBlocks(ch, words, blockSize)
		require.NoError(t, err)
		got, tx, err := ReadBlocks(ch, len(words), blockSize)
		require.NoError(t, err)
		require.Equalf(t, words, got, "block size %d", blockSize)
		require.Equal(t, EncodeWords(words), tx.Received)
		expectReads := (len(words) + blockSize - 1) / blockSize
		require.Len(t, ch.reads, expectReads)
	}
}

func TestReadBlocksSizes(t *testing.T) {
	ch := newTestChannel().inject(0xff, 0xff, 0, 1, 0, 2, 0, 3, 0x80, 0)
	words, _, err := ReadBlocks(ch, 5, 2)
	require.NoError(t, err)
	require.Equal(t, []int16{-1, 1, 2, 3, math.MinInt16}, words)
	require.Equal(t, []int{4, 4, 2}, ch.reads)

	words, _, err = ReadBlocks(newTestChannel(), 0, 4)
	require.NoError(t, err)
	require.Empty(t, words)
}

func TestWriteBlocksShortWrite(t *testing.T) {
	ch := newTestChannel()
	ch.shortWriteAt = 1
	tx, err := WriteBlocks(ch, []int16{1, 2, 3, 4, 5}, 2)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrShortWrite))
	var transferErr *TransferError
	require.True(t, errors.As(err, &transferErr))
	require.Equal(t, 1, transferErr.Block)
	require.Equal(t, 4, transferErr.Want)
	require.Equal(t, 3, transferErr.Got)
	// remaining blocks are not sent.
	require.Len(t, ch.writes, 2)
	require.Len(t, tx.Sent, 7)
}

func TestWriteBlocksChannelError(t *testing.T) {
	ch := newTestChannel()
	ch.shortWriteAt, ch.shortErr = 0, errBusFault
	_, err := WriteBlocks(ch, []int16{1, 2}, 1)
	require.True(t, errors.Is(err, ErrShortWrite))
	require.True(t, errors.Is(err, errBusFault))
	require.Contains(t, err.Error(), "bus fault")
	require.Len(t, ch.writes, 1)
}

func TestReadBlocksShortRead(t *testing.T) {
	ch := newTestChannel().inject(EncodeWords([]int16{1, 2, 3, 4, 5, 6})...)
	ch.shortReadAt = 1
	words, _, err := ReadBlocks(ch, 6, 2)
	require.Nil(t, words)
	require.True(t, errors.Is(err, ErrShortRead))
	var transferErr *TransferError
	require.True(t, errors.As(err, &transferErr))
	require.Equal(t, 1, transferErr.Block)
	require.Equal(t, 4, transferErr.Want)
	require.Equal(t, 3, transferErr.Got)
	require.Len(t, ch.reads, 2)
}

func TestReadBlocksStarved(t *testing.T) {
	ch := newTestChannel().inject(0, 1, 0)
	words, _, err := ReadBlocks(ch, 2, 2)
	require.Nil(t, words)
	require.True(t, errors.Is(err, ErrShortRead))
}

func TestInvalidBlockSize(t *testing.T) {
	_, err := WriteBlocks(newTestChannel(), []int16{1}, 0)
	require.Equal(t, ErrInvalidBlockSize, err)
	_, _, err = ReadBlocks(newTestChannel(), 1, -1)
	require.Equal(t, ErrInvalidBlockSize, err)
	ch := newTestChannel()
	words, _, err := ReadBlocks(ch, -1, 1)
	require.Equal(t, ErrInvalidWordCount, err)
	require.Nil(t, words)
	require.Equal(t, 0, ch.transfers())
}
