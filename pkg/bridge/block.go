package bridge

import (
	"encoding/binary"
	"io"
)

// WordSize is the size of a RAM word in bytes.
const WordSize = 2

// EncodeWords serializes words big-endian.
func EncodeWords(words []int16) []byte {
	b := make([]byte, len(words)*WordSize)
	for n, w := range words {
		binary.BigEndian.PutUint16(b[n*WordSize:], uint16(w))
	}
	return b
}

// DecodeWords parses big-endian two's-complement words. A trailing odd byte
// is ignored.
func DecodeWords(b []byte) []int16 {
	words := make([]int16, len(b)/WordSize)
	for n := range words {
		words[n] = int16(binary.BigEndian.Uint16(b[n*WordSize:]))
	}
	return words
}

// WriteBlocks writes words to w in transfers of at most blockWordSize words.
// The final block is flushed even if it's shorter. The first short write
// aborts the remaining blocks.
func WriteBlocks(w io.Writer, words []int16, blockWordSize int) (Transaction, error) {
	var tx Transaction
	if blockWordSize < 1 {
		return tx, ErrInvalidBlockSize
	}
	buf := make([]byte, 0, blockWordSize*WordSize)
	var block, inBlock int
	for i, word := range words {
		buf = append(buf, byte(uint16(word)>>8), byte(word))
		inBlock++
		if inBlock < blockWordSize && i+1 < len(words) {
			continue
		}
		n, err := w.Write(buf)
		if n > 0 {
			tx.Sent = append(tx.Sent, buf[:n]...)
		}
		if n != len(buf) {
			return tx, &TransferError{
				Step:  "write RAM",
				Kind:  ErrShortWrite,
				Block: block,
				Want:  len(buf),
				Got:   n,
				Err:   err,
			}
		}
		buf, inBlock = buf[:0], 0
		block++
	}
	return tx, nil
}

// ReadBlocks reads wordCount words from r in transfers of at most
// blockWordSize words. On a short read no words are returned.
func ReadBlocks(r io.Reader, wordCount, blockWordSize int) ([]int16, Transaction, error) {
	var tx Transaction
	if blockWordSize < 1 {
		return nil, tx, ErrInvalidBlockSize
	}
	if wordCount < 0 {
		return nil, tx, ErrInvalidWordCount
	}
	tx.Received = make([]byte, 0, wordCount*WordSize)
	buf := make([]byte, blockWordSize*WordSize)
	for block, remaining := 0, wordCount; remaining > 0; block++ {
		count := blockWordSize
		if remaining < count {
			count = remaining
		}
		want := count * WordSize
		n, err := r.Read(buf[:want])
		if n != want {
			return nil, tx, &TransferError{
				Step:  "read RAM",
				Kind:  ErrShortRead,
				Block: block,
				Want:  want,
				Got:   n,
				Err:   err,
			}
		}
		tx.Received = append(tx.Received, buf[:n]...)
		remaining -= count
	}
	return DecodeWords(tx.Received), tx, nil
}
