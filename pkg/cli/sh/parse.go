package sh

import (
	"fmt"
	"strconv"
)

// ParseBytes parses byte values, e.g. 0x10 16 020.
func ParseBytes(args []string) ([]byte, error) {
	b := make([]byte, len(args))
	for n, arg := range args {
		val, err := strconv.ParseUint(arg, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid byte %q: %v", arg, err)
		}
		b[n] = byte(val)
	}
	return b, nil
}

// ParseAddress parses a 32-bit RAM address.
func ParseAddress(arg string) (uint32, error) {
	val, err := strconv.ParseUint(arg, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %v", arg, err)
	}
	return uint32(val), nil
}

// ParseCount parses a positive count.
func ParseCount(arg string) (int, error) {
	val, err := strconv.ParseUint(arg, 0, 31)
	if err != nil || val == 0 {
		return 0, fmt.Errorf("invalid count %q", arg)
	}
	return int(val), nil
}

// ParseWords parses 16-bit words. Negative decimals and unsigned values up
// to 0xffff are both accepted, so 0xffff and -1 are the same word.
func ParseWords(args []string) ([]int16, error) {
	words := make([]int16, len(args))
	for n, arg := range args {
		if val, err := strconv.ParseInt(arg, 0, 16); err == nil {
			words[n] = int16(val)
			continue
		}
		val, err := strconv.ParseUint(arg, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid word %q", arg)
		}
		words[n] = int16(uint16(val))
	}
	return words, nil
}

// FormatWords formats words as hex, 8 per line prefixed by the address.
func FormatWords(addr uint32, words []int16) string {
	var out []byte
	for n, w := range words {
		if n%8 == 0 {
			if n > 0 {
				out = append(out, '\n')
			}
			out = append(out, fmt.Sprintf("%08x:", addr+uint32(n))...)
		}
		out = append(out, fmt.Sprintf(" %04x", uint16(w))...)
	}
	return string(out)
}
