package spidev

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenInvalidConfig(t *testing.T) {
	_, err := Open(Config{Path: "/dev/null", Mode: 4})
	require.Error(t, err)
	_, err = Open(Config{Path: "/dev/null", BitsPerWord: 33})
	require.Error(t, err)
}

func TestOpenMissingDevice(t *testing.T) {
	_, err := Open(Config{Path: "/nonexistent/spidev9.9"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "/nonexistent/spidev9.9")
}
